// Package blobstore provides the object storage layer behind lowlevel.BlobFS.
//
// A BlobStore is a flat namespace of byte blobs. Names are slash-separated;
// directories exist only implicitly as name prefixes.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and scratch use
//   - LocalStore: local filesystem with mmap reads and atomic renames
//   - CompressedStore: LZ4 or Zstandard framing over any other store
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3 via the AWS SDK v2
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)            // Open for reading
//	    Create(ctx, name) (WritableBlob, error)  // Streaming write, visible on Close
//	    Put(ctx, name, data) error               // Atomic write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	    Exists(ctx, name) (bool, error)          // No content transfer
//	}
//
// A WritableBlob commits on Close and discards everything on Abort.
//
// Missing blobs must satisfy errors.Is(err, ErrNotFound).
package blobstore
