package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is a flat namespace of byte blobs addressed by slash-separated names.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create starts a streaming write. The blob becomes visible on Close.
	Create(ctx context.Context, name string) (WritableBlob, error)
	// Put writes a blob atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names of all blobs starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
	// Exists reports whether a blob with exactly this name exists.
	// It does not transfer the blob's content.
	Exists(ctx context.Context, name string) (bool, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	// ReadAt reads len(p) bytes at off. Like io.ReaderAt it returns io.EOF
	// when fewer bytes are available.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// ReadRange streams up to length bytes starting at off.
	// An offset at or past the end returns io.EOF.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// WritableBlob is a blob being written.
//
// Close commits the written bytes. Abort discards them and leaves any
// previous blob of the same name untouched. After either, the other is
// a no-op for Abort and ErrClosed for Close.
type WritableBlob interface {
	io.WriteCloser
	// Sync flushes buffered data where the backend supports it.
	Sync() error
	// Abort cancels the write; nothing becomes visible.
	Abort() error
}

// ReadAll reads the complete content of a blob.
func ReadAll(ctx context.Context, b Blob) ([]byte, error) {
	size := b.Size()
	if size == 0 {
		return nil, nil
	}
	buf := make([]byte, size)
	n, err := b.ReadAt(ctx, buf, 0)
	if err != nil && !(err == io.EOF && int64(n) == size) {
		return nil, err
	}
	return buf[:n], nil
}

// rangeOf clamps [off, off+length) to a blob of the given size.
func rangeOf(size, off, length int64) (int64, int64, error) {
	if off < 0 || length < 0 {
		return 0, 0, ErrInvalidRange
	}
	if off >= size {
		return 0, 0, io.EOF
	}
	return off, min(off+length, size), nil
}
