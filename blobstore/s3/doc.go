// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil { ... }
//
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "files/",
//	    func(o *s3.Options) { o.PartSize = 16 << 20 },
//	)
//	fsys := hlfs.New(lowlevel.NewBlobFS(store))
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads through the SDK upload manager
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
