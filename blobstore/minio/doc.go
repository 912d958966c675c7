// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO itself and other S3-compatible servers such as Ceph,
// SeaweedFS and Garage, without pulling in the AWS SDK.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "files/")
//	ll := lowlevel.NewBlobFS(store)
//	fsys := hlfs.New(ll)
//
// Reads are ranged GETs; Create streams into a single PutObject through a pipe.
package minio
