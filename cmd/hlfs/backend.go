package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/hlfs"
	"github.com/hupe1980/hlfs/blobstore"
	minioblob "github.com/hupe1980/hlfs/blobstore/minio"
	s3blob "github.com/hupe1980/hlfs/blobstore/s3"
	"github.com/hupe1980/hlfs/lowlevel"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// backend is a capability whose async work can be drained before exit.
type backend interface {
	hlfs.LowLevelFileSystem
	Wait()
}

func newBackend(ctx context.Context, cfg config, llOpts func(*lowlevel.Options)) (backend, error) {
	switch cfg.backend {
	case "unix":
		return newUnixBackend(llOpts)
	case "os":
		return lowlevel.NewOSFS(cfg.root, llOpts), nil
	}

	store, err := newBlobStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	codec, err := blobstore.ParseCodec(cfg.compress)
	if err != nil {
		return nil, err
	}
	if codec != blobstore.CodecNone {
		store = blobstore.NewCompressedStore(store, codec)
	}
	return lowlevel.NewBlobFS(store, llOpts), nil
}

func newBlobStore(ctx context.Context, cfg config) (blobstore.BlobStore, error) {
	switch cfg.backend {
	case "local":
		return blobstore.NewLocalStore(cfg.root), nil
	case "minio":
		if cfg.endpoint == "" || cfg.bucket == "" {
			return nil, fmt.Errorf("minio backend needs -endpoint and -bucket")
		}
		client, err := minio.New(cfg.endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.accessKey, cfg.secretKey, ""),
			Secure: cfg.secure,
			Region: cfg.region,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return minioblob.NewStore(client, cfg.bucket, cfg.prefix), nil
	case "s3":
		if cfg.bucket == "" {
			return nil, fmt.Errorf("s3 backend needs -bucket")
		}
		var loadOpts []func(*awsconfig.LoadOptions) error
		if cfg.region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("aws config: %w", err)
		}
		client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
			if cfg.endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.endpoint)
				o.UsePathStyle = true
			}
		})
		return s3blob.NewStore(client, cfg.bucket, cfg.prefix), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.backend)
	}
}

func openFlags(cmd string) int {
	if cmd == "append" {
		return os.O_RDWR | os.O_APPEND
	}
	return os.O_RDONLY
}
