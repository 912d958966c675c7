package minio

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/hupe1980/hlfs/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, isNotFound(fmt.Errorf("network down")))
}

func TestStore_Keys(t *testing.T) {
	s := NewStore(nil, "bucket", "root/")
	assert.Equal(t, "root/a/b", s.key("a/b"))
	assert.Equal(t, "root/dir/", s.key("dir/"))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := envOr("HLFS_MINIO_ENDPOINT", "localhost:9000")
	bucket := envOr("HLFS_MINIO_BUCKET", "test-hlfs")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(envOr("HLFS_MINIO_ACCESS_KEY", "minioadmin"), envOr("HLFS_MINIO_SECRET_KEY", "minioadmin"), ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	probeCtx, probeCancel := context.WithTimeout(ctx, 2*time.Second)
	_, err = client.ListBuckets(probeCtx)
	probeCancel()
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, fmt.Sprintf("test-%d/", time.Now().UnixNano()))

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "dir/test.txt", data))

	blob, err := store.Open(ctx, "dir/test.txt")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf)

	tail := make([]byte, 10)
	n, err = blob.ReadAt(ctx, tail, 12)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "world", string(tail[:n]))

	rc, err := blob.ReadRange(ctx, 6, 5)
	require.NoError(t, err)
	part, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "minio", string(part))
	require.NoError(t, rc.Close())
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "dir/")
	require.NoError(t, err)
	assert.Equal(t, []string{"dir/test.txt"}, names)

	ok, err := store.Exists(ctx, "dir/test.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	aborted, err := store.Create(ctx, "dir/test.txt")
	require.NoError(t, err)
	_, err = aborted.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, aborted.Abort())

	blob2, err := store.Open(ctx, "dir/test.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), blob2.Size(), "abort must keep the previous object")
	require.NoError(t, blob2.Close())

	require.NoError(t, store.Delete(ctx, "dir/test.txt"))
	_, err = store.Open(ctx, "dir/test.txt")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	ok, err = store.Exists(ctx, "dir/test.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	wb, err := store.Create(ctx, "stream.txt")
	require.NoError(t, err)
	_, err = wb.Write([]byte("streamed data"))
	require.NoError(t, err)
	require.NoError(t, wb.Close())

	blob3, err := store.Open(ctx, "stream.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(13), blob3.Size())
	require.NoError(t, blob3.Close())

	_ = store.Delete(ctx, "stream.txt")
}
