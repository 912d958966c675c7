package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	t.Run("put and open", func(t *testing.T) {
		data := []byte("abcdef")
		require.NoError(t, store.Put(ctx, "a/b", data))
		data[0] = 'X' // caller mutation must not leak in

		blob, err := store.Open(ctx, "a/b")
		require.NoError(t, err)
		assert.Equal(t, int64(6), blob.Size())

		buf := make([]byte, 4)
		n, err := blob.ReadAt(ctx, buf, 4)
		assert.Equal(t, 2, n)
		assert.ErrorIs(t, err, io.EOF)
		assert.Equal(t, "ef", string(buf[:n]))

		all, err := ReadAll(ctx, blob)
		require.NoError(t, err)
		assert.Equal(t, "abcdef", string(all))
	})

	t.Run("create is visible on close", func(t *testing.T) {
		w, err := store.Create(ctx, "a/c")
		require.NoError(t, err)
		_, err = w.Write([]byte("hi"))
		require.NoError(t, err)

		_, err = store.Open(ctx, "a/c")
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, w.Close())
		_, err = w.Write([]byte("late"))
		assert.ErrorIs(t, err, ErrClosed)

		blob, err := store.Open(ctx, "a/c")
		require.NoError(t, err)
		assert.Equal(t, int64(2), blob.Size())
	})

	t.Run("list and delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "z", nil))

		names, err := store.List(ctx, "a/")
		require.NoError(t, err)
		assert.Equal(t, []string{"a/b", "a/c"}, names)

		require.NoError(t, store.Delete(ctx, "a/b"))
		require.NoError(t, store.Delete(ctx, "missing"))

		names, err = store.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a/c", "z"}, names)
	})

	t.Run("canceled read", func(t *testing.T) {
		blob, err := store.Open(ctx, "a/c")
		require.NoError(t, err)

		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err = blob.ReadAt(canceled, make([]byte, 1), 0)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
