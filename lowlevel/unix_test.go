//go:build unix

package lowlevel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnixFS_Predicates(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	u := NewUnixFS()
	assert.True(t, u.Exists(file))
	assert.True(t, u.IsRegularFile(file))
	assert.False(t, u.IsDirectory(file))

	assert.True(t, u.IsDirectory(dir))
	assert.False(t, u.IsRegularFile(dir))

	missing := filepath.Join(dir, "missing")
	assert.False(t, u.Exists(missing))
	assert.False(t, u.IsRegularFile(missing))
}

func TestUnixFS_ReadWrite(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0o644))

	u := NewUnixFS(func(o *Options) {
		o.OpenFlags = os.O_RDWR | os.O_APPEND
	})

	fd, err := u.Open(file)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, fd, 0)

	p := make([]byte, 8)
	n, err := u.SyncRead(fd, p, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(p[1:6]))

	n, err = u.SyncRead(fd, p, 0, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = u.SyncWrite(fd, []byte(" world"), 0, 5)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	done := make(chan int, 1)
	u.AsyncWrite(fd, []byte("!"), 0, 0, func(n int, err error) {
		assert.NoError(t, err)
		done <- n
	})
	assert.Equal(t, 1, <-done)
	u.Wait()

	require.NoError(t, u.Close(fd))

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "hello world!", string(content))
}

func TestUnixFS_Errors(t *testing.T) {
	u := NewUnixFS()

	fd, err := u.Open(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, -1, fd)

	n, err := u.SyncRead(-1, make([]byte, 1), 0, 0)
	assert.Error(t, err)
	assert.Equal(t, -1, n)

	_, err = u.SyncRead(0, make([]byte, 1), 0, 1)
	assert.ErrorIs(t, err, ErrInvalidRange)
}
