//go:build unix

package lowlevel

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hlfs"
	"golang.org/x/sys/unix"
)

var _ hlfs.LowLevelFileSystem = (*UnixFS)(nil)

// UnixFS hands out real kernel descriptors. Reads and writes use the
// descriptor's file offset, so successive calls are sequential.
type UnixFS struct {
	opts Options
	d    *dispatcher
}

// NewUnixFS creates a backend over the host filesystem.
func NewUnixFS(optFns ...func(*Options)) *UnixFS {
	opts := newOptions(optFns)
	return &UnixFS{
		opts: opts,
		d:    newDispatcher(opts),
	}
}

func retryEINTR[T any](fn func() (T, error)) (T, error) {
	for {
		v, err := fn()
		if !errors.Is(err, unix.EINTR) {
			return v, err
		}
	}
}

// Open opens path with Options.OpenFlags and O_CLOEXEC.
func (u *UnixFS) Open(path string) (int, error) {
	fd, err := retryEINTR(func() (int, error) {
		return unix.Open(path, u.opts.OpenFlags|unix.O_CLOEXEC, 0)
	})
	if err != nil {
		return -1, fmt.Errorf("open %s: %w", path, err)
	}
	return fd, nil
}

// Close closes fd. EINTR is not retried; the descriptor is gone either way.
func (u *UnixFS) Close(fd int) error {
	if err := unix.Close(fd); err != nil {
		return fmt.Errorf("close fd %d: %w", fd, err)
	}
	return nil
}

func (u *UnixFS) mode(path string) (uint32, bool) {
	var st unix.Stat_t
	if _, err := retryEINTR(func() (struct{}, error) {
		return struct{}{}, unix.Stat(path, &st)
	}); err != nil {
		return 0, false
	}
	return uint32(st.Mode) & unix.S_IFMT, true
}

// Exists reports whether path can be stat'ed.
func (u *UnixFS) Exists(path string) bool {
	_, ok := u.mode(path)
	return ok
}

// IsDirectory reports whether path is a directory, following symlinks.
func (u *UnixFS) IsDirectory(path string) bool {
	m, ok := u.mode(path)
	return ok && m == unix.S_IFDIR
}

// IsRegularFile reports whether path is a regular file, following symlinks.
func (u *UnixFS) IsRegularFile(path string) bool {
	m, ok := u.mode(path)
	return ok && m == unix.S_IFREG
}

// SyncRead reads up to end-start+1 bytes into p[start:end+1].
func (u *UnixFS) SyncRead(fd int, p []byte, start, end int) (int, error) {
	w, err := window(p, start, end)
	if err != nil {
		return -1, err
	}
	if len(w) == 0 {
		return 0, nil
	}
	n, err := retryEINTR(func() (int, error) {
		return unix.Read(fd, w)
	})
	if err != nil {
		return -1, fmt.Errorf("read fd %d: %w", fd, err)
	}
	return n, nil
}

// SyncWrite writes p[start:end+1], retrying short writes.
func (u *UnixFS) SyncWrite(fd int, p []byte, start, end int) (int, error) {
	w, err := window(p, start, end)
	if err != nil {
		return -1, err
	}
	total := 0
	for total < len(w) {
		n, err := retryEINTR(func() (int, error) {
			return unix.Write(fd, w[total:])
		})
		if err != nil {
			return total, fmt.Errorf("write fd %d: %w", fd, err)
		}
		total += n
	}
	return total, nil
}

// AsyncRead runs SyncRead on a background worker.
func (u *UnixFS) AsyncRead(fd int, p []byte, start, end int, done func(int, error)) {
	u.d.submit("read", fd, end-start+1, func() (int, error) {
		return u.SyncRead(fd, p, start, end)
	}, done)
}

// AsyncWrite runs SyncWrite on a background worker.
func (u *UnixFS) AsyncWrite(fd int, p []byte, start, end int, done func(int, error)) {
	u.d.submit("write", fd, end-start+1, func() (int, error) {
		return u.SyncWrite(fd, p, start, end)
	}, done)
}

// Wait blocks until outstanding async operations have completed.
func (u *UnixFS) Wait() {
	u.d.wait()
}
