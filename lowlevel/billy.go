package lowlevel

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/hupe1980/hlfs"
)

var _ hlfs.LowLevelFileSystem = (*BillyFS)(nil)

// BillyFS adapts a go-billy filesystem. Descriptors come from a table
// starting at Options.FirstDescriptor.
type BillyFS struct {
	fs    billy.Filesystem
	opts  Options
	files *table[billy.File]
	d     *dispatcher
}

// NewBillyFS wraps fs.
func NewBillyFS(fs billy.Filesystem, optFns ...func(*Options)) *BillyFS {
	opts := newOptions(optFns)
	return &BillyFS{
		fs:    fs,
		opts:  opts,
		files: newTable[billy.File](opts.FirstDescriptor),
		d:     newDispatcher(opts),
	}
}

// NewMemoryFS returns a BillyFS over a fresh in-memory filesystem.
func NewMemoryFS(optFns ...func(*Options)) *BillyFS {
	return NewBillyFS(memfs.New(), optFns...)
}

// NewOSFS returns a BillyFS confined to root on the host filesystem.
func NewOSFS(root string, optFns ...func(*Options)) *BillyFS {
	return NewBillyFS(osfs.New(root, osfs.WithBoundOS()), optFns...)
}

// Raw exposes the wrapped filesystem, e.g. to create fixtures.
func (b *BillyFS) Raw() billy.Filesystem {
	return b.fs
}

// OpenCount returns the number of open descriptors.
func (b *BillyFS) OpenCount() int {
	return b.files.len()
}

func billyError(op, path string, err error) error {
	return fmt.Errorf("billy: %s %q: %w", op, path, err)
}

// Open opens path with Options.OpenFlags.
func (b *BillyFS) Open(path string) (int, error) {
	f, err := b.fs.OpenFile(path, b.opts.OpenFlags, 0o644)
	if err != nil {
		return -1, billyError("open", path, err)
	}
	return b.files.insert(f), nil
}

// Close releases fd.
func (b *BillyFS) Close(fd int) error {
	f, ok := b.files.remove(fd)
	if !ok {
		return ErrBadDescriptor
	}
	if err := f.Close(); err != nil {
		return billyError("close", f.Name(), err)
	}
	return nil
}

// Exists reports whether path can be stat'ed.
func (b *BillyFS) Exists(path string) bool {
	_, err := b.fs.Stat(path)
	return err == nil
}

// IsDirectory reports whether path is a directory.
func (b *BillyFS) IsDirectory(path string) bool {
	fi, err := b.fs.Stat(path)
	return err == nil && fi.IsDir()
}

// IsRegularFile reports whether path is a regular file.
func (b *BillyFS) IsRegularFile(path string) bool {
	fi, err := b.fs.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// SyncRead reads into p[start:end+1]. End of file is a 0-byte read.
func (b *BillyFS) SyncRead(fd int, p []byte, start, end int) (int, error) {
	f, ok := b.files.get(fd)
	if !ok {
		return -1, ErrBadDescriptor
	}
	w, err := window(p, start, end)
	if err != nil {
		return -1, err
	}
	if len(w) == 0 {
		return 0, nil
	}
	n, err := f.Read(w)
	if err != nil && !errors.Is(err, io.EOF) {
		return -1, billyError("read", f.Name(), err)
	}
	return n, nil
}

// SyncWrite writes p[start:end+1].
func (b *BillyFS) SyncWrite(fd int, p []byte, start, end int) (int, error) {
	f, ok := b.files.get(fd)
	if !ok {
		return -1, ErrBadDescriptor
	}
	w, err := window(p, start, end)
	if err != nil {
		return -1, err
	}
	n, err := f.Write(w)
	if err != nil {
		return n, billyError("write", f.Name(), err)
	}
	return n, nil
}

// AsyncRead runs SyncRead on a background worker.
func (b *BillyFS) AsyncRead(fd int, p []byte, start, end int, done func(int, error)) {
	b.d.submit("read", fd, end-start+1, func() (int, error) {
		return b.SyncRead(fd, p, start, end)
	}, done)
}

// AsyncWrite runs SyncWrite on a background worker.
func (b *BillyFS) AsyncWrite(fd int, p []byte, start, end int, done func(int, error)) {
	b.d.submit("write", fd, end-start+1, func() (int, error) {
		return b.SyncWrite(fd, p, start, end)
	}, done)
}

// Wait blocks until outstanding async operations have completed.
func (b *BillyFS) Wait() {
	b.d.wait()
}
