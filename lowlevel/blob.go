package lowlevel

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/hupe1980/hlfs"
	"github.com/hupe1980/hlfs/blobstore"
	"github.com/hupe1980/hlfs/resource"
)

var _ hlfs.LowLevelFileSystem = (*BlobFS)(nil)

// BlobFS maps files onto blobs. Paths become blob names without the
// leading slash; directories exist implicitly as name prefixes.
//
// Reads advance a per-descriptor cursor through the blob as it was when
// opened. Writes append to a pending buffer that is uploaded, after the
// existing content, when the descriptor is closed. Pending bytes are
// accounted against Options.Resources.
type BlobFS struct {
	store   blobstore.BlobStore
	opts    Options
	handles *table[*blobHandle]
	d       *dispatcher
}

type blobHandle struct {
	mu       sync.Mutex
	name     string
	blob     blobstore.Blob
	cursor   int64
	pending  bytes.Buffer
	reserved int64
}

// NewBlobFS creates a backend over store.
func NewBlobFS(store blobstore.BlobStore, optFns ...func(*Options)) *BlobFS {
	opts := newOptions(optFns)
	return &BlobFS{
		store:   store,
		opts:    opts,
		handles: newTable[*blobHandle](opts.FirstDescriptor),
		d:       newDispatcher(opts),
	}
}

// OpenCount returns the number of open descriptors.
func (b *BlobFS) OpenCount() int {
	return b.handles.len()
}

func blobName(p string) string {
	name := path.Clean("/" + p)
	return strings.TrimPrefix(name, "/")
}

// Open opens an existing blob.
func (b *BlobFS) Open(p string) (int, error) {
	name := blobName(p)
	if name == "" {
		return -1, fmt.Errorf("blob: open %q: is the root", p)
	}
	blob, err := b.store.Open(b.opts.Context, name)
	if err != nil {
		return -1, fmt.Errorf("blob: open %q: %w", name, err)
	}
	return b.handles.insert(&blobHandle{name: name, blob: blob}), nil
}

// Close releases fd, uploading any pending writes first.
func (b *BlobFS) Close(fd int) error {
	h, ok := b.handles.remove(fd)
	if !ok {
		return ErrBadDescriptor
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	defer b.opts.Resources.ReleaseMemory(h.reserved)

	var flushErr error
	if h.pending.Len() > 0 {
		flushErr = b.flush(h)
	}
	return errors.Join(flushErr, h.blob.Close())
}

// flush rewrites the blob as its opened content followed by pending bytes.
// On failure the upload is aborted and the stored blob is left as it was.
func (b *BlobFS) flush(h *blobHandle) error {
	ctx := b.opts.Context

	w, err := b.store.Create(ctx, h.name)
	if err != nil {
		return fmt.Errorf("blob: create %q: %w", h.name, err)
	}
	if err := b.copyPending(h, w); err != nil {
		return errors.Join(err, w.Abort())
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("blob: commit %q: %w", h.name, err)
	}
	return nil
}

func (b *BlobFS) copyPending(h *blobHandle, w blobstore.WritableBlob) error {
	ctx := b.opts.Context
	rw := resource.NewRateLimitedWriter(ctx, w, b.opts.Resources)

	if h.blob.Size() > 0 {
		r, err := h.blob.ReadRange(ctx, 0, h.blob.Size())
		if err != nil {
			return fmt.Errorf("blob: read %q: %w", h.name, err)
		}
		defer r.Close()

		rr := resource.NewRateLimitedReader(ctx, r, b.opts.Resources)
		if _, err := io.Copy(rw, rr); err != nil {
			return fmt.Errorf("blob: copy %q: %w", h.name, err)
		}
	}
	if _, err := rw.Write(h.pending.Bytes()); err != nil {
		return fmt.Errorf("blob: write %q: %w", h.name, err)
	}
	return nil
}

// Exists reports whether path is a blob or a blob prefix.
func (b *BlobFS) Exists(p string) bool {
	return b.IsRegularFile(p) || b.IsDirectory(p)
}

// IsDirectory reports whether any blob lives below path. The root always is one.
func (b *BlobFS) IsDirectory(p string) bool {
	name := blobName(p)
	if name == "" {
		return true
	}
	names, err := b.store.List(b.opts.Context, name+"/")
	return err == nil && len(names) > 0
}

// IsRegularFile reports whether a blob named path exists.
func (b *BlobFS) IsRegularFile(p string) bool {
	name := blobName(p)
	if name == "" {
		return false
	}
	ok, err := b.store.Exists(b.opts.Context, name)
	return err == nil && ok
}

// SyncRead reads from the cursor into p[start:end+1].
func (b *BlobFS) SyncRead(fd int, p []byte, start, end int) (int, error) {
	h, ok := b.handles.get(fd)
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

	h.mu.Lock()
	defer h.mu.Unlock()

	n, err := h.blob.ReadAt(b.opts.Context, w, h.cursor)
	if err != nil && !errors.Is(err, io.EOF) {
		return -1, fmt.Errorf("blob: read %q: %w", h.name, err)
	}
	h.cursor += int64(n)
	return n, nil
}

// SyncWrite appends p[start:end+1] to the pending buffer.
func (b *BlobFS) SyncWrite(fd int, p []byte, start, end int) (int, error) {
	h, ok := b.handles.get(fd)
	if !ok {
		return -1, ErrBadDescriptor
	}
	w, err := window(p, start, end)
	if err != nil {
		return -1, err
	}

	if err := b.opts.Resources.AcquireMemory(int64(len(w))); err != nil {
		return 0, fmt.Errorf("blob: write %q: %w", h.name, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.reserved += int64(len(w))
	return h.pending.Write(w)
}

// AsyncRead runs SyncRead on a background worker.
func (b *BlobFS) AsyncRead(fd int, p []byte, start, end int, done func(int, error)) {
	b.d.submit("read", fd, end-start+1, func() (int, error) {
		return b.SyncRead(fd, p, start, end)
	}, done)
}

// AsyncWrite runs SyncWrite on a background worker.
func (b *BlobFS) AsyncWrite(fd int, p []byte, start, end int, done func(int, error)) {
	b.d.submit("write", fd, end-start+1, func() (int, error) {
		return b.SyncWrite(fd, p, start, end)
	}, done)
}

// Wait blocks until outstanding async operations have completed.
func (b *BlobFS) Wait() {
	b.d.wait()
}
