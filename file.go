package hlfs

import (
	"context"
	"sync"
	"time"
)

// File is an open descriptor obtained from a FileSystem.
//
// Once closed a File cannot be reopened; every operation afterwards fails
// with ErrAlreadyClosed. A File must not be used from several goroutines
// at once without external synchronization.
type File struct {
	lowLevel LowLevelFileSystem
	fd       int
	opened   bool
	path     string
	metrics  MetricsCollector
	logger   *Logger
}

// Descriptor returns the low-level descriptor.
func (f *File) Descriptor() int { return f.fd }

// IsOpened reports whether the file is still open.
func (f *File) IsOpened() bool { return f.opened }

// Path returns the path the file was opened from.
func (f *File) Path() string { return f.path }

// Close closes the descriptor. The file counts as closed afterwards even if
// the low-level close reports an error.
func (f *File) Close() error {
	if !f.opened {
		return f.closedError("close")
	}

	start := time.Now()
	err := f.lowLevel.Close(f.fd)
	f.opened = false
	if err != nil {
		err = newFileError("close", f.path, f.fd, ErrCanNotClose, err)
	}
	f.metrics.RecordClose(time.Since(start), err)
	f.logger.LogClose(context.Background(), err)
	return err
}

// Read fills the window [buf.Start(), buf.End()] synchronously and returns
// the number of bytes read.
//
// The window is left as is; callers that need it to reflect the transfer
// call buf.Limit with the returned count.
func (f *File) Read(buf *Buffer) (int, error) {
	if !f.opened {
		return 0, f.closedError("read")
	}

	start := time.Now()
	n, err := f.lowLevel.SyncRead(f.fd, buf.Bytes(), buf.Start(), buf.End())
	if cerr := countError(n, err); cerr != nil {
		err = newFileError("read", f.path, f.fd, ErrCanNotRead, cerr)
		f.metrics.RecordRead(0, time.Since(start), err)
		return 0, err
	}
	f.metrics.RecordRead(n, time.Since(start), nil)
	return n, nil
}

// Write writes the window [buf.Start(), buf.End()] synchronously.
//
// The returned count is whatever the capability reports; short writes are
// not detected.
func (f *File) Write(buf *Buffer) (int, error) {
	if !f.opened {
		return 0, f.closedError("write")
	}

	start := time.Now()
	n, err := f.lowLevel.SyncWrite(f.fd, buf.Bytes(), buf.Start(), buf.End())
	if cerr := countError(n, err); cerr != nil {
		err = newFileError("write", f.path, f.fd, ErrCanNotWrite, cerr)
		f.metrics.RecordWrite(0, time.Since(start), err)
		return 0, err
	}
	f.metrics.RecordWrite(n, time.Since(start), nil)
	return n, nil
}

// AsyncRead starts a read into the window of buf and returns immediately.
//
// When the transfer completes, buf is narrowed with Limit to the number of
// bytes read and callback receives it. On failure the window is untouched and
// the error matches ErrCanNotRead. callback runs exactly once, on whatever
// goroutine the capability completes on. buf must not be touched until then.
func (f *File) AsyncRead(buf *Buffer, callback func(*Buffer, error)) error {
	if !f.opened {
		return f.closedError("async-read")
	}

	start := time.Now()
	var once sync.Once
	f.lowLevel.AsyncRead(f.fd, buf.Bytes(), buf.Start(), buf.End(), func(n int, err error) {
		once.Do(func() {
			err = f.completeRead(buf, n, err)
			if err != nil {
				n = 0
			}
			f.metrics.RecordRead(n, time.Since(start), err)
			f.logger.LogCompletion(context.Background(), "async-read", n, err)
			if callback != nil {
				callback(buf, err)
			}
		})
	})
	return nil
}

func (f *File) completeRead(buf *Buffer, n int, err error) error {
	if cerr := countError(n, err); cerr != nil {
		return newFileError("async-read", f.path, f.fd, ErrCanNotRead, cerr)
	}
	if lerr := buf.Limit(n); lerr != nil {
		return newFileError("async-read", f.path, f.fd, ErrCanNotRead, lerr)
	}
	return nil
}

// AsyncWrite starts writing the window of buf and returns immediately.
//
// callback runs exactly once with the count reported by the capability, or
// with an error matching ErrCanNotWrite.
func (f *File) AsyncWrite(buf *Buffer, callback func(n int, err error)) error {
	if !f.opened {
		return f.closedError("async-write")
	}

	start := time.Now()
	var once sync.Once
	f.lowLevel.AsyncWrite(f.fd, buf.Bytes(), buf.Start(), buf.End(), func(n int, err error) {
		once.Do(func() {
			if cerr := countError(n, err); cerr != nil {
				n, err = 0, newFileError("async-write", f.path, f.fd, ErrCanNotWrite, cerr)
			}
			f.metrics.RecordWrite(n, time.Since(start), err)
			f.logger.LogCompletion(context.Background(), "async-write", n, err)
			if callback != nil {
				callback(n, err)
			}
		})
	})
	return nil
}

// ReadAsync is AsyncRead with a channel-based completion instead of a callback.
// The completion carries the narrowed window size.
func (f *File) ReadAsync(buf *Buffer) *Completion {
	c := newCompletion()
	err := f.AsyncRead(buf, func(b *Buffer, err error) {
		if err != nil {
			c.complete(0, err)
			return
		}
		c.complete(b.CurrentSize(), nil)
	})
	if err != nil {
		c.complete(0, err)
	}
	return c
}

// WriteAsync is AsyncWrite with a channel-based completion instead of a callback.
func (f *File) WriteAsync(buf *Buffer) *Completion {
	c := newCompletion()
	if err := f.AsyncWrite(buf, c.complete); err != nil {
		c.complete(0, err)
	}
	return c
}

func (f *File) closedError(op string) error {
	return newFileError(op, f.path, f.fd, ErrAlreadyClosed, nil)
}
