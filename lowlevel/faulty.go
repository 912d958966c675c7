package lowlevel

import (
	"errors"
	"strings"
	"sync"

	"github.com/hupe1980/hlfs"
)

var _ hlfs.LowLevelFileSystem = (*FaultyFS)(nil)

// ErrInjected is the default error returned by injected faults.
var ErrInjected = errors.New("lowlevel: injected fault")

// Fault defines failure behavior for matching paths.
type Fault struct {
	// FailOpen makes Open report descriptor -1 without an error.
	FailOpen bool
	// FailRead makes reads report a count of -1 without an error.
	FailRead bool
	// FailWrite makes writes fail with Err.
	FailWrite bool
	// FailClose makes Close fail with Err after closing the inner descriptor.
	FailClose bool
	// FailAfterBytes fails writes that would push the descriptor past this
	// many bytes. Zero or less disables the limit.
	FailAfterBytes int64
	// Err is the injected error. Default: ErrInjected.
	Err error
}

type faultRule struct {
	pattern string
	fault   Fault
}

type faultyHandle struct {
	mu      sync.Mutex
	fault   Fault
	written int64
}

// FaultyFS wraps a backend and injects faults per path pattern.
// A rule matches when its pattern is a substring of the path; the most
// recently added matching rule wins.
type FaultyFS struct {
	inner hlfs.LowLevelFileSystem

	mu      sync.Mutex
	rules   []faultRule
	Default Fault
	fds     map[int]*faultyHandle
}

// NewFaultyFS wraps inner.
func NewFaultyFS(inner hlfs.LowLevelFileSystem) *FaultyFS {
	return &FaultyFS{
		inner: inner,
		fds:   make(map[int]*faultyHandle),
	}
}

// AddRule adds a fault injection rule for paths containing pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, faultRule{pattern: pattern, fault: fault})
}

// Reset removes all rules.
func (f *FaultyFS) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = nil
}

func (f *FaultyFS) match(path string) Fault {
	f.mu.Lock()
	defer f.mu.Unlock()

	fault := f.Default
	for i := len(f.rules) - 1; i >= 0; i-- {
		if strings.Contains(path, f.rules[i].pattern) {
			fault = f.rules[i].fault
			break
		}
	}
	if fault.Err == nil {
		fault.Err = ErrInjected
	}
	return fault
}

func (f *FaultyFS) handle(fd int) *faultyHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	if h, ok := f.fds[fd]; ok {
		return h
	}
	return &faultyHandle{}
}

// Open opens path on the inner backend unless FailOpen applies.
func (f *FaultyFS) Open(path string) (int, error) {
	fault := f.match(path)
	if fault.FailOpen {
		return -1, nil
	}
	fd, err := f.inner.Open(path)
	if err != nil || fd < 0 {
		return fd, err
	}

	f.mu.Lock()
	f.fds[fd] = &faultyHandle{fault: fault}
	f.mu.Unlock()
	return fd, nil
}

// Close closes fd on the inner backend, then applies FailClose.
func (f *FaultyFS) Close(fd int) error {
	h := f.handle(fd)

	f.mu.Lock()
	delete(f.fds, fd)
	f.mu.Unlock()

	if err := f.inner.Close(fd); err != nil {
		return err
	}
	if h.fault.FailClose {
		return h.fault.Err
	}
	return nil
}

// Exists delegates to the inner backend.
func (f *FaultyFS) Exists(path string) bool {
	return f.inner.Exists(path)
}

// IsDirectory delegates to the inner backend.
func (f *FaultyFS) IsDirectory(path string) bool {
	return f.inner.IsDirectory(path)
}

// IsRegularFile delegates to the inner backend.
func (f *FaultyFS) IsRegularFile(path string) bool {
	return f.inner.IsRegularFile(path)
}

// SyncRead reads through the inner backend unless FailRead applies.
func (f *FaultyFS) SyncRead(fd int, p []byte, start, end int) (int, error) {
	if f.handle(fd).fault.FailRead {
		return -1, nil
	}
	return f.inner.SyncRead(fd, p, start, end)
}

// checkWrite reserves size bytes against the write limit.
func (h *faultyHandle) checkWrite(size int) error {
	if h.fault.FailWrite {
		return h.fault.Err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fault.FailAfterBytes > 0 && h.written+int64(size) > h.fault.FailAfterBytes {
		return h.fault.Err
	}
	h.written += int64(size)
	return nil
}

// SyncWrite writes through the inner backend unless a write fault applies.
func (f *FaultyFS) SyncWrite(fd int, p []byte, start, end int) (int, error) {
	if err := f.handle(fd).checkWrite(end - start + 1); err != nil {
		return 0, err
	}
	return f.inner.SyncWrite(fd, p, start, end)
}

// AsyncRead reads through the inner backend unless FailRead applies.
func (f *FaultyFS) AsyncRead(fd int, p []byte, start, end int, done func(int, error)) {
	if f.handle(fd).fault.FailRead {
		go done(-1, nil)
		return
	}
	f.inner.AsyncRead(fd, p, start, end, done)
}

// AsyncWrite writes through the inner backend unless a write fault applies.
func (f *FaultyFS) AsyncWrite(fd int, p []byte, start, end int, done func(int, error)) {
	if err := f.handle(fd).checkWrite(end - start + 1); err != nil {
		go done(0, err)
		return
	}
	f.inner.AsyncWrite(fd, p, start, end, done)
}
