package hlfs

// LowLevelFileSystem is the descriptor-level capability the package is built on.
//
// Ranges are given as storage plus an inclusive [start, end] window. A negative
// descriptor or byte count reports a failure just like a non-nil error does.
// Async completions may run on any goroutine chosen by the implementation.
//
// Implementations live in the lowlevel package.
type LowLevelFileSystem interface {
	Open(path string) (int, error)
	Close(fd int) error

	Exists(path string) bool
	IsDirectory(path string) bool
	IsRegularFile(path string) bool

	SyncRead(fd int, p []byte, start, end int) (int, error)
	SyncWrite(fd int, p []byte, start, end int) (int, error)

	AsyncRead(fd int, p []byte, start, end int, done func(n int, err error))
	AsyncWrite(fd int, p []byte, start, end int, done func(n int, err error))
}
