package hlfs

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrPathNotRegularFile is returned when a path does not resolve to a regular file at open time.
	ErrPathNotRegularFile = errors.New("path does not contain a regular file")

	// ErrCanNotOpenFile is returned when the low-level capability fails to hand out a descriptor.
	ErrCanNotOpenFile = errors.New("can not open file")

	// ErrAlreadyClosed is returned when an operation is attempted on a closed file.
	ErrAlreadyClosed = errors.New("file already closed")

	// ErrCanNotRead is returned when the low-level read reports a failure.
	ErrCanNotRead = errors.New("can not read file")

	// ErrCanNotWrite is returned when the low-level write reports a failure.
	ErrCanNotWrite = errors.New("can not write file")

	// ErrCanNotClose is returned when the low-level close reports a failure.
	// The file is closed regardless.
	ErrCanNotClose = errors.New("can not close file")

	// ErrOffsetExceedsCapacity is returned when a buffer is narrowed beyond its capacity.
	ErrOffsetExceedsCapacity = errors.New("offset exceeds buffer capacity")

	// ErrInvalidSize is returned when a buffer is created with a negative size.
	ErrInvalidSize = errors.New("invalid buffer size")

	// ErrIndexOutOfRange is returned when a buffer is accessed outside its storage.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrBufferFull is returned when an append does not fit in the remaining capacity.
	ErrBufferFull = errors.New("buffer full")
)

// FileError records a failed operation on a path or an open file.
//
// It matches its Kind sentinel through errors.Is, and the low-level cause
// (if any) can be accessed via errors.Unwrap / errors.As.
type FileError struct {
	Op         string
	Path       string
	Descriptor int // -1 when no descriptor was obtained
	Kind       error
	cause      error
}

func (e *FileError) Error() string {
	msg := "hlfs: " + e.Op + " " + strconv.Quote(e.Path)
	if e.Descriptor >= 0 {
		msg += " (fd " + strconv.Itoa(e.Descriptor) + ")"
	}
	msg += ": " + e.Kind.Error()
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *FileError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.cause}
}

func newFileError(op, path string, fd int, kind, cause error) *FileError {
	return &FileError{
		Op:         op,
		Path:       path,
		Descriptor: fd,
		Kind:       kind,
		cause:      cause,
	}
}

// countError turns a negative low-level count without an error into one.
func countError(n int, err error) error {
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("low-level call returned %d", n)
	}
	return nil
}
