package blobstore

import "errors"

var (
	// ErrInvalidRange is returned for negative offsets or lengths.
	ErrInvalidRange = errors.New("blobstore: invalid range")
	// ErrClosed is returned when writing to or closing a finished blob.
	ErrClosed = errors.New("blobstore: blob already closed")
	// ErrCorrupt is returned when a compressed blob cannot be decoded.
	ErrCorrupt = errors.New("blobstore: corrupt blob")
	// ErrAborted is the error a streaming upload sees when its writer aborts.
	ErrAborted = errors.New("blobstore: write aborted")
)
