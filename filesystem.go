package hlfs

import (
	"context"
	"time"
)

// FileSystem opens regular files through a low-level capability.
//
// It holds no state besides its collaborators and is safe for concurrent use
// as long as the capability is.
type FileSystem struct {
	lowLevel LowLevelFileSystem
	metrics  MetricsCollector
	logger   *Logger
}

// New creates a FileSystem on top of the given capability.
func New(lowLevel LowLevelFileSystem, optFns ...Option) *FileSystem {
	o := applyOptions(optFns)
	return &FileSystem{
		lowLevel: lowLevel,
		metrics:  o.metricsCollector,
		logger:   o.logger,
	}
}

// NewPath binds path to this file system's capability. No I/O is performed.
func (fsys *FileSystem) NewPath(path string) Path {
	return Path{path: path, lowLevel: fsys.lowLevel}
}

// Open validates that path is a regular file and opens it.
//
// No low-level open is attempted unless the path is a regular file.
func (fsys *FileSystem) Open(path Path) (*File, error) {
	if path.lowLevel == nil {
		path = fsys.NewPath(path.path)
	}

	start := time.Now()
	fd, err := fsys.open(path)
	fsys.metrics.RecordOpen(time.Since(start), err)
	fsys.logger.LogOpen(context.Background(), path.path, fd, err)
	if err != nil {
		return nil, err
	}

	return &File{
		lowLevel: fsys.lowLevel,
		fd:       fd,
		opened:   true,
		path:     path.path,
		metrics:  fsys.metrics,
		logger:   fsys.logger.WithPath(path.path).WithDescriptor(fd),
	}, nil
}

// OpenPath is shorthand for Open(NewPath(path)).
func (fsys *FileSystem) OpenPath(path string) (*File, error) {
	return fsys.Open(fsys.NewPath(path))
}

func (fsys *FileSystem) open(path Path) (int, error) {
	if !path.IsRegularFile() {
		return -1, newFileError("open", path.path, -1, ErrPathNotRegularFile, nil)
	}

	fd, err := fsys.lowLevel.Open(path.path)
	if cerr := countError(fd, err); cerr != nil {
		return -1, newFileError("open", path.path, -1, ErrCanNotOpenFile, cerr)
	}
	return fd, nil
}
