package lowlevel

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/hlfs/resource"
)

var (
	// ErrBadDescriptor is returned for descriptors that are not open.
	ErrBadDescriptor = errors.New("lowlevel: bad descriptor")
	// ErrInvalidRange is returned when [start, end] does not fit the storage.
	ErrInvalidRange = errors.New("lowlevel: invalid range")
)

// DefaultFirstDescriptor is the lowest descriptor handed out by table-backed
// backends. 0-2 are left alone so they never shadow standard streams.
const DefaultFirstDescriptor = 3

// Options configures a backend.
type Options struct {
	// Context bounds async transfers and blob store calls.
	// Default: context.Background().
	Context context.Context

	// Resources limits async workers and throughput and accounts pending
	// BlobFS writes. Nil means unlimited.
	Resources *resource.Controller

	// Logger receives debug records for async completions.
	// Default: discards everything.
	Logger *slog.Logger

	// OpenFlags are passed to open. Default: os.O_RDWR.
	OpenFlags int

	// FirstDescriptor is the lowest descriptor for table-backed backends.
	// Default: DefaultFirstDescriptor.
	FirstDescriptor int
}

func newOptions(optFns []func(*Options)) Options {
	opts := Options{
		Context:         context.Background(),
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		OpenFlags:       os.O_RDWR,
		FirstDescriptor: DefaultFirstDescriptor,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.FirstDescriptor < 0 {
		opts.FirstDescriptor = 0
	}
	return opts
}

// window returns p[start:end+1], validating the inclusive range.
func window(p []byte, start, end int) ([]byte, error) {
	if start < 0 || end < start-1 || end >= len(p) {
		return nil, ErrInvalidRange
	}
	return p[start : end+1], nil
}
