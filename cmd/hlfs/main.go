// Command hlfs inspects, prints and appends to files through any hlfs backend.
//
//	hlfs stat /etc/hosts
//	hlfs -async -workers 8 cat /var/log/syslog
//	echo hello | hlfs -backend s3 -bucket my-bucket -compress zstd append logs/app.log
//
// Every flag can also be set through an HLFS_* environment variable, e.g.
// HLFS_BACKEND=minio or HLFS_BUFFER_SIZE=1048576.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hupe1980/hlfs"
	"github.com/hupe1980/hlfs/lowlevel"
	"github.com/hupe1980/hlfs/resource"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Getenv, os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "hlfs:", err)
		}
		os.Exit(1)
	}
}

func newLogger(cfg config, w io.Writer) *hlfs.Logger {
	opts := &slog.HandlerOptions{Level: cfg.logLevel}
	if cfg.logJSON {
		return hlfs.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return hlfs.NewLogger(slog.NewTextHandler(w, opts))
}

func run(ctx context.Context, args []string, getenv func(string) string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, rest, err := parseConfig(args, getenv, stderr)
	if err != nil {
		return err
	}
	cmd, path := rest[0], rest[1]

	logger := newLogger(cfg, stderr)
	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:     cfg.memLimit,
		MaxBackgroundWorkers: cfg.workers,
		IOLimitBytesPerSec:   cfg.ioLimit,
	})

	ll, err := newBackend(ctx, cfg, func(o *lowlevel.Options) {
		o.Context = ctx
		o.Resources = rc
		o.Logger = logger.Logger
		o.OpenFlags = openFlags(cmd)
	})
	if err != nil {
		return err
	}
	defer ll.Wait()

	fsys := hlfs.New(ll, hlfs.WithLogger(logger))

	switch cmd {
	case "stat":
		return stat(fsys.NewPath(path), stdout)
	case "cat":
		return withFile(fsys, path, func(f *hlfs.File) error {
			return cat(ctx, f, cfg, stdout)
		})
	case "append":
		return withFile(fsys, path, func(f *hlfs.File) error {
			return appendFrom(ctx, f, cfg, stdin)
		})
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func stat(p hlfs.Path, w io.Writer) error {
	kind := "missing"
	switch {
	case p.IsRegularFile():
		kind = "file"
	case p.IsDirectory():
		kind = "directory"
	case p.Exists():
		kind = "other"
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", p, kind)
	return err
}

func withFile(fsys *hlfs.FileSystem, path string, fn func(*hlfs.File) error) error {
	f, err := fsys.OpenPath(path)
	if err != nil {
		return err
	}
	return errors.Join(fn(f), f.Close())
}

// cat copies the file to w, one buffer at a time, until a read returns 0 bytes.
func cat(ctx context.Context, f *hlfs.File, cfg config, w io.Writer) error {
	buf, err := hlfs.NewBuffer(cfg.bufferSize)
	if err != nil {
		return err
	}
	for {
		if err := buf.Limit(buf.MaxSize()); err != nil {
			return err
		}

		var n int
		if cfg.async {
			n, err = f.ReadAsync(buf).Wait(ctx)
		} else {
			n, err = f.Read(buf)
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		if _, err := w.Write(buf.Bytes()[buf.Start() : buf.Start()+n]); err != nil {
			return err
		}
	}
}

// appendFrom writes everything from r to the file in buffer-sized chunks.
func appendFrom(ctx context.Context, f *hlfs.File, cfg config, r io.Reader) error {
	chunk := make([]byte, cfg.bufferSize)
	for {
		n, rerr := io.ReadFull(r, chunk)
		if n > 0 {
			buf, err := hlfs.NewBuffer(n)
			if err != nil {
				return err
			}
			if err := buf.AddBytes(chunk[:n]); err != nil {
				return err
			}

			var written int
			if cfg.async {
				written, err = f.WriteAsync(buf).Wait(ctx)
			} else {
				written, err = f.Write(buf)
			}
			if err != nil {
				return err
			}
			if written != n {
				return fmt.Errorf("short write to %s: %d of %d bytes", f.Path(), written, n)
			}
		}
		switch {
		case rerr == nil:
		case errors.Is(rerr, io.EOF), errors.Is(rerr, io.ErrUnexpectedEOF):
			return nil
		default:
			return rerr
		}
	}
}
