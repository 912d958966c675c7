package lowlevel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hupe1980/hlfs/resource"
)

// dispatcher runs async transfers on goroutines gated by a resource.Controller.
type dispatcher struct {
	ctx    context.Context
	rc     *resource.Controller
	logger *slog.Logger
	wg     sync.WaitGroup
}

func newDispatcher(opts Options) *dispatcher {
	return &dispatcher{
		ctx:    opts.Context,
		rc:     opts.Resources,
		logger: opts.Logger,
	}
}

// submit runs fn in the background and hands its result to done.
// A failure to obtain resources completes with n == -1.
func (d *dispatcher) submit(op string, fd, size int, fn func() (int, error), done func(int, error)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		start := time.Now()
		n, err := d.run(size, fn)

		d.logger.Debug("async completion",
			slog.String("op", op),
			slog.Int("fd", fd),
			slog.Int("n", n),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)

		if done != nil {
			done(n, err)
		}
	}()
}

func (d *dispatcher) run(size int, fn func() (int, error)) (int, error) {
	if err := d.rc.AcquireBackground(d.ctx); err != nil {
		return -1, err
	}
	defer d.rc.ReleaseBackground()

	if err := d.rc.AcquireIO(d.ctx, size); err != nil {
		return -1, err
	}
	return fn()
}

// wait blocks until all submitted transfers have completed.
func (d *dispatcher) wait() {
	d.wg.Wait()
}
