package hlfs

import "context"

// Completion is the single-fire result of an asynchronous transfer.
type Completion struct {
	done chan struct{}
	n    int
	err  error
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// complete must be called exactly once.
func (c *Completion) complete(n int, err error) {
	c.n, c.err = n, err
	close(c.done)
}

// Done is closed once the transfer has completed.
func (c *Completion) Done() <-chan struct{} { return c.done }

// Wait blocks until the transfer completes or ctx is done.
// A canceled ctx stops the wait only; the transfer itself keeps running.
func (c *Completion) Wait(ctx context.Context) (int, error) {
	select {
	case <-c.done:
		return c.n, c.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Err returns the transfer error, or nil while it is still in flight.
func (c *Completion) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}
