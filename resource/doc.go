// Package resource implements the Controller for global limits on async I/O.
//
// The Controller manages three resource types:
//
//   - Memory: Track and limit memory held by pending writes (non-blocking, fail-fast)
//   - Concurrency: Limit the number of async transfers in flight
//   - IO: Rate-limit async transfers with a token bucket
//
// # Memory Management
//
// AcquireMemory is non-blocking and returns ErrMemoryLimitExceeded
// immediately if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20,
//	})
//
//	if err := rc.AcquireMemory(4096); err != nil {
//	    // ErrMemoryLimitExceeded - caller decides retry/backoff
//	}
//	defer rc.ReleaseMemory(4096)
//
// # Worker Limits
//
//	rc := resource.NewController(resource.Config{
//	    MaxBackgroundWorkers: 4,
//	})
//
//	if err := rc.AcquireBackground(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseBackground()
//
// # IO Rate Limiting
//
//	rc := resource.NewController(resource.Config{
//	    IOLimitBytesPerSec: 100 * 1024 * 1024, // 100MB/s
//	})
//
//	if err := rc.AcquireIO(ctx, 4096); err != nil {
//	    return err
//	}
//
//	writer := resource.NewRateLimitedWriter(ctx, w, rc)
//	reader := resource.NewRateLimitedReader(ctx, r, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
