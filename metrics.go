package hlfs

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Async transfers are recorded when their completion fires; duration then
// covers the time from initiation to completion.
type MetricsCollector interface {
	// RecordOpen is called after each open attempt.
	RecordOpen(duration time.Duration, err error)

	// RecordRead is called after each read. bytes is the count reported by
	// the low-level capability (0 on failure).
	RecordRead(bytes int, duration time.Duration, err error)

	// RecordWrite is called after each write.
	RecordWrite(bytes int, duration time.Duration, err error)

	// RecordClose is called after each close attempt on an open file.
	RecordClose(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOpen(time.Duration, error)       {}
func (NoopMetricsCollector) RecordRead(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordWrite(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordClose(time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	OpenCount      atomic.Int64
	OpenErrors     atomic.Int64
	ReadCount      atomic.Int64
	ReadErrors     atomic.Int64
	ReadBytes      atomic.Int64
	ReadTotalNanos atomic.Int64
	WriteCount     atomic.Int64
	WriteErrors    atomic.Int64
	WriteBytes     atomic.Int64
	CloseCount     atomic.Int64
	CloseErrors    atomic.Int64
}

// RecordOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOpen(_ time.Duration, err error) {
	b.OpenCount.Add(1)
	if err != nil {
		b.OpenErrors.Add(1)
	}
}

// RecordRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRead(bytes int, duration time.Duration, err error) {
	b.ReadCount.Add(1)
	b.ReadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReadErrors.Add(1)
		return
	}
	b.ReadBytes.Add(int64(bytes))
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(bytes int, _ time.Duration, err error) {
	b.WriteCount.Add(1)
	if err != nil {
		b.WriteErrors.Add(1)
		return
	}
	b.WriteBytes.Add(int64(bytes))
}

// RecordClose implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClose(_ time.Duration, err error) {
	b.CloseCount.Add(1)
	if err != nil {
		b.CloseErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		OpenCount:    b.OpenCount.Load(),
		OpenErrors:   b.OpenErrors.Load(),
		ReadCount:    b.ReadCount.Load(),
		ReadErrors:   b.ReadErrors.Load(),
		ReadBytes:    b.ReadBytes.Load(),
		ReadAvgNanos: b.getAvgReadNanos(),
		WriteCount:   b.WriteCount.Load(),
		WriteErrors:  b.WriteErrors.Load(),
		WriteBytes:   b.WriteBytes.Load(),
		CloseCount:   b.CloseCount.Load(),
		CloseErrors:  b.CloseErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgReadNanos() int64 {
	count := b.ReadCount.Load()
	if count == 0 {
		return 0
	}
	return b.ReadTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	OpenCount    int64
	OpenErrors   int64
	ReadCount    int64
	ReadErrors   int64
	ReadBytes    int64
	ReadAvgNanos int64
	WriteCount   int64
	WriteErrors  int64
	WriteBytes   int64
	CloseCount   int64
	CloseErrors  int64
}
