package polycut

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    cutCounter   prometheus.Counter
//	    cutHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordCut(pieces int, duration time.Duration, err error) {
//	    p.cutCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordCut is called after each carve or slice operation.
	// pieces is the number of pieces that were cut, duration is the total
	// time taken, err is nil if successful.
	RecordCut(pieces int, duration time.Duration, err error)

	// RecordLocate is called after each point-location query.
	RecordLocate(duration time.Duration)

	// RecordSnapshot is called after each snapshot save operation.
	RecordSnapshot(duration time.Duration, err error)

	// RecordRestore is called after each snapshot restore operation.
	RecordRestore(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCut(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordLocate(time.Duration)          {}
func (NoopMetricsCollector) RecordSnapshot(time.Duration, error) {}
func (NoopMetricsCollector) RecordRestore(time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CutCount       atomic.Int64
	CutErrors      atomic.Int64
	CutPieces      atomic.Int64
	CutTotalNanos  atomic.Int64
	LocateCount    atomic.Int64
	SnapshotCount  atomic.Int64
	SnapshotErrors atomic.Int64
	RestoreCount   atomic.Int64
	RestoreErrors  atomic.Int64
}

// RecordCut implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCut(pieces int, duration time.Duration, err error) {
	b.CutCount.Add(1)
	b.CutPieces.Add(int64(pieces))
	b.CutTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CutErrors.Add(1)
	}
}

// RecordLocate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLocate(duration time.Duration) {
	b.LocateCount.Add(1)
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	if err != nil {
		b.SnapshotErrors.Add(1)
	}
}

// RecordRestore implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRestore(duration time.Duration, err error) {
	b.RestoreCount.Add(1)
	if err != nil {
		b.RestoreErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CutCount:       b.CutCount.Load(),
		CutErrors:      b.CutErrors.Load(),
		CutPieces:      b.CutPieces.Load(),
		CutAvgNanos:    b.getAvgCutNanos(),
		LocateCount:    b.LocateCount.Load(),
		SnapshotCount:  b.SnapshotCount.Load(),
		SnapshotErrors: b.SnapshotErrors.Load(),
		RestoreCount:   b.RestoreCount.Load(),
		RestoreErrors:  b.RestoreErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgCutNanos() int64 {
	count := b.CutCount.Load()
	if count == 0 {
		return 0
	}
	return b.CutTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CutCount       int64
	CutErrors      int64
	CutPieces      int64
	CutAvgNanos    int64
	LocateCount    int64
	SnapshotCount  int64
	SnapshotErrors int64
	RestoreCount   int64
	RestoreErrors  int64
}
