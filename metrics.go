package tieredvec

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
//
// Callbacks run synchronously on the mutating goroutine and must be cheap.
type MetricsCollector interface {
	// RecordInsert is called after each insert operation.
	// relayed is the number of blocks the cross-block relay touched.
	RecordInsert(relayed int)

	// RecordRemove is called after each remove operation.
	// relayed is the number of blocks the cross-block relay touched.
	RecordRemove(relayed int)

	// RecordExpand is called after a global expansion.
	// blockSize is the new per-block capacity.
	RecordExpand(blockSize int)

	// RecordCompress is called after a global compression.
	// blockSize is the new per-block capacity.
	RecordCompress(blockSize int)

	// RecordClear is called after a clear.
	// count is the number of elements released.
	RecordClear(count int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(int)   {}
func (NoopMetricsCollector) RecordRemove(int)   {}
func (NoopMetricsCollector) RecordExpand(int)   {}
func (NoopMetricsCollector) RecordCompress(int) {}
func (NoopMetricsCollector) RecordClear(int)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount   atomic.Int64
	InsertRelayed atomic.Int64
	RemoveCount   atomic.Int64
	RemoveRelayed atomic.Int64
	ExpandCount   atomic.Int64
	CompressCount atomic.Int64
	ClearCount    atomic.Int64
	ClearElements atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(relayed int) {
	b.InsertCount.Add(1)
	b.InsertRelayed.Add(int64(relayed))
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(relayed int) {
	b.RemoveCount.Add(1)
	b.RemoveRelayed.Add(int64(relayed))
}

// RecordExpand implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExpand(int) {
	b.ExpandCount.Add(1)
}

// RecordCompress implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCompress(int) {
	b.CompressCount.Add(1)
}

// RecordClear implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClear(count int) {
	b.ClearCount.Add(1)
	b.ClearElements.Add(int64(count))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:   b.InsertCount.Load(),
		InsertRelayed: b.InsertRelayed.Load(),
		RemoveCount:   b.RemoveCount.Load(),
		RemoveRelayed: b.RemoveRelayed.Load(),
		ExpandCount:   b.ExpandCount.Load(),
		CompressCount: b.CompressCount.Load(),
		ClearCount:    b.ClearCount.Load(),
		ClearElements: b.ClearElements.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount   int64
	InsertRelayed int64
	RemoveCount   int64
	RemoveRelayed int64
	ExpandCount   int64
	CompressCount int64
	ClearCount    int64
	ClearElements int64
}
