package docpack

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordEncode is called after each encode operation. count is the
	// number of ids, bytes the compressed size (0 on failure), duration the
	// total time taken; err is nil if successful.
	RecordEncode(count, bytes int, duration time.Duration, err error)

	// RecordDecode is called after each decode operation.
	RecordDecode(count int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEncode(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordDecode(int, time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EncodeCount      atomic.Int64
	EncodeErrors     atomic.Int64
	EncodeTotalNanos atomic.Int64
	EncodedInts      atomic.Int64
	EncodedBytes     atomic.Int64
	DecodeCount      atomic.Int64
	DecodeErrors     atomic.Int64
	DecodeTotalNanos atomic.Int64
}

func (m *BasicMetricsCollector) RecordEncode(count, bytes int, duration time.Duration, err error) {
	m.EncodeCount.Add(1)
	m.EncodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		m.EncodeErrors.Add(1)
		return
	}
	m.EncodedInts.Add(int64(count))
	m.EncodedBytes.Add(int64(bytes))
}

func (m *BasicMetricsCollector) RecordDecode(count int, duration time.Duration, err error) {
	m.DecodeCount.Add(1)
	m.DecodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		m.DecodeErrors.Add(1)
	}
}

// CompressionRatio returns encoded bytes per integer across all successful
// encodes, or 0 if nothing was encoded yet.
func (m *BasicMetricsCollector) CompressionRatio() float64 {
	ints := m.EncodedInts.Load()
	if ints == 0 {
		return 0
	}
	return float64(m.EncodedBytes.Load()) / float64(ints)
}
