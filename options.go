package docpack

import (
	"runtime"

	"github.com/hupe1980/docpack/codec"
)

type options struct {
	codec       codec.Codec
	impact      uint16
	logger      *Logger
	metrics     MetricsCollector
	concurrency int
}

func defaultOptions() options {
	return options{
		codec:       codec.Default,
		logger:      NoopLogger(),
		metrics:     NoopMetricsCollector{},
		concurrency: runtime.GOMAXPROCS(0),
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures encode/decode behavior.
//
// Options exist to avoid exploding the API surface with codec-specific
// function variants.
type Option func(*options)

// WithCodec configures the block codec.
//
// If nil is passed, codec.Default is used. Encoder and decoder must use the
// same codec: the wire formats carry no version tag.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithImpact sets the impact score bucket recorded in the block metadata.
// The impact value does not influence the compressed bytes.
func WithImpact(impact uint16) Option {
	return func(o *options) {
		o.impact = impact
	}
}

// WithLogger configures structured logging. If nil is passed, logging is
// disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics configures a metrics collector. If nil is passed, metrics are
// disabled.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithConcurrency bounds the number of blocks EncodeAll/DecodeAll process in
// parallel. Values below 1 reset to GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.concurrency = n
	}
}
