package tieredvec

import (
	"log/slog"

	"github.com/hupe1980/tieredvec/resource"
)

type options struct {
	logger     *Logger
	metrics    MetricsCollector
	controller *resource.Controller
}

// Option is a function type that configures vector construction behavior.
type Option func(*options)

// WithLogger configures structured logging for resize and clear events.
// Pass nil to keep logging disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to keep metrics disabled.
//
// Example with BasicMetricsCollector:
//
//	metrics := &tieredvec.BasicMetricsCollector{}
//	v := tieredvec.New[int](tieredvec.WithMetricsCollector(metrics))
//	// ... use v ...
//	stats := metrics.GetStats()
//	fmt.Printf("Inserts: %d, Expands: %d\n", stats.InsertCount, stats.ExpandCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metrics = mc
		}
	}
}

// WithResourceController accounts every block buffer against the given
// controller. Block creation that would exceed the controller's memory limit
// panics with ErrMemoryLimit.
//
// Accounting covers the fixed block buffers only, not memory referenced by
// the elements themselves.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
