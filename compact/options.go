package compact

import (
	"time"

	"github.com/KoT9R/UI-lab/logging"
	"github.com/KoT9R/UI-lab/metrics"
)

// DefaultTolerance is the threshold below which coordinate differences are
// treated as equal.
const DefaultTolerance = 1e-5

type options struct {
	logger    *logging.Logger
	tolerance float64
	collector metrics.Collector
}

// Option configures a Compact.
//
// Compacts produced by Intersection, Add and MakeConvex inherit the options of
// their first operand.
type Option func(*options)

// WithLogger configures diagnostic logging.
// Pass nil to disable logging.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTolerance configures the floating-point tolerance used by iterators and
// the merge test. Non-positive values select DefaultTolerance.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol <= 0 {
			tol = DefaultTolerance
		}
		o.tolerance = tol
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicCollector:
//
//	m := &metrics.BasicCollector{}
//	c, _ := compact.New(low, high, compact.WithMetricsCollector(m))
//	// ... use c ...
//	stats := m.GetStats()
func WithMetricsCollector(mc metrics.Collector) Option {
	return func(o *options) {
		if mc == nil {
			mc = metrics.NoopCollector{}
		}
		o.collector = mc
	}
}

func newOptions(opts []Option) options {
	o := options{
		tolerance: DefaultTolerance,
		collector: metrics.NoopCollector{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// finish reports the outcome of op to the collector and the logger and
// returns err unchanged.
func (o options) finish(op string, start time.Time, err error) error {
	o.collector.RecordOperation(op, time.Since(start), err)
	return o.logger.Result("compact "+op, err)
}
