// Package metrics collects operational counters for compacts and iterators.
package metrics

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KoT9R/UI-lab/errs"
)

// Operation names recorded by the compact package.
const (
	OpCreate       = "create"
	OpContains     = "contains"
	OpIsSubset     = "is_subset"
	OpIntersects   = "intersects"
	OpIntersection = "intersection"
	OpAdd          = "add"
	OpMakeConvex   = "make_convex"
	OpSetDirection = "set_direction"
)

// Collector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type Collector interface {
	// RecordOperation is called after each compact operation.
	// duration is the total time taken, err is nil if successful.
	RecordOperation(op string, duration time.Duration, err error)

	// RecordStep is called after each iterator advance.
	// err is errs.ErrOutOfBounds once the iterator is exhausted.
	RecordStep(err error)
}

// NoopCollector is a no-op implementation of Collector.
type NoopCollector struct{}

func (NoopCollector) RecordOperation(string, time.Duration, error) {}
func (NoopCollector) RecordStep(error)                             {}

// BasicCollector provides simple in-memory metrics collection.
// It is safe for concurrent use.
type BasicCollector struct {
	mu  sync.Mutex
	ops map[string]*opCounter

	Steps       atomic.Int64
	Exhaustions atomic.Int64
	StepErrors  atomic.Int64
}

type opCounter struct {
	count      int64
	errors     int64
	totalNanos int64
}

// RecordOperation implements Collector.
func (b *BasicCollector) RecordOperation(op string, duration time.Duration, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ops == nil {
		b.ops = make(map[string]*opCounter)
	}
	c, ok := b.ops[op]
	if !ok {
		c = &opCounter{}
		b.ops[op] = c
	}
	c.count++
	c.totalNanos += duration.Nanoseconds()
	if err != nil {
		c.errors++
	}
}

// RecordStep implements Collector.
func (b *BasicCollector) RecordStep(err error) {
	switch {
	case err == nil:
		b.Steps.Add(1)
	case errors.Is(err, errs.ErrOutOfBounds):
		b.Exhaustions.Add(1)
	default:
		b.StepErrors.Add(1)
	}
}

// OpStats is a snapshot of one operation's counters.
type OpStats struct {
	Count    int64
	Errors   int64
	AvgNanos int64
}

// Stats is a snapshot of BasicCollector state.
type Stats struct {
	Ops         map[string]OpStats
	Steps       int64
	Exhaustions int64
	StepErrors  int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicCollector) GetStats() Stats {
	b.mu.Lock()
	ops := make(map[string]OpStats, len(b.ops))
	for name, c := range b.ops {
		var avg int64
		if c.count > 0 {
			avg = c.totalNanos / c.count
		}
		ops[name] = OpStats{Count: c.count, Errors: c.errors, AvgNanos: avg}
	}
	b.mu.Unlock()

	return Stats{
		Ops:         ops,
		Steps:       b.Steps.Load(),
		Exhaustions: b.Exhaustions.Load(),
		StepErrors:  b.StepErrors.Load(),
	}
}
