// Package walker runs the grid walks of a gridwalk configuration.
//
// Each walk builds its own compact and iterator, so walks share no state
// besides the Runner's concurrency slots and emission limiter.
package walker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/KoT9R/UI-lab/compact"
	"github.com/KoT9R/UI-lab/errs"
	"github.com/KoT9R/UI-lab/internal/config"
	"github.com/KoT9R/UI-lab/logging"
	"github.com/KoT9R/UI-lab/metrics"
	"github.com/KoT9R/UI-lab/vector"
)

// Limits holds the resource limits of a Runner.
type Limits struct {
	// MaxParallel is the maximum number of walks in flight.
	// If 0, defaults to 1.
	MaxParallel int64

	// Emit paces emitted points across all walks.
	// If nil, emission is unlimited.
	Emit *rate.Limiter
}

// Runner executes walks under shared concurrency and emission limits.
type Runner struct {
	limits Limits

	walkSem *semaphore.Weighted
	active  atomic.Int64
	emitted atomic.Int64

	logger    *logging.Logger
	collector metrics.Collector
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger configures diagnostic logging for the runner and the compacts
// it builds.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithMetricsCollector records compact operations and iterator steps.
func WithMetricsCollector(mc metrics.Collector) Option {
	return func(r *Runner) {
		if mc == nil {
			mc = metrics.NoopCollector{}
		}
		r.collector = mc
	}
}

// New creates a runner enforcing limits.
func New(limits Limits, opts ...Option) *Runner {
	if limits.MaxParallel <= 0 {
		limits.MaxParallel = 1
	}

	r := &Runner{
		limits:    limits,
		walkSem:   semaphore.NewWeighted(limits.MaxParallel),
		collector: metrics.NoopCollector{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FromConfig creates a runner with the limits of cfg.
func FromConfig(cfg config.Config, opts ...Option) *Runner {
	return New(Limits{
		MaxParallel: int64(cfg.MaxParallel),
		Emit:        cfg.EmitLimiter.Limiter(),
	}, opts...)
}

// AcquireWalk reserves a walk slot, blocking until one is free or ctx is done.
func (r *Runner) AcquireWalk(ctx context.Context) error {
	if err := r.walkSem.Acquire(ctx, 1); err != nil {
		return err
	}
	r.active.Add(1)
	return nil
}

// TryAcquireWalk reserves a walk slot without blocking.
func (r *Runner) TryAcquireWalk() bool {
	if !r.walkSem.TryAcquire(1) {
		return false
	}
	r.active.Add(1)
	return true
}

// ReleaseWalk releases a walk slot.
func (r *Runner) ReleaseWalk() {
	r.active.Add(-1)
	r.walkSem.Release(1)
}

// Active returns the number of walks in flight.
func (r *Runner) Active() int64 {
	return r.active.Load()
}

// AcquireEmit waits until the emission limit allows one more point.
func (r *Runner) AcquireEmit(ctx context.Context) error {
	if r.limits.Emit == nil {
		return ctx.Err()
	}
	return r.limits.Emit.Wait(ctx)
}

// Emitted returns the number of points emitted so far.
func (r *Runner) Emitted() int64 {
	return r.emitted.Load()
}

// Result is the outcome of one walk.
type Result struct {
	Name    string
	Compact *compact.Compact
	Points  [][]float64

	// Exhausted is true when the walk ended because no grid point was left,
	// rather than by reaching its limit.
	Exhausted bool
}

// Run executes every walk of cfg and returns the results in configuration
// order. The first failing walk cancels the others; results of walks that
// completed are still returned.
func (r *Runner) Run(ctx context.Context, cfg config.Config) ([]Result, error) {
	results := make([]Result, len(cfg.Walks))
	g, ctx := errgroup.WithContext(ctx)

	for i, w := range cfg.Walks {
		g.Go(func() error {
			if err := r.AcquireWalk(ctx); err != nil {
				return err
			}
			defer r.ReleaseWalk()

			res, err := r.walk(ctx, w, cfg.Tolerance)
			results[i] = res
			if err != nil {
				return fmt.Errorf("walk %q: %w", w.Name, err)
			}
			r.logger.Debug("walk finished", "walk", w.Name, "points", len(res.Points), "exhausted", res.Exhausted)
			return nil
		})
	}

	return results, g.Wait()
}

func (r *Runner) walk(ctx context.Context, w config.Walk, tol float64) (Result, error) {
	res := Result{Name: w.Name}

	c, it, err := Build(w,
		compact.WithTolerance(tol),
		compact.WithLogger(r.logger.WithOp(w.Name).WithDimension(len(w.Low))),
		compact.WithMetricsCollector(r.collector),
	)
	if err != nil {
		return res, err
	}
	res.Compact = c

	for {
		if err := r.AcquireEmit(ctx); err != nil {
			return res, err
		}
		res.Points = append(res.Points, it.Point().Coords())
		r.emitted.Add(1)

		if w.Limit > 0 && len(res.Points) >= w.Limit {
			return res, nil
		}
		if err := it.Advance(); err != nil {
			if errors.Is(err, errs.ErrOutOfBounds) {
				res.Exhausted = true
				return res, nil
			}
			return res, err
		}
	}
}

// Build creates the compact and the positioned iterator described by w.
func Build(w config.Walk, opts ...compact.Option) (*compact.Compact, *compact.Iterator, error) {
	lo, err := vector.New(w.Low)
	if err != nil {
		return nil, nil, fmt.Errorf("low: %w", err)
	}
	hi, err := vector.New(w.High)
	if err != nil {
		return nil, nil, fmt.Errorf("high: %w", err)
	}
	c, err := compact.New(lo, hi, opts...)
	if err != nil {
		return nil, nil, err
	}

	var step *vector.Vector
	if len(w.Step) > 0 {
		if step, err = vector.New(w.Step); err != nil {
			return nil, nil, fmt.Errorf("step: %w", err)
		}
	}

	var it *compact.Iterator
	if w.Reverse {
		it, err = c.End(step)
	} else {
		it, err = c.Begin(step)
	}
	if err != nil {
		return nil, nil, err
	}

	if len(w.Direction) > 0 {
		dir, err := vector.New(w.Direction)
		if err != nil {
			return nil, nil, fmt.Errorf("direction: %w", err)
		}
		if err := it.SetDirection(dir); err != nil {
			return nil, nil, err
		}
	}
	return c, it, nil
}

// Hull returns the smallest compact containing the compacts of every result.
func Hull(results []Result) (*compact.Compact, error) {
	var hull *compact.Compact
	for _, res := range results {
		if res.Compact == nil {
			continue
		}
		if hull == nil {
			hull = res.Compact
			continue
		}
		var err error
		if hull, err = compact.MakeConvex(hull, res.Compact); err != nil {
			return nil, fmt.Errorf("walk %q: %w", res.Name, err)
		}
	}
	if hull == nil {
		return nil, fmt.Errorf("no walk produced a compact: %w", errs.ErrNotFound)
	}
	return hull, nil
}
