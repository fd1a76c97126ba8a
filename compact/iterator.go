package compact

import (
	"cmp"
	"fmt"
	"iter"
	"math"
	"slices"
	"time"

	"github.com/KoT9R/UI-lab/errs"
	"github.com/KoT9R/UI-lab/metrics"
	"github.com/KoT9R/UI-lab/vector"
)

// Iterator walks the grid of a compact one step at a time, odometer style.
//
// The direction is a permutation of axis indices: the axis whose direction
// value is smallest varies fastest. A forward iterator starts at the low
// corner and moves up; a reverse iterator starts at the high corner and
// moves down.
type Iterator struct {
	compact   *Compact
	step      *vector.Vector
	current   *vector.Vector
	direction *vector.Vector
	order     []int
	reverse   bool
}

// Begin returns a forward iterator starting at the low corner.
// A nil step selects a unit step on every axis.
func (c *Compact) Begin(step *vector.Vector) (*Iterator, error) {
	return c.iterator("compact begin", step, false)
}

// End returns a reverse iterator starting at the high corner.
// A nil step selects a unit step on every axis.
func (c *Compact) End(step *vector.Vector) (*Iterator, error) {
	return c.iterator("compact end", step, true)
}

func (c *Compact) iterator(op string, step *vector.Vector, reverse bool) (*Iterator, error) {
	if c == nil {
		return nil, errs.ErrInvalidReference
	}
	dim := c.Dim()
	if step == nil {
		var err error
		if step, err = vector.Fill(dim, 1, vector.WithLogger(c.low.Logger())); err != nil {
			return nil, c.opts.logger.Result(op, err)
		}
	}
	if err := errs.Dimension(dim, step.Dim()); err != nil {
		return nil, c.opts.logger.Result(op, err)
	}
	for i := range dim {
		if step.Coord(i) < 0 {
			return nil, c.opts.logger.Result(op, fmt.Errorf("step[%d] = %v is negative: %w", i, step.Coord(i), errs.ErrWrongArgument))
		}
	}

	identity := make([]float64, dim)
	order := make([]int, dim)
	for i := range dim {
		identity[i] = float64(i)
		order[i] = i
	}
	direction, err := vector.New(identity, vector.WithLogger(c.low.Logger()))
	if err != nil {
		return nil, c.opts.logger.Result(op, err)
	}

	it := &Iterator{
		compact:   c.Clone(),
		step:      step.Clone(),
		direction: direction,
		order:     order,
		reverse:   reverse,
	}
	it.Reset()
	return it, c.opts.logger.Result(op, nil)
}

// Reset moves the iterator back to its starting corner. The direction is kept.
func (it *Iterator) Reset() {
	if it.reverse {
		it.current = it.compact.high.Clone()
	} else {
		it.current = it.compact.low.Clone()
	}
}

// Point returns a copy of the current position. Each call returns a fresh
// vector owned by the caller.
func (it *Iterator) Point() *vector.Vector {
	return it.current.Clone()
}

// Direction returns a copy of the direction permutation.
func (it *Iterator) Direction() *vector.Vector {
	return it.direction.Clone()
}

// Order returns the axes from fastest to slowest varying.
func (it *Iterator) Order() []int {
	return slices.Clone(it.order)
}

// Reverse reports whether the iterator walks from the high corner down.
func (it *Iterator) Reverse() bool {
	return it.reverse
}

// SetDirection sets the axis nesting order. dir must hold each integer in
// [0, dim-1] exactly once, within tolerance; otherwise errs.ErrWrongArgument
// is returned and the previous direction is kept.
func (it *Iterator) SetDirection(dir *vector.Vector) error {
	start := time.Now()
	err := it.setDirection(dir)
	return it.compact.opts.finish(metrics.OpSetDirection, start, err)
}

func (it *Iterator) setDirection(dir *vector.Vector) error {
	if dir == nil {
		return errs.ErrInvalidReference
	}
	dim := it.compact.Dim()
	if err := errs.Dimension(dim, dir.Dim()); err != nil {
		return err
	}

	tol := it.compact.opts.tolerance
	ranks := make([]int, dim)
	seen := make([]bool, dim)
	for i := range dim {
		v := dir.Coord(i)
		r := math.Round(v)
		if math.Abs(v-r) > tol {
			return fmt.Errorf("direction[%d] = %v is not an axis index: %w", i, v, errs.ErrWrongArgument)
		}
		if r < 0 || r > float64(dim-1) {
			return fmt.Errorf("direction[%d] = %v is outside [0, %d]: %w", i, v, dim-1, errs.ErrWrongArgument)
		}
		if seen[int(r)] {
			return fmt.Errorf("direction[%d] = %v repeats an axis index: %w", i, v, errs.ErrWrongArgument)
		}
		seen[int(r)] = true
		ranks[i] = int(r)
	}

	order := make([]int, dim)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(ranks[a], ranks[b])
	})

	it.direction = dir.Clone()
	it.order = order
	return nil
}

// Advance moves to the next grid point.
//
// The first axis in order that can still move takes one step; every faster
// axis before it rolls over to its starting boundary. When no axis can move
// without leaving the compact, Advance returns errs.ErrOutOfBounds and the
// position is unchanged.
//
// An axis whose next step would land tolerance or more past its far boundary
// counts as finished, so a step that does not divide the extent rolls over
// instead of ending the walk. A step landing closer than that snaps to the
// boundary.
func (it *Iterator) Advance() error {
	err := it.advance()
	it.compact.opts.collector.RecordStep(err)
	if err != nil {
		it.compact.opts.logger.Debug("iterator exhausted", "point", it.current.String(), "error", err)
	}
	return err
}

func (it *Iterator) advance() error {
	k := slices.IndexFunc(it.order, func(axis int) bool {
		return !it.saturated(axis)
	})
	if k < 0 {
		return fmt.Errorf("no axis can advance from %v: %w", it.current, errs.ErrOutOfBounds)
	}

	coords := it.current.Coords()
	for _, axis := range it.order[:k] {
		coords[axis] = it.near(axis)
	}

	active := it.order[k]
	next := coords[active] + it.sign()*it.step.Coord(active)
	if far := it.far(active); math.Abs(next-far) < it.compact.opts.tolerance {
		next = far
	}
	coords[active] = next

	candidate, err := vector.New(coords, vector.WithLogger(it.current.Logger()))
	if err != nil {
		return err
	}
	if in, err := it.compact.contains(candidate); err != nil || !in {
		return fmt.Errorf("step to %v leaves %v: %w", candidate, it.compact, errs.ErrOutOfBounds)
	}

	it.current = candidate
	return nil
}

// saturated reports whether axis cannot take another step: it already sits
// on its far boundary, its step is zero, or one more step overshoots.
func (it *Iterator) saturated(axis int) bool {
	tol := it.compact.opts.tolerance
	cur := it.current.Coord(axis)
	far := it.far(axis)
	step := it.step.Coord(axis)

	if math.Abs(cur-far) < tol || step < tol {
		return true
	}
	next := cur + it.sign()*step
	if it.reverse {
		return next <= far-tol
	}
	return next >= far+tol
}

func (it *Iterator) sign() float64 {
	if it.reverse {
		return -1
	}
	return 1
}

// near is the boundary an axis starts from and rolls back to.
func (it *Iterator) near(axis int) float64 {
	if it.reverse {
		return it.compact.high.Coord(axis)
	}
	return it.compact.low.Coord(axis)
}

// far is the boundary an axis walks towards.
func (it *Iterator) far(axis int) float64 {
	if it.reverse {
		return it.compact.low.Coord(axis)
	}
	return it.compact.high.Coord(axis)
}

// All returns an iterator over the current point followed by every point
// reached by Advance until the walk is exhausted.
//
// Example:
//
//	for p := range it.All() {
//	    fmt.Println(p)
//	}
func (it *Iterator) All() iter.Seq[*vector.Vector] {
	return func(yield func(*vector.Vector) bool) {
		if !yield(it.Point()) {
			return
		}
		for it.Advance() == nil {
			if !yield(it.Point()) {
				return
			}
		}
	}
}
