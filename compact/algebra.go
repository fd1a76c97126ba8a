package compact

import (
	"fmt"
	"math"
	"time"

	"github.com/KoT9R/UI-lab/errs"
	"github.com/KoT9R/UI-lab/metrics"
	"github.com/KoT9R/UI-lab/vector"
)

// pairOptions picks the options the result of a binary operation inherits.
func pairOptions(a, b *Compact) options {
	switch {
	case a != nil:
		return a.opts
	case b != nil:
		return b.opts
	default:
		return newOptions(nil)
	}
}

// Intersection returns the compact shared by a and b.
// It fails with errs.ErrNoOverlap when a and b do not intersect.
func Intersection(a, b *Compact) (*Compact, error) {
	o := pairOptions(a, b)
	start := time.Now()
	c, err := intersection(a, b, o)
	return c, o.finish(metrics.OpIntersection, start, err)
}

func intersection(a, b *Compact, o options) (*Compact, error) {
	l, r, err := overlap(a, b)
	if err != nil {
		return nil, err
	}
	if !vector.Less(l, r) {
		return nil, fmt.Errorf("%v and %v: %w", a, b, errs.ErrNoOverlap)
	}
	return build(l, r, o)
}

// Add merges a and b into a single compact covering exactly their union.
//
// If one compact contains the other, a copy of the larger is returned.
// Otherwise the boxes must touch or overlap and differ along one axis only;
// any other pair fails with errs.ErrNotMergeable because its bounding box
// would cover space outside both.
func Add(a, b *Compact) (*Compact, error) {
	o := pairOptions(a, b)
	start := time.Now()
	c, err := merge(a, b, o)
	return c, o.finish(metrics.OpAdd, start, err)
}

func merge(a, b *Compact, o options) (*Compact, error) {
	l, r, err := overlap(a, b)
	if err != nil {
		return nil, err
	}
	if !vector.LessEq(l, r) {
		return nil, fmt.Errorf("%v and %v are disjoint: %w", a, b, errs.ErrNotMergeable)
	}

	for _, pair := range [2][2]*Compact{{a, b}, {b, a}} {
		if in, _ := pair[0].isSubset(pair[1]); in {
			c := pair[0].Clone()
			c.opts = o
			return c, nil
		}
	}

	dLow, err := vector.Sub(a.low, b.low)
	if err != nil {
		return nil, err
	}
	dHigh, err := vector.Sub(a.high, b.high)
	if err != nil {
		return nil, err
	}

	axisLow, okLow := singleAxis(dLow, o.tolerance)
	axisHigh, okHigh := singleAxis(dHigh, o.tolerance)
	if !okLow || !okHigh || axisLow != axisHigh {
		return nil, fmt.Errorf("%v and %v differ along more than one axis: %w", a, b, errs.ErrNotMergeable)
	}

	lo, hi, err := hull(a, b)
	if err != nil {
		return nil, err
	}
	return build(lo, hi, o)
}

// singleAxis returns the only axis along which d is non-zero, relative to
// its largest component. ok is false for a zero vector or when more than one
// axis is non-zero.
func singleAxis(d *vector.Vector, tol float64) (axis int, ok bool) {
	norm := d.Norm(vector.NormInf)
	if norm == 0 || math.IsInf(norm, 0) {
		return -1, false
	}

	axis = -1
	for i := range d.Dim() {
		if math.Abs(d.Coord(i))/norm > tol {
			if axis >= 0 {
				return -1, false
			}
			axis = i
		}
	}
	return axis, axis >= 0
}

// MakeConvex returns the smallest compact containing both a and b.
// It fails only for nil or dimension-mismatched operands.
func MakeConvex(a, b *Compact) (*Compact, error) {
	o := pairOptions(a, b)
	start := time.Now()
	c, err := makeConvex(a, b, o)
	return c, o.finish(metrics.OpMakeConvex, start, err)
}

func makeConvex(a, b *Compact, o options) (*Compact, error) {
	lo, hi, err := hull(a, b)
	if err != nil {
		return nil, err
	}
	return build(lo, hi, o)
}
