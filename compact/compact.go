// Package compact implements axis-aligned hyperrectangles ("compacts") over
// real vector spaces, their containment and merge algebra, and a grid
// iterator whose axis nesting order is chosen at runtime.
//
// # Algebra
//
//	a, _ := compact.New(lowA, highA)
//	b, _ := compact.New(lowB, highB)
//	hull, _ := compact.MakeConvex(a, b) // always defined
//	cut, err := compact.Intersection(a, b) // errs.ErrNoOverlap if disjoint
//	union, err := compact.Add(a, b)       // errs.ErrNotMergeable unless the union is a box
//
// # Iteration
//
//	it, _ := c.Begin(step)
//	_ = it.SetDirection(dir) // permutation of axis indices, axis with value 0 varies fastest
//	for p := range it.All() {
//	    fmt.Println(p)
//	}
//
// A Compact is immutable. An Iterator owns a private clone of its Compact and
// is not safe for concurrent use.
package compact

import (
	"fmt"
	"math"
	"time"

	"github.com/KoT9R/UI-lab/errs"
	"github.com/KoT9R/UI-lab/metrics"
	"github.com/KoT9R/UI-lab/vector"
)

// Compact is an axis-aligned box [low, high] with low[i] <= high[i] on every axis.
type Compact struct {
	low  *vector.Vector
	high *vector.Vector
	opts options
}

// New creates the compact spanned by corners a and b.
//
// The corners may be passed in either order, but one must be component-wise
// less than or equal to the other. Otherwise New fails with errs.ErrWrongArgument.
func New(a, b *vector.Vector, opts ...Option) (*Compact, error) {
	o := newOptions(opts)
	start := time.Now()
	c, err := build(a, b, o)
	return c, o.finish(metrics.OpCreate, start, err)
}

func build(a, b *vector.Vector, o options) (*Compact, error) {
	if a == nil || b == nil {
		return nil, errs.ErrInvalidReference
	}
	if err := errs.Dimension(a.Dim(), b.Dim()); err != nil {
		return nil, err
	}

	switch {
	case vector.LessEq(a, b):
		return &Compact{low: a.Clone(), high: b.Clone(), opts: o}, nil
	case vector.LessEq(b, a):
		return &Compact{low: b.Clone(), high: a.Clone(), opts: o}, nil
	default:
		return nil, fmt.Errorf("corners %v and %v are not ordered on every axis: %w", a, b, errs.ErrWrongArgument)
	}
}

// Dim returns the dimension of the compact.
func (c *Compact) Dim() int {
	if c == nil {
		return 0
	}
	return c.low.Dim()
}

// Low returns a copy of the minimum corner.
func (c *Compact) Low() *vector.Vector {
	if c == nil {
		return nil
	}
	return c.low.Clone()
}

// High returns a copy of the maximum corner.
func (c *Compact) High() *vector.Vector {
	if c == nil {
		return nil
	}
	return c.high.Clone()
}

// Clone returns a deep copy of c with the same options.
func (c *Compact) Clone() *Compact {
	if c == nil {
		return nil
	}
	return &Compact{low: c.low.Clone(), high: c.high.Clone(), opts: c.opts}
}

// Tolerance returns the tolerance configured for c, or DefaultTolerance for
// a nil compact.
func (c *Compact) Tolerance() float64 {
	if c == nil {
		return DefaultTolerance
	}
	return c.opts.tolerance
}

// Contains reports whether low[i] <= p[i] <= high[i] on every axis.
func (c *Compact) Contains(p *vector.Vector) (bool, error) {
	if c == nil {
		return false, errs.ErrInvalidReference
	}
	start := time.Now()
	ok, err := c.contains(p)
	return ok, c.opts.finish(metrics.OpContains, start, err)
}

func (c *Compact) contains(p *vector.Vector) (bool, error) {
	if p == nil {
		return false, errs.ErrInvalidReference
	}
	if err := errs.Dimension(c.Dim(), p.Dim()); err != nil {
		return false, err
	}
	return vector.LessEq(c.low, p) && vector.LessEq(p, c.high), nil
}

// IsSubset reports whether c contains both corners of other.
func (c *Compact) IsSubset(other *Compact) (bool, error) {
	if c == nil {
		return false, errs.ErrInvalidReference
	}
	start := time.Now()
	ok, err := c.isSubset(other)
	return ok, c.opts.finish(metrics.OpIsSubset, start, err)
}

func (c *Compact) isSubset(other *Compact) (bool, error) {
	if other == nil {
		return false, errs.ErrInvalidReference
	}
	in, err := c.contains(other.low)
	if err != nil || !in {
		return false, err
	}
	return c.contains(other.high)
}

// Intersects reports whether c and other share a region of positive extent
// on every axis. Boxes that only touch along a face do not intersect.
func (c *Compact) Intersects(other *Compact) (bool, error) {
	if c == nil {
		return false, errs.ErrInvalidReference
	}
	start := time.Now()
	ok, err := c.intersects(other)
	return ok, c.opts.finish(metrics.OpIntersects, start, err)
}

func (c *Compact) intersects(other *Compact) (bool, error) {
	l, r, err := overlap(c, other)
	if err != nil {
		return false, err
	}
	return vector.Less(l, r), nil
}

// overlap returns the component-wise max of the lows and min of the highs.
func overlap(a, b *Compact) (*vector.Vector, *vector.Vector, error) {
	if err := checkPair(a, b); err != nil {
		return nil, nil, err
	}
	l, err := vector.Max(a.low, b.low)
	if err != nil {
		return nil, nil, err
	}
	r, err := vector.Min(a.high, b.high)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

// hull returns the component-wise min of the lows and max of the highs.
func hull(a, b *Compact) (*vector.Vector, *vector.Vector, error) {
	if err := checkPair(a, b); err != nil {
		return nil, nil, err
	}
	l, err := vector.Min(a.low, b.low)
	if err != nil {
		return nil, nil, err
	}
	r, err := vector.Max(a.high, b.high)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func checkPair(a, b *Compact) error {
	if a == nil || b == nil {
		return errs.ErrInvalidReference
	}
	return errs.Dimension(a.Dim(), b.Dim())
}

// Extent returns high - low. It is nil if both corners share an infinite
// coordinate.
func (c *Compact) Extent() *vector.Vector {
	if c == nil {
		return nil
	}
	d, _ := vector.Sub(c.high, c.low)
	return d
}

// Center returns the midpoint of the compact, or nil where Extent is nil.
func (c *Compact) Center() *vector.Vector {
	if c == nil {
		return nil
	}
	coords := c.low.Coords()
	for i := range coords {
		coords[i] += (c.high.Coord(i) - coords[i]) / 2
	}
	v, _ := vector.New(coords, vector.WithLogger(c.low.Logger()))
	return v
}

// Volume returns the product of the extents along every axis, or NaN for a
// nil compact.
func (c *Compact) Volume() float64 {
	if c == nil {
		return math.NaN()
	}
	v := 1.0
	for i := range c.Dim() {
		v *= c.high.Coord(i) - c.low.Coord(i)
	}
	return v
}

func (c *Compact) String() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("[%v, %v]", c.low, c.high)
}
