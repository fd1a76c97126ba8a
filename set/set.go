// Package set provides an ordered collection of vectors that are distinct
// within a tolerance under a chosen norm.
//
// Membership is approximate: two vectors are the same element when the norm
// of their difference is below the tolerance passed to the call. Elements
// keep their insertion order. A Set is safe for concurrent use. Union and
// Intersect read a snapshot of their second operand and never hold two set
// locks at once.
package set

import (
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/KoT9R/UI-lab/compact"
	"github.com/KoT9R/UI-lab/errs"
	"github.com/KoT9R/UI-lab/logging"
	"github.com/KoT9R/UI-lab/vector"
)

// Set holds vectors of a single dimension.
type Set struct {
	mu     sync.RWMutex
	items  []*vector.Vector
	logger *logging.Logger
}

// Option configures a Set.
type Option func(*Set)

// WithLogger attaches a diagnostic logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Set) {
		s.logger = l
	}
}

// New creates an empty set.
func New(opts ...Option) *Set {
	s := &Set{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of elements.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Dim returns the dimension of the elements, or 0 for an empty set.
func (s *Set) Dim() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dim()
}

func (s *Set) dim() int {
	if len(s.items) == 0 {
		return 0
	}
	return s.items[0].Dim()
}

// Insert appends a copy of v.
// It fails with errs.ErrMultipleDefinition if an equal element is present.
func (s *Set) Insert(v *vector.Vector, norm vector.Norm, tol float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logger.Result("set insert", s.insert(v, norm, tol))
}

func (s *Set) insert(v *vector.Vector, norm vector.Norm, tol float64) error {
	if v == nil {
		return errs.ErrInvalidReference
	}
	if len(s.items) > 0 {
		if err := errs.Dimension(s.dim(), v.Dim()); err != nil {
			return err
		}
	}
	i, err := s.index(v, norm, tol)
	if err != nil {
		return err
	}
	if i >= 0 {
		return fmt.Errorf("%v equals element %d: %w", v, i, errs.ErrMultipleDefinition)
	}
	s.items = append(s.items, v.Clone())
	return nil
}

// index returns the position of the first element equal to v, or -1.
func (s *Set) index(v *vector.Vector, norm vector.Norm, tol float64) (int, error) {
	for i, item := range s.items {
		eq, err := vector.Equals(item, v, norm, tol)
		if err != nil {
			return -1, err
		}
		if eq {
			return i, nil
		}
	}
	return -1, nil
}

// At returns a copy of the element at position i.
func (s *Set) At(i int) (*vector.Vector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.items) {
		return nil, s.logger.Result("set at", fmt.Errorf("index %d of %d: %w", i, len(s.items), errs.ErrOutOfBounds))
	}
	return s.items[i].Clone(), nil
}

// Find returns a copy of the first element equal to sample.
func (s *Set) Find(sample *vector.Vector, norm vector.Norm, tol float64) (*vector.Vector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, err := s.lookup(sample, norm, tol)
	if err != nil {
		return nil, s.logger.Result("set find", err)
	}
	return s.items[i].Clone(), nil
}

// lookup is index with nil and missing samples reported as errors.
func (s *Set) lookup(sample *vector.Vector, norm vector.Norm, tol float64) (int, error) {
	if sample == nil {
		return -1, errs.ErrInvalidReference
	}
	i, err := s.index(sample, norm, tol)
	if err != nil {
		return -1, err
	}
	if i < 0 {
		return -1, fmt.Errorf("%v: %w", sample, errs.ErrNotFound)
	}
	return i, nil
}

// Erase removes the first element equal to sample.
func (s *Set) Erase(sample *vector.Vector, norm vector.Norm, tol float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.lookup(sample, norm, tol)
	if err != nil {
		return s.logger.Result("set erase", err)
	}
	s.remove(i)
	return nil
}

// EraseAt removes the element at position i.
func (s *Set) EraseAt(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.items) {
		return s.logger.Result("set erase", fmt.Errorf("index %d of %d: %w", i, len(s.items), errs.ErrOutOfBounds))
	}
	s.remove(i)
	return nil
}

func (s *Set) remove(i int) {
	copy(s.items[i:], s.items[i+1:])
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
}

// Clear removes every element.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.items)
	s.items = s.items[:0]
}

// Clone returns a deep copy of s.
func (s *Set) Clone() *Set {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cloneLocked()
}

func (s *Set) cloneLocked() *Set {
	c := &Set{logger: s.logger, items: make([]*vector.Vector, len(s.items))}
	for i, item := range s.items {
		c.items[i] = item.Clone()
	}
	return c
}

// All returns an iterator over copies of the elements in insertion order.
// The set is read-locked while the loop body runs.
func (s *Set) All() iter.Seq[*vector.Vector] {
	return func(yield func(*vector.Vector) bool) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		for _, item := range s.items {
			if !yield(item.Clone()) {
				return
			}
		}
	}
}

// Within returns the elements of s that lie inside c.
func (s *Set) Within(c *compact.Compact) (*Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c == nil {
		return nil, s.logger.Result("set within", errs.ErrInvalidReference)
	}

	out := &Set{logger: s.logger}
	for _, item := range s.items {
		in, err := c.Contains(item)
		if err != nil {
			return nil, s.logger.Result("set within", err)
		}
		if in {
			out.items = append(out.items, item.Clone())
		}
	}
	return out, nil
}

// Union returns the elements of a followed by the elements of b that are not
// already in a. If exactly one operand is nil a copy of the other is returned.
func Union(a, b *Set, norm vector.Norm, tol float64) (*Set, error) {
	if c, done, err := trivial(a, b); done {
		return c, err
	}
	if a == b {
		return a.Clone(), nil
	}

	bs := b.Clone()
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := a.cloneLocked()
	for _, item := range bs.items {
		if err := out.insert(item, norm, tol); err != nil && !errors.Is(err, errs.ErrMultipleDefinition) {
			return nil, a.logger.Result("set union", err)
		}
	}
	return out, nil
}

// Intersect returns the elements of a that have an equal element in b.
// If exactly one operand is nil a copy of the other is returned.
func Intersect(a, b *Set, norm vector.Norm, tol float64) (*Set, error) {
	if c, done, err := trivial(a, b); done {
		return c, err
	}
	if a == b {
		return a.Clone(), nil
	}

	bs := b.Clone()
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := &Set{logger: a.logger}
	for _, item := range a.items {
		i, err := bs.index(item, norm, tol)
		if err != nil {
			return nil, a.logger.Result("set intersect", err)
		}
		if i >= 0 {
			out.items = append(out.items, item.Clone())
		}
	}
	return out, nil
}

// trivial handles nil operands of a binary operation.
func trivial(a, b *Set) (*Set, bool, error) {
	switch {
	case a == nil && b == nil:
		return nil, true, errs.ErrInvalidReference
	case a == nil:
		return b.Clone(), true, nil
	case b == nil:
		return a.Clone(), true, nil
	default:
		return nil, false, nil
	}
}
