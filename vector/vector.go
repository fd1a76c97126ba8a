// Package vector provides a fixed-dimension real vector with norms and
// element-wise arithmetic.
//
// A Vector never holds a NaN coordinate: construction and SetCoord reject it.
// Binary operations return a new Vector and leave their operands untouched.
package vector

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/KoT9R/UI-lab/errs"
	"github.com/KoT9R/UI-lab/logging"
)

// Vector is a point in a finite-dimensional real space.
type Vector struct {
	coords []float64
	logger *logging.Logger
}

// Option configures a Vector.
type Option func(*Vector)

// WithLogger attaches a diagnostic logger. A nil logger disables diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(v *Vector) {
		v.logger = l
	}
}

// New creates a vector holding a copy of coords.
func New(coords []float64, opts ...Option) (*Vector, error) {
	v := &Vector{}
	for _, opt := range opts {
		opt(v)
	}

	if len(coords) == 0 {
		return nil, v.logger.Result("vector create", errs.ErrInvalidDimension)
	}
	for i, c := range coords {
		if math.IsNaN(c) {
			return nil, v.logger.Result("vector create", fmt.Errorf("coordinate %d: %w", i, errs.ErrNaN))
		}
	}

	v.coords = slices.Clone(coords)
	return v, nil
}

// Zeros creates a dim-dimensional zero vector.
func Zeros(dim int, opts ...Option) (*Vector, error) {
	return Fill(dim, 0, opts...)
}

// Fill creates a dim-dimensional vector with every coordinate set to value.
func Fill(dim int, value float64, opts ...Option) (*Vector, error) {
	if dim <= 0 {
		return New(nil, opts...)
	}
	coords := make([]float64, dim)
	for i := range coords {
		coords[i] = value
	}
	return New(coords, opts...)
}

// Dim returns the number of coordinates.
func (v *Vector) Dim() int {
	if v == nil {
		return 0
	}
	return len(v.coords)
}

// Clone returns a deep copy of v that shares its logger.
func (v *Vector) Clone() *Vector {
	if v == nil {
		return nil
	}
	return &Vector{coords: slices.Clone(v.coords), logger: v.logger}
}

// Coord returns coordinate i, or NaN if i is out of range or v is nil.
func (v *Vector) Coord(i int) float64 {
	if i < 0 || i >= v.Dim() {
		return math.NaN()
	}
	return v.coords[i]
}

// SetCoord sets coordinate i to value.
func (v *Vector) SetCoord(i int, value float64) error {
	if v == nil {
		return errs.ErrInvalidReference
	}
	if i < 0 || i >= len(v.coords) {
		return v.logger.Result("vector set coord", fmt.Errorf("index %d of %d: %w", i, len(v.coords), errs.ErrOutOfBounds))
	}
	if math.IsNaN(value) {
		return v.logger.Result("vector set coord", fmt.Errorf("coordinate %d: %w", i, errs.ErrNaN))
	}
	v.coords[i] = value
	return nil
}

// Coords returns a copy of the coordinates, or nil for a nil vector.
func (v *Vector) Coords() []float64 {
	if v == nil {
		return nil
	}
	return slices.Clone(v.coords)
}

// Norm returns the magnitude of v under n. Unknown norms and a nil vector
// yield NaN.
func (v *Vector) Norm(n Norm) float64 {
	if v == nil {
		return math.NaN()
	}
	switch n {
	case NormL1:
		return l1(v.coords)
	case NormL2:
		return l2(v.coords)
	case NormInf:
		return linf(v.coords)
	default:
		return math.NaN()
	}
}

// Logger returns the logger attached to v, which may be nil.
func (v *Vector) Logger() *logging.Logger {
	if v == nil {
		return nil
	}
	return v.logger
}

func (v *Vector) String() string {
	if v == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteByte('(')
	for i, c := range v.coords {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(c, 'g', -1, 64))
	}
	sb.WriteByte(')')
	return sb.String()
}
