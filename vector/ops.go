package vector

import (
	"math"

	"github.com/KoT9R/UI-lab/errs"
	"github.com/KoT9R/UI-lab/logging"
)

// check validates a pair of operands and returns the logger to report through.
func check(op string, a, b *Vector) (*logging.Logger, error) {
	l := a.Logger()
	if l == nil {
		l = b.Logger()
	}
	if a == nil || b == nil {
		return l, l.Result(op, errs.ErrInvalidReference)
	}
	if err := errs.Dimension(a.Dim(), b.Dim()); err != nil {
		return l, l.Result(op, err)
	}
	return l, nil
}

func zip(a, b *Vector, f func(x, y float64) float64) *Vector {
	out := make([]float64, len(a.coords))
	for i := range out {
		out[i] = f(a.coords[i], b.coords[i])
	}
	return &Vector{coords: out, logger: a.logger}
}

// Add returns a + b.
func Add(a, b *Vector) (*Vector, error) {
	if _, err := check("vector add", a, b); err != nil {
		return nil, err
	}
	return finite("vector add", zip(a, b, func(x, y float64) float64 { return x + y }))
}

// Sub returns a - b.
func Sub(a, b *Vector) (*Vector, error) {
	if _, err := check("vector sub", a, b); err != nil {
		return nil, err
	}
	return finite("vector sub", zip(a, b, func(x, y float64) float64 { return x - y }))
}

// Scale returns v multiplied by s.
func Scale(v *Vector, s float64) (*Vector, error) {
	if v == nil {
		return nil, errs.ErrInvalidReference
	}
	out := v.Clone()
	for i := range out.coords {
		out.coords[i] *= s
	}
	return finite("vector scale", out)
}

// Dot returns the inner product of a and b.
func Dot(a, b *Vector) (float64, error) {
	if _, err := check("vector dot", a, b); err != nil {
		return math.NaN(), err
	}
	var res float64
	for i := range a.coords {
		res += a.coords[i] * b.coords[i]
	}
	return res, nil
}

// Equals reports whether the n-norm of a - b is below tol.
func Equals(a, b *Vector, n Norm, tol float64) (bool, error) {
	diff, err := Sub(a, b)
	if err != nil {
		return false, err
	}
	return diff.Norm(n) < tol, nil
}

// Min returns the component-wise minimum of a and b.
func Min(a, b *Vector) (*Vector, error) {
	if _, err := check("vector min", a, b); err != nil {
		return nil, err
	}
	return zip(a, b, math.Min), nil
}

// Max returns the component-wise maximum of a and b.
func Max(a, b *Vector) (*Vector, error) {
	if _, err := check("vector max", a, b); err != nil {
		return nil, err
	}
	return zip(a, b, math.Max), nil
}

// LessEq reports whether a[i] <= b[i] on every axis.
// It is false for nil or dimension-mismatched operands.
func LessEq(a, b *Vector) bool {
	if a == nil || b == nil || a.Dim() != b.Dim() {
		return false
	}
	for i := range a.coords {
		if a.coords[i] > b.coords[i] {
			return false
		}
	}
	return true
}

// Less reports whether a[i] < b[i] on every axis.
// It is false for nil or dimension-mismatched operands.
func Less(a, b *Vector) bool {
	if a == nil || b == nil || a.Dim() != b.Dim() {
		return false
	}
	for i := range a.coords {
		if a.coords[i] >= b.coords[i] {
			return false
		}
	}
	return true
}

// finite rejects results that overflowed into NaN (for example Inf - Inf).
func finite(op string, v *Vector) (*Vector, error) {
	for _, c := range v.coords {
		if math.IsNaN(c) {
			return nil, v.logger.Result(op, errs.ErrNaN)
		}
	}
	return v, nil
}
