package testutil

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KoT9R/UI-lab/compact"
	"github.com/KoT9R/UI-lab/vector"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// UniformRange returns dim coordinates in [minVal, maxVal).
// Locks only once per call.
func (r *RNG) UniformRange(dim int, minVal, maxVal float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	out := make([]float64, dim)
	for i := range out {
		out[i] = minVal + r.rand.Float64()*span
	}
	return out
}

// Grid returns dim coordinates drawn from the integers in [minVal, maxVal].
// Integer coordinates make touching faces between random boxes common.
func (r *RNG) Grid(dim, minVal, maxVal int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, dim)
	for i := range out {
		out[i] = float64(minVal + r.rand.Intn(maxVal-minVal+1))
	}
	return out
}

// Corners returns two coordinate slices a, b with a[i] <= b[i].
func (r *RNG) Corners(dim int, minVal, maxVal float64) (lo, hi []float64) {
	a := r.UniformRange(dim, minVal, maxVal)
	b := r.UniformRange(dim, minVal, maxVal)
	lo = make([]float64, dim)
	hi = make([]float64, dim)
	for i := range dim {
		lo[i], hi[i] = min(a[i], b[i]), max(a[i], b[i])
	}
	return lo, hi
}

// Vector returns a random vector with coordinates in [minVal, maxVal).
func (r *RNG) Vector(t testing.TB, dim int, minVal, maxVal float64) *vector.Vector {
	t.Helper()
	v, err := vector.New(r.UniformRange(dim, minVal, maxVal))
	require.NoError(t, err)
	return v
}

// Compact returns a random compact inside [minVal, maxVal)^dim.
func (r *RNG) Compact(t testing.TB, dim int, minVal, maxVal float64, opts ...compact.Option) *compact.Compact {
	t.Helper()
	lo, hi := r.Corners(dim, minVal, maxVal)
	return MustCompact(t, lo, hi, opts...)
}

// GridCompact returns a random compact with integer corners in [minVal, maxVal].
func (r *RNG) GridCompact(t testing.TB, dim, minVal, maxVal int, opts ...compact.Option) *compact.Compact {
	t.Helper()
	a := r.Grid(dim, minVal, maxVal)
	b := r.Grid(dim, minVal, maxVal)
	lo := make([]float64, dim)
	hi := make([]float64, dim)
	for i := range dim {
		lo[i], hi[i] = min(a[i], b[i]), max(a[i], b[i])
	}
	return MustCompact(t, lo, hi, opts...)
}

// MustVector builds a vector or fails the test.
func MustVector(t testing.TB, coords ...float64) *vector.Vector {
	t.Helper()
	v, err := vector.New(coords)
	require.NoError(t, err)
	return v
}

// MustCompact builds a compact from corner coordinates or fails the test.
func MustCompact(t testing.TB, lo, hi []float64, opts ...compact.Option) *compact.Compact {
	t.Helper()
	c, err := compact.New(MustVector(t, lo...), MustVector(t, hi...), opts...)
	require.NoError(t, err)
	return c
}
