package compact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KoT9R/UI-lab/compact"
	"github.com/KoT9R/UI-lab/errs"
	"github.com/KoT9R/UI-lab/metrics"
	"github.com/KoT9R/UI-lab/testutil"
)

// walk collects the start point and every point reached by Advance.
func walk(t *testing.T, it *compact.Iterator) [][]float64 {
	t.Helper()
	var points [][]float64
	for p := range it.All() {
		points = append(points, p.Coords())
		require.Less(t, len(points), 10000, "walk does not terminate")
	}
	return points
}

func TestIteratorOneDimension(t *testing.T) {
	c := box(t, []float64{0}, []float64{10})
	it, err := c.Begin(vec(t, 2))
	require.NoError(t, err)

	assert.Equal(t, []float64{0}, it.Point().Coords())
	want := []float64{2, 4, 6, 8, 10}
	for i, x := range want {
		require.NoError(t, it.Advance(), "advance %d", i+1)
		assert.Equal(t, []float64{x}, it.Point().Coords())
	}

	err = it.Advance()
	assert.ErrorIs(t, err, errs.ErrOutOfBounds, "sixth advance exhausts the walk")
	assert.Equal(t, []float64{10}, it.Point().Coords(), "exhaustion leaves the point unchanged")
	assert.ErrorIs(t, it.Advance(), errs.ErrOutOfBounds)
}

func TestIteratorOdometer(t *testing.T) {
	c := box(t, []float64{0, 0}, []float64{4, 4})
	it, err := c.Begin(vec(t, 2, 2))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, it.Order())
	assert.Equal(t, [][]float64{
		{0, 0}, {2, 0}, {4, 0},
		{0, 2}, {2, 2}, {4, 2},
		{0, 4}, {2, 4}, {4, 4},
	}, walk(t, it))
}

func TestIteratorDirection(t *testing.T) {
	c := box(t, []float64{0, 0}, []float64{4, 4})
	it, err := c.Begin(vec(t, 2, 2))
	require.NoError(t, err)

	require.NoError(t, it.SetDirection(vec(t, 1, 0)))
	assert.Equal(t, []int{1, 0}, it.Order(), "axis 1 is scanned first")
	assert.Equal(t, []float64{1, 0}, it.Direction().Coords())

	assert.Equal(t, [][]float64{
		{0, 0}, {0, 2}, {0, 4},
		{2, 0}, {2, 2}, {2, 4},
		{4, 0}, {4, 2}, {4, 4},
	}, walk(t, it))
}

func TestIteratorDirectionThreeAxes(t *testing.T) {
	c := box(t, []float64{0, 0, 0}, []float64{1, 2, 3})
	it, err := c.Begin(nil)
	require.NoError(t, err)

	// Axis 1 has rank 0, axis 2 rank 1 and axis 0 rank 2.
	require.NoError(t, it.SetDirection(vec(t, 2, 0, 1)))
	assert.Equal(t, []int{1, 2, 0}, it.Order())

	points := walk(t, it)
	require.Len(t, points, 2*3*4)
	assert.Equal(t, []float64{0, 0, 0}, points[0])
	assert.Equal(t, []float64{0, 1, 0}, points[1])
	assert.Equal(t, []float64{0, 2, 0}, points[2])
	assert.Equal(t, []float64{0, 0, 1}, points[3])
	assert.Equal(t, []float64{1, 0, 0}, points[12])
	assert.Equal(t, []float64{1, 2, 3}, points[len(points)-1])
}

func TestSetDirectionValidation(t *testing.T) {
	c := box(t, []float64{0, 0}, []float64{4, 4})

	tests := []struct {
		name string
		dir  []float64
		want error
	}{
		{"Duplicate", []float64{0, 0}, errs.ErrWrongArgument},
		{"NotInteger", []float64{0.5, 1}, errs.ErrWrongArgument},
		{"TooLarge", []float64{2, 0}, errs.ErrWrongArgument},
		{"Negative", []float64{-1, 0}, errs.ErrWrongArgument},
		{"WrongDim", []float64{0, 1, 2}, errs.ErrDimension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := c.Begin(nil)
			require.NoError(t, err)
			require.NoError(t, it.SetDirection(vec(t, 1, 0)))

			err = it.SetDirection(vec(t, tt.dir...))
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, []int{1, 0}, it.Order(), "failed update keeps the previous order")
		})
	}

	it, err := c.Begin(nil)
	require.NoError(t, err)
	assert.ErrorIs(t, it.SetDirection(nil), errs.ErrInvalidReference)

	// Entries within tolerance of an integer are accepted.
	require.NoError(t, it.SetDirection(vec(t, 1+1e-9, 0)))
	assert.Equal(t, []int{1, 0}, it.Order())
}

func TestIteratorReverse(t *testing.T) {
	c := box(t, []float64{0, 0}, []float64{2, 2})
	it, err := c.End(vec(t, 1, 2))
	require.NoError(t, err)
	assert.True(t, it.Reverse())

	assert.Equal(t, [][]float64{
		{2, 2}, {1, 2}, {0, 2},
		{2, 0}, {1, 0}, {0, 0},
	}, walk(t, it))
	assert.ErrorIs(t, it.Advance(), errs.ErrOutOfBounds)
}

func TestIteratorUnevenStep(t *testing.T) {
	c := box(t, []float64{0, 0}, []float64{5, 4})
	it, err := c.Begin(vec(t, 2, 3))
	require.NoError(t, err)

	// Axis 0 stops at 4 because 6 would leave the compact; the walk still
	// rolls over to axis 1.
	assert.Equal(t, [][]float64{
		{0, 0}, {2, 0}, {4, 0},
		{0, 3}, {2, 3}, {4, 3},
	}, walk(t, it))
}

func TestIteratorOvershootWithinTolerance(t *testing.T) {
	c := testutil.MustCompact(t, []float64{0, 0}, []float64{1, 1}, compact.WithTolerance(0.5))

	// 1.5 on axis 0 is exactly one tolerance past the boundary, so the axis
	// is finished and the walk rolls over to axis 1.
	fwd, err := c.Begin(vec(t, 1.5, 1))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}, {0, 1}}, walk(t, fwd))
	assert.ErrorIs(t, fwd.Advance(), errs.ErrOutOfBounds)

	rev, err := c.End(vec(t, 1.5, 1))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 1}, {1, 0}}, walk(t, rev))
	assert.ErrorIs(t, rev.Advance(), errs.ErrOutOfBounds)

	// A step landing less than tolerance past the boundary snaps onto it.
	snap, err := c.Begin(vec(t, 1.25, 1))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, walk(t, snap))
}

func TestIteratorFractionalStep(t *testing.T) {
	c := box(t, []float64{0}, []float64{1})
	it, err := c.Begin(vec(t, 0.1))
	require.NoError(t, err)

	points := walk(t, it)
	require.Len(t, points, 11)
	assert.Equal(t, 1.0, points[10][0], "the far boundary is reached despite rounding")
	for i, p := range points {
		assert.InDelta(t, float64(i)/10, p[0], 1e-9)
	}
}

func TestIteratorZeroStepAxis(t *testing.T) {
	c := box(t, []float64{0, 0}, []float64{2, 2})
	it, err := c.Begin(vec(t, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{0, 0}, {0, 1}, {0, 2}}, walk(t, it))
}

func TestIteratorDegenerateCompact(t *testing.T) {
	c := box(t, []float64{3, 3}, []float64{3, 3})
	it, err := c.Begin(nil)
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{3, 3}}, walk(t, it))
}

func TestIteratorNilCompact(t *testing.T) {
	var c *compact.Compact

	_, err := c.Begin(nil)
	assert.ErrorIs(t, err, errs.ErrInvalidReference)
	_, err = c.End(nil)
	assert.ErrorIs(t, err, errs.ErrInvalidReference)
}

func TestIteratorCreation(t *testing.T) {
	c := box(t, []float64{0, 0}, []float64{2, 2})

	_, err := c.Begin(vec(t, 1))
	assert.ErrorIs(t, err, errs.ErrDimension)

	_, err = c.End(vec(t, 1, -1))
	assert.ErrorIs(t, err, errs.ErrWrongArgument)

	it, err := c.Begin(nil)
	require.NoError(t, err)
	assert.False(t, it.Reverse())
	assert.Len(t, walk(t, it), 9, "default unit step")
}

func TestIteratorIsolation(t *testing.T) {
	lo, hi := vec(t, 0, 0), vec(t, 2, 2)
	c, err := compact.New(lo, hi)
	require.NoError(t, err)

	step := vec(t, 1, 1)
	it, err := c.Begin(step)
	require.NoError(t, err)

	// Mutating inputs after creation has no effect on the walk.
	require.NoError(t, step.SetCoord(0, 2))
	require.NoError(t, hi.SetCoord(0, 100))

	p := it.Point()
	require.NoError(t, p.SetCoord(0, 42))
	assert.Equal(t, 0.0, it.Point().Coord(0), "Point returns a fresh copy")

	assert.Len(t, walk(t, it), 9)
}

func TestIteratorReset(t *testing.T) {
	c := box(t, []float64{0, 0}, []float64{2, 2})
	it, err := c.Begin(nil)
	require.NoError(t, err)
	require.NoError(t, it.SetDirection(vec(t, 1, 0)))

	first := walk(t, it)
	it.Reset()
	assert.Equal(t, []float64{0, 0}, it.Point().Coords())
	assert.Equal(t, first, walk(t, it))
}

func TestIteratorAllBreak(t *testing.T) {
	c := box(t, []float64{0}, []float64{10})
	it, err := c.Begin(nil)
	require.NoError(t, err)

	n := 0
	for range it.All() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, []float64{2}, it.Point().Coords())
}

func TestIteratorMetrics(t *testing.T) {
	m := &metrics.BasicCollector{}
	c := testutil.MustCompact(t, []float64{0}, []float64{3}, compact.WithMetricsCollector(m))

	it, err := c.Begin(nil)
	require.NoError(t, err)
	require.Error(t, it.SetDirection(vec(t, 1)))
	walk(t, it)

	stats := m.GetStats()
	assert.Equal(t, int64(3), stats.Steps)
	assert.Equal(t, int64(1), stats.Exhaustions)
	assert.Equal(t, int64(1), stats.Ops[metrics.OpSetDirection].Errors)
}

func TestIteratorRandomGrids(t *testing.T) {
	rng := testutil.NewRNG(99)

	for range 50 {
		dim := 1 + rng.Intn(3)
		c := rng.GridCompact(t, dim, 0, 4)

		want := 1
		for i := range dim {
			want *= int(c.High().Coord(i)-c.Low().Coord(i)) + 1
		}

		it, err := c.Begin(nil)
		require.NoError(t, err)
		fwd := walk(t, it)
		assert.Len(t, fwd, want, "forward walk of %v", c)

		it, err = c.End(nil)
		require.NoError(t, err)
		assert.Len(t, walk(t, it), want, "reverse walk of %v", c)

		for _, p := range fwd {
			in, err := c.Contains(vec(t, p...))
			require.NoError(t, err)
			assert.True(t, in)
		}
	}
}
