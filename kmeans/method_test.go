package kmeans

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	test := []struct {
		in  string
		exp Method
	}{
		{"RandomPoint", RandomPoint},
		{"random data point", RandomPoint},
		{"random-point", RandomPoint},
		{"RandomCoordinate", RandomCoordinate},
		{"random coordinate", RandomCoordinate},
		{"random_coord", RandomCoordinate},
		{"KMeansPlusPlus", KMeansPlusPlus},
		{"k++", KMeansPlusPlus},
		{"k-means++", KMeansPlusPlus},
		{" KMEANS++ ", KMeansPlusPlus},
	}
	for _, tt := range test {
		m, err := ParseMethod(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.exp, m, tt.in)
	}

	for _, in := range []string{"farthest point", "", " - "} {
		_, err := ParseMethod(in)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, "%q", in)
	}
}

func TestMethodText(t *testing.T) {
	for _, m := range []Method{RandomPoint, RandomCoordinate, KMeansPlusPlus} {
		b, err := m.MarshalText()
		require.NoError(t, err)
		var got Method
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, m, got)
	}
	_, err := Method(9).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Equal(t, "Method(9)", Method(9).String())
}

func grid(w, h int) []Point {
	points := make([]Point, 0, w*h)
	for y := range h {
		for x := range w {
			points = append(points, MustPoint(x, y))
		}
	}
	return points
}

func TestSeed_RandomPoint(t *testing.T) {
	points := grid(5, 5)
	rng := rand.New(rand.NewPCG(1, 2))
	clusters, err := RandomPoint.seed(points, 8, rng)
	require.NoError(t, err)
	require.Len(t, clusters, 8)
	for _, c := range clusters {
		assert.Contains(t, points, c.Center())
		assert.Equal(t, 0, c.Len())
	}
}

func TestSeed_RandomCoordinate(t *testing.T) {
	points := []Point{MustPoint(10, -5, 200), MustPoint(20, 5, 200), MustPoint(15, 0, 200)}
	rng := rand.New(rand.NewPCG(3, 4))
	clusters, err := RandomCoordinate.seed(points, 50, rng)
	require.NoError(t, err)
	require.Len(t, clusters, 50)
	for _, c := range clusters {
		p := c.Center()
		assert.GreaterOrEqual(t, p.At(0), 10)
		assert.LessOrEqual(t, p.At(0), 20)
		assert.GreaterOrEqual(t, p.At(1), -5)
		assert.LessOrEqual(t, p.At(1), 5)
		assert.Equal(t, 200, p.At(2))
	}
}

func TestSeed_RandomCoordinateWidestRange(t *testing.T) {
	points := []Point{MustPoint(-MaxCoordinate, 0), MustPoint(MaxCoordinate, 0)}
	rng := rand.New(rand.NewPCG(5, 6))
	clusters, err := RandomCoordinate.seed(points, 20, rng)
	require.NoError(t, err)
	for _, c := range clusters {
		assert.GreaterOrEqual(t, c.Center().At(0), -MaxCoordinate)
		assert.LessOrEqual(t, c.Center().At(0), MaxCoordinate)
	}
}

func TestSeed_KMeansPlusPlusPicksOutlier(t *testing.T) {
	points := grid(5, 10)
	outlier := MustPoint(1000, 1000)
	points = append(points, outlier)

	const trials = 200
	hits := 0
	for i := range trials {
		rng := rand.New(rand.NewPCG(uint64(i), 7))
		clusters, err := KMeansPlusPlus.seed(points, 2, rng)
		require.NoError(t, err)
		for _, c := range clusters {
			if c.Center().Equal(outlier) {
				hits++
				break
			}
		}
	}
	assert.GreaterOrEqual(t, hits, trials*95/100)
}

func TestSeed_KMeansPlusPlusIdenticalPoints(t *testing.T) {
	points := []Point{MustPoint(4, 4), MustPoint(4, 4), MustPoint(4, 4)}
	rng := rand.New(rand.NewPCG(5, 6))
	clusters, err := KMeansPlusPlus.seed(points, 5, rng)
	require.NoError(t, err)
	require.Len(t, clusters, 5)
	for _, c := range clusters {
		assert.True(t, c.Center().Equal(MustPoint(4, 4)))
	}
}

func TestSeed_KMeansPlusPlusDistinctCenters(t *testing.T) {
	points := []Point{MustPoint(0), MustPoint(10), MustPoint(20), MustPoint(30)}
	rng := rand.New(rand.NewPCG(8, 9))
	clusters, err := KMeansPlusPlus.seed(points, 4, rng)
	require.NoError(t, err)
	seen := map[int]bool{}
	for _, c := range clusters {
		seen[c.Center().At(0)] = true
	}
	// a chosen point has zero weight, so no point is drawn twice while others remain
	assert.Len(t, seen, 4)
}

func TestSeed_Errors(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for _, m := range []Method{RandomPoint, RandomCoordinate, KMeansPlusPlus} {
		_, err := m.seed(nil, 2, rng)
		assert.ErrorIs(t, err, ErrInsufficientData, m.String())
		_, err = m.seed(grid(2, 2), 0, rng)
		assert.ErrorIs(t, err, ErrInvalidK, m.String())
	}
	_, err := Method(42).seed(grid(2, 2), 1, rng)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestSeed_DoesNotMutateInput(t *testing.T) {
	points := grid(3, 3)
	before := make([]string, len(points))
	for i, p := range points {
		before[i] = p.String()
	}
	for _, m := range []Method{RandomPoint, RandomCoordinate, KMeansPlusPlus} {
		_, err := m.seed(points, 4, rand.New(rand.NewPCG(1, 1)))
		require.NoError(t, err)
	}
	for i, p := range points {
		assert.Equal(t, before[i], p.String())
	}
}
