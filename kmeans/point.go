package kmeans

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxCoordinate bounds the magnitude of every coordinate so that squared
// distances over up to 2^20 dimensions fit in an int64.
const MaxCoordinate = 1 << 20

// Point is an immutable vector of integer coordinates.
// The zero value has no coordinates and is only useful as a placeholder.
type Point struct {
	coords []int
}

// NewPoint copies coords into a new Point.
// At least one coordinate is required and each must be within ±MaxCoordinate.
func NewPoint(coords ...int) (Point, error) {
	if len(coords) == 0 {
		return Point{}, fmt.Errorf("%w: a point needs at least 1 coordinate", ErrDimensionMismatch)
	}
	for i, v := range coords {
		if v < -MaxCoordinate || v > MaxCoordinate {
			return Point{}, fmt.Errorf("%w: coordinate %d is %d", ErrCoordinateRange, i, v)
		}
	}
	c := make([]int, len(coords))
	copy(c, coords)
	return Point{coords: c}, nil
}

// MustPoint is like NewPoint but panics on error.
func MustPoint(coords ...int) Point {
	p, err := NewPoint(coords...)
	if err != nil {
		panic(err)
	}
	return p
}

// Dim returns the number of coordinates.
func (p Point) Dim() int { return len(p.coords) }

// At returns the i-th coordinate.
func (p Point) At(i int) int { return p.coords[i] }

// Coords returns a copy of the coordinates.
func (p Point) Coords() []int {
	c := make([]int, len(p.coords))
	copy(c, p.coords)
	return c
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) (float64, error) {
	if p.Dim() != q.Dim() {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, p.Dim(), q.Dim())
	}
	return math.Sqrt(float64(sqDist(p.coords, q.coords))), nil
}

// Equal reports whether p and q have the same coordinates.
func (p Point) Equal(q Point) bool {
	if p.Dim() != q.Dim() {
		return false
	}
	for i, v := range p.coords {
		if q.coords[i] != v {
			return false
		}
	}
	return true
}

func (p Point) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range p.coords {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

// sqDist expects equal lengths; callers validate dimensionality up front.
func sqDist(a, b []int) int64 {
	var sum int64
	for i := range a {
		d := int64(a[i] - b[i])
		sum += d * d
	}
	return sum
}
