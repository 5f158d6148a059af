package kmeans

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/stat/sampleuv"
	"gopkg.in/yaml.v3"
)

// Method selects how the initial centers are chosen.
type Method int

const (
	// RandomPoint seeds every center with a point drawn uniformly (with replacement).
	RandomPoint Method = iota
	// RandomCoordinate draws every coordinate uniformly from the per-axis range of the data.
	RandomCoordinate
	// KMeansPlusPlus draws centers with probability proportional to the squared
	// distance to the nearest center chosen so far.
	KMeansPlusPlus
)

var methodNames = [...]string{
	RandomPoint:      "RandomPoint",
	RandomCoordinate: "RandomCoordinate",
	KMeansPlusPlus:   "KMeansPlusPlus",
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

func (m Method) valid() bool {
	return m >= RandomPoint && m <= KMeansPlusPlus
}

// ParseMethod resolves an initialization method name.
// Case, spaces, hyphens and underscores are ignored, so "random data point",
// "random-coordinate" and "k-means++" are all accepted. An empty name is not.
func ParseMethod(s string) (Method, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case "randompoint", "randomdatapoint":
		return RandomPoint, nil
	case "randomcoordinate", "randomcoord":
		return RandomCoordinate, nil
	case "kmeans++", "k++", "kmeansplusplus", "plusplus":
		return KMeansPlusPlus, nil
	}
	return 0, fmt.Errorf("%w: unknown initialization method %q", ErrInvalidConfiguration, s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	v, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: unknown initialization method %d", ErrInvalidConfiguration, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Method) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("%w: initialization: %w", ErrInvalidConfiguration, err)
	}
	return m.UnmarshalText([]byte(s))
}

// seed returns k clusters chosen from points with the method's strategy.
// points is never modified.
func (m Method) seed(points []Point, k int, rng *rand.Rand) ([]*Cluster, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if len(points) == 0 {
		return nil, ErrInsufficientData
	}
	var centers []Point
	switch m {
	case RandomPoint:
		centers = randomPoints(points, k, rng)
	case RandomCoordinate:
		centers = randomCoordinates(points, k, rng)
	case KMeansPlusPlus:
		centers = plusPlus(points, k, rng)
	default:
		return nil, fmt.Errorf("%w: unknown initialization method %d", ErrInvalidConfiguration, int(m))
	}
	clusters := make([]*Cluster, k)
	for i, c := range centers {
		clusters[i] = newCluster(c)
	}
	return clusters, nil
}

func randomPoints(points []Point, k int, rng *rand.Rand) []Point {
	centers := make([]Point, k)
	for i := range centers {
		centers[i] = points[rng.IntN(len(points))]
	}
	return centers
}

func randomCoordinates(points []Point, k int, rng *rand.Rand) []Point {
	dim := points[0].Dim()
	lo, hi := points[0].Coords(), points[0].Coords()
	for _, p := range points[1:] {
		for d, v := range p.coords {
			lo[d] = min(lo[d], v)
			hi[d] = max(hi[d], v)
		}
	}
	centers := make([]Point, k)
	for i := range centers {
		c := make([]int, dim)
		for d := range c {
			c[d] = lo[d] + rng.IntN(hi[d]-lo[d]+1)
		}
		centers[i] = Point{coords: c}
	}
	return centers
}

func plusPlus(points []Point, k int, rng *rand.Rand) []Point {
	centers := make([]Point, 0, k)
	centers = append(centers, points[rng.IntN(len(points))])

	// nearest[i] is the squared distance from points[i] to its closest chosen center.
	nearest := make([]int64, len(points))
	for i, p := range points {
		nearest[i] = sqDist(p.coords, centers[0].coords)
	}
	weights := make([]float64, len(points))
	for len(centers) < k {
		for i, d := range nearest {
			weights[i] = float64(d)
		}
		idx, ok := sampleuv.NewWeighted(weights, rng).Take()
		if !ok {
			// every point coincides with a chosen center
			idx = rng.IntN(len(points))
		}
		next := points[idx]
		centers = append(centers, next)
		for i, p := range points {
			if d := sqDist(p.coords, next.coords); d < nearest[i] {
				nearest[i] = d
			}
		}
	}
	return centers
}
