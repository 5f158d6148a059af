package kmeans

import "fmt"

// Cluster holds a center and the indices of the points currently assigned to it.
// Members refer to the point slice owned by the Engine; coordinates are never copied.
type Cluster struct {
	center  Point
	members []int
	sums    sumStore
}

func newCluster(center Point) *Cluster {
	return &Cluster{
		center: center,
		sums:   newSumStore(center.Dim()),
	}
}

func (c *Cluster) clone() *Cluster {
	return &Cluster{
		center:  c.center,
		members: append([]int(nil), c.members...),
		sums: sumStore{
			sum:   append([]int64(nil), c.sums.sum...),
			count: c.sums.count,
		},
	}
}

// Center returns the current center.
func (c *Cluster) Center() Point { return c.center }

// Members returns a copy of the member indices in insertion order.
func (c *Cluster) Members() []int {
	m := make([]int, len(c.members))
	copy(m, c.members)
	return m
}

// Len returns the number of members.
func (c *Cluster) Len() int { return len(c.members) }

// Reset drops every member.
func (c *Cluster) Reset() {
	c.members = c.members[:0]
	c.sums.reset()
}

// AddMember records the point p stored at index idx as a member.
func (c *Cluster) AddMember(idx int, p Point) error {
	if p.Dim() != c.center.Dim() {
		return fmt.Errorf("%w: point %d has %d coordinates, center has %d",
			ErrDimensionMismatch, idx, p.Dim(), c.center.Dim())
	}
	c.members = append(c.members, idx)
	c.sums.add(p.coords)
	return nil
}

// RecomputeCenter moves the center to the truncated integer mean of the members
// and reports whether it changed. An empty cluster keeps its center.
func (c *Cluster) RecomputeCenter() bool {
	if c.sums.count == 0 {
		return false
	}
	next := Point{coords: c.sums.mean()}
	if next.Equal(c.center) {
		return false
	}
	c.center = next
	return true
}

// sumStore accumulates per-coordinate sums of the members.
type sumStore struct {
	sum   []int64
	count int64
}

func newSumStore(dim int) sumStore {
	return sumStore{sum: make([]int64, dim)}
}

func (s *sumStore) add(coords []int) {
	for i, v := range coords {
		s.sum[i] += int64(v)
	}
	s.count++
}

func (s *sumStore) mean() []int {
	m := make([]int, len(s.sum))
	for i, v := range s.sum {
		m[i] = int(v / s.count)
	}
	return m
}

func (s *sumStore) reset() {
	clear(s.sum)
	s.count = 0
}
