package kmeans

import "fmt"

// Status tells why a run stopped.
type Status int

const (
	// StatusConverged means no center moved in the last iteration.
	StatusConverged Status = iota
	// StatusMaxIterations means the iteration bound was reached first.
	StatusMaxIterations
	// StatusInterrupted means the context was done before convergence.
	StatusInterrupted
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusMaxIterations:
		return "max iterations reached"
	case StatusInterrupted:
		return "interrupted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the outcome of Engine.Run.
// It owns its clusters; stepping the engine afterwards does not change it.
type Result struct {
	Clusters []*Cluster
	// Assignment[i] is the index into Clusters of the i-th input point.
	Assignment []int
	// Iterations counts assign/update passes, including the final one that
	// confirmed convergence.
	Iterations int
	Status     Status

	points []Point
}

// Converged reports whether the centers reached a fixed point.
func (r *Result) Converged() bool { return r.Status == StatusConverged }

// Centers returns the center of every cluster in order.
func (r *Result) Centers() []Point {
	centers := make([]Point, len(r.Clusters))
	for i, c := range r.Clusters {
		centers[i] = c.Center()
	}
	return centers
}

// Inertia is the sum of squared distances from every point to its center.
func (r *Result) Inertia() int64 {
	var sum int64
	for i, ci := range r.Assignment {
		sum += sqDist(r.points[i].coords, r.Clusters[ci].center.coords)
	}
	return sum
}
