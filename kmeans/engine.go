package kmeans

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Engine runs Lloyd's algorithm over a fixed set of points.
// An Engine is not safe for concurrent use.
type Engine struct {
	points   []Point
	dim      int
	cfg      Config
	observer Observer
	rng      *rand.Rand

	clusters   []*Cluster
	assignment []int
	scratch    []int
}

// New validates points and opts and returns an Engine ready to Run.
//
// At least two points are required and all of them must share the
// dimensionality of the first one.
func New(points []Point, opts ...Option) (*Engine, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDataset, len(points))
	}
	dim := points[0].Dim()
	if dim == 0 {
		return nil, fmt.Errorf("%w: point 0 has no coordinates", ErrDimensionMismatch)
	}
	for i, p := range points {
		if p.Dim() != dim {
			return nil, fmt.Errorf("%w: point %d has %d coordinates, expected %d",
				ErrDimensionMismatch, i, p.Dim(), dim)
		}
	}
	e := &Engine{
		points: append([]Point(nil), points...),
		dim:    dim,
	}
	if err := e.init(opts...); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return err
		}
	}
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	if e.cfg.MaxIterations == 0 {
		e.cfg.MaxIterations = DefaultMaxIterations
	}
	if e.cfg.Workers == 0 {
		e.cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if e.cfg.Seed != nil {
		e.rng = rand.New(rand.NewPCG(*e.cfg.Seed, *e.cfg.Seed))
	} else {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return nil
}

// Config returns the effective configuration, defaults applied.
func (e *Engine) Config() Config { return e.cfg }

// Dim returns the dimensionality shared by every point.
func (e *Engine) Dim() int { return e.dim }

// Run seeds k clusters and iterates assign/update until the centers stop
// moving, the iteration bound is hit or ctx is done.
//
// Hitting the bound or the context after at least one full iteration is not an
// error: the best-known state is returned and Result.Status tells why the loop stopped.
func (e *Engine) Run(ctx context.Context, k int) (*Result, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.Initialize(k); err != nil {
		return nil, err
	}

	status := StatusMaxIterations
	iter := 0
	for iter < e.cfg.MaxIterations {
		if ctx.Err() != nil {
			status = StatusInterrupted
			break
		}
		reassigned, err := e.Assign(ctx)
		if err != nil {
			if ctx.Err() != nil {
				status = StatusInterrupted
				break
			}
			return nil, err
		}
		iter++
		changed, delta := e.Update()
		e.report(iter, reassigned, delta)
		if !changed {
			status = StatusConverged
			break
		}
	}
	if iter == 0 {
		return nil, ctx.Err()
	}
	return e.result(iter, status), nil
}

// Initialize discards any previous state and seeds k clusters with the configured method.
func (e *Engine) Initialize(k int) error {
	clusters, err := e.cfg.Initialization.seed(e.points, k, e.rng)
	if err != nil {
		return err
	}
	e.reset(clusters)
	return nil
}

func (e *Engine) reset(clusters []*Cluster) {
	e.clusters = clusters
	e.assignment = make([]int, len(e.points))
	for i := range e.assignment {
		e.assignment[i] = -1
	}
	e.scratch = make([]int, len(e.points))
}

// Assign moves every point to its nearest center and rebuilds the member lists.
// Ties go to the lowest cluster index. It returns the number of points whose
// cluster changed.
func (e *Engine) Assign(ctx context.Context) (int, error) {
	if e.clusters == nil {
		return 0, errNotInitialized
	}
	centers := make([][]int, len(e.clusters))
	for i, c := range e.clusters {
		centers[i] = c.center.coords
	}

	next := e.scratch
	n := len(e.points)
	chunk := (n + e.cfg.Workers - 1) / e.cfg.Workers
	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				next[i] = nearest(e.points[i].coords, centers)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	for _, c := range e.clusters {
		c.Reset()
	}
	reassigned := 0
	for i, ci := range next {
		if e.assignment[i] != ci {
			reassigned++
		}
		if err := e.clusters[ci].AddMember(i, e.points[i]); err != nil {
			return 0, err
		}
	}
	e.assignment, e.scratch = next, e.assignment
	return reassigned, nil
}

// Update recomputes every center from its members. It reports whether any
// center moved and the total absolute coordinate change.
func (e *Engine) Update() (changed bool, delta int64) {
	for _, c := range e.clusters {
		old := c.center
		if !c.RecomputeCenter() {
			continue
		}
		changed = true
		for d, v := range c.center.coords {
			diff := int64(v - old.coords[d])
			if diff < 0 {
				diff = -diff
			}
			delta += diff
		}
	}
	return changed, delta
}

// Nearest returns the index of the cluster whose center is closest to p.
func (e *Engine) Nearest(p Point) (int, error) {
	if e.clusters == nil {
		return 0, errNotInitialized
	}
	if p.Dim() != e.dim {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, p.Dim(), e.dim)
	}
	centers := make([][]int, len(e.clusters))
	for i, c := range e.clusters {
		centers[i] = c.center.coords
	}
	return nearest(p.coords, centers), nil
}

// Clusters returns the current clusters. They are owned by the engine.
func (e *Engine) Clusters() []*Cluster { return e.clusters }

// Assignment returns a copy of the current point to cluster mapping.
// Points not yet assigned map to -1.
func (e *Engine) Assignment() []int {
	return append([]int(nil), e.assignment...)
}

func (e *Engine) report(iter, reassigned int, delta int64) {
	if e.observer == nil {
		return
	}
	empty := e.emptyClusters()
	snap := e.cfg.ProgressEvery > 0 && iter%e.cfg.ProgressEvery == 0
	if !e.cfg.Verbose && !snap && len(empty) == 0 {
		return
	}
	ev := Event{
		Iteration:  iter,
		Reassigned: reassigned,
		Delta:      delta,
		Empty:      empty,
	}
	if snap {
		ev.Snapshot = &Snapshot{
			Centers:    e.centers(),
			Assignment: e.Assignment(),
		}
	}
	e.observer(ev)
}

func (e *Engine) emptyClusters() []int {
	var empty []int
	for i, c := range e.clusters {
		if c.Len() == 0 {
			empty = append(empty, i)
		}
	}
	return empty
}

func (e *Engine) centers() []Point {
	centers := make([]Point, len(e.clusters))
	for i, c := range e.clusters {
		centers[i] = c.center
	}
	return centers
}

func (e *Engine) result(iter int, status Status) *Result {
	clusters := make([]*Cluster, len(e.clusters))
	for i, c := range e.clusters {
		clusters[i] = c.clone()
	}
	return &Result{
		Clusters:   clusters,
		Assignment: e.Assignment(),
		Iterations: iter,
		Status:     status,
		points:     e.points,
	}
}

// nearest keeps the first of equally distant centers.
func nearest(p []int, centers [][]int) int {
	best, bestDist := 0, sqDist(p, centers[0])
	for j := 1; j < len(centers); j++ {
		if d := sqDist(p, centers[j]); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}
