package kmeans

// Observer receives per-iteration diagnostics from a running Engine.
// It is called synchronously from Run; a slow observer slows the run.
type Observer func(Event)

// Event describes one finished assign/update iteration.
type Event struct {
	// Iteration is 1-based.
	Iteration int
	// Reassigned counts points whose cluster differs from the previous iteration.
	// On the first iteration every point counts.
	Reassigned int
	// Delta is the sum of absolute coordinate changes over all centers.
	Delta int64
	// Empty lists clusters that received no members; their centers were left unchanged.
	Empty []int
	// Snapshot is set on iterations selected by the progress interval.
	Snapshot *Snapshot
}

// Degenerate reports whether at least one cluster was empty.
func (e Event) Degenerate() bool { return len(e.Empty) > 0 }

// Snapshot is a copy of the engine state after an iteration.
type Snapshot struct {
	Centers    []Point
	Assignment []int
}
