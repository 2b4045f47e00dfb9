package aggregate

import "sync"

// SnapshotGuard keeps the newest of a series of overlapping fetch results.
// Each fetch takes a sequence number from Begin before it starts; a result
// handed to Apply is installed only if no later fetch has already landed,
// so a slow stale response never replaces a fresher one.
type SnapshotGuard[T any] struct {
	mu      sync.Mutex
	next    uint64
	applied uint64
	current T
	has     bool
}

// Begin reserves the sequence number for a new fetch.
func (g *SnapshotGuard[T]) Begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return g.next
}

// Apply installs snapshot if seq is newer than the installed one and
// reports whether it did.
func (g *SnapshotGuard[T]) Apply(seq uint64, snapshot T) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if seq <= g.applied {
		return false
	}
	g.applied = seq
	g.current = snapshot
	g.has = true
	return true
}

// Current returns the installed snapshot and whether one exists.
func (g *SnapshotGuard[T]) Current() (T, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current, g.has
}
