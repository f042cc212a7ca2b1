package searcher

import "dama/game"

type bound int8

const (
	exact bound = iota
	lower       // Score is at least the stored value
	upper       // Score is at most the stored value
)

// Scores are relative to the maximizer, so the key carries it alongside the
// position (which already hashes the side to move).
type tableKey struct {
	hash      game.StateHash
	maximizer game.Side
}

type tableEntry struct {
	depth   int
	score   int
	bound   bound
	move    game.Move
	hasMove bool
}

type table struct {
	capacity int
	entries  map[tableKey]tableEntry
}

func newTable(capacity int) *table {
	return &table{
		capacity: capacity,
		entries:  make(map[tableKey]tableEntry),
	}
}

func (t *table) lookup(key tableKey) (tableEntry, bool) {
	entry, ok := t.entries[key]
	return entry, ok
}

// store replaces any entry for the same key. A full table is emptied rather
// than aged.
func (t *table) store(key tableKey, entry tableEntry) {
	if _, ok := t.entries[key]; !ok && len(t.entries) >= t.capacity {
		clear(t.entries)
	}
	t.entries[key] = entry
}

func (t *table) size() int {
	return len(t.entries)
}

func (t *table) reset() {
	clear(t.entries)
}

// determineBound classifies a fail-soft score against the window it was
// searched with.
func determineBound(score, alpha, beta int) bound {
	switch {
	case score <= alpha:
		return upper
	case score >= beta:
		return lower
	default:
		return exact
	}
}

// probe returns a score usable at this node, narrowing the window when the
// entry only bounds it. Entries from another remaining depth never score a
// node: terminal scores depend on the depth left, so a cached score must come
// from a search of the same horizon.
func (e tableEntry) probe(depth int, alpha, beta *int) (int, bool) {
	if e.depth != depth {
		return 0, false
	}
	switch e.bound {
	case exact:
		return e.score, true
	case lower:
		*alpha = max(*alpha, e.score)
	case upper:
		*beta = min(*beta, e.score)
	}
	if *alpha >= *beta {
		return e.score, true
	}
	return 0, false
}
