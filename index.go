package ofs

import "sort"

// indexState is the two-state freshness of the time index. Every indexed
// read checks it; a stale index is never consulted.
type indexState int

const (
	indexStale indexState = iota
	indexFresh
)

type indexEntry struct {
	at   int64
	slot int
}

// timeIndex is a sorted timestamp-to-slot mapping over the action sequence.
// Structural mutations mark it stale as a whole; mutation batches are common
// enough that a coarse flag amortizes better than per-range invalidation.
// Rebuild is O(n), lookups are O(log n).
type timeIndex struct {
	state   indexState
	entries []indexEntry
}

func (ix *timeIndex) markStale() {
	ix.state = indexStale
}

func (ix *timeIndex) fresh() bool {
	return ix.state == indexFresh
}

// rebuild is the single entry point that makes the index fresh again.
// The actions slice must already be sorted.
func (ix *timeIndex) rebuild(actions []Action) {
	ix.entries = ix.entries[:0]
	for i, a := range actions {
		ix.entries = append(ix.entries, indexEntry{at: a.At, slot: i})
	}
	ix.state = indexFresh
}

func (ix *timeIndex) len() int {
	return len(ix.entries)
}

func (ix *timeIndex) slotAt(i int) int {
	return ix.entries[i].slot
}

// lowerBound returns the position of the first entry with at >= t,
// or len() when there is none.
func (ix *timeIndex) lowerBound(t int64) int {
	return sort.Search(len(ix.entries), func(i int) bool {
		return ix.entries[i].at >= t
	})
}

// upperBound returns the position of the first entry with at > t,
// or len() when there is none.
func (ix *timeIndex) upperBound(t int64) int {
	return sort.Search(len(ix.entries), func(i int) bool {
		return ix.entries[i].at > t
	})
}

// ensureIndex rebuilds the time index if a structural mutation left it
// stale. Called at the top of every public time-based query.
func (f *Funscript) ensureIndex() {
	if !f.index.fresh() {
		f.index.rebuild(f.data.Actions)
	}
}

// RebuildIndex forces an index rebuild regardless of freshness. Callers
// that are about to issue a burst of queries can use it to pay the rebuild
// cost at a convenient moment.
func (f *Funscript) RebuildIndex() {
	f.index.rebuild(f.data.Actions)
}

// IndexFresh reports whether the time index matches the action sequence.
func (f *Funscript) IndexFresh() bool {
	return f.index.fresh()
}
