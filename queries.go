package ofs

import (
	"math"
	"sort"
)

// PositionAtTime returns the interpolated device position at timeMs.
// An empty document reports 0; a single action reports its position; an
// exact timestamp match reports that action's position; a time at or past
// the last action reports the last position. A time before the first action
// also falls through to the last action's position.
func (f *Funscript) PositionAtTime(timeMs int64) float64 {
	f.ensureIndex()
	return positionAtTime(f.data.Actions, &f.index, timeMs)
}

// positionAtTime answers over an explicit sequence, seeding the scan from
// the index when it is fresh and degrading to a full linear scan otherwise.
func positionAtTime(actions []Action, ix *timeIndex, timeMs int64) float64 {
	if len(actions) == 0 {
		return 0
	}
	if len(actions) == 1 {
		return float64(actions[0].Pos)
	}

	i := 0
	if ix != nil && ix.fresh() {
		if at := ix.lowerBound(timeMs); at < ix.len() {
			i = ix.slotAt(at)
			if i > 0 {
				i--
			}
		}
	}

	for ; i < len(actions)-1; i++ {
		a, b := actions[i], actions[i+1]
		if timeMs > a.At && timeMs < b.At {
			progress := float64(timeMs-a.At) / float64(b.At-a.At)
			return float64(a.Pos) + progress*float64(b.Pos-a.Pos)
		}
		if a.At == timeMs {
			return float64(a.Pos)
		}
	}
	return float64(actions[len(actions)-1].Pos)
}

// Get locates an action by value and returns a copy of it.
func (f *Funscript) Get(action Action) (Action, bool) {
	slot, ok := f.findAction(action)
	if !ok {
		return Action{}, false
	}
	return f.data.Actions[slot], true
}

// findAction returns the slot of the action equal to the argument. The
// sequence is sorted by invariant, so the timestamp narrows the search.
func (f *Funscript) findAction(action Action) (int, bool) {
	acts := f.data.Actions
	i := sort.Search(len(acts), func(i int) bool {
		return acts[i].At >= action.At
	})
	if i < len(acts) && acts[i] == action {
		return i, true
	}
	return 0, false
}

// Nearest returns the action with the smallest |timeMs - at| within
// maxErrorMs. Equally distant candidates resolve to the earlier one, and
// the scan stops as soon as the running error stops shrinking.
func (f *Funscript) Nearest(timeMs, maxErrorMs int64) (Action, bool) {
	f.ensureIndex()
	slot, ok := nearestSlot(f.data.Actions, &f.index, timeMs, maxErrorMs)
	if !ok {
		return Action{}, false
	}
	return f.data.Actions[slot], true
}

func (f *Funscript) nearestSlot(timeMs, maxErrorMs int64) (int, bool) {
	f.ensureIndex()
	return nearestSlot(f.data.Actions, &f.index, timeMs, maxErrorMs)
}

func nearestSlot(actions []Action, ix *timeIndex, timeMs, maxErrorMs int64) (int, bool) {
	best := -1
	bestErr := int64(math.MaxInt64)

	i := 0
	if ix != nil && ix.fresh() {
		if at := ix.lowerBound(timeMs - maxErrorMs); at < ix.len() {
			i = ix.slotAt(at)
		}
	}

	for ; i < len(actions); i++ {
		if actions[i].At > timeMs+maxErrorMs {
			break
		}
		err := actions[i].At - timeMs
		if err < 0 {
			err = -err
		}
		if err > maxErrorMs {
			continue
		}
		if err < bestErr {
			bestErr = err
			best = i
		} else {
			// Sortedness guarantees the error only grows from here.
			break
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// NextAfter returns the first action strictly after timeMs.
func (f *Funscript) NextAfter(timeMs int64) (Action, bool) {
	f.ensureIndex()
	acts := f.data.Actions
	if f.index.fresh() {
		if at := f.index.upperBound(timeMs); at < f.index.len() {
			return acts[f.index.slotAt(at)], true
		}
		return Action{}, false
	}
	for _, a := range acts {
		if a.At > timeMs {
			return a, true
		}
	}
	return Action{}, false
}

// PrevBefore returns the last action strictly before timeMs.
func (f *Funscript) PrevBefore(timeMs int64) (Action, bool) {
	f.ensureIndex()
	acts := f.data.Actions
	if f.index.fresh() {
		if at := f.index.lowerBound(timeMs); at > 0 {
			return acts[f.index.slotAt(at-1)], true
		}
		return Action{}, false
	}
	for i := len(acts) - 1; i >= 0; i-- {
		if acts[i].At < timeMs {
			return acts[i], true
		}
	}
	return Action{}, false
}
