package ofs

import "sort"

// Action is one point of the timeline: the device position at a moment of
// the video. Two actions are equal iff both fields match.
type Action struct {
	At  int64 `json:"at"`  // milliseconds from the start of the video
	Pos int   `json:"pos"` // position in [0,100]
}

// FunscriptData is the whole mutable state of a script: the ordered action
// sequence (strictly ascending At, no duplicates) and the ordered selection,
// a subset of the actions by value. Undo snapshots capture exactly this.
type FunscriptData struct {
	Actions   []Action
	Selection []Action
}

// clone returns a deep copy sharing no state with the receiver.
func (d FunscriptData) clone() FunscriptData {
	return FunscriptData{
		Actions:   append([]Action(nil), d.Actions...),
		Selection: append([]Action(nil), d.Selection...),
	}
}

// sortActions orders a slice by timestamp. The sort is stable so that when
// duplicates are compacted afterwards the earliest-added value survives.
func sortActions(actions []Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].At < actions[j].At
	})
}

// sortAndCompact sorts in place and drops later entries that share a
// timestamp with an earlier one, restoring the strict-ascending invariant.
func sortAndCompact(actions []Action) []Action {
	sortActions(actions)
	out := actions[:0]
	for _, a := range actions {
		if len(out) > 0 && out[len(out)-1].At == a.At {
			continue
		}
		out = append(out, a)
	}
	return out
}

func clampPos(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > 100 {
		return 100
	}
	return pos
}

// invertPos mirrors a position across the middle of the range. Involutive
// for values within [0,100].
func invertPos(pos int) int {
	inv := pos - 100
	if inv < 0 {
		inv = -inv
	}
	return inv
}
