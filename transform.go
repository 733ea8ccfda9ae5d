package ofs

import "math"

type strokeDirection int

const (
	strokeNone strokeDirection = iota
	strokeUp
	strokeDown
)

// LastStroke returns the monotonic stroke that precedes the action nearest
// to timeMs: it walks back to the starting extremum of the current stroke,
// then collects the previous run of same-direction movement. The result is
// ordered from the stroke's end back to its start, and empty when there are
// not at least two points behind the nearest action.
func (f *Funscript) LastStroke(timeMs int64) []Action {
	acts := f.data.Actions
	if len(acts) == 0 {
		return nil
	}

	// Nearest action by absolute time distance, earliest winning ties.
	it := 0
	best := absInt64(acts[0].At - timeMs)
	for i := 1; i < len(acts); i++ {
		if err := absInt64(acts[i].At - timeMs); err < best {
			best = err
			it = i
		}
	}
	if it <= 1 {
		return nil
	}

	// Walk back to the start of the stroke the nearest action belongs to.
	goingUp := acts[it-1].Pos > acts[it].Pos
	prevPos := acts[it-1].Pos
	for s := it - 1; s != 0; s-- {
		if (acts[s-1].Pos > prevPos) != goingUp {
			break
		}
		if acts[s-1].Pos == prevPos && acts[s-1].Pos != acts[s].Pos {
			break
		}
		prevPos = acts[s-1].Pos
		it = s
	}

	it--
	if it == 0 {
		return nil
	}

	// Collect the previous stroke going the opposite direction.
	goingUp = !goingUp
	prevPos = acts[it].Pos
	stroke := make([]Action, 0, 5)
	stroke = append(stroke, acts[it])
	it--
	for {
		up := acts[it].Pos > prevPos
		if up != goingUp {
			break
		}
		if acts[it].Pos == prevPos {
			break
		}
		stroke = append(stroke, acts[it])
		prevPos = acts[it].Pos
		if it == 0 {
			break
		}
		it--
	}
	return stroke
}

// RangeExtendSelection stretches the amplitude of the selected strokes by
// deltaPercent: each detected stroke's positions are remapped linearly from
// their local [low,high] range onto [low-delta, high+delta], both ends
// clamped to [0,100]. The selection is consumed by the operation.
func (f *Funscript) RangeExtendSelection(deltaPercent int) {
	if len(f.data.Selection) == 0 {
		return
	}

	selected := make(map[Action]struct{}, len(f.data.Selection))
	for _, s := range f.data.Selection {
		selected[s] = struct{}{}
	}
	var slots []int
	for i, a := range f.data.Actions {
		if _, ok := selected[a]; ok {
			slots = append(slots, i)
		}
	}
	if len(slots) == 0 {
		return
	}
	f.ClearSelection()
	f.extendRange(slots, deltaPercent)
	f.notifyActionsChanged(false) // positions only, timestamps untouched
}

// extendRange walks the selected slots in time order, detecting alternating
// local extrema with the same rising/falling logic as stroke extraction,
// and remaps each finished stroke's positions.
func (f *Funscript) extendRange(slots []int, delta int) {
	if delta == 0 || len(slots) == 0 {
		return
	}
	acts := f.data.Actions

	lastExtremeIndex := 0
	lastValue := acts[slots[0]].Pos
	lastExtremeValue := lastValue
	lowest, highest := lastValue, lastValue
	dir := strokeNone

	for index := 0; index < len(slots); index++ {
		pos := acts[slots[index]].Pos

		if dir == strokeNone {
			if pos < lastExtremeValue {
				dir = strokeDown
			} else if pos > lastExtremeValue {
				dir = strokeUp
			}
		} else if (pos < lastValue && dir == strokeUp) || // previous was a high point
			(pos > lastValue && dir == strokeDown) || // previous was a low point
			index == len(slots)-1 {

			for i := lastExtremeIndex + 1; i < index; i++ {
				a := &acts[slots[i]]
				a.Pos = stretchPosition(a.Pos, lowest, highest, delta)
			}

			lastExtremeValue = acts[slots[index-1]].Pos
			lastExtremeIndex = index - 1
			highest = lastExtremeValue
			lowest = lastExtremeValue

			if dir == strokeUp {
				dir = strokeDown
			} else {
				dir = strokeUp
			}
		}

		lastValue = pos
		if lastValue > highest {
			highest = lastValue
		}
		if lastValue < lowest {
			lowest = lastValue
		}
	}
}

// stretchPosition remaps a position from [lowest,highest] onto the extended
// and clamped range, preserving its relative place within the stroke.
func stretchPosition(position, lowest, highest, extension int) int {
	newHigh := clampPos(highest + extension)
	newLow := clampPos(lowest - extension)

	rel := 0.0
	if highest != lowest {
		rel = float64(position-lowest) / float64(highest-lowest)
	}
	newPosition := rel*float64(newHigh-newLow) + float64(newLow)
	return clampPos(int(newPosition))
}

// EqualizeSelection keeps the first and last selected timestamps and every
// position fixed, and re-times the interior actions to be evenly spaced.
// Requires at least three selected actions. Implemented as remove and
// re-insert of the whole selected subset.
func (f *Funscript) EqualizeSelection() {
	if len(f.data.Selection) < 3 {
		return
	}
	f.sortSelection()
	sel := append([]Action(nil), f.data.Selection...)
	first := sel[0]
	last := sel[len(sel)-1]
	stepMs := float64(last.At-first.At) / float64(len(sel)-1)

	f.RemoveSelectedActions()

	for i := 1; i < len(sel)-1; i++ {
		sel[i].At = first.At + int64(math.Round(float64(i)*stepMs))
	}
	for _, a := range sel {
		f.Add(a)
	}
	f.data.Selection = sel
	f.pruneSelection()
	f.notifySelectionChanged()
}

// InvertSelection mirrors every selected position across the middle of the
// range; timestamps are untouched. Applying it twice restores the original
// positions exactly.
func (f *Funscript) InvertSelection() {
	if len(f.data.Selection) == 0 {
		return
	}
	sel := append([]Action(nil), f.data.Selection...)
	f.RemoveSelectedActions()
	for i := range sel {
		sel[i].Pos = invertPos(sel[i].Pos)
		f.Add(sel[i])
	}
	f.data.Selection = sel
	f.pruneSelection()
	f.notifySelectionChanged()
}

// MoveSelectionTime shifts the selected actions by offsetMs. When the
// selection covers the whole store the shift is applied directly; otherwise
// it is clamped so the nearest unselected neighbor outside the selection is
// never approached closer than minGapMs.
func (f *Funscript) MoveSelectionTime(offsetMs, minGapMs int64) {
	if !f.HasSelection() {
		return
	}

	// Faster path when everything is selected: order cannot change.
	if len(f.data.Selection) == len(f.data.Actions) {
		for i := range f.data.Actions {
			f.data.Actions[i].At += offsetMs
		}
		f.data.Selection = append(f.data.Selection[:0], f.data.Actions...)
		f.notifyActionsChanged(true)
		f.notifySelectionChanged()
		return
	}

	first := f.data.Selection[0]
	last := f.data.Selection[len(f.data.Selection)-1]

	if offsetMs > 0 {
		if next, ok := f.NextAfter(last.At); ok {
			maxBound := next.At - minGapMs
			if d := maxBound - last.At; offsetMs > d {
				offsetMs = d
			}
		}
	} else if offsetMs < 0 {
		if prev, ok := f.PrevBefore(first.At); ok {
			minBound := prev.At + minGapMs
			if d := minBound - first.At; offsetMs < d {
				offsetMs = d
			}
		}
	}

	var slots []int
	for _, s := range f.data.Selection {
		if slot, ok := f.findAction(s); ok {
			slots = append(slots, slot)
		}
	}
	f.clearSelection()
	for _, slot := range slots {
		f.data.Actions[slot].At += offsetMs
		f.data.Selection = append(f.data.Selection, f.data.Actions[slot])
	}
	f.notifyActionsChanged(true)
	f.notifySelectionChanged()
}

// MoveSelectionPosition shifts every selected position by offset, clamping
// each to [0,100]. Timestamps are untouched, so ordering cannot change.
func (f *Funscript) MoveSelectionPosition(offset int) {
	if !f.HasSelection() {
		return
	}

	if len(f.data.Selection) == len(f.data.Actions) {
		for i := range f.data.Actions {
			f.data.Actions[i].Pos = clampPos(f.data.Actions[i].Pos + offset)
		}
		f.data.Selection = append(f.data.Selection[:0], f.data.Actions...)
		f.notifyActionsChanged(false)
		f.notifySelectionChanged()
		return
	}

	var slots []int
	for _, s := range f.data.Selection {
		if slot, ok := f.findAction(s); ok {
			slots = append(slots, slot)
		}
	}
	f.clearSelection()
	for _, slot := range slots {
		f.data.Actions[slot].Pos = clampPos(f.data.Actions[slot].Pos + offset)
		f.data.Selection = append(f.data.Selection, f.data.Actions[slot])
	}
	f.notifyActionsChanged(false)
	f.notifySelectionChanged()
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
