package ofs

import "sort"

// selectionIndex finds an action in the selection by value. The selection
// is small relative to the store, so a linear scan is fine here.
func selectionIndex(selection []Action, action Action) (int, bool) {
	for i, s := range selection {
		if s == action {
			return i, true
		}
	}
	return 0, false
}

func (f *Funscript) sortSelection() {
	sort.SliceStable(f.data.Selection, func(i, j int) bool {
		return f.data.Selection[i].At < f.data.Selection[j].At
	})
}

func (f *Funscript) clearSelection() {
	f.data.Selection = f.data.Selection[:0]
}

// ToggleSelection adds the action to the selection if absent, removes it if
// present, and reports the resulting membership.
func (f *Funscript) ToggleSelection(action Action) bool {
	if i, ok := selectionIndex(f.data.Selection, action); ok {
		f.data.Selection = append(f.data.Selection[:i], f.data.Selection[i+1:]...)
		f.notifySelectionChanged()
		return false
	}
	f.data.Selection = append(f.data.Selection, action)
	f.notifySelectionChanged()
	return true
}

// SetSelected makes membership match selected, idempotently. Insertions
// keep the selection sorted.
func (f *Funscript) SetSelected(action Action, selected bool) {
	i, ok := selectionIndex(f.data.Selection, action)
	switch {
	case ok && !selected:
		f.data.Selection = append(f.data.Selection[:i], f.data.Selection[i+1:]...)
	case !ok && selected:
		f.data.Selection = append(f.data.Selection, action)
		f.sortSelection()
	}
	f.notifySelectionChanged()
}

// ReplaceSelection replaces the whole selection. Unless trusted, each
// candidate is validated against the store and silently dropped when no
// equal action exists.
func (f *Funscript) ReplaceSelection(actions []Action, trusted bool) {
	f.clearSelection()
	for _, a := range actions {
		if trusted {
			f.data.Selection = append(f.data.Selection, a)
			continue
		}
		if _, ok := f.findAction(a); ok {
			f.data.Selection = append(f.data.Selection, a)
		}
	}
	f.sortSelection()
	f.notifySelectionChanged()
}

// SelectTime toggles every action with fromMs <= at <= toMs, optionally
// clearing the selection first.
func (f *Funscript) SelectTime(fromMs, toMs int64, clear bool) {
	if clear {
		f.clearSelection()
	}
	for _, a := range f.data.Actions {
		if a.At >= fromMs && a.At <= toMs {
			f.ToggleSelection(a)
		} else if a.At > toMs {
			break
		}
	}
	if !clear {
		f.sortSelection()
	}
	f.notifySelectionChanged()
}

// SelectAction toggles a single action after validating it against the
// store, keeping the selection sorted.
func (f *Funscript) SelectAction(action Action) {
	if _, ok := f.Get(action); !ok {
		return
	}
	if f.ToggleSelection(action) {
		f.sortSelection()
	}
	f.notifySelectionChanged()
}

// DeselectAction removes a single action from the selection if the store
// still contains it.
func (f *Funscript) DeselectAction(action Action) {
	if a, ok := f.Get(action); ok {
		f.SetSelected(a, false)
	}
	f.notifySelectionChanged()
}

// SelectAll selects every action in the store.
func (f *Funscript) SelectAll() {
	f.data.Selection = append(f.data.Selection[:0], f.data.Actions...)
	f.notifySelectionChanged()
}

// ClearSelection empties the selection.
func (f *Funscript) ClearSelection() {
	f.clearSelection()
	f.notifySelectionChanged()
}

// IsSelected reports membership by value.
func (f *Funscript) IsSelected(action Action) bool {
	_, ok := selectionIndex(f.data.Selection, action)
	return ok
}

// SelectTopActions reduces the selection to its local maxima. For every
// interior triple the two lowest members are deselected; at least three
// actions must be selected.
func (f *Funscript) SelectTopActions() {
	sel := f.data.Selection
	if len(sel) < 3 {
		return
	}
	var deselect []Action
	for i := 1; i < len(sel)-1; i++ {
		prev, current, next := sel[i-1], sel[i], sel[i+1]

		min1 := current
		if prev.Pos < current.Pos {
			min1 = prev
		}
		min2 := next
		if min1.Pos < next.Pos {
			min2 = min1
		}
		deselect = append(deselect, min1)
		if min1.At != min2.At {
			deselect = append(deselect, min2)
		}
	}
	for _, a := range deselect {
		f.SetSelected(a, false)
	}
	f.notifySelectionChanged()
}

// SelectBottomActions reduces the selection to its local minima, the
// mirror image of SelectTopActions.
func (f *Funscript) SelectBottomActions() {
	sel := f.data.Selection
	if len(sel) < 3 {
		return
	}
	var deselect []Action
	for i := 1; i < len(sel)-1; i++ {
		prev, current, next := sel[i-1], sel[i], sel[i+1]

		max1 := current
		if prev.Pos > current.Pos {
			max1 = prev
		}
		max2 := next
		if max1.Pos > next.Pos {
			max2 = max1
		}
		deselect = append(deselect, max1)
		if max1.At != max2.At {
			deselect = append(deselect, max2)
		}
	}
	for _, a := range deselect {
		f.SetSelected(a, false)
	}
	f.notifySelectionChanged()
}

// SelectMidActions keeps exactly the selected actions that are neither
// local maxima nor local minima, by running both classifications against
// copies and subtracting their results.
func (f *Funscript) SelectMidActions() {
	if len(f.data.Selection) < 3 {
		return
	}
	original := append([]Action(nil), f.data.Selection...)

	f.SelectTopActions()
	top := append([]Action(nil), f.data.Selection...)

	f.data.Selection = append([]Action(nil), original...)
	f.SelectBottomActions()
	bottom := append([]Action(nil), f.data.Selection...)

	mid := original[:0]
	for _, a := range original {
		if _, ok := selectionIndex(top, a); ok {
			continue
		}
		if _, ok := selectionIndex(bottom, a); ok {
			continue
		}
		mid = append(mid, a)
	}
	f.data.Selection = mid
	f.sortSelection()
	f.notifySelectionChanged()
}

// RemoveSelectedActions deletes every selected action from the store and
// clears the selection.
func (f *Funscript) RemoveSelectedActions() {
	selected := append([]Action(nil), f.data.Selection...)
	f.RemoveRange(selected)
	f.clearSelection()
	f.notifySelectionChanged()
}

// pruneSelection drops selection entries whose action no longer exists in
// the store. Runs after every structural mutation; a dangling entry is a
// repairable inconsistency, not an error.
func (f *Funscript) pruneSelection() {
	kept := f.data.Selection[:0]
	removed := false
	for _, s := range f.data.Selection {
		if _, ok := f.findAction(s); ok {
			kept = append(kept, s)
		} else {
			removed = true
		}
	}
	f.data.Selection = kept
	if removed {
		f.notifySelectionChanged()
	}
}
