package ofs

import "sort"

// Add inserts an action preserving time order. It reports false and leaves
// the document untouched when an action with the same timestamp already
// exists; the caller decides whether that matters.
func (f *Funscript) Add(action Action) bool {
	acts := f.data.Actions
	i := sort.Search(len(acts), func(i int) bool {
		return acts[i].At >= action.At
	})
	if i < len(acts) && acts[i].At == action.At {
		logger.Printf("add rejected: an action already exists at %dms", action.At)
		return false
	}
	f.data.Actions = append(acts, Action{})
	copy(f.data.Actions[i+1:], f.data.Actions[i:])
	f.data.Actions[i] = action
	f.notifyActionsChanged(true)
	return true
}

// AddRange bulk-inserts actions and re-sorts the sequence once. With dedupe
// set, candidates whose full value already exists in the store are dropped.
// Entries that would duplicate a timestamp are compacted away after the
// sort, earliest value winning.
func (f *Funscript) AddRange(actions []Action, dedupe bool) {
	if len(actions) == 0 {
		return
	}
	if dedupe {
		existing := make(map[Action]struct{}, len(f.data.Actions))
		for _, a := range f.data.Actions {
			existing[a] = struct{}{}
		}
		for _, a := range actions {
			if _, dup := existing[a]; !dup {
				f.data.Actions = append(f.data.Actions, a)
			}
		}
	} else {
		f.data.Actions = append(f.data.Actions, actions...)
	}
	f.data.Actions = sortAndCompact(f.data.Actions)
	f.notifyActionsChanged(true)
	f.pruneSelection()
}

// Remove deletes an action by value. It reports whether a matching action
// existed.
func (f *Funscript) Remove(action Action) bool {
	return f.removeAction(action, true)
}

func (f *Funscript) removeAction(action Action, checkSelection bool) bool {
	slot, ok := f.findAction(action)
	if !ok {
		return false
	}
	f.data.Actions = append(f.data.Actions[:slot], f.data.Actions[slot+1:]...)
	f.notifyActionsChanged(true)
	if checkSelection {
		f.pruneSelection()
	}
	return true
}

// RemoveRange deletes every listed action by value, then prunes the
// selection once.
func (f *Funscript) RemoveRange(actions []Action) {
	for _, a := range actions {
		f.removeAction(a, false)
	}
	f.notifyActionsChanged(true)
	f.pruneSelection()
}

// RemoveInterval deletes every action with fromMs <= at <= toMs.
func (f *Funscript) RemoveInterval(fromMs, toMs int64) {
	kept := f.data.Actions[:0]
	for _, a := range f.data.Actions {
		if a.At >= fromMs && a.At <= toMs {
			continue
		}
		kept = append(kept, a)
	}
	f.data.Actions = kept
	f.pruneSelection()
	f.notifyActionsChanged(true)
}

// Edit locates oldAction by value and overwrites it in place with
// newAction. It does not re-sort: a caller that may re-time an action past
// its neighbors must route through Remove and Add instead.
func (f *Funscript) Edit(oldAction, newAction Action) bool {
	slot, ok := f.findAction(oldAction)
	if !ok {
		return false
	}
	f.data.Actions[slot] = newAction
	f.pruneSelection()
	f.notifyActionsChanged(true)
	return true
}

// AddOrEdit overwrites the nearest existing action within toleranceMs of
// action.At, or inserts action as new when none is close enough. The
// sequence is re-sorted after an overwrite since the timestamp may have
// moved across a neighbor.
func (f *Funscript) AddOrEdit(action Action, toleranceMs int64) {
	slot, ok := f.nearestSlot(action.At, toleranceMs)
	if !ok {
		f.Add(action)
		return
	}
	f.data.Actions[slot] = action
	f.data.Actions = sortAndCompact(f.data.Actions)
	f.notifyActionsChanged(true)
	f.pruneSelection()
}

// PasteAction replaces any action within toleranceMs of the pasted one,
// then inserts it.
func (f *Funscript) PasteAction(action Action, toleranceMs int64) {
	if near, ok := f.Nearest(action.At, toleranceMs); ok {
		f.Remove(near)
	}
	f.Add(action)
}

// SetAll replaces the whole sequence, sorting and de-duplicating from
// scratch.
func (f *Funscript) SetAll(actions []Action) {
	f.data.Actions = sortAndCompact(append([]Action(nil), actions...))
	f.notifyActionsChanged(true)
	f.pruneSelection()
}
