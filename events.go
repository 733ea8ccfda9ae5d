package ofs

// Change notification: collaborators register callbacks on the document and
// receive at most one actions-changed and one selection-changed delivery
// per batch of mutations, when the owning loop calls Update.

type handlerKind int

const (
	handlerActions handlerKind = iota
	handlerSelection
)

type changeHandler struct {
	id   int
	kind handlerKind
	fn   func()
}

// SubscribeActionsChanged registers fn to run on the next Update after any
// action mutation. The returned handle unsubscribes via Unsubscribe.
func (f *Funscript) SubscribeActionsChanged(fn func()) int {
	return f.subscribe(handlerActions, fn)
}

// SubscribeSelectionChanged registers fn to run on the next Update after
// any selection change.
func (f *Funscript) SubscribeSelectionChanged(fn func()) int {
	return f.subscribe(handlerSelection, fn)
}

func (f *Funscript) subscribe(kind handlerKind, fn func()) int {
	f.nextHandlerID++
	f.handlers = append(f.handlers, changeHandler{id: f.nextHandlerID, kind: kind, fn: fn})
	return f.nextHandlerID
}

// Unsubscribe removes a previously registered handler. Unknown handles are
// ignored.
func (f *Funscript) Unsubscribe(id int) {
	for i, h := range f.handlers {
		if h.id == id {
			f.handlers = append(f.handlers[:i], f.handlers[i+1:]...)
			return
		}
	}
}

// Update flushes pending change notifications, delivering each kind at
// most once regardless of how many mutations the batch contained. The
// owning loop calls this once per frame or per logical batch.
func (f *Funscript) Update() {
	if f.actionsChanged {
		f.actionsChanged = false
		f.fire(handlerActions)
	}
	if f.selectionChanged {
		f.selectionChanged = false
		f.fire(handlerSelection)
	}
}

func (f *Funscript) fire(kind handlerKind) {
	for _, h := range f.handlers {
		if h.kind == kind {
			h.fn()
		}
	}
}

// notifyActionsChanged flags the action batch dirty. Structural mutations
// (insert, remove, re-time, bulk replace) also stale the time index;
// position-only edits do not.
func (f *Funscript) notifyActionsChanged(structural bool) {
	f.actionsChanged = true
	if structural {
		f.index.markStale()
	}
}

func (f *Funscript) notifySelectionChanged() {
	f.selectionChanged = true
}
