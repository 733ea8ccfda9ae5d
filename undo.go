package ofs

// OpKind tags an undo snapshot with the operation it guards, so interactive
// callers can coalesce a run of identical edits into one history entry.
type OpKind int32

const (
	OpAddEditActions OpKind = iota
	OpAddEditAction
	OpAddAction
	OpRemoveActions
	OpRemoveAction
	OpDragAction
	OpActionsMoved
	OpCutSelection
	OpRemoveSelection
	OpPasteCopiedActions
	OpEqualizeActions
	OpInvertActions
	OpIsolateAction
	OpTopPointsOnly
	OpMidPointsOnly
	OpBottomPointsOnly
	OpGenerateActions
	OpFrameAlign
	OpRangeExtend
)

var opKindNames = [...]string{
	"Add/edit actions",
	"Add/edit action",
	"Add action",
	"Remove actions",
	"Remove action",
	"Drag action",
	"Actions moved",
	"Cut selection",
	"Remove selection",
	"Paste actions",
	"Equalize actions",
	"Invert actions",
	"Isolate action",
	"Top points only",
	"Mid points only",
	"Bottom points only",
	"Generate actions",
	"Frame align",
	"Range extend",
}

func (k OpKind) String() string {
	if k < 0 || int(k) >= len(opKindNames) {
		return "Unknown"
	}
	return opKindNames[k]
}

// scriptState is one history entry: an independent deep copy of the whole
// document, tagged with the operation that produced it.
type scriptState struct {
	kind OpKind
	data FunscriptData
}

// UndoSystem is a dual bounded stack of whole-document snapshots sitting
// above the store, index and selection. Snapshot is expected to be called
// before applying the mutation it guards.
type UndoSystem struct {
	script    *Funscript
	maxDepth  int
	undoStack []scriptState
	redoStack []scriptState
}

func newUndoSystem(script *Funscript, maxDepth int) *UndoSystem {
	return &UndoSystem{script: script, maxDepth: maxDepth}
}

// MaxDepth returns the configured bound of each stack.
func (u *UndoSystem) MaxDepth() int {
	return u.maxDepth
}

// push appends an entry, evicting the oldest one when the stack is full.
func (u *UndoSystem) push(stack *[]scriptState, state scriptState) {
	if len(*stack) >= u.maxDepth {
		copy(*stack, (*stack)[1:])
		(*stack)[len(*stack)-1] = state
		return
	}
	*stack = append(*stack, state)
}

// Snapshot captures the current document onto the undo stack. With
// clearRedo set (the normal case for a fresh edit) the redo stack is
// emptied; pass false to preserve it during undo-history navigation.
func (u *UndoSystem) Snapshot(kind OpKind, clearRedo bool) {
	u.push(&u.undoStack, scriptState{kind: kind, data: u.script.data.clone()})
	if clearRedo {
		u.redoStack = u.redoStack[:0]
	}
}

// Undo restores the most recent snapshot, moving the current state onto
// the redo stack. Reports false when there is nothing to undo.
func (u *UndoSystem) Undo() bool {
	if len(u.undoStack) == 0 {
		return false
	}
	top := u.undoStack[len(u.undoStack)-1]
	u.undoStack = u.undoStack[:len(u.undoStack)-1]

	u.push(&u.redoStack, scriptState{kind: top.kind, data: u.script.data.clone()})
	u.script.restore(top.data)
	return true
}

// Redo is the mirror of Undo. Reports false when there is nothing to redo.
func (u *UndoSystem) Redo() bool {
	if len(u.redoStack) == 0 {
		return false
	}
	top := u.redoStack[len(u.redoStack)-1]
	u.redoStack = u.redoStack[:len(u.redoStack)-1]

	u.push(&u.undoStack, scriptState{kind: top.kind, data: u.script.data.clone()})
	u.script.restore(top.data)
	return true
}

// MatchUndoTop reports whether the top undo entry carries the given kind,
// letting an interactive edit coalesce repeated snapshots.
func (u *UndoSystem) MatchUndoTop(kind OpKind) bool {
	return len(u.undoStack) > 0 && u.undoStack[len(u.undoStack)-1].kind == kind
}

// UndoEmpty reports whether there is nothing to undo.
func (u *UndoSystem) UndoEmpty() bool {
	return len(u.undoStack) == 0
}

// RedoEmpty reports whether there is nothing to redo.
func (u *UndoSystem) RedoEmpty() bool {
	return len(u.redoStack) == 0
}

// UndoDepth returns the number of entries on the undo stack.
func (u *UndoSystem) UndoDepth() int {
	return len(u.undoStack)
}

// RedoDepth returns the number of entries on the redo stack.
func (u *UndoSystem) RedoDepth() int {
	return len(u.redoStack)
}

// ClearHistory discards both stacks.
func (u *UndoSystem) ClearHistory() {
	u.undoStack = u.undoStack[:0]
	u.redoStack = u.redoStack[:0]
}

// ClearRedo discards only the redo stack.
func (u *UndoSystem) ClearRedo() {
	u.redoStack = u.redoStack[:0]
}
