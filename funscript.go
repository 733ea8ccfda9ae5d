package ofs

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// DefaultMaxHistory is the undo/redo depth used when FileOptions.MaxHistory
// is zero. Snapshots are whole-document copies, so this also bounds memory.
const DefaultMaxHistory = 1000

// logger receives diagnostic lines for rejected mutations. Replace it with
// SetLogger to route diagnostics elsewhere.
var logger = log.New(os.Stderr, "", log.LstdFlags)

// SetLogger replaces the package diagnostic logger.
func SetLogger(l *log.Logger) {
	logger = l
}

// FileOptions configures how a Funscript is opened.
// Exactly one data source must be provided.
type FileOptions struct {
	// Data source (exactly one must be provided)
	FilePath  string   // load and parse a .funscript file
	DataBytes []byte   // parse literal funscript JSON
	Actions   []Action // adopt an in-memory action list

	// MaxHistory bounds the undo and redo stacks (0 = DefaultMaxHistory).
	MaxHistory int
}

// Funscript is the timeline document. It owns the action sequence, the
// selection, the lazily rebuilt time index and the undo history.
//
// All methods must be called from a single owning goroutine; the document
// carries no internal locking. The only concurrent component is the
// background saver behind SaveAsync/Sync.
type Funscript struct {
	data    FunscriptData
	index   timeIndex
	history *UndoSystem
	meta    Metadata
	base    map[string]json.RawMessage
	saver   scriptSaver
	path    string

	// Change flags, coalesced per batch and flushed by Update.
	actionsChanged   bool
	selectionChanged bool
	handlers         []changeHandler
	nextHandlerID    int
}

// New creates an empty document with default history depth.
func New() *Funscript {
	f := &Funscript{}
	f.history = newUndoSystem(f, DefaultMaxHistory)
	f.index.markStale()
	return f
}

// Open creates a Funscript from one of the sources in options.
func Open(options FileOptions) (*Funscript, error) {
	sourceCount := 0
	if options.FilePath != "" {
		sourceCount++
	}
	if options.DataBytes != nil {
		sourceCount++
	}
	if options.Actions != nil {
		sourceCount++
	}
	if sourceCount == 0 {
		return nil, ErrNoDataSource
	}
	if sourceCount > 1 {
		return nil, ErrMultipleDataSources
	}

	maxHistory := options.MaxHistory
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}

	f := &Funscript{}
	f.history = newUndoSystem(f, maxHistory)
	f.index.markStale()

	switch {
	case options.FilePath != "":
		data, err := os.ReadFile(options.FilePath)
		if err != nil {
			return nil, fmt.Errorf("read funscript: %w", err)
		}
		if err := f.loadScript(data); err != nil {
			return nil, err
		}
		f.path = options.FilePath

	case options.DataBytes != nil:
		if err := f.loadScript(options.DataBytes); err != nil {
			return nil, err
		}

	case options.Actions != nil:
		f.data.Actions = sortAndCompact(append([]Action(nil), options.Actions...))
	}

	return f, nil
}

// Path returns the file path the document was opened from, if any.
func (f *Funscript) Path() string {
	return f.path
}

// Actions returns a copy of the action sequence in time order. The copy
// stays valid across later mutations; re-locate by value before editing.
func (f *Funscript) Actions() []Action {
	return append([]Action(nil), f.data.Actions...)
}

// ActionCount returns the number of actions in the document.
func (f *Funscript) ActionCount() int {
	return len(f.data.Actions)
}

// Selection returns a copy of the selected actions in time order.
func (f *Funscript) Selection() []Action {
	return append([]Action(nil), f.data.Selection...)
}

// SelectionSize returns the number of selected actions.
func (f *Funscript) SelectionSize() int {
	return len(f.data.Selection)
}

// HasSelection reports whether any action is selected.
func (f *Funscript) HasSelection() bool {
	return len(f.data.Selection) > 0
}

// History returns the document's undo system.
func (f *Funscript) History() *UndoSystem {
	return f.history
}

// Metadata returns a copy of the document metadata.
func (f *Funscript) Metadata() Metadata {
	return f.meta.clone()
}

// SetMetadata replaces the document metadata.
func (f *Funscript) SetMetadata(m Metadata) {
	f.meta = m.clone()
}

// restore replaces the whole document state, used by undo/redo. The caller
// hands over ownership of data; no aliasing with history entries remains.
func (f *Funscript) restore(data FunscriptData) {
	f.data = data
	f.notifyActionsChanged(true)
	f.notifySelectionChanged()
}
