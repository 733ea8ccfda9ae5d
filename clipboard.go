package ofs

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
)

// Clipboard interchange: the selection travels as a plain JSON array of
// {at,pos} records so other tools can produce and consume it.

func encodeActions(actions []Action) (string, error) {
	buf, err := json.Marshal(actions)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func decodeActions(text string) ([]Action, error) {
	var actions []Action
	if err := json.Unmarshal([]byte(text), &actions); err != nil {
		return nil, fmt.Errorf("clipboard does not contain actions: %w", err)
	}
	if len(actions) == 0 {
		return nil, ErrEmptyClipboard
	}
	sortActions(actions)
	return actions, nil
}

// CopySelection places the selected actions on the system clipboard.
func (f *Funscript) CopySelection() error {
	if !f.HasSelection() {
		return ErrNoSelection
	}
	text, err := encodeActions(f.data.Selection)
	if err != nil {
		return err
	}
	return clipboard.WriteAll(text)
}

// CutSelection copies the selection to the system clipboard and removes it
// from the store.
func (f *Funscript) CutSelection() error {
	if err := f.CopySelection(); err != nil {
		return err
	}
	f.RemoveSelectedActions()
	return nil
}

// PasteAtTime inserts the clipboard actions so that the earliest one lands
// at timeMs, replacing any existing action within toleranceMs of each
// pasted one. Returns the number of actions pasted.
func (f *Funscript) PasteAtTime(timeMs, toleranceMs int64) (int, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("read clipboard: %w", err)
	}
	actions, err := decodeActions(text)
	if err != nil {
		return 0, err
	}
	offset := timeMs - actions[0].At
	for _, a := range actions {
		a.At += offset
		f.PasteAction(a, toleranceMs)
	}
	return len(actions), nil
}
