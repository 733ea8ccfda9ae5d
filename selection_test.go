package ofs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectTime(t *testing.T) {
	f := newScript(t, zigzag()...)

	f.SelectTime(100, 300, true)
	assert.Equal(t, []Action{
		{At: 100, Pos: 100},
		{At: 200, Pos: 0},
		{At: 300, Pos: 100},
	}, f.Selection())

	// Without clear the range toggles: the overlap drops out.
	f.SelectTime(200, 400, false)
	assert.Equal(t, []Action{
		{At: 100, Pos: 100},
		{At: 400, Pos: 0},
	}, f.Selection())
}

func TestSelectActionValidatesAgainstStore(t *testing.T) {
	f := newScript(t, zigzag()...)

	f.SelectAction(Action{At: 100, Pos: 99}) // value mismatch, ignored
	assert.False(t, f.HasSelection())

	f.SelectAction(Action{At: 100, Pos: 100})
	assert.True(t, f.IsSelected(Action{At: 100, Pos: 100}))

	// Selecting again toggles off.
	f.SelectAction(Action{At: 100, Pos: 100})
	assert.False(t, f.HasSelection())
}

func TestReplaceSelection(t *testing.T) {
	f := newScript(t, zigzag()...)

	f.ReplaceSelection([]Action{
		{At: 300, Pos: 100},
		{At: 100, Pos: 100},
		{At: 999, Pos: 1}, // not in store, dropped
	}, false)
	assert.Equal(t, []Action{
		{At: 100, Pos: 100},
		{At: 300, Pos: 100},
	}, f.Selection())

	f.ReplaceSelection([]Action{{At: 999, Pos: 1}}, true)
	assert.Equal(t, 1, f.SelectionSize())
}

func TestSelectTopActions(t *testing.T) {
	f := newScript(t, zigzag()...)
	f.SelectAll()
	f.SelectTopActions()

	assert.Equal(t, []Action{
		{At: 100, Pos: 100},
		{At: 300, Pos: 100},
	}, f.Selection())
}

func TestSelectBottomActions(t *testing.T) {
	f := newScript(t, zigzag()...)
	f.SelectAll()
	f.SelectBottomActions()

	assert.Equal(t, []Action{
		{At: 0, Pos: 0},
		{At: 200, Pos: 0},
		{At: 400, Pos: 0},
	}, f.Selection())
}

func TestSelectMidActions(t *testing.T) {
	f := newScript(t,
		Action{At: 0, Pos: 0},
		Action{At: 100, Pos: 50},
		Action{At: 200, Pos: 100},
		Action{At: 300, Pos: 50},
		Action{At: 400, Pos: 0},
	)
	f.SelectAll()
	f.SelectMidActions()

	assert.Equal(t, []Action{{At: 100, Pos: 50}}, f.Selection())
}

func TestExtremaSelectionNeedsThree(t *testing.T) {
	f := newScript(t,
		Action{At: 0, Pos: 0},
		Action{At: 100, Pos: 100},
	)
	f.SelectAll()

	f.SelectTopActions()
	assert.Equal(t, 2, f.SelectionSize())
	f.SelectBottomActions()
	assert.Equal(t, 2, f.SelectionSize())
	f.SelectMidActions()
	assert.Equal(t, 2, f.SelectionSize())
}

func TestRemoveSelectedActions(t *testing.T) {
	f := newScript(t, zigzag()...)
	f.SelectTime(100, 300, true)
	f.RemoveSelectedActions()

	assert.Equal(t, []Action{
		{At: 0, Pos: 0},
		{At: 400, Pos: 0},
	}, f.Actions())
	assert.False(t, f.HasSelection())
}

func TestToggleAndSetSelected(t *testing.T) {
	f := newScript(t, zigzag()...)

	assert.True(t, f.ToggleSelection(Action{At: 200, Pos: 0}))
	assert.False(t, f.ToggleSelection(Action{At: 200, Pos: 0}))
	assert.False(t, f.HasSelection())

	f.SetSelected(Action{At: 200, Pos: 0}, true)
	f.SetSelected(Action{At: 200, Pos: 0}, true) // idempotent
	require.Equal(t, 1, f.SelectionSize())
	f.SetSelected(Action{At: 200, Pos: 0}, false)
	assert.False(t, f.HasSelection())
}

func TestSetSelectedKeepsOrder(t *testing.T) {
	f := newScript(t, zigzag()...)
	f.SetSelected(Action{At: 300, Pos: 100}, true)
	f.SetSelected(Action{At: 100, Pos: 100}, true)

	assert.Equal(t, []Action{
		{At: 100, Pos: 100},
		{At: 300, Pos: 100},
	}, f.Selection())
}
