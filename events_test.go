package ofs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateCoalescesBatch(t *testing.T) {
	f := newScript(t, zigzag()...)

	var actionFires, selectionFires int
	f.SubscribeActionsChanged(func() { actionFires++ })
	f.SubscribeSelectionChanged(func() { selectionFires++ })

	f.Add(Action{At: 500, Pos: 50})
	f.Add(Action{At: 600, Pos: 60})
	f.SelectAll()
	f.ClearSelection()
	f.Update()

	assert.Equal(t, 1, actionFires)
	assert.Equal(t, 1, selectionFires)

	// Nothing pending, nothing delivered.
	f.Update()
	assert.Equal(t, 1, actionFires)
	assert.Equal(t, 1, selectionFires)
}

func TestUpdateFlushesPerKind(t *testing.T) {
	f := newScript(t, zigzag()...)

	var actionFires, selectionFires int
	f.SubscribeActionsChanged(func() { actionFires++ })
	f.SubscribeSelectionChanged(func() { selectionFires++ })

	f.SelectAll()
	f.Update()
	assert.Equal(t, 0, actionFires)
	assert.Equal(t, 1, selectionFires)

	f.Add(Action{At: 500, Pos: 50})
	f.Update()
	assert.Equal(t, 1, actionFires)
	assert.Equal(t, 1, selectionFires)
}

func TestHandlersFireInRegistrationOrder(t *testing.T) {
	f := newScript(t, zigzag()...)

	var order []string
	f.SubscribeActionsChanged(func() { order = append(order, "first") })
	f.SubscribeActionsChanged(func() { order = append(order, "second") })

	f.Add(Action{At: 500, Pos: 50})
	f.Update()
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestUnsubscribe(t *testing.T) {
	f := newScript(t, zigzag()...)

	var fires int
	id := f.SubscribeActionsChanged(func() { fires++ })
	f.Unsubscribe(id)
	f.Unsubscribe(9999) // unknown handle, ignored

	f.Add(Action{At: 500, Pos: 50})
	f.Update()
	assert.Equal(t, 0, fires)
}

func TestUndoNotifiesBothKinds(t *testing.T) {
	f := newScript(t, zigzag()...)
	f.History().Snapshot(OpAddAction, true)
	f.Add(Action{At: 500, Pos: 50})
	f.Update()

	var actionFires, selectionFires int
	f.SubscribeActionsChanged(func() { actionFires++ })
	f.SubscribeSelectionChanged(func() { selectionFires++ })

	f.History().Undo()
	f.Update()
	assert.Equal(t, 1, actionFires)
	assert.Equal(t, 1, selectionFires)
}
