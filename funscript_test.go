package ofs

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Rejected-mutation diagnostics are expected noise in tests.
	SetLogger(log.New(io.Discard, "", 0))
}

// newScript builds a document directly from an action list.
func newScript(t *testing.T, actions ...Action) *Funscript {
	t.Helper()
	if len(actions) == 0 {
		return New()
	}
	f, err := Open(FileOptions{Actions: actions})
	require.NoError(t, err)
	return f
}

// zigzag is the canonical test script: full strokes every 100ms.
func zigzag() []Action {
	return []Action{
		{At: 0, Pos: 0},
		{At: 100, Pos: 100},
		{At: 200, Pos: 0},
		{At: 300, Pos: 100},
		{At: 400, Pos: 0},
	}
}

func TestOpenRequiresExactlyOneSource(t *testing.T) {
	_, err := Open(FileOptions{})
	assert.ErrorIs(t, err, ErrNoDataSource)

	_, err = Open(FileOptions{
		DataBytes: []byte(`{"actions":[]}`),
		Actions:   []Action{{At: 0, Pos: 50}},
	})
	assert.ErrorIs(t, err, ErrMultipleDataSources)
}

func TestOpenFromActionsSortsAndCompacts(t *testing.T) {
	f, err := Open(FileOptions{Actions: []Action{
		{At: 200, Pos: 10},
		{At: 0, Pos: 20},
		{At: 200, Pos: 99}, // duplicate timestamp, later value loses
		{At: 100, Pos: 30},
	}})
	require.NoError(t, err)

	assert.Equal(t, []Action{
		{At: 0, Pos: 20},
		{At: 100, Pos: 30},
		{At: 200, Pos: 10},
	}, f.Actions())
}

func TestOpenDoesNotAliasCallerSlice(t *testing.T) {
	source := []Action{{At: 0, Pos: 10}, {At: 100, Pos: 20}}
	f, err := Open(FileOptions{Actions: source})
	require.NoError(t, err)

	source[0].Pos = 99
	assert.Equal(t, 10, f.Actions()[0].Pos)
}

func TestAccessorsReturnCopies(t *testing.T) {
	f := newScript(t, zigzag()...)
	f.SelectAll()

	actions := f.Actions()
	actions[0].Pos = 77
	assert.Equal(t, 0, f.Actions()[0].Pos)

	selection := f.Selection()
	selection[0].Pos = 77
	assert.Equal(t, 0, f.Selection()[0].Pos)
}

func TestMetadataIsolation(t *testing.T) {
	f := New()
	m := Metadata{Title: "demo", Tags: []string{"a", "b"}}
	f.SetMetadata(m)

	m.Tags[0] = "mutated"
	assert.Equal(t, "a", f.Metadata().Tags[0])

	got := f.Metadata()
	got.Tags[1] = "mutated"
	assert.Equal(t, "b", f.Metadata().Tags[1])
}
