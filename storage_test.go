package ofs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScript = `{
	"version": "1.0",
	"actions": [
		{"at": 1000, "pos": 100},
		{"at": 0, "pos": 0},
		{"at": 2000, "pos": 0}
	],
	"metadata": {
		"title": "sample",
		"creator": "someone",
		"tags": ["a", "b"]
	},
	"customField": {"nested": [1, 2, 3]},
	"anotherTool": "kept as-is"
}`

func TestOpenFromBytes(t *testing.T) {
	f, err := Open(FileOptions{DataBytes: []byte(sampleScript)})
	require.NoError(t, err)

	assert.Equal(t, []Action{
		{At: 0, Pos: 0},
		{At: 1000, Pos: 100},
		{At: 2000, Pos: 0},
	}, f.Actions())
	assert.Equal(t, "sample", f.Metadata().Title)
	assert.Equal(t, []string{"a", "b"}, f.Metadata().Tags)
}

func TestOpenRejectsMalformedJSON(t *testing.T) {
	_, err := Open(FileOptions{DataBytes: []byte(`{"actions": "nope"}`)})
	assert.Error(t, err)

	_, err = Open(FileOptions{DataBytes: []byte(`not json`)})
	assert.Error(t, err)
}

func TestUnknownFieldsSurviveRoundTrip(t *testing.T) {
	f, err := Open(FileOptions{DataBytes: []byte(sampleScript)})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.funscript")
	require.NoError(t, f.Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.JSONEq(t, `{"nested": [1, 2, 3]}`, string(doc["customField"]))
	assert.JSONEq(t, `"kept as-is"`, string(doc["anotherTool"]))
	assert.JSONEq(t, `"1.0"`, string(doc["version"]))
	assert.JSONEq(t, `false`, string(doc["inverted"]))
	assert.JSONEq(t, `100`, string(doc["range"]))
}

func TestSaveDropsInvalidActions(t *testing.T) {
	f, err := Open(FileOptions{DataBytes: []byte(
		`{"actions": [{"at": -500, "pos": 50}, {"at": 0, "pos": 150}, {"at": 100, "pos": -10}]}`,
	)})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.funscript")
	require.NoError(t, f.Save(path))

	reloaded, err := Open(FileOptions{FilePath: path})
	require.NoError(t, err)
	assert.Equal(t, []Action{
		{At: 0, Pos: 100},
		{At: 100, Pos: 0},
	}, reloaded.Actions())
}

func TestSaveAndReload(t *testing.T) {
	f := newScript(t, zigzag()...)
	f.SetMetadata(Metadata{Title: "zigzag", Duration: 400})

	path := filepath.Join(t.TempDir(), "out.funscript")
	require.NoError(t, f.Save(path))

	reloaded, err := Open(FileOptions{FilePath: path})
	require.NoError(t, err)
	assert.Equal(t, zigzag(), reloaded.Actions())
	assert.Equal(t, "zigzag", reloaded.Metadata().Title)
	assert.Equal(t, path, reloaded.Path())
}

func TestSaveAsync(t *testing.T) {
	f := newScript(t, zigzag()...)
	dir := t.TempDir()

	first := filepath.Join(dir, "first.funscript")
	second := filepath.Join(dir, "second.funscript")
	f.SaveAsync(first)
	f.Add(Action{At: 500, Pos: 50})
	f.SaveAsync(second)
	require.NoError(t, f.Sync())

	a, err := Open(FileOptions{FilePath: first})
	require.NoError(t, err)
	assert.Equal(t, 5, a.ActionCount())

	b, err := Open(FileOptions{FilePath: second})
	require.NoError(t, err)
	assert.Equal(t, 6, b.ActionCount())
}

func TestSyncReportsWriteError(t *testing.T) {
	f := newScript(t, zigzag()...)
	f.SaveAsync(filepath.Join(t.TempDir(), "missing", "out.funscript"))
	assert.Error(t, f.Sync())
}

func TestLoadMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meta.funscript")
	require.NoError(t, os.WriteFile(path, []byte(sampleScript), 0644))

	m, err := LoadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", m.Title)
	assert.Equal(t, "someone", m.Creator)

	bare := filepath.Join(dir, "bare.funscript")
	require.NoError(t, os.WriteFile(bare, []byte(`{"actions": []}`), 0644))
	_, err = LoadMetadata(bare)
	assert.ErrorIs(t, err, ErrNoMetadata)
}

func TestWriteMetadataToFunscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.funscript")
	require.NoError(t, os.WriteFile(path, []byte(sampleScript), 0644))

	m := Metadata{Title: "replaced", Performers: []string{"p1"}}
	require.NoError(t, m.WriteToFunscript(path))

	got, err := LoadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, "replaced", got.Title)
	assert.Equal(t, []string{"p1"}, got.Performers)

	// The action array is untouched by a metadata rewrite.
	f, err := Open(FileOptions{FilePath: path})
	require.NoError(t, err)
	assert.Equal(t, 3, f.ActionCount())
}
