package ofs

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"
)

const formatVersion = "1.0"

// engineFields are the top-level keys the engine generates itself. Every
// other key found in a loaded file is preserved verbatim and re-emitted at
// save time, so attributes added by other tools survive a round trip.
var engineFields = []string{"actions", "version", "inverted", "range", "OpenFunscripter", "metadata"}

// loadScript parses funscript JSON into the document: the action array,
// the metadata block, and the base of unrecognized top-level fields.
func (f *Funscript) loadScript(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse funscript: %w", err)
	}

	var actions []Action
	if rawActions, ok := raw["actions"]; ok {
		if err := json.Unmarshal(rawActions, &actions); err != nil {
			return fmt.Errorf("parse actions: %w", err)
		}
	}
	f.data.Actions = sortAndCompact(actions)

	if rawMeta, ok := raw["metadata"]; ok {
		if err := json.Unmarshal(rawMeta, &f.meta); err != nil {
			return fmt.Errorf("parse metadata: %w", err)
		}
	}

	f.setBase(raw)
	f.notifyActionsChanged(true)
	return nil
}

// setBase keeps everything that is not generated by the engine, so that a
// save does not wipe attributes added by other tools.
func (f *Funscript) setBase(raw map[string]json.RawMessage) {
	base := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		base[k] = v
	}
	for _, k := range engineFields {
		delete(base, k)
	}
	f.base = base
}

// Save writes the document to path synchronously.
func (f *Funscript) Save(path string) error {
	return writeScript(path, append([]Action(nil), f.data.Actions...), f.meta.clone(), f.cloneBase())
}

// SaveAsync snapshots the document by value and writes it on a background
// worker without blocking the control thread. Successive saves are
// serialized: a new save waits for any in-flight one rather than
// interleaving writes. Use Sync to drain and observe the first error.
func (f *Funscript) SaveAsync(path string) {
	actions := append([]Action(nil), f.data.Actions...)
	meta := f.meta.clone()
	base := f.cloneBase()
	f.saver.group.Go(func() error {
		f.saver.mu.Lock()
		defer f.saver.mu.Unlock()
		return writeScript(path, actions, meta, base)
	})
}

// Sync waits for every outstanding background save and returns the first
// write error, if any.
func (f *Funscript) Sync() error {
	return f.saver.group.Wait()
}

func (f *Funscript) cloneBase() map[string]json.RawMessage {
	if f.base == nil {
		return nil
	}
	base := make(map[string]json.RawMessage, len(f.base))
	for k, v := range f.base {
		base[k] = v
	}
	return base
}

// scriptSaver serializes background writes of one document.
type scriptSaver struct {
	mu    sync.Mutex
	group errgroup.Group
}

// writeScript assembles and writes the on-disk document: preserved base
// fields first, engine fields on top. Actions with a negative timestamp
// are dropped and positions clamped to [0,100] before serialization.
func writeScript(path string, actions []Action, meta Metadata, base map[string]json.RawMessage) error {
	doc := make(map[string]json.RawMessage, len(base)+5)
	for k, v := range base {
		doc[k] = v
	}

	versionRaw, err := json.Marshal(formatVersion)
	if err != nil {
		return err
	}
	doc["version"] = versionRaw
	doc["inverted"] = json.RawMessage("false")
	doc["range"] = json.RawMessage("100")

	metaRaw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	doc["metadata"] = metaRaw

	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		if a.At < 0 {
			continue
		}
		a.Pos = clampPos(a.Pos)
		out = append(out, a)
	}
	actionsRaw, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal actions: %w", err)
	}
	doc["actions"] = actionsRaw

	buf, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal funscript: %w", err)
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("write funscript: %w", err)
	}
	return nil
}
