package ofs

import (
	"encoding/json"
	"fmt"
	"os"
)

// Metadata is the descriptive block of a funscript, stored in a dedicated
// sub-object independent of the action array.
type Metadata struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Creator     string   `json:"creator"`
	Description string   `json:"description"`
	Duration    int64    `json:"duration"`
	Notes       string   `json:"notes"`
	License     string   `json:"license"`
	Tags        []string `json:"tags"`
	Performers  []string `json:"performers"`
	ScriptURL   string   `json:"script_url"`
	VideoURL    string   `json:"video_url"`
}

func (m Metadata) clone() Metadata {
	m.Tags = append([]string(nil), m.Tags...)
	m.Performers = append([]string(nil), m.Performers...)
	return m
}

// LoadMetadata reads only the metadata block of a funscript file.
func LoadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("read funscript: %w", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Metadata{}, fmt.Errorf("parse funscript: %w", err)
	}
	rawMeta, ok := raw["metadata"]
	if !ok {
		return Metadata{}, ErrNoMetadata
	}
	var m Metadata
	if err := json.Unmarshal(rawMeta, &m); err != nil {
		return Metadata{}, fmt.Errorf("parse metadata: %w", err)
	}
	return m, nil
}

// WriteToFunscript rewrites the metadata block of an existing funscript
// file, leaving every other field as it is on disk.
func (m Metadata) WriteToFunscript(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read funscript: %w", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse funscript: %w", err)
	}
	metaRaw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	raw["metadata"] = metaRaw
	buf, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshal funscript: %w", err)
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("write funscript: %w", err)
	}
	return nil
}
