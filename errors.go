// Package ofs implements a funscript timeline data engine: an ordered
// sequence of (timestamp, position) actions with fast time-based queries,
// selection-driven transforms, change notification and a bounded
// undo/redo history of whole-document snapshots.
package ofs

import "errors"

// Configuration errors
var (
	// ErrNoDataSource indicates that no data source was provided in FileOptions.
	ErrNoDataSource = errors.New("no data source provided")

	// ErrMultipleDataSources indicates that multiple data sources were provided.
	ErrMultipleDataSources = errors.New("multiple data sources provided")
)

// Selection errors
var (
	// ErrNoSelection indicates that an operation requires a non-empty selection.
	ErrNoSelection = errors.New("no actions selected")
)

// Clipboard errors
var (
	// ErrEmptyClipboard indicates that the clipboard held no actions.
	ErrEmptyClipboard = errors.New("clipboard contains no actions")
)

// Storage errors
var (
	// ErrNoMetadata indicates that a funscript file has no metadata block.
	ErrNoMetadata = errors.New("funscript has no metadata block")
)

// Rendering errors
var (
	// ErrInvalidDimensions indicates a non-positive heatmap width or height.
	ErrInvalidDimensions = errors.New("invalid image dimensions")
)
