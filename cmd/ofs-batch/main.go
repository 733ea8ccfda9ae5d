// ofs-batch applies a YAML recipe of editing operations to a funscript
// file. Each operation snapshots history before running, so a recipe can
// be inspected step by step with the library's undo stack.
package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MarshMongoose/OFS"
)

// Recipe describes a batch editing run.
type Recipe struct {
	Input      string      `yaml:"input"`
	Output     string      `yaml:"output"`
	Heatmap    string      `yaml:"heatmap"`
	MaxHistory int         `yaml:"max_history"`
	Operations []Operation `yaml:"operations"`
}

// Operation is a single editing step. Only the fields relevant to the op
// need to be set in the recipe.
type Operation struct {
	Op        string  `yaml:"op"`
	From      int64   `yaml:"from"`
	To        int64   `yaml:"to"`
	At        int64   `yaml:"at"`
	Pos       int     `yaml:"pos"`
	Offset    int64   `yaml:"offset"`
	Percent   float64 `yaml:"percent"`
	Gap       int64   `yaml:"gap"`
	Tolerance int64   `yaml:"tolerance"`
}

func readRecipe(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var recipe Recipe
	if err := yaml.Unmarshal(data, &recipe); err != nil {
		return nil, err
	}
	if recipe.Input == "" {
		return nil, fmt.Errorf("recipe has no input")
	}
	return &recipe, nil
}

func apply(script *ofs.Funscript, op Operation) error {
	history := script.History()
	switch op.Op {
	case "select_time":
		script.SelectTime(op.From, op.To, true)
	case "select_all":
		script.SelectAll()
	case "select_top":
		history.Snapshot(ofs.OpTopPointsOnly, true)
		script.SelectTopActions()
	case "select_bottom":
		history.Snapshot(ofs.OpBottomPointsOnly, true)
		script.SelectBottomActions()
	case "select_mid":
		history.Snapshot(ofs.OpMidPointsOnly, true)
		script.SelectMidActions()
	case "clear_selection":
		script.ClearSelection()
	case "invert":
		history.Snapshot(ofs.OpInvertActions, true)
		script.InvertSelection()
	case "equalize":
		history.Snapshot(ofs.OpEqualizeActions, true)
		script.EqualizeSelection()
	case "range_extend":
		history.Snapshot(ofs.OpRangeExtend, true)
		script.RangeExtendSelection(int(op.Percent))
	case "move_time":
		history.Snapshot(ofs.OpActionsMoved, true)
		script.MoveSelectionTime(op.Offset, op.Gap)
	case "move_position":
		history.Snapshot(ofs.OpActionsMoved, true)
		script.MoveSelectionPosition(int(op.Offset))
	case "remove_selected":
		history.Snapshot(ofs.OpRemoveSelection, true)
		script.RemoveSelectedActions()
	case "remove_interval":
		history.Snapshot(ofs.OpRemoveActions, true)
		script.RemoveInterval(op.From, op.To)
	case "add":
		history.Snapshot(ofs.OpAddEditActions, true)
		if !script.Add(ofs.Action{At: op.At, Pos: op.Pos}) {
			return fmt.Errorf("add at %dms rejected", op.At)
		}
	case "add_or_edit":
		history.Snapshot(ofs.OpAddEditActions, true)
		script.AddOrEdit(ofs.Action{At: op.At, Pos: op.Pos}, op.Tolerance)
	case "remove":
		history.Snapshot(ofs.OpRemoveActions, true)
		if a, ok := script.Nearest(op.At, op.Tolerance); ok {
			script.Remove(a)
		}
	case "undo":
		history.Undo()
	case "redo":
		history.Redo()
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
	script.Update()
	return nil
}

func run(recipePath string) error {
	recipe, err := readRecipe(recipePath)
	if err != nil {
		return fmt.Errorf("read recipe: %w", err)
	}

	script, err := ofs.Open(ofs.FileOptions{
		FilePath:   recipe.Input,
		MaxHistory: recipe.MaxHistory,
	})
	if err != nil {
		return fmt.Errorf("open %s: %w", recipe.Input, err)
	}

	for i, op := range recipe.Operations {
		if err := apply(script, op); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i+1, op.Op, err)
		}
	}

	output := recipe.Output
	if output == "" {
		output = recipe.Input
	}
	if err := script.Save(output); err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}
	fmt.Printf("%s: %d operations applied, %d actions written to %s\n",
		recipe.Input, len(recipe.Operations), script.ActionCount(), output)

	if recipe.Heatmap != "" {
		opts := ofs.HeatmapOptions{Width: 1000, Height: 50, Label: true}
		if err := script.SaveHeatmapPNG(recipe.Heatmap, opts); err != nil {
			return fmt.Errorf("heatmap %s: %w", recipe.Heatmap, err)
		}
		fmt.Printf("heatmap written to %s\n", recipe.Heatmap)
	}
	return nil
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s recipe.yaml\n", os.Args[0])
		os.Exit(2)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "ofs-batch: %v\n", err)
		os.Exit(1)
	}
}
