// ofs-bench is a benchmark and stress test for the OFS library.
// It generates a long synthetic script and measures common operations.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/MarshMongoose/OFS"
)

const (
	actionCount = 500_000
	intervalMs  = 200
	queryCount  = 100_000
	undoDepth   = 500
)

type BenchResult struct {
	Name     string
	Duration time.Duration
	Ops      int
	Extra    string
}

func (r BenchResult) String() string {
	if r.Ops > 0 {
		opsPerSec := float64(r.Ops) / r.Duration.Seconds()
		if r.Extra != "" {
			return fmt.Sprintf("%-40s %12v  (%d ops, %.2f ops/sec) %s", r.Name, r.Duration.Round(time.Millisecond), r.Ops, opsPerSec, r.Extra)
		}
		return fmt.Sprintf("%-40s %12v  (%d ops, %.2f ops/sec)", r.Name, r.Duration.Round(time.Millisecond), r.Ops, opsPerSec)
	}
	if r.Extra != "" {
		return fmt.Sprintf("%-40s %12v  %s", r.Name, r.Duration.Round(time.Millisecond), r.Extra)
	}
	return fmt.Sprintf("%-40s %12v", r.Name, r.Duration.Round(time.Millisecond))
}

// syntheticActions builds a random-walk script with strictly ascending
// timestamps.
func syntheticActions(rng *rand.Rand, n int) []ofs.Action {
	actions := make([]ofs.Action, n)
	pos := 50
	at := int64(0)
	for i := range actions {
		pos += rng.Intn(61) - 30
		if pos < 0 {
			pos = 0
		}
		if pos > 100 {
			pos = 100
		}
		at += int64(50 + rng.Intn(intervalMs))
		actions[i] = ofs.Action{At: at, Pos: pos}
	}
	return actions
}

func main() {
	fmt.Println("OFS Benchmark and Stress Test")
	fmt.Println("=============================")
	fmt.Printf("Actions: %d\n", actionCount)
	fmt.Printf("Go version: %s\n", runtime.Version())
	fmt.Printf("GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
	fmt.Println()

	tmpDir, err := os.MkdirTemp("", "ofs-bench-*")
	if err != nil {
		fmt.Printf("Failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(tmpDir)

	rng := rand.New(rand.NewSource(1))
	actions := syntheticActions(rng, actionCount)
	span := actions[len(actions)-1].At

	var results []BenchResult
	record := func(r BenchResult) {
		results = append(results, r)
		fmt.Println(r)
	}

	start := time.Now()
	script, err := ofs.Open(ofs.FileOptions{Actions: actions})
	if err != nil {
		fmt.Printf("Open failed: %v\n", err)
		os.Exit(1)
	}
	record(BenchResult{Name: "Bulk load", Duration: time.Since(start), Ops: actionCount})

	start = time.Now()
	script.RebuildIndex()
	record(BenchResult{Name: "Index rebuild", Duration: time.Since(start)})

	start = time.Now()
	for i := 0; i < queryCount; i++ {
		script.PositionAtTime(rng.Int63n(span))
	}
	record(BenchResult{Name: "PositionAtTime (fresh index)", Duration: time.Since(start), Ops: queryCount})

	start = time.Now()
	for i := 0; i < queryCount; i++ {
		script.Nearest(rng.Int63n(span), intervalMs)
	}
	record(BenchResult{Name: "Nearest (fresh index)", Duration: time.Since(start), Ops: queryCount})

	start = time.Now()
	for i := 0; i < queryCount; i++ {
		script.NextAfter(rng.Int63n(span))
		script.PrevBefore(rng.Int63n(span))
	}
	record(BenchResult{Name: "NextAfter + PrevBefore", Duration: time.Since(start), Ops: 2 * queryCount})

	start = time.Now()
	script.SelectTime(0, span/2, true)
	record(BenchResult{Name: "SelectTime (half script)", Duration: time.Since(start),
		Extra: fmt.Sprintf("%d selected", script.SelectionSize())})

	start = time.Now()
	script.SelectTopActions()
	record(BenchResult{Name: "SelectTopActions", Duration: time.Since(start),
		Extra: fmt.Sprintf("%d remain", script.SelectionSize())})

	script.SelectTime(0, span/2, true)
	start = time.Now()
	script.MoveSelectionPosition(5)
	record(BenchResult{Name: "MoveSelectionPosition", Duration: time.Since(start), Ops: script.SelectionSize()})

	history := script.History()
	start = time.Now()
	for i := 0; i < undoDepth; i++ {
		history.Snapshot(ofs.OpAddEditActions, true)
	}
	record(BenchResult{Name: "Snapshot", Duration: time.Since(start), Ops: undoDepth})

	start = time.Now()
	for history.Undo() {
	}
	record(BenchResult{Name: "Undo to bottom", Duration: time.Since(start), Ops: undoDepth})

	path := filepath.Join(tmpDir, "bench.funscript")
	start = time.Now()
	if err := script.Save(path); err != nil {
		fmt.Printf("Save failed: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)
	info, _ := os.Stat(path)
	record(BenchResult{Name: "Save", Duration: elapsed,
		Extra: fmt.Sprintf("%d bytes", info.Size())})

	start = time.Now()
	if _, err := ofs.Open(ofs.FileOptions{FilePath: path}); err != nil {
		fmt.Printf("Reload failed: %v\n", err)
		os.Exit(1)
	}
	record(BenchResult{Name: "Reload from disk", Duration: time.Since(start), Ops: actionCount})

	fmt.Println()
	fmt.Printf("%d benchmarks complete\n", len(results))
}
