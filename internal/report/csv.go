// Package report persists and prints benchmark results.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wesleyorama2/logbench/internal/bench"
)

// csvHeader is the fixed column set of the results file.
var csvHeader = []string{
	"lib", "async", "sink", "producers", "msg_bytes", "total",
	"p50_ns", "p99_ns", "p999_ns", "throughput",
}

// CSV appends one row per scenario to a results file. The header is
// written once, when the file is new or empty. Rows already appended
// survive a later run failure.
type CSV struct {
	path string
}

// NewCSV returns a writer appending to path.
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

// Path returns the results file path.
func (c *CSV) Path() string { return c.path }

// Append implements bench.ResultSink.
func (c *CSV) Append(backend string, res bench.Result) error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating results directory: %w", err)
		}
	}
	f, err := os.OpenFile(c.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", c.path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", c.path, err)
	}

	w := csv.NewWriter(f)
	if st.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	sc := res.Scenario
	row := []string{
		backend,
		boolFlag(sc.Async),
		string(sc.Sink),
		strconv.Itoa(sc.Producers),
		strconv.Itoa(sc.MessageBytes),
		strconv.Itoa(sc.TotalMessages),
		strconv.FormatInt(res.Summary.P50.Nanoseconds(), 10),
		strconv.FormatInt(res.Summary.P99.Nanoseconds(), 10),
		strconv.FormatInt(res.Summary.P999.Nanoseconds(), 10),
		strconv.FormatFloat(res.Throughput, 'f', 2, 64),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("writing row: %w", err)
	}
	w.Flush()
	return w.Error()
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
