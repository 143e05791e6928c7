package bench

import (
	"fmt"
)

// Matrix holds the scenario axes for one run. The driver takes the cross
// product of all axes for every backend.
type Matrix struct {
	AsyncModes   []bool
	Sinks        []SinkKind
	Producers    []int
	MessageSizes []int

	// Total is the message count of each measured pass.
	Total int

	// Warmup is the message count of each warm-up pass.
	Warmup int
}

// Cells returns the number of scenarios the matrix expands to per backend.
func (m Matrix) Cells() int {
	return len(m.AsyncModes) * len(m.Sinks) * len(m.Producers) * len(m.MessageSizes)
}

// ResultSink consumes finished scenario results, one row per scenario.
type ResultSink interface {
	Append(backend string, res Result) error
}

// Driver enumerates the configuration matrix and runs every backend
// through it. A failed scenario fails the whole run; rows already
// appended to the result sink remain valid.
type Driver struct {
	Backends []Backend
	Matrix   Matrix
	Results  ResultSink
	Progress Progress
}

// Run executes the full matrix sequentially. Each backend is closed after
// its last cell.
func (d *Driver) Run() error {
	prog := d.Progress
	if prog == nil {
		prog = NopProgress
	}
	for _, b := range d.Backends {
		if err := d.runBackend(b, prog); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) runBackend(b Backend, prog Progress) (err error) {
	defer func() {
		if cerr := b.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing backend %s: %w", b.Name(), cerr)
		}
	}()

	for _, async := range d.Matrix.AsyncModes {
		for _, sink := range d.Matrix.Sinks {
			for _, producers := range d.Matrix.Producers {
				for _, size := range d.Matrix.MessageSizes {
					sc := Scenario{
						Async:         async,
						Sink:          sink,
						Producers:     producers,
						MessageBytes:  size,
						TotalMessages: d.Matrix.Total,
					}
					res, err := RunScenario(b, sc, d.Matrix.Warmup, prog)
					if err != nil {
						return err
					}
					if d.Results != nil {
						if err := d.Results.Append(b.Name(), res); err != nil {
							return fmt.Errorf("recording result for %s: %w", b.Name(), err)
						}
					}
				}
			}
		}
	}
	return nil
}
