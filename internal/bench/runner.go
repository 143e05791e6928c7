package bench

import (
	"fmt"
	"time"
)

// Phase identifies which pass of a scenario is executing.
type Phase string

const (
	// PhaseWarmup is the untimed, unsampled warm-up pass.
	PhaseWarmup Phase = "warm-up"

	// PhaseMeasure is the timed, sampled measurement pass.
	PhaseMeasure Phase = "measure"
)

// Result is the outcome of one scenario: finalized statistics plus the
// measured wall-clock duration and derived throughput.
type Result struct {
	Scenario   Scenario
	Summary    Summary
	Duration   time.Duration
	Throughput float64 // messages per second
}

// Progress receives scenario lifecycle notifications. Implementations
// must be cheap; they are invoked between passes, never inside the
// measured window.
type Progress interface {
	PassStart(backend string, sc Scenario, phase Phase, messages int)
	PassDone(backend string, sc Scenario, phase Phase)
	Result(backend string, res Result)
}

type nopProgress struct{}

func (nopProgress) PassStart(string, Scenario, Phase, int) {}
func (nopProgress) PassDone(string, Scenario, Phase)       {}
func (nopProgress) Result(string, Result)                  {}

// NopProgress discards all notifications.
var NopProgress Progress = nopProgress{}

// RunScenario executes one scenario: a fresh recorder sized to the
// scenario's total message count, an untimed unsampled warm-up pass to
// absorb allocation and caching costs, then the timed sampled measurement
// pass, finalized into a Result.
func RunScenario(b Backend, sc Scenario, warmup int, prog Progress) (Result, error) {
	if prog == nil {
		prog = NopProgress
	}
	rec := NewRecorder(sc.TotalMessages)
	if err := b.Prepare(sc, rec); err != nil {
		return Result{}, fmt.Errorf("preparing backend %s: %w", b.Name(), err)
	}

	prog.PassStart(b.Name(), sc, PhaseWarmup, warmup)
	RunPass(b, rec, sc, warmup, false, false)
	prog.PassDone(b.Name(), sc, PhaseWarmup)

	prog.PassStart(b.Name(), sc, PhaseMeasure, sc.TotalMessages)
	dur := RunPass(b, rec, sc, sc.TotalMessages, true, true)
	prog.PassDone(b.Name(), sc, PhaseMeasure)

	res := Result{
		Scenario:   sc,
		Summary:    rec.Finalize(),
		Duration:   dur,
		Throughput: throughput(sc.TotalMessages, dur),
	}
	prog.Result(b.Name(), res)
	return res, nil
}

// throughput derives messages per second, defined as zero for a zero
// duration (the degenerate zero-producer case).
func throughput(total int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(total) / d.Seconds()
}
