package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/wesleyorama2/logbench/internal/bench"
)

// ColorScheme defines the colors used for the console report.
type ColorScheme struct {
	Backend *color.Color
	Phase   *color.Color
	Label   *color.Color
	Value   *color.Color
}

// DefaultColorScheme returns the default color scheme.
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Backend: color.New(color.FgCyan, color.Bold),
		Phase:   color.New(color.FgYellow),
		Label:   color.New(color.FgBlue),
		Value:   color.New(color.FgGreen, color.Bold),
	}
}

// NoColorScheme returns a color scheme with all colors disabled.
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	scheme.Backend.DisableColor()
	scheme.Phase.DisableColor()
	scheme.Label.DisableColor()
	scheme.Value.DisableColor()
	return scheme
}

// Console prints scenario progress and result summaries. It implements
// bench.Progress. Colors are disabled automatically when the writer is
// not a terminal.
type Console struct {
	out    io.Writer
	scheme *ColorScheme
	quiet  bool
}

// NewConsole returns a console reporter on out. quiet suppresses the
// per-pass progress lines and the distribution detail, keeping only one
// summary line per scenario.
func NewConsole(out io.Writer, noColor, quiet bool) *Console {
	if !noColor && !isTerminal(out) {
		noColor = true
	}
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Console{out: out, scheme: scheme, quiet: quiet}
}

// isTerminal checks if the writer is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func scenarioFields(sc bench.Scenario) string {
	async := 0
	if sc.Async {
		async = 1
	}
	return fmt.Sprintf("async=%d sink=%s producers=%d bytes=%d",
		async, sc.Sink, sc.Producers, sc.MessageBytes)
}

// PassStart implements bench.Progress.
func (c *Console) PassStart(backend string, sc bench.Scenario, phase bench.Phase, messages int) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.out, "[logbench] %s start lib=%s %s total=%d\n",
		c.scheme.Phase.Sprint(string(phase)), c.scheme.Backend.Sprint(backend),
		scenarioFields(sc), messages)
}

// PassDone implements bench.Progress.
func (c *Console) PassDone(backend string, sc bench.Scenario, phase bench.Phase) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.out, "[logbench] %s completed lib=%s %s\n",
		c.scheme.Phase.Sprint(string(phase)), c.scheme.Backend.Sprint(backend),
		scenarioFields(sc))
}

// Result implements bench.Progress.
func (c *Console) Result(backend string, res bench.Result) {
	sum := res.Summary
	fmt.Fprintf(c.out, "%s %s total=%d %s %s %s %s\n",
		c.scheme.Backend.Sprint(backend),
		scenarioFields(res.Scenario),
		res.Scenario.TotalMessages,
		c.stat("p50", fmt.Sprintf("%dns", sum.P50.Nanoseconds())),
		c.stat("p99", fmt.Sprintf("%dns", sum.P99.Nanoseconds())),
		c.stat("p999", fmt.Sprintf("%dns", sum.P999.Nanoseconds())),
		c.stat("throughput", fmt.Sprintf("%.2f msg/s", res.Throughput)),
	)
	if c.quiet {
		return
	}
	d := sum.Dist
	fmt.Fprintf(c.out, "  samples=%d min=%s max=%s mean=%s stddev=%s p90=%s p95=%s duration=%s\n",
		sum.Count, d.Min, d.Max, d.Mean, d.StdDev, d.P90, d.P95, res.Duration)
}

func (c *Console) stat(label, value string) string {
	return fmt.Sprintf("%s=%s", c.scheme.Label.Sprint(label), c.scheme.Value.Sprint(value))
}
