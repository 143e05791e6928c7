package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wesleyorama2/logbench/internal/bench"
)

func TestConsole_Result(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, true, false)

	c.Result("slog", sampleResult())
	out := buf.String()

	for _, want := range []string{
		"slog", "async=1", "sink=file", "producers=4", "bytes=200",
		"p50=1500ns", "p99=9000ns", "p999=25000ns", "throughput=500.00 msg/s",
		"samples=1000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestConsole_ProgressLines(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, true, false)
	sc := sampleResult().Scenario

	c.PassStart("slog", sc, bench.PhaseWarmup, 4096)
	c.PassDone("slog", sc, bench.PhaseWarmup)
	out := buf.String()

	if !strings.Contains(out, "warm-up start") || !strings.Contains(out, "warm-up completed") {
		t.Errorf("progress lines missing phase markers:\n%s", out)
	}
	if !strings.Contains(out, "total=4096") {
		t.Errorf("start line missing message count:\n%s", out)
	}
}

func TestConsole_Quiet(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, true, true)
	res := sampleResult()

	c.PassStart("slog", res.Scenario, bench.PhaseMeasure, 1000)
	c.PassDone("slog", res.Scenario, bench.PhaseMeasure)
	c.Result("slog", res)

	out := buf.String()
	if strings.Contains(out, "[logbench]") {
		t.Errorf("quiet mode printed progress lines:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines != 1 {
		t.Errorf("quiet mode printed %d lines, want exactly 1 summary", lines)
	}
	// Color must be disabled on a non-terminal writer regardless of flags.
	if strings.Contains(out, "\x1b[") {
		t.Errorf("ANSI escapes written to a non-terminal:\n%s", out)
	}
}

func TestConsole_NoColorOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	// Ask for color; the buffer is not a terminal, so it must be dropped.
	c := NewConsole(&buf, false, false)
	c.Result("slog", sampleResult())

	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("ANSI escapes written to a non-terminal writer")
	}
}
