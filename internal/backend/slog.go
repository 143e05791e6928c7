package backend

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/wesleyorama2/logbench/internal/bench"
)

// Slog benchmarks the standard library's log/slog text handler.
type Slog struct {
	rec    *bench.Recorder
	logger *slog.Logger
	queue  *queue   // non-nil in async mode
	file   *os.File // non-nil for the file sink
	dir    string   // scratch directory for file sinks
}

// NewSlog returns a slog backend writing file-sink output under dir.
func NewSlog(dir string) *Slog {
	return &Slog{dir: dir}
}

// Name implements bench.Backend.
func (s *Slog) Name() string { return "slog" }

// Prepare implements bench.Backend. It tears down state from a previous
// scenario, opens the requested sink and, in async mode, starts the
// consumer goroutine.
func (s *Slog) Prepare(sc bench.Scenario, rec *bench.Recorder) error {
	if err := s.reset(); err != nil {
		return err
	}
	s.rec = rec

	var w io.Writer = io.Discard
	if sc.Sink == bench.SinkFile {
		f, err := os.CreateTemp(s.dir, "logbench-slog-*.log")
		if err != nil {
			return fmt.Errorf("opening file sink: %w", err)
		}
		s.file = f
		w = f
	}
	s.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if sc.Async {
		s.queue = newQueue(s.write)
	}
	return nil
}

// write formats the message into the sink and records its completion.
// In sync mode it runs on the producer goroutine, in async mode on the
// queue's consumer goroutine.
func (s *Slog) write(tok bench.Token, msg string) {
	s.logger.LogAttrs(context.Background(), slog.LevelInfo, msg)
	s.rec.Complete(tok)
}

// Log implements bench.Backend.
func (s *Slog) Log(tok bench.Token, msg string) {
	if s.queue != nil {
		s.queue.enqueue(tok, msg)
		return
	}
	s.write(tok, msg)
}

// Flush implements bench.Backend. Synchronous writes are already complete
// when Log returns, so only the async queue needs draining.
func (s *Slog) Flush() {
	if s.queue != nil {
		s.queue.flush()
	}
}

// Close implements bench.Backend.
func (s *Slog) Close() error { return s.reset() }

func (s *Slog) reset() error {
	if s.queue != nil {
		s.queue.close()
		s.queue = nil
	}
	if s.file != nil {
		err := s.file.Close()
		os.Remove(s.file.Name())
		s.file = nil
		if err != nil {
			return fmt.Errorf("closing file sink: %w", err)
		}
	}
	return nil
}
