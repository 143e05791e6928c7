package backend

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/simp-lee/logger"

	"github.com/wesleyorama2/logbench/internal/bench"
)

// SimpLee benchmarks github.com/simp-lee/logger, a slog-based logging
// library with rotating file handlers. The discard sink maps to the
// library's file handler pointed at os.DevNull; the file sink writes a
// scratch file under dir.
type SimpLee struct {
	rec    *bench.Recorder
	logger *logger.Logger
	queue  *queue
	dir    string
	path   string // non-empty for the file sink
}

// NewSimpLee returns a simp-lee/logger backend writing file-sink output
// under dir.
func NewSimpLee(dir string) *SimpLee {
	return &SimpLee{dir: dir}
}

// Name implements bench.Backend.
func (s *SimpLee) Name() string { return "simp-lee" }

// Prepare implements bench.Backend.
func (s *SimpLee) Prepare(sc bench.Scenario, rec *bench.Recorder) error {
	if err := s.reset(); err != nil {
		return err
	}
	s.rec = rec

	path := os.DevNull
	if sc.Sink == bench.SinkFile {
		path = filepath.Join(s.dir, fmt.Sprintf("logbench-simplee-%d.log", time.Now().UnixNano()))
		s.path = path
	}
	lg, err := logger.New(
		logger.WithConsole(false),
		logger.WithFile(true),
		logger.WithFilePath(path),
		logger.WithLevel(slog.LevelInfo),
		// Large enough that rotation never triggers mid-run.
		logger.WithMaxSizeMB(4096),
	)
	if err != nil {
		return fmt.Errorf("creating simp-lee logger: %w", err)
	}
	s.logger = lg

	if sc.Async {
		s.queue = newQueue(s.write)
	}
	return nil
}

func (s *SimpLee) write(tok bench.Token, msg string) {
	s.logger.Info(msg)
	s.rec.Complete(tok)
}

// Log implements bench.Backend.
func (s *SimpLee) Log(tok bench.Token, msg string) {
	if s.queue != nil {
		s.queue.enqueue(tok, msg)
		return
	}
	s.write(tok, msg)
}

// Flush implements bench.Backend.
func (s *SimpLee) Flush() {
	if s.queue != nil {
		s.queue.flush()
	}
}

// Close implements bench.Backend.
func (s *SimpLee) Close() error { return s.reset() }

func (s *SimpLee) reset() error {
	if s.queue != nil {
		s.queue.close()
		s.queue = nil
	}
	if s.logger != nil {
		err := s.logger.Close()
		s.logger = nil
		if err != nil {
			return fmt.Errorf("closing simp-lee logger: %w", err)
		}
	}
	if s.path != "" {
		os.Remove(s.path)
		s.path = ""
	}
	return nil
}
