package bench

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// ExitTimeout is the process exit status used when the watchdog fires.
const ExitTimeout = 124

// watchdogPoll is how often the watchdog checks the deadline and the
// completion flag.
const watchdogPoll = 200 * time.Millisecond

// Watchdog force-terminates the process if the whole run overruns its
// time budget. It is a non-graceful safety net outside the core's own
// error handling: on timeout it exits immediately, bypassing cleanup.
type Watchdog struct {
	done atomic.Bool
	wg   sync.WaitGroup
}

// StartWatchdog arms a watchdog with the given budget. A budget <= 0
// returns a disarmed watchdog whose Stop is a no-op. onTimeout is invoked
// at most once when the deadline passes; nil selects the default action
// of printing a diagnostic and exiting with ExitTimeout.
func StartWatchdog(budget time.Duration, onTimeout func()) *Watchdog {
	w := &Watchdog{}
	if budget <= 0 {
		return w
	}
	if onTimeout == nil {
		onTimeout = func() {
			fmt.Fprintf(os.Stderr, "logbench: timeout reached after %s, terminating\n", budget)
			os.Exit(ExitTimeout)
		}
	}
	deadline := time.Now().Add(budget)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(watchdogPoll)
		defer ticker.Stop()
		for range ticker.C {
			if w.done.Load() {
				return
			}
			if !time.Now().Before(deadline) {
				onTimeout()
				return
			}
		}
	}()
	return w
}

// Stop signals normal completion and joins the watchdog goroutine.
// Idempotent.
func (w *Watchdog) Stop() {
	if !w.done.CompareAndSwap(false, true) {
		return
	}
	w.wg.Wait()
}
