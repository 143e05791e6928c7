package bench

import (
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram bounds for the supplementary distribution statistics.
// Range: 1 microsecond to 1 hour, 3 significant figures.
const (
	histMinMicros = 1
	histMaxMicros = 3600000000
	histSigFigs   = 3
)

// Token binds one logged message to its sample slot.
//
// Tokens are returned by Recorder.Begin and travel with the message into
// the backend; the backend hands the token back to Recorder.Complete once
// the message has reached its terminal state. That hand-off is the only
// synchronization edge the recorder relies on: the completing goroutine
// can only learn the slot identity through the token, so the start write
// always happens-before the completion write.
//
// A token obtained with sampling disabled is a sentinel: it refers to no
// slot and Complete ignores it.
type Token struct {
	slot   uint64
	start  time.Time
	active bool
}

// Sampled reports whether the token refers to a sample slot.
func (t Token) Sampled() bool { return t.active }

// Start returns the timestamp captured when the slot was claimed.
// Zero for sentinel tokens.
func (t Token) Start() time.Time { return t.start }

type sampleSlot struct {
	start time.Time
	end   time.Time
	done  bool
}

// Recorder is a fixed-capacity, concurrency-safe store of per-message
// timing samples.
//
// Slot claiming is a single atomic increment; there are no locks on the
// hot path. Each slot's start field is written by exactly one producer
// goroutine and its completion field by exactly one completing goroutine
// (possibly a different one), so no field ever has concurrent writers.
// Finalize must only be called after the run's flush barrier, when every
// issued token has been completed or abandoned.
//
// A Recorder is single-use: Empty -> Accumulating -> Finalized, sized for
// exactly one scenario's message count.
type Recorder struct {
	slots []sampleSlot
	next  atomic.Uint64
}

// NewRecorder returns a recorder with storage for exactly capacity samples.
// Capacity never grows; claiming more than capacity slots is a
// programming-contract violation and panics.
func NewRecorder(capacity int) *Recorder {
	return &Recorder{slots: make([]sampleSlot, capacity)}
}

// Capacity returns the number of samples the recorder was sized for.
func (r *Recorder) Capacity() int { return len(r.slots) }

// Claimed returns how many slots have been claimed so far.
func (r *Recorder) Claimed() int { return int(r.next.Load()) }

// Begin starts timing one message.
//
// With record false it returns a sentinel token in O(1) without touching
// shared state, keeping warm-up passes representative of the steady-state
// hot path. With record true it claims the next unused slot, captures the
// start timestamp and returns a token referencing the slot.
func (r *Recorder) Begin(record bool) Token {
	if !record {
		return Token{}
	}
	idx := r.next.Add(1) - 1
	if idx >= uint64(len(r.slots)) {
		panic(fmt.Sprintf("bench: recorder capacity %d exceeded", len(r.slots)))
	}
	now := time.Now()
	r.slots[idx].start = now
	return Token{slot: idx, start: now, active: true}
}

// Complete records the completion timestamp for the token's slot and marks
// it valid. Safe to call from any goroutine, including one different from
// the goroutine that called Begin. Sentinel tokens are a no-op. Calling
// Complete twice for the same token is a caller contract violation and is
// deliberately not defended against here.
func (r *Recorder) Complete(tok Token) {
	if !tok.active {
		return
	}
	s := &r.slots[tok.slot]
	s.end = time.Now()
	s.done = true
}

// Summary holds the finalized statistics of one measured run.
//
// P50/P99/P999 use the nearest-rank method over the exact recorded
// durations; Dist carries supplementary statistics derived from an HDR
// histogram of the same samples.
type Summary struct {
	P50   time.Duration
	P99   time.Duration
	P999  time.Duration
	Count int
	Dist  Distribution
}

// Distribution contains supplementary latency statistics for the verbose
// console report.
type Distribution struct {
	Min    time.Duration
	Max    time.Duration
	Mean   time.Duration
	StdDev time.Duration
	P90    time.Duration
	P95    time.Duration
}

// Finalize computes percentile statistics over all slots that received
// both a start and a completion timestamp.
//
// It must be called only after the backend's flush barrier has returned,
// so no writer can still be in flight. Slots that never completed are
// excluded; Count exposes how many samples the statistics cover, so an
// undercount is visible to the caller. Zero valid samples yields all-zero
// statistics rather than an error (the legitimate all-warm-up case).
func (r *Recorder) Finalize() Summary {
	durations := make([]time.Duration, 0, len(r.slots))
	for i := range r.slots {
		s := &r.slots[i]
		if s.done {
			durations = append(durations, s.end.Sub(s.start))
		}
	}
	sum := Summary{Count: len(durations)}
	if len(durations) == 0 {
		return sum
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	sum.P50 = nearestRank(durations, 0.50)
	sum.P99 = nearestRank(durations, 0.99)
	sum.P999 = nearestRank(durations, 0.999)

	hist := hdrhistogram.New(histMinMicros, histMaxMicros, histSigFigs)
	for _, d := range durations {
		v := d.Microseconds()
		if v < histMinMicros {
			v = histMinMicros
		}
		if v > histMaxMicros {
			v = histMaxMicros
		}
		hist.RecordValue(v)
	}
	sum.Dist = Distribution{
		Min:    durations[0],
		Max:    durations[len(durations)-1],
		Mean:   time.Duration(hist.Mean()) * time.Microsecond,
		StdDev: time.Duration(hist.StdDev()) * time.Microsecond,
		P90:    time.Duration(hist.ValueAtQuantile(90)) * time.Microsecond,
		P95:    time.Duration(hist.ValueAtQuantile(95)) * time.Microsecond,
	}
	return sum
}

// nearestRank returns the percentile p over sorted using the nearest-rank
// method: index ceil(p*n)-1, clamped into [0, n-1].
func nearestRank(sorted []time.Duration, p float64) time.Duration {
	rank := p * float64(len(sorted))
	idx := int(rank)
	if float64(idx) < rank {
		idx++
	}
	idx--
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
