package bench

import (
	"strings"
	"sync"
	"time"
)

// RunPass drives exactly messages logged events through the backend,
// split across sc.Producers goroutines.
//
// Every producer first builds its payload, then registers at a rendezvous
// and blocks; once all producers are registered the orchestrating
// goroutine captures the start timestamp (when measure is set) and
// releases them simultaneously, so the measured window covers only work
// performed concurrently by all producers and excludes startup jitter.
// The window closes after every producer has finished and the backend's
// flush barrier has returned, so all samples are durably recorded by the
// time RunPass returns.
//
// With record false the pass runs unsampled (warm-up); with measure false
// the returned duration is zero. Zero producers performs only the flush
// and returns immediately.
func RunPass(b Backend, rec *Recorder, sc Scenario, messages int, record, measure bool) time.Duration {
	if sc.Producers <= 0 {
		b.Flush()
		return 0
	}

	counts := distribute(messages, sc.Producers)

	var ready, done sync.WaitGroup
	ready.Add(sc.Producers)
	done.Add(sc.Producers)
	start := make(chan struct{})

	for i := 0; i < sc.Producers; i++ {
		go func(id, n int) {
			defer done.Done()
			msg := buildPayload(sc.MessageBytes, id)
			ready.Done()
			<-start
			for j := 0; j < n; j++ {
				b.Log(rec.Begin(record), msg)
			}
		}(i, counts[i])
	}

	ready.Wait()
	var begin time.Time
	if measure {
		begin = time.Now()
	}
	close(start)

	done.Wait()
	b.Flush()

	if !measure {
		return 0
	}
	return time.Since(begin)
}

// distribute partitions n messages across p producers as evenly as
// possible: every producer gets floor(n/p), and the first n mod p
// producers one extra, so the counts sum exactly to n.
func distribute(n, p int) []int {
	counts := make([]int, p)
	base, extra := n/p, n%p
	for i := range counts {
		counts[i] = base
		if i < extra {
			counts[i]++
		}
	}
	return counts
}

// buildPayload returns a fixed message of the requested byte length,
// filled with a deterministic per-producer byte. Construction cost is
// paid before the rendezvous, never inside the measured window.
func buildPayload(size, producer int) string {
	if size <= 0 {
		return ""
	}
	fill := byte('A' + producer%26)
	return strings.Repeat(string(fill), size)
}
