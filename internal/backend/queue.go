// Package backend provides the logging backends exercised by the
// benchmark: the standard library's log/slog and github.com/simp-lee/logger.
// Each supports the discard and file sinks and, per scenario, a
// synchronous mode (completion recorded inline in Log) or an asynchronous
// mode (messages drained by a consumer goroutine that records the
// completion).
package backend

import (
	"github.com/wesleyorama2/logbench/internal/bench"
)

// queueDepth is the channel buffer of the async consumer. Deep enough
// that producers rarely block on the queue itself rather than the sink.
const queueDepth = 8192

type entry struct {
	tok bench.Token
	msg string

	// flush, when non-nil, marks a barrier entry: the consumer closes it
	// instead of writing, acknowledging that everything enqueued earlier
	// has been drained.
	flush chan struct{}
}

// queue is the asynchronous-mode wrapper shared by all backends: a single
// consumer goroutine drains entries in FIFO order, so the completion
// timestamp is taken on a different goroutine than the slot claim.
type queue struct {
	ch    chan entry
	done  chan struct{}
	write func(bench.Token, string)
}

func newQueue(write func(bench.Token, string)) *queue {
	q := &queue{
		ch:    make(chan entry, queueDepth),
		done:  make(chan struct{}),
		write: write,
	}
	go q.run()
	return q
}

func (q *queue) run() {
	defer close(q.done)
	for e := range q.ch {
		if e.flush != nil {
			close(e.flush)
			continue
		}
		q.write(e.tok, e.msg)
	}
}

func (q *queue) enqueue(tok bench.Token, msg string) {
	q.ch <- entry{tok: tok, msg: msg}
}

// flush blocks until every entry enqueued before it has been written and
// its completion recorded.
func (q *queue) flush() {
	ack := make(chan struct{})
	q.ch <- entry{flush: ack}
	<-ack
}

// close drains the queue and joins the consumer goroutine.
func (q *queue) close() {
	close(q.ch)
	<-q.done
}
