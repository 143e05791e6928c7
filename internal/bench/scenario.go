package bench

// SinkKind identifies the destination a backend writes to.
type SinkKind string

const (
	// SinkDiscard throws every formatted message away.
	SinkDiscard SinkKind = "discard"

	// SinkFile appends formatted messages to a scratch file.
	SinkFile SinkKind = "file"
)

// Scenario is one cell of the benchmark matrix. It is constructed by the
// driver, read-only thereafter, and lives for exactly one runner
// invocation.
type Scenario struct {
	// Async selects the backend's asynchronous mode (messages enqueued
	// and drained by a consumer goroutine) instead of inline writes.
	Async bool

	// Sink is the destination kind exercised by this cell.
	Sink SinkKind

	// Producers is the number of concurrent producer goroutines.
	Producers int

	// MessageBytes is the payload size of each logged message.
	MessageBytes int

	// TotalMessages is the message count of the measured pass, and the
	// recorder capacity for the whole scenario.
	TotalMessages int
}

// Backend is the logging backend under test.
//
// Implementations live in internal/backend; the core only needs this
// surface. Log must eventually cause Recorder.Complete to be invoked
// exactly once for every sampled token it accepted, from whichever
// goroutine processes the message to its terminal state. Flush must block
// until every previously accepted message has completed.
type Backend interface {
	// Name is the human-readable backend name used in reports.
	Name() string

	// Prepare binds the backend to a recorder and sink for the upcoming
	// scenario, tearing down any state from a previous one.
	Prepare(sc Scenario, rec *Recorder) error

	// Log accepts one message tagged with its timing token.
	Log(tok Token, msg string)

	// Flush blocks until all previously accepted messages have reached
	// their terminal state and their completions are recorded.
	Flush()

	// Close releases any resources still held (files, consumer
	// goroutines) after the backend's last scenario.
	Close() error
}
