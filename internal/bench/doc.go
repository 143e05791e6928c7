// Package bench implements the benchmark core: a lock-free latency
// recorder, the multi-producer workload generator, the per-scenario
// runner and the matrix driver that sequences a full run.
//
// The packages under internal/backend plug into this core through the
// Backend interface; reporting is decoupled through the ResultSink and
// Progress interfaces so the core never touches files or terminals.
package bench
