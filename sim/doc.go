// Package sim provides the discrete-event engine of the CPU scheduling simulator.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - thread.go: Thread lifecycle (NEW → READY → RUNNING → BLOCKED/FINISHED) and bursts
//   - event.go, event_queue.go: Event types and their (time, sequence) total order
//   - simulator.go: The event loop and one handler per event type
//   - scheduler.go, mlfq.go: The Scheduler interface and its five disciplines
//
// # Architecture
//
// A run replays a Workload (processes, threads, bursts, dispatch overheads)
// through one Scheduler:
//   - FCFS: FIFO, runs each CPU burst to completion
//   - RR: FIFO with a fixed quantum (default 3)
//   - SPN: shortest next CPU burst first, non-preemptive
//   - PRIORITY: process priority class first (SYSTEM > INTERACTIVE > NORMAL > BATCH)
//   - MLFQ: ten feedback levels with quantum 2^level, demoting threads that use their quantum
//
// Threads live in a ThreadTable; events and ready queues refer to them by
// ThreadRef. The simulator is single-threaded and owns all mutable state.
//
// Sub-packages:
//   - sim/trace/: transition and decision recording
//   - sim/workload/: workload file loaders (text and YAML)
//   - sim/report/: tables and JSON output of per-thread and system metrics
package sim
