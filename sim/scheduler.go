package sim

import (
	"errors"
	"fmt"
	"strings"
)

// RunToCompletion is the time slice of schedulers that never preempt: a
// dispatched thread keeps the CPU until its current CPU burst ends.
const RunToCompletion int64 = -1

// DefaultRRTimeSlice is the round robin quantum used when none is given.
const DefaultRRTimeSlice int64 = 3

var (
	// ErrInvalidTimeSlice reports a time slice the chosen algorithm cannot accept.
	ErrInvalidTimeSlice = errors.New("invalid time slice")
	// ErrUnknownAlgorithm reports a scheduler name that is not recognized.
	ErrUnknownAlgorithm = errors.New("unknown scheduling algorithm")
)

const noThreadsExplanation = "No threads available for scheduling."

// SchedulingDecision is the outcome of one scheduler invocation.
type SchedulingDecision struct {
	Thread      ThreadRef // Selected thread, NoThread when the ready queue was empty
	Explanation string    // Human-readable reason, recorded in the trace
}

// HasThread reports whether the decision selected a thread.
func (d *SchedulingDecision) HasThread() bool {
	return d != nil && d.Thread != NoThread
}

// Scheduler owns the ready queue(s) and decides which thread runs next.
// The simulator is agnostic to the discipline behind these four operations.
type Scheduler interface {
	// AddToReadyQueue inserts a READY thread. It may update scheduling
	// bookkeeping on the thread but never its lifecycle state.
	AddToReadyQueue(t *Thread)
	// GetNextThread removes and returns the next thread to run. It never blocks;
	// an empty ready queue yields a decision with Thread == NoThread.
	GetNextThread() SchedulingDecision
	// Size returns the number of queued threads.
	Size() int
	// TimeSlice bounds how long the last selected thread may run before it is
	// preempted. RunToCompletion means no bound.
	TimeSlice() int64
}

// Scheduler names accepted by NewScheduler (case-insensitive).
const (
	SchedulerFCFS     = "FCFS"
	SchedulerRR       = "RR"
	SchedulerSPN      = "SPN"
	SchedulerPriority = "PRIORITY"
	SchedulerMLFQ     = "MLFQ"
)

// validSchedulers is the set of recognized scheduler names.
var validSchedulers = map[string]bool{
	SchedulerFCFS:     true,
	SchedulerRR:       true,
	SchedulerSPN:      true,
	SchedulerPriority: true,
	SchedulerMLFQ:     true,
}

// IsValidScheduler returns true if name is a recognized scheduler.
func IsValidScheduler(name string) bool {
	return validSchedulers[strings.ToUpper(name)]
}

// ValidSchedulerNames returns the recognized names in a stable order.
func ValidSchedulerNames() []string {
	return []string{SchedulerFCFS, SchedulerRR, SchedulerSPN, SchedulerPriority, SchedulerMLFQ}
}

// NewScheduler creates a Scheduler by name. Threads handed to the scheduler
// must live in threads. slice is RunToCompletion unless the caller asked for
// a specific round robin quantum.
func NewScheduler(name string, slice int64, threads *ThreadTable) (Scheduler, error) {
	if threads == nil {
		return nil, fmt.Errorf("scheduler %q: thread table must not be nil", name)
	}
	switch strings.ToUpper(name) {
	case SchedulerFCFS:
		return NewFCFSScheduler(slice, threads)
	case SchedulerRR:
		return NewRRScheduler(slice, threads)
	case SchedulerSPN:
		return NewSPNScheduler(slice, threads)
	case SchedulerPriority:
		return NewPriorityScheduler(slice, threads)
	case SchedulerMLFQ:
		return NewMLFQScheduler(slice, threads)
	default:
		return nil, fmt.Errorf("%w %q (valid: %s)", ErrUnknownAlgorithm, name, strings.Join(ValidSchedulerNames(), ", "))
	}
}

func requireRunToCompletion(name string, slice int64) error {
	if slice != RunToCompletion {
		return fmt.Errorf("%s must have a time slice of %d, got %d: %w", name, RunToCompletion, slice, ErrInvalidTimeSlice)
	}
	return nil
}

// FCFSScheduler serves threads in the order they became ready.
type FCFSScheduler struct {
	queue ReadyQueue
}

// NewFCFSScheduler accepts only RunToCompletion as its time slice.
func NewFCFSScheduler(slice int64, _ *ThreadTable) (*FCFSScheduler, error) {
	if err := requireRunToCompletion(SchedulerFCFS, slice); err != nil {
		return nil, err
	}
	return &FCFSScheduler{}, nil
}

// AddToReadyQueue appends t to the back of the FIFO.
func (s *FCFSScheduler) AddToReadyQueue(t *Thread) {
	s.queue.Enqueue(t.Ref)
}

// GetNextThread dequeues the longest-waiting ready thread.
func (s *FCFSScheduler) GetNextThread() SchedulingDecision {
	if s.queue.Len() == 0 {
		return SchedulingDecision{Thread: NoThread, Explanation: noThreadsExplanation}
	}
	n := s.queue.Len()
	return SchedulingDecision{
		Thread:      s.queue.Dequeue(),
		Explanation: fmt.Sprintf("Selected from %d threads. Will run to completion of burst.", n),
	}
}

// Size returns the number of ready threads.
func (s *FCFSScheduler) Size() int        { return s.queue.Len() }
// TimeSlice always returns RunToCompletion.
func (s *FCFSScheduler) TimeSlice() int64 { return RunToCompletion }

// RRScheduler serves threads in FIFO order, each for at most a fixed quantum.
type RRScheduler struct {
	queue     ReadyQueue
	timeSlice int64
}

// NewRRScheduler accepts a positive quantum, or RunToCompletion to use
// DefaultRRTimeSlice.
func NewRRScheduler(slice int64, _ *ThreadTable) (*RRScheduler, error) {
	switch {
	case slice == RunToCompletion:
		slice = DefaultRRTimeSlice
	case slice <= 0:
		return nil, fmt.Errorf("%s time slice must be positive, got %d: %w", SchedulerRR, slice, ErrInvalidTimeSlice)
	}
	return &RRScheduler{timeSlice: slice}, nil
}

// AddToReadyQueue appends t to the back of the FIFO.
func (s *RRScheduler) AddToReadyQueue(t *Thread) {
	s.queue.Enqueue(t.Ref)
}

// GetNextThread dequeues the front thread for one quantum.
func (s *RRScheduler) GetNextThread() SchedulingDecision {
	if s.queue.Len() == 0 {
		return SchedulingDecision{Thread: NoThread, Explanation: noThreadsExplanation}
	}
	n := s.queue.Len()
	return SchedulingDecision{
		Thread:      s.queue.Dequeue(),
		Explanation: fmt.Sprintf("Selected from %d threads. Will run for at most %d ticks.", n, s.timeSlice),
	}
}

// Size returns the number of ready threads.
func (s *RRScheduler) Size() int        { return s.queue.Len() }
// TimeSlice returns the fixed quantum.
func (s *RRScheduler) TimeSlice() int64 { return s.timeSlice }

// SPNScheduler serves the thread whose next CPU burst is shortest.
// Equal lengths are served in the order the threads became ready.
type SPNScheduler struct {
	queue StablePriorityQueue
}

// NewSPNScheduler accepts only RunToCompletion as its time slice.
func NewSPNScheduler(slice int64, _ *ThreadTable) (*SPNScheduler, error) {
	if err := requireRunToCompletion(SchedulerSPN, slice); err != nil {
		return nil, err
	}
	return &SPNScheduler{}, nil
}

// AddToReadyQueue keys t by the length of its next CPU burst.
func (s *SPNScheduler) AddToReadyQueue(t *Thread) {
	b := t.NextBurst(BurstCPU)
	if b == nil {
		panic(fmt.Sprintf("SPNScheduler: ready thread %d of process %d has no CPU burst", t.ID, t.ProcessID))
	}
	s.queue.Push(b.Length, t.Ref)
}

// GetNextThread dequeues the thread with the shortest next CPU burst.
func (s *SPNScheduler) GetNextThread() SchedulingDecision {
	if s.queue.Len() == 0 {
		return SchedulingDecision{Thread: NoThread, Explanation: noThreadsExplanation}
	}
	n := s.queue.Len()
	return SchedulingDecision{
		Thread:      s.queue.Pop(),
		Explanation: fmt.Sprintf("Selected from %d threads. Will run to completion of burst.", n),
	}
}

// Size returns the number of ready threads.
func (s *SPNScheduler) Size() int        { return s.queue.Len() }
// TimeSlice always returns RunToCompletion.
func (s *SPNScheduler) TimeSlice() int64 { return RunToCompletion }

// PriorityScheduler serves threads by process priority class, SYSTEM first.
// Within a class, threads are served in the order they became ready.
type PriorityScheduler struct {
	threads *ThreadTable
	queue   StablePriorityQueue
	counts  [NumPriorityClasses]int // ready threads per class, for explanations
}

// NewPriorityScheduler accepts only RunToCompletion as its time slice.
// threads resolves queued refs to their priority class.
func NewPriorityScheduler(slice int64, threads *ThreadTable) (*PriorityScheduler, error) {
	if err := requireRunToCompletion(SchedulerPriority, slice); err != nil {
		return nil, err
	}
	return &PriorityScheduler{threads: threads}, nil
}

// AddToReadyQueue keys t by its process priority class.
func (s *PriorityScheduler) AddToReadyQueue(t *Thread) {
	s.queue.Push(int64(t.Priority), t.Ref)
	s.counts[t.Priority]++
}

// GetNextThread dequeues the oldest thread of the highest ready class.
func (s *PriorityScheduler) GetNextThread() SchedulingDecision {
	if s.queue.Len() == 0 {
		return SchedulingDecision{Thread: NoThread, Explanation: noThreadsExplanation}
	}
	before := s.formatCounts()
	ref := s.queue.Pop()
	s.counts[s.threads.Get(ref).Priority]--
	return SchedulingDecision{
		Thread:      ref,
		Explanation: fmt.Sprintf("%s -> %s. Will run to completion of burst.", before, s.formatCounts()),
	}
}

func (s *PriorityScheduler) formatCounts() string {
	return fmt.Sprintf("[S: %d I: %d N: %d B: %d]", s.counts[PrioritySystem], s.counts[PriorityInteractive], s.counts[PriorityNormal], s.counts[PriorityBatch])
}

// Size returns the number of ready threads.
func (s *PriorityScheduler) Size() int        { return s.queue.Len() }
// TimeSlice always returns RunToCompletion.
func (s *PriorityScheduler) TimeSlice() int64 { return RunToCompletion }
