// Defines the Thread struct that models one schedulable thread of a process.
// Tracks its remaining bursts, lifecycle state and timestamps for response
// and turnaround time, plus the feedback-queue bookkeeping used by MLFQ.

package sim

import (
	"fmt"
)

// ThreadState represents the lifecycle state of a thread.
type ThreadState string

const (
	StateNew      ThreadState = "NEW"
	StateReady    ThreadState = "READY"
	StateRunning  ThreadState = "RUNNING"
	StateBlocked  ThreadState = "BLOCKED"
	StateFinished ThreadState = "FINISHED"
)

// legalTransitions lists, for each state, the states a thread may move to.
var legalTransitions = map[ThreadState][]ThreadState{
	StateNew:     {StateReady},
	StateReady:   {StateRunning},
	StateRunning: {StateBlocked, StateReady, StateFinished},
	StateBlocked: {StateReady},
}

// ThreadRef is the stable arena index of a thread inside a ThreadTable.
// Events and ready queues hold refs, never the thread itself.
type ThreadRef int

// NoThread marks the absence of a thread.
const NoThread ThreadRef = -1

type Thread struct {
	Ref         ThreadRef     // Arena index, assigned by ThreadTable.Add
	ID          int           // Thread id, unique within its process
	ProcessID   int           // Owning process
	Priority    PriorityClass // Class of the owning process
	ArrivalTime int64         // Tick at which the thread becomes ready for the first time

	State           ThreadState
	PreviousState   ThreadState
	StateChangeTime int64 // Tick of the most recent transition

	Bursts []*Burst // Remaining bursts, consumed front to back

	ServiceTime int64 // CPU ticks received so far
	IOTime      int64 // I/O ticks completed so far
	StartTime   int64 // Tick of the first RUNNING transition, -1 until then
	EndTime     int64 // Tick of the FINISHED transition, -1 until then

	// Feedback-queue bookkeeping. Only MLFQScheduler reads or writes these.
	FeedbackLevel int   // 0 is the highest level
	LevelQuantum  int64 // quantum of FeedbackLevel
	LevelRuntime  int64 // quantum granted while at FeedbackLevel
}

// NewThread creates a thread in state NEW from alternating CPU/IO burst lengths.
// The first and last lengths are CPU bursts.
func NewThread(id, processID int, priority PriorityClass, arrival int64, lengths []int64) *Thread {
	t := &Thread{
		Ref:           NoThread,
		ID:            id,
		ProcessID:     processID,
		Priority:      priority,
		ArrivalTime:   arrival,
		State:         StateNew,
		PreviousState: StateNew,
		StartTime:     -1,
		EndTime:       -1,
		LevelQuantum:  QuantumForLevel(0),
	}
	t.Bursts = make([]*Burst, len(lengths))
	for i, l := range lengths {
		typ := BurstCPU
		if i%2 == 1 {
			typ = BurstIO
		}
		t.Bursts[i] = &Burst{Type: typ, Length: l}
	}
	return t
}

// NextBurst returns the front burst if it has the given type, nil otherwise.
func (t *Thread) NextBurst(typ BurstType) *Burst {
	if len(t.Bursts) == 0 || t.Bursts[0].Type != typ {
		return nil
	}
	return t.Bursts[0]
}

// PopNextBurst removes the front burst, which must have the given type, and
// credits its remaining length to the thread's service or I/O time.
func (t *Thread) PopNextBurst(typ BurstType) *Burst {
	b := t.NextBurst(typ)
	if b == nil {
		panic(fmt.Sprintf("PopNextBurst: thread %d of process %d has no %s burst at the front", t.ID, t.ProcessID, typ))
	}
	t.Bursts = t.Bursts[1:]
	switch typ {
	case BurstCPU:
		t.ServiceTime += b.Length
	case BurstIO:
		t.IOTime += b.Length
	}
	return b
}

// Preempt charges elapsed CPU ticks against the front CPU burst.
// Only the unconsumed remainder stays on the thread.
func (t *Thread) Preempt(elapsed int64) {
	b := t.NextBurst(BurstCPU)
	if b == nil {
		panic(fmt.Sprintf("Preempt: thread %d of process %d has no CPU burst at the front", t.ID, t.ProcessID))
	}
	b.Consume(elapsed)
	t.ServiceTime += elapsed
}

func (t *Thread) transition(to ThreadState, now int64) {
	allowed := false
	for _, s := range legalTransitions[t.State] {
		if s == to {
			allowed = true
			break
		}
	}
	if !allowed {
		panic(fmt.Sprintf("thread %d of process %d: illegal transition %s -> %s at %d", t.ID, t.ProcessID, t.State, to, now))
	}
	t.PreviousState = t.State
	t.State = to
	t.StateChangeTime = now
}

// SetReady moves the thread to READY.
func (t *Thread) SetReady(now int64) {
	t.transition(StateReady, now)
}

// SetRunning moves the thread to RUNNING and records its first run.
func (t *Thread) SetRunning(now int64) {
	t.transition(StateRunning, now)
	if t.StartTime < 0 {
		t.StartTime = now
	}
}

// SetBlocked moves the thread to BLOCKED.
func (t *Thread) SetBlocked(now int64) {
	t.transition(StateBlocked, now)
}

// SetFinished moves the thread to FINISHED and records its completion.
func (t *Thread) SetFinished(now int64) {
	t.transition(StateFinished, now)
	t.EndTime = now
}

// ResponseTime is the delay between arrival and first run, -1 if never run.
func (t *Thread) ResponseTime() int64 {
	if t.StartTime < 0 {
		return -1
	}
	return t.StartTime - t.ArrivalTime
}

// TurnaroundTime is the delay between arrival and completion, -1 if unfinished.
func (t *Thread) TurnaroundTime() int64 {
	if t.EndTime < 0 {
		return -1
	}
	return t.EndTime - t.ArrivalTime
}

func (t Thread) String() string {
	return fmt.Sprintf("Thread: (ID: %d, Process: %d, Priority: %s, State: %s, Bursts: %v)", t.ID, t.ProcessID, t.Priority, t.State, t.Bursts)
}

// ThreadTable owns every thread of a run. Refs handed out by Add stay valid
// for the lifetime of the table.
type ThreadTable struct {
	threads []*Thread
}

// Add stores t and assigns its Ref.
func (tt *ThreadTable) Add(t *Thread) ThreadRef {
	t.Ref = ThreadRef(len(tt.threads))
	tt.threads = append(tt.threads, t)
	return t.Ref
}

// Get returns the thread for ref. Panics on an unknown ref.
func (tt *ThreadTable) Get(ref ThreadRef) *Thread {
	if ref < 0 || int(ref) >= len(tt.threads) {
		panic(fmt.Sprintf("ThreadTable.Get: unknown thread ref %d", ref))
	}
	return tt.threads[ref]
}

// Len returns the number of threads in the table.
func (tt *ThreadTable) Len() int {
	return len(tt.threads)
}

// All returns the threads in insertion order. Callers must not modify the slice.
func (tt *ThreadTable) All() []*Thread {
	return tt.threads
}
