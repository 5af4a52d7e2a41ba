// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusim/sim/trace"
)

// Simulator is the core object that holds simulation time, system state, and the event loop.
type Simulator struct {
	RunID string
	Clock int64
	// EventQueue has all pending events; it is the only clock of the run.
	EventQueue *EventQueue
	Scheduler  Scheduler
	// Threads owns every thread; processes, events and ready queues hold refs.
	Threads   *ThreadTable
	Processes []*Process // ordered by process ID

	ThreadSwitchOverhead  int64
	ProcessSwitchOverhead int64

	// TotalTime is the timestamp of the last processed event.
	TotalTime int64
	// DispatchTime accumulates the overhead charged on every dispatch.
	DispatchTime int64

	Trace *trace.SimulationTrace // nil when tracing is disabled

	activeThread      ThreadRef // thread holding (or being dispatched to) the CPU
	prevThread        ThreadRef // thread that held the CPU before activeThread
	dispatcherPending bool      // a DISPATCHER_INVOKED is queued but not yet executed
	nextEventSeq      uint64
}

// NewSimulator builds the thread arena and scheduler for a workload and
// queues a THREAD_ARRIVED event for every thread, in workload order.
func NewSimulator(cfg SimConfig, w *Workload) (*Simulator, error) {
	if w == nil {
		return nil, fmt.Errorf("workload must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload: %w", err)
	}

	threads := &ThreadTable{}
	scheduler, err := NewScheduler(cfg.Scheduler, cfg.TimeSlice, threads)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		RunID:                 uuid.NewString(),
		EventQueue:            NewEventQueue(),
		Scheduler:             scheduler,
		Threads:               threads,
		ThreadSwitchOverhead:  w.ThreadSwitchOverhead,
		ProcessSwitchOverhead: w.ProcessSwitchOverhead,
		activeThread:          NoThread,
		prevThread:            NoThread,
	}
	if cfg.Trace.Level != "" && cfg.Trace.Level != trace.TraceLevelNone {
		s.Trace = trace.NewSimulationTrace(s.RunID, cfg.Trace)
	}

	procs := make([]*Process, 0, len(w.Processes))
	for _, ps := range w.Processes {
		p := &Process{ID: ps.ID, Priority: ps.Priority}
		for i, ts := range ps.Threads {
			t := NewThread(i, ps.ID, ps.Priority, ts.ArrivalTime, ts.Bursts)
			ref := threads.Add(t)
			p.Threads = append(p.Threads, ref)
			s.schedule(EventThreadArrived, t.ArrivalTime, ref, nil)
		}
		procs = append(procs, p)
	}
	s.Processes = sortedProcesses(procs)

	return s, nil
}

// schedule creates an event with the next sequence number and queues it.
func (sim *Simulator) schedule(typ EventType, at int64, ref ThreadRef, decision *SchedulingDecision) {
	ev := &Event{
		Type:     typ,
		Time:     at,
		Seq:      sim.nextEventSeq,
		Thread:   ref,
		Decision: decision,
	}
	sim.nextEventSeq++
	if typ == EventDispatcherInvoked {
		sim.dispatcherPending = true
	}
	sim.EventQueue.Schedule(ev)
}

// Run processes events until the queue is empty.
func (sim *Simulator) Run() {
	logrus.WithField("run", sim.RunID).Infof("Starting simulation: %d threads in %d processes", sim.Threads.Len(), len(sim.Processes))
	for sim.EventQueue.Len() > 0 {
		ev, err := sim.EventQueue.PopNext()
		if err != nil {
			panic(fmt.Sprintf("Run: %v", err))
		}
		if ev.Time < sim.Clock {
			panic(fmt.Sprintf("Run: event %v is earlier than clock %d", ev, sim.Clock))
		}
		sim.Clock = ev.Time
		logrus.Debugf("[tick %07d] Executing %s", sim.Clock, ev.Type)

		decision := sim.processEvent(ev)
		sim.record(ev, decision)

		sim.TotalTime = ev.Time
	}
	logrus.WithField("run", sim.RunID).Infof("[tick %07d] Simulation ended", sim.Clock)
}

// processEvent dispatches ev to its handler. It returns the scheduling
// decision made while handling the event, if any.
func (sim *Simulator) processEvent(ev *Event) *SchedulingDecision {
	switch ev.Type {
	case EventThreadArrived:
		sim.handleThreadArrived(ev)
	case EventThreadDispatchCompleted, EventProcessDispatchCompleted:
		sim.handleDispatchCompleted(ev)
	case EventCPUBurstCompleted:
		sim.handleCPUBurstCompleted(ev)
	case EventIOBurstCompleted:
		sim.handleIOBurstCompleted(ev)
	case EventThreadCompleted:
		sim.handleThreadCompleted(ev)
	case EventThreadPreempted:
		sim.handleThreadPreempted(ev)
	case EventDispatcherInvoked:
		return sim.handleDispatcherInvoked(ev)
	default:
		panic(fmt.Sprintf("processEvent: unhandled event type %q", ev.Type))
	}
	return ev.Decision
}

// cpuIdle reports whether nothing holds the CPU and no dispatch is on its way.
func (sim *Simulator) cpuIdle() bool {
	return sim.activeThread == NoThread && !sim.dispatcherPending
}

func (sim *Simulator) subject(ev *Event) *Thread {
	if ev.Thread == NoThread {
		panic(fmt.Sprintf("%s event at %d has no subject thread", ev.Type, ev.Time))
	}
	return sim.Threads.Get(ev.Thread)
}

func (sim *Simulator) handleThreadArrived(ev *Event) {
	t := sim.subject(ev)
	t.SetReady(ev.Time)
	sim.Scheduler.AddToReadyQueue(t)

	if sim.cpuIdle() {
		sim.schedule(EventDispatcherInvoked, ev.Time, NoThread, nil)
	}
}

func (sim *Simulator) handleDispatchCompleted(ev *Event) {
	t := sim.subject(ev)
	t.SetRunning(ev.Time)

	burst := t.NextBurst(BurstCPU)
	if burst == nil {
		panic(fmt.Sprintf("dispatched thread %d of process %d has no CPU burst", t.ID, t.ProcessID))
	}

	slice := sim.Scheduler.TimeSlice()
	if slice != RunToCompletion && burst.Length > slice {
		// The burst is shortened when the preemption fires.
		sim.schedule(EventThreadPreempted, ev.Time+slice, t.Ref, nil)
		return
	}

	service := burst.Length
	t.PopNextBurst(BurstCPU)
	if t.NextBurst(BurstIO) != nil {
		sim.schedule(EventCPUBurstCompleted, ev.Time+service, t.Ref, nil)
	} else {
		sim.schedule(EventThreadCompleted, ev.Time+service, t.Ref, nil)
	}
}

func (sim *Simulator) handleCPUBurstCompleted(ev *Event) {
	t := sim.subject(ev)
	t.SetBlocked(ev.Time)

	sim.schedule(EventDispatcherInvoked, ev.Time, NoThread, nil)

	io := t.NextBurst(BurstIO)
	if io == nil {
		panic(fmt.Sprintf("blocked thread %d of process %d has no I/O burst", t.ID, t.ProcessID))
	}
	sim.schedule(EventIOBurstCompleted, ev.Time+io.Length, t.Ref, nil)
}

func (sim *Simulator) handleIOBurstCompleted(ev *Event) {
	t := sim.subject(ev)
	t.SetReady(ev.Time)
	t.PopNextBurst(BurstIO)
	sim.Scheduler.AddToReadyQueue(t)

	if sim.cpuIdle() {
		sim.schedule(EventDispatcherInvoked, ev.Time, NoThread, nil)
	}
}

func (sim *Simulator) handleThreadCompleted(ev *Event) {
	t := sim.subject(ev)
	t.SetFinished(ev.Time)

	sim.schedule(EventDispatcherInvoked, ev.Time, NoThread, nil)
}

func (sim *Simulator) handleThreadPreempted(ev *Event) {
	t := sim.subject(ev)
	elapsed := ev.Time - t.StateChangeTime
	t.SetReady(ev.Time)
	t.Preempt(elapsed)
	sim.Scheduler.AddToReadyQueue(t)

	sim.schedule(EventDispatcherInvoked, ev.Time, NoThread, nil)
}

func (sim *Simulator) handleDispatcherInvoked(ev *Event) *SchedulingDecision {
	if sim.activeThread != NoThread {
		sim.prevThread = sim.activeThread
	}
	sim.dispatcherPending = false

	decision := sim.Scheduler.GetNextThread()
	if !decision.HasThread() {
		// Nothing is ready: the CPU goes idle.
		sim.activeThread = NoThread
		return &decision
	}

	sim.activeThread = decision.Thread
	next := sim.Threads.Get(decision.Thread)

	if sim.prevThread == NoThread || sim.Threads.Get(sim.prevThread).ProcessID != next.ProcessID {
		sim.DispatchTime += sim.ProcessSwitchOverhead
		sim.schedule(EventProcessDispatchCompleted, ev.Time+sim.ProcessSwitchOverhead, next.Ref, &decision)
	} else {
		sim.DispatchTime += sim.ThreadSwitchOverhead
		sim.schedule(EventThreadDispatchCompleted, ev.Time+sim.ThreadSwitchOverhead, next.Ref, &decision)
	}
	return &decision
}

// record reports a state transition of the event's thread, or otherwise the
// scheduling decision the event carried.
func (sim *Simulator) record(ev *Event, decision *SchedulingDecision) {
	if sim.Trace.RecordsEvents() {
		rec := trace.EventRecord{Clock: ev.Time, Seq: ev.Seq, EventType: string(ev.Type), ThreadID: -1, ProcessID: -1}
		if ev.Thread != NoThread {
			t := sim.Threads.Get(ev.Thread)
			rec.ThreadID, rec.ProcessID = t.ID, t.ProcessID
		}
		sim.Trace.RecordEvent(rec)
	}

	if ev.Thread != NoThread {
		t := sim.Threads.Get(ev.Thread)
		if t.State != t.PreviousState {
			logrus.Infof("At time %d: %s: thread %d in process %d [%s] transitioned from %s to %s",
				ev.Time, ev.Type, t.ID, t.ProcessID, t.Priority, t.PreviousState, t.State)
			if sim.Trace != nil {
				sim.Trace.RecordTransition(trace.TransitionRecord{
					Clock:     ev.Time,
					EventType: string(ev.Type),
					ThreadID:  t.ID,
					ProcessID: t.ProcessID,
					Priority:  t.Priority.String(),
					From:      string(t.PreviousState),
					To:        string(t.State),
				})
			}
			return
		}
	}

	if decision == nil {
		return
	}
	rec := trace.DecisionRecord{
		Clock:       ev.Time,
		EventType:   string(ev.Type),
		ThreadID:    -1,
		ProcessID:   -1,
		Explanation: decision.Explanation,
	}
	if decision.HasThread() {
		t := sim.Threads.Get(decision.Thread)
		rec.Selected = true
		rec.ThreadID, rec.ProcessID, rec.Priority = t.ID, t.ProcessID, t.Priority.String()
		logrus.Infof("At time %d: %s: thread %d in process %d [%s]: %s",
			ev.Time, ev.Type, t.ID, t.ProcessID, t.Priority, decision.Explanation)
	} else {
		logrus.Debugf("At time %d: %s: %s", ev.Time, ev.Type, decision.Explanation)
	}
	if sim.Trace != nil {
		sim.Trace.RecordDecision(rec)
	}
}

// ActiveThread returns the thread holding the CPU, NoThread when idle.
func (sim *Simulator) ActiveThread() ThreadRef {
	return sim.activeThread
}
