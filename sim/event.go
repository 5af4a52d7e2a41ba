package sim

import "fmt"

// EventType names the kind of state change an event drives.
type EventType string

const (
	EventThreadArrived            EventType = "THREAD_ARRIVED"
	EventThreadDispatchCompleted  EventType = "THREAD_DISPATCH_COMPLETED"
	EventProcessDispatchCompleted EventType = "PROCESS_DISPATCH_COMPLETED"
	EventCPUBurstCompleted        EventType = "CPU_BURST_COMPLETED"
	EventIOBurstCompleted         EventType = "IO_BURST_COMPLETED"
	EventThreadCompleted          EventType = "THREAD_COMPLETED"
	EventThreadPreempted          EventType = "THREAD_PREEMPTED"
	EventDispatcherInvoked        EventType = "DISPATCHER_INVOKED"
)

// Event is a timestamped unit of work. Events are ordered by Time, then by
// Seq, which the simulator assigns in creation order. An event is never
// modified after it is scheduled.
type Event struct {
	Type     EventType
	Time     int64               // Simulation time (in ticks)
	Seq      uint64              // Creation order, tie-breaker for equal Time
	Thread   ThreadRef           // Subject thread, NoThread for DISPATCHER_INVOKED
	Decision *SchedulingDecision // Decision that led to a dispatch, nil otherwise
}

// Timestamp returns the scheduled time of the event.
func (e *Event) Timestamp() int64 {
	return e.Time
}

func (e Event) String() string {
	return fmt.Sprintf("Event: (Type: %s, Time: %d, Seq: %d, Thread: %d)", e.Type, e.Time, e.Seq, e.Thread)
}
