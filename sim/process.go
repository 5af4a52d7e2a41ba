package sim

import (
	"fmt"
	"sort"
)

// Process groups a fixed set of threads under one priority class.
// Threads are owned by the simulator's ThreadTable; the process keeps refs.
type Process struct {
	ID       int
	Priority PriorityClass
	Threads  []ThreadRef
}

// Workload is a fully parsed simulation input: processes with their threads
// and bursts, plus the dispatcher overheads.
type Workload struct {
	ThreadSwitchOverhead  int64
	ProcessSwitchOverhead int64
	Processes             []ProcessSpec
}

// ProcessSpec describes one process of a workload.
type ProcessSpec struct {
	ID       int
	Priority PriorityClass
	Threads  []ThreadSpec
}

// ThreadSpec describes one thread: its arrival tick and alternating
// CPU, IO, CPU, ... burst lengths, starting and ending with CPU.
type ThreadSpec struct {
	ArrivalTime int64
	Bursts      []int64
}

// Validate checks overheads, ids, classes and burst shapes.
func (w *Workload) Validate() error {
	if w.ThreadSwitchOverhead < 0 {
		return fmt.Errorf("thread switch overhead must be non-negative, got %d", w.ThreadSwitchOverhead)
	}
	if w.ProcessSwitchOverhead < 0 {
		return fmt.Errorf("process switch overhead must be non-negative, got %d", w.ProcessSwitchOverhead)
	}
	seen := make(map[int]bool, len(w.Processes))
	for _, p := range w.Processes {
		if seen[p.ID] {
			return fmt.Errorf("duplicate process id %d", p.ID)
		}
		seen[p.ID] = true
		if !p.Priority.Valid() {
			return fmt.Errorf("process %d: invalid priority class %d", p.ID, int(p.Priority))
		}
		for i, t := range p.Threads {
			if t.ArrivalTime < 0 {
				return fmt.Errorf("process %d thread %d: arrival time must be non-negative, got %d", p.ID, i, t.ArrivalTime)
			}
			if len(t.Bursts)%2 == 0 {
				return fmt.Errorf("process %d thread %d: need an odd number of bursts (CPU, IO, ..., CPU), got %d", p.ID, i, len(t.Bursts))
			}
			for j, l := range t.Bursts {
				if l < 0 {
					return fmt.Errorf("process %d thread %d: burst %d has negative length %d", p.ID, i, j, l)
				}
			}
		}
	}
	return nil
}

// NumThreads returns the total number of threads across all processes.
func (w *Workload) NumThreads() int {
	n := 0
	for _, p := range w.Processes {
		n += len(p.Threads)
	}
	return n
}

// sortedProcesses returns processes ordered by id.
func sortedProcesses(procs []*Process) []*Process {
	out := append([]*Process(nil), procs...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
