package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inference-sim/cpusim/sim/trace"
)

// singleThreadWorkload returns a workload with one NORMAL process (id 0)
// holding one thread that arrives at tick 0.
func singleThreadWorkload(tso, pso int64, bursts ...int64) *Workload {
	return &Workload{
		ThreadSwitchOverhead:  tso,
		ProcessSwitchOverhead: pso,
		Processes: []ProcessSpec{{
			ID:       0,
			Priority: PriorityNormal,
			Threads:  []ThreadSpec{{ArrivalTime: 0, Bursts: bursts}},
		}},
	}
}

// mixedWorkload covers every priority class, I/O bursts, staggered
// arrivals and both kinds of dispatch overhead.
func mixedWorkload() *Workload {
	return &Workload{
		ThreadSwitchOverhead:  1,
		ProcessSwitchOverhead: 3,
		Processes: []ProcessSpec{
			{ID: 0, Priority: PrioritySystem, Threads: []ThreadSpec{
				{ArrivalTime: 0, Bursts: []int64{3, 2, 4}},
				{ArrivalTime: 5, Bursts: []int64{2}},
			}},
			{ID: 1, Priority: PriorityInteractive, Threads: []ThreadSpec{
				{ArrivalTime: 1, Bursts: []int64{6, 1, 2, 3, 1}},
			}},
			{ID: 2, Priority: PriorityNormal, Threads: []ThreadSpec{
				{ArrivalTime: 2, Bursts: []int64{10}},
				{ArrivalTime: 2, Bursts: []int64{1, 5, 1}},
			}},
			{ID: 3, Priority: PriorityBatch, Threads: []ThreadSpec{
				{ArrivalTime: 0, Bursts: []int64{7, 2, 7}},
			}},
		},
	}
}

// burstTotals sums the CPU and I/O demand of a workload.
func burstTotals(w *Workload) (cpu, io int64) {
	for _, p := range w.Processes {
		for _, t := range p.Threads {
			for i, l := range t.Bursts {
				if i%2 == 0 {
					cpu += l
				} else {
					io += l
				}
			}
		}
	}
	return cpu, io
}

// runWorkload builds and runs a simulator, failing the test on setup errors.
func runWorkload(t *testing.T, scheduler string, slice int64, level trace.TraceLevel, w *Workload) *Simulator {
	t.Helper()
	s, err := NewSimulator(SimConfig{Scheduler: scheduler, TimeSlice: slice, Trace: trace.TraceConfig{Level: level}}, w)
	require.NoError(t, err)
	s.Run()
	return s
}

// threadOf returns the thread with the given process and thread id.
func threadOf(t *testing.T, s *Simulator, processID, threadID int) *Thread {
	t.Helper()
	for _, th := range s.Threads.All() {
		if th.ProcessID == processID && th.ID == threadID {
			return th
		}
	}
	t.Fatalf("no thread %d in process %d", threadID, processID)
	return nil
}

// newTableThread adds a fresh READY thread to tt, as the simulator would
// before handing it to a scheduler.
func newTableThread(tt *ThreadTable, id, processID int, priority PriorityClass, bursts ...int64) *Thread {
	th := NewThread(id, processID, priority, 0, bursts)
	tt.Add(th)
	th.SetReady(0)
	return th
}
