// Computes per-thread and system-wide performance metrics from a finished run.

package sim

// ClassStats aggregates the threads of one priority class.
type ClassStats struct {
	Priority          PriorityClass `json:"-"`
	Name              string        `json:"priority"`
	ThreadCount       int           `json:"thread_count"`
	FinishedCount     int           `json:"finished_count"`
	AvgTurnaroundTime float64       `json:"avg_turnaround_time"` // 0 when FinishedCount is 0
	AvgResponseTime   float64       `json:"avg_response_time"`   // 0 when FinishedCount is 0
}

// HasAverages reports whether the class had any finished thread to average over.
func (c ClassStats) HasAverages() bool {
	return c.FinishedCount > 0
}

// SystemStats is the system-wide summary of a run.
type SystemStats struct {
	TotalTime      int64                          `json:"total_time"`
	ServiceTime    int64                          `json:"service_time"`
	IOTime         int64                          `json:"io_time"`
	DispatchTime   int64                          `json:"dispatch_time"`
	TotalIdleTime  int64                          `json:"total_idle_time"`
	CPUUtilization float64                        `json:"cpu_utilization"` // percent
	CPUEfficiency  float64                        `json:"cpu_efficiency"`  // percent
	Classes        [NumPriorityClasses]ClassStats `json:"classes"`
}

// ThreadMetrics is the final record of one thread.
type ThreadMetrics struct {
	ProcessID      int    `json:"process_id"`
	ThreadID       int    `json:"thread_id"`
	Priority       string `json:"priority"`
	ArrivalTime    int64  `json:"arrival_time"`
	ServiceTime    int64  `json:"service_time"`
	IOTime         int64  `json:"io_time"`
	StartTime      int64  `json:"start_time"`
	EndTime        int64  `json:"end_time"`
	ResponseTime   int64  `json:"response_time"`   // -1 if never run
	TurnaroundTime int64  `json:"turnaround_time"` // -1 if unfinished
}

// CalculateStatistics derives SystemStats from the current thread state and
// run totals. It does not modify the simulator, so repeated calls on the same
// finished run return identical results.
func (sim *Simulator) CalculateStatistics() SystemStats {
	stats := SystemStats{
		TotalTime:    sim.TotalTime,
		DispatchTime: sim.DispatchTime,
	}

	var turnaroundSum, responseSum [NumPriorityClasses]int64
	for _, p := range sim.Processes {
		for _, ref := range p.Threads {
			t := sim.Threads.Get(ref)
			c := &stats.Classes[t.Priority]
			c.ThreadCount++
			stats.ServiceTime += t.ServiceTime
			stats.IOTime += t.IOTime
			if t.State != StateFinished {
				continue
			}
			c.FinishedCount++
			turnaroundSum[t.Priority] += t.TurnaroundTime()
			responseSum[t.Priority] += t.ResponseTime()
		}
	}

	for i := range stats.Classes {
		c := &stats.Classes[i]
		c.Priority = PriorityClass(i)
		c.Name = c.Priority.String()
		if c.FinishedCount > 0 {
			c.AvgTurnaroundTime = float64(turnaroundSum[i]) / float64(c.FinishedCount)
			c.AvgResponseTime = float64(responseSum[i]) / float64(c.FinishedCount)
		}
	}

	stats.TotalIdleTime = stats.TotalTime - stats.ServiceTime - stats.DispatchTime
	if stats.TotalTime > 0 {
		stats.CPUUtilization = 100.0 * float64(stats.TotalTime-stats.TotalIdleTime) / float64(stats.TotalTime)
		stats.CPUEfficiency = 100.0 * float64(stats.ServiceTime) / float64(stats.TotalTime)
	}
	return stats
}

// ThreadMetrics returns one record per thread, ordered by process ID and then
// thread ID.
func (sim *Simulator) ThreadMetrics() []ThreadMetrics {
	out := make([]ThreadMetrics, 0, sim.Threads.Len())
	for _, p := range sim.Processes {
		for _, ref := range p.Threads {
			t := sim.Threads.Get(ref)
			out = append(out, ThreadMetrics{
				ProcessID:      t.ProcessID,
				ThreadID:       t.ID,
				Priority:       t.Priority.String(),
				ArrivalTime:    t.ArrivalTime,
				ServiceTime:    t.ServiceTime,
				IOTime:         t.IOTime,
				StartTime:      t.StartTime,
				EndTime:        t.EndTime,
				ResponseTime:   t.ResponseTime(),
				TurnaroundTime: t.TurnaroundTime(),
			})
		}
	}
	return out
}

// FinishedThreads returns the number of threads that reached FINISHED.
func (sim *Simulator) FinishedThreads() int {
	n := 0
	for _, t := range sim.Threads.All() {
		if t.State == StateFinished {
			n++
		}
	}
	return n
}
