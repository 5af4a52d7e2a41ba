// Package report renders the results of a simulation run: the verbose
// timeline, per-thread metrics and the system-wide summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/inference-sim/cpusim/sim"
	"github.com/inference-sim/cpusim/sim/trace"
)

// Format selects the output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// IsValidFormat returns true if name is a recognized output format.
func IsValidFormat(name string) bool {
	return name == "" || Format(name) == FormatTable || Format(name) == FormatJSON
}

// Options selects the report sections. With no section selected, the system
// metrics are shown.
type Options struct {
	Verbose   bool
	PerThread bool
	Metrics   bool
	Format    Format
}

// Report is everything a run produced for the reader.
type Report struct {
	RunID     string              `json:"run_id"`
	Scheduler string              `json:"scheduler"`
	Timeline  []string            `json:"timeline,omitempty"`
	Threads   []sim.ThreadMetrics `json:"threads,omitempty"`
	Stats     *sim.SystemStats    `json:"stats,omitempty"`
	Summary   *trace.TraceSummary `json:"trace_summary,omitempty"`
}

// Build collects the selected sections from a finished simulator.
func Build(s *sim.Simulator, scheduler string, opts Options) *Report {
	r := &Report{RunID: s.RunID, Scheduler: strings.ToUpper(scheduler)}
	if opts.Verbose {
		for _, e := range s.Trace.Timeline() {
			r.Timeline = append(r.Timeline, FormatTimelineEntry(e))
		}
		r.Summary = trace.Summarize(s.Trace)
	}
	if opts.PerThread {
		r.Threads = s.ThreadMetrics()
	}
	if opts.Metrics || (!opts.Verbose && !opts.PerThread) {
		stats := s.CalculateStatistics()
		r.Stats = &stats
	}
	return r
}

// Write renders the report in the requested format.
func Write(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatTable, "":
		return WriteText(w, r)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteJSON emits the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// WriteText emits the timeline, the completion banner, per-thread tables and
// the system summary.
func WriteText(w io.Writer, r *Report) error {
	for _, line := range r.Timeline {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(w, "SIMULATION COMPLETED!\n\n"); err != nil {
		return err
	}
	if len(r.Threads) > 0 {
		if err := writeThreadTables(w, r.Threads); err != nil {
			return err
		}
	}
	if r.Stats != nil {
		if err := writeSystemStats(w, r.Scheduler, r.Stats); err != nil {
			return err
		}
	}
	return nil
}

// FormatTimelineEntry renders a transition or decision as a verbose block.
func FormatTimelineEntry(e trace.TimelineEntry) string {
	if tr := e.Transition; tr != nil {
		return fmt.Sprintf("At time %d:\n    %s\n    Thread %d in process %d [%s]\n    Transitioned from %s to %s\n",
			tr.Clock, tr.EventType, tr.ThreadID, tr.ProcessID, tr.Priority, tr.From, tr.To)
	}
	d := e.Decision
	return fmt.Sprintf("At time %d:\n    %s\n    Thread %d in process %d [%s]\n    %s\n",
		d.Clock, d.EventType, d.ThreadID, d.ProcessID, d.Priority, d.Explanation)
}

func writeThreadTables(w io.Writer, threads []sim.ThreadMetrics) error {
	start := 0
	for start < len(threads) {
		end := start
		for end < len(threads) && threads[end].ProcessID == threads[start].ProcessID {
			end++
		}
		if _, err := fmt.Fprintf(w, "Process %d [%s]:\n", threads[start].ProcessID, threads[start].Priority); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Thread", "Arrival", "CPU", "I/O", "TRT", "Response", "End"})
		table.SetAlignment(tablewriter.ALIGN_RIGHT)
		for _, t := range threads[start:end] {
			table.Append([]string{
				fmt.Sprint(t.ThreadID),
				fmt.Sprint(t.ArrivalTime),
				fmt.Sprint(t.ServiceTime),
				fmt.Sprint(t.IOTime),
				formatOptional(t.TurnaroundTime),
				formatOptional(t.ResponseTime),
				formatOptional(t.EndTime),
			})
		}
		table.Render()
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		start = end
	}
	return nil
}

func writeSystemStats(w io.Writer, scheduler string, s *sim.SystemStats) error {
	if _, err := fmt.Fprintf(w, "=== Simulation Metrics (%s) ===\n", scheduler); err != nil {
		return err
	}

	classes := tablewriter.NewWriter(w)
	classes.SetHeader([]string{"Priority", "Threads", "Avg Turnaround", "Avg Response"})
	classes.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, c := range s.Classes {
		turnaround, response := "-", "-"
		if c.HasAverages() {
			turnaround = fmt.Sprintf("%.2f", c.AvgTurnaroundTime)
			response = fmt.Sprintf("%.2f", c.AvgResponseTime)
		}
		classes.Append([]string{c.Name, fmt.Sprint(c.ThreadCount), turnaround, response})
	}
	classes.Render()

	totals := tablewriter.NewWriter(w)
	totals.SetHeader([]string{"Metric", "Value"})
	totals.SetAlignment(tablewriter.ALIGN_RIGHT)
	totals.AppendBulk([][]string{
		{"Total elapsed time", fmt.Sprint(s.TotalTime)},
		{"Total service time", fmt.Sprint(s.ServiceTime)},
		{"Total I/O time", fmt.Sprint(s.IOTime)},
		{"Total dispatch time", fmt.Sprint(s.DispatchTime)},
		{"Total idle time", fmt.Sprint(s.TotalIdleTime)},
		{"CPU utilization", fmt.Sprintf("%.2f%%", s.CPUUtilization)},
		{"CPU efficiency", fmt.Sprintf("%.2f%%", s.CPUEfficiency)},
	})
	totals.Render()
	return nil
}

func formatOptional(v int64) string {
	if v < 0 {
		return "-"
	}
	return fmt.Sprint(v)
}
