package workload

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/cpusim/sim"
)

// WorkloadSpec is the YAML form of a simulation workload.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Version               string        `yaml:"version,omitempty"`
	ThreadSwitchOverhead  int64         `yaml:"thread_switch_overhead"`
	ProcessSwitchOverhead int64         `yaml:"process_switch_overhead"`
	Processes             []ProcessSpec `yaml:"processes"`
}

// ProcessSpec defines one process and its threads.
type ProcessSpec struct {
	ID       int          `yaml:"id"`
	Priority string       `yaml:"priority"` // SYSTEM, INTERACTIVE, NORMAL or BATCH (case-insensitive)
	Threads  []ThreadSpec `yaml:"threads"`
}

// ThreadSpec defines one thread: arrival tick and alternating CPU/IO burst
// lengths, starting and ending with a CPU burst.
type ThreadSpec struct {
	ArrivalTime int64   `yaml:"arrival_time"`
	Bursts      []int64 `yaml:"bursts"`
}

// LoadWorkloadSpec reads a YAML workload file with strict field checking.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	return ParseWorkloadSpec(data)
}

// ParseWorkloadSpec decodes YAML workload bytes. Unknown fields are errors.
func ParseWorkloadSpec(data []byte) (*WorkloadSpec, error) {
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	return &spec, nil
}

// ToWorkload converts the spec into a validated sim.Workload.
func (s *WorkloadSpec) ToWorkload() (*sim.Workload, error) {
	w := &sim.Workload{
		ThreadSwitchOverhead:  s.ThreadSwitchOverhead,
		ProcessSwitchOverhead: s.ProcessSwitchOverhead,
		Processes:             make([]sim.ProcessSpec, 0, len(s.Processes)),
	}
	for _, p := range s.Processes {
		class, err := sim.ParsePriorityClass(p.Priority)
		if err != nil {
			return nil, fmt.Errorf("process %d: %w", p.ID, err)
		}
		ps := sim.ProcessSpec{ID: p.ID, Priority: class, Threads: make([]sim.ThreadSpec, 0, len(p.Threads))}
		for _, t := range p.Threads {
			ps.Threads = append(ps.Threads, sim.ThreadSpec{
				ArrivalTime: t.ArrivalTime,
				Bursts:      append([]int64(nil), t.Bursts...),
			})
		}
		w.Processes = append(w.Processes, ps)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// FromWorkload builds the YAML form of a workload.
func FromWorkload(w *sim.Workload) *WorkloadSpec {
	s := &WorkloadSpec{
		Version:               "1",
		ThreadSwitchOverhead:  w.ThreadSwitchOverhead,
		ProcessSwitchOverhead: w.ProcessSwitchOverhead,
		Processes:             make([]ProcessSpec, 0, len(w.Processes)),
	}
	for _, p := range w.Processes {
		ps := ProcessSpec{ID: p.ID, Priority: p.Priority.String(), Threads: make([]ThreadSpec, 0, len(p.Threads))}
		for _, t := range p.Threads {
			ps.Threads = append(ps.Threads, ThreadSpec{
				ArrivalTime: t.ArrivalTime,
				Bursts:      append([]int64(nil), t.Bursts...),
			})
		}
		s.Processes = append(s.Processes, ps)
	}
	return s
}

// Encode renders the spec as YAML with two-space indentation.
func (s *WorkloadSpec) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding workload spec: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding workload spec: %w", err)
	}
	return buf.Bytes(), nil
}
