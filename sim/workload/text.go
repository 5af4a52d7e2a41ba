package workload

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusim/sim"
)

// maxCPUBursts bounds the per-thread CPU burst count read from text input.
const maxCPUBursts = 1 << 20

// tokenReader yields whitespace-separated integers from a workload file.
type tokenReader struct {
	scanner *bufio.Scanner
	count   int
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokenReader{scanner: sc}
}

func (tr *tokenReader) next(what string) (int64, error) {
	if !tr.scanner.Scan() {
		if err := tr.scanner.Err(); err != nil {
			return 0, fmt.Errorf("reading %s: %w", what, err)
		}
		return 0, fmt.Errorf("unexpected end of input reading %s (after %d values)", what, tr.count)
	}
	tr.count++
	v, err := strconv.ParseInt(tr.scanner.Text(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("value %d (%s): %w", tr.count, what, err)
	}
	return v, nil
}

// ParseText reads the plain-text workload format:
//
//	num_processes thread_switch_overhead process_switch_overhead
//	process_id priority_class num_threads          (per process)
//	arrival_time num_cpu_bursts                    (per thread)
//	cpu io cpu ... cpu                             (2*num_cpu_bursts-1 lengths)
//
// Priority classes are 0 SYSTEM, 1 INTERACTIVE, 2 NORMAL, 3 BATCH.
func ParseText(r io.Reader) (*sim.Workload, error) {
	tr := newTokenReader(r)

	numProcesses, err := tr.next("process count")
	if err != nil {
		return nil, err
	}
	if numProcesses < 0 {
		return nil, fmt.Errorf("process count must be non-negative, got %d", numProcesses)
	}
	w := &sim.Workload{}
	if w.ThreadSwitchOverhead, err = tr.next("thread switch overhead"); err != nil {
		return nil, err
	}
	if w.ProcessSwitchOverhead, err = tr.next("process switch overhead"); err != nil {
		return nil, err
	}

	for i := int64(0); i < numProcesses; i++ {
		p, err := parseProcess(tr)
		if err != nil {
			return nil, fmt.Errorf("process %d: %w", i, err)
		}
		w.Processes = append(w.Processes, p)
	}
	if tr.scanner.Scan() {
		logrus.Warnf("ignoring trailing workload input starting at %q", tr.scanner.Text())
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func parseProcess(tr *tokenReader) (sim.ProcessSpec, error) {
	id, err := tr.next("process id")
	if err != nil {
		return sim.ProcessSpec{}, err
	}
	class, err := tr.next("priority class")
	if err != nil {
		return sim.ProcessSpec{}, err
	}
	if !sim.PriorityClass(class).Valid() {
		return sim.ProcessSpec{}, fmt.Errorf("unknown priority class %d", class)
	}
	numThreads, err := tr.next("thread count")
	if err != nil {
		return sim.ProcessSpec{}, err
	}
	if numThreads < 0 {
		return sim.ProcessSpec{}, fmt.Errorf("thread count must be non-negative, got %d", numThreads)
	}

	p := sim.ProcessSpec{ID: int(id), Priority: sim.PriorityClass(class)}
	for i := int64(0); i < numThreads; i++ {
		t, err := parseThread(tr)
		if err != nil {
			return sim.ProcessSpec{}, fmt.Errorf("thread %d: %w", i, err)
		}
		p.Threads = append(p.Threads, t)
	}
	return p, nil
}

func parseThread(tr *tokenReader) (sim.ThreadSpec, error) {
	arrival, err := tr.next("arrival time")
	if err != nil {
		return sim.ThreadSpec{}, err
	}
	numCPU, err := tr.next("CPU burst count")
	if err != nil {
		return sim.ThreadSpec{}, err
	}
	if numCPU < 1 {
		return sim.ThreadSpec{}, fmt.Errorf("need at least one CPU burst, got %d", numCPU)
	}
	if numCPU > maxCPUBursts {
		return sim.ThreadSpec{}, fmt.Errorf("CPU burst count %d exceeds limit of %d", numCPU, maxCPUBursts)
	}

	numBursts := 2*numCPU - 1
	t := sim.ThreadSpec{ArrivalTime: arrival, Bursts: make([]int64, 0, min(numBursts, 64))}
	for n := int64(0); n < numBursts; n++ {
		kind := "CPU burst"
		if n%2 == 1 {
			kind = "IO burst"
		}
		length, err := tr.next(kind)
		if err != nil {
			return sim.ThreadSpec{}, err
		}
		t.Bursts = append(t.Bursts, length)
	}
	return t, nil
}

// Load reads a workload file, choosing the YAML loader for .yaml/.yml and the
// plain-text format otherwise.
func Load(path string) (*sim.Workload, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		spec, err := LoadWorkloadSpec(path)
		if err != nil {
			return nil, err
		}
		return spec.ToWorkload()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workload file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logrus.Warnf("closing workload file %s: %v", path, closeErr)
		}
	}()
	w, err := ParseText(f)
	if err != nil {
		return nil, fmt.Errorf("parsing workload file %s: %w", path, err)
	}
	return w, nil
}
