package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// RunConfig is the optional YAML file accepted by `run --config`.
// Nil pointer fields and empty strings mean "not set in YAML".
type RunConfig struct {
	Scheduler  string `yaml:"scheduler"`
	TimeSlice  *int64 `yaml:"time_slice"`
	Verbose    *bool  `yaml:"verbose"`
	PerThread  *bool  `yaml:"per_thread"`
	Metrics    *bool  `yaml:"metrics"`
	Format     string `yaml:"format"`
	TraceLevel string `yaml:"trace_level"`
	Log        string `yaml:"log"`
}

// LoadRunConfig parses a run config with strict field checking, so typos are errors.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var rc RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rc); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return &rc, nil
}

// Apply copies every value set in the config into the run flags, except
// for flags the user set explicitly on the command line.
func (rc *RunConfig) Apply(cmd *cobra.Command) {
	changed := func(name string) bool {
		return cmd.Flags().Changed(name)
	}
	if rc.Scheduler != "" && !changed("scheduler") {
		schedulerName = rc.Scheduler
	}
	if rc.TimeSlice != nil && !changed("time-slice") {
		timeSlice = *rc.TimeSlice
	}
	if rc.Verbose != nil && !changed("verbose") {
		verbose = *rc.Verbose
	}
	if rc.PerThread != nil && !changed("per-thread") {
		perThread = *rc.PerThread
	}
	if rc.Metrics != nil && !changed("metrics") {
		showMetrics = *rc.Metrics
	}
	if rc.Format != "" && !changed("format") {
		outputFormat = rc.Format
	}
	if rc.TraceLevel != "" && !changed("trace-level") {
		traceLevel = rc.TraceLevel
	}
	if rc.Log != "" && !changed("log") {
		logLevel = rc.Log
	}
}
