package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/cpusim/sim"
	"github.com/inference-sim/cpusim/sim/report"
	"github.com/inference-sim/cpusim/sim/trace"
	"github.com/inference-sim/cpusim/sim/workload"
)

var (
	// CLI flags for the run command
	schedulerName string // Scheduling algorithm
	timeSlice     int64  // Round robin quantum, -1 for the algorithm default
	logLevel      string // Log verbosity level
	verbose       bool   // Print every transition and decision
	perThread     bool   // Print per-thread metrics
	showMetrics   bool   // Print system metrics
	outputFormat  string // table or json
	traceLevel    string // none, decisions, events
	runConfigPath string // Optional YAML run config
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cpusim",
	Short: "Discrete-event simulator for CPU scheduling policies",
}

// runOptions is the resolved configuration of one run.
type runOptions struct {
	WorkloadPath string
	Scheduler    string
	TimeSlice    int64
	Trace        trace.TraceLevel
	Report       report.Options
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run <workload-file>",
	Short: "Replay a workload through a scheduling algorithm",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if runConfigPath != "" {
			rc, err := LoadRunConfig(runConfigPath)
			if err != nil {
				logrus.Fatalf("Failed to load run config: %v", err)
			}
			rc.Apply(cmd)
		}

		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		opts := runOptions{
			WorkloadPath: args[0],
			Scheduler:    schedulerName,
			TimeSlice:    timeSlice,
			Trace:        trace.TraceLevel(traceLevel),
			Report: report.Options{
				Verbose:   verbose,
				PerThread: perThread,
				Metrics:   showMetrics,
				Format:    report.Format(outputFormat),
			},
		}

		startTime := time.Now()
		if err := runSimulation(os.Stdout, opts); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// runSimulation loads the workload, runs it and writes the report to out.
func runSimulation(out io.Writer, opts runOptions) error {
	if !sim.IsValidScheduler(opts.Scheduler) {
		return fmt.Errorf("%w %q (valid: %s)", sim.ErrUnknownAlgorithm, opts.Scheduler, strings.Join(sim.ValidSchedulerNames(), ", "))
	}
	if !report.IsValidFormat(string(opts.Report.Format)) {
		return fmt.Errorf("unknown output format %q (valid: table, json)", opts.Report.Format)
	}

	w, err := workload.Load(opts.WorkloadPath)
	if err != nil {
		return err
	}

	cfg := sim.SimConfig{
		Scheduler: opts.Scheduler,
		TimeSlice: opts.TimeSlice,
		Trace:     trace.TraceConfig{Level: opts.Trace},
	}
	// The verbose timeline is built from the trace.
	if opts.Report.Verbose && (cfg.Trace.Level == "" || cfg.Trace.Level == trace.TraceLevelNone) {
		cfg.Trace.Level = trace.TraceLevelDecisions
	}

	logrus.Infof("Starting simulation: scheduler=%s, timeSlice=%d, processes=%d, threads=%d",
		strings.ToUpper(opts.Scheduler), opts.TimeSlice, len(w.Processes), w.NumThreads())

	s, err := sim.NewSimulator(cfg, w)
	if err != nil {
		return err
	}
	s.Run()

	return report.Write(out, report.Build(s, opts.Scheduler, opts.Report), opts.Report.Format)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVarP(&schedulerName, "scheduler", "s", sim.SchedulerFCFS, "Scheduling algorithm (FCFS, RR, SPN, PRIORITY, MLFQ)")
	runCmd.Flags().Int64VarP(&timeSlice, "time-slice", "q", sim.RunToCompletion, "Round robin quantum in ticks (-1 for the algorithm default)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every state transition and scheduling decision")
	runCmd.Flags().BoolVarP(&perThread, "per-thread", "t", false, "Print per-thread metrics")
	runCmd.Flags().BoolVarP(&showMetrics, "metrics", "m", false, "Print system metrics (default when no other output is selected)")
	runCmd.Flags().StringVar(&outputFormat, "format", string(report.FormatTable), "Output format (table, json)")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelDecisions), "Trace level (none, decisions, events)")
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "YAML run config; explicitly set flags take precedence")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(convertCmd)
}
