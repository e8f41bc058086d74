package cmd

import (
	"context"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/mfglog/mfglog/sim"
)

var (
	// CLI flags for the generation run
	seed       int64  // Seed for the deterministic random streams
	cases      int    // Number of production batches to simulate
	logLevel   string // Log verbosity level
	flowPath   string // YAML flow definition (empty = built-in battery flow)
	outputPath string // CSV output path (empty = stdout)
	showBar    bool   // Render a progress bar during generation

	// CLI flags overriding flow-spec run parameters
	reworkProb float64  // Rework probability at reworkable stages
	batchMin   int      // Minimum batch size per case
	batchMax   int      // Maximum batch size per case
	resources  []string // Resource pool drawn per event
	maxDetours int      // Per-case rework detour budget
	workers    int      // Concurrent case walkers
	startStr   string   // Nominal run start (RFC3339)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "mfglog",
	Short: "Synthetic manufacturing event-log generator for process mining",
}

// generateCmd runs the generator using parameters from CLI flags
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic production event log",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		flow, opts := buildRun(cmd)

		var bar *progressbar.ProgressBar
		if showBar {
			bar = newProgressBar(opts.Cases)
			opts.Progress = func(done, total int) {
				_ = bar.Set(done)
			}
		}

		startTime := time.Now()
		events, report, err := sim.Generate(context.Background(), flow, opts)
		if err != nil {
			logrus.Fatalf("generation failed: %v", err)
		}
		if bar != nil {
			_ = bar.Finish()
		}

		// The documented collaborator contract: sort before analysis/export.
		sim.SortEvents(events)

		if outputPath != "" {
			if err := sim.WriteCSVFile(outputPath, events); err != nil {
				logrus.Fatalf("writing event log: %v", err)
			}
			report.Print()
			logrus.Infof("wrote %d events to %s in %s", len(events), outputPath, time.Since(startTime))
		} else {
			if err := sim.WriteCSV(os.Stdout, events); err != nil {
				logrus.Fatalf("writing event log: %v", err)
			}
			// CSV owns stdout; keep the summary on the log stream.
			logrus.Infof("run %s: %d events, %d rework, %d truncated, %d missing pivot",
				report.RunID, report.Events, report.ReworkEvents, report.TruncatedCases, report.MissingPivotCases)
		}
	},
}

// buildRun resolves the flow definition and generation options from the flow
// spec file (when given) and the CLI flags. Explicitly-set flags win over
// spec file values.
func buildRun(cmd *cobra.Command) (*sim.Flow, sim.Options) {
	opts := sim.Options{
		Cases:             cases,
		Seed:              seed,
		BatchSizeMin:      batchMin,
		BatchSizeMax:      batchMax,
		Resources:         resources,
		ReworkProbability: reworkProb,
		MaxDetours:        maxDetours,
		Workers:           workers,
	}

	flow := sim.DefaultBatteryFlow()
	if flowPath != "" {
		spec, err := LoadFlowSpec(flowPath)
		if err != nil {
			logrus.Fatalf("loading flow spec: %v", err)
		}
		flow, err = spec.ToFlow()
		if err != nil {
			logrus.Fatalf("invalid flow spec %s: %v", flowPath, err)
		}
		spec.applyRunDefaults(cmd, &opts)
	}

	if startStr != "" {
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			logrus.Fatalf("invalid --start %q: %v", startStr, err)
		}
		opts.Start = start
	}
	return flow, opts
}

// newProgressBar builds the case-count progress bar for interactive runs.
func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("generating cases"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	generateCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for deterministic generation")
	generateCmd.Flags().IntVar(&cases, "cases", 500, "Number of production batches to simulate")
	generateCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	generateCmd.Flags().StringVar(&flowPath, "flow", "", "YAML flow definition (default: built-in battery production flow)")
	generateCmd.Flags().StringVar(&outputPath, "output", "", "CSV output path (default: stdout)")
	generateCmd.Flags().BoolVar(&showBar, "progress", false, "Render a progress bar during generation")

	generateCmd.Flags().Float64Var(&reworkProb, "rework-prob", sim.DefaultReworkProbability, "Rework probability at reworkable stages")
	generateCmd.Flags().IntVar(&batchMin, "batch-min", sim.DefaultBatchSizeMin, "Minimum batch size per case")
	generateCmd.Flags().IntVar(&batchMax, "batch-max", sim.DefaultBatchSizeMax, "Maximum batch size per case")
	generateCmd.Flags().StringSliceVar(&resources, "resources", sim.DefaultResources(), "Resource pool drawn per event")
	generateCmd.Flags().IntVar(&maxDetours, "max-detours", sim.DefaultMaxDetours, "Per-case rework detour budget")
	generateCmd.Flags().IntVar(&workers, "workers", 1, "Concurrent case walkers")
	generateCmd.Flags().StringVar(&startStr, "start", "", "Nominal run start, RFC3339 (default: 2023-10-01T00:00:00Z)")

	// Attach `generate` as a subcommand to `root`
	rootCmd.AddCommand(generateCmd)
}
