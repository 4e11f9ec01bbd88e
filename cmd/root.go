package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/gridsir/sim"
	"github.com/inference-sim/gridsir/sim/telemetry"
	"github.com/inference-sim/gridsir/sim/trace"
)

var (
	// CLI flags for the run
	seed     int64  // Master seed for all randomness
	horizon  int64  // Max number of steps (0 = until no infected remain)
	logLevel string // Log verbosity level
	tileRows int    // Rows per parallel band (0 = sequential)

	// CLI flags for the grid and SIR parameters
	width           int     // Grid columns
	height          int     // Grid rows
	beta            float64 // Infection rate
	gamma           float64 // Recovery rate
	dt              float64 // Time step size
	initialInfected float64 // Fraction of cells infected at step 0
	seedCenter      bool    // Infect only the centre cell at step 0

	// CLI flags for presets and outputs
	presetName       string // Named preset from defaults.yaml
	defaultsFilePath string // Path to defaults.yaml
	csvPath          string // Epidemic curve CSV output
	resultsPath      string // JSON results output
	metricsTextfile  string // Prometheus textfile output
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "gridsir",
	Short: "Agent-based SIR epidemic simulator on a 2D grid",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the epidemic simulation",
	Run: func(cmd *cobra.Command, args []string) {
		envCfg, err := parseEnv()
		if err != nil {
			logrus.Fatalf("Invalid environment: %v", err)
		}
		applyEnv(envCfg, cmd.Flags().Changed)

		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if presetName != "" {
			cfg, err := loadDefaultsConfig(defaultsFilePath)
			if err != nil {
				logrus.Fatalf("Failed to load presets: %v", err)
			}
			preset, err := cfg.lookupPreset(presetName)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			applyPreset(preset, cmd.Flags().Changed)
			logrus.Infof("Using preset %q: %s", presetName, preset.Description)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		out := outputOptions{CSVPath: csvPath, ResultsPath: resultsPath, MetricsTextfile: metricsTextfile}
		if _, err := runSimulation(ctx, buildSimConfig(), out, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		logrus.Info("Simulation complete.")
	},
}

// buildSimConfig assembles a SimConfig from the flag variables.
func buildSimConfig() sim.SimConfig {
	return sim.SimConfig{
		GridConfig: sim.GridConfig{
			Width:         width,
			Height:        height,
			InfectedRatio: initialInfected,
			SeedCenter:    seedCenter,
		},
		RunConfig: sim.RunConfig{
			Seed:     seed,
			Horizon:  horizon,
			TileRows: tileRows,
		},
		Params: sim.Parameters{Beta: beta, Gamma: gamma, Dt: dt},
	}
}

// outputOptions selects the optional files written after a run.
type outputOptions struct {
	CSVPath         string
	ResultsPath     string // empty = JSON to stdout
	MetricsTextfile string
}

// runSimulation runs one simulation to completion and writes its outputs.
// An interrupted run still reports what it reached.
func runSimulation(ctx context.Context, cfg sim.SimConfig, out outputOptions, w io.Writer) (*sim.Simulator, error) {
	s, err := sim.NewSimulator(cfg)
	if err != nil {
		return nil, fmt.Errorf("configuring simulation: %w", err)
	}
	if out.CSVPath != "" {
		s.SetTrace(trace.NewEpidemicTrace(trace.TraceConfig{Level: trace.TraceLevelSteps}))
	}
	var registry *telemetry.Registry
	if out.MetricsTextfile != "" {
		registry = telemetry.NewRegistry()
		s.AddObserver(registry)
	}

	startTime := time.Now()
	if err := s.Run(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			return s, err
		}
		logrus.Warnf("Simulation interrupted at step %d; writing partial results", s.StepCount)
	}
	logrus.Infof("Simulation ran %d steps in %v", s.StepCount, time.Since(startTime))

	s.Metrics.Print(w)
	gridW, gridH := s.Grid.Dimensions()
	info := sim.RunInfo{RunID: uuid.NewString(), Seed: cfg.Seed, Width: gridW, Height: gridH, Params: cfg.Params}
	if err := s.Metrics.SaveResults(info, startTime, out.ResultsPath); err != nil {
		return s, err
	}
	if out.CSVPath != "" {
		if err := s.Trace.SaveCSV(out.CSVPath); err != nil {
			return s, err
		}
		logrus.Infof("Epidemic curve written to: %s", out.CSVPath)
	}
	if registry != nil {
		if err := registry.WriteTextfile(out.MetricsTextfile); err != nil {
			return s, err
		}
		logrus.Infof("Prometheus metrics written to: %s", out.MetricsTextfile)
	}
	return s, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for initial infection and stepping")
	runCmd.Flags().Int64Var(&horizon, "horizon", 0, "Maximum number of steps (0 = until no infected remain)")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().IntVar(&tileRows, "tile-rows", 0, "Rows per parallel band (0 = sequential stepping)")

	// Grid and SIR parameters
	runCmd.Flags().IntVar(&width, "width", 100, "Grid width (columns)")
	runCmd.Flags().IntVar(&height, "height", 100, "Grid height (rows)")
	runCmd.Flags().Float64Var(&beta, "beta", 0.3, "Infection rate per infected neighbor")
	runCmd.Flags().Float64Var(&gamma, "gamma", 0.1, "Recovery rate")
	runCmd.Flags().Float64Var(&dt, "dt", 1.0, "Time step size")
	runCmd.Flags().Float64Var(&initialInfected, "initial-infected", 0.01, "Fraction of cells infected at step 0")
	runCmd.Flags().BoolVar(&seedCenter, "seed-center", false, "Infect only the centre cell at step 0")

	// Presets and outputs
	runCmd.Flags().StringVar(&presetName, "preset", "", "Named preset from the defaults file")
	runCmd.Flags().StringVar(&defaultsFilePath, "defaults", "defaults.yaml", "Path to the presets file")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "Write the per-step S/I/R curve to this CSV file")
	runCmd.Flags().StringVar(&resultsPath, "results", "", "Write JSON results to this file (default stdout)")
	runCmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this textfile")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
