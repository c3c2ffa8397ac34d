package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/export"
	"github.com/san-kum/rigidsim/internal/metrics"
	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/storage"
	"github.com/san-kum/rigidsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	steps      int
	seed       int64
	backend    string
	bodies     int
	sites      int
	field      string
	noSave     bool
	svgOut     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rigidsim",
		Short: "rigid-body aggregation and propagation lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rigidsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip saving the run")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write a final-state SVG snapshot to this path")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with a live terminal view",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, n := range names {
				fmt.Println(n)
			}
		},
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	validateCmd := &cobra.Command{
		Use:   "validate [config.yaml]",
		Short: "validate a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd, runsCmd, validateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	cmd.Flags().IntVar(&steps, "steps", 0, "step count override")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().StringVar(&backend, "backend", "", "compute backend (serial, pool)")
	cmd.Flags().IntVar(&bodies, "bodies", 0, "body count override")
	cmd.Flags().IntVar(&sites, "sites", 0, "constituents per body override")
	cmd.Flags().StringVar(&field, "field", "", "force field override")
}

func resolveConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if dt > 0 {
		cfg.Dt = dt
	}
	if steps > 0 {
		cfg.Steps = steps
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if backend != "" {
		cfg.Backend = backend
	}
	if bodies > 0 {
		cfg.Bodies.Count = bodies
	}
	if sites > 0 {
		cfg.Bodies.Sites = sites
	}
	if field != "" {
		cfg.ForceField.Name = field
	}

	return cfg, cfg.Validate()
}

func buildStepper(cfg *config.Config) (*sim.Stepper, error) {
	sys, err := sim.Build(cfg)
	if err != nil {
		return nil, err
	}

	stepper := sim.NewStepper(sys)
	stepper.AddMetric(metrics.NewMomentumDrift())
	stepper.AddMetric(metrics.NewAngularMomentum())
	stepper.AddMetric(metrics.NewPotentialEnergy())
	stepper.AddMetric(metrics.NewMaxCentralForce())
	return stepper, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	stepper, err := buildStepper(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := stepper.Run(ctx, cfg.Dt, cfg.Steps)
	if err != nil {
		return err
	}

	printSummary(cfg, stepper.System(), result)

	if len(result.Drift) >= 2 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.Drift,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("momentum drift")))
	}

	if svgOut != "" {
		svg := export.SnapshotToSVG(stepper.System().Snap, stepper.System().Box, 600, 600)
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return fmt.Errorf("failed to write svg: %w", err)
		}
		if drift := export.DriftToSVG(result.Times, result.Drift, 600, 200, "#00ff88"); drift != "" {
			driftPath := strings.TrimSuffix(svgOut, ".svg") + "_drift.svg"
			if err := os.WriteFile(driftPath, []byte(drift), 0644); err != nil {
				return fmt.Errorf("failed to write drift svg: %w", err)
			}
		}
	}

	if !noSave {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		runID, err := store.Save(cfg, stepper.System().Snap, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved run %s\n", runID)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	stepper, err := buildStepper(cfg)
	if err != nil {
		return err
	}

	return viz.Run(stepper, cfg.Dt)
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFIELD\tSTEPS\tDT\tMOMENTUM DRIFT")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%.3e\n",
			r.ID, r.ForceField, r.Steps, r.Dt, r.Metrics["momentum_drift"])
	}
	return w.Flush()
}

func printSummary(cfg *config.Config, sys *sim.System, result *sim.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "steps\t%d\n", result.StepsTaken)
	fmt.Fprintf(w, "dt\t%.4f\n", cfg.Dt)
	fmt.Fprintf(w, "force field\t%s\n", cfg.ForceField.Name)
	fmt.Fprintf(w, "particles\t%d\n", sys.Snap.N)
	fmt.Fprintf(w, "number density\t%.4f\n", float64(sys.Snap.N)/sys.Box.Volume())

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6e\n", name, result.Metrics[name])
	}
	w.Flush()
}
