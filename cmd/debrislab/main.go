package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/debrislab/internal/analysis"
	"github.com/san-kum/debrislab/internal/config"
	"github.com/san-kum/debrislab/internal/debris"
	"github.com/san-kum/debrislab/internal/experiment"
	"github.com/san-kum/debrislab/internal/export"
	"github.com/san-kum/debrislab/internal/gui"
	"github.com/san-kum/debrislab/internal/metrics"
	"github.com/san-kum/debrislab/internal/scenario"
	"github.com/san-kum/debrislab/internal/storage"
	"github.com/san-kum/debrislab/internal/stream"
	"github.com/san-kum/debrislab/internal/viz"
)

var (
	dataDir      string
	dt           float64
	duration     float64
	seed         int64
	metricSet    string
	sampleStride int
	validate     bool
	numRuns      int

	// Environment overrides shared by the interactive and headless commands.
	gravity  float64
	airDrag  float64
	friction float64

	// Spawn defaults for the sandbox frontends and the stream server.
	force    float64
	count    int
	material string

	configFile string
	preset     string

	addr string
	fps  int

	svgAt     float64
	svgWidth  int
	svgHeight int
	svgOut    string

	sweepForce  string
	sweepCount  string
	sweepDrag   string
	sweepMetric string
	minimize    bool
)

// main is the entry point for the debrislab CLI; it registers commands and
// flags, opens the sandbox window when no subcommand is given, and executes
// the root command. It exits the process with status 1 if command execution
// returns an error.
func main() {
	defEnv := debris.DefaultEnvironment()

	rootCmd := &cobra.Command{
		Use:   "debrislab",
		Short: "debris physics sandbox and measurement lab",
		Run: func(cmd *cobra.Command, args []string) {
			gui.Run(debris.DefaultEnvironment(), 0)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "directory for run storage")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headless and store the samples",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0.01, "time step in seconds")
	runCmd.Flags().Float64Var(&duration, "time", 0, "simulation time in seconds (0 uses the scenario duration)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	runCmd.Flags().StringVar(&metricSet, "metrics", "default", "metric set (default, energy, impact)")
	runCmd.Flags().IntVar(&sampleStride, "stride", 1, "record every n-th step")
	runCmd.Flags().BoolVar(&validate, "validate", false, "check invariants every step")
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "number of seeds to run (>1 aggregates an ensemble)")
	runCmd.Flags().Float64Var(&gravity, "gravity", defEnv.Gravity.Y, "gravity in px/s^2")
	runCmd.Flags().Float64Var(&airDrag, "drag", defEnv.AirDrag, "air drag coefficient per second")
	runCmd.Flags().Float64Var(&friction, "friction", defEnv.Friction, "ground friction retained per bounce")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "named preset for the scenario")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "watch a scenario in the terminal (menu when no scenario given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	liveCmd.Flags().Float64Var(&gravity, "gravity", defEnv.Gravity.Y, "gravity in px/s^2")
	liveCmd.Flags().Float64Var(&airDrag, "drag", defEnv.AirDrag, "air drag coefficient per second")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the native sandbox window",
		Run: func(cmd *cobra.Command, args []string) {
			env := debris.DefaultEnvironment()
			if cmd.Flags().Changed("gravity") {
				env.Gravity.Y = gravity
			}
			if cmd.Flags().Changed("drag") {
				env.AirDrag = airDrag
			}
			gui.Run(env, 0)
		},
	}
	guiCmd.Flags().Float64Var(&gravity, "gravity", defEnv.Gravity.Y, "gravity in px/s^2")
	guiCmd.Flags().Float64Var(&airDrag, "drag", defEnv.AirDrag, "air drag coefficient per second")

	serveCmd := &cobra.Command{
		Use:   "serve [scenario]",
		Short: "stream frames over websocket and accept burst commands",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().IntVar(&fps, "fps", 30, "frames per second")
	serveCmd.Flags().Float64Var(&force, "force", 300, "default burst force")
	serveCmd.Flags().IntVar(&count, "count", 20, "default burst particle count")
	serveCmd.Flags().StringVar(&material, "material", "semi_rigid", "default burst material")
	serveCmd.Flags().Float64Var(&gravity, "gravity", defEnv.Gravity.Y, "gravity in px/s^2")
	serveCmd.Flags().Float64Var(&airDrag, "drag", defEnv.AirDrag, "air drag coefficient per second")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "run every scenario in a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().Float64Var(&dt, "dt", 0.01, "time step in seconds")
	batchCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	batchCmd.Flags().StringVar(&metricSet, "metrics", "default", "metric set (default, energy, impact)")
	batchCmd.Flags().IntVar(&sampleStride, "stride", 1, "record every n-th step")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "plot the sample series of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run-id]",
		Short: "spectral and decay analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run-id]",
		Short: "write the samples of a run to stdout as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run-id]",
		Short: "write a run with its samples to stdout as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [scenario]",
		Short: "render a scenario to svg (trajectories, or one frame with --at)",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVGScenario,
	}
	exportSVGCmd.Flags().Float64Var(&dt, "dt", 0.01, "time step in seconds")
	exportSVGCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	exportSVGCmd.Flags().Float64Var(&svgAt, "at", -1, "snapshot time in seconds (negative draws trajectories)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 600, "image width in px")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height in px")
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (stdout when empty)")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			sort.Strings(names)
			fmt.Printf("presets for %s:\n", args[0])
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDURATION\tBURSTS\tDESCRIPTION")
			for _, name := range scenario.Names() {
				scn, err := scenario.Get(name)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "%s\t%.1fs\t%d\t%s\n", scn.Name, scn.Duration, len(scn.Bursts), scn.Description)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "benchmark a scenario across time steps",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "grid-search burst and environment parameters",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepScenario,
	}
	sweepCmd.Flags().Float64Var(&dt, "dt", 0.01, "time step in seconds")
	sweepCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	sweepCmd.Flags().StringVar(&sweepForce, "force", "", "comma-separated burst forces to try")
	sweepCmd.Flags().StringVar(&sweepCount, "count", "", "comma-separated burst counts to try")
	sweepCmd.Flags().StringVar(&sweepDrag, "drag", "", "comma-separated air drag values to try")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "kinetic_energy", "metric to score candidates by")
	sweepCmd.Flags().BoolVar(&minimize, "minimize", false, "prefer the smallest metric value")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, serveCmd, batchCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, scenariosCmd, benchCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(name, preset)
		if p == nil {
			return fmt.Errorf("unknown preset %q for scenario %s", preset, name)
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override config file and preset values.
	if !cmd.Flags().Changed("dt") {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("time") {
		duration = cfg.Duration
	}
	if cfg.Seed != 0 && !cmd.Flags().Changed("seed") {
		seed = cfg.Seed
	}
	if !cmd.Flags().Changed("stride") {
		sampleStride = cfg.SampleStride
	}
	if !cmd.Flags().Changed("metrics") {
		metricSet = cfg.MetricSet
	}
	if !cmd.Flags().Changed("validate") {
		validate = cfg.Validate
	}

	env := cfg.ToEnvironment()
	if cmd.Flags().Changed("gravity") {
		env.Gravity.Y = gravity
	}
	if cmd.Flags().Changed("drag") {
		env.AirDrag = airDrag
	}
	if cmd.Flags().Changed("friction") {
		env.Friction = friction
	}

	registry := experiment.NewRegistry()

	scn, err := registry.GetScenario(name)
	if err != nil {
		return err
	}
	ms, err := registry.GetMetrics(metricSet)
	if err != nil {
		return err
	}

	expCfg := experiment.Config{
		Scenario:     name,
		Dt:           dt,
		Duration:     duration,
		Seed:         seed,
		SampleStride: sampleStride,
		Validate:     validate,
		Environment:  &env,
	}

	if numRuns > 1 {
		metricsFn := func() []metrics.Metric {
			set, err := registry.GetMetrics(metricSet)
			if err != nil {
				return experiment.DefaultMetrics()
			}
			return set
		}
		return runEnsemble(expCfg, scn, metricsFn)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(expCfg)
	if err := exp.Setup(scn, ms); err != nil {
		return err
	}

	fmt.Printf("running %s scenario...\n", name)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	saveDuration := duration
	if saveDuration == 0 {
		saveDuration = scn.Duration
	}
	runID, err := st.Save(name, dt, saveDuration, seed, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("spawned: %d  culled: %d\n", result.Spawned, result.Culled)
	fmt.Println("\nmetrics:")
	for metric, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", metric, val)
	}

	return nil
}

func runEnsemble(expCfg experiment.Config, scn *scenario.Scenario, metricsFn func() []metrics.Metric) error {
	fmt.Printf("running %d seeds starting at %d...\n", numRuns, expCfg.Seed)
	start := time.Now()

	ens := experiment.NewEnsemble(expCfg, scn, numRuns, expCfg.Seed, metricsFn)
	results, err := ens.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	names := make([]string, 0, len(results[0].Metrics))
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tMIN\tMAX")
	for _, name := range names {
		mean, min, max := 0.0, results[0].Metrics[name], results[0].Metrics[name]
		for _, r := range results {
			v := r.Metrics[name]
			mean += v
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		mean /= float64(len(results))
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\n", name, mean, min, max)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	store := gui.OpenSettings()
	saved := store.Load()
	viz.SetTheme(saved.Theme)

	if len(args) == 0 {
		if err := viz.RunInteractive(); err != nil {
			return err
		}
	} else {
		scn, err := scenario.Get(args[0])
		if err != nil {
			return err
		}

		env := debris.DefaultEnvironment()
		if cmd.Flags().Changed("gravity") {
			env.Gravity.Y = gravity
		}
		if cmd.Flags().Changed("drag") {
			env.AirDrag = airDrag
		}

		m, err := viz.NewScenarioModel(scn, env, seed)
		if err != nil {
			return err
		}

		p := tea.NewProgram(m)
		if _, err := p.Run(); err != nil {
			return err
		}
	}

	// A theme picked with T survives to the next session.
	saved.Theme = viz.CurrentTheme.Name
	return store.Save(saved)
}

func runServe(cmd *cobra.Command, args []string) error {
	env := debris.DefaultEnvironment()
	if cmd.Flags().Changed("gravity") {
		env.Gravity.Y = gravity
	}
	if cmd.Flags().Changed("drag") {
		env.AirDrag = airDrag
	}

	spawnKind, err := debris.ParseKind(material)
	if err != nil {
		return err
	}

	pop := debris.NewPopulation(env, nil)

	var player *scenario.Player
	if len(args) == 1 {
		scn, err := scenario.Get(args[0])
		if err != nil {
			return err
		}
		if err := scn.Validate(); err != nil {
			return err
		}
		player = scenario.NewPlayer(scn)
	}

	hub := stream.NewHub()
	srv := stream.NewServer(addr, hub, env)

	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()
		stepDt := 1.0 / float64(fps)

		for {
			select {
			case c := <-hub.Commands():
				switch c.Op {
				case stream.OpBurst:
					kind, err := debris.ParseKind(c.Kind)
					if err != nil {
						kind = spawnKind
					}
					f := c.Force
					if f <= 0 {
						f = force
					}
					n := c.Count
					if n <= 0 {
						n = count
					}
					pop.SpawnExplosion(debris.Vec2{X: c.X, Y: c.Y}, f, n, kind)
				case stream.OpClear:
					pop.Clear()
				}
			case <-ticker.C:
				if player != nil {
					player.Advance(pop, pop.Now())
				}
				pop.Step(stepDt)
				hub.Broadcast(pop.Snapshot())
			}
		}
	}()

	fmt.Printf("serving debris frames on %s\n", addr)
	return srv.ListenAndServe()
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenarios, err := scenario.LoadFile(args[0])
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios in %s", args[0])
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	ctx := context.Background()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tRUN ID\tSTEPS\tSPAWNED\tCULLED\tKINETIC ENERGY")

	for _, scn := range scenarios {
		ms, err := registry.GetMetrics(metricSet)
		if err != nil {
			return err
		}

		exp := experiment.New(experiment.Config{
			Scenario:     scn.Name,
			Dt:           dt,
			Seed:         seed,
			SampleStride: sampleStride,
		})
		if err := exp.Setup(scn, ms); err != nil {
			return fmt.Errorf("%s: %w", scn.Name, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", scn.Name, err)
		}

		runID, err := st.Save(scn.Name, dt, scn.Duration, seed, result)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.1f\n", scn.Name, runID, result.StepsTaken, result.Spawned, result.Culled, result.Metrics["kinetic_energy"])
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	records, err := st.List()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tSEED\tSTEPS")
	for _, run := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID, run.Scenario, run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration, run.Dt, run.Seed, run.Steps)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no samples in run %s", args[0])
	}

	fmt.Printf("run: %s  scenario: %s  samples: %d\n\n", meta.ID, meta.Scenario, len(samples))

	series := []struct {
		name string
		pick func(experiment.Sample) float64
	}{
		{"particle count", func(s experiment.Sample) float64 { return float64(s.Count) }},
		{"kinetic energy", func(s experiment.Sample) float64 { return s.KineticEnergy }},
		{"max speed", func(s experiment.Sample) float64 { return s.MaxSpeed }},
		{"mean speed", func(s experiment.Sample) float64 { return s.MeanSpeed }},
		{"mean deformation", func(s experiment.Sample) float64 { return s.MeanDeformation }},
	}

	for _, sr := range series {
		data := make([]float64, len(samples))
		for i, sm := range samples {
			data[i] = sr.pick(sm)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) < 4 {
		return fmt.Errorf("not enough samples to analyze run %s", args[0])
	}

	fmt.Printf("analysis: %s  scenario: %s\n\n", meta.ID, meta.Scenario)

	times := make([]float64, len(samples))
	energy := make([]float64, len(samples))
	meanSpeed := make([]float64, len(samples))
	for i, sm := range samples {
		times[i] = sm.Time
		energy[i] = sm.KineticEnergy
		meanSpeed[i] = sm.MeanSpeed
	}
	sampleDt := times[1] - times[0]

	_, power := analysis.Spectrum(energy, sampleDt)
	if len(power) > 0 {
		plotData := power
		if len(power) >= 8 {
			plotData = power[:len(power)/4]
		}
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("kinetic energy spectrum"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if freq := analysis.DominantFrequency(energy, sampleDt); freq > 0 {
		fmt.Printf("dominant frequency: %.3f hz (period %.3f s)\n", freq, 1/freq)
	}

	peakIdx, peakVal := analysis.Peak(energy)
	fmt.Printf("peak energy: %.1f at t=%.2fs\n", peakVal, times[peakIdx])
	fmt.Printf("energy above 5%% of peak until t=%.2fs\n", analysis.DecayTime(times, energy, 0.05))
	fmt.Printf("mean speed above 5%% of peak until t=%.2fs\n", analysis.DecayTime(times, meanSpeed, 0.05))

	scn, err := scenario.Get(meta.Scenario)
	if err != nil {
		return nil
	}

	// Replay to show where the debris settled. The replay assumes the run
	// used the default environment; metadata records no overrides.
	env := debris.DefaultEnvironment()
	exp := experiment.New(experiment.Config{
		Scenario:    meta.Scenario,
		Dt:          meta.Dt,
		Duration:    meta.Duration,
		Seed:        meta.Seed,
		Environment: &env,
	})
	if err := exp.Setup(scn, nil); err != nil {
		return nil
	}

	var finalPop *debris.Population
	runErr := exp.RunWithCallback(context.Background(), func(pop *debris.Population, t float64) bool {
		finalPop = pop
		return true
	})
	if runErr != nil || finalPop == nil || finalPop.Len() == 0 {
		return nil
	}

	points := make([]debris.Vec2, 0, finalPop.Len())
	for _, p := range finalPop.Particles() {
		points = append(points, p.Position)
	}
	fmt.Println("\ndebris at rest (replayed):")
	fmt.Print(analysis.ScatterToASCII(points, finalPop.Env(), 80, 20))

	return nil
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no samples in run %s", args[0])
	}
	return storage.ExportCSV(os.Stdout, samples)
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, samples)
}

func exportSVGScenario(cmd *cobra.Command, args []string) error {
	scn, err := scenario.Get(args[0])
	if err != nil {
		return err
	}

	env := debris.DefaultEnvironment()
	exp := experiment.New(experiment.Config{
		Scenario:    scn.Name,
		Dt:          dt,
		Seed:        seed,
		Environment: &env,
	})
	if err := exp.Setup(scn, nil); err != nil {
		return err
	}

	ctx := context.Background()

	var svg string
	if svgAt >= 0 {
		var frame debris.Frame
		captured := false
		err := exp.RunWithCallback(ctx, func(pop *debris.Population, t float64) bool {
			if t >= svgAt {
				frame = pop.Snapshot()
				captured = true
				return false
			}
			return true
		})
		if err != nil {
			return err
		}
		if !captured {
			return fmt.Errorf("scenario ends before t=%.2fs", svgAt)
		}
		svg = export.FrameToSVG(frame, env, svgWidth, svgHeight)
	} else {
		trajectories, err := export.Record(ctx, exp)
		if err != nil {
			return err
		}
		svg = export.TrajectoriesToSVG(trajectories, env, svgWidth, svgHeight)
	}

	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	scn, err := scenario.Get(args[0])
	if err != nil {
		return err
	}

	dts := []float64{0.001, 0.005, 0.01, 0.02}
	ctx := context.Background()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tTIME\tSTEPS/SEC\tSPAWNED\tCULLED")

	for _, d := range dts {
		exp := experiment.New(experiment.Config{
			Scenario: scn.Name,
			Dt:       d,
			Seed:     42,
		})
		if err := exp.Setup(scn.Clone(), nil); err != nil {
			return err
		}

		start := time.Now()
		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
		fmt.Fprintf(w, "%.4f\t%d\t%v\t%.0f\t%d\t%d\n",
			d, result.StepsTaken, elapsed.Round(time.Microsecond), stepsPerSec, result.Spawned, result.Culled)
	}
	return w.Flush()
}

func sweepScenario(cmd *cobra.Command, args []string) error {
	base, err := scenario.Get(args[0])
	if err != nil {
		return err
	}

	var paramNames []string
	var ranges [][]float64

	addRange := func(name, spec string) error {
		if spec == "" {
			return nil
		}
		vals, err := parseFloatList(spec)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		paramNames = append(paramNames, name)
		ranges = append(ranges, vals)
		return nil
	}
	if err := addRange("force", sweepForce); err != nil {
		return err
	}
	if err := addRange("count", sweepCount); err != nil {
		return err
	}
	if err := addRange("drag", sweepDrag); err != nil {
		return err
	}
	if len(paramNames) == 0 {
		return fmt.Errorf("nothing to sweep: pass --force, --count, or --drag")
	}

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		scn := base.Clone()
		if v, ok := params["force"]; ok {
			for i := range scn.Bursts {
				scn.Bursts[i].Force = v
			}
		}
		if v, ok := params["count"]; ok {
			for i := range scn.Bursts {
				scn.Bursts[i].Count = int(v)
			}
		}

		env := debris.DefaultEnvironment()
		if v, ok := params["drag"]; ok {
			env.AirDrag = v
		}

		exp := experiment.New(experiment.Config{
			Scenario:    base.Name,
			Dt:          dt,
			Seed:        seed,
			Environment: &env,
		})
		if err := exp.Setup(scn, experiment.DefaultMetrics()); err != nil {
			return nil, err
		}
		return exp, nil
	}

	fmt.Printf("sweeping %s, scoring %s\n\n", base.Name, sweepMetric)

	sw := experiment.NewSweep(paramNames, ranges)
	bestParams, bestVal, err := sw.Search(context.Background(), build, sweepMetric, minimize)
	if err != nil {
		return err
	}
	if bestParams == nil {
		return fmt.Errorf("no sweep evaluation succeeded")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(paramNames, "\t"))+"\t"+strings.ToUpper(sweepMetric))
	for _, ev := range sw.Evaluations {
		fields := make([]string, 0, len(paramNames)+1)
		for _, name := range paramNames {
			fields = append(fields, strconv.FormatFloat(ev.Params[name], 'g', -1, 64))
		}
		fields = append(fields, fmt.Sprintf("%.4f", ev.Value))
		fmt.Fprintln(w, strings.Join(fields, "\t"))
	}
	w.Flush()

	fmt.Printf("\nbest %s: %.4f at", sweepMetric, bestVal)
	for _, name := range paramNames {
		fmt.Printf(" %s=%g", name, bestParams[name])
	}
	fmt.Println()

	return nil
}

func parseFloatList(spec string) ([]float64, error) {
	parts := strings.Split(spec, ",")
	vals := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q", part)
		}
		vals = append(vals, v)
	}
	return vals, nil
}
