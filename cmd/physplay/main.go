package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/physplay/internal/config"
	"github.com/san-kum/physplay/internal/experiment"
	"github.com/san-kum/physplay/internal/export"
	"github.com/san-kum/physplay/internal/fluid"
	"github.com/san-kum/physplay/internal/metrics"
	"github.com/san-kum/physplay/internal/sim"
	"github.com/san-kum/physplay/internal/storage"
	"github.com/san-kum/physplay/internal/templates"
	"github.com/san-kum/physplay/internal/viz"
)

var (
	dataDir string
	verbose bool

	dt         float64
	duration   float64
	seed       int64
	count      int
	layout     string
	width      float64
	height     float64
	configFile string
	preset     string

	frameRate int
	theme     string

	metricName string
	outFile    string
	svgFile    string

	numRuns int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "physplay",
		Short:        "2D rigid-body and fluid physics playground",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, []string{config.DefaultTemplate})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".physplay", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	runCmd := &cobra.Command{
		Use:   "run [template]",
		Short: "run a simulation headless and store its metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [template]",
		Short: "run a simulation in the terminal viewer",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", viz.ThemeOcean.Name, "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the metric series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metricName, "metric", "", "plot only this metric")
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "write the metric as an svg line chart instead")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run and its series as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "-", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets [template]",
		Short: "list available presets for a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for template: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "list available templates",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range templates.NewRegistry().List() {
				fmt.Println(name)
			}
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [template]",
		Short: "step independent copies of a template concurrently",
		Args:  cobra.ExactArgs(1),
		RunE:  benchTemplate,
	}
	addSimFlags(benchCmd)
	benchCmd.Flags().IntVar(&numRuns, "runs", 4, "number of concurrent runs")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, presetsCmd, templatesCmd, benchCmd,
		newScenarioCmd(), newSweepCmd(), newTuneCmd(), newAnalyzeCmd(), newPhaseCmd(), newCompareCmd(), newSnapshotCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&count, "count", config.DefaultSpawnCount, "number of starter bodies or particles")
	cmd.Flags().StringVar(&layout, "layout", "grid", "starter layout (grid, random)")
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "world width")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "world height")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func newLogger() *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "physplay: ", log.LstdFlags)
}

// resolveConfig layers defaults, the preset, the config file and finally
// any flag set on the command line.
func resolveConfig(cmd *cobra.Command, template string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Template = template

	if preset != "" {
		p := config.GetPreset(template, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(template))
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
		cfg.Template = template
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("count") {
		cfg.Spawn.Count = count
	}
	if flags.Changed("layout") {
		cfg.Spawn.Layout = layout
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadTemplate builds the template named by cfg and loads it into m.
func loadTemplate(m *sim.Manager, cfg *config.Config) error {
	tpl, err := templates.NewRegistry().GetByName(cfg.Template, cfg)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, templates.NewRegistry().List())
	}
	starter, err := templates.NewStarter(cfg.StarterPositions())
	if err != nil {
		return err
	}
	return m.Load(tpl, cfg.Bounds(), starter)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	logger := newLogger()
	exp := experiment.New(cfg,
		experiment.WithLogger(logger),
		experiment.WithProgress(printProgress),
	)
	if err := exp.Setup(templates.NewRegistry(), metrics.Default()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s simulation (%d steps)...\n", cfg.Template, cfg.Steps())
	result, runErr := exp.Run(ctx)
	fmt.Fprintln(os.Stderr)
	if runErr != nil {
		logger.Printf("run stopped: %v", runErr)
	}

	runID, err := saveResult(st, cfg, preset, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	return runErr
}

func printProgress(done, total int) {
	if total < 10 || done%(total/10) != 0 {
		return
	}
	frac := float64(done) / float64(total)
	fmt.Fprintf(os.Stderr, "\r%s %3.0f%%", viz.ProgressBar(frac, 30), 100*frac)
}

func saveResult(st *storage.Store, cfg *config.Config, presetName string, result *experiment.Result) (string, error) {
	meta := storage.RunMetadata{
		Template: cfg.Template,
		Preset:   presetName,
		Seed:     cfg.Seed,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Steps:    result.Steps,
		Bodies:   cfg.Spawn.Count,
		Metrics:  result.Metrics,
	}
	return st.Save(meta, result.Series, cfg)
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, values[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	if frameRate <= 0 {
		frameRate = 30
	}
	m := sim.NewManager(
		sim.WithLogger(newLogger()),
		sim.WithHistory(sim.HistoryCapacity(cfg.HistorySeconds, float64(frameRate))),
	)
	for _, metric := range metrics.Default() {
		m.AddMetric(metric)
	}
	if err := loadTemplate(m, cfg); err != nil {
		return err
	}

	return viz.RunLive(m, viz.LiveOptions{
		Title:       cfg.Template,
		Bounds:      cfg.Bounds(),
		Dt:          cfg.Dt,
		FPS:         float64(frameRate),
		Theme:       theme,
		Reset:       func() error { return loadTemplate(m, cfg) },
		ForceRadius: fluid.DefaultInteractiveRadius,
	})
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTEMPLATE\tPRESET\tTIME\tDURATION\tDT\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Template,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if series.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	if svgFile != "" {
		return writeSeriesSVG(series)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("template: %s\n", meta.Template)
	fmt.Printf("samples: %d\n\n", series.Len())

	columns := series.Columns
	if metricName != "" {
		columns = []string{metricName}
	}

	for _, name := range columns {
		data, ok := series.Column(name)
		if !ok {
			return fmt.Errorf("unknown metric: %s (available: %v)", name, series.Columns)
		}
		graph, err := viz.Chart(data, name, 80, 10)
		if err != nil {
			return err
		}
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func writeSeriesSVG(series *storage.Series) error {
	name := metricName
	if name == "" {
		name = "kinetic_energy"
	}
	svg, err := export.SeriesToSVG(series, name, 800, 300, string(viz.ThemeOcean.Primary))
	if err != nil {
		return err
	}
	if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgFile)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportFile(args[0], outFile)
}

func benchTemplate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	registry := templates.NewRegistry()
	if _, err := registry.GetByName(cfg.Template, cfg); err != nil {
		return err
	}
	starter, err := templates.NewStarter(cfg.StarterPositions())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ensemble := sim.NewEnsemble(func() (sim.Template, error) {
		return registry.GetByName(cfg.Template, cfg)
	}, numRuns, metrics.Default)

	steps := cfg.Steps()
	fmt.Printf("benchmarking %s: %d runs x %d steps\n", cfg.Template, numRuns, steps)
	start := time.Now()
	results, err := ensemble.Run(ctx, cfg.Bounds(), starter, steps, cfg.Dt)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTEPS\tELAPSED\tSTEPS/S\tKINETIC ENERGY")
	total := 0
	for _, r := range results {
		total += r.Steps
		fmt.Fprintf(w, "%d\t%d\t%v\t%.1f\t%.4g\n",
			r.Index, r.Steps, r.Elapsed.Round(time.Millisecond), r.StepsPerSecond(), r.Metrics["kinetic_energy"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ntotal: %d steps in %v (%.1f steps/s)\n", total, elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds())
	return nil
}
