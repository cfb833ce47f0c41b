package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/physplay/internal/analysis"
	"github.com/san-kum/physplay/internal/automation"
	"github.com/san-kum/physplay/internal/config"
	"github.com/san-kum/physplay/internal/experiment"
	"github.com/san-kum/physplay/internal/export"
	"github.com/san-kum/physplay/internal/metrics"
	"github.com/san-kum/physplay/internal/optim"
	"github.com/san-kum/physplay/internal/storage"
	"github.com/san-kum/physplay/internal/templates"
	"github.com/san-kum/physplay/internal/viz"
)

var (
	xMetric string
	yMetric string

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	sweepTime  float64

	// shared by analyze, compare and sweep
	seriesMetric string

	tuneParams []string
	tunePoints int
	tuneMetric string

	svgScale float64
	dotsMode bool
)

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [template]",
		Short: "run a template across a range of one parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	cmd.Flags().StringVar(&sweepParam, "param", "fluid.viscosity_strength", "parameter to vary ("+strings.Join(config.ParamNames(), ", ")+")")
	cmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	cmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	cmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	cmd.Flags().Float64Var(&sweepTime, "time", 2, "duration of each run")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&seriesMetric, "metric", "kinetic_energy", "metric to report")
	return cmd
}

func newTuneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tune [template]",
		Short: "grid search parameters minimising a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  runTune,
	}
	addSimFlags(cmd)
	cmd.Flags().StringArrayVar(&tuneParams, "param", nil, "parameter range as name=lo:hi (repeatable)")
	cmd.Flags().IntVar(&tunePoints, "points", 5, "grid points per parameter")
	cmd.Flags().StringVar(&tuneMetric, "metric", "energy_drift", "metric to minimise")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	cmd.Flags().StringVar(&seriesMetric, "metric", "kinetic_energy", "metric to analyse")
	return cmd
}

func newPhaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "plot one metric against another",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	cmd.Flags().StringVar(&xMetric, "x", "kinetic_energy", "metric for the x axis")
	cmd.Flags().StringVar(&yMetric, "y", "max_speed", "metric for the y axis")
	return cmd
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [run_id] [run_id] ...",
		Short: "overlay one metric from several runs",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareRuns,
	}
	cmd.Flags().StringVar(&seriesMetric, "metric", "kinetic_energy", "metric to compare")
	return cmd
}

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot [template]",
		Short: "run a simulation and write its final state as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  writeSnapshot,
	}
	addSimFlags(cmd)
	cmd.Flags().StringVarP(&outFile, "out", "o", "-", "output file")
	cmd.Flags().Float64Var(&svgScale, "scale", 1, "pixels per world unit")
	cmd.Flags().BoolVar(&dotsMode, "dots", false, "render the braille canvas instead of shapes")
	cmd.Flags().StringVar(&theme, "theme", viz.ThemeOcean.Name, "colour theme")
	return cmd
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario: %s (%d steps)\n", scenario.Name, len(scenario.Steps))
	results, runErr := automation.RunScenario(ctx, scenario, templates.NewRegistry(), newLogger())

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTEMPLATE\tSTEPS\tELAPSED\tKINETIC ENERGY\tRUN ID")
	for i, r := range results {
		runID := ""
		if r.Step.SaveAs != "" {
			meta := storage.RunMetadata{
				ID:       r.Step.SaveAs,
				Template: r.Config.Template,
				Preset:   r.Step.Preset,
				Seed:     r.Config.Seed,
				Dt:       r.Config.Dt,
				Duration: r.Config.Duration,
				Steps:    r.Result.Steps,
				Bodies:   r.Config.Spawn.Count,
				Metrics:  r.Result.Metrics,
			}
			if runID, err = st.Save(meta, r.Result.Series, r.Config); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%v\t%.4g\t%s\n",
			i+1, r.Config.Template, r.Result.Steps, r.Result.Elapsed, r.Result.Metrics["kinetic_energy"], runID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sweep := &automation.ParameterSweep{
		Template:  args[0],
		Preset:    preset,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Duration:  sweepTime,
	}

	fmt.Printf("sweeping %s over %s [%g, %g]\n\n", args[0], sweepParam, sweepMin, sweepMax)
	results, err := automation.RunSweep(ctx, sweep, templates.NewRegistry(), newLogger())

	values := make([]float64, 0, len(results))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTEPS\t%s\n", strings.ToUpper(sweepParam), strings.ToUpper(seriesMetric))
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%.4g\t%d\terror: %v\n", r.ParamValue, r.Steps, r.Err)
			continue
		}
		values = append(values, r.Metrics[seriesMetric])
		fmt.Fprintf(w, "%.4g\t%d\t%.6g\n", r.ParamValue, r.Steps, r.Metrics[seriesMetric])
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	if len(values) > 1 {
		fmt.Printf("\n%s\n", viz.Sparkline(values, len(values)))
	}

	return err
}

// parseRange splits "name=lo:hi".
func parseRange(s string) (string, float64, float64, error) {
	name, bounds, ok := strings.Cut(s, "=")
	if !ok {
		return "", 0, 0, fmt.Errorf("invalid range %q, expected name=lo:hi", s)
	}
	loStr, hiStr, ok := strings.Cut(bounds, ":")
	if !ok {
		return "", 0, 0, fmt.Errorf("invalid range %q, expected name=lo:hi", s)
	}
	lo, err := strconv.ParseFloat(loStr, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid range %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(hiStr, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid range %q: %w", s, err)
	}
	return name, lo, hi, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	if len(tuneParams) == 0 {
		return fmt.Errorf("at least one --param is required")
	}

	base, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	names := make([]string, 0, len(tuneParams))
	ranges := make([][]float64, 0, len(tuneParams))
	for _, p := range tuneParams {
		name, lo, hi, err := parseRange(p)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, optim.Linspace(lo, hi, tunePoints))
	}

	grid, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	registry := templates.NewRegistry()
	logger := newLogger()
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := *base
		for name, v := range params {
			if err := cfg.SetParam(name, v); err != nil {
				return nil, err
			}
		}
		exp := experiment.New(&cfg, experiment.WithLogger(logger))
		if err := exp.Setup(registry, metrics.Default()); err != nil {
			return nil, err
		}
		return exp, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	best, value, err := grid.Search(ctx, build, tuneMetric)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("best %s: %.6g\n", tuneMetric, value)
	for _, k := range keys {
		fmt.Printf("  %s = %.6g\n", k, best[k])
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	data, ok := series.Column(seriesMetric)
	if !ok {
		return fmt.Errorf("unknown metric: %s (available: %v)", seriesMetric, series.Columns)
	}

	spec, err := analysis.Analyze(data, meta.Dt)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("template: %s\n\n", meta.Template)

	graph, err := viz.Chart(spec.Power[:max(len(spec.Power)/4, 1)], "power spectrum ("+seriesMetric+")", 80, 15)
	if err != nil {
		return err
	}
	fmt.Println(graph)
	fmt.Println()

	fmt.Printf("dominant frequency: %.3f hz\n", spec.Dominant)
	if spec.Period > 0 {
		fmt.Printf("period: %.3f s\n", spec.Period)
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	portrait, err := analysis.NewPortrait(series, xMetric, yMetric)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("%s vs %s\n\n", yMetric, xMetric)
	fmt.Print(portrait.ASCII(70, 25))
	return nil
}

func compareRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	all := make([][]float64, 0, len(args))
	for _, id := range args {
		series, err := st.LoadSeries(id)
		if err != nil {
			return err
		}
		data, ok := series.Column(seriesMetric)
		if !ok || len(data) == 0 {
			return fmt.Errorf("run %s has no %s data", id, seriesMetric)
		}
		all = append(all, data)
		fmt.Printf("%-30s %s\n", id, viz.Sparkline(data, 40))
	}
	fmt.Println()

	graph, err := viz.ChartMany(all, args, 80, 15)
	if err != nil {
		return err
	}
	fmt.Println(graph)
	return nil
}

func writeSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, experiment.WithLogger(newLogger()))
	if err := exp.Setup(templates.NewRegistry(), nil); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := exp.Run(ctx); err != nil {
		return err
	}
	frame, err := exp.Manager().Snapshot()
	if err != nil {
		return err
	}

	w := os.Stdout
	if outFile != "" && outFile != "-" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	t := viz.GetTheme(theme)
	if dotsMode {
		canvas := viz.NewCanvas(80, 40)
		if err := viz.DrawSnapshot(canvas, frame.Snapshot, cfg.Bounds(), t); err != nil {
			return err
		}
		_, err = fmt.Fprint(w, export.CanvasToSVG(canvas, 4*svgScale, string(t.Fluid)))
		return err
	}
	return export.WriteSnapshotSVG(w, frame.Snapshot, cfg.Bounds(), svgScale, t)
}
