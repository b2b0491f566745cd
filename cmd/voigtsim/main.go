package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/voigtsim/internal/chart"
	"github.com/san-kum/voigtsim/internal/config"
	"github.com/san-kum/voigtsim/internal/metrics"
	"github.com/san-kum/voigtsim/internal/report"
	"github.com/san-kum/voigtsim/internal/sim"
	"github.com/san-kum/voigtsim/internal/sweep"
	"github.com/san-kum/voigtsim/internal/viz"
	"github.com/san-kum/voigtsim/internal/voigt"
)

var (
	configFile string
	preset     string
	verbose    bool

	// material parameters
	l0        float64
	modulus   float64
	force     float64
	volume    float64
	viscosity float64

	// time grid
	dt       float64
	duration float64
	workers  int

	// output
	chartPath    string
	compareChart string
	noTerminal   bool
	width        int
	height       int
	format       string
	stream       bool
	theme        string
	outPath      string

	// sweep
	sweepFile  string
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	sweepChart string
)

var logger = log.New(io.Discard, "voigtsim: ", log.Ltime|log.Lmicroseconds)

// main registers commands and flags and executes the root command, which
// runs the default simulation when no subcommand is given. It exits with
// status 1 if the command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "voigtsim",
		Short:         "viscoelastic string (Voigt model) under constant force",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetOutput(os.Stderr)
			}
		},
		RunE: runSimulation,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVar(&verbose, "verbose", false, "log progress to stderr")
	pf.Float64Var(&l0, "l0", config.DefaultL0, "initial length (m)")
	pf.Float64Var(&modulus, "e", config.DefaultE, "Young's modulus (Pa)")
	pf.Float64Var(&force, "f", config.DefaultF, "applied force (N)")
	pf.Float64Var(&volume, "v", config.DefaultV, "volume (m^3)")
	pf.Float64Var(&viscosity, "eta", config.DefaultEta, "viscosity coefficient (Pa·s)")
	pf.Float64Var(&dt, "dt", sim.DefaultDt, "timestep (s)")
	pf.Float64Var(&duration, "time", sim.DefaultDuration, "duration (s)")

	addRunFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "print length at whole seconds and plot it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "terminal line chart of length vs time",
		Args:  cobra.NoArgs,
		RunE:  plotTerminal,
	}
	plotCmd.Flags().IntVar(&width, "width", 80, "chart width (columns)")
	plotCmd.Flags().IntVar(&height, "height", 15, "chart height (rows)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "replay the trajectory in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export the trajectory to stdout",
		Args:  cobra.NoArgs,
		RunE:  exportSeries,
	}
	exportCmd.Flags().StringVar(&format, "format", "csv", "output format (csv, json)")
	exportCmd.Flags().BoolVar(&stream, "stream", false, "evaluate while writing (csv only)")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [preset] ...",
		Short: "compare presets on the same time grid",
		Args:  cobra.MinimumNArgs(2),
		RunE:  comparePresets,
	}
	compareCmd.Flags().StringVar(&compareChart, "chart", "", "overlay chart path (png, svg, pdf)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE:  dumpConfig,
	}
	configCmd.Flags().StringVarP(&outPath, "out", "o", "", "write to file instead of stdout")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one material parameter and tabulate the outcome",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepFile, "file", "", "sweep definition (yaml); flags below are ignored")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "f", fmt.Sprintf("parameter to vary %v", sweep.ParamNames()))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 50, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 500, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")
	sweepCmd.Flags().StringVar(&sweepChart, "chart", "", "overlay chart path (png, svg, pdf)")

	rootCmd.AddCommand(runCmd, plotCmd, liveCmd, exportCmd, compareCmd, sweepCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&chartPath, "chart", config.DefaultChartOutput, "chart image path (png, svg, pdf); empty to skip")
	cmd.Flags().BoolVar(&noTerminal, "no-terminal", false, "skip the terminal chart")
	cmd.Flags().IntVar(&workers, "workers", 1, "parallel evaluation workers (0 = all cpus)")
}

// loadConfig layers defaults, preset, config file and explicit flags, in
// that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		logger.Printf("preset %s", preset)
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Printf("config %s", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("l0") {
		cfg.Material.L0 = l0
	}
	if flags.Changed("e") {
		cfg.Material.E = modulus
	}
	if flags.Changed("f") {
		cfg.Material.F = force
	}
	if flags.Changed("v") {
		cfg.Material.V = volume
	}
	if flags.Changed("eta") {
		cfg.Material.Eta = viscosity
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("chart") {
		cfg.Chart.Output = chartPath
	}
	if flags.Changed("no-terminal") {
		cfg.Chart.Terminal = !noTerminal
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func simulate(cfg *config.Config) (*sim.Series, error) {
	simCfg := cfg.SimConfig()
	start := time.Now()

	var (
		series *sim.Series
		err    error
	)
	if workers == 1 {
		series, err = sim.Simulate(cfg.Material, simCfg)
	} else {
		series, err = sim.SimulateParallel(cfg.Material, simCfg, workers)
	}
	if err != nil {
		return nil, err
	}

	logger.Printf("simulated %d samples (dt=%g, t_max=%g) in %v", series.Len(), simCfg.Dt, simCfg.Duration, time.Since(start))
	return series, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	series, err := simulate(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := report.WriteTable(out, series); err != nil {
		return err
	}
	fmt.Fprintln(out)
	if err := report.WriteSummary(out, viz.DefaultStyles(), cfg.Material, series); err != nil {
		return err
	}

	if cfg.Chart.Terminal {
		graph, err := chart.Terminal(series, chart.Options{Title: cfg.Chart.Title})
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
	}

	if cfg.Chart.Output != "" {
		opts := chart.Options{Title: cfg.Chart.Title, Width: cfg.Chart.Width, Height: cfg.Chart.Height}
		if err := chart.Save(cfg.Chart.Output, opts, chart.Line{Series: series}); err != nil {
			return err
		}
		logger.Printf("chart written to %s", cfg.Chart.Output)
		fmt.Fprintf(out, "\nchart: %s\n", cfg.Chart.Output)
	}

	return nil
}

func plotTerminal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	series, err := simulate(cfg)
	if err != nil {
		return err
	}

	graph, err := chart.Terminal(series, chart.Options{
		Title:  cfg.Chart.Title,
		Width:  float64(width),
		Height: float64(height),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), graph)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	th, ok := viz.ThemeByName(theme)
	if !ok {
		return fmt.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	series, err := simulate(cfg)
	if err != nil {
		return err
	}

	return viz.RunReplay(viz.NewReplay(cfg.Material, series, cfg.Chart.Title, th))
}

func exportSeries(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch format {
	case "csv":
		if stream {
			return report.StreamCSV(out, cfg.Material, cfg.SimConfig())
		}
		series, err := simulate(cfg)
		if err != nil {
			return err
		}
		return report.WriteCSV(out, series)
	case "json":
		if stream {
			return errors.New("--stream is only supported for csv")
		}
		series, err := simulate(cfg)
		if err != nil {
			return err
		}
		return report.WriteJSON(out, cfg.Material, cfg.SimConfig(), series)
	default:
		return fmt.Errorf("unknown format: %s (available: csv, json)", format)
	}
}

func comparePresets(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	params := make([]voigt.Params, len(args))
	for i, name := range args {
		p := config.GetPreset(name)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		params[i] = p.Material
	}

	results, err := sim.SimulateAll(params, base.SimConfig())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing presets (dt=%.4f, duration=%.1fs)\n\n", base.Dt, base.Duration)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tREGIME\tALPHA\tTAU\tSETTLE\tSTRAIN\tFINAL\tTRAJECTORY")
	for i, name := range args {
		p := params[i]
		tau := "-"
		if tc, err := p.TimeConstant(); err == nil {
			tau = fmt.Sprintf("%.4gs", tc)
		}
		values := metrics.Collect(results[i], metrics.Defaults(p)...)
		settle := "-"
		if st, ok := values["settling_time"]; ok && !math.IsInf(st, 1) {
			settle = fmt.Sprintf("%.3fs", st)
		}
		_, final, _ := results[i].Final()
		fmt.Fprintf(w, "%s\t%s\t%.4g\t%s\t%s\t%.4g\t%.6f\t%s\n",
			name,
			p.Regime(),
			p.Alpha(),
			tau,
			settle,
			values["strain"],
			final,
			viz.Sparkline(results[i].Lengths, 24),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if compareChart != "" {
		lines := make([]chart.Line, len(args))
		for i, name := range args {
			lines[i] = chart.Line{Name: name, Series: results[i]}
		}
		opts := chart.Options{Title: "Voigt presets: length vs time", Width: base.Chart.Width, Height: base.Chart.Height}
		if err := chart.Save(compareChart, opts, lines...); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nchart: %s\n", compareChart)
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	var s sweep.Sweep
	if sweepFile != "" {
		loaded, err := sweep.Load(sweepFile)
		if err != nil {
			return fmt.Errorf("failed to load sweep: %w", err)
		}
		s = *loaded
	} else {
		base, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s = sweep.Sweep{
			Param: sweepParam,
			Min:   sweepMin,
			Max:   sweepMax,
			Steps: sweepSteps,
			Base:  base.Material,
			Sim:   base.SimConfig(),
		}
	}

	start := time.Now()
	points, err := sweep.Run(context.Background(), s)
	if err != nil {
		return err
	}
	logger.Printf("swept %s over %d values in %v", s.Param, len(points), time.Since(start))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "sweeping %s from %g to %g (dt=%.4f, duration=%.1fs)\n\n", s.Param, s.Min, s.Max, s.Sim.Dt, s.Sim.Duration)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tREGIME\tALPHA\tSETTLE\tSTRAIN\tFINAL\n", s.Param)
	for _, pt := range points {
		if pt.Err != nil {
			fmt.Fprintf(w, "%g\t%s\t%.4g\t-\t-\t%v\n", pt.Value, pt.Params.Regime(), pt.Params.Alpha(), pt.Err)
			continue
		}
		settle := "-"
		if st, ok := pt.Metrics["settling_time"]; ok && !math.IsInf(st, 1) {
			settle = fmt.Sprintf("%.3fs", st)
		}
		_, final, _ := pt.Series.Final()
		fmt.Fprintf(w, "%g\t%s\t%.4g\t%s\t%.4g\t%.6f\n", pt.Value, pt.Params.Regime(), pt.Params.Alpha(), settle, pt.Metrics["strain"], final)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if sweepChart != "" {
		ok := sweep.Succeeded(points)
		lines := make([]chart.Line, len(ok))
		for i, pt := range ok {
			lines[i] = chart.Line{Name: fmt.Sprintf("%s=%g", s.Param, pt.Value), Series: pt.Series}
		}
		title := fmt.Sprintf("Voigt sweep over %s: length vs time", s.Param)
		if err := chart.Save(sweepChart, chart.Options{Title: title}, lines...); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nchart: %s\n", sweepChart)
	}

	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tREGIME\tDT\tDURATION\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%s\t%.3fs\t%.1fs\t%s\n", name, p.Material.Regime(), p.Dt, p.Duration, p.Description)
	}
	return w.Flush()
}

func dumpConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if outPath != "" {
		if err := config.Save(outPath, cfg); err != nil {
			return err
		}
		logger.Printf("config written to %s", outPath)
		return nil
	}
	return config.Write(cmd.OutOrStdout(), cfg)
}

// printError reports err on w. Degenerate parameter sets get the values
// that caused them and a hint.
func printError(w io.Writer, err error) {
	st := viz.DefaultStyles()

	var degErr *voigt.DegenerateParametersError
	if errors.As(err, &degErr) {
		p := degErr.Params
		fmt.Fprintln(w, st.Error.Render("error: degenerate parameters, the closed-form solution is undefined"))
		fmt.Fprintln(w, st.Row("F/V", fmt.Sprintf("%g / %g = %g", p.F, p.V, p.F/p.V)))
		fmt.Fprintln(w, st.Row("E/L0", fmt.Sprintf("%g / %g = %g", p.E, p.L0, p.E/p.L0)))
		fmt.Fprintln(w, st.Row("Parameters", p.String()))
		fmt.Fprintln(w, st.Muted.Render("change --f, --v, --e or --l0 so that F/V differs from E/L0"))
		return
	}

	fmt.Fprintln(w, st.Error.Render("error: "+err.Error()))
}
