package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/nnkgw/long-range-attachments/internal/cloth"
	"github.com/nnkgw/long-range-attachments/internal/config"
	"github.com/nnkgw/long-range-attachments/internal/export"
	"github.com/nnkgw/long-range-attachments/internal/metrics"
	"github.com/nnkgw/long-range-attachments/internal/sim"
	"github.com/nnkgw/long-range-attachments/internal/storage"
	"github.com/nnkgw/long-range-attachments/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	gridWidth  int
	gridHeight int
	spacing    float64
	pinMode    string
	dt         float64
	ticks      int
	iterations int
	lra        bool
	slack      float64
	damping    float64
	gravity    float64

	svgOut    string
	svgWidth  int
	svgHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lracloth",
		Short: "position-based cloth with long range attachments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lracloth", "data directory")

	addSimFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
		cmd.Flags().IntVar(&gridWidth, "width", cloth.DefaultWidth, "grid width")
		cmd.Flags().IntVar(&gridHeight, "height", cloth.DefaultHeight, "grid height")
		cmd.Flags().Float64Var(&spacing, "spacing", cloth.DefaultSpacing, "particle spacing")
		cmd.Flags().StringVar(&pinMode, "pin", config.PinCorners, "pin mode (corners|top-row|origin)")
		cmd.Flags().Float64Var(&dt, "dt", cloth.DefaultDt, "timestep")
		cmd.Flags().IntVar(&ticks, "ticks", 600, "number of ticks")
		cmd.Flags().IntVar(&iterations, "iterations", cloth.DefaultIterations, "solver iterations per tick")
		cmd.Flags().BoolVar(&lra, "lra", true, "enable long range attachments")
		cmd.Flags().Float64Var(&slack, "slack", cloth.DefaultSlack, "LRA slack factor (>= 1)")
		cmd.Flags().Float64Var(&damping, "damping", cloth.DefaultDamping, "velocity damping")
		cmd.Flags().Float64Var(&gravity, "gravity", 9.8, "gravity magnitude")
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and record metrics",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run the same cloth with LRA on and off",
		RunE:  compareLRA,
	}
	addSimFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "simulate and write a cloth snapshot as SVG",
		RunE:  exportSVG,
	}
	addSimFlags(exportSVGCmd)
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "svg-width", 600, "SVG width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "svg-height", 600, "SVG height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark grid sizes and iteration counts",
		RunE:  benchCloth,
	}

	rootCmd.AddCommand(runCmd, liveCmd, compareCmd, listCmd, plotCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig merges preset, config file, and flags, with explicit flags
// winning over both.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
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

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = gridWidth
	}
	if flags.Changed("height") {
		cfg.Height = gridHeight
	}
	if flags.Changed("spacing") {
		cfg.Spacing = spacing
	}
	if flags.Changed("pin") {
		cfg.Pin = pinMode
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("iterations") {
		cfg.Iterations = iterations
	}
	if flags.Changed("lra") {
		cfg.LRA = lra
	}
	if flags.Changed("slack") {
		cfg.Slack = slack
	}
	if flags.Changed("damping") {
		cfg.Damping = damping
	}
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRunner(cfg *config.Config) *sim.Runner {
	r := sim.New(cloth.New(cfg.Grid()), cfg.StepParams())
	for _, m := range metrics.Default() {
		r.AddMetric(m)
	}
	return r
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := newRunner(cfg)

	fmt.Printf("running %dx%d cloth for %d ticks...\n", cfg.Width, cfg.Height, cfg.Ticks)
	start := time.Now()

	result, err := runner.Run(context.Background(), sim.Config{Ticks: cfg.Ticks})
	if err != nil {
		return err
	}

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	return viz.Run(newRunner(cfg))
}

func compareLRA(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	on := cfg.StepParams()
	on.LRA = true
	off := on
	off.LRA = false

	e := sim.NewEnsemble(cfg.Grid(), []sim.Variant{
		{Name: "lra", Params: on},
		{Name: "no-lra", Params: off},
	}, metrics.Default)

	results, err := e.Run(context.Background(), sim.Config{Ticks: cfg.Ticks})
	if err != nil {
		return err
	}

	fmt.Printf("comparing LRA on/off: %dx%d cloth, %d iterations, %d ticks\n\n",
		cfg.Width, cfg.Height, cfg.Iterations, cfg.Ticks)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tANCHOR_STRETCH\tEDGE_STRAIN\tENERGY")
	for _, name := range []string{"lra", "no-lra"} {
		r := results[name]
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\n",
			name,
			r.Metrics["anchor_stretch"],
			r.Metrics["edge_strain"],
			r.Metrics["energy"],
		)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tTIME\tGRID\tTICKS\tITERS\tLRA\tSLACK")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%d\t%t\t%.2f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Width, run.Config.Height,
			run.Ticks,
			run.Config.Iterations,
			run.Config.LRA,
			run.Config.Slack,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	names, _, rows, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("cloth: %dx%d, %d ticks\n\n", meta.Config.Width, meta.Config.Height, meta.Ticks)

	for col, name := range names {
		data := make([]float64, len(rows))
		for i := range rows {
			if col < len(rows[i]) {
				data[i] = rows[i][col]
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	names, times, rows, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(append([]string{"time"}, names...)); err != nil {
		return err
	}
	for i := range rows {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range rows[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	names, times, rows, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	result := &sim.Result{
		Times:    times,
		Series:   make(map[string][]float64),
		Metrics:  meta.Metrics,
		TicksRun: meta.Ticks,
	}
	for col, name := range names {
		series := make([]float64, len(rows))
		for i := range rows {
			if col < len(rows[i]) {
				series[i] = rows[i][col]
			}
		}
		result.Series[name] = series
	}

	return storage.ExportJSON(os.Stdout, meta.ID, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	runner := newRunner(cfg)
	if _, err := runner.Run(context.Background(), sim.Config{Ticks: cfg.Ticks}); err != nil {
		return err
	}

	svg := export.SnapshotSVG(runner.Cloth().Snapshot(), svgWidth, svgHeight)
	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func benchCloth(cmd *cobra.Command, args []string) error {
	sizes := []int{10, 20, 30, 50}
	iters := []int{1, 5, 10}
	const benchTicks = 300

	fmt.Println("benchmarking cloth step")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tITERS\tTICKS\tTIME\tTICKS/SEC")

	for _, size := range sizes {
		for _, n := range iters {
			c := cloth.New(cloth.Grid{Width: size, Height: size, Spacing: cloth.DefaultSpacing})
			p := cloth.DefaultStepParams()
			p.Iterations = n

			start := time.Now()
			for tick := 0; tick < benchTicks; tick++ {
				c.Step(p)
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\n",
				size, size, n, benchTicks, elapsed,
				float64(benchTicks)/elapsed.Seconds())
		}
	}
	return w.Flush()
}
