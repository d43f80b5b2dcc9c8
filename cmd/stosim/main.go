package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/stosim/internal/analysis"
	"github.com/san-kum/stosim/internal/config"
	"github.com/san-kum/stosim/internal/export"
	"github.com/san-kum/stosim/internal/models"
	"github.com/san-kum/stosim/internal/sde"
	"github.com/san-kum/stosim/internal/solve"
	"github.com/san-kum/stosim/internal/store"
	"github.com/san-kum/stosim/internal/viz"
)

var (
	dataDir   string
	dt        float64
	duration  float64
	seed      uint64
	algorithm string
	adaptive  bool
	abstol    float64
	reltol    float64
	saveEvery int
	initState []float64
	// Model parameters
	mu    float64
	sigma float64
	drift float64
	diff  float64
	theta float64
	mean  float64
	birth float64
	death float64
	// Config file and preset
	configFile string
	preset     string
	// Ensemble
	numPaths int
	// Live view
	frameRate int
	component int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stosim",
		Short: "stochastic differential equation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".stosim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate one sample path",
		Args:  cobra.ExactArgs(1),
		RunE:  runPath,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
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
		Use:   "export-svg [run_id] [file]",
		Short: "render the sample path to an SVG file",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "benchmark solver throughput",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "integrate and replay the path live",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&component, "component", 0, "state component to draw")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [model]",
		Short: "integrate many independent paths",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnsemble,
	}
	addRunFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numPaths, "paths", 100, "number of sample paths")

	convergeCmd := &cobra.Command{
		Use:   "converge [model] [algorithm1] [algorithm2] ...",
		Short: "estimate strong convergence order against the exact solution",
		Args:  cobra.MinimumNArgs(2),
		RunE:  convergeStudy,
	}
	convergeCmd.Flags().Float64Var(&duration, "time", 1.0, "duration")
	convergeCmd.Flags().IntVar(&numPaths, "paths", 200, "paths per step size")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, benchCmd, liveCmd, ensembleCmd, convergeCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep (0 = automatic)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	cmd.Flags().StringVar(&algorithm, "algorithm", "SRIW1Optimized", "stepping scheme")
	cmd.Flags().BoolVar(&adaptive, "adaptive", false, "adaptive step size control")
	cmd.Flags().Float64Var(&abstol, "abstol", config.DefaultAbstol, "absolute tolerance")
	cmd.Flags().Float64Var(&reltol, "reltol", config.DefaultReltol, "relative tolerance")
	cmd.Flags().IntVar(&saveEvery, "save-every", 1, "retain every n-th step")
	cmd.Flags().Float64SliceVar(&initState, "init", nil, "initial state")
	cmd.Flags().Float64Var(&mu, "mu", config.DefaultMu, "gbm drift rate")
	cmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "noise intensity")
	cmd.Flags().Float64Var(&drift, "a", 1.0, "additive drift")
	cmd.Flags().Float64Var(&diff, "b", 0.25, "additive diffusion")
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "ou reversion rate")
	cmd.Flags().Float64Var(&mean, "mean", 0.0, "ou long-run mean")
	cmd.Flags().Float64Var(&birth, "birth", config.DefaultBirth, "birth rate")
	cmd.Flags().Float64Var(&death, "death", config.DefaultDeath, "per-capita death rate")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig folds preset, config file, and CLI flags into one run
// configuration. Flags set explicitly on the command line win.
func resolveConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
		cfg.Model = model
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("algorithm") {
		cfg.Algorithm = algorithm
	}
	if cmd.Flags().Changed("adaptive") {
		cfg.Adaptive = adaptive
	}
	if cmd.Flags().Changed("abstol") {
		cfg.Abstol = abstol
	}
	if cmd.Flags().Changed("reltol") {
		cfg.Reltol = reltol
	}
	if cmd.Flags().Changed("save-every") {
		cfg.SaveEvery = saveEvery
	}
	if cmd.Flags().Changed("init") {
		cfg.InitState = initState
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("mu") {
		cfg.ModelParams.Mu = mu
	}
	if cmd.Flags().Changed("sigma") {
		cfg.ModelParams.Sigma = sigma
	}
	if cmd.Flags().Changed("a") {
		cfg.ModelParams.A = drift
	}
	if cmd.Flags().Changed("b") {
		cfg.ModelParams.B = diff
	}
	if cmd.Flags().Changed("theta") {
		cfg.ModelParams.Theta = theta
	}
	if cmd.Flags().Changed("mean") {
		cfg.ModelParams.Mean = mean
	}
	if cmd.Flags().Changed("birth") {
		cfg.ModelParams.Birth = birth
	}
	if cmd.Flags().Changed("death") {
		cfg.ModelParams.Death = death
	}

	return cfg, nil
}

func buildSystem(cfg *config.Config) (sde.System, error) {
	p := cfg.ModelParams
	switch cfg.Model {
	case "gbm":
		return models.NewGeometricBrownian(p.Mu, p.Sigma), nil
	case "additive":
		return models.NewAdditiveLinear(p.A, p.B), nil
	case "ou":
		return models.NewOrnsteinUhlenbeck(p.Theta, p.Mean, p.Sigma), nil
	case "birth_death":
		return models.NewBirthDeath(p.Birth, p.Death), nil
	default:
		return nil, fmt.Errorf("unknown model: %s (gbm, additive, ou, birth_death)", cfg.Model)
	}
}

func solveOptions(cfg *config.Config) *solve.Options {
	opts := solve.DefaultOptions()
	opts.Algorithm = solve.Algorithm(cfg.Algorithm)
	opts.Dt = cfg.Dt
	opts.Adaptive = cfg.Adaptive
	opts.Abstol = cfg.Abstol
	opts.Reltol = cfg.Reltol
	opts.Seed = cfg.Seed
	if cfg.SaveEvery > 0 {
		opts.TimeseriesSteps = cfg.SaveEvery
	}
	return opts
}

func solveOnce(cfg *config.Config) (sde.System, *solve.Solution, error) {
	sys, err := buildSystem(cfg)
	if err != nil {
		return nil, nil, err
	}
	sol, err := solve.Solve(sys, sde.State(cfg.GetInitState()), []float64{0, cfg.Duration}, solveOptions(cfg))
	return sys, sol, err
}

func runPath(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("integrating %s with %s...\n", cfg.Model, cfg.Algorithm)
	start := time.Now()

	sys, sol, err := solveOnce(cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	finalErr := sol.FinalError(sys)
	runID, err := st.Save(cfg.Model, cfg.Dt, cfg.Duration, cfg.Seed, cfg.Algorithm, cfg.Adaptive, math.Max(finalErr, 0), sol)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("accepted steps: %d\n", sol.AcceptedSteps)
	if sol.RejectedSteps > 0 {
		fmt.Printf("rejected steps: %d\n", sol.RejectedSteps)
	}
	fmt.Printf("final state: %v\n", []float64(sol.U))
	if finalErr >= 0 {
		fmt.Printf("pathwise error: %.3e\n", finalErr)
	}

	if len(sol.Timeseries) > 1 {
		values := make([]float64, len(sol.Timeseries))
		for i, p := range sol.Timeseries {
			values[i] = p.U[0]
		}
		fmt.Println()
		fmt.Println(viz.PathPlot(values, fmt.Sprintf("%s sample path (u0)", cfg.Model)))
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tALGORITHM\tSTEPS")

	for _, run := range runs {
		dtLabel := "auto"
		if run.Dt > 0 {
			dtLabel = fmt.Sprintf("%.2g", run.Dt)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%s\t%s\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			dtLabel,
			run.Algorithm,
			run.Accepted,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, states, noises, err := st.LoadPath(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(states))

	numVars := len(states[0])
	if numVars > 6 {
		numVars = 6
	}

	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][varIdx]
		}
		fmt.Println(viz.PathPlot(data, fmt.Sprintf("u%d vs time", varIdx)))
		fmt.Println()
	}

	wData := make([]float64, len(noises))
	for i := range noises {
		wData[i] = noises[i][0]
	}
	fmt.Println(viz.PathPlot(wData, "driving Wiener path (w0)"))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	times, states, noises, err := st.LoadPath(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("u%d", i))
	}
	for i := range noises[0] {
		header = append(header, fmt.Sprintf("w%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'g', -1, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		for _, val := range noises[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// exportJSON rebuilds a Solution from the run directory and prints it
// in the export format.
func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	times, states, noises, err := st.LoadPath(args[0])
	if err != nil {
		return err
	}

	sol := &solve.Solution{
		Algorithm:     solve.Algorithm(meta.Algorithm),
		AcceptedSteps: meta.Accepted,
		RejectedSteps: meta.Rejected,
	}
	for i := range times {
		sol.Timeseries = append(sol.Timeseries, solve.Point{
			T: times[i],
			U: sde.State(states[i]),
			W: sde.State(noises[i]),
		})
	}
	if n := len(sol.Timeseries); n > 0 {
		last := sol.Timeseries[n-1]
		sol.U0 = sol.Timeseries[0].U
		sol.T0 = sol.Timeseries[0].T
		sol.T, sol.U, sol.W = last.T, last.U, last.W
	}

	return store.ExportJSONStdout(meta.Model, meta.Dt, meta.Duration, meta.Adaptive, sol)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	times, states, _, err := st.LoadPath(args[0])
	if err != nil {
		return err
	}
	if len(states) < 2 {
		return fmt.Errorf("not enough data to render")
	}

	values := make([]float64, len(states))
	for i := range states {
		values[i] = states[i][0]
	}

	svg := export.PathSVG(times, values, 960, 480, fmt.Sprintf("%s · %s", meta.Model, meta.Algorithm))
	if err := os.WriteFile(args[1], []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[1])
	return nil
}

func benchModel(cmd *cobra.Command, args []string) error {
	model := args[0]

	durations := []float64{1.0, 5.0}
	dts := []float64{0.0001, 0.001, 0.01}
	algorithms := []string{"EM", "RKMil", "SRIW1Optimized"}
	if model == "additive" {
		algorithms = []string{"EM", "SRA1Optimized"}
	}
	if model == "birth_death" {
		algorithms = []string{"EM", "TauLeaping"}
	}

	fmt.Printf("benchmarking %s\n\n", model)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tDURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, alg := range algorithms {
		for _, dur := range durations {
			for _, step := range dts {
				cfg := config.DefaultConfig()
				cfg.Model = model
				cfg.Algorithm = alg
				cfg.Dt = step
				cfg.Duration = dur
				cfg.SaveEvery = 0

				sys, err := buildSystem(cfg)
				if err != nil {
					return err
				}
				opts := solveOptions(cfg)
				opts.SaveTimeseries = false

				start := time.Now()
				sol, err := solve.Solve(sys, sde.State(cfg.GetInitState()), []float64{0, dur}, opts)
				if err != nil {
					return err
				}
				elapsed := time.Since(start)

				stepsPerSec := float64(sol.AcceptedSteps) / elapsed.Seconds()
				fmt.Fprintf(w, "%s\t%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
					alg, dur, step, sol.AcceptedSteps, elapsed, stepsPerSec)
			}
		}
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	_, sol, err := solveOnce(cfg)
	if err != nil {
		return err
	}
	if len(sol.Timeseries) == 0 {
		return fmt.Errorf("nothing to replay: timeseries retention is off")
	}

	m := viz.NewModel(sol, cfg.Model, component, frameRate)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("integrating %d paths of %s...\n", numPaths, cfg.Model)
	start := time.Now()

	ens := solve.NewEnsemble(numPaths, cfg.Seed)
	sols, err := ens.Run(sys, sde.State(cfg.GetInitState()), []float64{0, cfg.Duration}, solveOptions(cfg))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	meanFinal, stdFinal := analysis.FinalMoments(sols, 0)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("final mean:   %.6f\n", meanFinal)
	fmt.Printf("final stddev: %.6f\n", stdFinal)
	if strong := analysis.StrongError(sols, sys); strong >= 0 {
		fmt.Printf("strong error: %.3e\n", strong)
	}
	if weak := analysis.WeakError(sols, sys, 0); weak >= 0 {
		fmt.Printf("weak error:   %.3e\n", weak)
	}

	// Overlay a handful of paths plus the ensemble mean
	overlay := len(sols)
	if overlay > 5 {
		overlay = 5
	}
	series := make([][]float64, 0, overlay+1)
	for _, s := range sols[:overlay] {
		vals := make([]float64, len(s.Timeseries))
		for i, p := range s.Timeseries {
			vals[i] = p.U[0]
		}
		series = append(series, vals)
	}
	if meanPath := analysis.MeanPath(sols, 0); len(meanPath) > 1 {
		series = append(series, meanPath)
	}
	if len(series) > 0 && len(series[0]) > 1 {
		fmt.Println()
		fmt.Println(viz.ComparePlot(series, "sample paths and ensemble mean (u0)"))
	}

	return nil
}

func convergeStudy(cmd *cobra.Command, args []string) error {
	model := args[0]
	algorithms := args[1:]

	dts := []float64{1.0 / 16, 1.0 / 32, 1.0 / 64, 1.0 / 128}

	cfg := config.DefaultConfig()
	cfg.Model = model
	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}
	if _, ok := sys.(sde.Analytic); !ok {
		return fmt.Errorf("model %s has no closed-form solution to compare against", model)
	}
	u0 := sde.State(cfg.GetInitState())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tDT\tRMS ERROR\tORDER")

	for _, alg := range algorithms {
		prevErr := 0.0
		for i, step := range dts {
			opts := solve.DefaultOptions()
			opts.Algorithm = solve.Algorithm(alg)
			opts.Dt = step
			opts.SaveTimeseries = false

			ens := solve.NewEnsemble(numPaths, 1000)
			sols, err := ens.Run(sys, u0, []float64{0, duration}, opts)
			if err != nil {
				return err
			}

			sum := 0.0
			for _, s := range sols {
				e := s.FinalError(sys)
				sum += e * e
			}
			rms := math.Sqrt(sum / float64(len(sols)))

			order := ""
			if i > 0 && rms > 0 {
				order = fmt.Sprintf("%.2f", math.Log2(prevErr/rms))
			}
			fmt.Fprintf(w, "%s\t%.5f\t%.3e\t%s\n", alg, step, rms, order)
			prevErr = rms
		}
	}

	return w.Flush()
}
