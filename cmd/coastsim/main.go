package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/coastsim/internal/analysis"
	"github.com/san-kum/coastsim/internal/bmi"
	"github.com/san-kum/coastsim/internal/config"
	"github.com/san-kum/coastsim/internal/coupler"
	"github.com/san-kum/coastsim/internal/engines/coastline"
	"github.com/san-kum/coastsim/internal/engines/waves"
	"github.com/san-kum/coastsim/internal/experiment"
	"github.com/san-kum/coastsim/internal/metrics"
	"github.com/san-kum/coastsim/internal/registry"
	"github.com/san-kum/coastsim/internal/store"
	"github.com/san-kum/coastsim/internal/tui"
	"github.com/san-kum/coastsim/internal/viz"
)

var (
	dataDir   string
	rows      int
	cols      int
	spacing   float64
	slope     float64
	closure   float64
	transport float64
	asymmetry float64
	highness  float64
	height    float64
	period    float64
	steps     int
	seed      int64
	// Recording
	recordEvery int
	showMap     bool
	outPath     string
	// Config file
	configFile string
	// Preset name
	preset string
	// Frame rate for live view
	frameRate int
	// Ensemble
	numRuns int
	// Climate sampling
	samples int
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coastsim",
		Short: "coupled wave-coastline evolution lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".coastsim", "data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run coupled simulation",
		RunE:  runCoupled,
	}
	addRunFlags(runCmd)
	runCmd.Flags().IntVar(&recordEvery, "record-every", 10, "record shoreline every N steps")
	runCmd.Flags().BoolVar(&showMap, "map", false, "render the final depth field")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run coupled simulation with live visualization",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	inspectCmd := &cobra.Command{
		Use:   "inspect [model]",
		Short: "show a model's exchange variables and grids",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectModel,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range experiment.NewRegistry().ListEngines() {
				fmt.Println(name)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's final shoreline",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "alongshore spectrum of the final shoreline",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "write to file instead of stdout")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export shoreline profiles to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	climateCmd := &cobra.Command{
		Use:   "climate",
		Short: "sample the wave climate and plot the angle histogram",
		RunE:  sampleClimate,
	}
	climateCmd.Flags().Float64Var(&asymmetry, "asymmetry", config.DefaultAsymmetry, "wave approach asymmetry [-1, 1]")
	climateCmd.Flags().Float64Var(&highness, "highness", config.DefaultHighness, "high-angle wave fraction [0, 1]")
	climateCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	climateCmd.Flags().IntVar(&samples, "samples", 2000, "number of angle samples")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "parallel runs over a seed range",
		RunE:  runEnsemble,
	}
	addRunFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 4, "number of realizations")

	rootCmd.AddCommand(runCmd, liveCmd, inspectCmd, modelsCmd, presetsCmd, listCmd,
		plotCmd, analyzeCmd, exportJSONCmd, exportCSVCmd, climateCmd, ensembleCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "cross-shore cells")
	cmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "alongshore cells")
	cmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "cell spacing (m)")
	cmd.Flags().Float64Var(&slope, "slope", 0, "shelf slope (0 = model default)")
	cmd.Flags().Float64Var(&closure, "closure", 0, "closure depth (m, 0 = model default)")
	cmd.Flags().Float64Var(&transport, "transport", 0, "transport coefficient (0 = model default)")
	cmd.Flags().Float64Var(&asymmetry, "asymmetry", config.DefaultAsymmetry, "wave approach asymmetry [-1, 1]")
	cmd.Flags().Float64Var(&highness, "highness", config.DefaultHighness, "high-angle wave fraction [0, 1]")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "wave height (m)")
	cmd.Flags().Float64Var(&period, "period", config.DefaultPeriod, "wave period (s)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "coupling steps")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves the run configuration: preset first, then config file,
// with explicitly set CLI flags overriding both.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

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

	if cmd.Flags().Changed("rows") {
		cfg.Coastline.Rows = rows
	}
	if cmd.Flags().Changed("cols") {
		cfg.Coastline.Cols = cols
	}
	if cmd.Flags().Changed("spacing") {
		cfg.Coastline.Spacing = spacing
	}
	if cmd.Flags().Changed("slope") {
		cfg.Coastline.ShelfSlope = slope
	}
	if cmd.Flags().Changed("closure") {
		cfg.Coastline.ClosureDepth = closure
	}
	if cmd.Flags().Changed("transport") {
		cfg.Coastline.Transport = transport
	}
	if cmd.Flags().Changed("asymmetry") {
		cfg.Waves.Asymmetry = asymmetry
	}
	if cmd.Flags().Changed("highness") {
		cfg.Waves.Highness = highness
	}
	if cmd.Flags().Changed("height") {
		cfg.Waves.Height = height
	}
	if cmd.Flags().Changed("period") {
		cfg.Waves.Period = period
	}
	if cmd.Flags().Changed("steps") {
		cfg.Run.Steps = steps
	}
	if cmd.Flags().Changed("seed") {
		cfg.Waves.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func runCoupled(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	run, err := experiment.NewCoupled(cfg)
	if err != nil {
		return err
	}
	run.Driver.SetLogger(newLogger())

	recorder := metrics.NewProfileRecorder(run.Coast, coastline.VarShoreline, recordEvery)
	run.Driver.AddObserver(recorder)

	fmt.Printf("running %dx%d coast for %d steps...\n", cfg.Coastline.Rows, cfg.Coastline.Cols, cfg.Run.Steps)
	start := time.Now()

	result, err := run.Driver.Run(context.Background(), cfg.Run.Steps)
	if err != nil {
		return err
	}

	var depth []float64
	if showMap {
		if depth, err = run.Coast.GetValue(coastline.VarDepth, nil); err != nil {
			return err
		}
	}

	if err := run.Driver.Finalize(); err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result, recorder.Times, recorder.Profiles)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n\n", result.StepsTaken)
	fmt.Println(viz.SummaryTable(result.Probes))

	if n := len(recorder.Profiles); n > 0 {
		fmt.Println(viz.PlotProfile(recorder.Profiles[n-1], cfg.Coastline.Spacing, 12))
	}
	if showMap {
		fmt.Println(viz.DepthMap(depth, cfg.Coastline.Rows, cfg.Coastline.Cols, 20, 80))
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	run, err := experiment.NewCoupled(cfg)
	if err != nil {
		return err
	}
	run.Driver.SetLogger(newLogger())

	p := tea.NewProgram(tui.NewModel(run, frameRate), tea.WithAltScreen())
	_, err = p.Run()
	if ferr := run.Driver.Finalize(); err == nil {
		err = ferr
	}
	return err
}

func inspectModel(cmd *cobra.Command, args []string) error {
	eng, err := experiment.NewRegistry().GetEngine(args[0])
	if err != nil {
		return err
	}

	h := bmi.Open(eng)
	if err := h.Initialize(nil); err != nil {
		return err
	}
	defer h.Finalize()

	reg := registry.New(h)

	fmt.Printf("model: %s\n\n", h.Name())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIABLE\tROLE\tUNITS\tDTYPE\tGRID")
	printVars := func(names []string, role string) error {
		for _, name := range names {
			units, err := reg.UnitsOf(name)
			if err != nil {
				return err
			}
			dtype, err := reg.DTypeOf(name)
			if err != nil {
				return err
			}
			gid, err := reg.GridIDOf(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", name, role, units, dtype, gid)
		}
		return nil
	}
	if err := printVars(reg.InputNames(), "in"); err != nil {
		return err
	}
	if err := printVars(reg.OutputNames(), "out"); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tTYPE\tSHAPE\tSPACING\tORIGIN")
	seen := map[int]bool{}
	for _, name := range h.VarNames() {
		gid, err := reg.GridIDOf(name)
		if err != nil {
			return err
		}
		if seen[gid] {
			continue
		}
		seen[gid] = true

		gtype, err := reg.GridTypeOf(gid)
		if err != nil {
			return err
		}
		shape, err := reg.ShapeOf(gid)
		if err != nil {
			return err
		}
		sp, err := reg.SpacingOf(gid)
		if err != nil {
			return err
		}
		origin, err := reg.OriginOf(gid)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%s\t%v\t%v\t%v\n", gid, gtype, shape, sp, origin)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tTIME\tGRID\tASYM\tHIGH\tSTEPS\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%.2f\t%.2f\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows,
			run.Cols,
			run.Asymmetry,
			run.Highness,
			run.Steps,
			run.Seed,
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

	profiles, times, err := st.LoadProfiles(runID)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d at %.0f m\n", meta.Rows, meta.Cols, meta.Spacing)
	fmt.Printf("snapshots: %d (t = %.0f .. %.0f)\n\n", len(profiles), times[0], times[len(times)-1])

	fmt.Println(viz.PlotProfile(profiles[len(profiles)-1], meta.Spacing, 14))
	fmt.Println()
	fmt.Println(viz.SummaryTable(meta.Probes))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	profiles, _, err := st.LoadProfiles(runID)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return fmt.Errorf("no data")
	}

	final := profiles[len(profiles)-1]
	wavelength := analysis.DominantWavelength(final, meta.Spacing)

	fmt.Printf("alongshore analysis: %s\n\n", meta.ID)
	if wavelength > 0 {
		fmt.Printf("dominant wavelength: %.0f m (%.1f cells)\n", wavelength, wavelength/meta.Spacing)
	} else {
		fmt.Println("no dominant wavelength (shoreline is flat)")
	}

	demeaned := make([]float64, len(final))
	mean := 0.0
	for _, y := range final {
		mean += y
	}
	mean /= float64(len(final))
	for i, y := range final {
		demeaned[i] = y - mean
	}
	ps := analysis.PowerSpectrum(demeaned)
	fmt.Println()
	fmt.Println(viz.PlotProfile(ps, 1, 10))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	profiles, times, err := st.LoadProfiles(runID)
	if err != nil {
		return err
	}
	if outPath != "" {
		return store.ExportJSON(outPath, meta, times, profiles)
	}
	return store.ExportJSONTo(os.Stdout, meta, times, profiles)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	profiles, times, err := st.LoadProfiles(runID)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return fmt.Errorf("no data")
	}

	w := csv.NewWriter(os.Stdout)
	header := make([]string, 1+len(profiles[0]))
	header[0] = "time"
	for i := range profiles[0] {
		header[i+1] = "y" + strconv.Itoa(i)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, profile := range profiles {
		row[0] = strconv.FormatFloat(times[i], 'f', -1, 64)
		for j, y := range profile {
			row[j+1] = strconv.FormatFloat(y, 'f', 4, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func sampleClimate(cmd *cobra.Command, args []string) error {
	h := bmi.Open(waves.New())
	err := h.Initialize(bmi.Config{
		"angle_asymmetry":       asymmetry,
		"angle_highness_factor": highness,
		"seed":                  float64(seed),
	})
	if err != nil {
		return err
	}
	defer h.Finalize()

	angles := make([]float64, 0, samples)
	var buf []float64
	for i := 0; i < samples; i++ {
		if err := h.Update(); err != nil {
			return err
		}
		buf, err = h.GetValue(waves.VarAngle, buf)
		if err != nil {
			return err
		}
		angles = append(angles, buf[0])
	}

	fmt.Printf("wave angle distribution (asymmetry=%.2f highness=%.2f, %d samples)\n\n",
		asymmetry, highness, samples)
	fmt.Println(viz.PlotHistogram(angles, 18))
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns < 1 {
		return fmt.Errorf("runs must be positive")
	}

	factory := func(s int64) (*coupler.Driver, int, error) {
		c := *cfg
		c.Waves.Seed = s
		run, err := experiment.NewCoupled(&c)
		if err != nil {
			return nil, 0, err
		}
		return run.Driver, c.Run.Steps, nil
	}

	fmt.Printf("running %d realizations, seeds %d..%d...\n",
		numRuns, cfg.Waves.Seed, cfg.Waves.Seed+int64(numRuns)-1)
	start := time.Now()

	ens := coupler.NewEnsemble(factory, numRuns, cfg.Waves.Seed)
	results, err := ens.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSTEPS\tEXCURSION\tENERGY FLUX")
	sum := 0.0
	n := 0
	for i, res := range results {
		exc := res.Probes["shoreline_excursion"]
		flux := res.Probes["wave_energy_flux"]
		fmt.Fprintf(w, "%d\t%d\t%.2f\t%.2f\n", cfg.Waves.Seed+int64(i), res.StepsTaken, exc, flux)
		if !math.IsNaN(exc) {
			sum += exc
			n++
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if n > 0 {
		fmt.Printf("\nmean excursion: %.2f m\n", sum/float64(n))
	}
	return nil
}
