package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaoscope/internal/config"
	"github.com/san-kum/chaoscope/internal/pipeline"
	"github.com/san-kum/chaoscope/internal/rips"
	"github.com/san-kum/chaoscope/internal/series"
	"github.com/san-kum/chaoscope/internal/storage"
	"github.com/san-kum/chaoscope/internal/tui"
	"github.com/san-kum/chaoscope/internal/viz"
)

var (
	dataDir string
	length  int
	dt      float64
	seed    int64
	// lag selection
	maxLag int
	bins   int
	// embedding
	embedDim int
	// exponent estimation
	minDim   int
	maxDim   int
	radius   float64
	theiler  int
	maxSteps int
	fitLo    int
	fitHi    int
	// topology
	sampleSize int
	homDim     int
	maxScale   float64
	// config file / preset
	configFile string
	preset     string
	// plotting
	plotHeight int
	plotWidth  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chaoscope",
		Short: "attractor reconstruction and topological signature lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".chaoscope", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [source]",
		Short: "analyze a synthetic signal and save the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalysis,
	}
	addAnalysisFlags(runCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [source...]",
		Short: "analyze several sources concurrently",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runBatch,
	}
	addAnalysisFlags(batchCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's AMI and divergence curves plus barcode",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")

	attractorCmd := &cobra.Command{
		Use:   "attractor [run_id]",
		Short: "render the reconstructed attractor projection",
		Args:  cobra.ExactArgs(1),
		RunE:  plotAttractor,
	}
	attractorCmd.Flags().IntVar(&plotHeight, "height", 24, "canvas height")
	attractorCmd.Flags().IntVar(&plotWidth, "width", 80, "canvas width")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and diagram as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [run_id...]",
		Short: "compare exponents and diagrams across runs",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareRuns,
	}

	sourcesCmd := &cobra.Command{
		Use:   "sources",
		Short: "list synthetic signal sources",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range series.ListSources() {
				fmt.Println(name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [source]",
		Short: "list presets for a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if names == nil {
				return fmt.Errorf("no presets for source: %s", args[0])
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	exploreCmd := &cobra.Command{
		Use:   "explore [run_id]",
		Short: "interactive run explorer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Explore(storage.New(dataDir), args[0])
		},
	}

	rootCmd.AddCommand(runCmd, batchCmd, listCmd, plotCmd, attractorCmd,
		exportCmd, compareCmd, sourcesCmd, presetsCmd, exploreCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&length, "n", config.DefaultLength, "signal length")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "sampling period")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed (signal and subsample)")
	cmd.Flags().IntVar(&maxLag, "maxlag", config.DefaultMaxLag, "maximum candidate lag")
	cmd.Flags().IntVar(&bins, "bins", 0, "AMI histogram bins (0 = Sturges)")
	cmd.Flags().IntVar(&embedDim, "dim", config.DefaultEmbedDim, "embedding dimension")
	cmd.Flags().IntVar(&minDim, "mindim", config.DefaultMinDim, "min dimension for divergence averaging")
	cmd.Flags().IntVar(&maxDim, "maxdim", config.DefaultMaxDim, "max dimension for divergence averaging")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "neighbor search radius")
	cmd.Flags().IntVar(&theiler, "theiler", config.DefaultTheiler, "theiler exclusion window")
	cmd.Flags().IntVar(&maxSteps, "steps", config.DefaultMaxSteps, "divergence horizon steps")
	cmd.Flags().IntVar(&fitLo, "fitlo", config.DefaultFitLo, "regression window start")
	cmd.Flags().IntVar(&fitHi, "fithi", config.DefaultFitHi, "regression window end (inclusive)")
	cmd.Flags().IntVar(&sampleSize, "sample", config.DefaultSampleSize, "subsample size for topology")
	cmd.Flags().IntVar(&homDim, "homdim", config.DefaultHomology, "max homology dimension")
	cmd.Flags().Float64Var(&maxScale, "maxscale", config.DefaultMaxScale, "max filtration scale")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file and flags: presets and files
// provide the base, explicitly set flags win.
func resolveConfig(cmd *cobra.Command, source string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Source = source

	if preset != "" {
		p := config.GetPreset(source, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(source))
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		cfg.Source = source
	}

	if cmd.Flags().Changed("n") {
		cfg.Length = length
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("maxlag") {
		cfg.Analysis.MaxLag = maxLag
	}
	if cmd.Flags().Changed("bins") {
		cfg.Analysis.Bins = bins
	}
	if cmd.Flags().Changed("dim") {
		cfg.Analysis.EmbedDim = embedDim
	}
	if cmd.Flags().Changed("mindim") {
		cfg.Analysis.MinDim = minDim
	}
	if cmd.Flags().Changed("maxdim") {
		cfg.Analysis.MaxDim = maxDim
	}
	if cmd.Flags().Changed("radius") {
		cfg.Analysis.Radius = radius
	}
	if cmd.Flags().Changed("theiler") {
		cfg.Analysis.Theiler = theiler
	}
	if cmd.Flags().Changed("steps") {
		cfg.Analysis.MaxSteps = maxSteps
	}
	if cmd.Flags().Changed("fitlo") {
		cfg.Analysis.FitLo = fitLo
	}
	if cmd.Flags().Changed("fithi") {
		cfg.Analysis.FitHi = fitHi
	}
	if cmd.Flags().Changed("sample") {
		cfg.Analysis.SampleSize = sampleSize
	}
	if cmd.Flags().Changed("homdim") {
		cfg.Analysis.HomologyDim = homDim
	}
	if cmd.Flags().Changed("maxscale") {
		cfg.Analysis.MaxScale = maxScale
	}
	return cfg, nil
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	source := args[0]

	cfg, err := resolveConfig(cmd, source)
	if err != nil {
		return err
	}

	sig, err := series.Generate(source, cfg.Length, cfg.Dt, cfg.Seed)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := pipeline.Run(ctx, sig, cfg.ToPipeline())
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(source, sig, cfg.ToPipeline(), report)
	if err != nil {
		return err
	}

	printSummary(source, sig, report)
	fmt.Printf("\nsaved: %s\n", runID)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	sigs := make([]series.Signal, len(args))
	for i, source := range args {
		sig, err := series.Generate(source, cfg.Length, cfg.Dt, cfg.Seed)
		if err != nil {
			return err
		}
		sigs[i] = sig
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	results := pipeline.Batch(ctx, sigs, cfg.ToPipeline())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tTAU\tEXPONENT\tH0\tH1\tH2\tSTATUS")
	for i, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\t%v\n", args[i], res.Err)
			continue
		}
		r := res.Report
		finite, immortal := r.Diagram.Counts()
		status := "ok"
		if r.Degenerate {
			status = "degenerate"
		}
		runID, err := st.Save(args[i], sigs[i], cfg.ToPipeline(), r)
		if err == nil {
			status = status + " · " + runID
		}
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%d+%d\t%d+%d\t%d+%d\t%s\n",
			args[i], r.Tau, r.Exponent,
			finite[0], immortal[0], finite[1], immortal[1], finite[2], immortal[2],
			status)
	}
	return w.Flush()
}

func printSummary(source string, sig series.Signal, report *pipeline.Report) {
	verdict := viz.Regular.Render("regular (λ ≤ 0)")
	if report.Exponent > 0 {
		verdict = viz.Chaotic.Render("chaotic (λ > 0)")
	}

	fmt.Println(viz.Title.Render("chaoscope analysis"))
	fmt.Printf("%s %s, %d samples @ dt=%g\n", viz.Label.Render("signal:"),
		viz.Value.Render(source), sig.Len(), sig.Dt)
	fmt.Printf("%s %s\n", viz.Label.Render("selected lag:"),
		viz.Value.Render(fmt.Sprintf("τ = %d", report.Tau)))
	fmt.Printf("%s %s points in R^%d\n", viz.Label.Render("embedded cloud:"),
		viz.Value.Render(fmt.Sprintf("%d", len(report.Cloud))), report.Cloud.Dim())
	fmt.Printf("%s %s  %s\n", viz.Label.Render("max lyapunov:"),
		viz.Value.Render(fmt.Sprintf("%.4f", report.Exponent)), verdict)

	finite, immortal := report.Diagram.Counts()
	for dim := 0; dim <= rips.MaxHomologyDim; dim++ {
		if finite[dim] == 0 && immortal[dim] == 0 {
			continue
		}
		fmt.Printf("%s %d finite, %d immortal\n",
			viz.Label.Render(fmt.Sprintf("H%d:", dim)), finite[dim], immortal[dim])
	}
	if report.Degenerate {
		fmt.Println(viz.Regular.Render("degenerate filtration: no edges within max scale"))
	}
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
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tSAMPLES\tTAU\tEXPONENT\tPAIRS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.4f\t%d\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Length,
			run.Tau,
			run.Exponent,
			run.Pairs,
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

	ami, err := st.LoadCurve(runID, "ami.csv")
	if err != nil {
		return err
	}
	div, err := st.LoadCurve(runID, "divergence.csv")
	if err != nil {
		return err
	}
	diag, err := st.LoadDiagram(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\nsource: %s  τ=%d  λ=%.4f\n\n", meta.ID, meta.Source, meta.Tau, meta.Exponent)
	fmt.Println(viz.CurvePlot(ami, "average mutual information vs lag", plotHeight, plotWidth))
	fmt.Println()
	fmt.Println(viz.CurvePlot(div, "mean log divergence vs horizon", plotHeight, plotWidth))
	fmt.Println()
	fmt.Println(viz.Barcode(diag.Significant(0.01), plotWidth/2))
	return nil
}

func plotAttractor(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	pc, err := st.LoadCloud(runID)
	if err != nil {
		return err
	}
	if len(pc) == 0 {
		return fmt.Errorf("no points stored for run %s", runID)
	}

	fmt.Println(viz.AttractorASCII(pc, 0, 1, plotWidth, plotHeight))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	diag, err := st.LoadDiagram(runID)
	if err != nil {
		return err
	}
	diag.Sort()

	out := struct {
		Meta    *storage.RunMetadata `json:"metadata"`
		Diagram rips.Diagram         `json:"diagram"`
	}{meta, diag}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func compareRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTAU\tEXPONENT\tVERDICT\tH0\tH1\tH2")
	for _, runID := range args {
		meta, err := st.Load(runID)
		if err != nil {
			return err
		}
		diag, err := st.LoadDiagram(runID)
		if err != nil {
			return err
		}
		finite, immortal := diag.Counts()
		verdict := "regular"
		if meta.Exponent > 0 {
			verdict = "chaotic"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%s\t%d+%d\t%d+%d\t%d+%d\n",
			meta.ID, meta.Source, meta.Tau, meta.Exponent, verdict,
			finite[0], immortal[0], finite[1], immortal[1], finite[2], immortal[2])
	}
	return w.Flush()
}
