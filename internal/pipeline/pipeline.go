// Package pipeline chains the analysis stages over one signal: delay
// selection, delay-coordinate embedding, exponent estimation and
// persistent homology on a seeded subsample. Every stage consumes and
// produces immutable values; a Config is passed by value per invocation
// so nothing carries over between signals.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/san-kum/chaoscope/internal/cloud"
	"github.com/san-kum/chaoscope/internal/lag"
	"github.com/san-kum/chaoscope/internal/lyapunov"
	"github.com/san-kum/chaoscope/internal/rips"
	"github.com/san-kum/chaoscope/internal/series"
	"github.com/san-kum/chaoscope/internal/takens"
)

// Config is the full explicit parameter surface of the pipeline. No stage
// hides a default; what you pass is what runs.
type Config struct {
	MaxLag int
	Bins   int

	EmbedDim int

	MinDim   int
	MaxDim   int
	Radius   float64
	Theiler  int
	MaxSteps int
	FitLo    int
	FitHi    int

	SampleSize  int
	Seed        int64
	HomologyDim int
	MaxScale    float64
}

// DefaultConfig mirrors the parameter choices used throughout the study:
// 3-dimensional embedding, dimension range 1..5 for the divergence
// curves, and a few-hundred-point subsample for the Rips complex.
func DefaultConfig() Config {
	return Config{
		MaxLag:      50,
		Bins:        0,
		EmbedDim:    3,
		MinDim:      1,
		MaxDim:      5,
		Radius:      0.3,
		Theiler:     10,
		MaxSteps:    15,
		FitLo:       1,
		FitHi:       8,
		SampleSize:  300,
		Seed:        42,
		HomologyDim: 1,
		MaxScale:    1.0,
	}
}

// Report is the immutable output of one analysis: the selected lag and
// AMI curve for the reporting collaborator, the embedded cloud for the
// visualization collaborator, and the exponent plus diagram.
type Report struct {
	Tau        int
	AMI        []float64
	Cloud      cloud.PointCloud
	Sampled    cloud.PointCloud
	Divergence []float64
	Exponent   float64
	Diagram    rips.Diagram
	Degenerate bool
}

// Run executes the full pipeline on one signal. A stage failure aborts
// only this signal's analysis; rips degeneracy is recorded, not fatal.
func Run(ctx context.Context, sig series.Signal, cfg Config) (*Report, error) {
	if !sig.IsValid() {
		return nil, fmt.Errorf("pipeline: invalid signal (empty, NaN/Inf, or dt <= 0)")
	}

	est, err := lag.Select(ctx, sig, lag.Options{MaxLag: cfg.MaxLag, Bins: cfg.Bins})
	if err != nil {
		return nil, fmt.Errorf("pipeline: lag selection: %w", err)
	}

	pc, err := takens.Embed(sig, est.Tau, cfg.EmbedDim)
	if err != nil {
		return nil, fmt.Errorf("pipeline: embedding: %w", err)
	}

	curve, exp, err := lyapunov.Estimate(ctx, sig, lyapunov.Options{
		Tau:      est.Tau,
		MinDim:   cfg.MinDim,
		MaxDim:   cfg.MaxDim,
		Radius:   cfg.Radius,
		Theiler:  cfg.Theiler,
		MaxSteps: cfg.MaxSteps,
	}, cfg.FitLo, cfg.FitHi)
	if err != nil {
		return nil, fmt.Errorf("pipeline: exponent estimation: %w", err)
	}

	sampled, err := cloud.Sample(pc.Normalize(), cfg.SampleSize, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("pipeline: subsampling: %w", err)
	}

	degenerate := false
	diag, err := rips.Compute(ctx, sampled, cfg.HomologyDim, cfg.MaxScale)
	if err != nil {
		if !errors.Is(err, rips.ErrDegenerateFiltration) {
			return nil, fmt.Errorf("pipeline: persistence: %w", err)
		}
		degenerate = true
	}

	return &Report{
		Tau:        est.Tau,
		AMI:        est.Curve,
		Cloud:      pc,
		Sampled:    sampled,
		Divergence: curve,
		Exponent:   exp,
		Diagram:    diag,
		Degenerate: degenerate,
	}, nil
}

// BatchResult pairs one signal's report with its error; failures stay
// local to their signal.
type BatchResult struct {
	Report *Report
	Err    error
}

// Batch analyzes many signals concurrently, one goroutine each. Stages
// share no mutable state, so signals are embarrassingly parallel.
func Batch(ctx context.Context, sigs []series.Signal, cfg Config) []BatchResult {
	results := make([]BatchResult, len(sigs))

	var wg sync.WaitGroup
	for i, sig := range sigs {
		wg.Add(1)
		go func(idx int, s series.Signal) {
			defer wg.Done()
			r, err := Run(ctx, s, cfg)
			results[idx] = BatchResult{Report: r, Err: err}
		}(i, sig)
	}
	wg.Wait()

	return results
}
