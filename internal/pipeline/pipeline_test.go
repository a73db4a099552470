package pipeline

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/chaoscope/internal/cloud"
	"github.com/san-kum/chaoscope/internal/series"
)

func chaoticConfig() Config {
	return Config{
		MaxLag:      50,
		EmbedDim:    3,
		MinDim:      1,
		MaxDim:      3,
		Radius:      0.1,
		Theiler:     10,
		MaxSteps:    10,
		FitLo:       0,
		FitHi:       4,
		SampleSize:  150,
		Seed:        42,
		HomologyDim: 1,
		MaxScale:    0.8,
	}
}

func TestRunLogisticIsChaotic(t *testing.T) {
	sig := series.Logistic(5000, 1.0, 1)

	report, err := Run(context.Background(), sig, chaoticConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if report.Tau < 1 {
		t.Errorf("expected positive tau, got %d", report.Tau)
	}
	if report.Exponent <= 0 {
		t.Errorf("expected positive exponent for logistic map, got %g", report.Exponent)
	}
	if len(report.Sampled) != 150 {
		t.Errorf("expected 150 sampled points, got %d", len(report.Sampled))
	}
	if len(report.Diagram) == 0 {
		t.Error("expected non-empty diagram")
	}
}

func TestRunSineIsRegular(t *testing.T) {
	sig := series.Sine(5000, 1.0, 0)

	cfg := chaoticConfig()
	cfg.Radius = 0.3
	cfg.Theiler = 20
	cfg.FitLo = 1
	cfg.FitHi = 8

	report, err := Run(context.Background(), sig, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if report.Exponent > 0.05 {
		t.Errorf("expected exponent ~<= 0 for sine, got %g", report.Exponent)
	}
}

func TestRunDeterministic(t *testing.T) {
	sig := series.Henon(3000, 1.0, 4)

	cfg := chaoticConfig()
	cfg.Radius = 0.2

	a, err := Run(context.Background(), sig, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	b, err := Run(context.Background(), sig, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if a.Tau != b.Tau {
		t.Errorf("tau differs: %d vs %d", a.Tau, b.Tau)
	}
	if a.Exponent != b.Exponent {
		t.Errorf("exponent differs: %g vs %g", a.Exponent, b.Exponent)
	}

	a.Diagram.Sort()
	b.Diagram.Sort()
	if diff := cmp.Diff(a.Diagram, b.Diagram); diff != "" {
		t.Errorf("diagrams differ:\n%s", diff)
	}
}

func TestRunSampleSizeExceedsCloud(t *testing.T) {
	sig := series.Logistic(400, 1.0, 8)

	cfg := chaoticConfig()
	cfg.SampleSize = 1000000

	_, err := Run(context.Background(), sig, cfg)
	if !errors.Is(err, cloud.ErrSampleExceedsPopulation) {
		t.Errorf("expected ErrSampleExceedsPopulation, got %v", err)
	}
}

func TestRunInvalidSignal(t *testing.T) {
	tests := []struct {
		name string
		sig  series.Signal
	}{
		{"empty", series.New(nil, 1.0)},
		{"zero dt", series.New([]float64{1, 2, 3}, 0)},
		{"nan", series.New([]float64{1, math.NaN()}, 1.0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(context.Background(), tt.sig, chaoticConfig()); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestBatchFailuresStayLocal(t *testing.T) {
	good := series.Logistic(3000, 1.0, 2)
	// constant signal fails lag selection
	flat := make([]float64, 3000)
	for i := range flat {
		flat[i] = 1.0
	}
	bad := series.New(flat, 1.0)

	results := Batch(context.Background(), []series.Signal{good, bad, good}, chaoticConfig())

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("first signal should succeed: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("constant signal should fail")
	}
	if results[2].Err != nil {
		t.Errorf("third signal should succeed: %v", results[2].Err)
	}
}

func TestRunCancelled(t *testing.T) {
	sig := series.Logistic(5000, 1.0, 6)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, sig, chaoticConfig()); err == nil {
		t.Error("expected cancellation error")
	}
}

func TestDefaultConfigSane(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.EmbedDim != 3 {
		t.Errorf("embedding dimension is fixed at 3 in this study, got %d", cfg.EmbedDim)
	}
	if cfg.MaxLag < 1 || cfg.SampleSize < 1 || cfg.MaxScale <= 0 {
		t.Error("default config has non-positive parameters")
	}
	if cfg.FitHi <= cfg.FitLo {
		t.Error("default regression window is empty")
	}
}
