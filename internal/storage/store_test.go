package storage

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/chaoscope/internal/cloud"
	"github.com/san-kum/chaoscope/internal/pipeline"
	"github.com/san-kum/chaoscope/internal/rips"
	"github.com/san-kum/chaoscope/internal/series"
)

func testReport() *pipeline.Report {
	return &pipeline.Report{
		Tau:        3,
		AMI:        []float64{2.1, 1.4, 0.9, 0.7, 0.8},
		Sampled:    cloud.PointCloud{{0, 0, 0}, {0.5, 0.25, 0.1}, {1, 1, 1}},
		Divergence: []float64{-3.0, -2.5, -2.1},
		Exponent:   0.42,
		Diagram: rips.Diagram{
			{Dim: 0, Birth: 0, Death: 0.3},
			{Dim: 0, Birth: 0, Death: math.Inf(1)},
			{Dim: 1, Birth: 0.4, Death: 0.6},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	sig := series.New([]float64{0.1, 0.2, 0.3, 0.4}, 1.0)
	cfg := pipeline.DefaultConfig()
	cfg.Seed = 42

	runID, err := st.Save("logistic", sig, cfg, testReport())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Source != "logistic" {
		t.Errorf("expected source logistic, got %s", meta.Source)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Tau != 3 {
		t.Errorf("expected tau 3, got %d", meta.Tau)
	}
	if meta.Exponent != 0.42 {
		t.Errorf("expected exponent 0.42, got %f", meta.Exponent)
	}
	if meta.Pairs != 3 {
		t.Errorf("expected 3 pairs, got %d", meta.Pairs)
	}
}

func TestStoreCurveRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	report := testReport()
	sig := series.New([]float64{0.5, 0.6}, 1.0)

	runID, err := st.Save("henon", sig, pipeline.DefaultConfig(), report)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	ami, err := st.LoadCurve(runID, "ami.csv")
	if err != nil {
		t.Fatalf("load ami failed: %v", err)
	}
	if diff := cmp.Diff(report.AMI, ami); diff != "" {
		t.Errorf("ami roundtrip mismatch:\n%s", diff)
	}

	div, err := st.LoadCurve(runID, "divergence.csv")
	if err != nil {
		t.Fatalf("load divergence failed: %v", err)
	}
	if diff := cmp.Diff(report.Divergence, div); diff != "" {
		t.Errorf("divergence roundtrip mismatch:\n%s", diff)
	}

	signal, err := st.LoadCurve(runID, "signal.csv")
	if err != nil {
		t.Fatalf("load signal failed: %v", err)
	}
	if diff := cmp.Diff(sig.Samples, signal); diff != "" {
		t.Errorf("signal roundtrip mismatch:\n%s", diff)
	}
}

func TestStoreDiagramRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	report := testReport()
	runID, err := st.Save("sine", series.New([]float64{1, 2}, 1.0), pipeline.DefaultConfig(), report)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	diag, err := st.LoadDiagram(runID)
	if err != nil {
		t.Fatalf("load diagram failed: %v", err)
	}
	if diff := cmp.Diff(report.Diagram, diag); diff != "" {
		t.Errorf("diagram roundtrip mismatch:\n%s", diff)
	}
}

func TestStoreCloudRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	report := testReport()
	runID, err := st.Save("tent", series.New([]float64{1, 2}, 1.0), pipeline.DefaultConfig(), report)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	pc, err := st.LoadCloud(runID)
	if err != nil {
		t.Fatalf("load cloud failed: %v", err)
	}
	if diff := cmp.Diff(report.Sampled, pc); diff != "" {
		t.Errorf("cloud roundtrip mismatch:\n%s", diff)
	}
}

func TestStoreRepeatedSaveSameSource(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	sig := series.New([]float64{1, 2}, 1.0)
	a, err := st.Save("logistic", sig, pipeline.DefaultConfig(), testReport())
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	b, err := st.Save("logistic", sig, pipeline.DefaultConfig(), testReport())
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	if a == b {
		t.Fatalf("back-to-back saves of one source share run id %s", a)
	}
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListEmpty(t *testing.T) {
	st := New(t.TempDir() + "/nonexistent")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := st.Save("noise", series.New([]float64{1}, 1.0), pipeline.DefaultConfig(), testReport()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Source != "noise" {
		t.Errorf("expected source noise, got %s", runs[0].Source)
	}
}
