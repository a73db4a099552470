package series

import (
	"math"
	"testing"
)

func TestGenerateDeterminism(t *testing.T) {
	for _, name := range ListSources() {
		t.Run(name, func(t *testing.T) {
			a, err := Generate(name, 500, 1.0, 7)
			if err != nil {
				t.Fatalf("generate failed: %v", err)
			}
			b, err := Generate(name, 500, 1.0, 7)
			if err != nil {
				t.Fatalf("generate failed: %v", err)
			}
			for i := range a.Samples {
				if a.Samples[i] != b.Samples[i] {
					t.Fatalf("sample %d differs: %g vs %g", i, a.Samples[i], b.Samples[i])
				}
			}
		})
	}
}

func TestGenerateUnknownSource(t *testing.T) {
	if _, err := Generate("quantum", 100, 1.0, 0); err == nil {
		t.Error("expected error for unknown source")
	}
}

func TestGenerateBadArgs(t *testing.T) {
	if _, err := Generate("sine", 0, 1.0, 0); err == nil {
		t.Error("expected error for zero length")
	}
	if _, err := Generate("sine", 100, -0.1, 0); err == nil {
		t.Error("expected error for negative dt")
	}
}

func TestLogisticStaysInUnitInterval(t *testing.T) {
	sig := Logistic(5000, 1.0, 3)
	for i, v := range sig.Samples {
		if v < 0 || v > 1 {
			t.Fatalf("sample %d out of [0,1]: %g", i, v)
		}
	}
	if !sig.IsValid() {
		t.Error("logistic signal should be valid")
	}
}

func TestSineStats(t *testing.T) {
	sig := Sine(4000, 0.5, 0)
	if math.Abs(sig.Mean()) > 0.01 {
		t.Errorf("sine mean should be ~0, got %g", sig.Mean())
	}
	lo, hi := sig.MinMax()
	if lo < -1.0001 || hi > 1.0001 {
		t.Errorf("sine amplitude out of range: [%g, %g]", lo, hi)
	}
	if sig.Dt != 0.5 {
		t.Errorf("dt not carried: %g", sig.Dt)
	}
}

func TestReverse(t *testing.T) {
	sig := New([]float64{1, 2, 3, 4}, 1.0)
	rev := sig.Reverse()
	want := []float64{4, 3, 2, 1}
	for i, v := range rev.Samples {
		if v != want[i] {
			t.Errorf("sample %d: expected %g, got %g", i, want[i], v)
		}
	}
	// original untouched
	if sig.Samples[0] != 1 {
		t.Error("reverse mutated the source signal")
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		sig  Signal
		want bool
	}{
		{"ok", New([]float64{1, 2}, 0.1), true},
		{"empty", New(nil, 0.1), false},
		{"zero dt", New([]float64{1}, 0), false},
		{"nan", New([]float64{1, math.NaN()}, 0.1), false},
		{"inf", New([]float64{math.Inf(1)}, 0.1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sig.IsValid(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
