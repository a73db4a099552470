package cloud

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDist(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"same point", Point{1, 2}, Point{1, 2}, 0},
		{"unit axis", Point{0, 0}, Point{1, 0}, 1},
		{"345 triangle", Point{0, 0}, Point{3, 4}, 5},
		{"3d", Point{1, 1, 1}, Point{2, 2, 2}, math.Sqrt(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dist(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %g, got %g", tt.want, got)
			}
		})
	}
}

func TestSampleDeterministic(t *testing.T) {
	pc := make(PointCloud, 100)
	for i := range pc {
		pc[i] = Point{float64(i), float64(i * i)}
	}

	a, err := Sample(pc, 10, 99)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	b, err := Sample(pc, 10, 99)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different samples:\n%s", diff)
	}

	c, err := Sample(pc, 10, 100)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if diff := cmp.Diff(a, c); diff == "" {
		t.Error("different seeds produced identical samples")
	}
}

func TestSampleKeepsTemporalOrder(t *testing.T) {
	pc := make(PointCloud, 50)
	for i := range pc {
		pc[i] = Point{float64(i)}
	}
	s, err := Sample(pc, 20, 5)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	for i := 1; i < len(s); i++ {
		if s[i][0] <= s[i-1][0] {
			t.Fatalf("sample out of temporal order at %d: %v then %v", i, s[i-1], s[i])
		}
	}
}

func TestSampleExceedsPopulation(t *testing.T) {
	pc := PointCloud{{1}, {2}}
	_, err := Sample(pc, 3, 0)
	if !errors.Is(err, ErrSampleExceedsPopulation) {
		t.Errorf("expected ErrSampleExceedsPopulation, got %v", err)
	}
}

func TestSampleDoesNotAliasSource(t *testing.T) {
	pc := PointCloud{{1, 1}, {2, 2}, {3, 3}}
	s, err := Sample(pc, 3, 1)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	s[0][0] = 99
	for _, p := range pc {
		if p[0] == 99 {
			t.Error("sample aliases the source cloud")
		}
	}
}

func TestNormalize(t *testing.T) {
	pc := PointCloud{{0, 10}, {5, 20}, {10, 30}}
	n := pc.Normalize()

	want := PointCloud{{0, 0}, {0.5, 0.5}, {1, 1}}
	if diff := cmp.Diff(want, n); diff != "" {
		t.Errorf("normalize mismatch:\n%s", diff)
	}
}

func TestNormalizeConstantCoordinate(t *testing.T) {
	pc := PointCloud{{1, 5}, {2, 5}, {3, 5}}
	n := pc.Normalize()
	for i, p := range n {
		if p[1] != 0 {
			t.Errorf("constant coordinate should map to 0, point %d has %g", i, p[1])
		}
	}
}

func TestBounds(t *testing.T) {
	pc := PointCloud{{1, -2}, {-3, 4}, {2, 0}}
	lo, hi := pc.Bounds()
	if lo[0] != -3 || lo[1] != -2 {
		t.Errorf("wrong lower bound: %v", lo)
	}
	if hi[0] != 2 || hi[1] != 4 {
		t.Errorf("wrong upper bound: %v", hi)
	}
}
