package series

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Synthetic sources are iterated maps and closed-form waveforms, enough to
// exercise the full analysis pipeline without any file input. Every source
// is deterministic given (n, dt, seed).

type sourceFn func(n int, dt float64, seed int64) Signal

var sources = map[string]sourceFn{
	"logistic":      Logistic,
	"henon":         Henon,
	"tent":          Tent,
	"sine":          Sine,
	"quasiperiodic": QuasiPeriodic,
	"noise":         Noise,
}

func Generate(name string, n int, dt float64, seed int64) (Signal, error) {
	fn, ok := sources[name]
	if !ok {
		return Signal{}, fmt.Errorf("unknown source: %s", name)
	}
	if n < 1 {
		return Signal{}, fmt.Errorf("length must be positive, got %d", n)
	}
	if dt <= 0 {
		return Signal{}, fmt.Errorf("dt must be positive, got %f", dt)
	}
	return fn(n, dt, seed), nil
}

func ListSources() []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Logistic iterates x <- r*x*(1-x) at r=4, the fully chaotic regime.
// The seed perturbs the initial condition so distinct runs decorrelate.
func Logistic(n int, dt float64, seed int64) Signal {
	r := rand.New(rand.NewSource(seed))
	x := 0.1 + 0.8*r.Float64()
	out := make([]float64, n)
	// burn-in past the transient
	for i := 0; i < 100; i++ {
		x = 4.0 * x * (1.0 - x)
	}
	for i := range out {
		x = 4.0 * x * (1.0 - x)
		out[i] = x
	}
	return Signal{Samples: out, Dt: dt}
}

// Henon records the x coordinate of the Henon map at the classic
// parameters a=1.4, b=0.3.
func Henon(n int, dt float64, seed int64) Signal {
	r := rand.New(rand.NewSource(seed))
	x := 0.1 * r.Float64()
	y := 0.1 * r.Float64()
	out := make([]float64, n)
	for i := 0; i < 100; i++ {
		x, y = 1.0-1.4*x*x+y, 0.3*x
	}
	for i := range out {
		x, y = 1.0-1.4*x*x+y, 0.3*x
		out[i] = x
	}
	return Signal{Samples: out, Dt: dt}
}

// Tent iterates the tent map at slope 1.9999; slope 2 exactly collapses to
// zero in floating point after ~50 iterations.
func Tent(n int, dt float64, seed int64) Signal {
	r := rand.New(rand.NewSource(seed))
	x := 0.1 + 0.8*r.Float64()
	mu := 1.9999
	out := make([]float64, n)
	for i := range out {
		if x < 0.5 {
			x = mu * x
		} else {
			x = mu * (1.0 - x)
		}
		out[i] = x
	}
	return Signal{Samples: out, Dt: dt}
}

// Sine is a unit-amplitude wave with ~40 samples per period; seed is unused.
func Sine(n int, dt float64, seed int64) Signal {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2.0 * math.Pi * float64(i) / 40.0)
	}
	return Signal{Samples: out, Dt: dt}
}

// QuasiPeriodic sums two tones with an irrational frequency ratio, so the
// trajectory fills a torus instead of a closed loop.
func QuasiPeriodic(n int, dt float64, seed int64) Signal {
	out := make([]float64, n)
	for i := range out {
		t := float64(i)
		out[i] = math.Sin(2.0*math.Pi*t/40.0) + 0.5*math.Sin(2.0*math.Pi*t/(40.0*math.Sqrt2))
	}
	return Signal{Samples: out, Dt: dt}
}

// Noise is seeded uniform noise on [-1, 1].
func Noise(n int, dt float64, seed int64) Signal {
	r := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = 2.0*r.Float64() - 1.0
	}
	return Signal{Samples: out, Dt: dt}
}
