// Package lyapunov estimates the maximal Lyapunov exponent of a signal
// from the divergence rate of nearest-neighbor trajectories in the
// delay-coordinate embedding (Rosenstein-style growth curves).
package lyapunov

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/chaoscope/internal/cloud"
	"github.com/san-kum/chaoscope/internal/series"
	"github.com/san-kum/chaoscope/internal/takens"
)

var (
	// ErrInsufficientNeighbors indicates no reference point had a
	// neighbor within the search radius outside the Theiler window.
	ErrInsufficientNeighbors = errors.New("lyapunov: no reference point has a qualifying neighbor")

	// ErrInvalidWindow indicates a regression window outside the curve.
	ErrInvalidWindow = errors.New("lyapunov: invalid regression window")
)

// Options controls divergence tracking. The curve is averaged over every
// embedding dimension in [MinDim, MaxDim]; Theiler is the temporal
// exclusion half-width around each reference, so merely adjacent samples
// are never counted as state-space neighbors.
type Options struct {
	Tau      int
	MinDim   int
	MaxDim   int
	Radius   float64
	Theiler  int
	MaxSteps int
}

func (o Options) validate() error {
	if o.Tau < 1 {
		return fmt.Errorf("lyapunov: lag must be positive, got %d", o.Tau)
	}
	if o.MinDim < 1 || o.MaxDim < o.MinDim {
		return fmt.Errorf("lyapunov: bad dimension range [%d, %d]", o.MinDim, o.MaxDim)
	}
	if o.Radius <= 0 {
		return fmt.Errorf("lyapunov: radius must be positive, got %f", o.Radius)
	}
	if o.Theiler < 0 {
		return fmt.Errorf("lyapunov: theiler window must be non-negative, got %d", o.Theiler)
	}
	if o.MaxSteps < 1 {
		return fmt.Errorf("lyapunov: max steps must be positive, got %d", o.MaxSteps)
	}
	return nil
}

// DivergenceCurve returns, for each horizon k = 0..MaxSteps, the mean log
// distance between reference trajectories and their nearest neighbors
// after k steps, averaged over references and over the dimension range.
// Horizons where a reference pair has collapsed to zero distance are
// excluded from that horizon's mean.
func DivergenceCurve(ctx context.Context, sig series.Signal, opts Options) ([]float64, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	sums := make([]float64, opts.MaxSteps+1)
	counts := make([]int, opts.MaxSteps+1)
	pairs := 0

	for dim := opts.MinDim; dim <= opts.MaxDim; dim++ {
		pc, err := takens.Embed(sig, opts.Tau, dim)
		if err != nil {
			return nil, err
		}
		n, err := trackDivergence(ctx, pc, opts, sums, counts)
		if err != nil {
			return nil, err
		}
		pairs += n
	}

	if pairs == 0 {
		return nil, fmt.Errorf("%w: radius %g, theiler %d", ErrInsufficientNeighbors, opts.Radius, opts.Theiler)
	}

	curve := make([]float64, opts.MaxSteps+1)
	for k := range curve {
		if counts[k] > 0 {
			curve[k] = sums[k] / float64(counts[k])
		} else {
			curve[k] = math.NaN()
		}
	}
	return curve, nil
}

// trackDivergence accumulates log-distances for one embedding dimension
// and returns how many reference/neighbor pairs qualified.
func trackDivergence(ctx context.Context, pc cloud.PointCloud, opts Options, sums []float64, counts []int) (int, error) {
	last := len(pc) - 1 - opts.MaxSteps
	if last < 0 {
		return 0, nil
	}

	pairs := 0
	for i := 0; i <= last; i++ {
		if i%256 == 0 {
			select {
			case <-ctx.Done():
				return pairs, ctx.Err()
			default:
			}
		}

		j := nearestNeighbor(pc, i, last, opts)
		if j < 0 {
			continue
		}
		pairs++

		for k := 0; k <= opts.MaxSteps; k++ {
			d := cloud.Dist(pc[i+k], pc[j+k])
			if d > 0 {
				sums[k] += math.Log(d)
				counts[k]++
			}
		}
	}
	return pairs, nil
}

// nearestNeighbor finds the closest point to pc[i] within Radius whose
// index is outside the Theiler window and still has MaxSteps of future.
// Returns -1 if none qualifies.
func nearestNeighbor(pc cloud.PointCloud, i, last int, opts Options) int {
	best := -1
	bestDist := opts.Radius
	for j := 0; j <= last; j++ {
		if abs(i-j) <= opts.Theiler {
			continue
		}
		d := cloud.Dist(pc[i], pc[j])
		if d > 0 && d <= bestDist {
			best = j
			bestDist = d
		}
	}
	return best
}

// Fit regresses the divergence curve over the caller-chosen horizon
// window [lo, hi] and returns the slope divided by dt: the exponent per
// unit time. The window is policy, not detection; hi is inclusive.
func Fit(curve []float64, lo, hi int, dt float64) (float64, error) {
	if lo < 0 || hi <= lo || hi >= len(curve) {
		return 0, fmt.Errorf("%w: [%d, %d] over curve of length %d", ErrInvalidWindow, lo, hi, len(curve))
	}
	if dt <= 0 {
		return 0, fmt.Errorf("lyapunov: dt must be positive, got %f", dt)
	}

	xs := make([]float64, 0, hi-lo+1)
	ys := make([]float64, 0, hi-lo+1)
	for k := lo; k <= hi; k++ {
		if math.IsNaN(curve[k]) {
			continue
		}
		xs = append(xs, float64(k))
		ys = append(ys, curve[k])
	}
	if len(xs) < 2 {
		return 0, fmt.Errorf("%w: fewer than two finite horizons in [%d, %d]", ErrInvalidWindow, lo, hi)
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope / dt, nil
}

// Estimate is the one-call form: divergence curve plus regression fit.
func Estimate(ctx context.Context, sig series.Signal, opts Options, fitLo, fitHi int) ([]float64, float64, error) {
	curve, err := DivergenceCurve(ctx, sig, opts)
	if err != nil {
		return nil, 0, err
	}
	exp, err := Fit(curve, fitLo, fitHi, sig.Dt)
	if err != nil {
		return curve, 0, err
	}
	return curve, exp, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
