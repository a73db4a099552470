// Package lag selects the embedding delay from the auto mutual information
// of a signal, using the Fraser-Swinney first-local-minimum heuristic.
package lag

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/chaoscope/internal/series"
)

// ErrNoLocalMinimum indicates the AMI curve has no local minimum within
// the scanned lag range; the caller decides whether to fall back or abort.
var ErrNoLocalMinimum = errors.New("lag: no local minimum in mutual information curve")

// Options controls the AMI scan. Bins=0 applies Sturges' rule,
// ceil(log2 n)+1. The binning rule is part of the contract: mutual
// information estimates are not bin-count invariant, so the rule is fixed
// and identical across runs.
type Options struct {
	MaxLag int
	Bins   int
}

// Estimate carries the selected lag and the full AMI curve for diagnostic
// inspection. Curve[t] is the average mutual information at lag t, in
// nats; Curve[0] is the self-information.
type Estimate struct {
	Tau   int
	Curve []float64
}

// Select scans lags 1..MaxLag and returns the first t where
// Curve[t] < Curve[t-1] and Curve[t] <= Curve[t+1]. The scan is the
// O(N*MaxLag) cost center, so the context is checked once per lag.
func Select(ctx context.Context, sig series.Signal, opts Options) (Estimate, error) {
	n := sig.Len()
	if n < 2 {
		return Estimate{}, fmt.Errorf("lag: signal too short, have %d samples", n)
	}
	if opts.MaxLag < 1 {
		return Estimate{}, fmt.Errorf("lag: max lag must be positive, got %d", opts.MaxLag)
	}
	if opts.MaxLag >= n {
		return Estimate{}, fmt.Errorf("lag: max lag %d must be below signal length %d", opts.MaxLag, n)
	}

	bins := opts.Bins
	if bins <= 0 {
		bins = sturges(n)
	}

	curve := make([]float64, opts.MaxLag+1)
	for tau := 0; tau <= opts.MaxLag; tau++ {
		select {
		case <-ctx.Done():
			return Estimate{}, ctx.Err()
		default:
		}
		curve[tau] = mutualInformation(sig.Samples, tau, bins)
	}

	for tau := 1; tau < opts.MaxLag; tau++ {
		if curve[tau] < curve[tau-1] && curve[tau] <= curve[tau+1] {
			return Estimate{Tau: tau, Curve: curve}, nil
		}
	}
	return Estimate{Curve: curve}, fmt.Errorf("%w: scanned lags 1..%d", ErrNoLocalMinimum, opts.MaxLag)
}

func sturges(n int) int {
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

// mutualInformation bins the pairs (s_i, s_{i+tau}) into a bins x bins
// joint histogram and returns sum p_xy * ln(p_xy / (p_x * p_y)).
func mutualInformation(samples []float64, tau, bins int) float64 {
	pairs := len(samples) - tau
	if pairs < 1 {
		return 0
	}

	lo, hi := samples[0], samples[0]
	for _, v := range samples {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		return 0
	}

	joint := make([]int, bins*bins)
	px := make([]int, bins)
	py := make([]int, bins)
	for i := 0; i < pairs; i++ {
		bx := bin(samples[i], lo, span, bins)
		by := bin(samples[i+tau], lo, span, bins)
		joint[bx*bins+by]++
		px[bx]++
		py[by]++
	}

	total := float64(pairs)
	mi := 0.0
	for bx := 0; bx < bins; bx++ {
		for by := 0; by < bins; by++ {
			c := joint[bx*bins+by]
			if c == 0 {
				continue
			}
			pxy := float64(c) / total
			mi += pxy * math.Log(pxy*total*total/(float64(px[bx])*float64(py[by])))
		}
	}
	return mi
}

func bin(v, lo, span float64, bins int) int {
	b := int((v - lo) / span * float64(bins))
	if b >= bins {
		b = bins - 1
	}
	return b
}
