// Package takens builds delay-coordinate embeddings: a scalar signal is
// lifted to a point cloud in R^m using time-lagged copies of itself, a
// proxy for the underlying state-space attractor.
package takens

import (
	"errors"
	"fmt"

	"github.com/san-kum/chaoscope/internal/cloud"
	"github.com/san-kum/chaoscope/internal/series"
)

// ErrInsufficientSamples indicates the signal is too short for the
// requested lag and dimension.
var ErrInsufficientSamples = errors.New("takens: insufficient samples for embedding")

// Embed constructs the delay-coordinate cloud with point
// i = (s_i, s_{i+tau}, ..., s_{i+(m-1)tau}). The result has
// N - (m-1)*tau points and preserves the temporal order of i, so index
// position doubles as a synthetic time coordinate downstream.
func Embed(sig series.Signal, tau, dim int) (cloud.PointCloud, error) {
	if tau < 1 {
		return nil, fmt.Errorf("takens: lag must be positive, got %d", tau)
	}
	if dim < 1 {
		return nil, fmt.Errorf("takens: dimension must be positive, got %d", dim)
	}

	n := sig.Len()
	span := (dim - 1) * tau
	if n <= span {
		return nil, fmt.Errorf("%w: need more than %d samples for tau=%d dim=%d, have %d",
			ErrInsufficientSamples, span, tau, dim, n)
	}

	count := n - span
	pc := make(cloud.PointCloud, count)
	for i := 0; i < count; i++ {
		p := make(cloud.Point, dim)
		for j := 0; j < dim; j++ {
			p[j] = sig.Samples[i+j*tau]
		}
		pc[i] = p
	}
	return pc, nil
}
