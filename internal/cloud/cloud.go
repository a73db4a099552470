// Package cloud holds the reconstructed state-space point cloud and the
// geometric utilities shared by the exponent and topology stages.
package cloud

import (
	"errors"
	"math"
	"math/rand"
	"sort"
)

// ErrSampleExceedsPopulation indicates a subsample request larger than the
// cloud itself.
var ErrSampleExceedsPopulation = errors.New("cloud: sample size exceeds population")

type Point []float64

type PointCloud []Point

func (p Point) Clone() Point {
	c := make(Point, len(p))
	copy(c, p)
	return c
}

// Dist is the Euclidean distance between two points of equal dimension.
func Dist(a, b Point) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func (pc PointCloud) Clone() PointCloud {
	c := make(PointCloud, len(pc))
	for i, p := range pc {
		c[i] = p.Clone()
	}
	return c
}

func (pc PointCloud) Dim() int {
	if len(pc) == 0 {
		return 0
	}
	return len(pc[0])
}

// Bounds returns the per-coordinate minimum and maximum over the cloud.
func (pc PointCloud) Bounds() (Point, Point) {
	if len(pc) == 0 {
		return nil, nil
	}
	lo := pc[0].Clone()
	hi := pc[0].Clone()
	for _, p := range pc[1:] {
		for j, v := range p {
			if v < lo[j] {
				lo[j] = v
			}
			if v > hi[j] {
				hi[j] = v
			}
		}
	}
	return lo, hi
}

// Normalize rescales every coordinate to [0, 1]. Coordinates with different
// ranges would otherwise dominate the distance metric and crush the
// reconstructed manifold. Constant coordinates map to 0.
func (pc PointCloud) Normalize() PointCloud {
	if len(pc) == 0 {
		return PointCloud{}
	}
	lo, hi := pc.Bounds()
	out := make(PointCloud, len(pc))
	for i, p := range pc {
		q := make(Point, len(p))
		for j, v := range p {
			span := hi[j] - lo[j]
			if span > 0 {
				q[j] = (v - lo[j]) / span
			}
		}
		out[i] = q
	}
	return out
}

// Sample draws k points uniformly without replacement using the supplied
// seed. The draw is deterministic per seed; selected points keep their
// temporal order.
func Sample(pc PointCloud, k int, seed int64) (PointCloud, error) {
	if k > len(pc) {
		return nil, ErrSampleExceedsPopulation
	}
	if k < 0 {
		k = 0
	}
	r := rand.New(rand.NewSource(seed))
	idx := r.Perm(len(pc))[:k]
	sort.Ints(idx)

	out := make(PointCloud, k)
	for i, j := range idx {
		out[i] = pc[j].Clone()
	}
	return out, nil
}
