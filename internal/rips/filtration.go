// Package rips builds Vietoris-Rips filtrations over point clouds and
// computes persistent homology by boundary-matrix reduction. Simplices are
// plain data in one flat, filtration-ordered slice; all operations are
// free functions over indices into it.
package rips

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/chaoscope/internal/cloud"
)

// ErrDegenerateFiltration signals that no edge fits within the max scale:
// the diagram degenerates to one immortal component per point. It is
// non-fatal; the diagram returned alongside it is still valid.
var ErrDegenerateFiltration = errors.New("rips: no edges within max scale")

// MaxHomologyDim is the highest homology dimension this engine computes.
// Killing a d-class takes a (d+1)-simplex, so the filtration holds
// simplices up to dimension MaxHomologyDim+1 (tetrahedra).
const MaxHomologyDim = 2

// Simplex is a vertex, edge, triangle or tetrahedron over point indices.
// Verts are ascending; unused slots hold -1. Filt is the scale at which
// the simplex enters the complex: zero for vertices, the maximum pairwise
// distance among vertices otherwise.
type Simplex struct {
	Verts [4]int
	Dim   int
	Filt  float64
}

// Filtration is a simplex list sorted by (Filt, Dim, Verts), so every
// simplex appears after all of its faces.
type Filtration []Simplex

func newSimplex(filt float64, verts ...int) Simplex {
	s := Simplex{Verts: [4]int{-1, -1, -1, -1}, Dim: len(verts) - 1, Filt: filt}
	copy(s.Verts[:], verts)
	return s
}

// BuildFiltration enumerates all simplices of dimension <= maxDim+1 whose
// filtration value is <= maxScale. The enumeration is combinatorial in
// len(pc) (the reason callers subsample), so the context is checked
// throughout the scan.
func BuildFiltration(ctx context.Context, pc cloud.PointCloud, maxDim int, maxScale float64) (Filtration, error) {
	if maxDim < 0 || maxDim > MaxHomologyDim {
		return nil, fmt.Errorf("rips: max dimension must be in [0, %d], got %d", MaxHomologyDim, maxDim)
	}
	if maxScale <= 0 {
		return nil, fmt.Errorf("rips: max scale must be positive, got %f", maxScale)
	}

	n := len(pc)
	dist := distMatrix(pc)

	filt := make(Filtration, 0, n)
	for i := 0; i < n; i++ {
		filt = append(filt, newSimplex(0, i))
	}

	simplexDim := maxDim + 1

	if simplexDim >= 1 {
		for i := 0; i < n; i++ {
			if err := checkCtx(ctx); err != nil {
				return nil, err
			}
			for j := i + 1; j < n; j++ {
				if d := dist[i][j]; d <= maxScale {
					filt = append(filt, newSimplex(d, i, j))
				}
			}
		}
	}

	if simplexDim >= 2 {
		for i := 0; i < n; i++ {
			if err := checkCtx(ctx); err != nil {
				return nil, err
			}
			for j := i + 1; j < n; j++ {
				if dist[i][j] > maxScale {
					continue
				}
				for k := j + 1; k < n; k++ {
					d := max3(dist[i][j], dist[i][k], dist[j][k])
					if d <= maxScale {
						filt = append(filt, newSimplex(d, i, j, k))
					}
				}
			}
		}
	}

	if simplexDim >= 3 {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if dist[i][j] > maxScale {
					continue
				}
				if err := checkCtx(ctx); err != nil {
					return nil, err
				}
				for k := j + 1; k < n; k++ {
					dijk := max3(dist[i][j], dist[i][k], dist[j][k])
					if dijk > maxScale {
						continue
					}
					for l := k + 1; l < n; l++ {
						d := dijk
						if dist[i][l] > d {
							d = dist[i][l]
						}
						if dist[j][l] > d {
							d = dist[j][l]
						}
						if dist[k][l] > d {
							d = dist[k][l]
						}
						if d <= maxScale {
							filt = append(filt, newSimplex(d, i, j, k, l))
						}
					}
				}
			}
		}
	}

	sort.Slice(filt, func(a, b int) bool {
		if filt[a].Filt != filt[b].Filt {
			return filt[a].Filt < filt[b].Filt
		}
		if filt[a].Dim != filt[b].Dim {
			return filt[a].Dim < filt[b].Dim
		}
		return lessVerts(filt[a].Verts, filt[b].Verts)
	})
	return filt, nil
}

// HasEdges reports whether any 1-simplex made it into the filtration.
func (f Filtration) HasEdges() bool {
	for _, s := range f {
		if s.Dim == 1 {
			return true
		}
	}
	return false
}

func distMatrix(pc cloud.PointCloud) [][]float64 {
	n := len(pc)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := cloud.Dist(pc[i], pc[j])
			dist[i][j] = d
			dist[j][i] = d
		}
	}
	return dist
}

func checkCtx(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func lessVerts(a, b [4]int) bool {
	for i := 0; i < 4; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
