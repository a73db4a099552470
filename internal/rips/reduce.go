package rips

import (
	"context"

	"github.com/san-kum/chaoscope/internal/cloud"
)

// Reduce runs the standard persistence algorithm over the filtration:
// each simplex's boundary column (mod 2) is reduced against earlier
// columns until its lowest entry is unique or the column clears. A
// surviving column pairs its lowest entry (the birth simplex) with the
// column's own simplex (the death); positive simplices never killed
// become essential classes with infinite death. Classes of dimension
// above maxDim are discarded; they are artifacts of truncating the
// complex at dimension maxDim+1.
//
// Zero-persistence pairs are kept: the diagram is the raw multiset, and
// callers trim with Significant when displaying.
func Reduce(f Filtration, maxDim int) Diagram {
	index := make(map[[4]int]int, len(f))
	for i, s := range f {
		index[s.Verts] = i
	}

	cols := make([][]int, len(f))
	pivot := make(map[int]int, len(f))
	diag := make(Diagram, 0, len(f)/2)

	for j, s := range f {
		col := boundary(s, index)
		for len(col) > 0 {
			low := col[len(col)-1]
			prev, ok := pivot[low]
			if !ok {
				break
			}
			col = symDiff(col, cols[prev])
		}
		cols[j] = col

		if len(col) > 0 {
			low := col[len(col)-1]
			pivot[low] = j
			diag = append(diag, Pair{
				Dim:   f[low].Dim,
				Birth: f[low].Filt,
				Death: s.Filt,
			})
		}
	}

	for i, s := range f {
		if len(cols[i]) != 0 {
			continue
		}
		if _, paired := pivot[i]; paired {
			continue
		}
		if s.Dim > maxDim {
			continue
		}
		diag = append(diag, Pair{Dim: s.Dim, Birth: s.Filt, Death: Infinity})
	}
	return diag
}

// boundary returns the filtration indices of the simplex's facets, sorted
// ascending. Vertices have empty boundary.
func boundary(s Simplex, index map[[4]int]int) []int {
	if s.Dim == 0 {
		return nil
	}
	out := make([]int, 0, s.Dim+1)
	for drop := 0; drop <= s.Dim; drop++ {
		facet := [4]int{-1, -1, -1, -1}
		k := 0
		for v := 0; v <= s.Dim; v++ {
			if v == drop {
				continue
			}
			facet[k] = s.Verts[v]
			k++
		}
		out = append(out, index[facet])
	}
	sortInts(out)
	return out
}

// symDiff is the mod-2 column addition: the symmetric difference of two
// ascending index slices.
func symDiff(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

func sortInts(a []int) {
	// boundaries have at most four entries; insertion sort is enough
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j] < a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}

// Compute is the one-call engine: filtration build plus reduction. When
// no point pair is within maxScale the diagram still carries the immortal
// component classes, returned together with ErrDegenerateFiltration so
// batch callers can flag the signal without aborting.
func Compute(ctx context.Context, pc cloud.PointCloud, maxDim int, maxScale float64) (Diagram, error) {
	f, err := BuildFiltration(ctx, pc, maxDim, maxScale)
	if err != nil {
		return nil, err
	}
	diag := Reduce(f, maxDim)
	if len(pc) > 0 && !f.HasEdges() {
		return diag, ErrDegenerateFiltration
	}
	return diag, nil
}
