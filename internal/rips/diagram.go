package rips

import (
	"encoding/json"
	"math"
	"sort"
)

// Infinity is the sentinel death value for essential classes.
var Infinity = math.Inf(1)

// Pair is one persistence class: born when its feature appears in the
// filtration, dead when it is filled in. Death >= Birth always; essential
// classes carry Death = Infinity.
type Pair struct {
	Dim   int
	Birth float64
	Death float64
}

func (p Pair) Persistence() float64 {
	return p.Death - p.Birth
}

func (p Pair) Immortal() bool {
	return math.IsInf(p.Death, 1)
}

// MarshalJSON spells the infinite death as the string "inf"; encoding/json
// refuses raw infinities.
func (p Pair) MarshalJSON() ([]byte, error) {
	var death any = p.Death
	if p.Immortal() {
		death = "inf"
	}
	return json.Marshal(struct {
		Dim   int     `json:"dimension"`
		Birth float64 `json:"birth"`
		Death any     `json:"death"`
	}{p.Dim, p.Birth, death})
}

// Diagram is the multiset of persistence pairs. Entries are unordered
// within a dimension; call Sort before deterministic comparison.
type Diagram []Pair

func (d Diagram) Sort() {
	sort.Slice(d, func(i, j int) bool {
		if d[i].Dim != d[j].Dim {
			return d[i].Dim < d[j].Dim
		}
		if d[i].Birth != d[j].Birth {
			return d[i].Birth < d[j].Birth
		}
		return d[i].Death < d[j].Death
	})
}

// ByDim returns the pairs of one homological dimension.
func (d Diagram) ByDim(dim int) Diagram {
	out := make(Diagram, 0)
	for _, p := range d {
		if p.Dim == dim {
			out = append(out, p)
		}
	}
	return out
}

// Significant drops pairs whose persistence is below min. Essential
// classes always survive the cut.
func (d Diagram) Significant(min float64) Diagram {
	out := make(Diagram, 0, len(d))
	for _, p := range d {
		if p.Immortal() || p.Persistence() >= min {
			out = append(out, p)
		}
	}
	return out
}

// MaxDeath is the largest finite death in the diagram, or 0 if none.
func (d Diagram) MaxDeath() float64 {
	m := 0.0
	for _, p := range d {
		if !p.Immortal() && p.Death > m {
			m = p.Death
		}
	}
	return m
}

// Counts returns, per dimension, how many finite and immortal classes the
// diagram holds.
func (d Diagram) Counts() (finite, immortal [MaxHomologyDim + 1]int) {
	for _, p := range d {
		if p.Dim < 0 || p.Dim > MaxHomologyDim {
			continue
		}
		if p.Immortal() {
			immortal[p.Dim]++
		} else {
			finite[p.Dim]++
		}
	}
	return finite, immortal
}
