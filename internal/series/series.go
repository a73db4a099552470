package series

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Signal is a uniformly sampled scalar time series. Samples are never
// mutated after construction; operations return copies.
type Signal struct {
	Samples []float64
	Dt      float64
}

func New(samples []float64, dt float64) Signal {
	return Signal{Samples: samples, Dt: dt}
}

func (s Signal) Len() int { return len(s.Samples) }

func (s Signal) Clone() Signal {
	c := make([]float64, len(s.Samples))
	copy(c, s.Samples)
	return Signal{Samples: c, Dt: s.Dt}
}

func (s Signal) IsValid() bool {
	if s.Dt <= 0 || len(s.Samples) == 0 {
		return false
	}
	for _, v := range s.Samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s Signal) Mean() float64 {
	if len(s.Samples) == 0 {
		return 0
	}
	return stat.Mean(s.Samples, nil)
}

func (s Signal) StdDev() float64 {
	if len(s.Samples) < 2 {
		return 0
	}
	return stat.StdDev(s.Samples, nil)
}

func (s Signal) MinMax() (float64, float64) {
	if len(s.Samples) == 0 {
		return 0, 0
	}
	lo, hi := s.Samples[0], s.Samples[0]
	for _, v := range s.Samples {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Reverse returns the time-reversed signal.
func (s Signal) Reverse() Signal {
	c := make([]float64, len(s.Samples))
	for i, v := range s.Samples {
		c[len(s.Samples)-1-i] = v
	}
	return Signal{Samples: c, Dt: s.Dt}
}
