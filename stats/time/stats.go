// Package time computes time-domain statistics of irregularly sampled series.
//
// Weighted quantities (Mean, RMS, StdDev) integrate the piecewise-linear
// interpolant exactly and are therefore independent of how densely a region
// happens to be sampled. Unweighted moments over the raw levels are reported
// alongside for comparison.
package time

import (
	"math"

	"github.com/cwbudde/algo-tide/dsp/series"
)

// Stats holds time-domain statistics of a series.
type Stats struct {
	Length int
	Span   float64 // seconds

	// Time-weighted over the interpolant.
	Mean   float64
	RMS    float64
	StdDev float64

	Max     float64
	MaxTime float64
	Min     float64
	MinTime float64
	Range   float64 // max - min

	// Sampling intervals in seconds; zero for a single point.
	MinInterval  float64
	MeanInterval float64
	MaxInterval  float64

	// Unweighted moments of the sampled levels.
	SampleMean     float64
	SampleVariance float64
	Skewness       float64
	Kurtosis       float64
}

// kahan is a compensated running sum.
type kahan struct{ sum, c float64 }

func (k *kahan) add(x float64) {
	y := x - k.c
	t := k.sum + y
	k.c = (t - k.sum) - y
	k.sum = t
}

// Calculate computes all statistics of s in a single pass over its segments.
func Calculate(s *series.Series) Stats {
	first := s.At(0)
	st := Stats{
		Length:  s.Len(),
		Span:    s.Span(),
		Max:     first.WaterLevel,
		MaxTime: first.Time,
		Min:     first.WaterLevel,
		MinTime: first.Time,
	}

	var area, sq kahan
	st.MinInterval = math.Inf(1)
	for i := 0; i < s.Segments(); i++ {
		t1, v1, t2, v2 := s.Segment(i)
		h := t2 - t1
		area.add((v1 + v2) / 2 * h)
		sq.add((v1*v1 + v1*v2 + v2*v2) / 3 * h)

		st.MinInterval = math.Min(st.MinInterval, h)
		st.MaxInterval = math.Max(st.MaxInterval, h)

		if v2 > st.Max {
			st.Max, st.MaxTime = v2, t2
		}
		if v2 < st.Min {
			st.Min, st.MinTime = v2, t2
		}
	}
	st.Range = st.Max - st.Min

	if st.Span > 0 {
		st.Mean = area.sum / st.Span
		st.RMS = math.Sqrt(sq.sum / st.Span)
		st.MeanInterval = st.Span / float64(s.Segments())
	} else {
		st.Mean = first.WaterLevel
		st.RMS = math.Abs(first.WaterLevel)
		st.MinInterval = 0
	}
	if v := st.RMS*st.RMS - st.Mean*st.Mean; v > 0 {
		st.StdDev = math.Sqrt(v)
	}

	st.SampleMean, st.SampleVariance, st.Skewness, st.Kurtosis = Moments(s.Levels())
	return st
}

// Mean returns the time-weighted mean of the interpolant of s.
func Mean(s *series.Series) float64 {
	if s.Segments() == 0 {
		return s.At(0).WaterLevel
	}
	var area kahan
	for i := 0; i < s.Segments(); i++ {
		t1, v1, t2, v2 := s.Segment(i)
		area.add((v1 + v2) / 2 * (t2 - t1))
	}
	return area.sum / s.Span()
}

// RMS returns the time-weighted root-mean-square of the interpolant of s.
func RMS(s *series.Series) float64 {
	if s.Segments() == 0 {
		return math.Abs(s.At(0).WaterLevel)
	}
	var sq kahan
	for i := 0; i < s.Segments(); i++ {
		t1, v1, t2, v2 := s.Segment(i)
		sq.add((v1*v1 + v1*v2 + v2*v2) / 3 * (t2 - t1))
	}
	return math.Sqrt(sq.sum / s.Span())
}

// Moments returns the mean, population variance, skewness, and excess kurtosis
// of values using Welford's online algorithm for numerical stability.
func Moments(values []float64) (mean, variance, skewness, kurtosis float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var m2, m3, m4 float64

	for i, x := range values {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN
	}

	nf := float64(n)

	variance = m2 / nf
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return mean, variance, skewness, kurtosis
}
