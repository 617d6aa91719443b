// Package frequency computes statistics of amplitude spectra sampled on an
// ascending frequency axis.
//
// Unlike FFT bins, the axis is supplied explicitly, so spectra produced by a
// frequency sweep over any range and step can be summarized directly.
// Frequencies are reported in the unit of the axis.
package frequency

import (
	"fmt"
	"math"
	"sort"
)

// Stats holds statistics of a magnitude spectrum.
type Stats struct {
	Count   int
	Sum     float64 // sum of magnitudes
	Max     float64
	MaxFreq float64
	Min     float64
	MinFreq float64
	Average float64
	Energy  float64 // sum of squared magnitudes
	// Spectral shape descriptors
	Centroid  float64
	Spread    float64
	Flatness  float64 // Wiener entropy, 0..1
	Rolloff   float64 // frequency below which 85% of the energy lies
	Bandwidth float64 // 3 dB bandwidth around the peak
}

// Peak is a local maximum of a magnitude spectrum.
type Peak struct {
	Index     int
	Freq      float64
	Magnitude float64
}

func validate(freqs, magnitude []float64) error {
	if len(freqs) != len(magnitude) {
		return fmt.Errorf("frequency stats: length mismatch: %d != %d", len(freqs), len(magnitude))
	}
	for i := 1; i < len(freqs); i++ {
		if !(freqs[i] > freqs[i-1]) {
			return fmt.Errorf("frequency stats: frequencies must be strictly increasing at index %d", i)
		}
	}
	return nil
}

// Calculate computes all statistics of magnitude (linear scale, NOT dB)
// sampled at freqs.
func Calculate(freqs, magnitude []float64) (Stats, error) {
	if err := validate(freqs, magnitude); err != nil {
		return Stats{}, err
	}

	n := len(magnitude)
	if n == 0 {
		return Stats{}, nil
	}

	s := Stats{
		Count:   n,
		Max:     magnitude[0],
		MaxFreq: freqs[0],
		Min:     magnitude[0],
		MinFreq: freqs[0],
	}
	for i, v := range magnitude {
		s.Sum += v
		s.Energy += v * v
		if v > s.Max {
			s.Max, s.MaxFreq = v, freqs[i]
		}
		if v < s.Min {
			s.Min, s.MinFreq = v, freqs[i]
		}
	}
	s.Average = s.Sum / float64(n)

	s.Centroid = centroid(freqs, magnitude, s.Sum)
	s.Spread = spread(freqs, magnitude, s.Centroid, s.Sum)
	s.Flatness = flatness(magnitude)
	s.Rolloff = rolloff(freqs, magnitude, 0.85, s.Energy)
	s.Bandwidth = bandwidth(freqs, magnitude)

	return s, nil
}

// Centroid returns the magnitude-weighted mean frequency.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(freqs, magnitude []float64) (float64, error) {
	if err := validate(freqs, magnitude); err != nil {
		return 0, err
	}
	sum := 0.0
	for _, v := range magnitude {
		sum += v
	}
	return centroid(freqs, magnitude, sum), nil
}

func centroid(freqs, magnitude []float64, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	weightedSum := 0.0
	for i, v := range magnitude {
		weightedSum += freqs[i] * v
	}
	return weightedSum / sumMag
}

// spread computes the standard deviation of the spectrum around the centroid.
func spread(freqs, magnitude []float64, cent, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	weightedSqSum := 0.0
	for i, v := range magnitude {
		diff := freqs[i] - cent
		weightedSqSum += diff * diff * v
	}
	return math.Sqrt(weightedSqSum / sumMag)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
// Flatness = exp(mean(log(|X_i|))) / mean(|X_i|)
//
// If any magnitude is zero the geometric mean, and so the flatness, is zero.
func Flatness(magnitude []float64) float64 {
	return flatness(magnitude)
}

func flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n == 0 {
		return 0
	}

	sumLin := 0.0
	sumLog := 0.0
	for _, v := range magnitude {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	return math.Exp(sumLog/float64(n)) / (sumLin / float64(n))
}

// Rolloff returns the frequency below which the given fraction (0..1) of the
// spectral energy lies.
func Rolloff(freqs, magnitude []float64, percent float64) (float64, error) {
	if err := validate(freqs, magnitude); err != nil {
		return 0, err
	}
	energy := 0.0
	for _, v := range magnitude {
		energy += v * v
	}
	return rolloff(freqs, magnitude, percent, energy), nil
}

func rolloff(freqs, magnitude []float64, percent, totalEnergy float64) float64 {
	n := len(magnitude)
	if n == 0 || totalEnergy == 0 {
		return 0
	}
	threshold := percent * totalEnergy
	cumEnergy := 0.0
	for i, v := range magnitude {
		cumEnergy += v * v
		if cumEnergy >= threshold {
			return freqs[i]
		}
	}
	return freqs[n-1]
}

// Bandwidth returns the 3 dB bandwidth around the spectral peak.
//
// The -3 dB points (where magnitude drops to peak/sqrt(2)) are located on
// both sides of the peak and refined by linear interpolation. A side that
// never drops below the threshold extends to the end of the axis.
func Bandwidth(freqs, magnitude []float64) (float64, error) {
	if err := validate(freqs, magnitude); err != nil {
		return 0, err
	}
	return bandwidth(freqs, magnitude), nil
}

func bandwidth(freqs, magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	peakBin := 0
	peakVal := magnitude[0]
	for i, v := range magnitude {
		if v > peakVal {
			peakVal = v
			peakBin = i
		}
	}
	if peakVal == 0 {
		return 0
	}

	threshold := peakVal / math.Sqrt2

	lowerFreq := freqs[0]
	for i := peakBin; i >= 1; i-- {
		if magnitude[i-1] <= threshold && magnitude[i] > threshold {
			lowerFreq = interpFreq(freqs[i-1], freqs[i], magnitude[i-1], magnitude[i], threshold)
			break
		}
	}

	upperFreq := freqs[n-1]
	for i := peakBin; i < n-1; i++ {
		if magnitude[i+1] <= threshold && magnitude[i] > threshold {
			upperFreq = interpFreq(freqs[i], freqs[i+1], magnitude[i], magnitude[i+1], threshold)
			break
		}
	}

	bw := upperFreq - lowerFreq
	if bw < 0 {
		return 0
	}
	return bw
}

// interpFreq finds where the line through (fLow, magLow) and (fHigh, magHigh)
// crosses threshold.
func interpFreq(fLow, fHigh, magLow, magHigh, threshold float64) float64 {
	denom := magHigh - magLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}
	t := (threshold - magLow) / denom
	return fLow + t*(fHigh-fLow)
}

// Peaks returns up to n local maxima of magnitude, largest first.
//
// A point is a local maximum when it is strictly greater than its left
// neighbour and not smaller than its right one; the end points only need to
// exceed their single neighbour. Ties in magnitude keep ascending frequency
// order.
func Peaks(freqs, magnitude []float64, n int) ([]Peak, error) {
	if err := validate(freqs, magnitude); err != nil {
		return nil, err
	}
	if n <= 0 || len(magnitude) < 2 {
		return nil, nil
	}

	last := len(magnitude) - 1
	var peaks []Peak
	for i, v := range magnitude {
		var isPeak bool
		switch i {
		case 0:
			isPeak = v > magnitude[1]
		case last:
			isPeak = v > magnitude[i-1]
		default:
			isPeak = v > magnitude[i-1] && v >= magnitude[i+1]
		}
		if isPeak && v > 0 {
			peaks = append(peaks, Peak{Index: i, Freq: freqs[i], Magnitude: v})
		}
	}

	sort.SliceStable(peaks, func(a, b int) bool {
		return peaks[a].Magnitude > peaks[b].Magnitude
	})
	if len(peaks) > n {
		peaks = peaks[:n]
	}
	return peaks, nil
}
