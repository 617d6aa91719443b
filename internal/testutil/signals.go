package testutil

import (
	"math"
	"math/rand"
)

// UniformTimes returns n times spaced step seconds apart, starting at 0.
func UniformTimes(n int, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * step
	}
	return out
}

// JitteredTimes returns n strictly increasing times from 0 to span.
//
// Interior times sit on the uniform grid span/(n-1) displaced by up to
// ±jitter grid steps (jitter in [0, 0.5)); the end points are exact. The
// sequence is deterministic for a given seed.
func JitteredTimes(seed int64, n int, span, jitter float64) []float64 {
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	step := span / float64(n-1)
	rng := rand.New(rand.NewSource(seed))
	for i := 1; i < n-1; i++ {
		out[i] = (float64(i) + (rng.Float64()*2-1)*jitter) * step
	}
	out[n-1] = span
	return out
}

// SampleSine evaluates amplitude*sin(2*pi*freqHz*t + phase) at each time.
func SampleSine(times []float64, freqHz, amplitude, phase float64) []float64 {
	out := make([]float64, len(times))
	w := 2 * math.Pi * freqHz
	for i, t := range times {
		out[i] = amplitude * math.Sin(w*t+phase)
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Add returns the element-wise sum of equally long signals.
func Add(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return nil
	}
	out := make([]float64, len(signals[0]))
	for _, s := range signals {
		for i := range out {
			out[i] += s[i]
		}
	}
	return out
}
