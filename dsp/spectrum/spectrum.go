package spectrum

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-tide/dsp/core"
)

// parts holds the split real and imaginary planes of a coefficient slice.
type parts struct {
	re []float64
	im []float64
}

var partsPool = sync.Pool{
	New: func() any { return &parts{} },
}

// withParts splits coeffs into pooled planes and passes them to fn.
func withParts(coeffs []complex128, fn func(re, im []float64)) {
	p := partsPool.Get().(*parts)
	p.re, p.im = core.SplitComplex(p.re, p.im, coeffs)
	fn(p.re, p.im)
	partsPool.Put(p)
}

// Amplitudes returns |X(f)| for each coefficient, or nil for no coefficients.
func Amplitudes(coeffs []complex128) []float64 {
	if len(coeffs) == 0 {
		return nil
	}
	out := make([]float64, len(coeffs))
	withParts(coeffs, func(re, im []float64) {
		vecmath.Magnitude(out, re, im)
	})
	return out
}

// Powers returns |X(f)|^2 for each coefficient.
func Powers(coeffs []complex128) []float64 {
	if len(coeffs) == 0 {
		return nil
	}
	out := make([]float64, len(coeffs))
	withParts(coeffs, func(re, im []float64) {
		vecmath.Power(out, re, im)
	})
	return out
}

// Phases returns arg(X(f)) in radians, in (-pi, pi].
func Phases(coeffs []complex128) []float64 {
	if len(coeffs) == 0 {
		return nil
	}
	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// UnwrapPhase returns a copy of phase with jumps larger than pi between
// neighbouring frequencies folded back by 2*pi.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	out := make([]float64, len(phase))
	out[0] = phase[0]
	var offset float64
	for i := 1; i < len(phase); i++ {
		switch d := phase[i] - phase[i-1]; {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}
		out[i] = phase[i] + offset
	}
	return out
}
