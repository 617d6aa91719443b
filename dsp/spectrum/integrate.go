package spectrum

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-tide/dsp/core"
	"github.com/cwbudde/algo-tide/dsp/series"
)

const (
	// Below this |z| the kernel moments are summed as a power series; the
	// closed forms lose digits to cancellation as z approaches 0.
	momentSeriesLimit = 0.5
	momentSeriesTerms = 18
)

// Coefficient returns the Fourier coefficient of the piecewise-linear
// interpolant of s at freq Hz, normalized by the series span.
//
// Each segment (t1, v1)-(t2, v2) contributes F(t2)-F(t1) with
//
//	F(t) = (a*t + b - a/c) / c * exp(c*t),  c = -2*pi*i*f
//
// where a*t+b is the segment line. At f = 0 the contribution is the
// trapezoid area (v1+v2)/2*(t2-t1), so Coefficient(s, 0) is the time-weighted
// mean of the series.
//
// A single-point series has no span; its coefficient is the point's level at
// every frequency, the limit of the normalized integral as the span shrinks.
func Coefficient(s *series.Series, freq float64) complex128 {
	if s.Segments() == 0 {
		return complex(s.At(0).WaterLevel, 0)
	}
	return sumSegments(s, freq, 0, s.Segments()) / complex(s.Span(), 0)
}

// Amplitude returns |Coefficient(s, freq)|.
func Amplitude(s *series.Series, freq float64) float64 {
	return cmplx.Abs(Coefficient(s, freq))
}

// CoefficientParallel is [Coefficient] with the segment sum split across up to
// workers goroutines. Partial sums are combined in segment order, so for a
// given worker count the result is reproducible; across worker counts it may
// differ from [Coefficient] by rounding only.
func CoefficientParallel(s *series.Series, freq float64, workers int) complex128 {
	n := s.Segments()
	if workers <= 1 || n < 2*workers {
		return Coefficient(s, freq)
	}

	chunks := core.Chunks(n, (n+workers-1)/workers)
	partial := make([]complex128, len(chunks))

	var wg sync.WaitGroup
	for i, c := range chunks {
		wg.Add(1)
		go func(i, lo, hi int) {
			defer wg.Done()
			partial[i] = sumSegments(s, freq, lo, hi)
		}(i, c[0], c[1])
	}
	wg.Wait()

	var sum complex128
	for _, p := range partial {
		sum += p
	}
	return sum / complex(s.Span(), 0)
}

func sumSegments(s *series.Series, freq float64, lo, hi int) complex128 {
	var sum complex128
	for i := lo; i < hi; i++ {
		t1, v1, t2, v2 := s.Segment(i)
		sum += segmentIntegral(t1, v1, t2, v2, freq)
	}
	return sum
}

// segmentIntegral integrates the line through (t1, v1) and (t2, v2) against
// exp(-2*pi*i*freq*t) over [t1, t2].
//
// With h = t2-t1, z = c*h and s = (t-t1)/h the integral is
//
//	h * exp(c*t1) * (v1*E1(z) + (v2-v1)*E2(z))
//
// which equals F(t2)-F(t1) but stays accurate when |c*h| is small.
func segmentIntegral(t1, v1, t2, v2, freq float64) complex128 {
	h := t2 - t1
	if freq == 0 {
		return complex((v1+v2)/2*h, 0)
	}

	w := -2 * math.Pi * freq
	e1, e2 := kernelMoments(complex(0, w*h))
	sin, cos := math.Sincos(w * t1)

	return complex(h, 0) * complex(cos, sin) * (complex(v1, 0)*e1 + complex(v2-v1, 0)*e2)
}

// kernelMoments returns E1 = ∫₀¹ exp(z*s) ds and E2 = ∫₀¹ s*exp(z*s) ds.
func kernelMoments(z complex128) (e1, e2 complex128) {
	if cmplx.Abs(z) < momentSeriesLimit {
		// E1 = Σ z^k/(k!(k+1)), E2 = Σ z^k/(k!(k+2))
		term := complex(1, 0)
		for k := 0; k < momentSeriesTerms; k++ {
			kf := float64(k)
			e1 += term / complex(kf+1, 0)
			e2 += term / complex(kf+2, 0)
			term *= z / complex(kf+1, 0)
		}
		return e1, e2
	}

	ez := cmplx.Exp(z)
	e1 = (ez - 1) / z
	e2 = (ez*(z-1) + 1) / (z * z)
	return e1, e2
}
