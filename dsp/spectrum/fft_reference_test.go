package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-tide/internal/testutil"
)

// For a uniformly sampled periodic series (x[N] == x[0]) the linear
// interpolant's coefficient at bin frequency k/(N*dt) equals the DFT bin
// X[k]/N attenuated by the triangle kernel, sinc^2(k/N).
func TestCoefficientMatchesFFTForPeriodicUniformSeries(t *testing.T) {
	const (
		n  = 64
		dt = 360.0
	)

	noise := testutil.DeterministicNoise(17, 1, n)
	levels := append(append([]float64(nil), noise...), noise[0])
	s := testutil.Series(t, testutil.UniformTimes(n+1, dt), levels)

	in := make([]complex128, n)
	for i, v := range noise {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, n)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		t.Fatalf("NewPlan64() error = %v", err)
	}
	if err := plan.Forward(out, in); err != nil {
		t.Fatalf("Forward() error = %v", err)
	}

	for k := 0; k <= n/2; k++ {
		f := float64(k) / (n * dt)
		want := cmplx.Abs(out[k]) / n * sinc2(float64(k)/n)
		got := Amplitude(s, f)
		if math.Abs(got-want) > 1e-10 {
			t.Fatalf("bin %d: Amplitude = %v, want %v", k, got, want)
		}
	}
}
