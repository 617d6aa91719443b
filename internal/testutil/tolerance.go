package testutil

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"
)

// MaxAbsDiff returns the largest |a[i]-b[i]| and the index where it occurs.
// NaN in either slice counts as an infinite difference.
func MaxAbsDiff(a, b []float64) (diff float64, at int, err error) {
	if len(a) != len(b) {
		return 0, -1, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	at = -1
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if math.IsNaN(d) {
			d = math.Inf(1)
		}
		if at < 0 || d > diff {
			diff, at = d, i
		}
	}
	return diff, at, nil
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	d, i, err := MaxAbsDiff(got, want)
	if err != nil {
		t.Fatal(err)
	}
	if d > eps {
		t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], d, eps)
	}
}

// RequireRelNear fails t if got differs from want by more than rel*|want|,
// with |want| floored at 1 so that values near zero use an absolute bound.
func RequireRelNear(t testing.TB, got, want, rel float64) {
	t.Helper()
	if d := math.Abs(got - want); !(d <= rel*math.Max(1, math.Abs(want))) {
		t.Fatalf("got %v, want %v (rel tol %v)", got, want, rel)
	}
}

// RequireComplexNear fails t if |got-want| exceeds eps.
func RequireComplexNear(t testing.TB, got, want complex128, eps float64) {
	t.Helper()
	if d := cmplx.Abs(got - want); d > eps || math.IsNaN(d) {
		t.Fatalf("got %v, want %v (|diff| %v > eps %v)", got, want, d, eps)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
