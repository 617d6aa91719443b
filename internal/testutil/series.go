package testutil

import (
	"testing"

	"github.com/cwbudde/algo-tide/dsp/series"
)

// Series builds a series from parallel time and level slices, failing t on
// any construction error.
func Series(t testing.TB, times, levels []float64) *series.Series {
	t.Helper()
	if len(times) != len(levels) {
		t.Fatalf("times/levels length mismatch: %d != %d", len(times), len(levels))
	}
	pts := make([]series.DataPoint, len(times))
	for i := range pts {
		pts[i] = series.DataPoint{Time: times[i], WaterLevel: levels[i]}
	}
	s, err := series.FromPoints(pts)
	if err != nil {
		t.Fatalf("series.FromPoints: %v", err)
	}
	return s
}
