package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-tide/dsp/core"
	"github.com/cwbudde/algo-tide/dsp/series"
	"github.com/cwbudde/algo-tide/internal/testutil"
)

func TestRangeFrequencies(t *testing.T) {
	r := Range{Start: 0, End: 1, Step: 0.25}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, r.Frequencies(), []float64{0, 0.25, 0.5, 0.75, 1.0}, 0)
}

func TestRangeCount(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want int
	}{
		{name: "single", r: Range{Start: 0, End: 0, Step: 1}, want: 1},
		{name: "end not on grid", r: Range{Start: 0, End: 1, Step: 0.3}, want: 4},
		{name: "tenths", r: Range{Start: 0, End: 1, Step: 0.1}, want: 11},
		{name: "offset start", r: Range{Start: 0.5, End: 2, Step: 0.5}, want: 4},
		{name: "default", r: DefaultRange(0), want: DefaultSteps + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Count(); got != tt.want {
				t.Fatalf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDefaultRange(t *testing.T) {
	r := DefaultRange(0)
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	freqs := r.Frequencies()
	if freqs[0] != 0 {
		t.Fatalf("first = %v, want 0", freqs[0])
	}

	last := freqs[len(freqs)-1]
	if !core.NearlyEqual(last, DefaultEndFrequency, 1e-12) || last > DefaultEndFrequency {
		t.Fatalf("last = %v, want %v", last, DefaultEndFrequency)
	}

	for i := 1; i < len(freqs); i++ {
		if !(freqs[i] > freqs[i-1]) {
			t.Fatalf("frequencies not ascending at %d", i)
		}
	}
}

func TestRangeValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		r    Range
	}{
		{name: "zero step", r: Range{Start: 0, End: 1, Step: 0}},
		{name: "negative step", r: Range{Start: 0, End: 1, Step: -0.1}},
		{name: "inverted", r: Range{Start: 2, End: 1, Step: 0.1}},
		{name: "nan", r: Range{Start: math.NaN(), End: 1, Step: 0.1}},
		{name: "inf end", r: Range{Start: 0, End: math.Inf(1), Step: 0.1}},
		{name: "too many", r: Range{Start: 0, End: 1, Step: 1e-12}},
		{name: "default above end", r: DefaultRange(1)},
		{name: "step below resolution", r: Range{Start: 0.001, End: 0.00100000000000001, Step: 1e-19}},
		{name: "step of one ulp", r: Range{Start: 1, End: 1 + 1e-12, Step: 0x1p-52}},
		{name: "point limit", r: Range{Start: 0, End: 1, Step: 1.0 / maxSweepPoints}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.r.Validate(); !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("Validate() error = %v, want ErrInvalidRange", err)
			}
		})
	}
}

func TestRangeValidateAcceptsLargeGrid(t *testing.T) {
	r := Range{Start: 0, End: 1, Step: 2.0 / maxSweepPoints}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestRangeNearResolutionIsStrictlyIncreasing(t *testing.T) {
	r := Range{Start: 1, End: 1 + 64*0x1p-52, Step: 3 * 0x1p-52}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	freqs := r.Frequencies()
	for i := 1; i < len(freqs); i++ {
		if !(freqs[i] > freqs[i-1]) {
			t.Fatalf("freqs[%d] = %v not above %v", i, freqs[i], freqs[i-1])
		}
	}
}

func TestSweepRejectsInvalidInput(t *testing.T) {
	s := testutil.Series(t, []float64{0, 1}, []float64{0, 1})

	if _, err := Sweep(s, Range{Start: 1, End: 0, Step: 1}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("Sweep() error = %v, want ErrInvalidRange", err)
	}

	one, err := series.FromPoints([]series.DataPoint{{Time: 0, WaterLevel: 1}})
	if err != nil {
		t.Fatalf("FromPoints() error = %v", err)
	}
	if _, err := Sweep(one, Range{Start: 0, End: 1, Step: 1}); !errors.Is(err, ErrShortSeries) {
		t.Fatalf("Sweep() error = %v, want ErrShortSeries", err)
	}
	if _, err := Sweep(nil, Range{Start: 0, End: 1, Step: 1}); !errors.Is(err, ErrShortSeries) {
		t.Fatalf("Sweep(nil) error = %v, want ErrShortSeries", err)
	}
}

func TestSweepTriangleEndToEnd(t *testing.T) {
	s, err := series.New([]series.Sample{
		{Date: "2020/01/01", Time: "00:00", Verified: 1.0},
		{Date: "2020/01/01", Time: "01:00", Verified: 2.0},
		{Date: "2020/01/01", Time: "02:00", Verified: 1.0},
	})
	if err != nil {
		t.Fatalf("series.New() error = %v", err)
	}

	sp, err := Sweep(s, Range{Start: 0, End: 0, Step: 1})
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	pts := sp.Points()
	if len(pts) != 1 {
		t.Fatalf("len(points) = %d, want 1", len(pts))
	}
	if pts[0].Freq != 0 || math.Abs(pts[0].Amplitude-1.5) > 1e-12 {
		t.Fatalf("point = %+v, want {0 1.5}", pts[0])
	}
}

func TestSweepMatchesCoefficient(t *testing.T) {
	times := testutil.JitteredTimes(3, 400, 14*day, 0.4)
	s := testutil.Series(t, times, testutil.SampleSine(times, m2Freq, 1, 0.2))
	r := Range{Start: 0, End: DefaultEndFrequency, Step: DefaultEndFrequency / 97}

	serial, err := Sweep(s, r, core.WithWorkers(1))
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	parallel, err := Sweep(s, r, core.WithWorkers(8), core.WithChunkSize(3))
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	if serial.Len() != r.Count() || parallel.Len() != r.Count() {
		t.Fatalf("lengths = %d, %d, want %d", serial.Len(), parallel.Len(), r.Count())
	}

	for i, f := range serial.Freqs {
		if parallel.Freqs[i] != f {
			t.Fatalf("freq[%d] = %v, want %v", i, parallel.Freqs[i], f)
		}
		if parallel.Coeffs[i] != serial.Coeffs[i] {
			t.Fatalf("coeff[%d] differs between worker counts: %v vs %v", i, parallel.Coeffs[i], serial.Coeffs[i])
		}
		if serial.Coeffs[i] != Coefficient(s, f) {
			t.Fatalf("coeff[%d] = %v, want Coefficient(%v)", i, serial.Coeffs[i], f)
		}
	}
}

func TestSpectrumViews(t *testing.T) {
	times := testutil.JitteredTimes(5, 200, 7*day, 0.3)
	s := testutil.Series(t, times, testutil.SampleSine(times, m2Freq, 2, 0))

	sp, err := Sweep(s, DefaultRange(0))
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	amps := sp.Amplitudes()
	phases := sp.Phases()
	power := sp.Power()
	pts := sp.Points()
	if len(amps) != sp.Len() || len(phases) != sp.Len() || len(pts) != sp.Len() {
		t.Fatalf("view lengths %d/%d/%d, want %d", len(amps), len(phases), len(pts), sp.Len())
	}

	testutil.RequireFinite(t, amps)
	testutil.RequireFinite(t, phases)
	for i, a := range amps {
		if a < 0 {
			t.Fatalf("amplitude[%d] = %v, want >= 0", i, a)
		}
		if math.Abs(a-Amplitude(s, sp.Freqs[i])) > 1e-12 {
			t.Fatalf("amplitude[%d] = %v, want %v", i, a, Amplitude(s, sp.Freqs[i]))
		}
		if math.Abs(power[i]-a*a) > 1e-12*math.Max(1, a*a) {
			t.Fatalf("power[%d] = %v, want %v", i, power[i], a*a)
		}
		if pts[i].Freq != sp.Freqs[i] || pts[i].Amplitude != a {
			t.Fatalf("point[%d] = %+v mismatch", i, pts[i])
		}
	}
}

func TestEmptySpectrumViews(t *testing.T) {
	var sp Spectrum
	if sp.Amplitudes() != nil || sp.Power() != nil || sp.Phases() != nil || len(sp.Points()) != 0 {
		t.Fatal("expected empty views for empty spectrum")
	}
}

func TestSpectrumAbove(t *testing.T) {
	sp := &Spectrum{
		Freqs:  []float64{0, 0.5, 1},
		Coeffs: []complex128{3, 1i, 2},
	}

	pos := sp.Above(0)
	testutil.RequireSliceNearlyEqual(t, pos.Freqs, []float64{0.5, 1}, 0)
	if pos.Coeffs[0] != 1i || pos.Coeffs[1] != 2 {
		t.Fatalf("Above(0).Coeffs = %v", pos.Coeffs)
	}
	if sp.Above(1).Len() != 0 || sp.Above(-1).Len() != 3 {
		t.Fatal("Above bounds")
	}
}

func TestRemoveMeanMatchesSweepOfDemeanedSeries(t *testing.T) {
	times := testutil.JitteredTimes(12, 500, 20*day, 0.3)
	levels := testutil.Add(
		testutil.SampleSine(times, m2Freq, 1, 0.3),
		testutil.DC(1.3, len(times)),
	)
	s := testutil.Series(t, times, levels)
	r := Range{Start: 0, End: DefaultEndFrequency, Step: DefaultEndFrequency / 500}

	sp, err := Sweep(s, r)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	before := append([]complex128(nil), sp.Coeffs...)

	got := RemoveMean(s, sp)
	if got.Coeffs[0] != 0 {
		t.Fatalf("coefficient at 0 Hz = %v, want 0", got.Coeffs[0])
	}

	mean := real(Coefficient(s, 0))
	shifted := make([]float64, len(levels))
	for i, v := range levels {
		shifted[i] = v - mean
	}
	want, err := Sweep(testutil.Series(t, times, shifted), r)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	for i := range want.Coeffs {
		testutil.RequireComplexNear(t, got.Coeffs[i], want.Coeffs[i], 1e-10)
	}

	for i := range before {
		if sp.Coeffs[i] != before[i] {
			t.Fatal("RemoveMean must not modify its input")
		}
	}

	// The mean dominated the raw spectrum; after removal M2 does.
	amps := got.Amplitudes()
	best := 0
	for i, a := range amps {
		if a > amps[best] {
			best = i
		}
	}
	if math.Abs(got.Freqs[best]-m2Freq) > r.Step {
		t.Fatalf("largest amplitude at %v Hz, want M2 %v Hz", got.Freqs[best], m2Freq)
	}
}
