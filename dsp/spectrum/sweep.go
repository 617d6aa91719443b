package spectrum

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/cwbudde/algo-tide/dsp/core"
	"github.com/cwbudde/algo-tide/dsp/series"
)

const (
	// SecondsPerDay converts between Hz and cycles per day.
	SecondsPerDay = 86400

	// DefaultEndFrequency is 5 cycles per day, in Hz.
	DefaultEndFrequency = 5.0 / SecondsPerDay

	// DefaultSteps is the number of steps between the start frequency and
	// [DefaultEndFrequency] in [DefaultRange].
	DefaultSteps = 30000

	// maxSweepPoints bounds the memory a sweep allocates up front: every
	// point holds a float64 frequency and a complex128 coefficient, 24 bytes,
	// so the cap is about 400 MB.
	maxSweepPoints = 1 << 24

	// countTolerance absorbs rounding in (End-Start)/Step so that an End
	// reached by exactly k steps is included.
	countTolerance = 1e-9
)

var (
	// ErrInvalidRange is returned for a non-positive step, inverted bounds or
	// non-finite parameters.
	ErrInvalidRange = errors.New("invalid frequency range")
	// ErrShortSeries is returned when a series has fewer than two points and
	// therefore no time span.
	ErrShortSeries = errors.New("series needs at least two points")
)

// Range is an arithmetic frequency grid Start, Start+Step, ... up to and
// including the last value <= End. All values are in Hz.
type Range struct {
	Start float64
	End   float64
	Step  float64
}

// DefaultRange returns the grid from start to [DefaultEndFrequency] split into
// [DefaultSteps] equal steps.
func DefaultRange(start float64) Range {
	return Range{
		Start: start,
		End:   DefaultEndFrequency,
		Step:  (DefaultEndFrequency - start) / DefaultSteps,
	}
}

// Validate reports whether r describes a non-empty, bounded grid.
func (r Range) Validate() error {
	if !core.IsFinite(r.Start) || !core.IsFinite(r.End) || !core.IsFinite(r.Step) {
		return fmt.Errorf("sweep: %w: non-finite bounds start=%v end=%v step=%v", ErrInvalidRange, r.Start, r.End, r.Step)
	}
	if r.Step <= 0 {
		return fmt.Errorf("sweep: %w: step must be > 0: %v", ErrInvalidRange, r.Step)
	}
	if r.Start > r.End {
		return fmt.Errorf("sweep: %w: start %v > end %v", ErrInvalidRange, r.Start, r.End)
	}
	// Start+i*Step must stay strictly increasing after rounding, which needs
	// a step of more than two ulps at the largest magnitude on the grid.
	m := math.Max(math.Abs(r.Start), math.Abs(r.End))
	if ulp := math.Nextafter(m, math.Inf(1)) - m; r.Step <= 2*ulp {
		return fmt.Errorf("sweep: %w: step %v below float64 resolution at %v", ErrInvalidRange, r.Step, m)
	}
	if steps := (r.End - r.Start) / r.Step; steps >= maxSweepPoints {
		return fmt.Errorf("sweep: %w: %.0f steps exceeds limit of %d points", ErrInvalidRange, steps, maxSweepPoints)
	}
	return nil
}

// Count returns the number of frequencies in r. r must be valid.
func (r Range) Count() int {
	steps := (r.End - r.Start) / r.Step
	return int(math.Floor(steps+countTolerance*math.Max(1, steps))) + 1
}

// Frequencies returns the grid values, computed as Start+i*Step and capped at
// End. r must be valid.
func (r Range) Frequencies() []float64 {
	out := make([]float64, r.Count())
	for i := range out {
		f := r.Start + float64(i)*r.Step
		if f > r.End {
			f = r.End
		}
		out[i] = f
	}
	return out
}

// FrequencyPoint is one amplitude sample of a spectrum.
type FrequencyPoint struct {
	Freq      float64 // Hz
	Amplitude float64
}

// Spectrum holds the complex coefficients of a sweep, ascending by frequency.
type Spectrum struct {
	Freqs  []float64
	Coeffs []complex128
}

// Len returns the number of frequencies.
func (sp *Spectrum) Len() int { return len(sp.Freqs) }

// Amplitudes returns |X(f)| for every swept frequency.
func (sp *Spectrum) Amplitudes() []float64 { return Amplitudes(sp.Coeffs) }

// Power returns |X(f)|^2 for every swept frequency.
func (sp *Spectrum) Power() []float64 { return Powers(sp.Coeffs) }

// Phases returns arg(X(f)) in radians for every swept frequency.
func (sp *Spectrum) Phases() []float64 { return Phases(sp.Coeffs) }

// Points pairs each frequency with its amplitude.
func (sp *Spectrum) Points() []FrequencyPoint {
	amps := sp.Amplitudes()
	out := make([]FrequencyPoint, len(sp.Freqs))
	for i, f := range sp.Freqs {
		out[i] = FrequencyPoint{Freq: f, Amplitude: amps[i]}
	}
	return out
}

// Above returns the part of sp at frequencies strictly greater than f. The
// result shares memory with sp.
func (sp *Spectrum) Above(f float64) *Spectrum {
	i := sort.Search(len(sp.Freqs), func(i int) bool { return sp.Freqs[i] > f })
	return &Spectrum{Freqs: sp.Freqs[i:], Coeffs: sp.Coeffs[i:]}
}

// RemoveMean returns a copy of sp with the time-weighted mean of s taken out
// of every coefficient, as if the sweep had run on s minus its mean. The
// coefficient at f = 0 becomes zero and the mean's leakage into low
// frequencies disappears, leaving only the oscillating part of the signal.
//
// sp must have been computed from s.
func RemoveMean(s *series.Series, sp *Spectrum) *Spectrum {
	out := &Spectrum{
		Freqs:  append([]float64(nil), sp.Freqs...),
		Coeffs: make([]complex128, len(sp.Coeffs)),
	}
	if s.Segments() == 0 {
		return out
	}

	mean := Coefficient(s, 0)
	t0, t1, span := s.Start(), s.End(), complex(s.Span(), 0)
	for i, f := range sp.Freqs {
		// Coefficient of the constant 1 over [t0, t1].
		unit := segmentIntegral(t0, 1, t1, 1, f) / span
		out.Coeffs[i] = sp.Coeffs[i] - mean*unit
	}
	return out
}

// Sweep evaluates [Coefficient] for every frequency of r.
//
// Frequencies are split into chunks of cfg.ChunkSize and handed to
// cfg.Workers goroutines. Each frequency is written to its own slot, so the
// result is ascending by frequency and identical to a serial evaluation
// regardless of scheduling.
func Sweep(s *series.Series, r Range, opts ...core.ComputeOption) (*Spectrum, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if s == nil || s.Len() < 2 {
		return nil, fmt.Errorf("sweep: %w", ErrShortSeries)
	}

	cfg := core.ApplyComputeOptions(opts...)
	sp := &Spectrum{Freqs: r.Frequencies()}
	sp.Coeffs = make([]complex128, len(sp.Freqs))

	chunks := core.Chunks(len(sp.Freqs), cfg.ChunkSize)
	workers := min(cfg.Workers, len(chunks))
	if workers <= 1 {
		evaluate(s, sp, 0, len(sp.Freqs))
		return sp, nil
	}

	jobs := make(chan [2]int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				evaluate(s, sp, c[0], c[1])
			}
		}()
	}
	for _, c := range chunks {
		jobs <- c
	}
	close(jobs)
	wg.Wait()

	return sp, nil
}

func evaluate(s *series.Series, sp *Spectrum, lo, hi int) {
	for i := lo; i < hi; i++ {
		sp.Coeffs[i] = Coefficient(s, sp.Freqs[i])
	}
}
