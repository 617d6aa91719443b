package series

import (
	"fmt"
	"sort"
	"time"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-tide/dsp/core"
)

// DataPoint is one sample of a [Series].
type DataPoint struct {
	Time       float64 // seconds
	WaterLevel float64
}

// Series is an immutable, strictly increasing sequence of data points.
//
// A Series is safe for concurrent reads.
type Series struct {
	times  []float64
	levels []float64
}

// New builds a Series from raw samples. The first sample defines time zero;
// every other point's time is the whole number of seconds elapsed since it,
// truncated toward zero.
func New(samples []Sample) (*Series, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("series: %w", ErrEmptyInput)
	}

	t0, err := samples[0].Timestamp()
	if err != nil {
		return nil, fmt.Errorf("series: sample 0: %w", err)
	}

	points := make([]DataPoint, len(samples))
	for i, s := range samples {
		ts := t0
		if i > 0 {
			ts, err = s.Timestamp()
			if err != nil {
				return nil, fmt.Errorf("series: sample %d: %w", i, err)
			}
		}
		points[i] = DataPoint{
			Time:       float64(int64(ts.Sub(t0) / time.Second)),
			WaterLevel: s.Verified,
		}
	}

	return FromPoints(points)
}

// FromPoints builds a Series from points whose times are already expressed
// in seconds. Times need not start at zero.
func FromPoints(points []DataPoint) (*Series, error) {
	if err := validate(points); err != nil {
		return nil, err
	}

	s := &Series{
		times:  make([]float64, len(points)),
		levels: make([]float64, len(points)),
	}
	for i, p := range points {
		s.times[i] = p.Time
		s.levels[i] = p.WaterLevel
	}
	return s, nil
}

func validate(points []DataPoint) error {
	if len(points) == 0 {
		return fmt.Errorf("series: %w", ErrEmptyInput)
	}
	for i, p := range points {
		if !core.IsFinite(p.Time) || !core.IsFinite(p.WaterLevel) {
			return fmt.Errorf("series: %w at point %d: time=%v level=%v", ErrNonFinite, i, p.Time, p.WaterLevel)
		}
		if i == 0 {
			continue
		}
		prev := points[i-1].Time
		switch {
		case p.Time == prev:
			return fmt.Errorf("series: %w: points %d and %d both at t=%v", ErrDegenerateSegment, i-1, i, p.Time)
		case p.Time < prev:
			return fmt.Errorf("series: %w: point %d at t=%v precedes t=%v", ErrUnordered, i, p.Time, prev)
		}
	}
	return nil
}

// Len returns the number of points.
func (s *Series) Len() int { return len(s.times) }

// Segments returns the number of linear segments, Len()-1.
func (s *Series) Segments() int {
	if len(s.times) < 2 {
		return 0
	}
	return len(s.times) - 1
}

// At returns the i-th point.
func (s *Series) At(i int) DataPoint {
	return DataPoint{Time: s.times[i], WaterLevel: s.levels[i]}
}

// Segment returns the end points of the i-th segment, 0 <= i < Segments().
func (s *Series) Segment(i int) (t1, v1, t2, v2 float64) {
	return s.times[i], s.levels[i], s.times[i+1], s.levels[i+1]
}

// Points returns a copy of all points.
func (s *Series) Points() []DataPoint {
	out := make([]DataPoint, len(s.times))
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

// Times returns a copy of the point times.
func (s *Series) Times() []float64 { return append([]float64(nil), s.times...) }

// Levels returns a copy of the point levels.
func (s *Series) Levels() []float64 { return append([]float64(nil), s.levels...) }

// Start returns the time of the first point.
func (s *Series) Start() float64 { return s.times[0] }

// End returns the time of the last point.
func (s *Series) End() float64 { return s.times[len(s.times)-1] }

// Span returns End()-Start(). It is zero for a single-point series.
func (s *Series) Span() float64 { return s.End() - s.Start() }

// ValueAt evaluates the piecewise-linear interpolant at t. Times outside
// [Start, End] are clamped to the nearest end point.
func (s *Series) ValueAt(t float64) float64 {
	t = core.Clamp(t, s.Start(), s.End())
	j := sort.SearchFloat64s(s.times, t)
	if j < len(s.times) && s.times[j] == t {
		return s.levels[j]
	}
	t1, v1, t2, v2 := s.Segment(j - 1)
	return v1 + (t-t1)/(t2-t1)*(v2-v1)
}

// Scale returns a new Series with every level multiplied by k.
func (s *Series) Scale(k float64) *Series {
	out := &Series{
		times:  s.Times(),
		levels: make([]float64, len(s.levels)),
	}
	vecmath.ScaleBlock(out.levels, s.levels, k)
	return out
}

// Shift returns a new Series with every time offset by dt seconds.
func (s *Series) Shift(dt float64) *Series {
	out := &Series{
		times:  make([]float64, len(s.times)),
		levels: s.Levels(),
	}
	for i, t := range s.times {
		out.times[i] = t + dt
	}
	return out
}
