// Package series builds irregularly sampled time series from timestamped
// measurements.
//
// A [Series] is an immutable, strictly increasing sequence of [DataPoint]
// values whose times are seconds elapsed since the first sample. Between two
// consecutive points the signal is modelled as a straight line, so a Series
// also defines a continuous piecewise-linear interpolant over [Start, End].
//
// Construction is strict: an empty input, an unparsable timestamp, two
// samples at the same elapsed time, out-of-order samples or non-finite values
// are rejected with the sentinel errors declared in this package.
package series
