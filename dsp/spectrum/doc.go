// Package spectrum computes the continuous-time Fourier transform of
// irregularly sampled, piecewise-linear time series.
//
// The signal described by a [series.Series] is the straight line between each
// pair of consecutive points. For a frequency f (Hz) the package evaluates
//
//	X(f) = 1/T * integral over [Start, End] of x(t) * exp(-2*pi*i*f*t) dt
//
// in closed form, segment by segment, where T is the series span. No
// resampling, windowing or quadrature is involved: the result is exact under
// the piecewise-linear model up to floating-point rounding.
//
// [Sweep] evaluates X(f) over an arithmetic frequency [Range] using a pool of
// workers and returns a [Spectrum]; [Amplitudes], [Powers] and [Phases] turn
// complex coefficients into real-valued spectra.
package spectrum
