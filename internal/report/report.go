// Package report formats sweep results and summaries as text.
package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-tide/dsp/core"
	"github.com/cwbudde/algo-tide/dsp/spectrum"
	frequencystats "github.com/cwbudde/algo-tide/stats/frequency"
	timestats "github.com/cwbudde/algo-tide/stats/time"
)

// Options selects optional spectrum columns.
type Options struct {
	// DB prints amplitude as 20*log10(amplitude).
	DB bool
	// Phase appends the unwrapped phase in radians.
	Phase bool
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CyclesPerDay converts a frequency in Hz to cycles per day.
func CyclesPerDay(hz float64) float64 {
	return hz * spectrum.SecondsPerDay
}

// WriteSpectrum writes one "<freq_per_day> <amplitude>" line per frequency,
// ascending.
func WriteSpectrum(w io.Writer, sp *spectrum.Spectrum, opts Options) error {
	bw := bufio.NewWriter(w)

	amps := sp.Amplitudes()
	var phases []float64
	if opts.Phase {
		phases = spectrum.UnwrapPhase(sp.Phases())
	}

	for i, f := range sp.Freqs {
		a := amps[i]
		if opts.DB {
			a = core.LinearToDB(a)
		}
		line := formatFloat(CyclesPerDay(f)) + " " + formatFloat(a)
		if opts.Phase {
			line += " " + formatFloat(phases[i])
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("report: write spectrum: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("report: write spectrum: %w", err)
	}
	return nil
}

// WriteSummary writes series and spectrum statistics as an aligned table.
func WriteSummary(w io.Writer, ts timestats.Stats, fs frequencystats.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	rows := []struct {
		name  string
		value string
	}{
		{"samples", strconv.Itoa(ts.Length)},
		{"span (days)", fmt.Sprintf("%.3f", ts.Span/spectrum.SecondsPerDay)},
		{"interval min/mean/max (s)", fmt.Sprintf("%.0f / %.1f / %.0f", ts.MinInterval, ts.MeanInterval, ts.MaxInterval)},
		{"mean level", fmt.Sprintf("%.4f", ts.Mean)},
		{"rms level", fmt.Sprintf("%.4f", ts.RMS)},
		{"std dev", fmt.Sprintf("%.4f", ts.StdDev)},
		{"min level", fmt.Sprintf("%.4f at t=%.0fs", ts.Min, ts.MinTime)},
		{"max level", fmt.Sprintf("%.4f at t=%.0fs", ts.Max, ts.MaxTime)},
		{"frequencies", strconv.Itoa(fs.Count)},
		{"peak amplitude", fmt.Sprintf("%.4f at %.4f cpd", fs.Max, CyclesPerDay(fs.MaxFreq))},
		{"centroid (cpd)", fmt.Sprintf("%.4f", CyclesPerDay(fs.Centroid))},
		{"spread (cpd)", fmt.Sprintf("%.4f", CyclesPerDay(fs.Spread))},
		{"3 dB bandwidth (cpd)", fmt.Sprintf("%.4f", CyclesPerDay(fs.Bandwidth))},
		{"flatness", fmt.Sprintf("%.4f", fs.Flatness)},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r.name, r.value)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("report: write summary: %w", err)
	}
	return nil
}

// WritePeaks writes dominant peaks with their frequency and period.
func WritePeaks(w io.Writer, peaks []frequencystats.Peak) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "rank\tcpd\tperiod (h)\tamplitude\n")
	for i, p := range peaks {
		period := math.Inf(1)
		if cpd := CyclesPerDay(p.Freq); cpd != 0 {
			period = 24 / cpd
		}
		fmt.Fprintf(tw, "%d\t%.4f\t%.3f\t%.4f\n", i+1, CyclesPerDay(p.Freq), period, p.Magnitude)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("report: write peaks: %w", err)
	}
	return nil
}
