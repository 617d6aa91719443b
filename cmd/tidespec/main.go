// Command tidespec prints the amplitude spectrum of an irregularly sampled
// water-level record.
//
// Usage:
//
//	tidespec [flags] <input-path> [start_freq] [end_freq] [step]
//
// Frequencies are given in Hz. The spectrum is written to standard output as
// one "<cycles_per_day> <amplitude>" line per frequency.
//
// Examples:
//
//	tidespec station.csv
//	tidespec -peaks 8 station.csv 0 0.0000579 0.00000001
//	tidespec -db -phase -workers 4 station.csv
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cwbudde/algo-tide/dsp/core"
	"github.com/cwbudde/algo-tide/dsp/series"
	"github.com/cwbudde/algo-tide/dsp/spectrum"
	"github.com/cwbudde/algo-tide/internal/ingest"
	"github.com/cwbudde/algo-tide/internal/report"
	frequencystats "github.com/cwbudde/algo-tide/stats/frequency"
	timestats "github.com/cwbudde/algo-tide/stats/time"
)

var errUsage = errors.New("usage: tidespec [flags] <input-path> [start_freq] [end_freq] [step]")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tidespec", flag.ContinueOnError)
	fs.SetOutput(stderr)
	workers := fs.Int("workers", 0, "number of sweep workers (0 = GOMAXPROCS)")
	db := fs.Bool("db", false, "print amplitude in dB")
	phase := fs.Bool("phase", false, "append unwrapped phase in radians")
	summary := fs.Bool("summary", false, "print series and spectrum statistics to stderr")
	peaks := fs.Int("peaks", 0, "print the N dominant peaks to stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tidespec [flags] <input-path> [start_freq] [end_freq] [step]\n\n")
		fmt.Fprintf(stderr, "Prints the amplitude spectrum of a water-level record.\n")
		fmt.Fprintf(stderr, "Frequencies are in Hz; the default sweep covers 0 to 5 cycles/day in 30000 steps.\n")
		fmt.Fprintf(stderr, "Without step, the step spans start_freq to 5 cycles/day in 30000 steps, so a\n")
		fmt.Fprintf(stderr, "start_freq at or above 5 cycles/day needs an explicit step.\n")
		fmt.Fprintf(stderr, "Statistics from -summary and -peaks exclude the mean level.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  tidespec station.csv\n")
		fmt.Fprintf(stderr, "  tidespec -peaks 8 station.csv 0 0.0000579 0.00000001\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 4 {
		fs.Usage()
		return errUsage
	}

	r, err := parseRange(rest[1:])
	if err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}

	s, err := ingest.Load(rest[0])
	if err != nil {
		return err
	}

	var opts []core.ComputeOption
	if *workers > 0 {
		opts = append(opts, core.WithWorkers(*workers))
	}
	sp, err := spectrum.Sweep(s, r, opts...)
	if err != nil {
		return err
	}

	// Statistics are computed before any output so that a failure never
	// leaves a partial spectrum on stdout.
	var summaryOut bytes.Buffer
	if *summary || *peaks > 0 {
		if err := writeAnalysis(&summaryOut, s, sp, *summary, *peaks); err != nil {
			return err
		}
	}

	if err := report.WriteSpectrum(stdout, sp, report.Options{DB: *db, Phase: *phase}); err != nil {
		return err
	}
	if _, err := summaryOut.WriteTo(stderr); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// writeAnalysis summarizes the oscillating part of the spectrum: the mean
// level is removed and only frequencies above 0 Hz are considered, so peaks
// are tidal constituents rather than the datum offset.
func writeAnalysis(w io.Writer, s *series.Series, sp *spectrum.Spectrum, summary bool, peaks int) error {
	tidal := spectrum.RemoveMean(s, sp).Above(0)
	amps := tidal.Amplitudes()

	if summary {
		fst, err := frequencystats.Calculate(tidal.Freqs, amps)
		if err != nil {
			return err
		}
		if err := report.WriteSummary(w, timestats.Calculate(s), fst); err != nil {
			return err
		}
	}
	if peaks > 0 {
		found, err := frequencystats.Peaks(tidal.Freqs, amps, peaks)
		if err != nil {
			return err
		}
		if err := report.WritePeaks(w, found); err != nil {
			return err
		}
	}
	return nil
}

// parseRange builds the sweep grid from the optional start, end and step
// arguments. A missing step spans start to the default end in the default
// number of steps, even when end is given, so it cannot be derived for a
// start at or above the default end.
func parseRange(args []string) (spectrum.Range, error) {
	names := [...]string{"start_freq", "end_freq", "step"}
	vals := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return spectrum.Range{}, fmt.Errorf("invalid %s %q: %w", names[i], a, err)
		}
		vals[i] = v
	}

	var start float64
	if len(vals) > 0 {
		start = vals[0]
	}
	if len(vals) < 3 && start >= spectrum.DefaultEndFrequency {
		return spectrum.Range{}, fmt.Errorf("%w: step is required when start_freq %v is at or above the default end %v Hz (5 cycles/day)",
			spectrum.ErrInvalidRange, start, spectrum.DefaultEndFrequency)
	}
	r := spectrum.DefaultRange(start)
	if len(vals) > 1 {
		r.End = vals[1]
	}
	if len(vals) > 2 {
		r.Step = vals[2]
	}
	return r, nil
}
