package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/algo-tide/dsp/spectrum"
	"github.com/cwbudde/algo-tide/internal/testutil"
	frequencystats "github.com/cwbudde/algo-tide/stats/frequency"
	timestats "github.com/cwbudde/algo-tide/stats/time"
)

func TestWriteSpectrum(t *testing.T) {
	sp := &spectrum.Spectrum{
		Freqs:  []float64{0, 0.5, 1},
		Coeffs: []complex128{1.5, 3 + 4i, 0.25i},
	}

	var buf bytes.Buffer
	if err := WriteSpectrum(&buf, sp, Options{}); err != nil {
		t.Fatalf("WriteSpectrum() error = %v", err)
	}

	want := "0 1.5\n43200 5\n86400 0.25\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteSpectrumSmallValuesNoExponent(t *testing.T) {
	sp := &spectrum.Spectrum{Freqs: []float64{1e-9}, Coeffs: []complex128{1e-7}}

	var buf bytes.Buffer
	if err := WriteSpectrum(&buf, sp, Options{}); err != nil {
		t.Fatalf("WriteSpectrum() error = %v", err)
	}
	if strings.ContainsAny(buf.String(), "eE") {
		t.Fatalf("output uses exponent notation: %q", buf.String())
	}
}

func TestWriteSpectrumOptions(t *testing.T) {
	sp := &spectrum.Spectrum{
		Freqs:  []float64{0, 0.5},
		Coeffs: []complex128{1, -1i},
	}

	var buf bytes.Buffer
	if err := WriteSpectrum(&buf, sp, Options{DB: true, Phase: true}); err != nil {
		t.Fatalf("WriteSpectrum() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if lines[0] != "0 0 0" {
		t.Fatalf("line 0 = %q, want %q", lines[0], "0 0 0")
	}
	if lines[1] != "43200 0 -1.5707963267948966" {
		t.Fatalf("line 1 = %q, want %q", lines[1], "43200 0 -1.5707963267948966")
	}
}

type failingWriter struct{}

var errWrite = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestWriteSpectrumPropagatesErrors(t *testing.T) {
	sp := &spectrum.Spectrum{Freqs: []float64{0}, Coeffs: []complex128{1}}
	if err := WriteSpectrum(failingWriter{}, sp, Options{}); !errors.Is(err, errWrite) {
		t.Fatalf("WriteSpectrum() error = %v, want %v", err, errWrite)
	}
}

func TestWriteSummaryAndPeaks(t *testing.T) {
	s := testutil.Series(t, []float64{0, 3600, 7200}, []float64{1, 2, 1})
	sp, err := spectrum.Sweep(s, spectrum.Range{Start: 0, End: 2.0 / spectrum.SecondsPerDay, Step: 0.5 / spectrum.SecondsPerDay})
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	fs, err := frequencystats.Calculate(sp.Freqs, sp.Amplitudes())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, timestats.Calculate(s), fs); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"samples", "mean level", "1.5000", "peak amplitude"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	peaks := []frequencystats.Peak{{Index: 4, Freq: 2.0 / spectrum.SecondsPerDay, Magnitude: 0.5}}
	if err := WritePeaks(&buf, peaks); err != nil {
		t.Fatalf("WritePeaks() error = %v", err)
	}
	if !strings.Contains(buf.String(), "12.000") {
		t.Fatalf("peaks missing 12 h period:\n%s", buf.String())
	}
}
