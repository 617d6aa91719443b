// Package ingest reads water-level records from CSV.
//
// The first row is a header. Columns are located by name, so their order is
// free and extra columns are ignored. Parsing is strict: the first malformed
// row aborts the read.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-tide/dsp/series"
)

// Header names of the recognised columns.
const (
	ColumnDate      = "Date"
	ColumnTime      = "Time (GMT)"
	ColumnPredicted = "Predicted (m)"
	ColumnVerified  = "Verified (m)"
)

var (
	// ErrIngestion wraps every failure to read or decode the record source.
	ErrIngestion = errors.New("ingestion failed")
	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("missing column")
)

type columns struct {
	date, time, predicted, verified int
}

func mapColumns(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		idx[h] = i
	}

	cols := columns{predicted: -1}
	for _, req := range []struct {
		name string
		dst  *int
	}{
		{ColumnDate, &cols.date},
		{ColumnTime, &cols.time},
		{ColumnVerified, &cols.verified},
	} {
		i, ok := idx[req.name]
		if !ok {
			return columns{}, fmt.Errorf("ingest: %w: %w %q", ErrIngestion, ErrMissingColumn, req.name)
		}
		*req.dst = i
	}
	if i, ok := idx[ColumnPredicted]; ok {
		cols.predicted = i
	}
	return cols, nil
}

func parseLevel(row []string, col, line int, name string) (float64, error) {
	raw := strings.TrimSpace(row[col])
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("ingest: %w: line %d: column %q: invalid number %q", ErrIngestion, line, name, raw)
	}
	return v, nil
}

// Read decodes all records from r.
func Read(r io.Reader) ([]series.Sample, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("ingest: %w: no header row", ErrIngestion)
		}
		return nil, fmt.Errorf("ingest: %w: read header: %v", ErrIngestion, err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var samples []series.Sample
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: %w: %v", ErrIngestion, err)
		}

		s := series.Sample{
			Date: strings.TrimSpace(row[cols.date]),
			Time: strings.TrimSpace(row[cols.time]),
		}
		if s.Verified, err = parseLevel(row, cols.verified, line, ColumnVerified); err != nil {
			return nil, err
		}
		if cols.predicted >= 0 {
			if s.Predicted, err = parseLevel(row, cols.predicted, line, ColumnPredicted); err != nil {
				return nil, err
			}
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// ReadFile decodes all records from the file at path.
func ReadFile(path string) ([]series.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w: %v", ErrIngestion, err)
	}
	defer f.Close()

	return Read(f)
}

// Load reads the file at path and builds a series from its records.
func Load(path string) (*series.Series, error) {
	samples, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return series.New(samples)
}
