package bloodcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/simaogato/healthflow-backend/internal/domain"
	"github.com/simaogato/healthflow-backend/internal/usecase/ingest"
)

// Required and optional header columns. Column order in the file is free.
const (
	colMarker = "marker"
	colDate   = "date"
	colValue  = "value"
	colUnit   = "unit"
	colRefMin = "ref_min"
	colRefMax = "ref_max"
)

var requiredColumns = []string{colMarker, colDate, colValue}

// Parse reads a lab-results CSV with a header row into raw readings.
// Blank lines are ignored. Field values are not interpreted here; the ingest layer validates them.
func Parse(r io.Reader) ([]ingest.RawBloodReading, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: blood results file is empty", domain.ErrInvalidArgument)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing %q column", domain.ErrInvalidArgument, col)
		}
	}

	field := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var out []ingest.RawBloodReading
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read blood results: %w", err)
		}

		out = append(out, ingest.RawBloodReading{
			Marker: field(record, colMarker),
			Date:   field(record, colDate),
			Value:  field(record, colValue),
			Unit:   field(record, colUnit),
			RefMin: field(record, colRefMin),
			RefMax: field(record, colRefMax),
		})
	}

	return out, nil
}
