package applehealth

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/simaogato/healthflow-backend/internal/domain"
	"github.com/simaogato/healthflow-backend/internal/usecase/ingest"
)

// SourceName tags samples imported from an Apple Health export
const SourceName = "apple_health"

const poundsToKilograms = 0.45359237

// recordTypes maps HealthKit quantity identifiers to metrics
var recordTypes = map[string]domain.MetricType{
	"HKQuantityTypeIdentifierHeartRate":                domain.MetricHeartRate,
	"HKQuantityTypeIdentifierRestingHeartRate":         domain.MetricRestingHeartRate,
	"HKQuantityTypeIdentifierBodyMass":                 domain.MetricWeight,
	"HKQuantityTypeIdentifierBodyFatPercentage":        domain.MetricBodyFat,
	"HKQuantityTypeIdentifierHeartRateVariabilitySDNN": domain.MetricHRV,
	"HKQuantityTypeIdentifierVO2Max":                   domain.MetricVO2Max,
	"HKQuantityTypeIdentifierStepCount":                domain.MetricSteps,
}

// Stats counts what a parse saw
type Stats struct {
	Records int // <Record> elements read
	Matched int // records of a supported type
}

// Parse streams an export.xml document and calls fn for every supported record
// Records of unsupported types are ignored. Values are converted to the metric's unit:
// pounds become kilograms and body fat fractions become percentages.
func Parse(r io.Reader, fn func(ingest.RawSample) error) (Stats, error) {
	var stats Stats
	dec := xml.NewDecoder(r)
	dec.Strict = false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("failed to read health export: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Record" {
			continue
		}
		stats.Records++

		raw, ok := recordToSample(start.Attr)
		if !ok {
			continue
		}
		stats.Matched++

		if err := fn(raw); err != nil {
			return stats, err
		}
	}
}

// ParseAll collects every supported record of an export.xml document
func ParseAll(r io.Reader) ([]ingest.RawSample, Stats, error) {
	var out []ingest.RawSample
	stats, err := Parse(r, func(s ingest.RawSample) error {
		out = append(out, s)
		return nil
	})
	return out, stats, err
}

// OpenExport opens an export.xml file, or the export.xml inside an export.zip archive
// The caller must close the returned reader.
func OpenExport(name string) (io.ReadCloser, error) {
	if !strings.EqualFold(path.Ext(name), ".zip") {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open health export: %w", err)
		}
		return f, nil
	}

	zr, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open health export archive: %w", err)
	}
	for _, f := range zr.File {
		if path.Base(f.Name) != "export.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			zr.Close()
			return nil, fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		return &zipEntry{ReadCloser: rc, archive: zr}, nil
	}
	zr.Close()
	return nil, fmt.Errorf("%w: no export.xml in %s", domain.ErrNotFound, name)
}

type zipEntry struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (z *zipEntry) Close() error {
	err := z.ReadCloser.Close()
	if cerr := z.archive.Close(); err == nil {
		err = cerr
	}
	return err
}

func recordToSample(attrs []xml.Attr) (ingest.RawSample, bool) {
	var recordType, unit, start, value string
	for _, a := range attrs {
		switch a.Name.Local {
		case "type":
			recordType = a.Value
		case "unit":
			unit = a.Value
		case "startDate":
			start = a.Value
		case "value":
			value = a.Value
		}
	}

	metric, ok := recordTypes[recordType]
	if !ok {
		return ingest.RawSample{}, false
	}

	return ingest.RawSample{
		Metric: string(metric),
		Date:   start,
		Value:  convertValue(metric, unit, value),
		Source: SourceName,
	}, true
}

// convertValue rescales values whose export unit differs from the metric unit.
// Unparseable values pass through untouched so the ingest layer can report them.
func convertValue(metric domain.MetricType, unit, value string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return value
	}

	switch {
	case metric == domain.MetricWeight && strings.EqualFold(unit, "lb"):
		v *= poundsToKilograms
	case metric == domain.MetricBodyFat && v <= 1:
		v *= 100
	default:
		return value
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
