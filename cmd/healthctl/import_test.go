package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"

	healthflowv1 "github.com/simaogato/healthflow-backend/internal/adapter/grpc/healthflow/v1"
)

type recordingImporter struct {
	batches [][]*healthflowv1.SampleRecord
}

func (r *recordingImporter) ImportSamples(ctx context.Context, in *healthflowv1.ImportSamplesRequest, opts ...grpc.CallOption) (*healthflowv1.ImportResponse, error) {
	r.batches = append(r.batches, in.Samples)
	return &healthflowv1.ImportResponse{Accepted: int32(len(in.Samples))}, nil
}

const exportXML = `<?xml version="1.0" encoding="UTF-8"?>
<HealthData locale="en_US">
 <Record type="HKQuantityTypeIdentifierHeartRate" unit="count/min" value="61" startDate="2024-05-01 08:00:00 +0000"/>
 <Record type="HKQuantityTypeIdentifierHeartRate" unit="count/min" value="64" startDate="2024-05-01 09:00:00 +0000"/>
 <Record type="HKQuantityTypeIdentifierStepCount" unit="count" value="1200" startDate="2024-05-01 10:00:00 +0000"/>
 <Record type="HKCategoryTypeIdentifierSleepAnalysis" value="HKCategoryValueSleepAnalysisInBed" startDate="2024-05-01 23:00:00 +0000"/>
 <Record type="HKQuantityTypeIdentifierRestingHeartRate" unit="count/min" value="52" startDate="2024-05-02 07:00:00 +0000"/>
</HealthData>`

func TestImportAppleHealth_Batches(t *testing.T) {
	importer := &recordingImporter{}

	totals, stats, err := importAppleHealth(context.Background(), importer, strings.NewReader(exportXML), "user-1", 3)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Records)
	assert.Equal(t, 4, stats.Matched)
	require.Len(t, importer.batches, 2)
	assert.Len(t, importer.batches[0], 3)
	assert.Len(t, importer.batches[1], 1)
	assert.Equal(t, "resting_heart_rate", importer.batches[1][0].Metric)

	assert.Equal(t, 2, totals.Requests)
	assert.Equal(t, 4, totals.Accepted)
}

func TestImportAppleHealth_NothingMatched(t *testing.T) {
	importer := &recordingImporter{}

	totals, _, err := importAppleHealth(context.Background(), importer, strings.NewReader("<HealthData/>"), "user-1", 0)
	require.NoError(t, err)
	assert.Empty(t, importer.batches)
	assert.Equal(t, 0, totals.Requests)
}

func TestPrintSummaries(t *testing.T) {
	var buf bytes.Buffer
	date := timestamppb.New(time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC))

	err := printSummaries(&buf, []*healthflowv1.MarkerSummary{
		{
			Label: "LDL Cholesterol",
			Unit:  "mg/dL",
			Latest: &healthflowv1.MarkerEvaluation{
				Date: date, Value: 90, RangeMin: 0, RangeMax: 100, RangeSource: "CATALOG", Status: "NORMAL",
			},
			Trend: &healthflowv1.Trend{Direction: "DOWN", Tone: "FAVORABLE", Delta: -40},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "MARKER")
	assert.Contains(t, out, "LDL Cholesterol")
	assert.Contains(t, out, "2024-04-10")
	assert.Contains(t, out, "0-100 (CATALOG)")
	assert.Contains(t, out, "DOWN FAVORABLE (-40)")
}

func TestPrintSeries_OpenWindow(t *testing.T) {
	var buf bytes.Buffer

	err := printSeries(&buf, &healthflowv1.Series{
		Metric:     "weight",
		Unit:       "kg",
		Timeframe:  "last1year",
		BucketKind: "monthly",
		From:       timestamppb.New(time.Date(2023, 6, 30, 12, 0, 0, 0, time.UTC)),
		Points: []*healthflowv1.Point{
			{Date: timestamppb.New(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)), Value: 80.25, SampleCount: 4, Min: 79.5, Max: 81},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "weight (kg) last1year, monthly buckets, since 2023-06-30")
	assert.Contains(t, out, "80.25")
	assert.Contains(t, out, "79.5")
}
