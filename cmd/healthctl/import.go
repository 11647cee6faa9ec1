package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/simaogato/healthflow-backend/internal/adapter/applehealth"
	"github.com/simaogato/healthflow-backend/internal/adapter/bloodcsv"
	healthflowv1 "github.com/simaogato/healthflow-backend/internal/adapter/grpc/healthflow/v1"
	"github.com/simaogato/healthflow-backend/internal/usecase/ingest"
)

var (
	importFile string
	batchSize  int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import health data files",
}

var importAppleHealthCmd = &cobra.Command{
	Use:   "apple-health",
	Short: "Import an Apple Health export (export.xml or export.zip)",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		f, err := applehealth.OpenExport(importFile)
		if err != nil {
			return err
		}
		defer f.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		totals, stats, err := importAppleHealth(ctx, client, f, userID, batchSize)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "records: %d, matched: %d\n", stats.Records, stats.Matched)
		totals.print(cmd.OutOrStdout())
		return nil
	},
}

var importBloodCmd = &cobra.Command{
	Use:   "blood",
	Short: "Import blood test results from a CSV file",
	Long: `Imports lab results from a CSV file with a header row.
Required columns: marker, date, value. Optional: unit, ref_min, ref_max.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		f, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", importFile, err)
		}
		defer f.Close()

		raws, err := bloodcsv.Parse(f)
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		resp, err := client.ImportBloodReadings(ctx, &healthflowv1.ImportBloodReadingsRequest{
			UserId:   userID,
			Readings: bloodRecords(raws),
		})
		if err != nil {
			return err
		}

		totals := &importTotals{}
		totals.add(resp)
		totals.print(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{importAppleHealthCmd, importBloodCmd} {
		cmd.Flags().StringVarP(&importFile, "file", "f", "", "file to import")
		_ = cmd.MarkFlagRequired("file")
	}
	importAppleHealthCmd.Flags().IntVar(&batchSize, "batch-size", 5000, "samples sent per request")

	importCmd.AddCommand(importAppleHealthCmd, importBloodCmd)
}

// sampleImporter is the part of the service client used for sample uploads
type sampleImporter interface {
	ImportSamples(ctx context.Context, in *healthflowv1.ImportSamplesRequest, opts ...grpc.CallOption) (*healthflowv1.ImportResponse, error)
}

// importTotals sums the results of several import requests
type importTotals struct {
	Requests int
	Accepted int
	Skipped  int
	Errors   []string
}

func (t *importTotals) add(resp *healthflowv1.ImportResponse) {
	t.Requests++
	t.Accepted += int(resp.Accepted)
	t.Skipped += int(resp.Skipped)
	t.Errors = append(t.Errors, resp.Errors...)
}

func (t *importTotals) print(w io.Writer) {
	fmt.Fprintf(w, "accepted: %d, skipped: %d\n", t.Accepted, t.Skipped)
	for _, msg := range t.Errors {
		fmt.Fprintf(w, "  %s\n", msg)
	}
}

// importAppleHealth streams an export and uploads the matched samples in batches
func importAppleHealth(ctx context.Context, api sampleImporter, r io.Reader, user string, size int) (*importTotals, applehealth.Stats, error) {
	if size <= 0 {
		size = 5000
	}

	totals := &importTotals{}
	batch := make([]*healthflowv1.SampleRecord, 0, size)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		resp, err := api.ImportSamples(ctx, &healthflowv1.ImportSamplesRequest{UserId: user, Samples: batch})
		if err != nil {
			return fmt.Errorf("failed to upload batch %d: %w", totals.Requests+1, err)
		}
		totals.add(resp)
		batch = make([]*healthflowv1.SampleRecord, 0, size)
		return nil
	}

	stats, err := applehealth.Parse(r, func(raw ingest.RawSample) error {
		batch = append(batch, &healthflowv1.SampleRecord{
			Metric: raw.Metric,
			Date:   raw.Date,
			Value:  raw.Value,
			Source: raw.Source,
		})
		if len(batch) >= size {
			return flush()
		}
		return nil
	})
	if err != nil {
		return nil, stats, err
	}

	if err := flush(); err != nil {
		return nil, stats, err
	}

	return totals, stats, nil
}

func bloodRecords(raws []ingest.RawBloodReading) []*healthflowv1.BloodRecord {
	out := make([]*healthflowv1.BloodRecord, 0, len(raws))
	for _, raw := range raws {
		out = append(out, &healthflowv1.BloodRecord{
			Marker: raw.Marker,
			Date:   raw.Date,
			Value:  raw.Value,
			Unit:   raw.Unit,
			RefMin: raw.RefMin,
			RefMax: raw.RefMax,
		})
	}
	return out
}
