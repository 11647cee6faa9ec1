package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/timestamppb"

	healthflowv1 "github.com/simaogato/healthflow-backend/internal/adapter/grpc/healthflow/v1"
)

var (
	metric       string
	metrics      []string
	timeframe    string
	windowOffset int
	markerName   string
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Print the chart series of one metric",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		resp, err := client.GetSeries(ctx, &healthflowv1.GetSeriesRequest{
			UserId:    userID,
			Metric:    metric,
			Timeframe: timeframe,
			Offset:    int32(windowOffset),
		})
		if err != nil {
			return err
		}

		return printSeries(cmd.OutOrStdout(), resp.Series)
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the current series of several metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		resp, err := client.GetDashboard(ctx, &healthflowv1.GetDashboardRequest{
			UserId:    userID,
			Metrics:   metrics,
			Timeframe: timeframe,
		})
		if err != nil {
			return err
		}

		for i, series := range resp.Series {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			if err := printSeries(cmd.OutOrStdout(), series); err != nil {
				return err
			}
		}
		return nil
	},
}

var markersCmd = &cobra.Command{
	Use:   "markers",
	Short: "Print the latest status and trend of every blood marker",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		resp, err := client.GetMarkerSummaries(ctx, &healthflowv1.GetMarkerSummariesRequest{UserId: userID})
		if err != nil {
			return err
		}

		return printSummaries(cmd.OutOrStdout(), resp.Summaries)
	},
}

var markerHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Print every reading of one blood marker",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		resp, err := client.GetMarkerHistory(ctx, &healthflowv1.GetMarkerHistoryRequest{
			UserId: userID,
			Marker: markerName,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", resp.Label)
		return printEvaluations(cmd.OutOrStdout(), resp.Readings)
	},
}

func init() {
	seriesCmd.Flags().StringVarP(&metric, "metric", "m", "heart_rate", "metric to chart")
	seriesCmd.Flags().IntVar(&windowOffset, "offset", 0, "window offset; -1 is the previous window")
	dashboardCmd.Flags().StringSliceVarP(&metrics, "metric", "m", nil, "metrics to include (default all)")
	for _, cmd := range []*cobra.Command{seriesCmd, dashboardCmd} {
		cmd.Flags().StringVarP(&timeframe, "timeframe", "t", "last30days",
			"last30days, last3months, last6months, last1year or last3years")
	}

	markerHistoryCmd.Flags().StringVar(&markerName, "marker", "", "marker name or alias")
	_ = markerHistoryCmd.MarkFlagRequired("marker")
	markersCmd.AddCommand(markerHistoryCmd)
}

func printSeries(w io.Writer, series *healthflowv1.Series) error {
	if series == nil {
		return nil
	}

	fmt.Fprintf(w, "%s (%s) %s, %s buckets, %s\n",
		series.Metric, series.Unit, series.Timeframe, series.BucketKind, formatWindow(series.From, series.To))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tVALUE\tSAMPLES\tMIN\tMAX")
	for _, p := range series.Points {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			formatDate(p.Date), formatFloat(p.Value), p.SampleCount, formatFloat(p.Min), formatFloat(p.Max))
	}
	return tw.Flush()
}

func printSummaries(w io.Writer, summaries []*healthflowv1.MarkerSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MARKER\tDATE\tVALUE\tRANGE\tSTATUS\tTREND")
	for _, s := range summaries {
		latest := s.Latest
		if latest == nil {
			continue
		}
		trend := "-"
		if s.Trend != nil {
			trend = fmt.Sprintf("%s %s (%+g)", s.Trend.Direction, s.Trend.Tone, s.Trend.Delta)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\t%s\t%s\n",
			s.Label, formatDate(latest.Date), formatFloat(latest.Value), s.Unit,
			formatRange(latest), latest.Status, trend)
	}
	return tw.Flush()
}

func printEvaluations(w io.Writer, readings []*healthflowv1.MarkerEvaluation) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tVALUE\tRANGE\tOPTIMAL\tSTATUS")
	for _, r := range readings {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s-%s\t%s\n",
			formatDate(r.Date), formatFloat(r.Value), r.Unit, formatRange(r),
			formatFloat(r.OptimalMin), formatFloat(r.OptimalMax), r.Status)
	}
	return tw.Flush()
}

func formatRange(ev *healthflowv1.MarkerEvaluation) string {
	return fmt.Sprintf("%s-%s (%s)", formatFloat(ev.RangeMin), formatFloat(ev.RangeMax), ev.RangeSource)
}

func formatWindow(from, to *timestamppb.Timestamp) string {
	if to == nil {
		return "since " + formatDate(from)
	}
	return formatDate(from) + " to " + formatDate(to)
}

func formatDate(ts *timestamppb.Timestamp) string {
	if ts == nil {
		return "-"
	}
	return ts.AsTime().Format(time.DateOnly)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
