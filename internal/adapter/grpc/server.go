package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	healthflowv1 "github.com/simaogato/healthflow-backend/internal/adapter/grpc/healthflow/v1"
	"github.com/simaogato/healthflow-backend/internal/domain"
	"github.com/simaogato/healthflow-backend/internal/usecase/charts"
	"github.com/simaogato/healthflow-backend/internal/usecase/ingest"
	"github.com/simaogato/healthflow-backend/internal/usecase/markers"
)

// Server implements the HealthTrackService gRPC server
type Server struct {
	healthflowv1.UnimplementedHealthTrackServiceServer

	ChartService  *charts.ChartService
	MarkerService *markers.MarkerService
	IngestService *ingest.IngestService
}

// NewServer creates a new gRPC server instance
func NewServer(
	chartService *charts.ChartService,
	markerService *markers.MarkerService,
	ingestService *ingest.IngestService,
) *Server {
	return &Server{
		ChartService:  chartService,
		MarkerService: markerService,
		IngestService: ingestService,
	}
}

// GetSeries handles the GetSeries RPC
func (s *Server) GetSeries(ctx context.Context, req *healthflowv1.GetSeriesRequest) (*healthflowv1.GetSeriesResponse, error) {
	userID, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}

	metric, err := domain.ParseMetric(req.Metric)
	if err != nil {
		return nil, mapError(err)
	}

	tf, err := domain.ParseTimeframe(req.Timeframe)
	if err != nil {
		return nil, mapError(err)
	}

	window := domain.Window{Timeframe: tf, Offset: int(req.Offset)}

	series, err := s.ChartService.Series(ctx, userID, metric, window)
	if err != nil {
		return nil, mapError(err)
	}

	return &healthflowv1.GetSeriesResponse{
		Series: seriesToProto(series),
	}, nil
}

// GetDashboard handles the GetDashboard RPC
// An empty metric list returns every known metric.
func (s *Server) GetDashboard(ctx context.Context, req *healthflowv1.GetDashboardRequest) (*healthflowv1.GetDashboardResponse, error) {
	userID, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}

	tf, err := domain.ParseTimeframe(req.Timeframe)
	if err != nil {
		return nil, mapError(err)
	}

	metrics := make([]domain.MetricType, 0, len(req.Metrics))
	for _, name := range req.Metrics {
		metric, err := domain.ParseMetric(name)
		if err != nil {
			return nil, mapError(err)
		}
		metrics = append(metrics, metric)
	}

	all, err := s.ChartService.Dashboard(ctx, userID, metrics, tf)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &healthflowv1.GetDashboardResponse{
		Series: make([]*healthflowv1.Series, 0, len(all)),
	}
	for _, series := range all {
		resp.Series = append(resp.Series, seriesToProto(series))
	}

	return resp, nil
}

// GetMarkerSummaries handles the GetMarkerSummaries RPC
func (s *Server) GetMarkerSummaries(ctx context.Context, req *healthflowv1.GetMarkerSummariesRequest) (*healthflowv1.GetMarkerSummariesResponse, error) {
	userID, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}

	summaries, err := s.MarkerService.Summaries(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &healthflowv1.GetMarkerSummariesResponse{
		Summaries: make([]*healthflowv1.MarkerSummary, 0, len(summaries)),
	}
	for i := range summaries {
		resp.Summaries = append(resp.Summaries, summaryToProto(&summaries[i]))
	}

	return resp, nil
}

// GetMarkerHistory handles the GetMarkerHistory RPC
func (s *Server) GetMarkerHistory(ctx context.Context, req *healthflowv1.GetMarkerHistoryRequest) (*healthflowv1.GetMarkerHistoryResponse, error) {
	userID, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}

	history, err := s.MarkerService.History(ctx, userID, req.Marker)
	if err != nil {
		return nil, mapError(err)
	}

	// History never returns an empty slice without an error
	latest := history[len(history)-1].Resolution
	resp := &healthflowv1.GetMarkerHistoryResponse{
		Key:      latest.Key,
		Label:    latest.Label,
		Readings: make([]*healthflowv1.MarkerEvaluation, 0, len(history)),
	}
	for i := range history {
		resp.Readings = append(resp.Readings, evaluationToProto(&history[i]))
	}

	return resp, nil
}

// ImportSamples handles the ImportSamples RPC
func (s *Server) ImportSamples(ctx context.Context, req *healthflowv1.ImportSamplesRequest) (*healthflowv1.ImportResponse, error) {
	userID, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}

	raws := make([]ingest.RawSample, 0, len(req.Samples))
	for _, rec := range req.Samples {
		if rec == nil {
			continue
		}
		raws = append(raws, ingest.RawSample{
			Metric: rec.Metric,
			Date:   rec.Date,
			Value:  rec.Value,
			Source: rec.Source,
		})
	}

	result, err := s.IngestService.ImportSamples(ctx, userID, raws)
	if err != nil {
		return nil, mapError(err)
	}

	return importResultToProto(result), nil
}

// ImportBloodReadings handles the ImportBloodReadings RPC
func (s *Server) ImportBloodReadings(ctx context.Context, req *healthflowv1.ImportBloodReadingsRequest) (*healthflowv1.ImportResponse, error) {
	userID, err := parseUserID(req.UserId)
	if err != nil {
		return nil, err
	}

	raws := make([]ingest.RawBloodReading, 0, len(req.Readings))
	for _, rec := range req.Readings {
		if rec == nil {
			continue
		}
		raws = append(raws, ingest.RawBloodReading{
			Marker: rec.Marker,
			Date:   rec.Date,
			Value:  rec.Value,
			Unit:   rec.Unit,
			RefMin: rec.RefMin,
			RefMax: rec.RefMax,
		})
	}

	result, err := s.IngestService.ImportBloodReadings(ctx, userID, raws)
	if err != nil {
		return nil, mapError(err)
	}

	return importResultToProto(result), nil
}

// parseUserID parses the user_id field of a request
func parseUserID(raw string) (uuid.UUID, error) {
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid user_id format: %v", err)
	}
	return userID, nil
}

// seriesToProto converts a chart series to its wire message
func seriesToProto(series *charts.Series) *healthflowv1.Series {
	out := &healthflowv1.Series{
		Metric:     string(series.Metric),
		Unit:       series.Unit,
		Timeframe:  string(series.Window.Timeframe),
		Offset:     int32(series.Window.Offset),
		BucketKind: string(series.Kind),
		From:       timestampOrNil(series.From),
		To:         timestampOrNil(series.To),
		Points:     make([]*healthflowv1.Point, 0, len(series.Points)),
	}

	for _, p := range series.Points {
		out.Points = append(out.Points, &healthflowv1.Point{
			Date:        timestamppb.New(p.Date),
			Value:       p.Value,
			SampleCount: int32(p.Meta.SampleCount),
			Min:         p.Meta.Min,
			Max:         p.Meta.Max,
		})
	}

	return out
}

// summaryToProto converts a marker summary to its wire message
func summaryToProto(summary *markers.MarkerSummary) *healthflowv1.MarkerSummary {
	out := &healthflowv1.MarkerSummary{
		Key:          summary.Key,
		Label:        summary.Label,
		Unit:         summary.Unit,
		Latest:       evaluationToProto(&summary.Latest),
		ReadingCount: int32(summary.ReadingCount),
	}

	if summary.Previous != nil {
		out.Previous = evaluationToProto(summary.Previous)
	}
	if summary.Trend != nil {
		out.Trend = &healthflowv1.Trend{
			Direction: string(summary.Trend.Direction),
			Tone:      string(summary.Trend.Tone),
			Delta:     summary.Trend.Delta,
		}
	}

	return out
}

// evaluationToProto converts a classified reading to its wire message
func evaluationToProto(ev *markers.Evaluation) *healthflowv1.MarkerEvaluation {
	unit := ev.Reading.Unit
	if unit == "" {
		unit = ev.Resolution.Unit
	}

	return &healthflowv1.MarkerEvaluation{
		Marker:      ev.Reading.Marker,
		Date:        timestamppb.New(ev.Reading.Date),
		Value:       ev.Reading.Value,
		Unit:        unit,
		RangeMin:    ev.Resolution.Range.Min,
		RangeMax:    ev.Resolution.Range.Max,
		OptimalMin:  ev.Optimal.Min,
		OptimalMax:  ev.Optimal.Max,
		RangeSource: string(ev.Resolution.Source),
		Status:      string(ev.Status),
	}
}

func importResultToProto(result *ingest.ImportResult) *healthflowv1.ImportResponse {
	return &healthflowv1.ImportResponse{
		Accepted: int32(result.Accepted),
		Skipped:  int32(result.Skipped),
		Errors:   result.Errors,
	}
}

// timestampOrNil leaves open window bounds unset on the wire
func timestampOrNil(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", err.Error())
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", err.Error())
}
