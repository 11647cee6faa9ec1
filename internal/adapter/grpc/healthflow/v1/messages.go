package healthflowv1

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

type GetSeriesRequest struct {
	UserId    string `json:"user_id,omitempty"`
	Metric    string `json:"metric,omitempty"`
	Timeframe string `json:"timeframe,omitempty"`
	// Offset selects an earlier window: 0 is current, -1 the one before.
	Offset int32 `json:"offset,omitempty"`
}

type GetSeriesResponse struct {
	Series *Series `json:"series,omitempty"`
}

type GetDashboardRequest struct {
	UserId    string   `json:"user_id,omitempty"`
	Metrics   []string `json:"metrics,omitempty"`
	Timeframe string   `json:"timeframe,omitempty"`
}

type GetDashboardResponse struct {
	Series []*Series `json:"series,omitempty"`
}

type Series struct {
	Metric     string                 `json:"metric,omitempty"`
	Unit       string                 `json:"unit,omitempty"`
	Timeframe  string                 `json:"timeframe,omitempty"`
	Offset     int32                  `json:"offset,omitempty"`
	BucketKind string                 `json:"bucket_kind,omitempty"`
	From       *timestamppb.Timestamp `json:"from,omitempty"`
	To         *timestamppb.Timestamp `json:"to,omitempty"`
	Points     []*Point               `json:"points,omitempty"`
}

type Point struct {
	Date        *timestamppb.Timestamp `json:"date,omitempty"`
	Value       float64                `json:"value"`
	SampleCount int32                  `json:"sample_count,omitempty"`
	Min         float64                `json:"min"`
	Max         float64                `json:"max"`
}

type GetMarkerSummariesRequest struct {
	UserId string `json:"user_id,omitempty"`
}

type GetMarkerSummariesResponse struct {
	Summaries []*MarkerSummary `json:"summaries,omitempty"`
}

type MarkerSummary struct {
	Key          string            `json:"key,omitempty"`
	Label        string            `json:"label,omitempty"`
	Unit         string            `json:"unit,omitempty"`
	Latest       *MarkerEvaluation `json:"latest,omitempty"`
	Previous     *MarkerEvaluation `json:"previous,omitempty"`
	Trend        *Trend            `json:"trend,omitempty"`
	ReadingCount int32             `json:"reading_count,omitempty"`
}

type MarkerEvaluation struct {
	Marker      string                 `json:"marker,omitempty"`
	Date        *timestamppb.Timestamp `json:"date,omitempty"`
	Value       float64                `json:"value"`
	Unit        string                 `json:"unit,omitempty"`
	RangeMin    float64                `json:"range_min"`
	RangeMax    float64                `json:"range_max"`
	OptimalMin  float64                `json:"optimal_min"`
	OptimalMax  float64                `json:"optimal_max"`
	RangeSource string                 `json:"range_source,omitempty"`
	Status      string                 `json:"status,omitempty"`
}

type Trend struct {
	Direction string  `json:"direction,omitempty"`
	Tone      string  `json:"tone,omitempty"`
	Delta     float64 `json:"delta"`
}

type GetMarkerHistoryRequest struct {
	UserId string `json:"user_id,omitempty"`
	Marker string `json:"marker,omitempty"`
}

type GetMarkerHistoryResponse struct {
	Key      string              `json:"key,omitempty"`
	Label    string              `json:"label,omitempty"`
	Readings []*MarkerEvaluation `json:"readings,omitempty"`
}

// SampleRecord carries an unparsed sample; the server validates each field.
type SampleRecord struct {
	Metric string `json:"metric,omitempty"`
	Date   string `json:"date,omitempty"`
	Value  string `json:"value,omitempty"`
	Source string `json:"source,omitempty"`
}

type ImportSamplesRequest struct {
	UserId  string          `json:"user_id,omitempty"`
	Samples []*SampleRecord `json:"samples,omitempty"`
}

// BloodRecord carries an unparsed lab result. RefMin and RefMax are optional
// but must be given together.
type BloodRecord struct {
	Marker string `json:"marker,omitempty"`
	Date   string `json:"date,omitempty"`
	Value  string `json:"value,omitempty"`
	Unit   string `json:"unit,omitempty"`
	RefMin string `json:"ref_min,omitempty"`
	RefMax string `json:"ref_max,omitempty"`
}

type ImportBloodReadingsRequest struct {
	UserId   string         `json:"user_id,omitempty"`
	Readings []*BloodRecord `json:"readings,omitempty"`
}

type ImportResponse struct {
	Accepted int32    `json:"accepted"`
	Skipped  int32    `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
