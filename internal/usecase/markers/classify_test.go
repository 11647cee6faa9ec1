package markers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simaogato/healthflow-backend/internal/domain"
)

func TestClassify(t *testing.T) {
	r := domain.ReferenceRange{Min: 70, Max: 90}

	tests := []struct {
		value float64
		want  domain.MarkerStatus
	}{
		{80, domain.MarkerStatusOptimal},
		{75, domain.MarkerStatusOptimal},
		{85, domain.MarkerStatusOptimal},
		{72, domain.MarkerStatusNormal},
		{88, domain.MarkerStatusNormal},
		{70, domain.MarkerStatusNormal},
		{65, domain.MarkerStatusAbnormal},
		{90.5, domain.MarkerStatusAbnormal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.value, r), "value %v", tt.value)
	}
}

func TestClassify_DefaultRange(t *testing.T) {
	r := domain.DefaultReferenceRange

	assert.Equal(t, domain.MarkerStatusOptimal, Classify(50, r))
	assert.Equal(t, domain.MarkerStatusOptimal, Classify(25, r))
	assert.Equal(t, domain.MarkerStatusNormal, Classify(10, r))
	assert.Equal(t, domain.MarkerStatusNormal, Classify(80, r))
	assert.Equal(t, domain.MarkerStatusAbnormal, Classify(101, r))
}

func TestComputeTrend(t *testing.T) {
	// Optimal band is [75, 85]
	r := domain.ReferenceRange{Min: 70, Max: 90}

	tests := []struct {
		name     string
		prev     float64
		curr     float64
		pref     Preference
		wantDir  domain.TrendDirection
		wantTone domain.TrendTone
	}{
		{"Entering optimal band from below", 72, 80, PreferLower, domain.TrendUp, domain.ToneFavorable},
		{"Entering optimal band from above", 88, 84, PreferHigher, domain.TrendDown, domain.ToneFavorable},
		{"Leaving optimal band while normal", 80, 88, PreferNone, domain.TrendUp, domain.ToneUnfavorable},
		{"Moving further into abnormal low", 65, 60, PreferLower, domain.TrendDown, domain.ToneUnfavorable},
		{"Moving further into abnormal high", 95, 99, PreferHigher, domain.TrendUp, domain.ToneUnfavorable},
		{"Abnormal moving toward band", 95, 91, PreferHigher, domain.TrendDown, domain.ToneFavorable},
		{"Inside band, decrease is good", 84, 76, PreferLower, domain.TrendDown, domain.ToneFavorable},
		{"Inside band, decrease is bad", 84, 76, PreferHigher, domain.TrendDown, domain.ToneUnfavorable},
		{"Inside band, increase with decrease good", 76, 84, PreferLower, domain.TrendUp, domain.ToneUnfavorable},
		{"Inside band, no preference", 76, 84, PreferNone, domain.TrendUp, domain.ToneNeutral},
		{"Jumping across band keeps distance", 73, 87, PreferLower, domain.TrendUp, domain.ToneUnfavorable},
		{"Jumping across band, unknown marker", 73, 87, PreferNone, domain.TrendUp, domain.ToneNeutral},
		{"Abnormal low to abnormal high, unknown marker", 68, 92, PreferNone, domain.TrendUp, domain.ToneNeutral},
		{"Unchanged value", 80, 80, PreferLower, domain.TrendFlat, domain.ToneNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := ComputeTrend(tt.prev, tt.curr, r, tt.pref)
			assert.Equal(t, tt.wantDir, trend.Direction)
			assert.Equal(t, tt.wantTone, trend.Tone)
			assert.InDelta(t, tt.curr-tt.prev, trend.Delta, 1e-9)
		})
	}
}
