package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReferenceRange_OptimalBand(t *testing.T) {
	band := ReferenceRange{Min: 70, Max: 90}.OptimalBand()
	assert.Equal(t, 75.0, band.Min)
	assert.Equal(t, 85.0, band.Max)

	band = DefaultReferenceRange.OptimalBand()
	assert.Equal(t, 25.0, band.Min)
	assert.Equal(t, 75.0, band.Max)
}

func TestReferenceRange_Distance(t *testing.T) {
	r := ReferenceRange{Min: 10, Max: 20}
	assert.Equal(t, 5.0, r.Distance(5))
	assert.Equal(t, 0.0, r.Distance(15))
	assert.Equal(t, 3.0, r.Distance(23))
}

func TestBloodMarkerReading_Validate(t *testing.T) {
	userID := uuid.New()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		reading BloodMarkerReading
		wantErr bool
		errMsg  string
	}{
		{
			name:    "Reading without embedded range should pass",
			reading: BloodMarkerReading{UserID: userID, Marker: "Glucose", Date: date, Value: 88, Unit: "mg/dL"},
			wantErr: false,
		},
		{
			name: "Reading with valid embedded range should pass",
			reading: BloodMarkerReading{
				UserID: userID, Marker: "Ferritin", Date: date, Value: 120,
				ReferenceRange: &ReferenceRange{Min: 30, Max: 400},
			},
			wantErr: false,
		},
		{
			name:    "Empty marker should fail",
			reading: BloodMarkerReading{UserID: userID, Marker: "  ", Date: date, Value: 1},
			wantErr: true,
			errMsg:  "marker name cannot be empty",
		},
		{
			name: "Inverted embedded range should fail",
			reading: BloodMarkerReading{
				UserID: userID, Marker: "TSH", Date: date, Value: 2,
				ReferenceRange: &ReferenceRange{Min: 4, Max: 0.4},
			},
			wantErr: true,
			errMsg:  "exceeds max",
		},
		{
			name:    "Missing user should fail",
			reading: BloodMarkerReading{Marker: "TSH", Date: date, Value: 2},
			wantErr: true,
			errMsg:  "reading must reference a user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reading.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
