package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/healthflow-backend/internal/domain"
)

// bloodReadingRepository implements domain.BloodReadingRepository
type bloodReadingRepository struct {
	db *DB
}

// NewBloodReadingRepository creates a new blood reading repository
func NewBloodReadingRepository(db *DB) domain.BloodReadingRepository {
	return &bloodReadingRepository{db: db}
}

// AddBatch stores all readings in a database transaction
func (r *bloodReadingRepository) AddBatch(ctx context.Context, readings []domain.BloodMarkerReading) error {
	if len(readings) == 0 {
		return nil
	}

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	insertQuery := `
		INSERT INTO blood_readings (id, user_id, marker, marker_key, measured_at, value, unit, ref_min, ref_max)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	stmt, err := dbTx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare blood reading insert: %w", err)
	}
	defer stmt.Close()

	for _, reading := range readings {
		// ref_min/ref_max are NULL when the report printed no range
		var refMin, refMax interface{}
		if reading.ReferenceRange != nil {
			refMin = decimal.NewFromFloat(reading.ReferenceRange.Min).String()
			refMax = decimal.NewFromFloat(reading.ReferenceRange.Max).String()
		}

		_, err = stmt.ExecContext(ctx,
			reading.ID,
			reading.UserID,
			reading.Marker,
			reading.MarkerKey,
			reading.Date.UTC(),
			decimal.NewFromFloat(reading.Value).String(),
			reading.Unit,
			refMin,
			refMax,
		)
		if err != nil {
			return fmt.Errorf("failed to insert blood reading: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListByUser retrieves all readings of a user ordered by date ascending
func (r *bloodReadingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.BloodMarkerReading, error) {
	query := `
		SELECT id, user_id, marker, marker_key, measured_at, value, unit, ref_min, ref_max
		FROM blood_readings
		WHERE user_id = $1
		ORDER BY measured_at ASC, id ASC
	`
	return r.query(ctx, query, userID)
}

// ListByMarker retrieves the readings of one normalized marker ordered by date ascending
func (r *bloodReadingRepository) ListByMarker(ctx context.Context, userID uuid.UUID, markerKey string) ([]domain.BloodMarkerReading, error) {
	query := `
		SELECT id, user_id, marker, marker_key, measured_at, value, unit, ref_min, ref_max
		FROM blood_readings
		WHERE user_id = $1 AND marker_key = $2
		ORDER BY measured_at ASC, id ASC
	`
	return r.query(ctx, query, userID, markerKey)
}

func (r *bloodReadingRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.BloodMarkerReading, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query blood readings: %w", err)
	}
	defer rows.Close()

	readings := make([]domain.BloodMarkerReading, 0)
	for rows.Next() {
		var reading domain.BloodMarkerReading
		var valueStr string
		var refMin, refMax sql.NullString

		err := rows.Scan(
			&reading.ID,
			&reading.UserID,
			&reading.Marker,
			&reading.MarkerKey,
			&reading.Date,
			&valueStr,
			&reading.Unit,
			&refMin,
			&refMax,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blood reading: %w", err)
		}

		// Parse value (NUMERIC)
		value, err := decimal.NewFromString(valueStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse blood reading value: %w", err)
		}
		reading.Value = value.InexactFloat64()

		// Parse reference range (nullable NUMERIC pair)
		if refMin.Valid && refMax.Valid {
			lo, err := decimal.NewFromString(refMin.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse ref_min: %w", err)
			}
			hi, err := decimal.NewFromString(refMax.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse ref_max: %w", err)
			}
			reading.ReferenceRange = &domain.ReferenceRange{Min: lo.InexactFloat64(), Max: hi.InexactFloat64()}
		}

		readings = append(readings, reading)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blood readings: %w", err)
	}

	return readings, nil
}
