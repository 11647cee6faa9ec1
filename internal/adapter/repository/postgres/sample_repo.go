package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/simaogato/healthflow-backend/internal/domain"
)

// sampleRepository implements domain.SampleRepository
type sampleRepository struct {
	db *DB
}

// NewSampleRepository creates a new sample repository
func NewSampleRepository(db *DB) domain.SampleRepository {
	return &sampleRepository{db: db}
}

// AddBatch stores samples with a single COPY inside a database transaction
// Apple Health exports carry hundreds of thousands of rows, so row-by-row INSERTs are avoided
func (r *sampleRepository) AddBatch(ctx context.Context, samples []domain.Sample) error {
	if len(samples) == 0 {
		return nil
	}

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, pq.CopyIn("health_samples",
		"id", "user_id", "metric", "sampled_at", "value", "source"))
	if err != nil {
		return fmt.Errorf("failed to prepare sample copy: %w", err)
	}

	for _, s := range samples {
		_, err = stmt.ExecContext(ctx,
			s.ID.String(),
			s.UserID.String(),
			string(s.Metric),
			s.Date.UTC(),
			decimal.NewFromFloat(s.Value).String(),
			s.Source,
		)
		if err != nil {
			stmt.Close()
			return fmt.Errorf("failed to copy sample: %w", err)
		}
	}

	// Flush buffered rows
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("failed to flush sample copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("failed to close sample copy: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListByMetric retrieves a user's samples of one metric inside [from, to)
func (r *sampleRepository) ListByMetric(ctx context.Context, userID uuid.UUID, metric domain.MetricType, from, to time.Time) ([]domain.Sample, error) {
	query := `
		SELECT id, user_id, metric, sampled_at, value, source
		FROM health_samples
		WHERE user_id = $1 AND metric = $2 AND sampled_at >= $3
	`
	args := []interface{}{userID, string(metric), from.UTC()}

	if !to.IsZero() {
		query += ` AND sampled_at < $4`
		args = append(args, to.UTC())
	}
	query += ` ORDER BY sampled_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	samples := make([]domain.Sample, 0)
	for rows.Next() {
		sample, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating samples: %w", err)
	}

	return samples, nil
}

// Count returns the number of stored samples of one metric for a user
func (r *sampleRepository) Count(ctx context.Context, userID uuid.UUID, metric domain.MetricType) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM health_samples
		WHERE user_id = $1 AND metric = $2
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, string(metric)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count samples: %w", err)
	}

	return count, nil
}

func scanSample(rows *sql.Rows) (domain.Sample, error) {
	var sample domain.Sample
	var metric string
	var valueStr string

	err := rows.Scan(
		&sample.ID,
		&sample.UserID,
		&metric,
		&sample.Date,
		&valueStr,
		&sample.Source,
	)
	if err != nil {
		return domain.Sample{}, fmt.Errorf("failed to scan sample: %w", err)
	}
	sample.Metric = domain.MetricType(metric)

	// Parse value (NUMERIC)
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return domain.Sample{}, fmt.Errorf("failed to parse sample value: %w", err)
	}
	sample.Value = value.InexactFloat64()

	return sample, nil
}
