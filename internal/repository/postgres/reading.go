package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"gridbill/internal/models"
	"gridbill/internal/repository"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type readingRepository struct {
	repository.BaseRepository
}

// NewReadingRepository creates a new PostgreSQL reading repository
func NewReadingRepository(db *sql.DB) repository.ReadingRepository {
	return &readingRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *readingRepository) Insert(ctx context.Context, reading *models.Reading) error {
	// Uniqueness of (customer_id, timestamp) among active readings is
	// enforced by a partial unique index, so two concurrent inserts for
	// the same key cannot both succeed.
	query := `
		INSERT INTO readings (id, customer_id, timestamp, consumption_kwh, production_kwh, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, created_at, updated_at`

	now := time.Now().UTC()
	if reading.ID == uuid.Nil {
		reading.ID = uuid.New()
	}

	err := r.DB().QueryRowContext(ctx, query,
		reading.ID,
		reading.CustomerID,
		reading.Timestamp,
		reading.ConsumptionKWh,
		reading.ProductionKWh,
		now,
	).Scan(&reading.ID, &reading.CreatedAt, &reading.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch {
			case strings.Contains(pqErr.Constraint, "readings_customer_timestamp_key"):
				return repository.ErrConflict
			case strings.Contains(pqErr.Constraint, "readings_customer_id_fkey"):
				return repository.ErrCustomerNotFound
			}
		}
		return err
	}
	return nil
}

func (r *readingRepository) GetByCustomerAndTimestamp(ctx context.Context, customerID uuid.UUID, ts time.Time) (*models.Reading, error) {
	query := `
		SELECT id, customer_id, timestamp, consumption_kwh, production_kwh, deleted_at, created_at, updated_at
		FROM readings
		WHERE customer_id = $1 AND timestamp = $2 AND deleted_at IS NULL`

	reading := &models.Reading{}
	err := r.DB().QueryRowContext(ctx, query, customerID, ts).Scan(
		&reading.ID,
		&reading.CustomerID,
		&reading.Timestamp,
		&reading.ConsumptionKWh,
		&reading.ProductionKWh,
		&reading.DeletedAt,
		&reading.CreatedAt,
		&reading.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return reading, nil
}

func (r *readingRepository) List(ctx context.Context, filter repository.ReadingFilter) ([]models.Reading, error) {
	conditions := []string{"deleted_at IS NULL"}
	args := make([]interface{}, 0)
	argCount := 1

	if filter.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", argCount))
		args = append(args, *filter.CustomerID)
		argCount++
	}

	if filter.Start != nil {
		conditions = append(conditions, fmt.Sprintf("timestamp >= $%d", argCount))
		args = append(args, *filter.Start)
		argCount++
	}

	if filter.End != nil {
		conditions = append(conditions, fmt.Sprintf("timestamp <= $%d", argCount))
		args = append(args, *filter.End)
		argCount++
	}

	query := `
		SELECT id, customer_id, timestamp, consumption_kwh, production_kwh, deleted_at, created_at, updated_at
		FROM readings
		WHERE ` + strings.Join(conditions, " AND ")

	query += " ORDER BY timestamp"
	if filter.OrderDesc {
		query += " DESC"
	} else {
		query += " ASC"
	}

	if filter.Limit != nil {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, *filter.Limit)
	}

	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []models.Reading
	for rows.Next() {
		var reading models.Reading
		if err := rows.Scan(
			&reading.ID,
			&reading.CustomerID,
			&reading.Timestamp,
			&reading.ConsumptionKWh,
			&reading.ProductionKWh,
			&reading.DeletedAt,
			&reading.CreatedAt,
			&reading.UpdatedAt,
		); err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *readingRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int, error) {
	var count int
	err := r.DB().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM readings WHERE customer_id = $1",
		customerID,
	).Scan(&count)
	return count, err
}

func (r *readingRepository) Truncate(ctx context.Context) error {
	_, err := r.DB().ExecContext(ctx, "TRUNCATE TABLE readings CASCADE")
	return err
}
