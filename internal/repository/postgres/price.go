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

type priceRepository struct {
	repository.BaseRepository
}

// NewPriceRepository creates a new PostgreSQL price repository
func NewPriceRepository(db *sql.DB) repository.PriceRepository {
	return &priceRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *priceRepository) Insert(ctx context.Context, price *models.PriceSample) error {
	query := `
		INSERT INTO prices (id, timestamp, price_eur_kwh, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, created_at, updated_at`

	now := time.Now().UTC()
	if price.ID == uuid.Nil {
		price.ID = uuid.New()
	}

	err := r.DB().QueryRowContext(ctx, query,
		price.ID,
		price.Timestamp,
		price.PriceEURKWh,
		now,
	).Scan(&price.ID, &price.CreatedAt, &price.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && strings.Contains(pqErr.Constraint, "prices_timestamp_key") {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

func (r *priceRepository) UpdatePrice(ctx context.Context, id uuid.UUID, priceEURKWh float64) (*models.PriceSample, error) {
	query := `
		UPDATE prices
		SET price_eur_kwh = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, timestamp, price_eur_kwh, created_at, updated_at`

	price := &models.PriceSample{}
	err := r.DB().QueryRowContext(ctx, query, priceEURKWh, time.Now().UTC(), id).Scan(
		&price.ID,
		&price.Timestamp,
		&price.PriceEURKWh,
		&price.CreatedAt,
		&price.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return price, nil
}

func (r *priceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PriceSample, error) {
	query := `
		SELECT id, timestamp, price_eur_kwh, created_at, updated_at
		FROM prices
		WHERE id = $1`

	return r.scanOne(r.DB().QueryRowContext(ctx, query, id))
}

func (r *priceRepository) GetLatest(ctx context.Context) (*models.PriceSample, error) {
	query := `
		SELECT id, timestamp, price_eur_kwh, created_at, updated_at
		FROM prices
		ORDER BY timestamp DESC
		LIMIT 1`

	return r.scanOne(r.DB().QueryRowContext(ctx, query))
}

func (r *priceRepository) scanOne(row *sql.Row) (*models.PriceSample, error) {
	price := &models.PriceSample{}
	err := row.Scan(
		&price.ID,
		&price.Timestamp,
		&price.PriceEURKWh,
		&price.CreatedAt,
		&price.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return price, nil
}

func (r *priceRepository) List(ctx context.Context, filter repository.PriceFilter) ([]models.PriceSample, error) {
	conditions := make([]string, 0)
	args := make([]interface{}, 0)
	argCount := 1

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
		SELECT id, timestamp, price_eur_kwh, created_at, updated_at
		FROM prices`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

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

	var prices []models.PriceSample
	for rows.Next() {
		var price models.PriceSample
		if err := rows.Scan(
			&price.ID,
			&price.Timestamp,
			&price.PriceEURKWh,
			&price.CreatedAt,
			&price.UpdatedAt,
		); err != nil {
			return nil, err
		}
		prices = append(prices, price)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *priceRepository) Truncate(ctx context.Context) error {
	_, err := r.DB().ExecContext(ctx, "TRUNCATE TABLE prices CASCADE")
	return err
}
