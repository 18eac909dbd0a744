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
)

type customerRepository struct {
	repository.BaseRepository
}

// NewCustomerRepository creates a new PostgreSQL customer repository
func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *customerRepository) Upsert(ctx context.Context, customer *models.Customer) error {
	// Role flags merge with OR on name collision so a later registration
	// can widen but never narrow a customer's roles.
	query := `
		INSERT INTO customers (id, name, is_consumer, is_producer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (name) DO UPDATE
		SET is_consumer = customers.is_consumer OR EXCLUDED.is_consumer,
			is_producer = customers.is_producer OR EXCLUDED.is_producer,
			updated_at = EXCLUDED.updated_at
		RETURNING id, name, is_consumer, is_producer, deleted_at, created_at, updated_at`

	now := time.Now().UTC()
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}

	return r.DB().QueryRowContext(ctx, query,
		customer.ID,
		customer.Name,
		customer.IsConsumer,
		customer.IsProducer,
		now,
	).Scan(
		&customer.ID,
		&customer.Name,
		&customer.IsConsumer,
		&customer.IsProducer,
		&customer.DeletedAt,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
}

func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	// Check if new name conflicts with another customer
	var count int
	err := r.DB().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM customers WHERE name = $1 AND id != $2",
		customer.Name,
		customer.ID,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return repository.ErrConflict
	}

	query := `
		UPDATE customers
		SET name = $1, is_consumer = $2, is_producer = $3, updated_at = $4
		WHERE id = $5 AND deleted_at IS NULL
		RETURNING updated_at`

	result := r.DB().QueryRowContext(ctx, query,
		customer.Name,
		customer.IsConsumer,
		customer.IsProducer,
		time.Now().UTC(),
		customer.ID,
	)

	if err := result.Scan(&customer.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return repository.ErrNotFound
		}
		if strings.Contains(err.Error(), "customers_name_key") {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	query := `
		SELECT id, name, is_consumer, is_producer, deleted_at, created_at, updated_at
		FROM customers
		WHERE id = $1`

	return r.scanOne(r.DB().QueryRowContext(ctx, query, id))
}

func (r *customerRepository) GetByName(ctx context.Context, name string) (*models.Customer, error) {
	query := `
		SELECT id, name, is_consumer, is_producer, deleted_at, created_at, updated_at
		FROM customers
		WHERE name = $1`

	return r.scanOne(r.DB().QueryRowContext(ctx, query, name))
}

func (r *customerRepository) scanOne(row *sql.Row) (*models.Customer, error) {
	customer := &models.Customer{}
	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.IsConsumer,
		&customer.IsProducer,
		&customer.DeletedAt,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *customerRepository) List(ctx context.Context, filter repository.CustomerFilter) ([]models.Customer, error) {
	conditions := make([]string, 0)
	args := make([]interface{}, 0)
	argCount := 1

	if !filter.IncludeDeleted {
		conditions = append(conditions, "deleted_at IS NULL")
	}

	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argCount))
		args = append(args, "%"+*filter.Search+"%")
		argCount++
	}

	query := `
		SELECT id, name, is_consumer, is_producer, deleted_at, created_at, updated_at
		FROM customers`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	if filter.OrderBy != "" {
		query += fmt.Sprintf(" ORDER BY %s", filter.OrderBy)
		if filter.OrderDesc {
			query += " DESC"
		} else {
			query += " ASC"
		}
	} else {
		query += " ORDER BY name ASC"
	}

	if filter.Limit != nil {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, *filter.Limit)
		argCount++
	}

	if filter.Offset != nil {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, *filter.Offset)
	}

	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var customer models.Customer
		if err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.IsConsumer,
			&customer.IsProducer,
			&customer.DeletedAt,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *customerRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	// The customer marker and the cascade to its readings commit together.
	return r.Transaction(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC()

		result, err := tx.ExecContext(ctx, `
			UPDATE customers
			SET deleted_at = $1, updated_at = $1
			WHERE id = $2 AND deleted_at IS NULL`,
			now, id)
		if err != nil {
			return err
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return repository.ErrNotFound
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE readings
			SET deleted_at = $1, updated_at = $1
			WHERE customer_id = $2 AND deleted_at IS NULL`,
			now, id)
		return err
	})
}

func (r *customerRepository) Restore(ctx context.Context, id uuid.UUID) error {
	// Reading markers are intentionally left in place; only the customer
	// becomes visible again.
	var deletedAt *time.Time
	err := r.DB().QueryRowContext(ctx,
		"SELECT deleted_at FROM customers WHERE id = $1",
		id,
	).Scan(&deletedAt)
	if err == sql.ErrNoRows {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}
	if deletedAt == nil {
		return repository.ErrCustomerActive
	}

	_, err = r.DB().ExecContext(ctx, `
		UPDATE customers
		SET deleted_at = NULL, updated_at = $1
		WHERE id = $2`,
		time.Now().UTC(), id)
	return err
}

func (r *customerRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	// Soft-deleted readings still count; audit history blocks a purge.
	var count int
	err := r.DB().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM readings WHERE customer_id = $1",
		id,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return repository.ErrHasAssociatedRecords
	}

	result, err := r.DB().ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *customerRepository) Truncate(ctx context.Context) error {
	_, err := r.DB().ExecContext(ctx, "TRUNCATE TABLE customers CASCADE")
	return err
}
