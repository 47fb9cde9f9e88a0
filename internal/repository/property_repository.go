package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/poopticket/citation-service/internal/domain"
)

// PropertyRepository defines storage access for managed properties.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	ListAll(ctx context.Context) ([]domain.Property, error)
}

type propertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository returns a Postgres-backed implementation.
func NewPropertyRepository(pool *pgxpool.Pool) PropertyRepository {
	return &propertyRepository{pool: pool}
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	const query = `
        INSERT INTO properties (id, name)
        VALUES ($1, $2)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query, property.ID, property.Name).Scan(&property.CreatedAt)
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	const query = `SELECT id, name, created_at FROM properties WHERE id=$1`
	var property domain.Property
	err := r.pool.QueryRow(ctx, query, id).Scan(&property.ID, &property.Name, &property.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) ListAll(ctx context.Context) ([]domain.Property, error) {
	const query = `SELECT id, name, created_at FROM properties ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := []domain.Property{}
	for rows.Next() {
		var property domain.Property
		if err := rows.Scan(&property.ID, &property.Name, &property.CreatedAt); err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}
	return properties, rows.Err()
}
