package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/poopticket/citation-service/internal/domain"
)

// ErrNotFound is returned when no record matches the given keys.
var ErrNotFound = errors.New("record not found")

// CitationRepository encapsulates citation storage. Listing order is
// the store's insertion order; no implicit sort.
type CitationRepository interface {
	Create(ctx context.Context, citation *domain.Citation) error
	ListAll(ctx context.Context) ([]domain.Citation, error)
	ListByProperties(ctx context.Context, propertyIDs []string) ([]domain.Citation, error)
	FindByNumberAndLastName(ctx context.Context, id, lastName string) ([]domain.Citation, error)
}

type citationRepository struct {
	pool *pgxpool.Pool
}

// NewCitationRepository returns a Postgres-backed implementation.
func NewCitationRepository(pool *pgxpool.Pool) CitationRepository {
	return &citationRepository{pool: pool}
}

const citationColumns = `id, first_name, last_name, issued_at, amount, status, violation, location, pet_description, property_id, created_at`

func (r *citationRepository) Create(ctx context.Context, citation *domain.Citation) error {
	const query = `
        INSERT INTO citations (id, first_name, last_name, issued_at, amount, status, violation, location, pet_description, property_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		citation.ID,
		citation.FirstName,
		citation.LastName,
		citation.Date,
		citation.Amount,
		citation.Status,
		citation.Violation,
		citation.Location,
		citation.PetDescription,
		citation.PropertyID,
	).Scan(&citation.CreatedAt)
}

func (r *citationRepository) ListAll(ctx context.Context) ([]domain.Citation, error) {
	const query = `SELECT ` + citationColumns + ` FROM citations ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCitations(rows)
}

func (r *citationRepository) ListByProperties(ctx context.Context, propertyIDs []string) ([]domain.Citation, error) {
	if len(propertyIDs) == 0 {
		return []domain.Citation{}, nil
	}
	const query = `SELECT ` + citationColumns + ` FROM citations WHERE property_id = ANY($1) ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, propertyIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCitations(rows)
}

func (r *citationRepository) FindByNumberAndLastName(ctx context.Context, id, lastName string) ([]domain.Citation, error) {
	const query = `SELECT ` + citationColumns + ` FROM citations
        WHERE LOWER(id) = LOWER($1) AND LOWER(last_name) = LOWER($2)
        ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, id, lastName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCitations(rows)
}

func scanCitations(rows pgx.Rows) ([]domain.Citation, error) {
	citations := []domain.Citation{}
	for rows.Next() {
		var c domain.Citation
		if err := rows.Scan(
			&c.ID,
			&c.FirstName,
			&c.LastName,
			&c.Date,
			&c.Amount,
			&c.Status,
			&c.Violation,
			&c.Location,
			&c.PetDescription,
			&c.PropertyID,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		citations = append(citations, c)
	}
	return citations, rows.Err()
}
