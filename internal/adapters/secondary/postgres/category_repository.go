package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solvexa/helpdesk-backend/internal/core/domain"
	apperrors "github.com/solvexa/helpdesk-backend/internal/core/errors"
	"github.com/solvexa/helpdesk-backend/internal/core/ports"
)

// CategoryRepository is the secondary adapter for category persistence.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(pool *pgxpool.Pool) ports.CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create persists a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	const query = `
INSERT INTO categories (name, description, last_updated)
VALUES ($1, $2, now())
RETURNING id, name, description, last_updated
`

	var (
		created     domain.Category
		lastUpdated pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, query, category.Name, category.Description).
		Scan(&created.ID, &created.Name, &created.Description, &lastUpdated)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	created.LastUpdated = lastUpdated.Time
	return &created, nil
}

// CountCategories returns the total number of categories.
func (r *CategoryRepository) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, apperrors.WrapStorage(err)
	}
	return count, nil
}

// RankedByTicketCount orders categories by how many tickets reference them.
// Categories without tickets still appear, with a zero count.
func (r *CategoryRepository) RankedByTicketCount(ctx context.Context) ([]domain.CategoryTicketCount, error) {
	const query = `
SELECT c.id, c.name, COUNT(t.id) AS ticket_count
FROM categories c
LEFT JOIN tickets t ON t.category_id = c.id
GROUP BY c.id, c.name
ORDER BY ticket_count DESC, c.name
`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	defer rows.Close()

	ranked := []domain.CategoryTicketCount{}
	for rows.Next() {
		var entry domain.CategoryTicketCount
		if err := rows.Scan(&entry.CategoryID, &entry.Name, &entry.TicketCount); err != nil {
			return nil, apperrors.WrapStorage(err)
		}
		ranked = append(ranked, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return ranked, nil
}

// ListRecentlyUpdated returns the most recently updated categories.
func (r *CategoryRepository) ListRecentlyUpdated(ctx context.Context, limit int) ([]*domain.Category, error) {
	const query = `
SELECT id, name, description, last_updated
FROM categories
ORDER BY last_updated DESC
LIMIT $1
`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		var (
			c           domain.Category
			lastUpdated pgtype.Timestamptz
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &lastUpdated); err != nil {
			return nil, apperrors.WrapStorage(err)
		}
		c.LastUpdated = lastUpdated.Time
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return categories, nil
}
