package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solvexa/helpdesk-backend/internal/core/domain"
	apperrors "github.com/solvexa/helpdesk-backend/internal/core/errors"
	"github.com/solvexa/helpdesk-backend/internal/core/ports"
)

const userColumns = `id, name, email, role, status, hashed_password, created_at, updated_at`

// UserRepository is the secondary adapter for user persistence and the
// user-side analytics aggregates.
type UserRepository struct {
	pool *pgxpool.Pool
}

var _ ports.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new user repository.
func NewUserRepository(pool *pgxpool.Pool) ports.UserRepository {
	return &UserRepository{pool: pool}
}

func scanUserRow(row rowScanner) (*domain.User, error) {
	var (
		u         domain.User
		id        pgtype.UUID
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&id,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.Status,
		&u.HashedPassword,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.ID = id.Bytes
	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time
	return &u, nil
}

func collectUsers(rows pgx.Rows) ([]*domain.User, error) {
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, apperrors.WrapStorage(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return users, nil
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `
INSERT INTO users (id, name, email, role, status, hashed_password, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + userColumns

	row := r.pool.QueryRow(ctx, query,
		pgUUID(user.ID),
		user.Name,
		user.Email,
		string(user.Role),
		string(user.Status),
		user.HashedPassword,
		pgTime(user.CreatedAt),
		pgTime(user.UpdatedAt),
	)

	created, err := scanUserRow(row)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return created, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUserRow(r.pool.QueryRow(ctx, query, pgUUID(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapStorage(err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUserRow(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapStorage(err)
	}
	return user, nil
}

// CountUsers returns the total number of users.
func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM users`)
}

// CountByRole groups users by role.
func (r *UserRepository) CountByRole(ctx context.Context) ([]domain.RoleCount, error) {
	const query = `
SELECT role, COUNT(*)
FROM users
GROUP BY role
ORDER BY role
`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	defer rows.Close()

	counts := []domain.RoleCount{}
	for rows.Next() {
		var rc domain.RoleCount
		if err := rows.Scan(&rc.Role, &rc.Count); err != nil {
			return nil, apperrors.WrapStorage(err)
		}
		counts = append(counts, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return counts, nil
}

// CountActive returns the number of users whose status is active.
func (r *UserRepository) CountActive(ctx context.Context) (int64, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM users WHERE status = 'active'`)
}

// CountActiveAgents returns the number of active users with the agent role.
func (r *UserRepository) CountActiveAgents(ctx context.Context) (int64, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM users WHERE status = 'active' AND role = 'agent'`)
}

// MonthlyActivity buckets users by the calendar month of their last
// activity, taken from updated_at.
func (r *UserRepository) MonthlyActivity(ctx context.Context) ([]domain.MonthCount, error) {
	const query = `
SELECT to_char(updated_at, 'YYYY-MM') AS month, COUNT(*)
FROM users
GROUP BY month
ORDER BY month
`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	defer rows.Close()

	activity := []domain.MonthCount{}
	for rows.Next() {
		var mc domain.MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, apperrors.WrapStorage(err)
		}
		activity = append(activity, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return activity, nil
}

// ListAgents returns every user holding the agent role, active or not.
func (r *UserRepository) ListAgents(ctx context.Context) ([]*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE role = 'agent' ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return collectUsers(rows)
}

// ListRecentlyUpdated returns the most recently updated users.
func (r *UserRepository) ListRecentlyUpdated(ctx context.Context, limit int) ([]*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY updated_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return collectUsers(rows)
}

func (r *UserRepository) countQuery(ctx context.Context, query string) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, apperrors.WrapStorage(err)
	}
	return count, nil
}
