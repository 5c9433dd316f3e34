package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solvexa/helpdesk-backend/internal/core/domain"
	apperrors "github.com/solvexa/helpdesk-backend/internal/core/errors"
	"github.com/solvexa/helpdesk-backend/internal/core/ports"
)

// ticketColumns is the canonical column list every ticket query selects, in
// the order scanTicketRow expects.
const ticketColumns = `id, subject, description, status, priority, category_id, created_by, assigned_to, created_at, last_updated, resolved_at, upvotes, downvotes`

// TicketRepository is the secondary adapter for ticket persistence.
type TicketRepository struct {
	pool *pgxpool.Pool
}

var _ ports.TicketRepository = (*TicketRepository)(nil)

// NewTicketRepository creates a new ticket repository.
func NewTicketRepository(pool *pgxpool.Pool) ports.TicketRepository {
	return &TicketRepository{pool: pool}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicketRow(row rowScanner) (*domain.Ticket, error) {
	var (
		t          domain.Ticket
		categoryID pgtype.Int8
		createdBy  pgtype.UUID
		assignedTo pgtype.UUID
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
		resolvedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&t.ID,
		&t.Subject,
		&t.Description,
		&t.Status,
		&t.Priority,
		&categoryID,
		&createdBy,
		&assignedTo,
		&createdAt,
		&updatedAt,
		&resolvedAt,
		&t.Upvotes,
		&t.Downvotes,
	)
	if err != nil {
		return nil, err
	}

	t.CategoryID = fromPgInt8(categoryID)
	t.CreatedBy = createdBy.Bytes
	t.AssignedTo = fromPgUUIDPtr(assignedTo)
	t.CreatedAt = createdAt.Time
	t.LastUpdated = updatedAt.Time
	t.ResolvedAt = fromPgTimePtr(resolvedAt)
	t.Upvotes = uuidSlice(t.Upvotes)
	t.Downvotes = uuidSlice(t.Downvotes)
	return &t, nil
}

func collectTickets(rows pgx.Rows) ([]*domain.Ticket, error) {
	defer rows.Close()

	tickets := []*domain.Ticket{}
	for rows.Next() {
		ticket, err := scanTicketRow(rows)
		if err != nil {
			return nil, apperrors.WrapStorage(err)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return tickets, nil
}

// Create persists a new ticket.
func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	const query = `
INSERT INTO tickets (subject, description, status, priority, category_id, created_by, assigned_to, created_at, last_updated, resolved_at)
VALUES ($1, $2, $3, $4, NULLIF($5, 0), $6, $7, $8, $9, $10)
RETURNING ` + ticketColumns

	row := r.pool.QueryRow(ctx, query,
		ticket.Subject,
		ticket.Description,
		string(ticket.Status),
		string(ticket.Priority),
		ticket.CategoryID,
		pgUUID(ticket.CreatedBy),
		pgUUIDPtr(ticket.AssignedTo),
		pgTime(ticket.CreatedAt),
		pgTime(ticket.LastUpdated),
		pgTimePtr(ticket.ResolvedAt),
	)

	created, err := scanTicketRow(row)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return created, nil
}

// GetByID retrieves a single ticket by its ID.
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicketRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, apperrors.WrapStorage(err)
	}
	return ticket, nil
}
