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

const commentColumns = `id, ticket_id, content, author_id, attachments, created_at, upvotes, downvotes`

// CommentRepository is the secondary adapter for comment persistence.
type CommentRepository struct {
	pool *pgxpool.Pool
}

var _ ports.CommentRepository = (*CommentRepository)(nil)

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(pool *pgxpool.Pool) ports.CommentRepository {
	return &CommentRepository{pool: pool}
}

func scanCommentRow(row rowScanner) (*domain.Comment, error) {
	var (
		c         domain.Comment
		authorID  pgtype.UUID
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&c.ID,
		&c.TicketID,
		&c.Content,
		&authorID,
		&c.Attachments,
		&createdAt,
		&c.Upvotes,
		&c.Downvotes,
	)
	if err != nil {
		return nil, err
	}

	c.AuthorID = authorID.Bytes
	c.CreatedAt = createdAt.Time
	c.Attachments = stringSlice(c.Attachments)
	c.Upvotes = uuidSlice(c.Upvotes)
	c.Downvotes = uuidSlice(c.Downvotes)
	return &c, nil
}

func collectComments(rows pgx.Rows) ([]*domain.Comment, error) {
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		comment, err := scanCommentRow(rows)
		if err != nil {
			return nil, apperrors.WrapStorage(err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return comments, nil
}

// Create persists a new comment.
func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	const query = `
INSERT INTO comments (ticket_id, content, author_id, attachments, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + commentColumns

	row := r.pool.QueryRow(ctx, query,
		comment.TicketID,
		comment.Content,
		pgUUID(comment.AuthorID),
		stringSlice(comment.Attachments),
		pgTime(comment.CreatedAt),
	)

	created, err := scanCommentRow(row)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return created, nil
}

// GetByID retrieves a single comment by its ID.
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	const query = `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := scanCommentRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, apperrors.WrapStorage(err)
	}
	return comment, nil
}
