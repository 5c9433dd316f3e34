package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solvexa/helpdesk-backend/internal/core/domain"
	apperrors "github.com/solvexa/helpdesk-backend/internal/core/errors"
	"github.com/solvexa/helpdesk-backend/internal/core/ports"
)

// VoteRepository applies vote toggles as single UPDATE statements. All SET
// expressions of one UPDATE read the pre-update row, so the whole
// transition is atomic: concurrent toggles serialize on the row lock and
// a voter can never end up in both sets.
type VoteRepository struct {
	pool *pgxpool.Pool
}

var _ ports.VoteRepository = (*VoteRepository)(nil)

// NewVoteRepository creates a new vote repository.
func NewVoteRepository(pool *pgxpool.Pool) ports.VoteRepository {
	return &VoteRepository{pool: pool}
}

const toggleTicketUpvote = `
UPDATE tickets SET
    upvotes = CASE
        WHEN $2 = ANY(upvotes) THEN array_remove(upvotes, $2)
        ELSE array_append(upvotes, $2)
    END,
    downvotes = CASE
        WHEN $2 = ANY(upvotes) THEN downvotes
        ELSE array_remove(downvotes, $2)
    END
WHERE id = $1
RETURNING ` + ticketColumns

const toggleTicketDownvote = `
UPDATE tickets SET
    downvotes = CASE
        WHEN $2 = ANY(downvotes) THEN array_remove(downvotes, $2)
        ELSE array_append(downvotes, $2)
    END,
    upvotes = CASE
        WHEN $2 = ANY(downvotes) THEN upvotes
        ELSE array_remove(upvotes, $2)
    END
WHERE id = $1
RETURNING ` + ticketColumns

const toggleCommentUpvote = `
UPDATE comments SET
    upvotes = CASE
        WHEN $2 = ANY(upvotes) THEN array_remove(upvotes, $2)
        ELSE array_append(upvotes, $2)
    END,
    downvotes = CASE
        WHEN $2 = ANY(upvotes) THEN downvotes
        ELSE array_remove(downvotes, $2)
    END
WHERE id = $1
RETURNING ` + commentColumns

const toggleCommentDownvote = `
UPDATE comments SET
    downvotes = CASE
        WHEN $2 = ANY(downvotes) THEN array_remove(downvotes, $2)
        ELSE array_append(downvotes, $2)
    END,
    upvotes = CASE
        WHEN $2 = ANY(downvotes) THEN upvotes
        ELSE array_remove(upvotes, $2)
    END
WHERE id = $1
RETURNING ` + commentColumns

// ToggleTicketVote flips the user's vote on a ticket in the given direction
// and returns the updated ticket.
func (r *VoteRepository) ToggleTicketVote(ctx context.Context, ticketID int64, userID uuid.UUID, direction domain.VoteState) (*domain.Ticket, error) {
	query, err := pickQuery(direction, toggleTicketUpvote, toggleTicketDownvote)
	if err != nil {
		return nil, err
	}

	ticket, err := scanTicketRow(r.pool.QueryRow(ctx, query, ticketID, pgUUID(userID)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, apperrors.WrapStorage(err)
	}
	return ticket, nil
}

// ToggleCommentVote flips the user's vote on a comment in the given
// direction and returns the updated comment.
func (r *VoteRepository) ToggleCommentVote(ctx context.Context, commentID int64, userID uuid.UUID, direction domain.VoteState) (*domain.Comment, error) {
	query, err := pickQuery(direction, toggleCommentUpvote, toggleCommentDownvote)
	if err != nil {
		return nil, err
	}

	comment, err := scanCommentRow(r.pool.QueryRow(ctx, query, commentID, pgUUID(userID)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, apperrors.WrapStorage(err)
	}
	return comment, nil
}

func pickQuery(direction domain.VoteState, up, down string) (string, error) {
	switch direction {
	case domain.VoteUp:
		return up, nil
	case domain.VoteDown:
		return down, nil
	default:
		return "", apperrors.ErrInvalidVoteDirection
	}
}

// VotingHistory loads every ticket and comment carrying the user's vote,
// newest first.
func (r *VoteRepository) VotingHistory(ctx context.Context, userID uuid.UUID) (*domain.VotingHistory, error) {
	const ticketQuery = `
SELECT ` + ticketColumns + `
FROM tickets
WHERE $1 = ANY(upvotes) OR $1 = ANY(downvotes)
ORDER BY created_at DESC
`

	const commentQuery = `
SELECT ` + commentColumns + `
FROM comments
WHERE $1 = ANY(upvotes) OR $1 = ANY(downvotes)
ORDER BY created_at DESC
`

	ticketRows, err := r.pool.Query(ctx, ticketQuery, pgUUID(userID))
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	tickets, err := collectTickets(ticketRows)
	if err != nil {
		return nil, err
	}

	commentRows, err := r.pool.Query(ctx, commentQuery, pgUUID(userID))
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	comments, err := collectComments(commentRows)
	if err != nil {
		return nil, err
	}

	return &domain.VotingHistory{Tickets: tickets, Comments: comments}, nil
}

// MostUpvoted ranks tickets and comments independently by upvote count.
// Subjects without upvotes are excluded from both listings.
func (r *VoteRepository) MostUpvoted(ctx context.Context, limit int) (*domain.MostUpvoted, error) {
	const ticketQuery = `
SELECT id, subject, cardinality(upvotes), cardinality(downvotes)
FROM tickets
WHERE cardinality(upvotes) > 0
ORDER BY cardinality(upvotes) DESC, id
LIMIT $1
`

	const commentQuery = `
SELECT id, content, cardinality(upvotes), cardinality(downvotes)
FROM comments
WHERE cardinality(upvotes) > 0
ORDER BY cardinality(upvotes) DESC, id
LIMIT $1
`

	tickets, err := r.votedSubjectQuery(ctx, ticketQuery, limit)
	if err != nil {
		return nil, err
	}

	comments, err := r.votedSubjectQuery(ctx, commentQuery, limit)
	if err != nil {
		return nil, err
	}

	return &domain.MostUpvoted{Tickets: tickets, Comments: comments}, nil
}

func (r *VoteRepository) votedSubjectQuery(ctx context.Context, query string, limit int) ([]domain.VotedSubject, error) {
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	defer rows.Close()

	subjects := []domain.VotedSubject{}
	for rows.Next() {
		var s domain.VotedSubject
		if err := rows.Scan(&s.ID, &s.Label, &s.UpvoteCount, &s.DownvoteCount); err != nil {
			return nil, apperrors.WrapStorage(err)
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return subjects, nil
}
