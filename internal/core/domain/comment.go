package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/solvexa/helpdesk-backend/internal/core/errors"
)

// Comment is a reply on a ticket. Like tickets, comments carry vote sets
// maintained by the voting subsystem.
type Comment struct {
	ID          int64
	TicketID    int64
	Content     string
	AuthorID    uuid.UUID
	Attachments []string
	CreatedAt   time.Time
	Upvotes     []uuid.UUID
	Downvotes   []uuid.UUID
}

// CommentParams holds the input for creating a comment.
type CommentParams struct {
	TicketID    int64
	AuthorID    uuid.UUID
	Content     string
	Attachments []string
}

// NewComment validates and builds a new comment. Used by the seeder and tests.
func NewComment(params CommentParams) (*Comment, error) {
	if params.Content == "" {
		return nil, apperrors.ErrCommentContentRequired
	}
	if params.TicketID <= 0 {
		return nil, apperrors.ErrTicketIDRequired
	}
	if params.AuthorID == uuid.Nil {
		return nil, apperrors.ErrAuthorRequired
	}

	return &Comment{
		TicketID:    params.TicketID,
		AuthorID:    params.AuthorID,
		Content:     params.Content,
		Attachments: params.Attachments,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
