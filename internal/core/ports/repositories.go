package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/solvexa/helpdesk-backend/internal/core/domain"
)

// TicketRepository provides read access to individual tickets for the
// voting subsystem and seeding.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
}

// CommentRepository provides read access to individual comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
}

// UserRepository provides user lookups and the user-side aggregates the
// analytics service composes.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	CountUsers(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context) ([]domain.RoleCount, error)
	CountActive(ctx context.Context) (int64, error)
	CountActiveAgents(ctx context.Context) (int64, error)
	MonthlyActivity(ctx context.Context) ([]domain.MonthCount, error)
	ListAgents(ctx context.Context) ([]*domain.User, error)
	ListRecentlyUpdated(ctx context.Context, limit int) ([]*domain.User, error)
}

// CategoryRepository provides category lookups and aggregates.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	CountCategories(ctx context.Context) (int64, error)
	RankedByTicketCount(ctx context.Context) ([]domain.CategoryTicketCount, error)
	ListRecentlyUpdated(ctx context.Context, limit int) ([]*domain.Category, error)
}

// AnalyticsRepository isolates the ticket-side aggregation queries. Every
// method tolerates zero matching rows (empty slice or zero value, never an
// error) and never mutates the underlying records.
type AnalyticsRepository interface {
	CountTickets(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) ([]domain.StatusCount, error)
	CountByPriority(ctx context.Context) ([]domain.PriorityCount, error)
	CountByCategory(ctx context.Context) ([]domain.NamedCount, error)
	CountByAgent(ctx context.Context) ([]domain.NamedCount, error)
	ResponseTimeBuckets(ctx context.Context) ([]domain.ResponseTimeBucket, error)
	ResolutionTimeByAgent(ctx context.Context) ([]domain.AgentResolutionTime, error)
	TicketsCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Ticket, error)
	TicketsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error)
	TicketsByAssignee(ctx context.Context, agentID uuid.UUID) ([]*domain.Ticket, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountResolvedSince(ctx context.Context, since time.Time) (int64, error)
}

// VoteRepository performs vote-set transitions. Each toggle is a single
// atomic update over both vote sets so concurrent toggles on the same
// subject cannot lose updates or leave a user in both sets.
type VoteRepository interface {
	ToggleTicketVote(ctx context.Context, ticketID int64, userID uuid.UUID, direction domain.VoteState) (*domain.Ticket, error)
	ToggleCommentVote(ctx context.Context, commentID int64, userID uuid.UUID, direction domain.VoteState) (*domain.Comment, error)
	VotingHistory(ctx context.Context, userID uuid.UUID) (*domain.VotingHistory, error)
	MostUpvoted(ctx context.Context, limit int) (*domain.MostUpvoted, error)
}
