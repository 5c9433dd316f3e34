package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/solvexa/helpdesk-backend/internal/core/domain"
)

// AnalyticsService composes aggregation queries and metric primitives into
// named reports. Each call is a fresh read; no state is shared between calls.
type AnalyticsService interface {
	TicketAnalytics(ctx context.Context) (*domain.TicketAnalytics, error)
	UserAnalytics(ctx context.Context) (*domain.UserAnalytics, error)
	CategoryAnalytics(ctx context.Context) (*domain.CategoryAnalytics, error)
	PerformanceAnalytics(ctx context.Context) (*domain.PerformanceAnalytics, error)
	RealTimeSnapshot(ctx context.Context) (*domain.RealTimeSnapshot, error)
	AnalyticsByDateRange(ctx context.Context, start, end time.Time) (*domain.RangeReport, error)
	AnalyticsByUser(ctx context.Context, userID uuid.UUID) (*domain.UserScopedReport, error)
	AgentPerformance(ctx context.Context) ([]domain.AgentPerformanceEntry, error)
}

// VoteParams identifies one vote toggle.
type VoteParams struct {
	SubjectType domain.VoteSubjectType
	SubjectID   int64
	UserID      uuid.UUID
}

// VoteResult carries the updated subject after a toggle. Exactly one of
// Ticket or Comment is set, matching the subject type.
type VoteResult struct {
	SubjectType domain.VoteSubjectType
	Ticket      *domain.Ticket
	Comment     *domain.Comment
}

// VotingService implements the up/down vote state machine over tickets and
// comments, plus the aggregate vote reads.
type VotingService interface {
	Upvote(ctx context.Context, params VoteParams) (*VoteResult, error)
	Downvote(ctx context.Context, params VoteParams) (*VoteResult, error)
	VotingHistory(ctx context.Context, userID uuid.UUID) (*domain.VotingHistory, error)
	MostUpvoted(ctx context.Context, limit int) (*domain.MostUpvoted, error)
}

// EventBroadcaster pushes real-time events to connected dashboard clients.
type EventBroadcaster interface {
	Broadcast(event domain.Event) error
}
