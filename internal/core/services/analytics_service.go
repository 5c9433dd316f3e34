package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/solvexa/helpdesk-backend/internal/core/domain"
	apperrors "github.com/solvexa/helpdesk-backend/internal/core/errors"
	"github.com/solvexa/helpdesk-backend/internal/core/ports"
)

// recentWindow is how far back the real-time snapshot looks for "new" and
// "resolved" ticket counts.
const recentWindow = time.Hour

// recentLimit caps the "most recently updated" listings in the category and
// user reports.
const recentLimit = 5

// AnalyticsService composes the aggregation queries and metric primitives
// into the named reports the dashboards and chatbot consume.
type AnalyticsService struct {
	analyticsRepo ports.AnalyticsRepository
	userRepo      ports.UserRepository
	categoryRepo  ports.CategoryRepository
}

var _ ports.AnalyticsService = (*AnalyticsService)(nil)

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(
	analyticsRepo ports.AnalyticsRepository,
	userRepo ports.UserRepository,
	categoryRepo ports.CategoryRepository,
) ports.AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		userRepo:      userRepo,
		categoryRepo:  categoryRepo,
	}
}

// TicketAnalytics builds the global ticket report: totals, status/priority
// breakdowns, the overall average response time, and category/agent counts.
func (s *AnalyticsService) TicketAnalytics(ctx context.Context) (*domain.TicketAnalytics, error) {
	total, err := s.analyticsRepo.CountTickets(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.analyticsRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	byPriority, err := s.analyticsRepo.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.analyticsRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	byAgent, err := s.analyticsRepo.CountByAgent(ctx)
	if err != nil {
		return nil, err
	}

	// Average response time over every ticket that has left the open state.
	// The window [zero, now] covers the full ticket history.
	tickets, err := s.analyticsRepo.TicketsCreatedBetween(ctx, time.Time{}, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return &domain.TicketAnalytics{
		TotalTickets:    total,
		ByStatus:        byStatus,
		ByPriority:      byPriority,
		AvgResponseTime: domain.AverageResponseTime(tickets),
		ByCategory:      byCategory,
		ByAgent:         byAgent,
	}, nil
}

// UserAnalytics builds the global user report.
func (s *AnalyticsService) UserAnalytics(ctx context.Context) (*domain.UserAnalytics, error) {
	total, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	byRole, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	active, err := s.userRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	activity, err := s.userRepo.MonthlyActivity(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.userRepo.ListRecentlyUpdated(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	return &domain.UserAnalytics{
		TotalUsers:      total,
		ByRole:          byRole,
		ActiveUsers:     active,
		MonthlyActivity: activity,
		RecentlyUpdated: recent,
	}, nil
}

// CategoryAnalytics builds the global category report.
func (s *AnalyticsService) CategoryAnalytics(ctx context.Context) (*domain.CategoryAnalytics, error) {
	total, err := s.categoryRepo.CountCategories(ctx)
	if err != nil {
		return nil, err
	}

	ranked, err := s.categoryRepo.RankedByTicketCount(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.categoryRepo.ListRecentlyUpdated(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	return &domain.CategoryAnalytics{
		TotalCategories: total,
		ByTicketCount:   ranked,
		RecentlyUpdated: recent,
	}, nil
}

// PerformanceAnalytics builds the response-time histogram and the per-agent
// resolution time table for the performance dashboard.
func (s *AnalyticsService) PerformanceAnalytics(ctx context.Context) (*domain.PerformanceAnalytics, error) {
	buckets, err := s.analyticsRepo.ResponseTimeBuckets(ctx)
	if err != nil {
		return nil, err
	}

	byAgent, err := s.analyticsRepo.ResolutionTimeByAgent(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.PerformanceAnalytics{
		ResponseTimeDistribution: buckets,
		ResolutionTimeByAgent:    byAgent,
	}, nil
}

// RealTimeSnapshot builds the live dashboard tiles: active sessions, ticket
// activity within the last hour, and active agent capacity.
func (s *AnalyticsService) RealTimeSnapshot(ctx context.Context) (*domain.RealTimeSnapshot, error) {
	since := time.Now().UTC().Add(-recentWindow)

	activeSessions, err := s.userRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	newTickets, err := s.analyticsRepo.CountCreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}

	resolvedTickets, err := s.analyticsRepo.CountResolvedSince(ctx, since)
	if err != nil {
		return nil, err
	}

	activeAgents, err := s.userRepo.CountActiveAgents(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.RealTimeSnapshot{
		ActiveSessions:  activeSessions,
		NewTickets:      newTickets,
		ResolvedTickets: resolvedTickets,
		ActiveAgents:    activeAgents,
	}, nil
}

// AnalyticsByDateRange aggregates tickets created within the inclusive
// [start, end] window. An end before start is a caller error.
func (s *AnalyticsService) AnalyticsByDateRange(ctx context.Context, start, end time.Time) (*domain.RangeReport, error) {
	if end.Before(start) {
		return nil, apperrors.ErrInvalidRange
	}

	tickets, err := s.analyticsRepo.TicketsCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var resolved int64
	for _, t := range tickets {
		if t.Status == domain.StatusResolved {
			resolved++
		}
	}

	return &domain.RangeReport{
		Start:             start,
		End:               end,
		TotalTickets:      int64(len(tickets)),
		ResolvedTickets:   resolved,
		AvgResponseTime:   domain.AverageResponseTime(tickets),
		AvgResolutionTime: domain.AverageResolutionTime(tickets),
	}, nil
}

// AnalyticsByUser scores the tickets a user touches as creator or assignee.
// A user with no tickets yields a zero-valued report, not an error; an
// unknown user is NotFound.
func (s *AnalyticsService) AnalyticsByUser(ctx context.Context, userID uuid.UUID) (*domain.UserScopedReport, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	tickets, err := s.analyticsRepo.TicketsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.UserScopedReport{
		UserID:               userID,
		TotalTickets:         int64(len(tickets)),
		ResolvedToday:        domain.CountResolvedOn(tickets, time.Now()),
		AvgResponseTime:      domain.AverageResponseTime(tickets),
		PerformanceScore:     domain.PerformanceScore(tickets),
		PriorityDistribution: domain.PriorityDistribution(tickets),
	}, nil
}

// AgentPerformance builds one performance row per agent over the tickets
// assigned to them. Agents with no tickets appear with zero values.
func (s *AnalyticsService) AgentPerformance(ctx context.Context) ([]domain.AgentPerformanceEntry, error) {
	agents, err := s.userRepo.ListAgents(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.AgentPerformanceEntry, 0, len(agents))
	for _, agent := range agents {
		tickets, err := s.analyticsRepo.TicketsByAssignee(ctx, agent.ID)
		if err != nil {
			return nil, err
		}

		var resolved int64
		for _, t := range tickets {
			if t.Status == domain.StatusResolved {
				resolved++
			}
		}

		entries = append(entries, domain.AgentPerformanceEntry{
			AgentID:           agent.ID,
			AgentName:         agent.Name,
			TotalTickets:      int64(len(tickets)),
			ResolvedTickets:   resolved,
			AvgResponseTime:   domain.AverageResponseTime(tickets),
			AvgResolutionTime: domain.AverageResolutionTime(tickets),
		})
	}

	return entries, nil
}
