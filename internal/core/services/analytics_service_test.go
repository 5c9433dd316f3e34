package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/solvexa/helpdesk-backend/internal/core/domain"
	apperrors "github.com/solvexa/helpdesk-backend/internal/core/errors"
	"github.com/solvexa/helpdesk-backend/internal/core/mocks"
)

func newAnalyticsFixture() (*mocks.MockAnalyticsRepository, *mocks.MockUserRepository, *mocks.MockCategoryRepository, *AnalyticsService) {
	analyticsRepo := new(mocks.MockAnalyticsRepository)
	userRepo := new(mocks.MockUserRepository)
	categoryRepo := new(mocks.MockCategoryRepository)
	svc := NewAnalyticsService(analyticsRepo, userRepo, categoryRepo).(*AnalyticsService)
	return analyticsRepo, userRepo, categoryRepo, svc
}

func ticketAt(created time.Time, status domain.TicketStatus, age time.Duration) *domain.Ticket {
	t := &domain.Ticket{
		ID:          1,
		Subject:     "test",
		Status:      status,
		Priority:    domain.PriorityMedium,
		CreatedBy:   uuid.New(),
		CreatedAt:   created,
		LastUpdated: created.Add(age),
	}
	if status == domain.StatusResolved {
		resolvedAt := created.Add(age)
		t.ResolvedAt = &resolvedAt
	}
	return t
}

func TestAnalyticsService_TicketAnalytics(t *testing.T) {
	analyticsRepo, _, _, svc := newAnalyticsFixture()

	created := time.Now().UTC().Add(-2 * time.Hour)
	tickets := []*domain.Ticket{
		ticketAt(created, domain.StatusResolved, 30*time.Minute),
		ticketAt(created, domain.StatusOpen, 0),
	}

	analyticsRepo.On("CountTickets", mock.Anything).Return(int64(2), nil)
	analyticsRepo.On("CountByStatus", mock.Anything).Return([]domain.StatusCount{
		{Status: domain.StatusOpen, Count: 1},
		{Status: domain.StatusResolved, Count: 1},
	}, nil)
	analyticsRepo.On("CountByPriority", mock.Anything).Return([]domain.PriorityCount{
		{Priority: domain.PriorityMedium, Count: 2},
	}, nil)
	analyticsRepo.On("CountByCategory", mock.Anything).Return([]domain.NamedCount{
		{Name: "Hardware", Count: 2},
	}, nil)
	analyticsRepo.On("CountByAgent", mock.Anything).Return([]domain.NamedCount{}, nil)
	analyticsRepo.On("TicketsCreatedBetween", mock.Anything, mock.Anything, mock.Anything).Return(tickets, nil)

	report, err := svc.TicketAnalytics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), report.TotalTickets)
	// The open ticket is excluded, so the average is the resolved one alone.
	assert.Equal(t, int64(30), report.AvgResponseTime)
	assert.Len(t, report.ByStatus, 2)
	analyticsRepo.AssertExpectations(t)
}

func TestAnalyticsService_TicketAnalytics_RepositoryError(t *testing.T) {
	analyticsRepo, _, _, svc := newAnalyticsFixture()

	storageErr := apperrors.WrapStorage(assert.AnError)
	analyticsRepo.On("CountTickets", mock.Anything).Return(int64(0), storageErr)

	report, err := svc.TicketAnalytics(context.Background())

	assert.Nil(t, report)
	assert.True(t, apperrors.IsStorage(err))
}

func TestAnalyticsService_UserAnalytics(t *testing.T) {
	_, userRepo, _, svc := newAnalyticsFixture()

	recent := []*domain.User{{ID: uuid.New(), Name: "Agent One", Role: domain.RoleAgent}}
	userRepo.On("CountUsers", mock.Anything).Return(int64(12), nil)
	userRepo.On("CountByRole", mock.Anything).Return([]domain.RoleCount{
		{Role: domain.RoleUser, Count: 9},
		{Role: domain.RoleAgent, Count: 2},
		{Role: domain.RoleAdmin, Count: 1},
	}, nil)
	userRepo.On("CountActive", mock.Anything).Return(int64(10), nil)
	userRepo.On("MonthlyActivity", mock.Anything).Return([]domain.MonthCount{
		{Month: "2026-08", Count: 4},
	}, nil)
	userRepo.On("ListRecentlyUpdated", mock.Anything, recentLimit).Return(recent, nil)

	report, err := svc.UserAnalytics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(12), report.TotalUsers)
	assert.Equal(t, int64(10), report.ActiveUsers)
	assert.Equal(t, recent, report.RecentlyUpdated)
	userRepo.AssertExpectations(t)
}

func TestAnalyticsService_CategoryAnalytics(t *testing.T) {
	_, _, categoryRepo, svc := newAnalyticsFixture()

	categoryRepo.On("CountCategories", mock.Anything).Return(int64(3), nil)
	categoryRepo.On("RankedByTicketCount", mock.Anything).Return([]domain.CategoryTicketCount{
		{CategoryID: 1, Name: "Hardware", TicketCount: 7},
		{CategoryID: 2, Name: "Software", TicketCount: 4},
	}, nil)
	categoryRepo.On("ListRecentlyUpdated", mock.Anything, recentLimit).Return([]*domain.Category{}, nil)

	report, err := svc.CategoryAnalytics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), report.TotalCategories)
	require.Len(t, report.ByTicketCount, 2)
	assert.Equal(t, "Hardware", report.ByTicketCount[0].Name)
	categoryRepo.AssertExpectations(t)
}

func TestAnalyticsService_RealTimeSnapshot(t *testing.T) {
	analyticsRepo, userRepo, _, svc := newAnalyticsFixture()

	userRepo.On("CountActive", mock.Anything).Return(int64(6), nil)
	userRepo.On("CountActiveAgents", mock.Anything).Return(int64(2), nil)
	analyticsRepo.On("CountCreatedSince", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		return time.Since(since) < 2*time.Hour
	})).Return(int64(3), nil)
	analyticsRepo.On("CountResolvedSince", mock.Anything, mock.Anything).Return(int64(1), nil)

	snapshot, err := svc.RealTimeSnapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(6), snapshot.ActiveSessions)
	assert.Equal(t, int64(3), snapshot.NewTickets)
	assert.Equal(t, int64(1), snapshot.ResolvedTickets)
	assert.Equal(t, int64(2), snapshot.ActiveAgents)
}

func TestAnalyticsService_AnalyticsByDateRange(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

	t.Run("end before start is rejected", func(t *testing.T) {
		_, _, _, svc := newAnalyticsFixture()

		report, err := svc.AnalyticsByDateRange(context.Background(), end, start)

		assert.Nil(t, report)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRange)
	})

	t.Run("empty window yields zero report", func(t *testing.T) {
		analyticsRepo, _, _, svc := newAnalyticsFixture()
		analyticsRepo.On("TicketsCreatedBetween", mock.Anything, start, end).Return([]*domain.Ticket{}, nil)

		report, err := svc.AnalyticsByDateRange(context.Background(), start, end)

		require.NoError(t, err)
		assert.Equal(t, int64(0), report.TotalTickets)
		assert.Equal(t, int64(0), report.ResolvedTickets)
		assert.Equal(t, int64(0), report.AvgResponseTime)
		assert.Equal(t, int64(0), report.AvgResolutionTime)
	})

	t.Run("aggregates resolved tickets in window", func(t *testing.T) {
		analyticsRepo, _, _, svc := newAnalyticsFixture()
		created := start.Add(24 * time.Hour)
		tickets := []*domain.Ticket{
			ticketAt(created, domain.StatusResolved, 60*time.Minute),
			ticketAt(created, domain.StatusResolved, 120*time.Minute),
			ticketAt(created, domain.StatusOpen, 0),
		}
		analyticsRepo.On("TicketsCreatedBetween", mock.Anything, start, end).Return(tickets, nil)

		report, err := svc.AnalyticsByDateRange(context.Background(), start, end)

		require.NoError(t, err)
		assert.Equal(t, int64(3), report.TotalTickets)
		assert.Equal(t, int64(2), report.ResolvedTickets)
		assert.Equal(t, int64(90), report.AvgResponseTime)
		assert.Equal(t, int64(90), report.AvgResolutionTime)
	})
}

func TestAnalyticsService_AnalyticsByUser(t *testing.T) {
	userID := uuid.New()

	t.Run("unknown user", func(t *testing.T) {
		_, userRepo, _, svc := newAnalyticsFixture()
		userRepo.On("GetByID", mock.Anything, userID).Return(nil, apperrors.ErrUserNotFound)

		report, err := svc.AnalyticsByUser(context.Background(), userID)

		assert.Nil(t, report)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("user with no tickets yields zero report", func(t *testing.T) {
		analyticsRepo, userRepo, _, svc := newAnalyticsFixture()
		userRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)
		analyticsRepo.On("TicketsForUser", mock.Anything, userID).Return([]*domain.Ticket{}, nil)

		report, err := svc.AnalyticsByUser(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, userID, report.UserID)
		assert.Equal(t, int64(0), report.TotalTickets)
		assert.Equal(t, int64(0), report.ResolvedToday)
		assert.Equal(t, int64(0), report.AvgResponseTime)
		assert.Equal(t, int64(0), report.PerformanceScore)
		require.Len(t, report.PriorityDistribution, 4)
		for _, bucket := range report.PriorityDistribution {
			assert.Equal(t, int64(0), bucket.Count)
			assert.Equal(t, int64(0), bucket.Percentage)
		}
	})

	t.Run("resolved today and score", func(t *testing.T) {
		analyticsRepo, userRepo, _, svc := newAnalyticsFixture()
		created := time.Now().Add(-30 * time.Minute)
		tickets := []*domain.Ticket{
			ticketAt(created, domain.StatusResolved, 10*time.Minute),
		}
		userRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)
		analyticsRepo.On("TicketsForUser", mock.Anything, userID).Return(tickets, nil)

		report, err := svc.AnalyticsByUser(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, int64(1), report.TotalTickets)
		assert.Equal(t, int64(1), report.ResolvedToday)
		assert.Equal(t, int64(10), report.AvgResponseTime)
		// 100% resolution, 10 minute response: 0.6*100 + 0.4*(100-10/60) = 100.
		assert.Equal(t, int64(100), report.PerformanceScore)
	})
}

func TestAnalyticsService_AgentPerformance(t *testing.T) {
	analyticsRepo, userRepo, _, svc := newAnalyticsFixture()

	busy := &domain.User{ID: uuid.New(), Name: "Busy Agent", Role: domain.RoleAgent}
	idle := &domain.User{ID: uuid.New(), Name: "Idle Agent", Role: domain.RoleAgent}
	userRepo.On("ListAgents", mock.Anything).Return([]*domain.User{busy, idle}, nil)

	created := time.Now().UTC().Add(-3 * time.Hour)
	analyticsRepo.On("TicketsByAssignee", mock.Anything, busy.ID).Return([]*domain.Ticket{
		ticketAt(created, domain.StatusResolved, 40*time.Minute),
		ticketAt(created, domain.StatusInProgress, 20*time.Minute),
	}, nil)
	analyticsRepo.On("TicketsByAssignee", mock.Anything, idle.ID).Return([]*domain.Ticket{}, nil)

	entries, err := svc.AgentPerformance(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Busy Agent", entries[0].AgentName)
	assert.Equal(t, int64(2), entries[0].TotalTickets)
	assert.Equal(t, int64(1), entries[0].ResolvedTickets)
	assert.Equal(t, int64(30), entries[0].AvgResponseTime)
	assert.Equal(t, int64(40), entries[0].AvgResolutionTime)

	assert.Equal(t, "Idle Agent", entries[1].AgentName)
	assert.Equal(t, int64(0), entries[1].TotalTickets)
	assert.Equal(t, int64(0), entries[1].AvgResponseTime)
}
