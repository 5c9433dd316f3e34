package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvexa/helpdesk-backend/internal/core/domain"
	apperrors "github.com/solvexa/helpdesk-backend/internal/core/errors"
)

func TestAnalyticsRepository_Counts(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewAnalyticsRepository(testPool)

	user := seedUser(t, domain.RoleUser, domain.UserActive)
	agent := seedUser(t, domain.RoleAgent, domain.UserActive)
	category := seedCategory(t, "Hardware")

	seedTicket(t, ticketSeed{Status: domain.StatusOpen, Priority: domain.PriorityLow, CategoryID: category.ID, CreatedBy: user.ID})
	seedTicket(t, ticketSeed{Status: domain.StatusInProgress, Priority: domain.PriorityHigh, CategoryID: category.ID, CreatedBy: user.ID, AssignedTo: &agent.ID, Age: 30 * time.Minute})
	seedTicket(t, ticketSeed{Status: domain.StatusResolved, Priority: domain.PriorityHigh, CreatedBy: user.ID, AssignedTo: &agent.ID, Age: time.Hour})

	total, err := repo.CountTickets(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	byStatus, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	require.Len(t, byStatus, 4)
	statusCounts := map[domain.TicketStatus]int64{}
	for _, sc := range byStatus {
		statusCounts[sc.Status] = sc.Count
	}
	assert.Equal(t, int64(1), statusCounts[domain.StatusOpen])
	assert.Equal(t, int64(1), statusCounts[domain.StatusInProgress])
	assert.Equal(t, int64(1), statusCounts[domain.StatusResolved])
	assert.Equal(t, int64(0), statusCounts[domain.StatusClosed])

	byPriority, err := repo.CountByPriority(ctx)
	require.NoError(t, err)
	require.Len(t, byPriority, 4)
	assert.Equal(t, domain.PriorityLow, byPriority[0].Priority)
	assert.Equal(t, int64(1), byPriority[0].Count)
	assert.Equal(t, domain.PriorityHigh, byPriority[2].Priority)
	assert.Equal(t, int64(2), byPriority[2].Count)
	assert.Equal(t, domain.PriorityUrgent, byPriority[3].Priority)
	assert.Equal(t, int64(0), byPriority[3].Count)

	byCategory, err := repo.CountByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Hardware", byCategory[0].Name)
	assert.Equal(t, int64(2), byCategory[0].Count)

	byAgent, err := repo.CountByAgent(ctx)
	require.NoError(t, err)
	require.Len(t, byAgent, 1)
	assert.Equal(t, agent.Name, byAgent[0].Name)
	assert.Equal(t, int64(2), byAgent[0].Count)
}

func TestAnalyticsRepository_EmptyDatabase(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewAnalyticsRepository(testPool)

	total, err := repo.CountTickets(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	byStatus, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	require.Len(t, byStatus, 4)
	for _, sc := range byStatus {
		assert.Equal(t, int64(0), sc.Count)
	}

	buckets, err := repo.ResponseTimeBuckets(ctx)
	require.NoError(t, err)
	require.Len(t, buckets, 6)
	for _, b := range buckets {
		assert.Equal(t, int64(0), b.Count)
	}

	tickets, err := repo.TicketsCreatedBetween(ctx, time.Time{}, time.Now())
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestAnalyticsRepository_ResponseTimeBuckets(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewAnalyticsRepository(testPool)

	user := seedUser(t, domain.RoleUser, domain.UserActive)

	// One ticket per boundary case. The open ticket must not be counted.
	seedTicket(t, ticketSeed{Status: domain.StatusInProgress, CreatedBy: user.ID, Age: 5 * time.Minute})    // 0-15
	seedTicket(t, ticketSeed{Status: domain.StatusInProgress, CreatedBy: user.ID, Age: 15 * time.Minute})   // 15-30
	seedTicket(t, ticketSeed{Status: domain.StatusResolved, CreatedBy: user.ID, Age: 30 * time.Minute})     // 30-60
	seedTicket(t, ticketSeed{Status: domain.StatusResolved, CreatedBy: user.ID, Age: 90 * time.Minute})     // 60-120
	seedTicket(t, ticketSeed{Status: domain.StatusClosed, CreatedBy: user.ID, Age: 200 * time.Minute})      // 120-240
	seedTicket(t, ticketSeed{Status: domain.StatusClosed, CreatedBy: user.ID, Age: 400 * time.Minute})      // 240+
	seedTicket(t, ticketSeed{Status: domain.StatusOpen, CreatedBy: user.ID, Age: 0})

	buckets, err := repo.ResponseTimeBuckets(ctx)
	require.NoError(t, err)
	require.Len(t, buckets, 6)

	expected := map[string]int64{
		"0-15":    1,
		"15-30":   1,
		"30-60":   1,
		"60-120":  1,
		"120-240": 1,
		"240+":    1,
	}
	for _, b := range buckets {
		assert.Equal(t, expected[b.Label], b.Count, "bucket %s", b.Label)
	}
}

func TestAnalyticsRepository_TicketsCreatedBetween(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewAnalyticsRepository(testPool)

	user := seedUser(t, domain.RoleUser, domain.UserActive)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

	inWindow := seedTicket(t, ticketSeed{Status: domain.StatusOpen, CreatedBy: user.ID, CreatedAt: start.Add(24 * time.Hour)})
	onBoundary := seedTicket(t, ticketSeed{Status: domain.StatusOpen, CreatedBy: user.ID, CreatedAt: start})
	seedTicket(t, ticketSeed{Status: domain.StatusOpen, CreatedBy: user.ID, CreatedAt: start.Add(-time.Minute)})
	seedTicket(t, ticketSeed{Status: domain.StatusOpen, CreatedBy: user.ID, CreatedAt: end.Add(time.Minute)})

	tickets, err := repo.TicketsCreatedBetween(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, onBoundary.ID, tickets[0].ID)
	assert.Equal(t, inWindow.ID, tickets[1].ID)
}

func TestAnalyticsRepository_TicketsForUser(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewAnalyticsRepository(testPool)

	creator := seedUser(t, domain.RoleUser, domain.UserActive)
	agent := seedUser(t, domain.RoleAgent, domain.UserActive)
	other := seedUser(t, domain.RoleUser, domain.UserActive)

	created := seedTicket(t, ticketSeed{Status: domain.StatusOpen, CreatedBy: creator.ID})
	assigned := seedTicket(t, ticketSeed{Status: domain.StatusInProgress, CreatedBy: other.ID, AssignedTo: &creator.ID, Age: time.Minute})
	seedTicket(t, ticketSeed{Status: domain.StatusOpen, CreatedBy: other.ID, AssignedTo: &agent.ID})

	tickets, err := repo.TicketsForUser(ctx, creator.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	ids := []int64{tickets[0].ID, tickets[1].ID}
	assert.Contains(t, ids, created.ID)
	assert.Contains(t, ids, assigned.ID)
}

func TestAnalyticsRepository_RecentCounts(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewAnalyticsRepository(testPool)

	user := seedUser(t, domain.RoleUser, domain.UserActive)
	now := time.Now().UTC()

	seedTicket(t, ticketSeed{Status: domain.StatusOpen, CreatedBy: user.ID, CreatedAt: now.Add(-10 * time.Minute)})
	seedTicket(t, ticketSeed{Status: domain.StatusOpen, CreatedBy: user.ID, CreatedAt: now.Add(-3 * time.Hour)})
	seedTicket(t, ticketSeed{Status: domain.StatusResolved, CreatedBy: user.ID, CreatedAt: now.Add(-40 * time.Minute), Age: 20 * time.Minute})

	since := now.Add(-time.Hour)

	createdCount, err := repo.CountCreatedSince(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, int64(2), createdCount)

	resolvedCount, err := repo.CountResolvedSince(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resolvedCount)
}

func TestAnalyticsRepository_ResolutionTimeByAgent(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewAnalyticsRepository(testPool)

	user := seedUser(t, domain.RoleUser, domain.UserActive)
	agent := seedUser(t, domain.RoleAgent, domain.UserActive)

	seedTicket(t, ticketSeed{Status: domain.StatusResolved, CreatedBy: user.ID, AssignedTo: &agent.ID, Age: 60 * time.Minute})
	seedTicket(t, ticketSeed{Status: domain.StatusResolved, CreatedBy: user.ID, AssignedTo: &agent.ID, Age: 120 * time.Minute})
	seedTicket(t, ticketSeed{Status: domain.StatusInProgress, CreatedBy: user.ID, AssignedTo: &agent.ID, Age: 600 * time.Minute})

	entries, err := repo.ResolutionTimeByAgent(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, agent.ID, entries[0].AgentID)
	assert.Equal(t, agent.Name, entries[0].AgentName)
	assert.Equal(t, int64(90), entries[0].AvgResolutionMinutes)
}

func TestTicketRepository_GetByID_NotFound(t *testing.T) {
	truncateAll(t)
	repo := NewTicketRepository(testPool)

	ticket, err := repo.GetByID(context.Background(), 999999)
	assert.Nil(t, ticket)
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
}
