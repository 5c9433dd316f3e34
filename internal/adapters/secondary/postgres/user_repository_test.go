package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvexa/helpdesk-backend/internal/core/domain"
	apperrors "github.com/solvexa/helpdesk-backend/internal/core/errors"
)

func TestUserRepository_CreateGet(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewUserRepository(testPool)

	created := seedUser(t, domain.RoleAgent, domain.UserActive)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, found.Email)
	assert.Equal(t, domain.RoleAgent, found.Role)

	byEmail, err := repo.GetByEmail(ctx, created.Email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserRepository_Aggregates(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewUserRepository(testPool)

	seedUser(t, domain.RoleUser, domain.UserActive)
	seedUser(t, domain.RoleUser, domain.UserInactive)
	seedUser(t, domain.RoleAgent, domain.UserActive)
	seedUser(t, domain.RoleAgent, domain.UserInactive)
	seedUser(t, domain.RoleAdmin, domain.UserActive)

	total, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	active, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), active)

	activeAgents, err := repo.CountActiveAgents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), activeAgents)

	byRole, err := repo.CountByRole(ctx)
	require.NoError(t, err)
	roleCounts := map[domain.UserRole]int64{}
	for _, rc := range byRole {
		roleCounts[rc.Role] = rc.Count
	}
	assert.Equal(t, int64(2), roleCounts[domain.RoleUser])
	assert.Equal(t, int64(2), roleCounts[domain.RoleAgent])
	assert.Equal(t, int64(1), roleCounts[domain.RoleAdmin])

	agents, err := repo.ListAgents(ctx)
	require.NoError(t, err)
	require.Len(t, agents, 2)

	activity, err := repo.MonthlyActivity(ctx)
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, int64(5), activity[0].Count)

	recent, err := repo.ListRecentlyUpdated(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
}

func TestUserRepository_MonthlyActivityUsesLastActivity(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewUserRepository(testPool)

	// Registered in January, last active in March.
	_, err := repo.Create(ctx, &domain.User{
		ID:             uuid.New(),
		Name:           "Long Timer",
		Email:          uuid.NewString() + "@example.com",
		Role:           domain.RoleUser,
		Status:         domain.UserActive,
		HashedPassword: "not-a-real-hash",
		CreatedAt:      time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2026, time.March, 2, 14, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{
		ID:             uuid.New(),
		Name:           "Newcomer",
		Email:          uuid.NewString() + "@example.com",
		Role:           domain.RoleUser,
		Status:         domain.UserActive,
		HashedPassword: "not-a-real-hash",
		CreatedAt:      time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2026, time.March, 20, 16, 45, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	activity, err := repo.MonthlyActivity(ctx)
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, "2026-03", activity[0].Month)
	assert.Equal(t, int64(2), activity[0].Count)
}
