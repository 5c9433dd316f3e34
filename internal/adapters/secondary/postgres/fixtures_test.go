package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/solvexa/helpdesk-backend/internal/core/domain"
)

func seedUser(t *testing.T, role domain.UserRole, status domain.UserStatus) *domain.User {
	t.Helper()
	repo := NewUserRepository(testPool)

	user, err := repo.Create(context.Background(), &domain.User{
		ID:             uuid.New(),
		Name:           "User " + uuid.NewString()[:8],
		Email:          uuid.NewString() + "@example.com",
		Role:           role,
		Status:         status,
		HashedPassword: "not-a-real-hash",
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	})
	require.NoError(t, err)
	return user
}

func seedCategory(t *testing.T, name string) *domain.Category {
	t.Helper()
	repo := NewCategoryRepository(testPool)

	category, err := repo.Create(context.Background(), &domain.Category{
		Name:        name,
		Description: "seeded for tests",
	})
	require.NoError(t, err)
	return category
}

type ticketSeed struct {
	Status     domain.TicketStatus
	Priority   domain.TicketPriority
	CategoryID int64
	CreatedBy  uuid.UUID
	AssignedTo *uuid.UUID
	CreatedAt  time.Time
	Age        time.Duration
}

func seedTicket(t *testing.T, seed ticketSeed) *domain.Ticket {
	t.Helper()
	repo := NewTicketRepository(testPool)

	if seed.Priority == "" {
		seed.Priority = domain.PriorityMedium
	}
	if seed.CreatedAt.IsZero() {
		seed.CreatedAt = time.Now().UTC().Add(-seed.Age - time.Hour)
	}

	ticket := &domain.Ticket{
		Subject:     "Seeded ticket",
		Description: "seeded for tests",
		Status:      seed.Status,
		Priority:    seed.Priority,
		CategoryID:  seed.CategoryID,
		CreatedBy:   seed.CreatedBy,
		AssignedTo:  seed.AssignedTo,
		CreatedAt:   seed.CreatedAt,
		LastUpdated: seed.CreatedAt.Add(seed.Age),
	}
	if seed.Status == domain.StatusResolved {
		resolvedAt := seed.CreatedAt.Add(seed.Age)
		ticket.ResolvedAt = &resolvedAt
	}

	created, err := repo.Create(context.Background(), ticket)
	require.NoError(t, err)
	return created
}

func seedComment(t *testing.T, ticketID int64, authorID uuid.UUID) *domain.Comment {
	t.Helper()
	repo := NewCommentRepository(testPool)

	comment, err := repo.Create(context.Background(), &domain.Comment{
		TicketID:  ticketID,
		Content:   "seeded comment",
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return comment
}
