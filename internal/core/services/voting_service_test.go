package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/solvexa/helpdesk-backend/internal/core/domain"
	apperrors "github.com/solvexa/helpdesk-backend/internal/core/errors"
	"github.com/solvexa/helpdesk-backend/internal/core/mocks"
	"github.com/solvexa/helpdesk-backend/internal/core/ports"
)

func newVotingFixture() (*mocks.MockVoteRepository, *mocks.MockEventBroadcaster, ports.VotingService) {
	voteRepo := new(mocks.MockVoteRepository)
	broadcaster := new(mocks.MockEventBroadcaster)
	svc := NewVotingService(voteRepo, broadcaster, slog.Default())
	return voteRepo, broadcaster, svc
}

func TestVotingService_Upvote_Ticket(t *testing.T) {
	voteRepo, broadcaster, svc := newVotingFixture()

	userID := uuid.New()
	updated := &domain.Ticket{ID: 42, Subject: "printer jam", Upvotes: []uuid.UUID{userID}}

	voteRepo.On("ToggleTicketVote", mock.Anything, int64(42), userID, domain.VoteUp).Return(updated, nil)
	broadcaster.On("Broadcast", mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventTicketVoted && e.TicketID == 42
	})).Return(nil)

	result, err := svc.Upvote(context.Background(), ports.VoteParams{
		SubjectType: domain.VoteSubjectTicket,
		SubjectID:   42,
		UserID:      userID,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.VoteSubjectTicket, result.SubjectType)
	assert.Equal(t, updated, result.Ticket)
	assert.Nil(t, result.Comment)
	voteRepo.AssertExpectations(t)
	broadcaster.AssertExpectations(t)
}

func TestVotingService_Downvote_Comment(t *testing.T) {
	voteRepo, broadcaster, svc := newVotingFixture()

	userID := uuid.New()
	updated := &domain.Comment{ID: 7, TicketID: 42, Downvotes: []uuid.UUID{userID}}

	voteRepo.On("ToggleCommentVote", mock.Anything, int64(7), userID, domain.VoteDown).Return(updated, nil)
	broadcaster.On("Broadcast", mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventCommentVoted && e.TicketID == 42
	})).Return(nil)

	result, err := svc.Downvote(context.Background(), ports.VoteParams{
		SubjectType: domain.VoteSubjectComment,
		SubjectID:   7,
		UserID:      userID,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.VoteSubjectComment, result.SubjectType)
	assert.Equal(t, updated, result.Comment)
	assert.Nil(t, result.Ticket)
	broadcaster.AssertExpectations(t)
}

func TestVotingService_InvalidSubjectType(t *testing.T) {
	voteRepo, broadcaster, svc := newVotingFixture()

	result, err := svc.Upvote(context.Background(), ports.VoteParams{
		SubjectType: "article",
		SubjectID:   1,
		UserID:      uuid.New(),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSubjectType)
	voteRepo.AssertNotCalled(t, "ToggleTicketVote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	broadcaster.AssertNotCalled(t, "Broadcast", mock.Anything)
}

func TestVotingService_SubjectNotFound(t *testing.T) {
	voteRepo, broadcaster, svc := newVotingFixture()

	voteRepo.On("ToggleTicketVote", mock.Anything, int64(999), mock.Anything, domain.VoteUp).
		Return(nil, apperrors.ErrTicketNotFound)

	result, err := svc.Upvote(context.Background(), ports.VoteParams{
		SubjectType: domain.VoteSubjectTicket,
		SubjectID:   999,
		UserID:      uuid.New(),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	broadcaster.AssertNotCalled(t, "Broadcast", mock.Anything)
}

func TestVotingService_BroadcastFailureDoesNotFailVote(t *testing.T) {
	voteRepo, broadcaster, svc := newVotingFixture()

	updated := &domain.Ticket{ID: 1}
	voteRepo.On("ToggleTicketVote", mock.Anything, int64(1), mock.Anything, domain.VoteUp).Return(updated, nil)
	broadcaster.On("Broadcast", mock.Anything).Return(assert.AnError)

	result, err := svc.Upvote(context.Background(), ports.VoteParams{
		SubjectType: domain.VoteSubjectTicket,
		SubjectID:   1,
		UserID:      uuid.New(),
	})

	require.NoError(t, err)
	assert.Equal(t, updated, result.Ticket)
}

func TestVotingService_NilBroadcaster(t *testing.T) {
	voteRepo := new(mocks.MockVoteRepository)
	svc := NewVotingService(voteRepo, nil, slog.Default())

	updated := &domain.Ticket{ID: 1}
	voteRepo.On("ToggleTicketVote", mock.Anything, int64(1), mock.Anything, domain.VoteUp).Return(updated, nil)

	result, err := svc.Upvote(context.Background(), ports.VoteParams{
		SubjectType: domain.VoteSubjectTicket,
		SubjectID:   1,
		UserID:      uuid.New(),
	})

	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestVotingService_VotingHistory(t *testing.T) {
	voteRepo, _, svc := newVotingFixture()

	userID := uuid.New()
	history := &domain.VotingHistory{
		Tickets:  []*domain.Ticket{{ID: 1, Upvotes: []uuid.UUID{userID}}},
		Comments: []*domain.Comment{},
	}
	voteRepo.On("VotingHistory", mock.Anything, userID).Return(history, nil)

	got, err := svc.VotingHistory(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, history, got)
}

func TestVotingService_MostUpvoted_DefaultLimit(t *testing.T) {
	voteRepo, _, svc := newVotingFixture()

	top := &domain.MostUpvoted{
		Tickets:  []domain.VotedSubject{{ID: 1, Label: "vpn down", UpvoteCount: 5}},
		Comments: []domain.VotedSubject{},
	}
	voteRepo.On("MostUpvoted", mock.Anything, 10).Return(top, nil)

	got, err := svc.MostUpvoted(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, top, got)
	voteRepo.AssertExpectations(t)
}
