package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/solvexa/helpdesk-backend/internal/core/domain"
	apperrors "github.com/solvexa/helpdesk-backend/internal/core/errors"
	"github.com/solvexa/helpdesk-backend/internal/core/ports"
)

// VotingService toggles votes on tickets and comments and fans the result
// out to websocket subscribers.
type VotingService struct {
	voteRepo    ports.VoteRepository
	broadcaster ports.EventBroadcaster
	logger      *slog.Logger
}

var _ ports.VotingService = (*VotingService)(nil)

// NewVotingService creates a new voting service. The broadcaster may be nil,
// in which case vote events are not published.
func NewVotingService(voteRepo ports.VoteRepository, broadcaster ports.EventBroadcaster, logger *slog.Logger) ports.VotingService {
	return &VotingService{
		voteRepo:    voteRepo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Upvote toggles the caller's upvote on the subject.
func (s *VotingService) Upvote(ctx context.Context, params ports.VoteParams) (*ports.VoteResult, error) {
	return s.toggle(ctx, params, domain.VoteUp)
}

// Downvote toggles the caller's downvote on the subject.
func (s *VotingService) Downvote(ctx context.Context, params ports.VoteParams) (*ports.VoteResult, error) {
	return s.toggle(ctx, params, domain.VoteDown)
}

func (s *VotingService) toggle(ctx context.Context, params ports.VoteParams, direction domain.VoteState) (*ports.VoteResult, error) {
	switch params.SubjectType {
	case domain.VoteSubjectTicket:
		ticket, err := s.voteRepo.ToggleTicketVote(ctx, params.SubjectID, params.UserID, direction)
		if err != nil {
			return nil, err
		}
		s.publish(domain.EventTicketVoted, ticket.ID, ticket)
		return &ports.VoteResult{SubjectType: domain.VoteSubjectTicket, Ticket: ticket}, nil

	case domain.VoteSubjectComment:
		comment, err := s.voteRepo.ToggleCommentVote(ctx, params.SubjectID, params.UserID, direction)
		if err != nil {
			return nil, err
		}
		s.publish(domain.EventCommentVoted, comment.TicketID, comment)
		return &ports.VoteResult{SubjectType: domain.VoteSubjectComment, Comment: comment}, nil

	default:
		return nil, apperrors.ErrInvalidSubjectType
	}
}

// VotingHistory lists every ticket and comment the user has voted on.
func (s *VotingService) VotingHistory(ctx context.Context, userID uuid.UUID) (*domain.VotingHistory, error) {
	return s.voteRepo.VotingHistory(ctx, userID)
}

// MostUpvoted returns the top-N tickets and comments ranked by upvote count.
func (s *VotingService) MostUpvoted(ctx context.Context, limit int) (*domain.MostUpvoted, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.voteRepo.MostUpvoted(ctx, limit)
}

func (s *VotingService) publish(eventType domain.EventType, ticketID int64, payload any) {
	if s.broadcaster == nil {
		return
	}
	event := domain.Event{
		Type:     eventType,
		Payload:  payload,
		TicketID: ticketID,
	}
	if err := s.broadcaster.Broadcast(event); err != nil && s.logger != nil {
		s.logger.Warn("failed to broadcast vote event",
			slog.String("event_type", string(eventType)),
			slog.Int64("ticket_id", ticketID),
			slog.String("error", err.Error()))
	}
}
