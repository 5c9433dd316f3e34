package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	mw "github.com/solvexa/helpdesk-backend/internal/adapters/primary/http/middleware"
	"github.com/solvexa/helpdesk-backend/internal/adapters/primary/validation"
	"github.com/solvexa/helpdesk-backend/internal/auth"
	"github.com/solvexa/helpdesk-backend/internal/core/domain"
	apperrors "github.com/solvexa/helpdesk-backend/internal/core/errors"
	"github.com/solvexa/helpdesk-backend/internal/core/ports"
)

const defaultTopVotedLimit = 10

// VotingHandler handles HTTP requests for the voting subsystem
type VotingHandler struct {
	votingService ports.VotingService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewVotingHandler creates a new voting handler
func NewVotingHandler(votingService ports.VotingService, errorHandler *ErrorHandler, logger *slog.Logger) *VotingHandler {
	return &VotingHandler{
		votingService: votingService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "voting"),
	}
}

// Router sets up a new chi Router for all voting routes.
func (h *VotingHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all voting endpoints.
func (h *VotingHandler) RegisterRoutes(r chi.Router) {
	r.Post("/{subjectType}/{subjectID}/upvote", h.HandleUpvote)
	r.Post("/{subjectType}/{subjectID}/downvote", h.HandleDownvote)
	r.Get("/history", h.HandleVotingHistory)
	r.Get("/top", h.HandleMostUpvoted)
}

// --- Response DTOs ---

// VoteCountsDTO is the vote tally on a subject, including the caller's state.
type VoteCountsDTO struct {
	Upvotes   int64  `json:"upvotes"`
	Downvotes int64  `json:"downvotes"`
	UserVote  string `json:"userVote"`
}

// VotedTicketDTO is the ticket shape returned after a vote toggle.
type VotedTicketDTO struct {
	ID        int64         `json:"id"`
	Subject   string        `json:"subject"`
	Status    string        `json:"status"`
	Priority  string        `json:"priority"`
	CreatedAt string        `json:"createdAt"`
	Votes     VoteCountsDTO `json:"votes"`
}

// VotedCommentDTO is the comment shape returned after a vote toggle.
type VotedCommentDTO struct {
	ID        int64         `json:"id"`
	TicketID  int64         `json:"ticketId"`
	Content   string        `json:"content"`
	CreatedAt string        `json:"createdAt"`
	Votes     VoteCountsDTO `json:"votes"`
}

// VoteResultDTO wraps the updated subject after a toggle.
type VoteResultDTO struct {
	SubjectType string           `json:"subjectType"`
	Ticket      *VotedTicketDTO  `json:"ticket,omitempty"`
	Comment     *VotedCommentDTO `json:"comment,omitempty"`
}

// VotingHistoryDTO lists everything the caller has voted on.
type VotingHistoryDTO struct {
	Tickets  []VotedTicketDTO  `json:"tickets"`
	Comments []VotedCommentDTO `json:"comments"`
}

// VotedSubjectDTO is one ranked entry of the most-upvoted listing.
type VotedSubjectDTO struct {
	ID        int64  `json:"id"`
	Label     string `json:"label"`
	Upvotes   int64  `json:"upvotes"`
	Downvotes int64  `json:"downvotes"`
}

// MostUpvotedDTO ranks tickets and comments independently by upvote count.
type MostUpvotedDTO struct {
	Tickets  []VotedSubjectDTO `json:"tickets"`
	Comments []VotedSubjectDTO `json:"comments"`
}

func toVoteCountsDTO(sets domain.VoteSets, viewer *auth.Claims) VoteCountsDTO {
	state := domain.VoteNone
	if viewer != nil {
		state = sets.StateFor(viewer.UserID)
	}
	return VoteCountsDTO{
		Upvotes:   int64(len(sets.Upvotes)),
		Downvotes: int64(len(sets.Downvotes)),
		UserVote:  string(state),
	}
}

func toVotedTicketDTO(ticket *domain.Ticket, viewer *auth.Claims) VotedTicketDTO {
	return VotedTicketDTO{
		ID:        ticket.ID,
		Subject:   ticket.Subject,
		Status:    string(ticket.Status),
		Priority:  string(ticket.Priority),
		CreatedAt: ticket.CreatedAt.Format(time.RFC3339),
		Votes:     toVoteCountsDTO(domain.VoteSets{Upvotes: ticket.Upvotes, Downvotes: ticket.Downvotes}, viewer),
	}
}

func toVotedCommentDTO(comment *domain.Comment, viewer *auth.Claims) VotedCommentDTO {
	return VotedCommentDTO{
		ID:        comment.ID,
		TicketID:  comment.TicketID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
		Votes:     toVoteCountsDTO(domain.VoteSets{Upvotes: comment.Upvotes, Downvotes: comment.Downvotes}, viewer),
	}
}

func toVoteResultDTO(result *ports.VoteResult, viewer *auth.Claims) VoteResultDTO {
	dto := VoteResultDTO{SubjectType: string(result.SubjectType)}
	if result.Ticket != nil {
		ticket := toVotedTicketDTO(result.Ticket, viewer)
		dto.Ticket = &ticket
	}
	if result.Comment != nil {
		comment := toVotedCommentDTO(result.Comment, viewer)
		dto.Comment = &comment
	}
	return dto
}

func toVotedSubjectDTOs(subjects []domain.VotedSubject) []VotedSubjectDTO {
	result := make([]VotedSubjectDTO, 0, len(subjects))
	for _, s := range subjects {
		result = append(result, VotedSubjectDTO{
			ID:        s.ID,
			Label:     s.Label,
			Upvotes:   s.UpvoteCount,
			Downvotes: s.DownvoteCount,
		})
	}
	return result
}

// --- Handlers ---

// HandleUpvote handles POST /votes/{subjectType}/{subjectID}/upvote
func (h *VotingHandler) HandleUpvote(w http.ResponseWriter, r *http.Request) {
	h.handleToggle(w, r, h.votingService.Upvote)
}

// HandleDownvote handles POST /votes/{subjectType}/{subjectID}/downvote
func (h *VotingHandler) HandleDownvote(w http.ResponseWriter, r *http.Request) {
	h.handleToggle(w, r, h.votingService.Downvote)
}

func (h *VotingHandler) handleToggle(
	w http.ResponseWriter,
	r *http.Request,
	toggle func(ctx context.Context, params ports.VoteParams) (*ports.VoteResult, error),
) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	params, err := h.parseVoteParams(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	params.UserID = claims.UserID

	result, err := toggle(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("vote toggled",
		"subject_type", params.SubjectType,
		"subject_id", params.SubjectID,
		"user_id", claims.UserID,
	)

	WriteSuccess(w, toVoteResultDTO(result, claims))
}

// HandleVotingHistory handles GET /votes/history
func (h *VotingHandler) HandleVotingHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	history, err := h.votingService.VotingHistory(r.Context(), claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	tickets := make([]VotedTicketDTO, 0, len(history.Tickets))
	for _, ticket := range history.Tickets {
		tickets = append(tickets, toVotedTicketDTO(ticket, claims))
	}

	comments := make([]VotedCommentDTO, 0, len(history.Comments))
	for _, comment := range history.Comments {
		comments = append(comments, toVotedCommentDTO(comment, claims))
	}

	WriteSuccess(w, VotingHistoryDTO{Tickets: tickets, Comments: comments})
}

// HandleMostUpvoted handles GET /votes/top?limit=N
func (h *VotingHandler) HandleMostUpvoted(w http.ResponseWriter, r *http.Request) {
	limit := validation.ParseIntQueryParam(r, "limit", defaultTopVotedLimit)

	top, err := h.votingService.MostUpvoted(r.Context(), limit)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteSuccess(w, MostUpvotedDTO{
		Tickets:  toVotedSubjectDTOs(top.Tickets),
		Comments: toVotedSubjectDTOs(top.Comments),
	})
}

// parseVoteParams extracts the subject type and ID from the URL.
func (h *VotingHandler) parseVoteParams(r *http.Request) (ports.VoteParams, error) {
	subjectType := domain.VoteSubjectType(chi.URLParam(r, "subjectType"))
	if !subjectType.IsValid() {
		return ports.VoteParams{}, apperrors.ErrInvalidSubjectType
	}

	subjectID, err := strconv.ParseInt(chi.URLParam(r, "subjectID"), 10, 64)
	if err != nil || subjectID <= 0 {
		if err == nil {
			err = apperrors.ErrBadRequest
		}
		return ports.VoteParams{}, apperrors.NewBadRequestError(err, "Invalid subject ID")
	}

	return ports.VoteParams{
		SubjectType: subjectType,
		SubjectID:   subjectID,
	}, nil
}

// getClaims extracts and validates user claims from the request context.
func (h *VotingHandler) getClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := mw.GetClaims(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, apperrors.NewUnauthorizedError("Not authorized"))
		return nil, false
	}
	return claims, true
}
