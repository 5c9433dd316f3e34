package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/solvexa/helpdesk-backend/internal/core/errors"
)

// TicketStatus represents the lifecycle state of a ticket.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

// TicketStatuses lists all valid statuses in lifecycle order.
var TicketStatuses = []TicketStatus{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

// IsValid reports whether the status is one of the known lifecycle states.
func (s TicketStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

func (s TicketStatus) String() string { return string(s) }

// TicketPriority represents the urgency of a ticket.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

// TicketPriorities lists all priorities in ascending urgency. Distribution
// reports preserve this ordering.
var TicketPriorities = []TicketPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// IsValid reports whether the priority is one of the known levels.
func (p TicketPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func (p TicketPriority) String() string { return string(p) }

// Ticket is the core read model for a support request. The analytics core
// never mutates tickets apart from flipping vote-set membership.
type Ticket struct {
	ID          int64
	Subject     string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	CategoryID  int64
	CreatedBy   uuid.UUID
	AssignedTo  *uuid.UUID
	CreatedAt   time.Time
	LastUpdated time.Time
	ResolvedAt  *time.Time
	Upvotes     []uuid.UUID
	Downvotes   []uuid.UUID
}

// TicketParams holds the input for creating a new ticket.
type TicketParams struct {
	Subject     string
	Description string
	Priority    TicketPriority
	CategoryID  int64
	CreatedBy   uuid.UUID
}

// NewTicket is a factory that validates and builds a new ticket in the open
// state. Used by the seeder and tests; the CRUD write path lives outside
// this core.
func NewTicket(params TicketParams) (*Ticket, error) {
	if params.Subject == "" {
		return nil, apperrors.ErrSubjectRequired
	}
	if !params.Priority.IsValid() {
		return nil, apperrors.ErrInvalidPriority
	}
	if params.CreatedBy == uuid.Nil {
		return nil, apperrors.ErrCreatorRequired
	}

	now := time.Now().UTC()
	return &Ticket{
		Subject:     params.Subject,
		Description: params.Description,
		Status:      StatusOpen,
		Priority:    params.Priority,
		CategoryID:  params.CategoryID,
		CreatedBy:   params.CreatedBy,
		CreatedAt:   now,
		LastUpdated: now,
	}, nil
}

// IsResolved reports whether the ticket reached the resolved state and
// carries a resolution timestamp. Both must hold for resolution metrics.
func (t *Ticket) IsResolved() bool {
	return t.Status == StatusResolved && t.ResolvedAt != nil
}
