package domain

// EventType defines the type of real-time event.
type EventType string

const (
	EventTicketVoted  EventType = "TICKET_VOTED"
	EventCommentVoted EventType = "COMMENT_VOTED"
)

// Event is the payload sent over WebSocket.
type Event struct {
	Type     EventType   `json:"type"`
	Payload  interface{} `json:"payload"`
	TicketID int64       `json:"ticketId"` // Used for routing to specific ticket "rooms"
}
