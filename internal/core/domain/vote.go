package domain

import "github.com/google/uuid"

// VoteSubjectType identifies what kind of record a vote targets.
type VoteSubjectType string

const (
	VoteSubjectTicket  VoteSubjectType = "ticket"
	VoteSubjectComment VoteSubjectType = "comment"
)

// IsValid reports whether the subject type is votable.
func (t VoteSubjectType) IsValid() bool {
	return t == VoteSubjectTicket || t == VoteSubjectComment
}

func (t VoteSubjectType) String() string { return string(t) }

// VoteState is a user's position on a subject.
type VoteState string

const (
	VoteNone VoteState = "none"
	VoteUp   VoteState = "up"
	VoteDown VoteState = "down"
)

// VoteSets holds the two mutually-exclusive vote memberships of a subject.
// The transition methods express the toggle state machine; the storage layer
// applies the same transitions as a single atomic update.
type VoteSets struct {
	Upvotes   []uuid.UUID
	Downvotes []uuid.UUID
}

// StateFor returns the user's current vote state on the subject.
func (v VoteSets) StateFor(userID uuid.UUID) VoteState {
	if containsUser(v.Upvotes, userID) {
		return VoteUp
	}
	if containsUser(v.Downvotes, userID) {
		return VoteDown
	}
	return VoteNone
}

// ToggleUp applies an upvote: no-vote becomes upvoted, an existing upvote is
// withdrawn, and a downvote switches to an upvote. The user never appears in
// both sets.
func (v VoteSets) ToggleUp(userID uuid.UUID) VoteSets {
	if containsUser(v.Upvotes, userID) {
		return VoteSets{
			Upvotes:   removeUser(v.Upvotes, userID),
			Downvotes: v.Downvotes,
		}
	}
	return VoteSets{
		Upvotes:   append(copyUsers(v.Upvotes), userID),
		Downvotes: removeUser(v.Downvotes, userID),
	}
}

// ToggleDown is the symmetric transition for downvotes.
func (v VoteSets) ToggleDown(userID uuid.UUID) VoteSets {
	if containsUser(v.Downvotes, userID) {
		return VoteSets{
			Upvotes:   v.Upvotes,
			Downvotes: removeUser(v.Downvotes, userID),
		}
	}
	return VoteSets{
		Upvotes:   removeUser(v.Upvotes, userID),
		Downvotes: append(copyUsers(v.Downvotes), userID),
	}
}

func containsUser(set []uuid.UUID, userID uuid.UUID) bool {
	for _, id := range set {
		if id == userID {
			return true
		}
	}
	return false
}

func removeUser(set []uuid.UUID, userID uuid.UUID) []uuid.UUID {
	result := make([]uuid.UUID, 0, len(set))
	for _, id := range set {
		if id != userID {
			result = append(result, id)
		}
	}
	return result
}

func copyUsers(set []uuid.UUID) []uuid.UUID {
	return append([]uuid.UUID(nil), set...)
}

// VotedSubject is one ranked entry of a most-upvoted listing.
type VotedSubject struct {
	ID            int64
	Label         string
	UpvoteCount   int64
	DownvoteCount int64
}

// VotingHistory collects everything a user has voted on.
type VotingHistory struct {
	Tickets  []*Ticket
	Comments []*Comment
}

// MostUpvoted ranks tickets and comments independently by upvote count.
type MostUpvoted struct {
	Tickets  []VotedSubject
	Comments []VotedSubject
}
