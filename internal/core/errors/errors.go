package errors

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations
var (
	// Not-found errors: the referenced record does not exist.
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")

	// Analytics query errors
	ErrInvalidRange = errors.New("end date must not be before start date")

	// Voting errors
	ErrInvalidSubjectType   = errors.New("vote subject must be a ticket or a comment")
	ErrInvalidVoteDirection = errors.New("vote direction must be up or down")

	// Ticket validation
	ErrSubjectRequired = errors.New("subject is required")
	ErrInvalidPriority = errors.New("invalid ticket priority")
	ErrInvalidStatus   = errors.New("invalid ticket status")
	ErrCreatorRequired = errors.New("creator ID is required")

	// Comment validation
	ErrCommentContentRequired = errors.New("comment content is required")
	ErrTicketIDRequired       = errors.New("ticket ID is required")
	ErrAuthorRequired         = errors.New("author ID is required")

	// User validation
	ErrPasswordTooWeak    = errors.New("password does not meet security requirements")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Infrastructure
	ErrStorage = errors.New("storage operation failed")

	// Generic
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("action forbidden")
	ErrInternal     = errors.New("internal server error")
	ErrBadRequest   = errors.New("bad request")
	ErrRateLimited  = errors.New("rate limit exceeded")
)

// WrapStorage marks an error as an infrastructure failure so callers can
// distinguish it from "no matching records", which is never an error here.
func WrapStorage(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

// IsStorage reports whether err originates from the storage layer.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}

// AppError wraps errors with additional context for HTTP responses
type AppError struct {
	Err        error  // The underlying error
	Message    string // User-friendly message
	Code       string // Machine-readable error code
	StatusCode int    // HTTP status code
	Details    map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors for common cases
func NewBadRequestError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "BAD_REQUEST",
		StatusCode: 400,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Err:        ErrUnauthorized,
		Message:    message,
		Code:       "UNAUTHORIZED",
		StatusCode: 401,
	}
}

// ValidationErrors holds multiple field validation errors
type ValidationErrors struct {
	Errors map[string][]string `json:"errors"`
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make(map[string][]string),
	}
}

func (v *ValidationErrors) Add(field, message string) {
	v.Errors[field] = append(v.Errors[field], message)
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

func (v *ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %d field(s) have errors", len(v.Errors))
}
