package errorutil

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
)

// Error codes callers branch on. These cross the service boundary as typed
// results, never as uncontrolled panics.
const (
	CodeValidationFailed      = "VALIDATION_FAILED"
	CodeTicketNotPending      = "TICKET_NOT_PENDING"
	CodeNoTechnicianAvailable = "NO_TECHNICIAN_AVAILABLE"
	CodeIllegalTransition     = "ILLEGAL_TRANSITION"
	CodeObservationsRequired  = "OBSERVATIONS_REQUIRED"
	CodeEvidenceRequired      = "EVIDENCE_REQUIRED"
	CodeNotFound              = "NOT_FOUND"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeForbidden             = "FORBIDDEN"
	CodeConflict              = "CONFLICT"
	CodeInternal              = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

// NewTicketNotPending marks a lost assignment race or a stale caller view.
func NewTicketNotPending(ticketID int64) error {
	return NewDomainError(CodeTicketNotPending, "ticket no longer available, please refresh",
		http.StatusConflict, map[string]any{"ticket_id": ticketID})
}

// NewNoTechnicianAvailable marks capacity exhaustion. Not retried internally;
// the caller decides whether to requeue.
func NewNoTechnicianAvailable() error {
	return NewDomainError(CodeNoTechnicianAvailable, "no technician available",
		http.StatusConflict, nil)
}

func NewIllegalTransition(current, requested string) error {
	return NewDomainError(CodeIllegalTransition, "illegal state transition",
		http.StatusConflict, map[string]any{"current_state": current, "requested_state": requested})
}

func NewObservationsRequired() error {
	return NewDomainError(CodeObservationsRequired, "observations text is required",
		http.StatusBadRequest, nil)
}

func NewEvidenceRequired(transition string) error {
	return NewDomainError(CodeEvidenceRequired, "evidence images required for this transition",
		http.StatusBadRequest, map[string]any{"transition": transition})
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}

// HasCode reports whether err carries the given domain error code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
