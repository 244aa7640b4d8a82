package errors

import "fmt"

// ErrorCode represents a planq error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400: bad creation or mutation input
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404: no topic with that id
	ErrGenerationFailed ErrorCode = "GENERATION_FAILED" // 502: the generation service reported or caused a failure
	ErrCorruptState     ErrorCode = "CORRUPT_STATE"     // recoverable: persisted queue unreadable, started empty
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// PlanqError represents a structured error with code, status, and details.
type PlanqError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *PlanqError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid input.
func NewInvalidRequest(msg string) *PlanqError {
	return &PlanqError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a topic cannot be found.
func NewNotFound(id string) *PlanqError {
	return &PlanqError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("topic not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewGenerationFailed creates a 502 error for a failed generation exchange.
// The message is the service's reported error when one was available,
// otherwise a generic failure description.
func NewGenerationFailed(msg string) *PlanqError {
	if msg == "" {
		msg = "generation service did not return a draft"
	}
	return &PlanqError{
		Code:    ErrGenerationFailed,
		Status:  502,
		Message: msg,
	}
}

// NewCorruptState flags an unreadable persisted queue. Callers recover by
// starting from an empty collection; this is never fatal.
func NewCorruptState(cause error) *PlanqError {
	msg := "persisted queue unreadable"
	if cause != nil {
		msg = fmt.Sprintf("persisted queue unreadable: %v", cause)
	}
	return &PlanqError{
		Code:    ErrCorruptState,
		Status:  500,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *PlanqError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &PlanqError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a PlanqError with the given code.
func Is(err error, code ErrorCode) bool {
	if pErr, ok := err.(*PlanqError); ok {
		return pErr.Code == code
	}
	return false
}
