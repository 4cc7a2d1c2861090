package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// CompletionErrorMessage describes language model provider failures.
	CompletionErrorMessage = "completion provider failed"
	// StoreErrorMessage describes conversation state store failures.
	StoreErrorMessage = "conversation store failed"
	// RoundLimitMessage describes a turn aborted after too many tool rounds.
	RoundLimitMessage = "turn aborted: round limit exceeded"
)

// ErrRoundLimit is returned when a turn exceeds the configured maximum number
// of completion rounds without producing a final answer.
var ErrRoundLimit = errors.New("round limit exceeded")

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// WrapCompletion wraps a completion provider error. The whole turn fails and
// the caller may safely retry, so a gateway-style status is used.
func WrapCompletion(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, CompletionErrorMessage)
}

// WrapStore wraps a state store error with a consistent status and message.
func WrapStore(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusServiceUnavailable, StoreErrorMessage)
}

// WrapRoundLimit marks a turn aborted by the round bound.
func WrapRoundLimit() error {
	return New(ErrRoundLimit, http.StatusServiceUnavailable, RoundLimitMessage)
}

// Status extracts the HTTP status for an error, defaulting to 500.
func Status(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// SafeMessage extracts the user-facing message for an error.
func SafeMessage(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return SystemErrorMessage
}
