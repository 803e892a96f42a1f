// Package errors provides domain-specific error types and sentinel errors
// for the LINE adapter. Verification and decode failures are terminal for
// a webhook request; everything else is local to one message or reply.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrInvalidSignature indicates the x-line-signature header did not
	// match the HMAC of the request body. The request must be rejected
	// with 403 before any event decoding.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrRateLimitExceeded indicates the reply rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// DecodeError indicates a malformed webhook envelope. The HTTP layer maps
// it to 400 and no events from the request are processed.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode webhook envelope: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// NewDecodeError wraps a JSON parsing failure.
func NewDecodeError(cause error) *DecodeError {
	return &DecodeError{Cause: cause}
}

// ValidationError represents a bad or missing field when constructing an
// outbound message or action. It fails only the specific construction call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// BuilderStateError indicates a template builder stage was called out of
// order, called twice, or would exceed a platform limit.
type BuilderStateError struct {
	State   string // builder state when the call was made
	Op      string // offending operation, e.g. "buttons", "action", "build"
	Message string
}

func (e *BuilderStateError) Error() string {
	return fmt.Sprintf("template builder: %s in state %s: %s", e.Op, e.State, e.Message)
}

// NewBuilderStateError creates a new builder state error.
func NewBuilderStateError(state, op, message string) *BuilderStateError {
	return &BuilderStateError{
		State:   state,
		Op:      op,
		Message: message,
	}
}

// BatchSizeError indicates a reply batch outside the 1..5 range allowed by
// the platform. Violations are rejected, never silently truncated.
type BatchSizeError struct {
	Count int
}

func (e *BatchSizeError) Error() string {
	return fmt.Sprintf("reply batch size %d outside allowed range 1..5", e.Count)
}

// NewBatchSizeError creates a new batch size error.
func NewBatchSizeError(count int) *BatchSizeError {
	return &BatchSizeError{Count: count}
}

// DeliveryError indicates the outbound reply call failed. It is surfaced to
// the caller without retry; the whole batch either was sent or was not.
type DeliveryError struct {
	StatusCode int    // HTTP status from the platform, 0 on transport failure
	Body       string // response body excerpt, empty on transport failure
	Cause      error  // transport error, nil on HTTP-level failure
}

func (e *DeliveryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("reply delivery failed: %v", e.Cause)
	}
	return fmt.Sprintf("reply delivery failed (status=%d): %s", e.StatusCode, e.Body)
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
}

// NewDeliveryError creates a delivery error for an HTTP-level failure.
func NewDeliveryError(statusCode int, body string) *DeliveryError {
	return &DeliveryError{
		StatusCode: statusCode,
		Body:       body,
	}
}

// WrapDeliveryError creates a delivery error for a transport failure.
func WrapDeliveryError(cause error) *DeliveryError {
	return &DeliveryError{Cause: cause}
}
