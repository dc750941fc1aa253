package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrForbiddenTransition is the sentinel error for transitions requested
	// by a role that is not among the allowed initiators for the edge.
	ErrForbiddenTransition = errors.New("forbidden transition")

	// ErrInvalidState is the sentinel error for transitions whose source
	// state does not match the order's current state.
	ErrInvalidState = errors.New("invalid state")

	// ErrValidation is the sentinel error for transitions with missing or
	// out-of-range payload fields.
	ErrValidation = errors.New("validation error")

	// ErrConcurrencyConflict is the sentinel error for writes that lost the
	// optimistic concurrency race on an order.
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	// ErrChannelFailure is the sentinel error for notification delivery
	// failures. It is never surfaced as a transition error; callers record
	// it in delivery-status flags only.
	ErrChannelFailure = errors.New("channel failure")
)

// ForbiddenTransitionError indicates that the acting role may not initiate
// the requested edge.
type ForbiddenTransitionError struct {
	Edge  string
	Role  string
	Cause error
}

// NewForbiddenTransitionError creates a ForbiddenTransitionError for the given edge and role.
func NewForbiddenTransitionError(edge, role string) *ForbiddenTransitionError {
	return &ForbiddenTransitionError{Edge: edge, Role: role}
}

func (e *ForbiddenTransitionError) Error() string {
	msg := fmt.Sprintf("%s: role %s may not perform %s", ErrForbiddenTransition, e.Role, e.Edge)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ForbiddenTransitionError) Unwrap() error {
	return ErrForbiddenTransition
}

// InvalidStateError indicates that the order is not in a valid source state
// for the requested edge.
type InvalidStateError struct {
	Edge    string
	Current string
	Cause   error
}

// NewInvalidStateError creates an InvalidStateError for the given edge and current state.
func NewInvalidStateError(edge, current string) *InvalidStateError {
	return &InvalidStateError{Edge: edge, Current: current}
}

func (e *InvalidStateError) Error() string {
	msg := fmt.Sprintf("%s: %s is not allowed from %s", ErrInvalidState, e.Edge, e.Current)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ValidationError indicates that the transition payload is incomplete or
// out of range. Fields names every offending field so callers can re-prompt
// for exactly what is missing.
type ValidationError struct {
	Fields []string
	Cause  error
}

// NewValidationError creates a ValidationError naming the offending fields.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NewValidationErrorWithCause creates a ValidationError naming the offending
// fields and wrapping an underlying cause.
func NewValidationErrorWithCause(cause error, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Cause: cause}
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Fields, ", "))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ConcurrencyConflictError indicates that the order was mutated by another
// actor between the caller's read and write.
type ConcurrencyConflictError struct {
	ParamName string
	ID        string
	Cause     error
}

// NewConcurrencyConflictError creates a ConcurrencyConflictError for the given object.
func NewConcurrencyConflictError(paramName, id string) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ParamName: paramName, ID: id}
}

func (e *ConcurrencyConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s was modified by another actor", ErrConcurrencyConflict, e.ParamName, e.ID)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

// ChannelFailureError records a delivery failure on a single notification
// channel. Non-fatal: the owning transition has already committed.
type ChannelFailureError struct {
	Channel string
	Cause   error
}

// NewChannelFailureError creates a ChannelFailureError for the named channel.
func NewChannelFailureError(channel string, cause error) *ChannelFailureError {
	return &ChannelFailureError{Channel: channel, Cause: cause}
}

func (e *ChannelFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrChannelFailure, e.Channel, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrChannelFailure, e.Channel)
}

func (e *ChannelFailureError) Unwrap() error {
	return ErrChannelFailure
}
