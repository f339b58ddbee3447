package order

import (
	"errors"
	"fmt"
)

// Dispatch error taxonomy. Each kind maps to a stable outward status in the
// HTTP adapter; callers classify with errors.Is against the sentinels.
var (
	// ErrInvalidTransition is returned when the requested status is not
	// reachable from the current status by any rule.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrForbidden is returned when the requesting actor lacks permission
	// for the transition.
	ErrForbidden = errors.New("actor is not allowed to perform this transition")

	// ErrPreconditionFailed is returned when a structural precondition of
	// the transition does not hold, e.g. no courier assigned before
	// preparing.
	ErrPreconditionFailed = errors.New("transition precondition failed")

	// ErrAlreadyClaimed is returned to a courier that lost the claim race.
	// It is definitive, not retryable.
	ErrAlreadyClaimed = errors.New("order already taken by another courier")
)

// InvalidTransitionError carries the rejected edge for diagnostics.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the edge from -> to.
func NewInvalidTransitionError(from Status, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ForbiddenError carries the role that was rejected.
type ForbiddenError struct {
	Role   string
	Reason string
}

// NewForbiddenError creates a ForbiddenError for the given role and reason.
func NewForbiddenError(role string, reason string) *ForbiddenError {
	return &ForbiddenError{Role: role, Reason: reason}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrForbidden, e.Role, e.Reason)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// PreconditionFailedError names the precondition that did not hold.
type PreconditionFailedError struct {
	Reason string
}

// NewPreconditionFailedError creates a PreconditionFailedError with the given reason.
func NewPreconditionFailedError(reason string) *PreconditionFailedError {
	return &PreconditionFailedError{Reason: reason}
}

func (e *PreconditionFailedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPreconditionFailed, e.Reason)
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}
