package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> Ready ──> Completed
//	    │            │             │           │
//	    └────────────┴─────────────┴───────────┴──> Cancelled
//
// Cancelled is reachable from every non-terminal state; Completed and
// Cancelled are terminal. Status is a value object that validates
// transitions and provides string representations for persistence and
// display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly created order. The order
	// is waiting for the vendor to confirm it or a courier to claim it.
	Pending

	// Confirmed indicates that the vendor accepted the order, a courier
	// claimed it, or both.
	Confirmed

	// Preparing indicates the vendor started preparing the order.
	// An order can only be preparing once a courier is committed.
	Preparing

	// Ready indicates the order is ready for courier pickup.
	Ready

	// Completed indicates the order was delivered. Terminal.
	Completed

	// Cancelled indicates the order was cancelled by an actor or by the
	// system. Terminal.
	Cancelled
)

// getStatusStrings returns the map of Status values to their wire names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Ready:     "ready",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns only valid Status values, for validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Ready:     "ready",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// allowedEdges is the directed graph of lifecycle transitions. A requested
// move that is not an edge here is rejected regardless of the actor.
func allowedEdges() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Confirmed, Cancelled},
		Confirmed: {Preparing, Cancelled},
		Preparing: {Ready, Cancelled},
		Ready:     {Completed, Cancelled},
		Completed: {},
		Cancelled: {},
	}
}

// ParseStatus converts a wire name ("pending", "ready", ...) into a Status.
// Returns an error for unknown names.
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "unknown" for invalid
// values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions exist from s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether s -> target is an edge of the lifecycle
// graph. It answers reachability only; actor permissions and structural
// preconditions are enforced by the transition service and the aggregate.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range allowedEdges()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// RequiresCourier reports whether an order in this status must have a
// courier assigned.
func (s Status) RequiresCourier() bool {
	return s == Preparing || s == Ready || s == Completed
}

// ValidateCanHaveCourier validates the consistency between status and
// courier assignment: Preparing, Ready, and Completed orders must have a
// courier; Pending orders must not. Confirmed and Cancelled orders may
// carry one either way.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if !courier && s.RequiresCourier() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no courier", s.String()),
		)
	}

	if courier && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a courier", s.String()),
		)
	}

	return nil
}
