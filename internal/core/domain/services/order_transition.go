package services

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrClaimRequired signals that the requested transition is a claim and
// must go through the dispatch coordinator's atomic conditional update
// instead of the plain transition path.
var ErrClaimRequired = errors.New("claim transitions are handled by the dispatch coordinator")

// Role identifies which kind of actor is requesting a transition.
type Role int

const (
	// RoleUnknown catches uninitialized Role values.
	RoleUnknown Role = iota
	// RoleVendor is the restaurant/shop preparing the order.
	RoleVendor
	// RoleCourier is a delivery courier.
	RoleCourier
	// RoleSystem is the platform itself; it may only force cancellation.
	RoleSystem
)

// getRoleStrings returns the map of Role values to wire names.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleVendor:  "vendor",
		RoleCourier: "courier",
		RoleSystem:  "system",
	}
}

// ParseRole converts a wire name ("vendor", "courier", "system") to a Role.
func ParseRole(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// String returns the wire name of the role. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the Role is one of the defined values.
func (r Role) Validate() error {
	if r != RoleVendor && r != RoleCourier && r != RoleSystem {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is the requester of a transition: a role plus the actor's
// identifier. System actors carry no identifier.
type Actor struct {
	Role Role
	ID   kernel.UUID
}

// NewActor creates a vendor or courier actor.
func NewActor(role Role, id kernel.UUID) (Actor, error) {
	if err := errors.Join(role.Validate(), id.Validate()); err != nil {
		return Actor{}, err
	}
	if role == RoleSystem {
		return Actor{}, errs.NewValueIsInvalidError("system actors carry no identifier, use SystemActor")
	}
	return Actor{Role: role, ID: id}, nil
}

// SystemActor returns the platform actor used for forced cancellations.
func SystemActor() Actor {
	return Actor{Role: RoleSystem}
}

// OrderTransition is the guarded state machine in front of the Order
// aggregate. It enforces the role rules of the dispatch core:
//
//  1. the order's vendor may confirm a pending order (idempotently)
//  2. a courier confirming an unassigned order is a claim, which is NOT
//     applied here: it must go through the dispatch coordinator's atomic
//     store update (see ErrClaimRequired and IsClaim)
//  3. preparing requires a committed courier
//  4. every other transition requires the order's vendor or its assigned
//     courier
//  5. the system role may force cancellation of any non-terminal order
//
// The guard set is exhaustive: a request matched by no rule is rejected
// with ErrInvalidTransition and the order is left untouched.
type OrderTransition struct{}

// NewOrderTransition creates an OrderTransition service.
func NewOrderTransition() OrderTransition {
	return OrderTransition{}
}

// IsClaim reports whether the request is the claim transition: a courier
// requesting Confirmed on an order that has no courier yet.
func (OrderTransition) IsClaim(o *order.Order, actor Actor, target order.Status) bool {
	return actor.Role == RoleCourier && target == order.Confirmed && o.Courier() == nil
}

// Apply validates and applies the requested transition to the aggregate.
// On any error the order is unchanged. Claims are refused with
// ErrClaimRequired; callers route them to the dispatch coordinator.
func (t OrderTransition) Apply(o *order.Order, actor Actor, target order.Status, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Role.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return order.NewInvalidTransitionError(o.Status(), target)
	}

	// Rule 1: vendor confirmation, idempotent.
	if actor.Role == RoleVendor && target == order.Confirmed {
		if !actor.ID.IsEqual(o.VendorID()) {
			return order.NewForbiddenError(actor.Role.String(), "only the order's vendor may confirm it")
		}
		return o.ConfirmByVendor(now)
	}

	// Rule 2: claim, resolved by the coordinator's conditional update.
	if t.IsClaim(o, actor, target) {
		return ErrClaimRequired
	}

	// Rule 5: forced cancellation by the platform.
	if actor.Role == RoleSystem {
		if target != order.Cancelled {
			return order.NewForbiddenError(actor.Role.String(), "system may only cancel orders")
		}
		return o.Cancel(now)
	}

	// Rule 4: everything else requires the order's vendor or its assigned
	// courier.
	isVendor := actor.Role == RoleVendor && actor.ID.IsEqual(o.VendorID())
	isAssignedCourier := actor.Role == RoleCourier &&
		o.Courier() != nil && actor.ID.IsEqual(*o.Courier())
	if !isVendor && !isAssignedCourier {
		return order.NewForbiddenError(actor.Role.String(), "actor is not a party to this order")
	}

	switch target {
	case order.Preparing:
		return o.StartPreparing(now)
	case order.Ready:
		return o.MarkReady(now)
	case order.Completed:
		return o.Complete(now)
	case order.Cancelled:
		return o.Cancel(now)
	default:
		return order.NewInvalidTransitionError(o.Status(), target)
	}
}
