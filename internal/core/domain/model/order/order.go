package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// LocationSnapshot is a timestamped coordinate reported by one of the
// actors of an order. Each of the three snapshots (customer, vendor,
// courier) is optional until first populated and is timestamped
// independently of the order's updatedAt.
type LocationSnapshot struct {
	Point kernel.GeoPoint
	At    time.Time
}

// Order is the aggregate root of the dispatch core. It carries the
// lifecycle status, the exclusive courier assignment, the priced item
// lines, and the delivery fee produced by the fare engine at creation
// time.
//
// Invariants maintained by the aggregate:
//   - courier is non-nil whenever status is Preparing, Ready, or Completed
//   - status only moves along the edges of the lifecycle graph; the only
//     backward move is the claim of a Preparing order, which re-confirms it
//   - courier is set exactly once and never cleared
//   - totalAmount is computed from the item lines at construction and is
//     immutable afterwards
//   - every accepted transition refreshes updatedAt
//
// All mutations are all-or-nothing: a rejected transition leaves the
// aggregate untouched.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	vendorID   kernel.UUID
	routeID    kernel.UUID

	status          Status
	courierID       *kernel.UUID
	vendorConfirmed bool

	items       []Item
	totalAmount int
	deliveryFee int

	customerLocation *LocationSnapshot
	vendorLocation   *LocationSnapshot
	courierLocation  *LocationSnapshot

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a Pending order with no courier. The total amount is
// computed from the item lines; the delivery fee comes from the fare quote
// taken before creation and must not be negative.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	vendorID kernel.UUID,
	routeID kernel.UUID,
	items []Item,
	deliveryFee int,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setIDs(id, customerID, vendorID, routeID),
		o.setItems(items),
		o.setDeliveryFee(deliveryFee),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. Unlike NewOrder it
// accepts any valid status and courier assignment, but still verifies the
// status/courier consistency invariant.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	vendorID kernel.UUID,
	routeID kernel.UUID,
	status Status,
	courierID *kernel.UUID,
	vendorConfirmed bool,
	items []Item,
	deliveryFee int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		vendorConfirmed: vendorConfirmed,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setIDs(id, customerID, vendorID, routeID),
		o.setItems(items),
		o.setDeliveryFee(deliveryFee),
		status.Validate(),
		status.ValidateCanHaveCourier(courierID != nil),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		cID := *courierID
		o.courierID = &cID
	}

	o.status = status
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || o.guard.Validate(ErrOrderIsNotConstructed) != nil {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// VendorID returns the vendor's identifier.
func (o *Order) VendorID() kernel.UUID { return o.vendorID }

// RouteID returns the delivery route/session identifier.
func (o *Order) RouteID() kernel.UUID { return o.routeID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Courier returns the assigned courier's identifier, or nil when the order
// is unassigned.
func (o *Order) Courier() *kernel.UUID { return o.courierID }

// VendorConfirmed reports whether the vendor has confirmed the order.
func (o *Order) VendorConfirmed() bool { return o.vendorConfirmed }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the pre-computed immutable item total.
func (o *Order) TotalAmount() int { return o.totalAmount }

// DeliveryFee returns the fee fixed by the fare engine at creation time.
func (o *Order) DeliveryFee() int { return o.deliveryFee }

// CustomerLocation returns the customer's last reported location, or nil.
func (o *Order) CustomerLocation() *LocationSnapshot { return o.customerLocation }

// VendorLocation returns the vendor's last reported location, or nil.
func (o *Order) VendorLocation() *LocationSnapshot { return o.vendorLocation }

// CourierLocation returns the courier's last reported location, or nil.
func (o *Order) CourierLocation() *LocationSnapshot { return o.courierLocation }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the timestamp of the last accepted transition.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// ConfirmByVendor applies the vendor confirmation rule: it sets
// vendorConfirmed and, if the order is still Pending, advances it to
// Confirmed. Re-confirming an already confirmed order is a no-op success,
// not an error.
func (o *Order) ConfirmByVendor(now time.Time) error {
	if o.vendorConfirmed {
		return nil
	}
	if o.status.IsTerminal() {
		return NewInvalidTransitionError(o.status, Confirmed)
	}

	o.vendorConfirmed = true
	if o.status == Pending {
		o.status = Confirmed
	}
	o.touch(now)
	return nil
}

// AssignCourier applies the claim transition: it binds the courier and
// confirms the order. The order must be unassigned and in Pending,
// Confirmed, or Preparing status. This is the in-memory counterpart of the
// store-level conditional update; the store's single atomic UPDATE, not
// this method, is what resolves concurrent claims.
func (o *Order) AssignCourier(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID != nil {
		return ErrAlreadyClaimed
	}
	if o.status.IsTerminal() || o.status == Ready {
		return NewInvalidTransitionError(o.status, Confirmed)
	}

	o.courierID = &courierID
	o.status = Confirmed
	o.touch(now)
	return nil
}

// StartPreparing moves the order to Preparing. A courier must already be
// committed; food cannot start preparing before the delivery is secured.
func (o *Order) StartPreparing(now time.Time) error {
	if o.courierID == nil {
		return NewPreconditionFailedError("no courier assigned")
	}
	if !o.status.CanTransitionTo(Preparing) {
		return NewInvalidTransitionError(o.status, Preparing)
	}

	o.status = Preparing
	o.touch(now)
	return nil
}

// MarkReady moves the order to Ready for courier pickup.
func (o *Order) MarkReady(now time.Time) error {
	if !o.status.CanTransitionTo(Ready) {
		return NewInvalidTransitionError(o.status, Ready)
	}

	o.status = Ready
	o.touch(now)
	return nil
}

// Complete marks the order as delivered. Terminal.
func (o *Order) Complete(now time.Time) error {
	if !o.status.CanTransitionTo(Completed) {
		return NewInvalidTransitionError(o.status, Completed)
	}

	o.status = Completed
	o.touch(now)
	return nil
}

// Cancel moves the order to Cancelled from any non-terminal state.
func (o *Order) Cancel(now time.Time) error {
	if !o.status.CanTransitionTo(Cancelled) {
		return NewInvalidTransitionError(o.status, Cancelled)
	}

	o.status = Cancelled
	o.touch(now)
	return nil
}

// SetCustomerLocation records the customer's reported position. Location
// snapshots are timestamped independently and do not count as lifecycle
// transitions.
func (o *Order) SetCustomerLocation(point kernel.GeoPoint, at time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}
	o.customerLocation = &LocationSnapshot{Point: point, At: at}
	return nil
}

// SetVendorLocation records the vendor's reported position.
func (o *Order) SetVendorLocation(point kernel.GeoPoint, at time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}
	o.vendorLocation = &LocationSnapshot{Point: point, At: at}
	return nil
}

// SetCourierLocation records the courier's reported position.
func (o *Order) SetCourierLocation(point kernel.GeoPoint, at time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}
	o.courierLocation = &LocationSnapshot{Point: point, At: at}
	return nil
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now
}

func (o *Order) setIDs(id, customerID, vendorID, routeID kernel.UUID) error {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		vendorID.Validate(),
		routeID.Validate(),
	); err != nil {
		return err
	}

	o.id = id
	o.customerID = customerID
	o.vendorID = vendorID
	o.routeID = routeID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	total := 0
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		total += item.Subtotal()
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	o.totalAmount = total
	return nil
}

func (o *Order) setDeliveryFee(fee int) error {
	if fee < 0 {
		return errs.NewValueIsInvalidError("delivery fee")
	}
	o.deliveryFee = fee
	return nil
}
