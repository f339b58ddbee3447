package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents a courier's attempt to take an
// unassigned order. Many couriers may race on the same order; at most
// one of these commands succeeds.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	courierID       kernel.UUID
	courierLocation *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a claim command for the given courier.
// courierLocation is the courier's position at claim time and may be nil
// when the client did not report one.
func NewClaimOrderCommand(
	orderID kernel.UUID,
	courierID kernel.UUID,
	courierLocation *kernel.GeoPoint,
) (ClaimOrderCommand, error) {
	cmd := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
		cmd.setCourierLocation(courierLocation),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the claiming courier's identifier.
func (c ClaimOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}

// CourierLocation returns the courier's reported position, or nil.
func (c ClaimOrderCommand) CourierLocation() *kernel.GeoPoint {
	return c.courierLocation
}

func (c *ClaimOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *ClaimOrderCommand) setCourierLocation(point *kernel.GeoPoint) error {
	if point == nil {
		return nil
	}
	if err := point.Validate(); err != nil {
		return err
	}

	c.courierLocation = point
	return nil
}
