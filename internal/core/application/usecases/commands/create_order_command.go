package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("order must contain at least one item")
)

// CreateOrderCommand represents a request to place a new order.
// Carries the parties, the order lines, the pickup and drop locations,
// and the pricing inputs used to quote the delivery fee.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	customerID       kernel.UUID
	vendorID         kernel.UUID
	routeID          kernel.UUID
	items            []order.Item
	vendorLocation   kernel.GeoPoint
	customerLocation kernel.GeoPoint
	etaMinutes       float64
	surgeFlags       services.SurgeFlags

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identifiers, locations, and that every order line came from
// the item constructor.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	vendorID kernel.UUID,
	routeID kernel.UUID,
	items []order.Item,
	vendorLocation kernel.GeoPoint,
	customerLocation kernel.GeoPoint,
	etaMinutes float64,
	surgeFlags services.SurgeFlags,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setVendorID(vendorID),
		cmd.setRouteID(routeID),
		cmd.setItems(items),
		cmd.setVendorLocation(vendorLocation),
		cmd.setCustomerLocation(customerLocation),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.etaMinutes = etaMinutes
	cmd.surgeFlags = surgeFlags

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// VendorID returns the vendor's identifier.
func (c CreateOrderCommand) VendorID() kernel.UUID {
	return c.vendorID
}

// RouteID returns the delivery route identifier.
func (c CreateOrderCommand) RouteID() kernel.UUID {
	return c.routeID
}

// Items returns the order lines.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// VendorLocation returns the pickup point.
func (c CreateOrderCommand) VendorLocation() kernel.GeoPoint {
	return c.vendorLocation
}

// CustomerLocation returns the drop point.
func (c CreateOrderCommand) CustomerLocation() kernel.GeoPoint {
	return c.customerLocation
}

// ETAMinutes returns the estimated transit time used for fare quoting.
func (c CreateOrderCommand) ETAMinutes() float64 {
	return c.etaMinutes
}

// SurgeFlags returns the surge conditions in effect at ordering time.
func (c CreateOrderCommand) SurgeFlags() services.SurgeFlags {
	return c.surgeFlags
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}

	c.vendorID = vendorID
	return nil
}

func (c *CreateOrderCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	c.routeID = routeID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setVendorLocation(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	c.vendorLocation = point
	return nil
}

func (c *CreateOrderCommand) setCustomerLocation(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	c.customerLocation = point
	return nil
}
