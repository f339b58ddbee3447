package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its lines.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	q := GetOrderQuery{guard: guard.NewConstructorGuard()}

	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	q.orderID = orderID

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemResponse represents one order line.
type OrderItemResponse struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unitPrice"`
}

// GetOrderQueryResponse represents a full order view.
type GetOrderQueryResponse struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customerId"`
	VendorID        string              `json:"vendorId"`
	RouteID         string              `json:"routeId"`
	CourierID       string              `json:"courierId,omitempty"`
	Status          string              `json:"status"`
	VendorConfirmed bool                `json:"vendorConfirmed"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     int                 `json:"totalAmount"`
	DeliveryFee     int                 `json:"deliveryFee"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}
