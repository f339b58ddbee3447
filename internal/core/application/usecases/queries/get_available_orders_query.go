// Package queries contains read operations in the CQRS architecture.
// Query handlers read the database directly and return plain response
// structures; they never load or mutate domain aggregates.
package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery retrieves the claimable pool: orders with no
// courier assigned, in a status a courier may still take.
type GetAvailableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a query for the claimable pool.
func NewGetAvailableOrdersQuery() GetAvailableOrdersQuery {
	return GetAvailableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

// AvailableOrderResponse represents one claimable order. Responses are
// served to clients as-is, so identifiers are plain strings.
type AvailableOrderResponse struct {
	ID          string `json:"id"`
	VendorID    string `json:"vendorId"`
	Status      string `json:"status"`
	TotalAmount int    `json:"totalAmount"`
	DeliveryFee int    `json:"deliveryFee"`
}
