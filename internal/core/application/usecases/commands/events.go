package commands

import "dispatch/internal/core/domain/model/order"

// Realtime bus scopes and event names shared by the command handlers.
// The couriers scope is the fleet-wide broadcast channel; per-order
// events go to a scope named after the order id.
const (
	couriersScope = "couriers"

	eventOrderAvailable = "orderAvailable"
	eventOrderClaimed   = "orderClaimed"
	eventOrderUpdate    = "orderUpdate"
	eventOrderCancelled = "orderCancelled"
)

// orderEvent is the wire body of every order event on the realtime bus.
type orderEvent struct {
	OrderID     string `json:"orderId"`
	Status      string `json:"status"`
	VendorID    string `json:"vendorId"`
	CourierID   string `json:"courierId,omitempty"`
	DeliveryFee int    `json:"deliveryFee"`
}

// orderEventPayload builds the bus payload for an order aggregate.
func orderEventPayload(o *order.Order) orderEvent {
	event := orderEvent{
		OrderID:     o.ID().String(),
		Status:      o.Status().String(),
		VendorID:    o.VendorID().String(),
		DeliveryFee: o.DeliveryFee(),
	}
	if courierID := o.Courier(); courierID != nil {
		event.CourierID = courierID.String()
	}
	return event
}

// orderScope returns the per-order bus scope used for lifecycle updates.
func orderScope(o *order.Order) string {
	return "order:" + o.ID().String()
}
