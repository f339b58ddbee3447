// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, persistence, and then fire-and-forget fan-out.
package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure data consistency across aggregate
// boundaries.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// AlertRepoFactory provides access to the alert repository within a transaction.
	AlertRepoFactory interface {
		AlertRepository() ports.AlertRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderCourierUoW manages transactions spanning order and courier
	// aggregates. Used by claim and fare-bearing order creation.
	OrderCourierUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
	}

	// OrderCourierUoWFactory creates new OrderCourierUoW instances.
	OrderCourierUoWFactory interface {
		Create() OrderCourierUoW
	}

	// AlertUoW manages transactions for alert-only operations.
	AlertUoW interface {
		TxManager
		AlertRepoFactory
	}

	// AlertUoWFactory creates new alert unit of work instances.
	AlertUoWFactory interface {
		Create() AlertUoW
	}
)

// OrderNotifier fans out order lifecycle notifications over the push
// channels and persists an alert record. Implementations run the
// delivery asynchronously; these calls never block on network sends
// and never fail the business flow.
type OrderNotifier interface {
	// NotifyStatusChanged informs the order's parties that its status moved.
	NotifyStatusChanged(ctx context.Context, o *order.Order)

	// NotifyOrderAvailable broadcasts a newly claimable order to couriers.
	NotifyOrderAvailable(ctx context.Context, o *order.Order)

	// NotifyOrderClaimed informs the parties that a courier took the order.
	NotifyOrderClaimed(ctx context.Context, o *order.Order)

	// NotifyOrderCancelled informs the parties that the order was cancelled.
	NotifyOrderCancelled(ctx context.Context, o *order.Order)
}
