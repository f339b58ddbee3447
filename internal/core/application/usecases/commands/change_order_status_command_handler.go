package commands

import (
	"context"
	"time"

	"go.uber.org/zap"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies guarded lifecycle transitions.
// A courier confirming an unassigned order is a claim, not a plain
// transition; those requests are routed to the claim handler so the
// atomic claim path stays the single writer of courier assignment.
//
// Non-claim transitions persist through a compare-and-swap on the
// order's prior status: if a concurrent request moved the order first,
// the write affects no rows and the caller gets ports.ErrOrderModified.
type ChangeOrderStatusCommandHandler struct {
	uowFactory   OrderUoWFactory
	transition   services.OrderTransition
	claimHandler ClaimOrderCommandHandler
	notifier     OrderNotifier
	bus          ports.EventBus
	logger       *zap.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	transition services.OrderTransition,
	claimHandler ClaimOrderCommandHandler,
	notifier OrderNotifier,
	bus ports.EventBus,
	logger *zap.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory:   uowFactory,
		transition:   transition,
		claimHandler: claimHandler,
		notifier:     notifier,
		bus:          bus,
		logger:       logger,
	}
}

// Handle processes the status change command.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if h.transition.IsClaim(aggregate, cmd.Actor(), cmd.Target()) {
		// The claim handler runs its own transaction against the
		// conditional update; this read-only one is released first.
		if err = uow.Rollback(ctx); err != nil {
			return err
		}

		claimCmd, err := NewClaimOrderCommand(cmd.OrderID(), cmd.Actor().ID, nil)
		if err != nil {
			return err
		}
		return h.claimHandler.Handle(ctx, claimCmd)
	}

	priorStatus := aggregate.Status()
	priorVendorConfirmed := aggregate.VendorConfirmed()

	if err = h.transition.Apply(aggregate, cmd.Actor(), cmd.Target(), time.Now()); err != nil {
		return err
	}

	// Idempotent no-op transitions (vendor reconfirm) change nothing
	// and need no write. A vendor confirming an already claimed order
	// keeps its status but still flips vendorConfirmed, which must land.
	if aggregate.Status() == priorStatus &&
		aggregate.VendorConfirmed() == priorVendorConfirmed &&
		cmd.Target() == priorStatus {
		return uow.Commit(ctx)
	}

	if err = uow.OrderRepository().UpdateInStatus(ctx, aggregate, priorStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishAfterCommit(ctx, aggregate)

	return nil
}

// publishAfterCommit fans out the change over push and the realtime
// bus. Failures here are logged, never returned.
func (h *ChangeOrderStatusCommandHandler) publishAfterCommit(ctx context.Context, aggregate *order.Order) {
	payload := orderEventPayload(aggregate)

	if aggregate.Status() == order.Cancelled {
		h.notifier.NotifyOrderCancelled(ctx, aggregate)

		// Couriers watching the available pool need the removal too.
		if err := h.bus.Publish(ctx, couriersScope, eventOrderCancelled, payload); err != nil {
			h.logger.Warn("publish order cancelled event",
				zap.String("orderId", aggregate.ID().String()),
				zap.Error(err),
			)
		}
	} else {
		h.notifier.NotifyStatusChanged(ctx, aggregate)
	}

	if err := h.bus.Publish(ctx, orderScope(aggregate), eventOrderUpdate, payload); err != nil {
		h.logger.Warn("publish order update event",
			zap.String("orderId", aggregate.ID().String()),
			zap.Error(err),
		)
	}
}
