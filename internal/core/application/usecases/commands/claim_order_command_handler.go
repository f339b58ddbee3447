package commands

import (
	"context"

	"go.uber.org/zap"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// ClaimOrderCommandHandler is the dispatch coordinator's write path.
// All concurrency control lives in the repository's conditional update:
// the courier is assigned only if the stored row still has no courier
// and is in a claimable status. Losers of the race get
// order.ErrAlreadyClaimed; there are no in-process locks to hold.
type ClaimOrderCommandHandler struct {
	uowFactory OrderCourierUoWFactory
	notifier   OrderNotifier
	bus        ports.EventBus
	logger     *zap.Logger
}

// NewClaimOrderCommandHandler creates a handler for order claims.
func NewClaimOrderCommandHandler(
	uowFactory OrderCourierUoWFactory,
	notifier OrderNotifier,
	bus ports.EventBus,
	logger *zap.Logger,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		bus:        bus,
		logger:     logger,
	}
}

// Handle processes the claim. Eligibility is checked once, here; a
// courier suspended after a successful claim keeps the order.
func (h *ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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

	claimant, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if !claimant.IsEligible() {
		return order.NewForbiddenError("courier", "courier account is not active")
	}

	won, err := uow.OrderRepository().Claim(ctx, cmd.OrderID(), cmd.CourierID())
	if err != nil {
		return err
	}
	if !won {
		return order.ErrAlreadyClaimed
	}

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if loc := cmd.CourierLocation(); loc != nil {
		if err = aggregate.SetCourierLocation(*loc, aggregate.UpdatedAt()); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyOrderClaimed(ctx, aggregate)

	payload := orderEventPayload(aggregate)
	if err = h.bus.Publish(ctx, couriersScope, eventOrderClaimed, payload); err != nil {
		h.logger.Warn("publish order claimed event",
			zap.String("orderId", aggregate.ID().String()),
			zap.Error(err),
		)
	}
	if err = h.bus.Publish(ctx, orderScope(aggregate), eventOrderUpdate, payload); err != nil {
		h.logger.Warn("publish order update event",
			zap.String("orderId", aggregate.ID().String()),
			zap.Error(err),
		)
	}

	return nil
}
