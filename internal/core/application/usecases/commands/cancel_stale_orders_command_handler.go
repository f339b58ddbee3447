package commands

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// CancelStaleOrdersCommandHandler sweeps pending orders that sat
// unconfirmed past the configured age and force-cancels them as the
// system actor. Orders that move while the sweep runs lose the
// compare-and-swap and are simply skipped; the next run re-evaluates.
type CancelStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	transition services.OrderTransition
	notifier   OrderNotifier
	bus        ports.EventBus
	logger     *zap.Logger
}

// NewCancelStaleOrdersCommandHandler creates a handler for the stale order sweep.
func NewCancelStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	transition services.OrderTransition,
	notifier OrderNotifier,
	bus ports.EventBus,
	logger *zap.Logger,
) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		transition: transition,
		notifier:   notifier,
		bus:        bus,
		logger:     logger,
	}
}

// Handle processes the sweep. Each order is cancelled independently; a
// failure on one does not stop the rest.
func (h *CancelStaleOrdersCommandHandler) Handle(ctx context.Context, cmd CancelStaleOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stale, err := uow.OrderRepository().GetStalePending(ctx, now.Add(-cmd.StaleAfter()))
	if err != nil {
		return err
	}

	cancelled := make([]*order.Order, 0, len(stale))
	for _, aggregate := range stale {
		priorStatus := aggregate.Status()

		if err = h.transition.Apply(aggregate, services.SystemActor(), order.Cancelled, now); err != nil {
			h.logger.Warn("skip stale order",
				zap.String("orderId", aggregate.ID().String()),
				zap.Error(err),
			)
			continue
		}

		err = uow.OrderRepository().UpdateInStatus(ctx, aggregate, priorStatus)
		switch {
		case errors.Is(err, ports.ErrOrderModified):
			// Someone confirmed or claimed it mid-sweep; leave it be.
			continue
		case err != nil:
			return err
		}

		cancelled = append(cancelled, aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, aggregate := range cancelled {
		h.notifier.NotifyOrderCancelled(ctx, aggregate)

		payload := orderEventPayload(aggregate)
		if err = h.bus.Publish(ctx, couriersScope, eventOrderCancelled, payload); err != nil {
			h.logger.Warn("publish order cancelled event",
				zap.String("orderId", aggregate.ID().String()),
				zap.Error(err),
			)
		}
	}

	if len(cancelled) > 0 {
		h.logger.Info("cancelled stale orders", zap.Int("count", len(cancelled)))
	}

	return nil
}
