package commands

import (
	"context"
	"time"

	"go.uber.org/zap"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// CreateOrderCommandHandler handles order placement. It quotes the
// delivery fee from the route distance and the surge conditions, stores
// the order in pending status, and then announces it to the courier
// fleet on the realtime bus and over push.
type CreateOrderCommandHandler struct {
	uowFactory OrderCourierUoWFactory
	fare       services.FareCalculator
	notifier   OrderNotifier
	bus        ports.EventBus
	logger     *zap.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory OrderCourierUoWFactory,
	fare services.FareCalculator,
	notifier OrderNotifier,
	bus ports.EventBus,
	logger *zap.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		fare:       fare,
		notifier:   notifier,
		bus:        bus,
		logger:     logger,
	}
}

// Handle processes the order placement command. The fee quote and the
// insert happen inside one transaction; the fan-out runs after commit
// and never fails the request.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	fleetSurge, err := uow.CourierRepository().AnySurgeEnabledSince(ctx, now.Add(-courier.SurgeWindow))
	if err != nil {
		return err
	}

	quote, err := h.fare.Quote(
		cmd.VendorLocation(), cmd.CustomerLocation(),
		cmd.ETAMinutes(), cmd.SurgeFlags(), fleetSurge,
	)
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), cmd.VendorID(), cmd.RouteID(),
		cmd.Items(), quote.Fee, now,
	)
	if err != nil {
		return err
	}

	if err = aggregate.SetVendorLocation(cmd.VendorLocation(), now); err != nil {
		return err
	}
	if err = aggregate.SetCustomerLocation(cmd.CustomerLocation(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyOrderAvailable(ctx, aggregate)
	if err = h.bus.Publish(ctx, couriersScope, eventOrderAvailable, orderEventPayload(aggregate)); err != nil {
		h.logger.Warn("publish order available event",
			zap.String("orderId", aggregate.ID().String()),
			zap.Error(err),
		)
	}

	return nil
}
