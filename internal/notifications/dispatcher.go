// Package notifications implements the push fan-out behind the command
// handlers' OrderNotifier port. Every notification is persisted as an
// alert record first; push delivery then runs asynchronously over the
// registered channel providers, falling back to the secondary token
// only when the primary is absent or unsupported. Push failures are
// logged and swallowed, never surfaced to callers.
package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"dispatch/internal/core/domain/model/alert"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// dispatchTimeout bounds one asynchronous delivery, alert write included.
const dispatchTimeout = 10 * time.Second

// Dispatcher fans notifications out to the parties of an order.
// Implements commands.OrderNotifier.
type Dispatcher struct {
	directory ports.TokenDirectory
	providers []ports.ChannelProvider
	alerts    ports.AlertRepository
	logger    *zap.Logger

	wg sync.WaitGroup
}

// NewDispatcher creates a notification dispatcher. The providers slice
// is ordered: for each token the first provider that supports it is
// used. The secondary token is consulted only when the primary is
// absent or no channel supports it; each event gets at most one send.
func NewDispatcher(
	directory ports.TokenDirectory,
	providers []ports.ChannelProvider,
	alerts ports.AlertRepository,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		directory: directory,
		providers: providers,
		alerts:    alerts,
		logger:    logger,
	}
}

// Wait blocks until all in-flight deliveries finish. Used on shutdown
// and by tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// NotifyStatusChanged informs the customer that the order moved.
func (d *Dispatcher) NotifyStatusChanged(ctx context.Context, o *order.Order) {
	customerID := o.CustomerID()
	d.dispatch(ctx, &customerID, alert.TypeOrderUpdate,
		"Order update",
		fmt.Sprintf("Your order is now %s", o.Status()),
		o,
	)
}

// NotifyOrderAvailable broadcasts a claimable order to the fleet. There
// is no per-courier token to push to, so this records a broadcast alert
// and leaves realtime delivery to the event bus.
func (d *Dispatcher) NotifyOrderAvailable(ctx context.Context, o *order.Order) {
	d.dispatch(ctx, nil, alert.TypeOrderAvailable,
		"New order available",
		fmt.Sprintf("Order worth %d is up for delivery, fee %d", o.TotalAmount(), o.DeliveryFee()),
		o,
	)
}

// NotifyOrderClaimed informs the customer and the vendor that a courier
// took the order.
func (d *Dispatcher) NotifyOrderClaimed(ctx context.Context, o *order.Order) {
	customerID := o.CustomerID()
	vendorID := o.VendorID()
	d.dispatch(ctx, &customerID, alert.TypeOrderClaimed,
		"Courier assigned",
		"A courier has taken your order",
		o,
	)
	d.dispatch(ctx, &vendorID, alert.TypeOrderClaimed,
		"Courier assigned",
		"A courier has taken an order and is heading your way",
		o,
	)
}

// NotifyOrderCancelled informs the customer, and the courier when one
// was assigned, that the order is off.
func (d *Dispatcher) NotifyOrderCancelled(ctx context.Context, o *order.Order) {
	customerID := o.CustomerID()
	d.dispatch(ctx, &customerID, alert.TypeOrderCancelled,
		"Order cancelled",
		"Your order has been cancelled",
		o,
	)

	if courierID := o.Courier(); courierID != nil {
		d.dispatch(ctx, courierID, alert.TypeOrderCancelled,
			"Order cancelled",
			"An order you claimed has been cancelled",
			o,
		)
	}
}

// dispatch persists the alert and delivers the push asynchronously.
// The goroutine detaches from the caller's cancellation so an HTTP
// request finishing early does not abort the delivery.
func (d *Dispatcher) dispatch(
	ctx context.Context,
	targetID *kernel.UUID,
	alertType alert.Type,
	title string,
	body string,
	o *order.Order,
) {
	var target *kernel.UUID
	if targetID != nil {
		copied := *targetID
		target = &copied
	}

	data := map[string]string{
		"orderId": o.ID().String(),
		"status":  o.Status().String(),
		"type":    alertType.String(),
	}

	d.wg.Add(1)
	detached := context.WithoutCancel(ctx)
	go func() {
		defer d.wg.Done()

		sendCtx, cancel := context.WithTimeout(detached, dispatchTimeout)
		defer cancel()

		d.persistAlert(sendCtx, target, alertType, title, body)
		if target != nil {
			d.push(sendCtx, *target, title, body, data)
		}
	}()
}

func (d *Dispatcher) persistAlert(
	ctx context.Context,
	targetID *kernel.UUID,
	alertType alert.Type,
	title string,
	body string,
) {
	record, err := alert.NewAlert(kernel.NewUUID(), targetID, title, body, alertType, time.Now())
	if err != nil {
		d.logger.Error("build alert", zap.Error(err))
		return
	}

	if err = d.alerts.Add(ctx, record); err != nil {
		d.logger.Error("persist alert",
			zap.String("alertId", record.ID().String()),
			zap.Error(err),
		)
	}
}

// push delivers over the first addressable token. Fallback to the
// secondary happens only when the primary token is absent or no channel
// supports it. A send error ends the delivery: a failed primary send may
// still have reached the device, and the same event must never go out
// twice.
func (d *Dispatcher) push(
	ctx context.Context,
	actorID kernel.UUID,
	title string,
	body string,
	data map[string]string,
) {
	tokens, err := d.directory.ChannelTokens(ctx, actorID)
	if err != nil {
		d.logger.Warn("resolve push tokens",
			zap.String("actorId", actorID.String()),
			zap.Error(err),
		)
		return
	}

	for _, token := range []string{tokens.Primary, tokens.Secondary} {
		if token == "" {
			continue
		}

		provider := d.providerFor(token)
		if provider == nil {
			d.logger.Warn("no channel supports token", zap.String("actorId", actorID.String()))
			continue
		}

		if err = provider.Send(ctx, token, title, body, data); err != nil {
			d.logger.Warn("push delivery failed",
				zap.String("actorId", actorID.String()),
				zap.Error(err),
			)
		}

		return
	}
}

func (d *Dispatcher) providerFor(token string) ports.ChannelProvider {
	for _, provider := range d.providers {
		if provider.Supports(token) {
			return provider
		}
	}
	return nil
}
