package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// MarkAlertReadCommandHandler marks a stored alert as read. Only the
// alert's addressee may mark it; broadcast alerts have no addressee and
// stay unread for everyone.
type MarkAlertReadCommandHandler struct {
	uowFactory AlertUoWFactory
}

// NewMarkAlertReadCommandHandler creates a handler for mark-read operations.
func NewMarkAlertReadCommandHandler(uowFactory AlertUoWFactory) MarkAlertReadCommandHandler {
	return MarkAlertReadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the mark-read command. Marking an already read alert
// succeeds without a write.
func (h *MarkAlertReadCommandHandler) Handle(ctx context.Context, cmd MarkAlertReadCommand) error {
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

	aggregate, err := uow.AlertRepository().Get(ctx, cmd.AlertID())
	if err != nil {
		return err
	}

	target := aggregate.Target()
	if target == nil || !target.IsEqual(cmd.ActorID()) {
		return order.NewForbiddenError("actor", "alert is not addressed to this actor")
	}

	if aggregate.Read() {
		return uow.Commit(ctx)
	}

	aggregate.MarkRead()

	if err = uow.AlertRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
