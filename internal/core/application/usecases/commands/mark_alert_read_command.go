package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrMarkAlertReadCommandIsNotConstructed = errors.New(
	"MarkAlertReadCommand must be created via NewMarkAlertReadCommand constructor",
)

// MarkAlertReadCommand represents an actor marking one of their alerts
// as read.
type MarkAlertReadCommand struct { //nolint:recvcheck //using for validation
	alertID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkAlertReadCommand creates a mark-read command.
func NewMarkAlertReadCommand(alertID kernel.UUID, actorID kernel.UUID) (MarkAlertReadCommand, error) {
	cmd := MarkAlertReadCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAlertID(alertID),
		cmd.setActorID(actorID),
	); err != nil {
		return MarkAlertReadCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkAlertReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkAlertReadCommandIsNotConstructed)
}

// AlertID returns the identifier of the alert to mark.
func (c MarkAlertReadCommand) AlertID() kernel.UUID {
	return c.alertID
}

// ActorID returns the identifier of the actor marking the alert.
func (c MarkAlertReadCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *MarkAlertReadCommand) setAlertID(alertID kernel.UUID) error {
	if err := alertID.Validate(); err != nil {
		return err
	}

	c.alertID = alertID
	return nil
}

func (c *MarkAlertReadCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
