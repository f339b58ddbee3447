package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/guard"
)

var (
	ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
		"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
	)
	ErrStaleAfterIsInvalid = errors.New("staleAfter must be greater than 0")
)

// CancelStaleOrdersCommand requests cancellation of pending orders that
// no vendor confirmed and no courier claimed within the given age.
type CancelStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	staleAfter time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a stale order sweep command.
func NewCancelStaleOrdersCommand(staleAfter time.Duration) (CancelStaleOrdersCommand, error) {
	cmd := CancelStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setStaleAfter(staleAfter); err != nil {
		return CancelStaleOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

// StaleAfter returns the age beyond which a pending order is stale.
func (c CancelStaleOrdersCommand) StaleAfter() time.Duration {
	return c.staleAfter
}

func (c *CancelStaleOrdersCommand) setStaleAfter(staleAfter time.Duration) error {
	if staleAfter <= 0 {
		return ErrStaleAfterIsInvalid
	}

	c.staleAfter = staleAfter
	return nil
}
