package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand(t *testing.T) {
	actor, err := services.NewActor(services.RoleVendor, kernel.NewUUID())
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), actor, order.Confirmed)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		require.Equal(t, order.Confirmed, cmd.Target())
		require.Equal(t, services.RoleVendor, cmd.Actor().Role)
	})

	t.Run("system_actor", func(t *testing.T) {
		cmd, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), services.SystemActor(), order.Cancelled)

		require.NoError(t, err)
		require.Equal(t, services.RoleSystem, cmd.Actor().Role)
	})

	t.Run("unknown_target", func(t *testing.T) {
		_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), actor, order.Status(42))
		require.Error(t, err)
	})

	t.Run("actor_without_id", func(t *testing.T) {
		_, err := commands.NewChangeOrderStatusCommand(
			kernel.NewUUID(), services.Actor{Role: services.RoleCourier}, order.Ready,
		)
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validate", func(t *testing.T) {
		var cmd commands.ChangeOrderStatusCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrChangeOrderStatusCommandIsNotConstructed)
	})
}
