package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		fixtureItems(t),
		fixturePoint(t, 12.9716, 77.5946),
		fixturePoint(t, 12.9352, 77.6245),
		25,
		services.SurgeFlags{},
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockOrderCourierUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("AnySurgeEnabledSince", ctx, mock.AnythingOfType("time.Time")).Return(false, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockOrderNotifier)
	notifier.On("NotifyOrderAvailable", ctx, mock.AnythingOfType("*order.Order")).Once()

	bus := new(MockEventBus)
	bus.On("Publish", ctx, "couriers", "orderAvailable", mock.Anything).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(
		factory, services.NewFareCalculator(), notifier, bus, zap.NewNop(),
	)

	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
	bus.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_PersistsQuotedFee(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateOrderCommand(t)

	var persisted *order.Order

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockOrderCourierUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("OrderRepository").Return(orderRepo)
	courierRepo.On("AnySurgeEnabledSince", ctx, mock.Anything).Return(false, nil)
	orderRepo.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*order.Order)
	}).Return(nil)

	factory := new(MockOrderCourierUoWFactory)
	factory.On("Create").Return(uow)

	notifier := new(MockOrderNotifier)
	notifier.On("NotifyOrderAvailable", ctx, mock.Anything)
	bus := new(MockEventBus)
	bus.On("Publish", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	h := commands.NewCreateOrderCommandHandler(
		factory, services.NewFareCalculator(), notifier, bus, zap.NewNop(),
	)

	require.NoError(t, h.Handle(ctx, cmd))
	require.NotNil(t, persisted)
	require.Equal(t, order.Pending, persisted.Status())
	require.Positive(t, persisted.DeliveryFee())
	require.NotNil(t, persisted.VendorLocation())
	require.NotNil(t, persisted.CustomerLocation())
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockOrderCourierUoWFactory)
	h := commands.NewCreateOrderCommandHandler(
		factory, services.NewFareCalculator(), new(MockOrderNotifier), new(MockEventBus), zap.NewNop(),
	)

	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockOrderCourierUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("AnySurgeEnabledSince", ctx, mock.Anything).Return(false, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.Anything).Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(
		factory, services.NewFareCalculator(), new(MockOrderNotifier), new(MockEventBus), zap.NewNop(),
	)

	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BusFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockOrderCourierUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("OrderRepository").Return(orderRepo)
	courierRepo.On("AnySurgeEnabledSince", ctx, mock.Anything).Return(false, nil)
	orderRepo.On("Add", ctx, mock.Anything).Return(nil)

	factory := new(MockOrderCourierUoWFactory)
	factory.On("Create").Return(uow)

	notifier := new(MockOrderNotifier)
	notifier.On("NotifyOrderAvailable", ctx, mock.Anything)
	bus := new(MockEventBus)
	bus.On("Publish", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	h := commands.NewCreateOrderCommandHandler(
		factory, services.NewFareCalculator(), notifier, bus, zap.NewNop(),
	)

	require.NoError(t, h.Handle(ctx, cmd))
}
