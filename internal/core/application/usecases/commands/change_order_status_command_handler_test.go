package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func vendorActor(t *testing.T, o *order.Order) services.Actor {
	t.Helper()

	actor, err := services.NewActor(services.RoleVendor, o.VendorID())
	require.NoError(t, err)
	return actor
}

func newChangeStatusHandler(
	factory *MockOrderUoWFactory,
	claimFactory *MockOrderCourierUoWFactory,
	notifier *MockOrderNotifier,
	bus *MockEventBus,
) commands.ChangeOrderStatusCommandHandler {
	claimHandler := commands.NewClaimOrderCommandHandler(claimFactory, notifier, bus, zap.NewNop())
	return commands.NewChangeOrderStatusCommandHandler(
		factory, services.NewOrderTransition(), claimHandler, notifier, bus, zap.NewNop(),
	)
}

func TestChangeOrderStatusCommandHandler_Handle_VendorConfirm(t *testing.T) {
	ctx := t.Context()
	target := fixtureOrder(t)
	cmd, err := commands.NewChangeOrderStatusCommand(target.ID(), vendorActor(t, target), order.Confirmed)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateInStatus", ctx, target, order.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockOrderNotifier)
	notifier.On("NotifyStatusChanged", ctx, target).Once()

	bus := new(MockEventBus)
	bus.On("Publish", ctx, "order:"+target.ID().String(), "orderUpdate", mock.Anything).Return(nil).Once()

	h := newChangeStatusHandler(factory, new(MockOrderCourierUoWFactory), notifier, bus)

	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, order.Confirmed, target.Status())
	orderRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	bus.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_VendorConfirmAfterClaimPersists(t *testing.T) {
	ctx := t.Context()
	target := fixtureOrder(t)
	require.NoError(t, target.AssignCourier(kernel.NewUUID(), time.Now()))
	require.Equal(t, order.Confirmed, target.Status())
	require.False(t, target.VendorConfirmed())

	cmd, err := commands.NewChangeOrderStatusCommand(target.ID(), vendorActor(t, target), order.Confirmed)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, target.ID()).Return(target, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		// Status stays Confirmed but vendorConfirmed flipped, so the
		// write must happen.
		orderRepo.On("UpdateInStatus", ctx, target, order.Confirmed).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockOrderNotifier)
	notifier.On("NotifyStatusChanged", ctx, target).Once()

	bus := new(MockEventBus)
	bus.On("Publish", ctx, "order:"+target.ID().String(), "orderUpdate", mock.Anything).Return(nil).Once()

	h := newChangeStatusHandler(factory, new(MockOrderCourierUoWFactory), notifier, bus)

	require.NoError(t, h.Handle(ctx, cmd))
	require.True(t, target.VendorConfirmed())
	orderRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_VendorReconfirmSkipsWrite(t *testing.T) {
	ctx := t.Context()
	target := fixtureOrder(t)
	require.NoError(t, target.ConfirmByVendor(time.Now()))

	cmd, err := commands.NewChangeOrderStatusCommand(target.ID(), vendorActor(t, target), order.Confirmed)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, target.ID()).Return(target, nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	notifier := new(MockOrderNotifier)
	bus := new(MockEventBus)

	h := newChangeStatusHandler(factory, new(MockOrderCourierUoWFactory), notifier, bus)

	require.NoError(t, h.Handle(ctx, cmd))
	orderRepo.AssertNotCalled(t, "UpdateInStatus", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_RoutesClaimToClaimHandler(t *testing.T) {
	ctx := t.Context()
	target := fixtureOrder(t)
	require.NoError(t, target.ConfirmByVendor(time.Now()))

	claimant := fixtureCourier(t)
	actor, err := services.NewActor(services.RoleCourier, claimant.ID())
	require.NoError(t, err)

	cmd, err := commands.NewChangeOrderStatusCommand(target.ID(), actor, order.Confirmed)
	require.NoError(t, err)

	// Read-only unit of work for the routing decision.
	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, target.ID()).Return(target, nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	// The claim handler's own transaction.
	claimOrderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	claimUow := new(MockOrderCourierUoW)
	claimUow.On("Begin", ctx).Return(nil)
	claimUow.On("Rollback", ctx).Return(nil)
	claimUow.On("Commit", ctx).Return(nil)
	claimUow.On("CourierRepository").Return(courierRepo)
	claimUow.On("OrderRepository").Return(claimOrderRepo)
	courierRepo.On("Get", ctx, claimant.ID()).Return(claimant, nil)
	claimOrderRepo.On("Claim", ctx, target.ID(), claimant.ID()).Return(true, nil)
	claimOrderRepo.On("Get", ctx, target.ID()).Return(target, nil)

	claimFactory := new(MockOrderCourierUoWFactory)
	claimFactory.On("Create").Return(claimUow)

	notifier := new(MockOrderNotifier)
	notifier.On("NotifyOrderClaimed", ctx, target).Once()
	bus := new(MockEventBus)
	bus.On("Publish", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	h := newChangeStatusHandler(factory, claimFactory, notifier, bus)

	require.NoError(t, h.Handle(ctx, cmd))
	claimOrderRepo.AssertCalled(t, "Claim", ctx, target.ID(), claimant.ID())
	orderRepo.AssertNotCalled(t, "UpdateInStatus", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_ConcurrentModification(t *testing.T) {
	ctx := t.Context()
	target := fixtureOrder(t)
	cmd, err := commands.NewChangeOrderStatusCommand(target.ID(), vendorActor(t, target), order.Confirmed)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, target.ID()).Return(target, nil)
	orderRepo.On("UpdateInStatus", ctx, target, order.Pending).Return(ports.ErrOrderModified)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	notifier := new(MockOrderNotifier)
	bus := new(MockEventBus)

	h := newChangeStatusHandler(factory, new(MockOrderCourierUoWFactory), notifier, bus)

	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrOrderModified)
	notifier.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything)
	bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_ForbiddenActor(t *testing.T) {
	ctx := t.Context()
	target := fixtureOrder(t)

	stranger, err := services.NewActor(services.RoleVendor, kernel.NewUUID())
	require.NoError(t, err)
	cmd, err := commands.NewChangeOrderStatusCommand(target.ID(), stranger, order.Confirmed)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, target.ID()).Return(target, nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := newChangeStatusHandler(factory, new(MockOrderCourierUoWFactory), new(MockOrderNotifier), new(MockEventBus))

	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrForbidden)
	orderRepo.AssertNotCalled(t, "UpdateInStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_CancelBroadcastsToCouriers(t *testing.T) {
	ctx := t.Context()
	target := fixtureOrder(t)
	cmd, err := commands.NewChangeOrderStatusCommand(target.ID(), vendorActor(t, target), order.Cancelled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, target.ID()).Return(target, nil)
	orderRepo.On("UpdateInStatus", ctx, target, order.Pending).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	notifier := new(MockOrderNotifier)
	notifier.On("NotifyOrderCancelled", ctx, target).Once()

	bus := new(MockEventBus)
	bus.On("Publish", ctx, "couriers", "orderCancelled", mock.Anything).Return(nil).Once()
	bus.On("Publish", ctx, "order:"+target.ID().String(), "orderUpdate", mock.Anything).Return(nil).Once()

	h := newChangeStatusHandler(factory, new(MockOrderCourierUoWFactory), notifier, bus)

	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, order.Cancelled, target.Status())
	notifier.AssertExpectations(t)
	bus.AssertExpectations(t)
}
