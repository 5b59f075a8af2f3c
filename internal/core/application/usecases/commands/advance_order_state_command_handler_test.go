package commands_test

import (
	"log/slog"
	"testing"

	"kitchenboard/internal/core/application/projection"
	"kitchenboard/internal/core/application/usecases/commands"
	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdvanceOrderStateCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := orderInState(t, order.Pending)

	cmd, err := commands.NewAdvanceOrderStateCommand(aggregate.ID(), order.InProgress)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	factory, uow := happyUoW(repo)

	publisher := new(RecordingPublisher)
	handler := commands.NewAdvanceOrderStateCommandHandler(factory, commands.NewOrderLocks(), publisher, slog.Default())

	projected, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", projected.State)

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, projection.EventOrderUpdated, events[0].Type)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAdvanceOrderStateCommandHandler_Handle_SkippingAStateIsRejected(t *testing.T) {
	ctx := t.Context()
	aggregate := orderInState(t, order.Pending)

	cmd, err := commands.NewAdvanceOrderStateCommand(aggregate.ID(), order.Ready)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", mock.Anything).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(RecordingPublisher)
	handler := commands.NewAdvanceOrderStateCommandHandler(factory, commands.NewOrderLocks(), publisher, slog.Default())

	_, err = handler.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Empty(t, publisher.Events())
	assert.Equal(t, order.Pending, aggregate.State())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAdvanceOrderStateCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	missing := kernel.NewUUID()

	cmd, err := commands.NewAdvanceOrderStateCommand(missing, order.InProgress)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, missing).Return(nil, errs.NewObjectNotFoundError("order", missing.String())).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", mock.Anything).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceOrderStateCommandHandler(factory, commands.NewOrderLocks(), new(RecordingPublisher), slog.Default())

	_, err = handler.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewAdvanceOrderStateCommand_RejectsUnknownTarget(t *testing.T) {
	_, err := commands.NewAdvanceOrderStateCommand(kernel.NewUUID(), order.Unknown)
	require.Error(t, err)

	_, err = commands.NewAdvanceOrderStateCommand(kernel.UUID{}, order.InProgress)
	require.Error(t, err)
}
