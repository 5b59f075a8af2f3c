package commands_test

import (
	"log/slog"
	"testing"

	"kitchenboard/internal/core/application/projection"
	"kitchenboard/internal/core/application/usecases/commands"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEditOrderItemsCommandHandler_Handle_ReplacesItems(t *testing.T) {
	ctx := t.Context()
	aggregate := orderInState(t, order.InProgress)
	originalItemID := aggregate.Items()[0].ID()

	cmd, err := commands.NewEditOrderItemsCommand(aggregate.ID(), []commands.ItemInput{
		{Name: "Pizza", PriceAmount: 12.50, Quantity: 1},
		{Name: "Soda", PriceAmount: 2.00, Quantity: 2},
	})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	factory, _ := happyUoW(repo)

	publisher := new(RecordingPublisher)
	handler := commands.NewEditOrderItemsCommandHandler(factory, commands.NewOrderLocks(), publisher, slog.Default())

	projected, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, projected.Items, 2)
	assert.Equal(t, "Pizza", projected.Items[0].Name)
	assert.Equal(t, "Soda", projected.Items[1].Name)

	// Replacement regenerates item identifiers.
	assert.NotEqual(t, originalItemID.String(), projected.Items[0].ID)

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, projection.EventOrderUpdated, events[0].Type)
}

func TestEditOrderItemsCommandHandler_Handle_RejectedOnceReadyOrDelivered(t *testing.T) {
	for _, state := range []order.State{order.Ready, order.Delivered} {
		aggregate := orderInState(t, state)
		itemsBefore := aggregate.Items()

		cmd, err := commands.NewEditOrderItemsCommand(aggregate.ID(), []commands.ItemInput{
			{Name: "Pizza", PriceAmount: 12.50},
		})
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
		handler := commands.NewEditOrderItemsCommandHandler(factory, commands.NewOrderLocks(), publisher, slog.Default())

		_, err = handler.Handle(t.Context(), cmd)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, itemsBefore, aggregate.Items())
		assert.Empty(t, publisher.Events())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	}
}

func TestNewEditOrderItemsCommand_RequiresItems(t *testing.T) {
	aggregate := orderInState(t, order.Pending)

	_, err := commands.NewEditOrderItemsCommand(aggregate.ID(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
