package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"kitchenboard/internal/core/application/projection"
	"kitchenboard/internal/core/application/usecases/commands"
	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetDeliveredSince(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// RecordingPublisher collects every published event.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []projection.Event
}

func (p *RecordingPublisher) Publish(event projection.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *RecordingPublisher) Events() []projection.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]projection.Event(nil), p.events...)
}

// happyUoW wires a factory/uow/repo set for the common successful mutation
// path: begin, get, update, commit, with the trailing rollback ignored.
func happyUoW(repo *MockOrderRepository) (*MockOrderUoWFactory, *MockOrderUoW) {
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow
}

func testItems(t *testing.T) []order.Item {
	t.Helper()
	price, err := kernel.NewMoneyFromFloat(10.99, kernel.DefaultCurrency)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "Burger", price, 2)
	require.NoError(t, err)
	return []order.Item{item}
}

// orderInState builds an aggregate advanced to the requested state.
func orderInState(t *testing.T, state order.State) *order.Order {
	t.Helper()

	aggregate, err := order.NewOrder(kernel.NewUUID(), testItems(t))
	require.NoError(t, err)

	switch state {
	case order.Pending:
	case order.InProgress:
		require.NoError(t, aggregate.AdvanceState(order.InProgress))
	case order.Ready:
		require.NoError(t, aggregate.AdvanceState(order.InProgress))
		require.NoError(t, aggregate.AdvanceState(order.Ready))
	case order.Delivered:
		require.NoError(t, aggregate.AdvanceState(order.InProgress))
		require.NoError(t, aggregate.AdvanceState(order.Ready))
		require.NoError(t, aggregate.Pickup("rider-1"))
	}

	return aggregate
}
