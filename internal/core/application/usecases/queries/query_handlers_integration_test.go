package queries_test

import (
	"context"
	"testing"
	"time"

	"kitchenboard/internal/adapters/out/postgres/orderrepo"
	"kitchenboard/internal/core/application/usecases/queries"
	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// QueryHandlersIntegrationTestSuite exercises the read side against a real
// PostgreSQL instance seeded through the write-side repository.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container      *postgres.PostgresContainer
	db             *gorm.DB
	repo           *orderrepo.GormOrderRepository
	activeHandler  queries.GetActiveOrdersQueryHandler
	historyHandler queries.GetOrderHistoryQueryHandler
	getHandler     queries.GetOrderQueryHandler
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))

	suite.repo = orderrepo.NewGormOrderRepository(db, noopTracker{})
	suite.activeHandler = queries.NewGetActiveOrdersQueryHandler(db)
	suite.historyHandler = queries.NewGetOrderHistoryQueryHandler(db)
	suite.getHandler = queries.NewGetOrderQueryHandler(db)
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE items").Error)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) seedOrder(names ...string) *order.Order {
	items := make([]order.Item, 0, len(names))
	for _, name := range names {
		price, err := kernel.NewMoneyFromFloat(10.99, kernel.DefaultCurrency)
		suite.Require().NoError(err)
		item, err := order.NewItem(kernel.NewUUID(), name, price, 2)
		suite.Require().NoError(err)
		items = append(items, item)
	}

	aggregate, err := order.NewOrder(kernel.NewUUID(), items)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *QueryHandlersIntegrationTestSuite) deliverOrder(aggregate *order.Order, riderID string) {
	suite.Require().NoError(aggregate.AdvanceState(order.InProgress))
	suite.Require().NoError(aggregate.AdvanceState(order.Ready))
	suite.Require().NoError(aggregate.Pickup(riderID))
	suite.Require().NoError(suite.repo.Update(context.Background(), aggregate))
}

func (suite *QueryHandlersIntegrationTestSuite) TestActiveOrders_EmptyDatabase() {
	result, err := suite.activeHandler.Handle(context.Background(), queries.NewGetActiveOrdersQuery())
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueryHandlersIntegrationTestSuite) TestActiveOrders_SortedOldestFirst() {
	first := suite.seedOrder("Burger", "Fries")
	second := suite.seedOrder("Pizza")
	delivered := suite.seedOrder("Salad")
	suite.deliverOrder(delivered, "rider-1")

	result, err := suite.activeHandler.Handle(context.Background(), queries.NewGetActiveOrdersQuery())
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal(first.ID().String(), result[0].ID)
	suite.Equal("PENDING", result[0].State)
	suite.Nil(result[0].RiderID)
	suite.Require().Len(result[0].Items, 2)
	suite.Equal("Burger", result[0].Items[0].Name)
	suite.Equal("Fries", result[0].Items[1].Name)
	suite.InDelta(10.99, result[0].Items[0].Price.Amount, 0.001)
	suite.Equal(kernel.DefaultCurrency, result[0].Items[0].Price.Currency)

	suite.Equal(second.ID().String(), result[1].ID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestHistory_ReturnsRecentDeliveredOnly() {
	suite.seedOrder("Burger")
	delivered := suite.seedOrder("Pizza")
	suite.deliverOrder(delivered, "rider-9")

	query, err := queries.NewGetOrderHistoryQuery(0)
	suite.Require().NoError(err)

	result, err := suite.historyHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(delivered.ID().String(), result[0].ID)
	suite.Equal("DELIVERED", result[0].State)
	suite.Require().NotNil(result[0].RiderID)
	suite.Equal("rider-9", *result[0].RiderID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestHistory_ExcludesOldDeliveries() {
	delivered := suite.seedOrder("Pizza")
	suite.deliverOrder(delivered, "rider-9")

	// Age the delivery beyond the window.
	stale := time.Now().Add(-3 * time.Hour)
	err := suite.db.Exec("UPDATE orders SET updated_at = ? WHERE id = ?", stale, delivered.ID().String()).Error
	suite.Require().NoError(err)

	query, err := queries.NewGetOrderHistoryQuery(2 * time.Hour)
	suite.Require().NoError(err)

	result, err := suite.historyHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_Found() {
	seeded := suite.seedOrder("Burger")

	query, err := queries.NewGetOrderQuery(seeded.ID())
	suite.Require().NoError(err)

	result, err := suite.getHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(seeded.ID().String(), result.ID)
	suite.Require().Len(result.Items, 1)
	suite.Equal("Burger", result.Items[0].Name)
	suite.Equal(2, result.Items[0].Quantity)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.getHandler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
