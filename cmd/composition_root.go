package cmd

import (
	"context"
	"log/slog"

	"kitchenboard/internal/adapters/in/http"
	"kitchenboard/internal/adapters/out/broadcast"
	"kitchenboard/internal/adapters/out/postgres"
	"kitchenboard/internal/core/application/usecases/commands"
	"kitchenboard/internal/core/application/usecases/queries"
	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/jobs"
	"kitchenboard/internal/riders"

	"gorm.io/gorm"
)

// CompositionRoot wires every adapter, handler and background worker of the
// process. Handlers share one lock registry and one broadcast hub so that
// mutations of the same order serialize and every display sees the same
// event stream.
type CompositionRoot struct {
	config Config
	gormDB *gorm.DB
	logger *slog.Logger

	uowFactory *postgres.GormUnitOfWorkFactory
	locks      *commands.OrderLocks
	hub        *broadcast.Hub

	createOrderHandler  commands.CreateOrderCommandHandler
	advanceStateHandler commands.AdvanceOrderStateCommandHandler
	pickupHandler       commands.PickupOrderCommandHandler
	recoverHandler      commands.RecoverOrderCommandHandler
	editItemsHandler    commands.EditOrderItemsCommandHandler
	attachPhotoHandler  commands.AttachPhotoEvidenceCommandHandler

	pool *riders.Pool
}

// FuncOrderUoWFactory adapts the GORM unit of work factory to the command
// layer's factory interface.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// NewCompositionRoot builds the full object graph. The rider pool still has
// to be started via StartRiderPool once a lifecycle context exists.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		locks:      commands.NewOrderLocks(),
		hub:        broadcast.NewHub(logger),
	}

	var uowFactory commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return root.uowFactory.Create()
	})

	root.createOrderHandler = commands.NewCreateOrderCommandHandler(uowFactory, root.hub, logger)
	root.advanceStateHandler = commands.NewAdvanceOrderStateCommandHandler(uowFactory, root.locks, root.hub, logger)
	root.pickupHandler = commands.NewPickupOrderCommandHandler(uowFactory, root.locks, root.hub, logger)
	root.recoverHandler = commands.NewRecoverOrderCommandHandler(uowFactory, root.locks, root.hub, logger)
	root.editItemsHandler = commands.NewEditOrderItemsCommandHandler(uowFactory, root.locks, root.hub, logger)
	root.attachPhotoHandler = commands.NewAttachPhotoEvidenceCommandHandler(uowFactory, root.locks, root.hub, logger)

	return root
}

// Hub exposes the broadcast hub for shutdown draining.
func (c *CompositionRoot) Hub() *broadcast.Hub {
	return c.hub
}

// StartRiderPool seeds the pool with the currently active orders and runs
// its owner goroutine until ctx is cancelled.
func (c *CompositionRoot) StartRiderPool(ctx context.Context) error {
	seed, err := c.CreateGetActiveOrdersQueryHandler().Handle(ctx, queries.NewGetActiveOrdersQuery())
	if err != nil {
		return err
	}

	feed, unsubscribe := c.hub.Subscribe()

	pickup := func(ctx context.Context, orderID kernel.UUID, riderID string) error {
		cmd, err := commands.NewPickupOrderCommand(orderID, riderID)
		if err != nil {
			return err
		}
		_, err = c.pickupHandler.Handle(ctx, cmd)
		return err
	}

	c.pool = riders.NewPool(pickup, c.hub, feed, seed, c.logger)
	if c.config.RiderMinDelay > 0 && c.config.RiderMaxDelay >= c.config.RiderMinDelay {
		c.pool.SetDelayWindow(c.config.RiderMinDelay, c.config.RiderMaxDelay)
	}

	go func() {
		defer unsubscribe()
		c.pool.Run(ctx)
	}()

	return nil
}

// NewHTTPServer builds the REST/WebSocket server on top of the handlers.
// StartRiderPool must have run first.
func (c *CompositionRoot) NewHTTPServer() *http.Server {
	return http.NewServer(
		&c.createOrderHandler,
		&c.advanceStateHandler,
		&c.pickupHandler,
		&c.recoverHandler,
		&c.editItemsHandler,
		&c.attachPhotoHandler,
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetOrderHistoryQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.pool,
		c.hub,
	)
}

// NewJobManager builds the background job set.
func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(&c.createOrderHandler, c.config.SimulatorSchedule, c.logger)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}
