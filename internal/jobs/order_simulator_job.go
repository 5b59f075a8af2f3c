package jobs

import (
	"context"
	"log/slog"
	"math/rand"

	"kitchenboard/internal/core/application/usecases/commands"
	"kitchenboard/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// menuEntry is one dish the simulator can order.
type menuEntry struct {
	name  string
	price float64
}

// menu is the fixed set of dishes simulated customers order from.
var menu = []menuEntry{
	{name: "Burger", price: 10.99},
	{name: "Fries", price: 3.49},
	{name: "Pizza Margherita", price: 12.50},
	{name: "Caesar Salad", price: 8.75},
	{name: "Ramen", price: 11.20},
	{name: "Soda", price: 2.00},
	{name: "Tiramisu", price: 5.90},
}

const (
	maxSimulatedItems    = 3
	maxSimulatedQuantity = 3
)

// OrderSimulatorJob periodically creates a random order, keeping the board
// alive without real customers. Disabled entirely when the schedule is
// empty.
type OrderSimulatorJob struct {
	handler *commands.CreateOrderCommandHandler
	cron    *cron.Cron
	spec    string
	logger  *slog.Logger
}

// NewOrderSimulatorJob creates the simulator with a cron spec (with a
// seconds field, e.g. "*/30 * * * * *").
func NewOrderSimulatorJob(handler *commands.CreateOrderCommandHandler, spec string, logger *slog.Logger) *OrderSimulatorJob {
	return &OrderSimulatorJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		spec:    spec,
		logger:  logger.With("component", "order_simulator_job"),
	}
}

// Start begins generating orders on the configured schedule.
func (j *OrderSimulatorJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()

		cmd, err := commands.NewCreateOrderCommand(randomItems())
		if err != nil {
			j.logger.ErrorContext(ctx, "order simulator built an invalid order", "error", err)
			return
		}

		projected, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "order simulator failed to create order", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "simulated order created",
			slog.String("order_id", projected.ID),
			slog.Int("items", len(projected.Items)))
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "order simulator started", slog.String("schedule", j.spec))
	return nil
}

// Stop stops the simulator.
func (j *OrderSimulatorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "order simulator stopped")
}

func randomItems() []commands.ItemInput {
	count := 1 + rand.Intn(maxSimulatedItems)
	items := make([]commands.ItemInput, 0, count)
	for i := 0; i < count; i++ {
		dish := menu[rand.Intn(len(menu))]
		items = append(items, commands.ItemInput{
			Name:          dish.name,
			PriceAmount:   dish.price,
			PriceCurrency: kernel.DefaultCurrency,
			Quantity:      1 + rand.Intn(maxSimulatedQuantity),
		})
	}
	return items
}
