// Package riders models the ephemeral pool of pickup agents. Riders are
// never persisted: the pool lives in memory, observes the board's event feed
// and surfaces an interested rider for every active order after a random
// delay. A rider's pickup attempt only reaches the engine when the order is
// READY; attempts on earlier states are rejected locally with a notice.
package riders

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"kitchenboard/internal/core/application/projection"
	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/core/ports"
	"kitchenboard/internal/pkg/errs"
)

const (
	// DefaultMinDelay and DefaultMaxDelay bound the random interval after
	// which a rider becomes interested in an active order.
	DefaultMinDelay = 4 * time.Second
	DefaultMaxDelay = 10 * time.Second
)

// PickupFunc delivers an order on behalf of a rider. Wired to the pickup
// command handler.
type PickupFunc func(ctx context.Context, orderID kernel.UUID, riderID string) error

// Rider is one ephemeral pickup agent waiting on a specific order.
type Rider struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"orderId"`
	AppearedAt time.Time `json:"appearedAt"`
}

type attemptRequest struct {
	riderID string
	reply   chan attemptDecision
}

type attemptDecision struct {
	orderID kernel.UUID
	err     error
}

type snapshotRequest struct {
	reply chan []Rider
}

// Pool owns the rider set. All state lives inside the Run goroutine;
// external callers interact through Attempt and Riders, which pass messages
// in and wait for the reply.
type Pool struct {
	pickup    PickupFunc
	publisher ports.EventPublisher
	events    <-chan projection.Event
	logger    *slog.Logger

	minDelay time.Duration
	maxDelay time.Duration
	seed     []projection.Order

	spawns    chan string
	attempts  chan attemptRequest
	snapshots chan snapshotRequest
	removals  chan string
}

// NewPool creates a rider pool fed by the given event channel. The channel
// is typically a hub subscription; seed carries the orders already active at
// startup so they get riders too.
func NewPool(
	pickup PickupFunc,
	publisher ports.EventPublisher,
	events <-chan projection.Event,
	seed []projection.Order,
	logger *slog.Logger,
) *Pool {
	pool := &Pool{
		pickup:    pickup,
		publisher: publisher,
		events:    events,
		logger:    logger,
		minDelay:  DefaultMinDelay,
		maxDelay:  DefaultMaxDelay,
		seed:      seed,
		spawns:    make(chan string),
		attempts:  make(chan attemptRequest),
		snapshots: make(chan snapshotRequest),
		removals:  make(chan string),
	}
	return pool
}

// SetDelayWindow overrides the interest delay bounds. Only valid before Run.
func (p *Pool) SetDelayWindow(min, max time.Duration) {
	p.minDelay = min
	p.maxDelay = max
}

// Run owns the pool state until ctx is cancelled. Must be called exactly
// once, in its own goroutine.
func (p *Pool) Run(ctx context.Context) {
	states := make(map[string]string)
	riders := make(map[string]Rider)
	wanted := make(map[string]string)

	for _, projected := range p.seed {
		states[projected.ID] = projected.State
		p.scheduleSpawn(ctx, projected.ID)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-p.events:
			if !ok {
				return
			}
			p.applyEvent(ctx, event, states, riders, wanted)

		case orderID := <-p.spawns:
			p.spawnRider(orderID, states, riders, wanted)

		case request := <-p.attempts:
			request.reply <- p.decideAttempt(request.riderID, states, riders, wanted)

		case riderID := <-p.removals:
			if rider, ok := riders[riderID]; ok {
				delete(riders, riderID)
				delete(wanted, rider.OrderID)
			}

		case request := <-p.snapshots:
			snapshot := make([]Rider, 0, len(riders))
			for _, rider := range riders {
				snapshot = append(snapshot, rider)
			}
			request.reply <- snapshot
		}
	}
}

// Attempt performs a pickup attempt for the given rider. A READY order is
// delivered through the pickup handler and the rider leaves the pool. An
// order still PENDING or IN_PROGRESS rejects the attempt locally without an
// engine call and the rider keeps waiting. A rider whose order vanished is
// dropped.
func (p *Pool) Attempt(ctx context.Context, riderID string) error {
	request := attemptRequest{riderID: riderID, reply: make(chan attemptDecision, 1)}

	select {
	case p.attempts <- request:
	case <-ctx.Done():
		return ctx.Err()
	}

	var decision attemptDecision
	select {
	case decision = <-request.reply:
	case <-ctx.Done():
		return ctx.Err()
	}

	if decision.err != nil {
		return decision.err
	}

	if err := p.pickup(ctx, decision.orderID, riderID); err != nil {
		return err
	}

	select {
	case p.removals <- riderID:
	case <-ctx.Done():
	}
	return nil
}

// Riders returns a snapshot of the current pool.
func (p *Pool) Riders(ctx context.Context) ([]Rider, error) {
	request := snapshotRequest{reply: make(chan []Rider, 1)}

	select {
	case p.snapshots <- request:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case snapshot := <-request.reply:
		return snapshot, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Pool) applyEvent(
	ctx context.Context,
	event projection.Event,
	states map[string]string,
	riders map[string]Rider,
	wanted map[string]string,
) {
	if event.Order == nil {
		return
	}
	orderID := event.Order.ID

	switch event.Type {
	case projection.EventOrderCreated, projection.EventOrderRecovered:
		states[orderID] = event.Order.State
		if _, taken := wanted[orderID]; !taken {
			p.scheduleSpawn(ctx, orderID)
		}

	case projection.EventOrderUpdated, projection.EventOrderPhotoAttached:
		states[orderID] = event.Order.State

	case projection.EventOrderDelivered:
		delete(states, orderID)
		if riderID, taken := wanted[orderID]; taken {
			delete(wanted, orderID)
			delete(riders, riderID)
		}
	}
}

func (p *Pool) scheduleSpawn(ctx context.Context, orderID string) {
	delay := p.minDelay
	if window := p.maxDelay - p.minDelay; window > 0 {
		delay += time.Duration(rand.Int63n(int64(window)))
	}

	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return
		}

		select {
		case p.spawns <- orderID:
		case <-ctx.Done():
		}
	}()
}

func (p *Pool) spawnRider(
	orderID string,
	states map[string]string,
	riders map[string]Rider,
	wanted map[string]string,
) {
	if _, active := states[orderID]; !active {
		return
	}
	if _, taken := wanted[orderID]; taken {
		return
	}

	rider := Rider{
		ID:         newRiderID(),
		OrderID:    orderID,
		AppearedAt: time.Now(),
	}
	riders[rider.ID] = rider
	wanted[orderID] = rider.ID

	p.logger.Info("rider waiting for order",
		slog.String("rider_id", rider.ID),
		slog.String("order_id", orderID))
	p.publisher.Publish(projection.NewNoticeEvent(
		projection.EventRiderWaiting,
		fmt.Sprintf("rider %s is waiting to pick up order %s", rider.ID, orderID)))
}

func (p *Pool) decideAttempt(
	riderID string,
	states map[string]string,
	riders map[string]Rider,
	wanted map[string]string,
) attemptDecision {
	rider, ok := riders[riderID]
	if !ok {
		return attemptDecision{err: errs.NewObjectNotFoundError("riderID", riderID)}
	}

	state, active := states[rider.OrderID]
	if !active {
		delete(riders, riderID)
		delete(wanted, rider.OrderID)
		return attemptDecision{err: errs.NewObjectNotFoundError("orderID", rider.OrderID)}
	}

	if state != order.Ready.String() {
		display := state
		if parsed, err := order.StateFromString(state); err == nil {
			display = parsed.DisplayName()
		}
		p.publisher.Publish(projection.NewNoticeEvent(
			projection.EventRiderRejected,
			fmt.Sprintf("order %s is not ready yet, it is %s", rider.OrderID, display)))
		return attemptDecision{err: errs.NewInvalidStateError("pick up order", display)}
	}

	orderID, err := kernel.UUIDFromString(rider.OrderID)
	if err != nil {
		return attemptDecision{err: err}
	}
	return attemptDecision{orderID: orderID}
}

func newRiderID() string {
	return "rider-" + strings.Split(kernel.NewUUID().String(), "-")[0]
}
