package queries

import (
	"errors"
	"time"

	"kitchenboard/internal/pkg/errs"
	"kitchenboard/internal/pkg/guard"
)

const (
	// DefaultHistoryWindow is the trailing window shown on the delivered
	// tab when the caller does not ask for a different one.
	DefaultHistoryWindow = 2 * time.Hour

	maxHistoryWindow = 24 * time.Hour
)

var (
	ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
		"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
	)
)

// GetOrderHistoryQuery retrieves delivered orders whose last update falls
// inside a trailing window. Older deliveries stay in storage but drop off
// the result.
type GetOrderHistoryQuery struct {
	window time.Duration

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a history query for the given trailing
// window. A zero window selects DefaultHistoryWindow; negative windows and
// windows beyond a day are rejected.
func NewGetOrderHistoryQuery(window time.Duration) (GetOrderHistoryQuery, error) {
	if window == 0 {
		window = DefaultHistoryWindow
	}
	if window < 0 || window > maxHistoryWindow {
		return GetOrderHistoryQuery{}, errs.NewValueIsOutOfRangeError(
			"window", window, time.Duration(1), maxHistoryWindow)
	}

	return GetOrderHistoryQuery{
		window: window,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Window returns the trailing window the query covers.
func (q GetOrderHistoryQuery) Window() time.Duration {
	return q.window
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderHistoryQueryIsNotConstructed if validation fails.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}
