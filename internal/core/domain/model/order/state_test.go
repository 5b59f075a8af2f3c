package order_test

import (
	"testing"

	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state    order.State
		expected string
	}{
		{order.Pending, "PENDING"},
		{order.InProgress, "IN_PROGRESS"},
		{order.Ready, "READY"},
		{order.Delivered, "DELIVERED"},
		{order.Unknown, "UNKNOWN"},
		{order.State(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestStateFromString(t *testing.T) {
	t.Run("parses all valid wire names", func(t *testing.T) {
		for _, tt := range []struct {
			name     string
			expected order.State
		}{
			{"PENDING", order.Pending},
			{"IN_PROGRESS", order.InProgress},
			{"READY", order.Ready},
			{"DELIVERED", order.Delivered},
		} {
			state, err := order.StateFromString(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, state)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		for _, name := range []string{"", "pending", "UNKNOWN", "DONE"} {
			_, err := order.StateFromString(name)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, "name %q", name)
		}
	})
}

func TestState_Validate(t *testing.T) {
	t.Run("valid states", func(t *testing.T) {
		for _, s := range []order.State{order.Pending, order.InProgress, order.Ready, order.Delivered} {
			assert.NoError(t, s.Validate())
		}
	})

	t.Run("invalid states", func(t *testing.T) {
		assert.Error(t, order.Unknown.Validate())
		assert.Error(t, order.State(42).Validate())
	})
}

func TestState_Advance(t *testing.T) {
	t.Run("accepts single forward edges", func(t *testing.T) {
		for _, tt := range []struct {
			from, to order.State
		}{
			{order.Pending, order.InProgress},
			{order.InProgress, order.Ready},
			{order.Ready, order.Delivered},
		} {
			next, err := tt.from.Advance(tt.to)
			require.NoError(t, err, "%s -> %s", tt.from, tt.to)
			assert.Equal(t, tt.to, next)
		}
	})

	t.Run("rejects skips, backward moves and self transitions", func(t *testing.T) {
		invalid := []struct {
			from, to order.State
		}{
			{order.Pending, order.Ready},
			{order.Pending, order.Delivered},
			{order.InProgress, order.Delivered},
			{order.InProgress, order.Pending},
			{order.Ready, order.InProgress},
			{order.Ready, order.Pending},
			{order.Delivered, order.Ready},
			{order.Delivered, order.Pending}, // recovery is not an advance
			{order.Pending, order.Pending},
			{order.Delivered, order.Delivered},
		}
		for _, tt := range invalid {
			_, err := tt.from.Advance(tt.to)
			assert.ErrorIs(t, err, errs.ErrInvalidTransition, "%s -> %s", tt.from, tt.to)
		}
	})

	t.Run("rejects invalid source or target", func(t *testing.T) {
		_, err := order.Unknown.Advance(order.Pending)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.Pending.Advance(order.Unknown)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestState_Pickup(t *testing.T) {
	t.Run("ready can be picked up", func(t *testing.T) {
		next, err := order.Ready.Pickup()
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, next)
	})

	t.Run("all other states are rejected", func(t *testing.T) {
		for _, s := range []order.State{order.Pending, order.InProgress, order.Delivered} {
			_, err := s.Pickup()
			assert.ErrorIs(t, err, errs.ErrInvalidState, "state %s", s)
		}
	})
}

func TestState_Recover(t *testing.T) {
	t.Run("delivered recovers to pending", func(t *testing.T) {
		next, err := order.Delivered.Recover()
		require.NoError(t, err)
		assert.Equal(t, order.Pending, next)
	})

	t.Run("all other states are rejected", func(t *testing.T) {
		for _, s := range []order.State{order.Pending, order.InProgress, order.Ready} {
			_, err := s.Recover()
			assert.ErrorIs(t, err, errs.ErrInvalidState, "state %s", s)
		}
	})
}

func TestState_ValidateEdit(t *testing.T) {
	assert.NoError(t, order.Pending.ValidateEdit())
	assert.NoError(t, order.InProgress.ValidateEdit())
	assert.ErrorIs(t, order.Ready.ValidateEdit(), errs.ErrInvalidState)
	assert.ErrorIs(t, order.Delivered.ValidateEdit(), errs.ErrInvalidState)
}

func TestState_ValidateCanHaveRider(t *testing.T) {
	t.Run("rider only on delivered", func(t *testing.T) {
		assert.NoError(t, order.Delivered.ValidateCanHaveRider(true))
		assert.NoError(t, order.Pending.ValidateCanHaveRider(false))
		assert.NoError(t, order.Ready.ValidateCanHaveRider(false))
	})

	t.Run("inconsistent combinations rejected", func(t *testing.T) {
		assert.Error(t, order.Pending.ValidateCanHaveRider(true))
		assert.Error(t, order.Ready.ValidateCanHaveRider(true))
		assert.Error(t, order.Delivered.ValidateCanHaveRider(false))
	})
}

func TestState_IsActive(t *testing.T) {
	assert.True(t, order.Pending.IsActive())
	assert.True(t, order.InProgress.IsActive())
	assert.True(t, order.Ready.IsActive())
	assert.False(t, order.Delivered.IsActive())
	assert.False(t, order.Unknown.IsActive())
}

func TestState_DisplayName(t *testing.T) {
	assert.Equal(t, "pending", order.Pending.DisplayName())
	assert.Equal(t, "in progress", order.InProgress.DisplayName())
	assert.Equal(t, "ready", order.Ready.DisplayName())
	assert.Equal(t, "delivered", order.Delivered.DisplayName())
	assert.Equal(t, "unknown", order.Unknown.DisplayName())
}
