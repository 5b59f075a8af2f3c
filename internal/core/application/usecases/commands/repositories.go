// Package commands contains business operations that modify order state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// per-order serialization, transaction management, persistence, and a
// post-commit broadcast of the resulting projection.
package commands

import (
	"context"
	"time"

	"kitchenboard/internal/core/ports"
)

// storageTimeout bounds every outbound store interaction of a single
// command. A timed-out mutation surfaces as a retryable failure to the
// caller; the transaction rollback guarantees it never partially applies.
const storageTimeout = 5 * time.Second

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure the order row and its item set change
// atomically.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order mutations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances, one per
	// command execution.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
