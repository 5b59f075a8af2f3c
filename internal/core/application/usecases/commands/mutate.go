package commands

import (
	"context"

	"kitchenboard/internal/core/application/projection"
	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/core/domain/model/order"
)

// mutateOrder runs the shared load-mutate-persist flow of every order
// mutation: acquire the per-order lock, load the aggregate inside a fresh
// transaction, apply the domain mutation, persist, commit. The lock is
// released when this function returns, before the caller broadcasts.
//
// Mutations other than create are never retried here: replaying a pickup or
// state change after an ambiguous failure risks duplicate side effects.
func mutateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	locks *OrderLocks,
	id kernel.UUID,
	mutate func(*order.Order) error,
) (projection.Order, error) {
	unlock := locks.Lock(id)
	defer unlock()

	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return projection.Order{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	aggregate, err := repo.Get(ctx, id)
	if err != nil {
		return projection.Order{}, err
	}

	if err = mutate(aggregate); err != nil {
		return projection.Order{}, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return projection.Order{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return projection.Order{}, err
	}

	return projection.FromOrder(aggregate), nil
}
