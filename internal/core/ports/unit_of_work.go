package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each
// request/command, so concurrent operations never share a transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Client code
// must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns an error if no transaction is active; deferred rollbacks
	// after a successful Commit ignore that error.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction when one is active, otherwise to the base connection.
	OrderRepository() OrderRepository

	// CourierRepository returns a CourierRepository bound to the
	// current transaction.
	CourierRepository() CourierRepository

	// AlertRepository returns an AlertRepository bound to the current
	// transaction.
	AlertRepository() AlertRepository
}
