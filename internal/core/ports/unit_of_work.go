package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary around record persistence.
// Client code must explicitly manage the transaction lifecycle. Rollback after
// Commit returns an error and changes nothing, so callers defer it and ignore
// the result.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit makes the changes durable.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback discards uncommitted changes.
	Rollback(ctx context.Context) error

	// ParcelRecordRepository returns a repository bound to the current transaction.
	ParcelRecordRepository() ParcelRecordRepository
}
