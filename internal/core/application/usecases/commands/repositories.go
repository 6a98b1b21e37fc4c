// Package commands contains operations that modify parcel tracking state.
// Each command is a constructor-validated value paired with a handler; handlers
// drive the dispatch engine and, for snapshot commands, record persistence.
package commands

import (
	"context"

	"parceltrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for snapshot handlers.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RecordRepoFactory provides access to the record repository within a transaction.
	RecordRepoFactory interface {
		ParcelRecordRepository() ports.ParcelRecordRepository
	}

	// RecordUoW manages transactions for parcel record persistence.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.ParcelRecordRepository().ReplaceAll(ctx, records)
	//   err = uow.Commit(ctx)
	RecordUoW interface {
		TxManager
		RecordRepoFactory
	}

	// RecordUoWFactory creates new record unit of work instances.
	RecordUoWFactory interface {
		Create() RecordUoW
	}
)
