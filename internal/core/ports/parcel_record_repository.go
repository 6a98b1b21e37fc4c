// Package ports defines the contracts between the parcel tracking core and its
// infrastructure: record persistence, the transaction boundary around it, the
// tracking summary cache and engine metrics.
package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
)

// ParcelRecordRepository persists the flat parcel records the engine snapshots.
// Records are order-insensitive; one record per tracking ID.
type ParcelRecordRepository interface {
	// ReplaceAll stores records as the complete parcel set, removing records
	// whose tracking IDs are not included.
	ReplaceAll(ctx context.Context, records []parcel.Record) error

	// LoadAll returns every stored record. An empty store yields an empty slice.
	LoadAll(ctx context.Context) ([]parcel.Record, error)
}
