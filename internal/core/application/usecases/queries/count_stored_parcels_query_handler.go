package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// CountStoredParcelsQueryHandler aggregates the parcel_records table.
type CountStoredParcelsQueryHandler struct {
	db *gorm.DB
}

func NewCountStoredParcelsQueryHandler(db *gorm.DB) CountStoredParcelsQueryHandler {
	return CountStoredParcelsQueryHandler{db: db}
}

// Handle returns one bucket per status present, ordered by status ordinal.
func (h CountStoredParcelsQueryHandler) Handle(
	ctx context.Context,
	query CountStoredParcelsQuery,
) ([]CountStoredParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	counts := make([]CountStoredParcelsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM parcel_records
		GROUP BY status
		ORDER BY status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status, count int
		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}

		counts = append(counts, CountStoredParcelsQueryResponse{
			Status: parcel.Status(status).String(),
			Count:  count,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
