package parcelrepo

import (
	"context"
	"fmt"

	"parceltrack/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

const insertBatchSize = 200

// GormParcelRecordRepository implements ports.ParcelRecordRepository using GORM.
type GormParcelRecordRepository struct {
	db *gorm.DB
}

// NewGormParcelRecordRepository creates a repository on db, which may be a transaction.
func NewGormParcelRecordRepository(db *gorm.DB) *GormParcelRecordRepository {
	return &GormParcelRecordRepository{db: db}
}

// ReplaceAll deletes every stored row and inserts records in their given order.
// Run it inside a unit of work so readers never see a partial set.
func (r *GormParcelRecordRepository) ReplaceAll(ctx context.Context, records []parcel.Record) error {
	db := r.db.WithContext(ctx)

	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&ParcelRecordDTO{}).Error; err != nil {
		return fmt.Errorf("clear parcel records: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	dtos := make([]ParcelRecordDTO, 0, len(records))
	for i, rec := range records {
		dtos = append(dtos, fromDomain(i, rec))
	}
	if err := db.CreateInBatches(&dtos, insertBatchSize).Error; err != nil {
		return fmt.Errorf("insert parcel records: %w", err)
	}

	return nil
}

// LoadAll returns the stored records in snapshot order.
func (r *GormParcelRecordRepository) LoadAll(ctx context.Context) ([]parcel.Record, error) {
	var dtos []ParcelRecordDTO
	if err := r.db.WithContext(ctx).Order("position").Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]parcel.Record, 0, len(dtos))
	for _, dto := range dtos {
		rec, err := toDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("parcel record %s: %w", dto.TrackingID, err)
		}
		records = append(records, rec)
	}

	return records, nil
}
