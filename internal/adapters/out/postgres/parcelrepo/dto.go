// Package parcelrepo persists parcel records in PostgreSQL through GORM.
// One row per tracking ID; the position column keeps the snapshot order so a
// reload lists parcels in their original intake order.
package parcelrepo

import (
	"parceltrack/internal/core/domain/model/parcel"
)

// ParcelRecordDTO is the row form of parcel.Record.
type ParcelRecordDTO struct {
	TrackingID  string `gorm:"primaryKey;size:64"`
	Position    int    `gorm:"not null;index"`
	Destination string `gorm:"not null;size:64"`
	Weight      float64
	Priority    int    `gorm:"type:smallint"`
	Status      int    `gorm:"type:smallint;index"`
	Zone        string `gorm:"size:32"`
}

// TableName overrides GORM's default naming.
func (ParcelRecordDTO) TableName() string {
	return "parcel_records"
}

func fromDomain(position int, rec parcel.Record) ParcelRecordDTO {
	return ParcelRecordDTO{
		TrackingID:  rec.ID,
		Position:    position,
		Destination: rec.Destination,
		Weight:      rec.Weight,
		Priority:    rec.Priority,
		Status:      int(rec.Status),
		Zone:        rec.Zone,
	}
}

func toDomain(dto ParcelRecordDTO) (parcel.Record, error) {
	status := parcel.Status(dto.Status)
	if err := status.Validate(); err != nil {
		return parcel.Record{}, err
	}

	return parcel.Record{
		ID:          dto.TrackingID,
		Destination: dto.Destination,
		Weight:      dto.Weight,
		Priority:    dto.Priority,
		Status:      status,
		Zone:        dto.Zone,
	}, nil
}
