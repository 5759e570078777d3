package models

import (
	"time"

	"gorm.io/datatypes"
)

type ChangeType string

const (
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

// ChangeLog is one immutable audit record for an asset mutation. Rows are
// only ever inserted, exactly one per successful update or delete, and they
// outlive the asset they describe (no cascade). Changes holds the structured
// field-level diff; the old_* columns freeze the full pre-image regardless of
// which fields actually changed.
type ChangeLog struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	AssetID      uint           `gorm:"index;not null" json:"asset_id"`
	Asset        *Asset         `gorm:"foreignKey:AssetID" json:"-"`
	UserID       uint           `gorm:"not null" json:"user_id"`
	User         *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ChangeType   ChangeType     `gorm:"size:16;not null" json:"change_type"`
	ChangeReason string         `gorm:"size:255" json:"change_reason"`
	Changes      datatypes.JSON `gorm:"type:json" json:"changes"`

	OldName            string      `gorm:"size:255;not null" json:"old_name"`
	OldSerialNumber    int         `gorm:"not null" json:"old_serial_number"`
	OldTypeID          uint        `gorm:"not null" json:"old_type_id"`
	OldDescription     string      `gorm:"size:255" json:"old_description"`
	OldResponsibleID   uint        `gorm:"not null" json:"old_responsible_id"`
	OldLocationID      uint        `gorm:"not null" json:"old_location_id"`
	OldCost            float64     `gorm:"not null" json:"old_cost"`
	OldStatus          AssetStatus `gorm:"size:20;not null" json:"old_status"`
	OldAcquisitionDate time.Time   `gorm:"not null" json:"old_acquisition_date"`

	CreatedAt time.Time `json:"created_at"`
}

func (ChangeLog) TableName() string { return "change_log" }
