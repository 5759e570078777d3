package models

import (
	"time"

	"gorm.io/gorm"
)

type AssetStatus string

const (
	StatusActive         AssetStatus = "active"
	StatusInactive       AssetStatus = "inactive"
	StatusDecommissioned AssetStatus = "decommissioned"
)

// Asset is one tracked physical item. Rows are soft-deleted (DeletedAt) and
// carry no UpdatedAt column; every update is instead recorded in change_log.
// CreatedBy never changes after creation.
type Asset struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	SerialNumber    int            `gorm:"not null" json:"serial_number"`
	TypeID          uint           `gorm:"not null" json:"type_id"`
	Type            *AssetType     `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	Description     string         `gorm:"size:255" json:"description,omitempty"`
	ResponsibleID   uint           `gorm:"not null" json:"responsible_id"`
	Responsible     *User          `gorm:"foreignKey:ResponsibleID" json:"responsible,omitempty"`
	LocationID      uint           `gorm:"not null" json:"location_id"`
	Location        *Location      `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Status          AssetStatus    `gorm:"size:20;not null;default:active" json:"status"`
	Cost            float64        `gorm:"not null" json:"cost"`
	AcquisitionDate time.Time      `gorm:"not null" json:"acquisition_date"`
	CreatedBy       uint           `gorm:"not null" json:"created_by"`
	Creator         *User          `gorm:"foreignKey:CreatedBy" json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Asset) TableName() string { return "assets" }
