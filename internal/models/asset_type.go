package models

import (
	"time"

	"gorm.io/gorm"
)

// AssetType is the catalogue entry an asset is classified under.
// Types may nest one level or more via ParentID (e.g. "Laptop" under "IT equipment").
type AssetType struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Category    string         `gorm:"size:255;not null" json:"category"`
	Description string         `gorm:"size:255" json:"description,omitempty"`
	ParentID    *uint          `json:"parent_id,omitempty"`
	Parent      *AssetType     `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AssetType) TableName() string { return "types" }
