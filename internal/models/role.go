package models

import "gorm.io/datatypes"

type RoleName string

const (
	RoleAdmin   RoleName = "admin"
	RoleManager RoleName = "manager"
	RoleViewer  RoleName = "viewer"
)

type Role struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        RoleName       `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Permissions datatypes.JSON `gorm:"type:json" json:"permissions,omitempty"`
}
