package assets

import (
	"time"

	"asset_manager/internal/audit"
	"asset_manager/internal/models"
)

// Actor is the authenticated identity performing a mutation.
type Actor struct {
	ID   uint
	Role models.RoleName
}

// UpdatePatch carries the proposed new field values of an update. Nil means
// "not provided" and leaves the current value untouched, which is distinct
// from an explicit zero value.
type UpdatePatch struct {
	Name            *string             `json:"name"`
	SerialNumber    *int                `json:"serial_number"`
	TypeID          *uint               `json:"type_id"`
	Description     *string             `json:"description"`
	ResponsibleID   *uint               `json:"responsible_id"`
	LocationID      *uint               `json:"location_id"`
	Status          *models.AssetStatus `json:"status"`
	Cost            *float64            `json:"cost"`
	AcquisitionDate *time.Time          `json:"acquisition_date"`
}

// Authorize applies the provided patch fields onto the pre-image and checks
// the role-gated transitions: relocating an asset is reserved for managers,
// changing its status for admins. On success it returns the approved
// candidate snapshot; on failure nothing may be written.
func Authorize(actor Actor, prev audit.Snapshot, patch UpdatePatch) (audit.Snapshot, error) {
	if actor.ID == 0 {
		return audit.Snapshot{}, ErrMissingAuditContext
	}

	next := prev
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.SerialNumber != nil {
		next.SerialNumber = *patch.SerialNumber
	}
	if patch.TypeID != nil {
		next.TypeID = *patch.TypeID
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.ResponsibleID != nil {
		next.ResponsibleID = *patch.ResponsibleID
	}
	if patch.LocationID != nil {
		next.LocationID = *patch.LocationID
	}
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	if patch.Cost != nil {
		next.Cost = *patch.Cost
	}
	if patch.AcquisitionDate != nil {
		next.AcquisitionDate = *patch.AcquisitionDate
	}

	if next.LocationID != prev.LocationID && actor.Role != models.RoleManager {
		return audit.Snapshot{}, &ForbiddenTransitionError{Field: "location", Role: string(actor.Role)}
	}
	if next.Status != prev.Status && actor.Role != models.RoleAdmin {
		return audit.Snapshot{}, &ForbiddenTransitionError{Field: "status", Role: string(actor.Role)}
	}

	return next, nil
}
