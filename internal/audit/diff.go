package audit

import (
	"time"

	"asset_manager/internal/models"
)

// Snapshot is an immutable point-in-time copy of the audited asset fields.
// Bookkeeping columns (timestamps, creator, soft-delete marker) are not part
// of it and therefore can never show up in a diff.
type Snapshot struct {
	Name            string
	SerialNumber    int
	TypeID          uint
	Description     string
	ResponsibleID   uint
	LocationID      uint
	Cost            float64
	Status          models.AssetStatus
	AcquisitionDate time.Time
}

// SnapshotOf copies the audited fields out of a live asset row.
func SnapshotOf(a *models.Asset) Snapshot {
	return Snapshot{
		Name:            a.Name,
		SerialNumber:    a.SerialNumber,
		TypeID:          a.TypeID,
		Description:     a.Description,
		ResponsibleID:   a.ResponsibleID,
		LocationID:      a.LocationID,
		Cost:            a.Cost,
		Status:          a.Status,
		AcquisitionDate: a.AcquisitionDate,
	}
}

// FieldChange is one entry of a structured diff.
type FieldChange struct {
	Field    string      `json:"field"`
	OldValue interface{} `json:"oldValue"`
	NewValue interface{} `json:"newValue"`
}

// Diff compares two snapshots field by field and returns the changes in a
// fixed order, so identical inputs always produce an identical diff. It is a
// pure function: no I/O, no mutation of its arguments.
func Diff(prev, next Snapshot) []FieldChange {
	var changes []FieldChange
	record := func(equal bool, field string, oldValue, newValue interface{}) {
		if !equal {
			changes = append(changes, FieldChange{Field: field, OldValue: oldValue, NewValue: newValue})
		}
	}

	record(prev.Name == next.Name, "name", prev.Name, next.Name)
	record(prev.SerialNumber == next.SerialNumber, "serial_number", prev.SerialNumber, next.SerialNumber)
	record(prev.TypeID == next.TypeID, "type_id", prev.TypeID, next.TypeID)
	record(prev.Description == next.Description, "description", prev.Description, next.Description)
	record(prev.ResponsibleID == next.ResponsibleID, "responsible_id", prev.ResponsibleID, next.ResponsibleID)
	record(prev.LocationID == next.LocationID, "location_id", prev.LocationID, next.LocationID)
	record(prev.Cost == next.Cost, "cost", prev.Cost, next.Cost)
	record(prev.Status == next.Status, "status", prev.Status, next.Status)
	record(prev.AcquisitionDate.Equal(next.AcquisitionDate), "acquisition_date", prev.AcquisitionDate, next.AcquisitionDate)

	return changes
}
