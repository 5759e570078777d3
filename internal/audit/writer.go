package audit

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"asset_manager/internal/models"
)

// DefaultReason is stored when the caller gives no change reason.
const DefaultReason = "No reason provided"

// Record persists one ChangeLog row inside the caller's transaction. The
// flattened old_* columns are always built from the full pre-image, not from
// the diff, so every row carries complete previous values. Delete events are
// recorded with an empty diff. Record never commits on its own; if the
// surrounding transaction rolls back, so does the audit row.
func Record(tx *gorm.DB, assetID, actorID uint, action models.ChangeType, reason string, pre Snapshot, changes []FieldChange) (*models.ChangeLog, error) {
	if reason == "" {
		reason = DefaultReason
	}
	if changes == nil {
		changes = []FieldChange{}
	}

	payload, err := json.Marshal(changes)
	if err != nil {
		return nil, fmt.Errorf("marshal changes: %w", err)
	}

	entry := models.ChangeLog{
		AssetID:      assetID,
		UserID:       actorID,
		ChangeType:   action,
		ChangeReason: reason,
		Changes:      datatypes.JSON(payload),

		OldName:            pre.Name,
		OldSerialNumber:    pre.SerialNumber,
		OldTypeID:          pre.TypeID,
		OldDescription:     pre.Description,
		OldResponsibleID:   pre.ResponsibleID,
		OldLocationID:      pre.LocationID,
		OldCost:            pre.Cost,
		OldStatus:          pre.Status,
		OldAcquisitionDate: pre.AcquisitionDate,
	}

	if err := tx.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("write change_log: %w", err)
	}
	return &entry, nil
}
