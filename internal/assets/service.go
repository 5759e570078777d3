package assets

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"asset_manager/internal/audit"
	"asset_manager/internal/models"
)

// Service sequences every audited asset mutation: authorize, capture the
// pre-image, apply, diff, write the asset row and its ChangeLog row in one
// transaction. A failure at any step rolls back everything, so an asset is
// never mutated without its paired audit record.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// lockedAsset loads an active asset and takes a row lock for the duration of
// the transaction. Postgres serializes concurrent editors of the same asset
// on this lock (read-committed is enough); sqlite, used in tests, has no row
// locks and serializes at the database level instead.
func lockedAsset(tx *gorm.DB, id uint) (*models.Asset, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var asset models.Asset
	if err := q.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &asset, nil
}

// Update applies an authorized patch to an asset and records the field-level
// diff. It returns ErrNoChanges before touching storage when the patch would
// not change anything.
func (s *Service) Update(ctx context.Context, id uint, actor Actor, patch UpdatePatch, reason string) (*models.Asset, error) {
	if actor.ID == 0 {
		return nil, ErrMissingAuditContext
	}

	var updated *models.Asset
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		asset, err := lockedAsset(tx, id)
		if err != nil {
			return err
		}

		pre := audit.SnapshotOf(asset)
		next, err := Authorize(actor, pre, patch)
		if err != nil {
			return err
		}

		changes := audit.Diff(pre, next)
		if len(changes) == 0 {
			return ErrNoChanges
		}

		applySnapshot(asset, next)
		if err := tx.Save(asset).Error; err != nil {
			return err
		}
		if _, err := audit.Record(tx, asset.ID, actor.ID, models.ChangeUpdate, reason, pre, changes); err != nil {
			return err
		}

		updated = asset
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes an asset and records a delete event carrying the full
// pre-image and an empty diff.
func (s *Service) Delete(ctx context.Context, id uint, actor Actor, reason string) error {
	if actor.ID == 0 {
		return ErrMissingAuditContext
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		asset, err := lockedAsset(tx, id)
		if err != nil {
			return err
		}

		pre := audit.SnapshotOf(asset)
		if _, err := audit.Record(tx, asset.ID, actor.ID, models.ChangeDelete, reason, pre, nil); err != nil {
			return err
		}
		return tx.Delete(asset).Error
	})
}

// Changelog returns all audit entries for one asset, newest first. The asset
// itself may already be soft-deleted; its history stays readable.
func (s *Service) Changelog(ctx context.Context, assetID uint) ([]models.ChangeLog, error) {
	var entries []models.ChangeLog
	err := s.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name")
		}).
		Where("asset_id = ?", assetID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func applySnapshot(asset *models.Asset, snap audit.Snapshot) {
	asset.Name = snap.Name
	asset.SerialNumber = snap.SerialNumber
	asset.TypeID = snap.TypeID
	asset.Description = snap.Description
	asset.ResponsibleID = snap.ResponsibleID
	asset.LocationID = snap.LocationID
	asset.Cost = snap.Cost
	asset.Status = snap.Status
	asset.AcquisitionDate = snap.AcquisitionDate
}
