package assets

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"asset_manager/internal/audit"
	"asset_manager/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	// A single connection so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	err = gdb.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Location{},
		&models.AssetType{},
		&models.Asset{},
		&models.ChangeLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func seedAsset(t *testing.T, gdb *gorm.DB) models.Asset {
	t.Helper()

	user := models.User{
		Username: "jdoe", Email: "jdoe@example.com",
		FirstName: "Jane", LastName: "Doe", PasswordHash: "x",
	}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	for _, loc := range []string{"HQ", "Warehouse"} {
		if err := gdb.Create(&models.Location{Name: loc}).Error; err != nil {
			t.Fatalf("seed location: %v", err)
		}
	}
	typ := models.AssetType{Name: "Laptop", Category: "IT equipment"}
	if err := gdb.Create(&typ).Error; err != nil {
		t.Fatalf("seed type: %v", err)
	}

	asset := models.Asset{
		Name:            "Laptop-7",
		SerialNumber:    445566,
		TypeID:          typ.ID,
		ResponsibleID:   user.ID,
		LocationID:      1,
		Status:          models.StatusActive,
		Cost:            1000,
		AcquisitionDate: time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC),
		CreatedBy:       user.ID,
	}
	if err := gdb.Create(&asset).Error; err != nil {
		t.Fatalf("seed asset: %v", err)
	}
	return asset
}

func changeLogRows(t *testing.T, gdb *gorm.DB, assetID uint) []models.ChangeLog {
	t.Helper()
	var rows []models.ChangeLog
	if err := gdb.Where("asset_id = ?", assetID).Order("id ASC").Find(&rows).Error; err != nil {
		t.Fatalf("load change_log: %v", err)
	}
	return rows
}

func TestUpdateRecordsChangeLog(t *testing.T) {
	gdb := newTestDB(t)
	asset := seedAsset(t, gdb)
	svc := NewService(gdb)

	actor := Actor{ID: asset.CreatedBy, Role: models.RoleAdmin}
	cost := 1500.0
	updated, err := svc.Update(context.Background(), asset.ID, actor, UpdatePatch{Cost: &cost}, "recalibration")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Cost != 1500 {
		t.Errorf("cost = %v, want 1500", updated.Cost)
	}

	var persisted models.Asset
	if err := gdb.First(&persisted, asset.ID).Error; err != nil {
		t.Fatalf("reload asset: %v", err)
	}
	if persisted.Cost != 1500 {
		t.Errorf("persisted cost = %v, want 1500", persisted.Cost)
	}

	rows := changeLogRows(t, gdb, asset.ID)
	if len(rows) != 1 {
		t.Fatalf("change_log rows = %d, want 1", len(rows))
	}
	entry := rows[0]
	if entry.ChangeType != models.ChangeUpdate {
		t.Errorf("change_type = %q, want update", entry.ChangeType)
	}
	if entry.ChangeReason != "recalibration" {
		t.Errorf("change_reason = %q, want recalibration", entry.ChangeReason)
	}
	if entry.OldCost != 1000 {
		t.Errorf("old_cost = %v, want 1000", entry.OldCost)
	}
	if entry.OldStatus != models.StatusActive {
		t.Errorf("old_status = %q, want active", entry.OldStatus)
	}
	if entry.UserID != actor.ID {
		t.Errorf("user_id = %d, want %d", entry.UserID, actor.ID)
	}

	var changes []audit.FieldChange
	if err := json.Unmarshal(entry.Changes, &changes); err != nil {
		t.Fatalf("unmarshal changes: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("changes = %v, want single cost entry", changes)
	}
	if changes[0].Field != "cost" || changes[0].OldValue != 1000.0 || changes[0].NewValue != 1500.0 {
		t.Errorf("changes[0] = %+v, want cost 1000 -> 1500", changes[0])
	}
}

func TestUpdateSameValuesIsNoOp(t *testing.T) {
	gdb := newTestDB(t)
	asset := seedAsset(t, gdb)
	svc := NewService(gdb)
	actor := Actor{ID: asset.CreatedBy, Role: models.RoleAdmin}

	cost := asset.Cost
	_, err := svc.Update(context.Background(), asset.ID, actor, UpdatePatch{Cost: &cost}, "")
	if !errors.Is(err, ErrNoChanges) {
		t.Fatalf("err = %v, want ErrNoChanges", err)
	}

	_, err = svc.Update(context.Background(), asset.ID, actor, UpdatePatch{}, "")
	if !errors.Is(err, ErrNoChanges) {
		t.Fatalf("empty patch err = %v, want ErrNoChanges", err)
	}

	if rows := changeLogRows(t, gdb, asset.ID); len(rows) != 0 {
		t.Errorf("change_log rows = %d, want 0", len(rows))
	}
}

func TestManagerMayRelocateButNotChangeStatus(t *testing.T) {
	gdb := newTestDB(t)
	asset := seedAsset(t, gdb)
	svc := NewService(gdb)
	manager := Actor{ID: asset.CreatedBy, Role: models.RoleManager}

	location := uint(2)
	if _, err := svc.Update(context.Background(), asset.ID, manager, UpdatePatch{LocationID: &location}, "moved to warehouse"); err != nil {
		t.Fatalf("manager relocating: %v", err)
	}

	status := models.StatusInactive
	_, err := svc.Update(context.Background(), asset.ID, manager, UpdatePatch{Status: &status}, "")
	var forbidden *ForbiddenTransitionError
	if !errors.As(err, &forbidden) {
		t.Fatalf("manager changing status: err = %v, want ForbiddenTransitionError", err)
	}
	if forbidden.Field != "status" {
		t.Errorf("field = %q, want status", forbidden.Field)
	}

	var persisted models.Asset
	if err := gdb.First(&persisted, asset.ID).Error; err != nil {
		t.Fatalf("reload asset: %v", err)
	}
	if persisted.Status != models.StatusActive {
		t.Errorf("status = %q, want active after rejected mutation", persisted.Status)
	}
	if rows := changeLogRows(t, gdb, asset.ID); len(rows) != 1 {
		t.Errorf("change_log rows = %d, want 1 (relocation only)", len(rows))
	}
}

func TestUpdateMissingActor(t *testing.T) {
	gdb := newTestDB(t)
	asset := seedAsset(t, gdb)
	svc := NewService(gdb)

	cost := 1.0
	_, err := svc.Update(context.Background(), asset.ID, Actor{}, UpdatePatch{Cost: &cost}, "")
	if !errors.Is(err, ErrMissingAuditContext) {
		t.Fatalf("err = %v, want ErrMissingAuditContext", err)
	}
	if err := svc.Delete(context.Background(), asset.ID, Actor{}, ""); !errors.Is(err, ErrMissingAuditContext) {
		t.Fatalf("delete err = %v, want ErrMissingAuditContext", err)
	}
}

func TestUpdateUnknownAsset(t *testing.T) {
	gdb := newTestDB(t)
	seedAsset(t, gdb)
	svc := NewService(gdb)
	actor := Actor{ID: 1, Role: models.RoleAdmin}

	cost := 5.0
	_, err := svc.Update(context.Background(), 9999, actor, UpdatePatch{Cost: &cost}, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteWritesDeleteEvent(t *testing.T) {
	gdb := newTestDB(t)
	asset := seedAsset(t, gdb)
	svc := NewService(gdb)
	actor := Actor{ID: asset.CreatedBy, Role: models.RoleAdmin}

	if err := svc.Delete(context.Background(), asset.ID, actor, ""); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var gone models.Asset
	if err := gdb.First(&gone, asset.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("soft-deleted asset still visible, err = %v", err)
	}
	var retained models.Asset
	if err := gdb.Unscoped().First(&retained, asset.ID).Error; err != nil {
		t.Fatalf("soft-deleted asset physically removed: %v", err)
	}
	if !retained.DeletedAt.Valid {
		t.Error("deleted_at not set")
	}

	rows := changeLogRows(t, gdb, asset.ID)
	if len(rows) != 1 {
		t.Fatalf("change_log rows = %d, want 1", len(rows))
	}
	entry := rows[0]
	if entry.ChangeType != models.ChangeDelete {
		t.Errorf("change_type = %q, want delete", entry.ChangeType)
	}
	if entry.ChangeReason != audit.DefaultReason {
		t.Errorf("change_reason = %q, want %q", entry.ChangeReason, audit.DefaultReason)
	}
	if entry.OldName != "Laptop-7" || entry.OldStatus != models.StatusActive || entry.OldCost != 1000 {
		t.Errorf("pre-image = %q/%q/%v, want Laptop-7/active/1000", entry.OldName, entry.OldStatus, entry.OldCost)
	}

	var changes []audit.FieldChange
	if err := json.Unmarshal(entry.Changes, &changes); err != nil {
		t.Fatalf("unmarshal changes: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("delete diff = %v, want empty", changes)
	}

	// A soft-deleted asset is no longer updatable.
	cost := 1.0
	if _, err := svc.Update(context.Background(), asset.ID, actor, UpdatePatch{Cost: &cost}, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("update of deleted asset err = %v, want ErrNotFound", err)
	}
}

func TestAuditFailureRollsBackMutation(t *testing.T) {
	gdb := newTestDB(t)
	asset := seedAsset(t, gdb)
	svc := NewService(gdb)
	actor := Actor{ID: asset.CreatedBy, Role: models.RoleAdmin}

	// Simulate a storage fault on the audit write: without its table the
	// ChangeLog insert fails after the asset row was already updated in the
	// transaction.
	if err := gdb.Migrator().DropTable(&models.ChangeLog{}); err != nil {
		t.Fatalf("drop change_log: %v", err)
	}

	cost := 9999.0
	if _, err := svc.Update(context.Background(), asset.ID, actor, UpdatePatch{Cost: &cost}, ""); err == nil {
		t.Fatal("update succeeded without audit table, want failure")
	}

	var persisted models.Asset
	if err := gdb.First(&persisted, asset.ID).Error; err != nil {
		t.Fatalf("reload asset: %v", err)
	}
	if persisted.Cost != 1000 {
		t.Errorf("cost = %v after rollback, want 1000", persisted.Cost)
	}
}

func TestChangelogNewestFirst(t *testing.T) {
	gdb := newTestDB(t)
	asset := seedAsset(t, gdb)
	svc := NewService(gdb)
	actor := Actor{ID: asset.CreatedBy, Role: models.RoleAdmin}

	costs := []float64{1100, 1200}
	for _, cost := range costs {
		c := cost
		if _, err := svc.Update(context.Background(), asset.ID, actor, UpdatePatch{Cost: &c}, ""); err != nil {
			t.Fatalf("update to %v: %v", cost, err)
		}
	}
	if err := svc.Delete(context.Background(), asset.ID, actor, "retired"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	entries, err := svc.Changelog(context.Background(), asset.ID)
	if err != nil {
		t.Fatalf("changelog: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].ChangeType != models.ChangeDelete {
		t.Errorf("entries[0].ChangeType = %q, want delete", entries[0].ChangeType)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].ID < entries[i].ID {
			t.Errorf("entries not newest first: id %d before %d", entries[i-1].ID, entries[i].ID)
		}
	}
	if entries[1].OldCost != 1100 {
		t.Errorf("entries[1].OldCost = %v, want 1100", entries[1].OldCost)
	}
	if entries[0].User == nil || entries[0].User.FirstName != "Jane" {
		t.Errorf("actor summary not loaded: %+v", entries[0].User)
	}
}
