package audit

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"asset_manager/internal/models"
)

func baseSnapshot() Snapshot {
	return Snapshot{
		Name:            "Laptop-7",
		SerialNumber:    445566,
		TypeID:          2,
		Description:     "dev laptop",
		ResponsibleID:   4,
		LocationID:      1,
		Cost:            1200.0,
		Status:          models.StatusActive,
		AcquisitionDate: time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestDiffIdenticalSnapshots(t *testing.T) {
	prev := baseSnapshot()
	next := baseSnapshot()
	if changes := Diff(prev, next); len(changes) != 0 {
		t.Fatalf("diff of identical snapshots = %v, want empty", changes)
	}
}

func TestDiffSingleField(t *testing.T) {
	prev := baseSnapshot()
	next := prev
	next.Cost = 1500

	changes := Diff(prev, next)
	if len(changes) != 1 {
		t.Fatalf("changes = %d, want 1", len(changes))
	}
	if changes[0].Field != "cost" {
		t.Errorf("field = %q, want %q", changes[0].Field, "cost")
	}
	if changes[0].OldValue != 1200.0 || changes[0].NewValue != 1500.0 {
		t.Errorf("values = %v -> %v, want 1200 -> 1500", changes[0].OldValue, changes[0].NewValue)
	}
}

func TestDiffFixedFieldOrder(t *testing.T) {
	prev := baseSnapshot()
	next := prev
	// Mutate out of canonical order on purpose.
	next.Status = models.StatusInactive
	next.Name = "Laptop-8"
	next.LocationID = 3

	changes := Diff(prev, next)
	want := []string{"name", "location_id", "status"}
	if len(changes) != len(want) {
		t.Fatalf("changes = %d, want %d", len(changes), len(want))
	}
	for i, field := range want {
		if changes[i].Field != field {
			t.Errorf("changes[%d].Field = %q, want %q", i, changes[i].Field, field)
		}
	}
}

func TestDiffDateComparesInstants(t *testing.T) {
	prev := baseSnapshot()
	next := prev
	next.AcquisitionDate = prev.AcquisitionDate.In(time.FixedZone("UTC+2", 2*3600))

	if changes := Diff(prev, next); len(changes) != 0 {
		t.Fatalf("same instant in different zone reported as change: %v", changes)
	}

	next.AcquisitionDate = prev.AcquisitionDate.AddDate(0, 0, 1)
	changes := Diff(prev, next)
	if len(changes) != 1 || changes[0].Field != "acquisition_date" {
		t.Fatalf("changes = %v, want single acquisition_date change", changes)
	}
}

func TestDiffDeterministic(t *testing.T) {
	prev := baseSnapshot()
	next := prev
	next.Cost = 900
	next.Description = "reassigned"
	next.SerialNumber = 10

	first, err := json.Marshal(Diff(prev, next))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(Diff(prev, next))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("repeated diffs differ:\n%s\n%s", first, second)
	}
}
