package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	in := Slot{
		Label:   "morning run",
		Code:    "12 34 56",
		Presses: 100,
		Coins:   5000,
		Runtime: 360,
		Upgrade: "Drill",
	}
	stored, err := s.Put(ctx, in)
	if err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if stored.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("Put() did not assign an id")
	}

	got, err := s.Get(ctx, "morning run")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.Code != in.Code || got.Presses != in.Presses || got.Coins != in.Coins ||
		got.Runtime != in.Runtime || got.Upgrade != in.Upgrade {
		t.Errorf("Get() = %+v, want fields of %+v", got, in)
	}
	if got.ID != stored.ID {
		t.Errorf("Get() id = %s, want %s", got.ID, stored.ID)
	}
}

func TestPutReplacesLabel(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.Put(ctx, Slot{Label: "slot", Code: "old", Upgrade: "Pickaxe"}); err != nil {
		t.Fatalf("first Put() failed: %v", err)
	}
	if _, err := s.Put(ctx, Slot{Label: "slot", Code: "new", Coins: 9, Upgrade: "Factory"}); err != nil {
		t.Fatalf("second Put() failed: %v", err)
	}

	got, err := s.Get(ctx, "slot")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.Code != "new" || got.Coins != 9 || got.Upgrade != "Factory" {
		t.Errorf("Get() after replace = %+v, want the new slot", got)
	}

	slots, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(slots) != 1 {
		t.Errorf("List() returned %d slots after replace, want 1", len(slots))
	}
}

func TestGetMissing(t *testing.T) {
	s := testStore(t)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrSlotNotFound", err)
	}
}

func TestPutEmptyLabel(t *testing.T) {
	s := testStore(t)
	if _, err := s.Put(context.Background(), Slot{Code: "x"}); err == nil {
		t.Error("Put() with empty label succeeded, want error")
	}
}

func TestListAndDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, label := range []string{"a", "b", "c"} {
		if _, err := s.Put(ctx, Slot{Label: label, Code: label, Upgrade: "Pickaxe"}); err != nil {
			t.Fatalf("Put(%q) failed: %v", label, err)
		}
	}

	slots, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("List() returned %d slots, want 3", len(slots))
	}

	if err := s.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := s.Delete(ctx, "b"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("second Delete() error = %v, want ErrSlotNotFound", err)
	}

	slots, err = s.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(slots) != 2 {
		t.Errorf("List() after delete returned %d slots, want 2", len(slots))
	}
}
