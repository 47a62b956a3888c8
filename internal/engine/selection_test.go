package engine

import (
	"testing"

	"cerealdash/internal/models"
)

func TestSelectionToggleIsItsOwnInverse(t *testing.T) {
	s := NewSelectionSet()
	s.Toggle("A")
	before := s.Snapshot()

	if !s.Toggle("B") {
		t.Fatal("first toggle should select")
	}
	if s.Toggle("B") {
		t.Fatal("second toggle should deselect")
	}

	after := s.Snapshot()
	if len(before) != len(after) || !after.Has("A") || after.Has("B") {
		t.Fatalf("Expected %v after double toggle, got %v", before, after)
	}
}

func TestSelectionClear(t *testing.T) {
	s := NewSelectionSet()
	s.Toggle("A")
	s.Toggle("B")
	s.Clear()
	if s.Len() != 0 || s.Contains("A") {
		t.Fatalf("Expected empty selection, got %v", s.Snapshot())
	}
}

func TestSelectionSnapshotIsDetached(t *testing.T) {
	s := NewSelectionSet()
	s.Toggle("A")
	snap := s.Snapshot()
	s.Toggle("B")
	if snap.Has("B") {
		t.Error("snapshot changed after a later toggle")
	}
	snap["C"] = struct{}{}
	if s.Contains("C") {
		t.Error("writing the snapshot changed the selection")
	}
}

func TestDatasetStore(t *testing.T) {
	ds := NewDatasetStore([]models.Record{{Name: "A"}, {Name: "B", Calories: 1}, {Name: "A", Calories: 99}})
	if ds.Len() != 2 {
		t.Fatalf("Expected duplicate name dropped, got %d records", ds.Len())
	}
	if r, ok := ds.Lookup("A"); !ok || r.Calories != 0 {
		t.Errorf("Expected first A to win, got %+v", r)
	}
	if ds.Has("Z") {
		t.Error("Z should not exist")
	}
	got := ds.Select(models.NewKeySet("B", "A", "Z"))
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "B" {
		t.Errorf("Expected dataset order [A B], got %v", namesOf(got))
	}
}
