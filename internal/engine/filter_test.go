package engine

import (
	"slices"
	"testing"

	"cerealdash/internal/models"
)

// A(G,1) B(K,2) C(G,2) with calories 110, 90, 140.
func scenarioDataset() []models.Record {
	return []models.Record{
		{Name: "A", Manufacturer: "G", Shelf: 1, Calories: 110, Sugars: 10, Fiber: 1},
		{Name: "B", Manufacturer: "K", Shelf: 2, Calories: 90, Sugars: 3, Fiber: 4},
		{Name: "C", Manufacturer: "G", Shelf: 2, Calories: 140, Sugars: 7, Fiber: 2},
	}
}

func namesOf(records []models.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestComputeFilteredEmptyFiltersReturnAll(t *testing.T) {
	data := scenarioDataset()
	got := ComputeFiltered(data, CheckboxFilter{})
	if !slices.Equal(namesOf(got), []string{"A", "B", "C"}) {
		t.Fatalf("Expected full dataset in order, got %v", namesOf(got))
	}
	got[0].Name = "mutated"
	if data[0].Name != "A" {
		t.Error("ComputeFiltered result aliases the input")
	}
}

func TestComputeFilteredAndAcrossSets(t *testing.T) {
	got := ComputeFiltered(scenarioDataset(), CheckboxFilter{Manufacturers: []string{"G"}, Shelves: []int{2}})
	if !slices.Equal(namesOf(got), []string{"C"}) {
		t.Fatalf("Expected {C}, got %v", namesOf(got))
	}
}

func TestComputeFilteredSingleSet(t *testing.T) {
	got := ComputeFiltered(scenarioDataset(), CheckboxFilter{Manufacturers: []string{"G"}})
	if !slices.Equal(namesOf(got), []string{"A", "C"}) {
		t.Errorf("manufacturer only: got %v", namesOf(got))
	}
	got = ComputeFiltered(scenarioDataset(), CheckboxFilter{Shelves: []int{2, 3}})
	if !slices.Equal(namesOf(got), []string{"B", "C"}) {
		t.Errorf("shelf only: got %v", namesOf(got))
	}
	got = ComputeFiltered(scenarioDataset(), CheckboxFilter{Manufacturers: []string{"Q"}})
	if len(got) != 0 {
		t.Errorf("unmatched manufacturer: got %v", namesOf(got))
	}
}

func TestComputeFilteredIdempotent(t *testing.T) {
	data := scenarioDataset()
	filters := []CheckboxFilter{
		{},
		{Manufacturers: []string{"G"}},
		{Shelves: []int{2}},
		{Manufacturers: []string{"G", "K"}, Shelves: []int{1}},
		{Manufacturers: []string{"Q"}, Shelves: []int{3}},
	}
	for _, f := range filters {
		once := ComputeFiltered(data, f)
		twice := ComputeFiltered(once, f)
		if !slices.Equal(namesOf(once), namesOf(twice)) {
			t.Errorf("%+v: %v != %v", f, namesOf(once), namesOf(twice))
		}
	}
}

func TestBrushApply(t *testing.T) {
	b := NewBrushPredicates()
	b.Set(models.DimCalories, models.NumberRange{Min: 100, Max: 150})
	got := b.Apply(scenarioDataset())
	if !slices.Equal(namesOf(got), []string{"A", "C"}) {
		t.Fatalf("Expected {A, C}, got %v", namesOf(got))
	}
}

func TestBrushRangeIsInclusiveAndNormalized(t *testing.T) {
	b := NewBrushPredicates()
	b.Set(models.DimCalories, models.NumberRange{Min: 140, Max: 90})
	got := b.Apply(scenarioDataset())
	if !slices.Equal(namesOf(got), []string{"A", "B", "C"}) {
		t.Fatalf("Expected inverted inclusive range to keep all, got %v", namesOf(got))
	}
}

func TestBrushIntersectsDimensions(t *testing.T) {
	b := NewBrushPredicates()
	b.Set(models.DimCalories, models.NumberRange{Min: 100, Max: 150})
	b.Set(models.DimSugars, models.NumberRange{Min: 0, Max: 8})
	if got := namesOf(b.Apply(scenarioDataset())); !slices.Equal(got, []string{"C"}) {
		t.Fatalf("Expected {C}, got %v", got)
	}
}

func TestBrushClearDimensionKeepsOthers(t *testing.T) {
	b := NewBrushPredicates()
	b.Set(models.DimCalories, models.NumberRange{Min: 100, Max: 150})
	b.Set(models.DimSugars, models.NumberRange{Min: 0, Max: 5})
	b.Clear(models.DimCalories)

	if !b.Active() || len(b) != 1 {
		t.Fatalf("Expected only the sugars brush to remain, got %v", b)
	}
	if got := namesOf(b.Apply(scenarioDataset())); !slices.Equal(got, []string{"B"}) {
		t.Fatalf("Expected {B} from sugars alone, got %v", got)
	}
}

func TestBrushUnknownDimensionIgnored(t *testing.T) {
	b := NewBrushPredicates()
	if b.Set("Shelf", models.NumberRange{Min: 1, Max: 1}) {
		t.Fatal("Shelf is not a brushable axis")
	}
	if b.Active() {
		t.Fatal("unknown dimension must not activate the brush")
	}
}

func TestBrushDimensionsInAxisOrder(t *testing.T) {
	b := NewBrushPredicates()
	b.Set(models.DimSugars, models.NumberRange{Max: 1})
	b.Set(models.DimCalories, models.NumberRange{Max: 1})
	b.Set(models.DimFat, models.NumberRange{Max: 1})
	want := []string{models.DimCalories, models.DimFat, models.DimSugars}
	if got := b.Dimensions(); !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

// Preserved behavior, questionable by design: an active brush replaces the
// checkbox result instead of composing with it.
func TestEffectiveSubsetBrushSupersedesCheckboxes(t *testing.T) {
	data := scenarioDataset()
	f := CheckboxFilter{Manufacturers: []string{"K"}}
	b := NewBrushPredicates()

	if got := namesOf(EffectiveSubset(data, f, b)); !slices.Equal(got, []string{"B"}) {
		t.Fatalf("Without brush expected checkbox result {B}, got %v", got)
	}

	b.Set(models.DimCalories, models.NumberRange{Min: 100, Max: 150})
	if got := namesOf(EffectiveSubset(data, f, b)); !slices.Equal(got, []string{"A", "C"}) {
		t.Fatalf("With brush expected {A, C} ignoring checkboxes, got %v", got)
	}
}
