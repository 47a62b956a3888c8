package engine

import (
	"slices"
	"sort"

	"cerealdash/internal/models"
)

// CheckboxFilter is the manufacturer/shelf predicate. An empty set means
// no restriction on that field.
type CheckboxFilter struct {
	Manufacturers []string `json:"manufacturers" schema:"mfr"`
	Shelves       []int    `json:"shelves" schema:"shelf"`
}

func (f CheckboxFilter) Empty() bool {
	return len(f.Manufacturers) == 0 && len(f.Shelves) == 0
}

func (f CheckboxFilter) Matches(r *models.Record) bool {
	if len(f.Manufacturers) > 0 && !slices.Contains(f.Manufacturers, r.Manufacturer) {
		return false
	}
	if len(f.Shelves) > 0 && !slices.Contains(f.Shelves, r.Shelf) {
		return false
	}
	return true
}

// ComputeFiltered returns the records matching f in input order.
// The input slice is never modified.
func ComputeFiltered(dataset []models.Record, f CheckboxFilter) []models.Record {
	if f.Empty() {
		return slices.Clone(dataset)
	}
	out := make([]models.Record, 0, len(dataset))
	for i := range dataset {
		if f.Matches(&dataset[i]) {
			out = append(out, dataset[i])
		}
	}
	return out
}

// BrushPredicates maps a parallel axis to its brushed range.
type BrushPredicates map[string]models.NumberRange

func NewBrushPredicates() BrushPredicates {
	return make(BrushPredicates)
}

// Set stores the range for dim. Unknown dimensions are ignored.
func (b BrushPredicates) Set(dim string, r models.NumberRange) bool {
	if !models.IsDimension(dim) {
		return false
	}
	b[dim] = r.Normalize()
	return true
}

func (b BrushPredicates) Clear(dim string) {
	delete(b, dim)
}

func (b BrushPredicates) ClearAll() {
	for k := range b {
		delete(b, k)
	}
}

func (b BrushPredicates) Active() bool {
	return len(b) > 0
}

// Dimensions returns the brushed axes in axis order.
func (b BrushPredicates) Dimensions() []string {
	dims := make([]string, 0, len(b))
	for d := range b {
		dims = append(dims, d)
	}
	order := func(d string) int { return slices.Index(models.Dimensions, d) }
	sort.Slice(dims, func(i, j int) bool { return order(dims[i]) < order(dims[j]) })
	return dims
}

// Matches is true when every brushed range holds for r.
func (b BrushPredicates) Matches(r *models.Record) bool {
	for dim, rng := range b {
		v, ok := r.Value(dim)
		if !ok || !rng.Contains(v) {
			return false
		}
	}
	return true
}

// Apply returns the records inside every brushed range, in input order.
func (b BrushPredicates) Apply(dataset []models.Record) []models.Record {
	out := make([]models.Record, 0, len(dataset))
	for i := range dataset {
		if b.Matches(&dataset[i]) {
			out = append(out, dataset[i])
		}
	}
	return out
}

func (b BrushPredicates) Clone() BrushPredicates {
	c := make(BrushPredicates, len(b))
	for k, v := range b {
		c[k] = v
	}
	return c
}

// EffectiveSubset is the filtered subset shown by the bar and treemap views.
// An active brush replaces the checkbox result instead of narrowing it.
func EffectiveSubset(dataset []models.Record, f CheckboxFilter, b BrushPredicates) []models.Record {
	if b.Active() {
		return b.Apply(dataset)
	}
	return ComputeFiltered(dataset, f)
}
