package models

import (
	"math"
	"strconv"
)

// Record is one cereal product. Name is the join key across every view.
type Record struct {
	Name          string  `json:"name"`
	Manufacturer  string  `json:"manufacturer"`
	Type          string  `json:"type"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Sodium        float64 `json:"sodium"`
	Fiber         float64 `json:"fiber"`
	Carbohydrates float64 `json:"carbohydrates"`
	Sugars        float64 `json:"sugars"`
	Shelf         int     `json:"shelf"`
	Potassium     float64 `json:"potassium"`
	Vitamins      float64 `json:"vitamins"`
	Weight        float64 `json:"weight"`
	Cups          float64 `json:"cups"`
}

// Axis names of the parallel-coordinates plot, in display order.
const (
	DimCalories      = "Calories"
	DimProtein       = "Protein"
	DimFat           = "Fat"
	DimSodium        = "Sodium"
	DimFiber         = "Fiber"
	DimCarbohydrates = "Carbohydrates"
	DimSugars        = "Sugars"
)

var Dimensions = []string{DimCalories, DimProtein, DimFat, DimSodium, DimFiber, DimCarbohydrates, DimSugars}

// IsDimension reports whether name is a brushable axis.
func IsDimension(name string) bool {
	for _, d := range Dimensions {
		if d == name {
			return true
		}
	}
	return false
}

// Value returns the numeric value of a brushable dimension.
func (r *Record) Value(dim string) (float64, bool) {
	switch dim {
	case DimCalories:
		return r.Calories, true
	case DimProtein:
		return r.Protein, true
	case DimFat:
		return r.Fat, true
	case DimSodium:
		return r.Sodium, true
	case DimFiber:
		return r.Fiber, true
	case DimCarbohydrates:
		return r.Carbohydrates, true
	case DimSugars:
		return r.Sugars, true
	}
	return 0, false
}

// NumberRange is an inclusive [Min, Max] interval.
type NumberRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Normalize swaps the ends when they arrive inverted (screen space runs top-down).
func (n NumberRange) Normalize() NumberRange {
	if n.Min > n.Max {
		return NumberRange{Min: n.Max, Max: n.Min}
	}
	return n
}

func (n NumberRange) Contains(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	return v >= n.Min && v <= n.Max
}

// KeySet is a read-only snapshot of record names.
type KeySet map[string]struct{}

func NewKeySet(keys ...string) KeySet {
	ks := make(KeySet, len(keys))
	for _, k := range keys {
		ks[k] = struct{}{}
	}
	return ks
}

func (ks KeySet) Has(key string) bool {
	_, ok := ks[key]
	return ok
}

var manufacturerNames = map[string]string{
	"G": "General Mills",
	"K": "Kelloggs",
	"P": "Post",
	"Q": "Quaker",
	"R": "Ralston",
	"N": "Nabisco",
	"A": "American Home",
}

// ManufacturerCodes lists the known manufacturer codes in legend order.
var ManufacturerCodes = []string{"G", "K", "P", "Q", "R", "N", "A"}

// ManufacturerName returns the full name for a code, or the code itself.
func ManufacturerName(code string) string {
	if n, ok := manufacturerNames[code]; ok {
		return n
	}
	return code
}

func TypeName(code string) string {
	switch code {
	case "C":
		return "Cold"
	case "H":
		return "Hot"
	}
	return code
}

// ShelfDescription returns a label for a shelf position.
func ShelfDescription(shelf int) string {
	switch shelf {
	case 1:
		return "Bottom Shelf (Child Eye Level)"
	case 2:
		return "Middle Shelf"
	case 3:
		return "Top Shelf (Adult Eye Level)"
	}
	return "Shelf " + strconv.Itoa(shelf)
}
