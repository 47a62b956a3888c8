package views

import (
	"slices"

	"cerealdash/internal/engine"
	"cerealdash/internal/models"
)

// CheckboxPanel mirrors the manufacturer and shelf checkboxes of the client.
type CheckboxPanel struct {
	manufacturers map[string]bool
	shelves       map[int]bool
}

func NewCheckboxPanel() *CheckboxPanel {
	return &CheckboxPanel{manufacturers: map[string]bool{}, shelves: map[int]bool{}}
}

// Set replaces the checked boxes.
func (p *CheckboxPanel) Set(f engine.CheckboxFilter) {
	p.Clear()
	for _, m := range f.Manufacturers {
		p.manufacturers[m] = true
	}
	for _, s := range f.Shelves {
		p.shelves[s] = true
	}
}

func (p *CheckboxPanel) Clear() {
	p.manufacturers = map[string]bool{}
	p.shelves = map[int]bool{}
}

// Checked lists manufacturers in legend order and shelves ascending.
func (p *CheckboxPanel) Checked() engine.CheckboxFilter {
	f := engine.CheckboxFilter{Manufacturers: []string{}, Shelves: []int{}}
	for _, code := range models.ManufacturerCodes {
		if p.manufacturers[code] {
			f.Manufacturers = append(f.Manufacturers, code)
		}
	}
	var extra []string
	for code := range p.manufacturers {
		if !slices.Contains(models.ManufacturerCodes, code) {
			extra = append(extra, code)
		}
	}
	slices.Sort(extra)
	f.Manufacturers = append(f.Manufacturers, extra...)

	for s := range p.shelves {
		f.Shelves = append(f.Shelves, s)
	}
	slices.Sort(f.Shelves)
	return f
}
