package views

import (
	"cerealdash/internal/coordinator"
	"cerealdash/internal/engine"
	"cerealdash/internal/models"
)

type Axis struct {
	Dimension string              `json:"dimension"`
	Min       float64             `json:"min"`
	Max       float64             `json:"max"`
	Brush     *models.NumberRange `json:"brush,omitempty"`
}

type ParallelLine struct {
	Name         string    `json:"name"`
	Manufacturer string    `json:"manufacturer"`
	Values       []float64 `json:"values"`
	Highlighted  bool      `json:"highlighted"`
	Brushed      bool      `json:"brushed"`
}

type ParallelModel struct {
	Axes  []Axis         `json:"axes"`
	Lines []ParallelLine `json:"lines"`
	Join  Join           `json:"join"`
}

// ParallelView draws one polyline per cereal across the nutrient axes and
// turns axis drags into brush gestures.
type ParallelView struct {
	data     []models.Record
	axes     []Axis
	regions  engine.BrushPredicates
	selected models.KeySet
	join     Join
	handler  coordinator.BrushHandler
}

func NewParallelView() *ParallelView {
	return &ParallelView{regions: engine.NewBrushPredicates(), selected: models.KeySet{}}
}

func (p *ParallelView) BindBrush(h coordinator.BrushHandler) {
	p.handler = h
}

func (p *ParallelView) Render(initial []models.Record) {
	p.data = append([]models.Record(nil), initial...)
	p.axes = extents(p.data)
	p.join = joinKeys(nil, names(p.data))
}

func (p *ParallelView) UpdateData(filtered []models.Record) {
	prev := names(p.data)
	p.data = append([]models.Record(nil), filtered...)
	p.axes = extents(p.data)
	p.join = joinKeys(prev, names(p.data))
}

func (p *ParallelView) Highlight(selected models.KeySet) {
	p.selected = selected
}

func (p *ParallelView) Reset() {
	p.regions.ClearAll()
	p.selected = models.KeySet{}
}

// Brush records the gesture for display and hands it to the bound handler.
func (p *ParallelView) Brush(ev coordinator.BrushEvent) {
	switch {
	case ev.Phase == coordinator.BrushStart && ev.ClearAll:
		p.regions.ClearAll()
	case ev.Phase == coordinator.BrushStart:
	case ev.Range == nil:
		p.regions.Clear(ev.Dimension)
	default:
		p.regions.Set(ev.Dimension, *ev.Range)
	}
	if p.handler != nil {
		p.handler.OnBrush(ev)
	}
}

func (p *ParallelView) Model() ParallelModel {
	m := ParallelModel{
		Axes:  make([]Axis, len(p.axes)),
		Lines: make([]ParallelLine, 0, len(p.data)),
		Join:  p.join,
	}
	for i, a := range p.axes {
		if r, ok := p.regions[a.Dimension]; ok {
			a.Brush = &r
		}
		m.Axes[i] = a
	}
	for i := range p.data {
		r := &p.data[i]
		line := ParallelLine{
			Name:         r.Name,
			Manufacturer: r.Manufacturer,
			Values:       make([]float64, len(models.Dimensions)),
			Highlighted:  p.selected.Has(r.Name),
			Brushed:      p.regions.Active() && p.regions.Matches(r),
		}
		for j, d := range models.Dimensions {
			line.Values[j], _ = r.Value(d)
		}
		m.Lines = append(m.Lines, line)
	}
	return m
}

func extents(records []models.Record) []Axis {
	axes := make([]Axis, len(models.Dimensions))
	for i, d := range models.Dimensions {
		axes[i].Dimension = d
		for j := range records {
			v, _ := records[j].Value(d)
			if j == 0 || v < axes[i].Min {
				axes[i].Min = v
			}
			if j == 0 || v > axes[i].Max {
				axes[i].Max = v
			}
		}
	}
	return axes
}
