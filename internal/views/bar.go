package views

import (
	"slices"
	"sort"

	"cerealdash/internal/coordinator"
	"cerealdash/internal/models"
)

const DefaultBarLimit = 20

type BarItem struct {
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer"`
	Sugars       float64 `json:"sugars"`
	Fiber        float64 `json:"fiber"`
	Highlighted  bool    `json:"highlighted"`
}

type BarModel struct {
	Items []BarItem `json:"items"`
	YMax  float64   `json:"y_max"`
	Join  Join      `json:"join"`
}

// BarView is the dual sugar/fiber bar chart of the sweetest cereals.
type BarView struct {
	limit    int
	sorted   []models.Record
	selected models.KeySet
	join     Join
	handler  coordinator.SelectHandler
}

func NewBarView(limit int) *BarView {
	if limit <= 0 {
		limit = DefaultBarLimit
	}
	return &BarView{limit: limit, selected: models.KeySet{}}
}

func (b *BarView) BindSelect(h coordinator.SelectHandler) {
	b.handler = h
}

func (b *BarView) Render(initial []models.Record) {
	b.sorted = sortBySugars(initial)
	b.join = joinKeys(nil, names(b.top()))
}

func (b *BarView) UpdateData(filtered []models.Record) {
	prev := names(b.top())
	b.sorted = sortBySugars(filtered)
	b.join = joinKeys(prev, names(b.top()))
}

func (b *BarView) Highlight(selected models.KeySet) {
	b.selected = selected
}

func (b *BarView) Reset() {
	b.selected = models.KeySet{}
}

// Click forwards a bar click to the bound handler. Only bars currently on
// screen can be clicked.
func (b *BarView) Click(key string) bool {
	if b.handler == nil || !slices.Contains(names(b.top()), key) {
		return false
	}
	b.handler.OnSelect(key)
	return true
}

func (b *BarView) Model() BarModel {
	top := b.top()
	m := BarModel{Items: make([]BarItem, 0, len(top)), Join: b.join}
	for _, r := range top {
		m.Items = append(m.Items, BarItem{
			Name:         r.Name,
			Manufacturer: r.Manufacturer,
			Sugars:       r.Sugars,
			Fiber:        r.Fiber,
			Highlighted:  b.selected.Has(r.Name),
		})
	}
	for _, r := range b.sorted {
		m.YMax = max(m.YMax, r.Sugars, r.Fiber)
	}
	return m
}

func (b *BarView) top() []models.Record {
	return b.sorted[:min(b.limit, len(b.sorted))]
}

func sortBySugars(records []models.Record) []models.Record {
	out := slices.Clone(records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sugars > out[j].Sugars })
	return out
}
