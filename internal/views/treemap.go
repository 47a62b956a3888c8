package views

import (
	"sort"

	"cerealdash/internal/coordinator"
	"cerealdash/internal/models"
)

type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

func (r Rect) W() float64 { return r.X1 - r.X0 }
func (r Rect) H() float64 { return r.Y1 - r.Y0 }

func (r Rect) inset(p float64) Rect {
	out := Rect{X0: r.X0 + p, Y0: r.Y0 + p, X1: r.X1 - p, Y1: r.Y1 - p}
	if out.X1 < out.X0 {
		mid := (r.X0 + r.X1) / 2
		out.X0, out.X1 = mid, mid
	}
	if out.Y1 < out.Y0 {
		mid := (r.Y0 + r.Y1) / 2
		out.Y0, out.Y1 = mid, mid
	}
	return out
}

type TreemapLeaf struct {
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer"`
	Value        float64 `json:"value"`
	Sugars       float64 `json:"sugars"`
	Fiber        float64 `json:"fiber"`
	Shelf        int     `json:"shelf"`
	Rect         Rect    `json:"rect"`
	Highlighted  bool    `json:"highlighted"`
}

type TreemapGroup struct {
	Code   string        `json:"code"`
	Name   string        `json:"name"`
	Value  float64       `json:"value"`
	Rect   Rect          `json:"rect"`
	Leaves []TreemapLeaf `json:"leaves"`
}

type TreemapModel struct {
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Groups []TreemapGroup `json:"groups"`
	Join   Join           `json:"join"`
}

// TreemapView groups cereals by manufacturer and sizes each cell by calories.
type TreemapView struct {
	width, height, padding float64

	groups   []TreemapGroup
	selected models.KeySet
	join     Join
	handler  coordinator.SelectHandler
}

func NewTreemapView(width, height, padding float64) *TreemapView {
	return &TreemapView{width: width, height: height, padding: padding, selected: models.KeySet{}}
}

func (t *TreemapView) BindSelect(h coordinator.SelectHandler) {
	t.handler = h
}

func (t *TreemapView) Render(initial []models.Record) {
	t.groups = t.layout(initial)
	t.join = joinKeys(nil, t.leafKeys())
}

func (t *TreemapView) UpdateData(filtered []models.Record) {
	prev := t.leafKeys()
	t.groups = t.layout(filtered)
	t.join = joinKeys(prev, t.leafKeys())
}

func (t *TreemapView) Highlight(selected models.KeySet) {
	t.selected = selected
}

func (t *TreemapView) Reset() {
	t.selected = models.KeySet{}
}

// Click forwards a click on a leaf cell. Group cells are not selectable.
func (t *TreemapView) Click(key string) bool {
	if t.handler == nil {
		return false
	}
	for _, k := range t.leafKeys() {
		if k == key {
			t.handler.OnSelect(key)
			return true
		}
	}
	return false
}

func (t *TreemapView) Model() TreemapModel {
	m := TreemapModel{Width: t.width, Height: t.height, Groups: make([]TreemapGroup, len(t.groups)), Join: t.join}
	for i, g := range t.groups {
		g.Leaves = append([]TreemapLeaf(nil), g.Leaves...)
		for j := range g.Leaves {
			g.Leaves[j].Highlighted = t.selected.Has(g.Leaves[j].Name)
		}
		m.Groups[i] = g
	}
	return m
}

func (t *TreemapView) leafKeys() []string {
	var keys []string
	for _, g := range t.groups {
		for _, l := range g.Leaves {
			keys = append(keys, l.Name)
		}
	}
	return keys
}

// layout builds manufacturer -> cereal hierarchy ordered by value and places
// it with the squarified algorithm.
func (t *TreemapView) layout(records []models.Record) []TreemapGroup {
	// 1. Group by manufacturer, first appearance order
	var groups []TreemapGroup
	pos := make(map[string]int)
	for _, r := range records {
		i, ok := pos[r.Manufacturer]
		if !ok {
			i = len(groups)
			pos[r.Manufacturer] = i
			groups = append(groups, TreemapGroup{Code: r.Manufacturer, Name: models.ManufacturerName(r.Manufacturer)})
		}
		groups[i].Value += max(r.Calories, 0)
		groups[i].Leaves = append(groups[i].Leaves, TreemapLeaf{
			Name:         r.Name,
			Manufacturer: r.Manufacturer,
			Value:        max(r.Calories, 0),
			Sugars:       r.Sugars,
			Fiber:        r.Fiber,
			Shelf:        r.Shelf,
		})
	}

	// 2. Sort every level by value
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	for _, g := range groups {
		sort.SliceStable(g.Leaves, func(i, j int) bool { return g.Leaves[i].Value > g.Leaves[j].Value })
	}

	// 3. Place
	box := Rect{X1: t.width, Y1: t.height}.inset(t.padding)
	values := make([]float64, len(groups))
	for i := range groups {
		values[i] = groups[i].Value
	}
	for i, r := range squarify(values, box) {
		groups[i].Rect = r
		inner := r.inset(t.padding)
		leafValues := make([]float64, len(groups[i].Leaves))
		for j := range groups[i].Leaves {
			leafValues[j] = groups[i].Leaves[j].Value
		}
		for j, lr := range squarify(leafValues, inner) {
			groups[i].Leaves[j].Rect = lr.inset(t.padding / 2)
		}
	}
	return groups
}

// squarify lays values (sorted descending) out in box, keeping cell aspect
// ratios close to 1. Non-positive values get an empty rect at the box origin.
func squarify(values []float64, box Rect) []Rect {
	out := make([]Rect, len(values))
	for i := range out {
		out[i] = Rect{X0: box.X0, Y0: box.Y0, X1: box.X0, Y1: box.Y0}
	}
	n := 0
	total := 0.0
	for n < len(values) && values[n] > 0 {
		total += values[n]
		n++
	}
	if total <= 0 || box.W() <= 0 || box.H() <= 0 {
		return out
	}

	scale := box.W() * box.H() / total
	areas := make([]float64, n)
	for i := 0; i < n; i++ {
		areas[i] = values[i] * scale
	}

	for i := 0; i < n; {
		side := min(box.W(), box.H())
		j := i + 1
		for j < n && worstRatio(areas[i:j+1], side) <= worstRatio(areas[i:j], side) {
			j++
		}
		rowSum := 0.0
		for _, a := range areas[i:j] {
			rowSum += a
		}
		if box.W() >= box.H() {
			colW := rowSum / box.H()
			y := box.Y0
			for k := i; k < j; k++ {
				h := areas[k] / colW
				out[k] = Rect{X0: box.X0, Y0: y, X1: box.X0 + colW, Y1: y + h}
				y += h
			}
			box.X0 += colW
		} else {
			rowH := rowSum / box.W()
			x := box.X0
			for k := i; k < j; k++ {
				w := areas[k] / rowH
				out[k] = Rect{X0: x, Y0: box.Y0, X1: x + w, Y1: box.Y0 + rowH}
				x += w
			}
			box.Y0 += rowH
		}
		i = j
	}
	return out
}

func worstRatio(row []float64, side float64) float64 {
	sum, hi, lo := 0.0, row[0], row[0]
	for _, a := range row {
		sum += a
		hi = max(hi, a)
		lo = min(lo, a)
	}
	s2 := sum * sum
	w2 := side * side
	return max(w2*hi/s2, s2/(w2*lo))
}
