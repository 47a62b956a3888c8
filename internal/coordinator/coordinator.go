package coordinator

import (
	"slices"

	"cerealdash/internal/engine"
	"cerealdash/internal/models"
)

const DefaultTableSize = 5

type Views struct {
	Bar      SelectableView
	Treemap  SelectableView
	Parallel BrushableView
}

// Coordinator owns the dataset, the filter predicates and the selection, and
// fans every change out to the views and the detail table. Its methods are not
// safe for concurrent use; callers serialize events.
type Coordinator struct {
	store     *engine.DatasetStore
	selection *engine.SelectionSet
	brushes   engine.BrushPredicates
	checkbox  engine.CheckboxFilter

	views     Views
	panel     FilterPanel
	table     TableRenderer
	tableSize int
	observers []Observer
}

// New builds the coordinator, binds it as the interaction handler of the
// views and performs the initial render.
func New(records []models.Record, views Views, panel FilterPanel, table TableRenderer, tableSize int) *Coordinator {
	if tableSize <= 0 {
		tableSize = DefaultTableSize
	}
	c := &Coordinator{
		store:     engine.NewDatasetStore(records),
		selection: engine.NewSelectionSet(),
		brushes:   engine.NewBrushPredicates(),
		views:     views,
		panel:     panel,
		table:     table,
		tableSize: tableSize,
	}
	c.store.SetFiltered(slices.Clone(c.store.All()))

	views.Bar.BindSelect(c)
	views.Treemap.BindSelect(c)
	views.Parallel.BindBrush(c)

	for _, v := range c.all() {
		v.Render(c.store.All())
	}
	c.renderTable()
	return c
}

func (c *Coordinator) AddObserver(o Observer) {
	c.observers = append(c.observers, o)
}

func (c *Coordinator) all() []ViewAdapter {
	return []ViewAdapter{c.views.Parallel, c.views.Bar, c.views.Treemap}
}

// OnFilterChanged re-reads the filter panel. Only the bar chart and the
// treemap follow checkbox filters.
func (c *Coordinator) OnFilterChanged() {
	c.checkbox = c.panel.Checked()
	c.refilter()
	c.pushFiltered()
	c.renderTable()
	c.emit(Event{Kind: EventFilter})
}

// OnBrush applies a brush gesture from the parallel-coordinates view.
func (c *Coordinator) OnBrush(ev BrushEvent) {
	switch {
	case ev.Phase == BrushStart && ev.ClearAll:
		c.brushes.ClearAll()
	case ev.Phase == BrushStart:
		// nothing to commit until the first move
	case !models.IsDimension(ev.Dimension):
		return
	case ev.Range == nil:
		c.brushes.Clear(ev.Dimension)
	default:
		c.brushes.Set(ev.Dimension, *ev.Range)
	}
	c.refilter()
	c.pushFiltered()
	c.renderTable()
	c.emit(Event{Kind: EventBrush, Dimension: ev.Dimension})
}

// OnSelect toggles key in the selection. Names not in the dataset are ignored.
func (c *Coordinator) OnSelect(key string) {
	if !c.store.Has(key) {
		return
	}
	c.selection.Toggle(key)
	sel := c.selection.Snapshot()
	for _, v := range c.all() {
		v.Highlight(sel)
	}
	c.renderTable()
	c.emit(Event{Kind: EventSelect, Key: key})
}

// Reset clears checkboxes, brushes and the selection and shows everything again.
func (c *Coordinator) Reset() {
	c.panel.Clear()
	c.checkbox = engine.CheckboxFilter{}
	c.brushes.ClearAll()
	c.selection.Clear()
	c.store.SetFiltered(slices.Clone(c.store.All()))

	empty := models.KeySet{}
	for _, v := range c.all() {
		v.Reset()
		v.UpdateData(c.store.Filtered())
		v.Highlight(empty)
	}
	c.renderTable()
	c.emit(Event{Kind: EventReset})
}

func (c *Coordinator) refilter() {
	c.store.SetFiltered(engine.EffectiveSubset(c.store.All(), c.checkbox, c.brushes))
}

func (c *Coordinator) pushFiltered() {
	c.views.Bar.UpdateData(c.store.Filtered())
	c.views.Treemap.UpdateData(c.store.Filtered())
}

// DetailRows returns the selected records in dataset order, or the head of
// the filtered subset when nothing is selected.
func (c *Coordinator) DetailRows() []models.Record {
	if c.selection.Len() > 0 {
		return c.store.Select(c.selection.Snapshot())
	}
	filtered := c.store.Filtered()
	n := min(c.tableSize, len(filtered))
	return slices.Clone(filtered[:n])
}

func (c *Coordinator) renderTable() {
	c.table.RenderTable(c.DetailRows())
}

func (c *Coordinator) emit(ev Event) {
	ev.Filtered = len(c.store.Filtered())
	ev.Selected = c.selection.Len()
	ev.Brushed = len(c.brushes)
	for _, o := range c.observers {
		o.Observe(ev)
	}
}

func (c *Coordinator) Dataset() []models.Record {
	return c.store.All()
}

func (c *Coordinator) Filtered() []models.Record {
	return c.store.Filtered()
}

func (c *Coordinator) Selection() models.KeySet {
	return c.selection.Snapshot()
}

func (c *Coordinator) Brushes() engine.BrushPredicates {
	return c.brushes.Clone()
}

func (c *Coordinator) Checkbox() engine.CheckboxFilter {
	return c.checkbox
}

func (c *Coordinator) Lookup(key string) (models.Record, bool) {
	return c.store.Lookup(key)
}
