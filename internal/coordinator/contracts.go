package coordinator

import (
	"cerealdash/internal/engine"
	"cerealdash/internal/models"
)

// ViewAdapter is what the coordinator needs from a chart. Slices and sets
// handed to an adapter are snapshots; adapters copy before reordering.
type ViewAdapter interface {
	// Render sets the view up once with the initial data.
	Render(initial []models.Record)
	// UpdateData replaces the data shown, joined by record name.
	UpdateData(filtered []models.Record)
	// Highlight changes emphasis only; it never adds or removes elements.
	Highlight(selected models.KeySet)
	// Reset drops emphasis and any view-local interaction state.
	Reset()
}

// SelectHandler receives the record name of a clicked chart element.
type SelectHandler interface {
	OnSelect(key string)
}

// BrushHandler receives brush gestures from the parallel-coordinates view.
type BrushHandler interface {
	OnBrush(ev BrushEvent)
}

type SelectableView interface {
	ViewAdapter
	BindSelect(h SelectHandler)
}

type BrushableView interface {
	ViewAdapter
	BindBrush(h BrushHandler)
}

// FilterPanel is polled for its checked boxes after every change notification.
type FilterPanel interface {
	Checked() engine.CheckboxFilter
	Clear()
}

type TableRenderer interface {
	RenderTable(rows []models.Record)
}

type BrushPhase string

const (
	BrushStart BrushPhase = "start"
	BrushMove  BrushPhase = "brush"
	BrushEnd   BrushPhase = "end"
)

// BrushEvent describes one brush gesture on an axis. A nil Range means the
// axis brush was cleared. ClearAll on a start gesture drops every brush.
type BrushEvent struct {
	Phase     BrushPhase          `json:"phase"`
	Dimension string              `json:"dimension"`
	Range     *models.NumberRange `json:"range,omitempty"`
	ClearAll  bool                `json:"clearAll"`
}

type EventKind string

const (
	EventFilter EventKind = "filter"
	EventBrush  EventKind = "brush"
	EventSelect EventKind = "select"
	EventReset  EventKind = "reset"
)

// Event is emitted to observers after a handler has committed its state.
type Event struct {
	Kind      EventKind `json:"kind"`
	Key       string    `json:"key,omitempty"`
	Dimension string    `json:"dimension,omitempty"`
	Filtered  int       `json:"filtered"`
	Selected  int       `json:"selected"`
	Brushed   int       `json:"brushed"`
}

type Observer interface {
	Observe(ev Event)
}
