package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/labstack/echo/v4"

	"cerealdash/internal/coordinator"
	"cerealdash/internal/engine"
	"cerealdash/internal/models"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type healthQuery struct {
	Limit int `schema:"limit,default:5"`
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func decodeQuery(query url.Values, out any) error {
	if err := decoder.Decode(out, query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

func previewFromQuery(query url.Values) (engine.CheckboxFilter, error) {
	var f engine.CheckboxFilter
	err := decodeQuery(query, &f)
	return f, err
}

// brushRequest is the wire form of a brush gesture. Min and Max are both
// required unless the brush was cleared.
type brushRequest struct {
	Phase     coordinator.BrushPhase `json:"phase"`
	Dimension string                 `json:"dimension"`
	Min       *float64               `json:"min"`
	Max       *float64               `json:"max"`
	Cleared   bool                   `json:"cleared"`
	ClearAll  bool                   `json:"clearAll"`
}

func (b brushRequest) toEvent() (coordinator.BrushEvent, error) {
	ev := coordinator.BrushEvent{Phase: b.Phase, Dimension: b.Dimension, ClearAll: b.ClearAll}
	switch b.Phase {
	case coordinator.BrushStart:
		return ev, nil
	case coordinator.BrushMove, coordinator.BrushEnd:
	default:
		return ev, echo.NewHTTPError(http.StatusBadRequest, "unknown brush phase: "+string(b.Phase))
	}
	if b.Cleared {
		return ev, nil
	}
	if b.Min == nil || b.Max == nil {
		return ev, echo.NewHTTPError(http.StatusBadRequest, "brush needs min and max unless cleared")
	}
	ev.Range = &models.NumberRange{Min: *b.Min, Max: *b.Max}
	return ev, nil
}

type keyRequest struct {
	Key string `json:"key"`
}

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
