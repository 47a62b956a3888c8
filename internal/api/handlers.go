package api

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cerealdash/internal/cache"
	"cerealdash/internal/engine"
	"cerealdash/internal/models"
	"cerealdash/internal/views"
)

const statsTTL = 10 * time.Minute

type Options struct {
	ChartWidth  int
	ChartHeight int
}

// Handler serves the dashboard. Every interaction holds the write lock until
// its fan-out to the views is complete; reads hold the read lock.
type Handler struct {
	mu    sync.RWMutex
	dash  *Dashboard
	cache *cache.Cache
	opts  Options
}

func NewHandler(dash *Dashboard, c *cache.Cache, opts Options) *Handler {
	if c == nil {
		c = cache.New("", "", 0)
	}
	if opts.ChartWidth <= 0 {
		opts.ChartWidth = 900
	}
	if opts.ChartHeight <= 0 {
		opts.ChartHeight = 400
	}
	return &Handler{dash: dash, cache: c, opts: opts}
}

// SetData swaps in a freshly loaded dashboard.
func (h *Handler) SetData(dash *Dashboard) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dash = dash
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.GET("/records", h.GetRecords)
	api.GET("/filtered", h.GetFiltered)
	api.GET("/selection", h.GetSelection)
	api.GET("/table", h.GetTable)
	api.GET("/state", h.GetState)
	api.GET("/preview", h.GetPreview)

	api.GET("/views/bar", h.GetBarView)
	api.GET("/views/treemap", h.GetTreemapView)
	api.GET("/views/parallel", h.GetParallelView)
	api.GET("/views/bar.svg", h.GetBarSVG)
	api.GET("/views/parallel.svg", h.GetParallelSVG)

	api.POST("/filters", h.PostFilters)
	api.POST("/brush", h.PostBrush)
	api.POST("/views/bar/click", h.PostBarClick)
	api.POST("/views/treemap/click", h.PostTreemapClick)
	api.POST("/reset", h.PostReset)

	api.GET("/stats/manufacturers", h.GetManufacturerStats)
	api.GET("/stats/shelves", h.GetShelfStats)
	api.GET("/stats/health", h.GetHealthStats)
}

var ErrNotLoaded = errors.New("dataset is still loading")

func errNotLoaded() error {
	return echo.NewHTTPError(http.StatusServiceUnavailable, ErrNotLoaded.Error()).SetInternal(ErrNotLoaded)
}

func (h *Handler) read(fn func(d *Dashboard) error) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.dash == nil {
		return errNotLoaded()
	}
	return fn(h.dash)
}

func (h *Handler) write(fn func(d *Dashboard) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dash == nil {
		return errNotLoaded()
	}
	return fn(h.dash)
}

// --- STATE ---

type stateResponse struct {
	Filtered int                    `json:"filtered"`
	Total    int                    `json:"total"`
	Selected []string               `json:"selected"`
	Checkbox engine.CheckboxFilter  `json:"checkbox"`
	Brushes  engine.BrushPredicates `json:"brushes"`
	Table    []views.TableRow       `json:"table"`
	Handled  *bool                  `json:"handled,omitempty"`
}

func snapshot(d *Dashboard) stateResponse {
	co := d.Coordinator
	sel := co.Selection()
	selected := make([]string, 0, len(sel))
	for _, r := range co.Dataset() {
		if sel.Has(r.Name) {
			selected = append(selected, r.Name)
		}
	}
	checkbox := co.Checkbox()
	if checkbox.Manufacturers == nil {
		checkbox.Manufacturers = []string{}
	}
	if checkbox.Shelves == nil {
		checkbox.Shelves = []int{}
	}
	return stateResponse{
		Filtered: len(co.Filtered()),
		Total:    len(co.Dataset()),
		Selected: selected,
		Checkbox: checkbox,
		Brushes:  co.Brushes(),
		Table:    d.Table.Rows(),
	}
}

func (h *Handler) Health(c echo.Context) error {
	h.mu.RLock()
	loaded := h.dash != nil
	h.mu.RUnlock()
	return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok", "loaded": loaded})
}

func (h *Handler) GetState(c echo.Context) error {
	return h.read(func(d *Dashboard) error {
		return c.JSON(http.StatusOK, snapshot(d))
	})
}

func paginate(c echo.Context, records []models.Record) error {
	total := len(records)
	limit, offset := getPaginationParams(c, total)
	if offset >= total {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"data": []models.Record{}, "total": total, "limit": limit, "offset": offset,
		})
	}
	end := total
	if limit < total-offset {
		end = offset + limit
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   records[offset:end],
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) GetRecords(c echo.Context) error {
	return h.read(func(d *Dashboard) error {
		return paginate(c, d.Coordinator.Dataset())
	})
}

func (h *Handler) GetFiltered(c echo.Context) error {
	return h.read(func(d *Dashboard) error {
		return paginate(c, d.Coordinator.Filtered())
	})
}

func (h *Handler) GetSelection(c echo.Context) error {
	return h.read(func(d *Dashboard) error {
		sel := d.Coordinator.Selection()
		records := make([]models.Record, 0, len(sel))
		for _, r := range d.Coordinator.Dataset() {
			if sel.Has(r.Name) {
				records = append(records, r)
			}
		}
		return c.JSON(http.StatusOK, records)
	})
}

func (h *Handler) GetTable(c echo.Context) error {
	return h.read(func(d *Dashboard) error {
		return c.JSON(http.StatusOK, d.Table.Rows())
	})
}

// GetPreview runs the checkbox filter without touching dashboard state.
func (h *Handler) GetPreview(c echo.Context) error {
	f, err := previewFromQuery(c.QueryParams())
	if err != nil {
		return err
	}
	return h.read(func(d *Dashboard) error {
		return c.JSON(http.StatusOK, engine.ComputeFiltered(d.Coordinator.Dataset(), f))
	})
}

// --- VIEWS ---

func (h *Handler) GetBarView(c echo.Context) error {
	return h.read(func(d *Dashboard) error {
		return c.JSON(http.StatusOK, d.Bar.Model())
	})
}

func (h *Handler) GetTreemapView(c echo.Context) error {
	return h.read(func(d *Dashboard) error {
		return c.JSON(http.StatusOK, d.Treemap.Model())
	})
}

func (h *Handler) GetParallelView(c echo.Context) error {
	return h.read(func(d *Dashboard) error {
		return c.JSON(http.StatusOK, d.Parallel.Model())
	})
}

func (h *Handler) GetBarSVG(c echo.Context) error {
	var buf bytes.Buffer
	err := h.read(func(d *Dashboard) error {
		return views.RenderBarSVG(d.Bar.Model(), &buf, h.opts.ChartWidth, h.opts.ChartHeight)
	})
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/svg+xml", buf.Bytes())
}

func (h *Handler) GetParallelSVG(c echo.Context) error {
	var buf bytes.Buffer
	err := h.read(func(d *Dashboard) error {
		return views.RenderParallelSVG(d.Parallel.Model(), &buf, h.opts.ChartWidth, h.opts.ChartHeight)
	})
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/svg+xml", buf.Bytes())
}

// --- INTERACTIONS ---

func (h *Handler) PostFilters(c echo.Context) error {
	var f engine.CheckboxFilter
	if err := c.Bind(&f); err != nil {
		return err
	}
	return h.write(func(d *Dashboard) error {
		d.Panel.Set(f)
		d.Coordinator.OnFilterChanged()
		return c.JSON(http.StatusOK, snapshot(d))
	})
}

func (h *Handler) PostBrush(c echo.Context) error {
	var req brushRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	ev, err := req.toEvent()
	if err != nil {
		return err
	}
	return h.write(func(d *Dashboard) error {
		d.Parallel.Brush(ev)
		return c.JSON(http.StatusOK, snapshot(d))
	})
}

func (h *Handler) click(c echo.Context, click func(d *Dashboard, key string) bool) error {
	var req keyRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return h.write(func(d *Dashboard) error {
		handled := click(d, req.Key)
		res := snapshot(d)
		res.Handled = &handled
		return c.JSON(http.StatusOK, res)
	})
}

func (h *Handler) PostBarClick(c echo.Context) error {
	return h.click(c, func(d *Dashboard, key string) bool { return d.Bar.Click(key) })
}

func (h *Handler) PostTreemapClick(c echo.Context) error {
	return h.click(c, func(d *Dashboard, key string) bool { return d.Treemap.Click(key) })
}

func (h *Handler) PostReset(c echo.Context) error {
	return h.write(func(d *Dashboard) error {
		d.Coordinator.Reset()
		return c.JSON(http.StatusOK, snapshot(d))
	})
}

// --- STATS ---

func statsKey(kind string, records []models.Record) string {
	var sb strings.Builder
	for _, r := range records {
		sb.WriteString(r.Name)
		sb.WriteByte(0)
	}
	return fmt.Sprintf("cerealdash:stats:%s:%x", kind, xxhash.Sum64String(sb.String()))
}

// cached copies the filtered subset under the read lock and talks to the
// cache after releasing it, so a slow redis never holds up interactions.
func cached[T any](c echo.Context, h *Handler, kind string, fn func(records []models.Record) T) error {
	var records []models.Record
	err := h.read(func(d *Dashboard) error {
		records = slices.Clone(d.Coordinator.Filtered())
		return nil
	})
	if err != nil {
		return err
	}
	out, err := cache.GetOrCompute(c.Request().Context(), h.cache, statsKey(kind, records), statsTTL, func() T {
		return fn(records)
	})
	if err != nil {
		log.Printf("stats cache %s: %v", kind, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetManufacturerStats(c echo.Context) error {
	return cached(c, h, "manufacturers", engine.AveragesByManufacturer)
}

func (h *Handler) GetShelfStats(c echo.Context) error {
	return cached(c, h, "shelves", engine.AveragesByShelf)
}

func (h *Handler) GetHealthStats(c echo.Context) error {
	var q healthQuery
	if err := decodeQuery(c.QueryParams(), &q); err != nil {
		return err
	}
	limit := clamp(q.Limit, 1, 100)
	return cached(c, h, fmt.Sprintf("health-%d", limit), func(records []models.Record) *models.HealthReport {
		return engine.Health(records, limit)
	})
}
