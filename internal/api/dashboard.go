package api

import (
	"cerealdash/internal/config"
	"cerealdash/internal/coordinator"
	"cerealdash/internal/models"
	"cerealdash/internal/views"
)

// Dashboard is one wired set of views around a coordinator.
type Dashboard struct {
	Coordinator *coordinator.Coordinator
	Bar         *views.BarView
	Treemap     *views.TreemapView
	Parallel    *views.ParallelView
	Panel       *views.CheckboxPanel
	Table       *views.TableView
}

func NewDashboard(records []models.Record, cfg config.Config, observers ...coordinator.Observer) *Dashboard {
	d := &Dashboard{
		Bar:      views.NewBarView(cfg.BarLimit),
		Treemap:  views.NewTreemapView(cfg.TreemapWidth, cfg.TreemapHeight, cfg.TreemapPadding),
		Parallel: views.NewParallelView(),
		Panel:    views.NewCheckboxPanel(),
		Table:    views.NewTableView(),
	}
	d.Coordinator = coordinator.New(records, coordinator.Views{
		Bar:      d.Bar,
		Treemap:  d.Treemap,
		Parallel: d.Parallel,
	}, d.Panel, d.Table, cfg.TableSize)
	for _, o := range observers {
		if o != nil {
			d.Coordinator.AddObserver(o)
		}
	}
	return d
}
