package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"cerealdash/internal/coordinator"
)

var (
	interactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cerealdash_interactions_total",
		Help: "The total number of dashboard interactions by kind",
	}, []string{"kind"})
	filteredRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cerealdash_filtered_records",
		Help: "Records in the current filtered subset",
	})
	selectedRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cerealdash_selected_records",
		Help: "Records in the current selection",
	})
	brushedAxes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cerealdash_brushed_axes",
		Help: "Parallel axes with an active brush",
	})
)

// MetricsObserver exports coordinator events to prometheus.
type MetricsObserver struct{}

func (MetricsObserver) Observe(ev coordinator.Event) {
	interactions.WithLabelValues(string(ev.Kind)).Inc()
	filteredRecords.Set(float64(ev.Filtered))
	selectedRecords.Set(float64(ev.Selected))
	brushedAxes.Set(float64(ev.Brushed))
}
