package metrics

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/dtroode/healthyrecipe-client/internal/model"
)

const namespace = "healthyrecipe"

var _ model.Metrics = (*Recorder)(nil)

// Recorder counts state engine events in a private prometheus registry.
type Recorder struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
	loads       *prometheus.CounterVec
	toggles     *prometheus.CounterVec
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "transitions_total",
			Help:      "Published session events by kind.",
		}, []string{"kind"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "loads_total",
			Help:      "Catalog loads by resulting data source.",
		}, []string{"source", "degraded"}),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "favorites",
			Name:      "toggles_total",
			Help:      "Favorite toggles by outcome.",
		}, []string{"outcome"}),
	}
	r.registry.MustRegister(r.transitions, r.loads, r.toggles)
	return r
}

func (r *Recorder) SessionTransition(kind model.SessionEventKind) {
	r.transitions.WithLabelValues(kind.String()).Inc()
}

func (r *Recorder) CatalogLoad(source model.DataSource, degraded bool) {
	r.loads.WithLabelValues(string(source), strconv.FormatBool(degraded)).Inc()
}

func (r *Recorder) FavoriteToggle(outcome string) {
	r.toggles.WithLabelValues(outcome).Inc()
}

// Registry exposes the registry for scraping or inspection.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteText writes every collected metric family in the text exposition
// format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
