package observability

import (
	"context"

	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cast"
)

// Metrics holds the expansion collectors.
type Metrics struct {
	Expansions *prometheus.CounterVec
	Faces      *prometheus.CounterVec
	Flushes    *prometheus.CounterVec
	Duration   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Expansions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xgenseed_expansions_total",
				Help: "Total number of assembly expansions by outcome",
			},
			[]string{"success", "aborted"},
		),
		Faces: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xgenseed_faces_total",
				Help: "Total number of generated faces by status",
			},
			[]string{"status"},
		),
		Flushes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xgenseed_flushes_total",
				Help: "Total number of geometry flushes by route",
			},
			[]string{"route"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "xgenseed_expansion_duration_seconds",
				Help:    "Duration of assembly expansions",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Expansions, m.Faces, m.Flushes, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnExpandEnd: func(ctx context.Context, e *domain.ExpandEvent) {
			m.Expansions.WithLabelValues(cast.ToString(e.Success), cast.ToString(e.Aborted)).Inc()
			m.Duration.Observe(e.Duration.Seconds())
		},
		OnFace: func(ctx context.Context, e *domain.FaceEvent) {
			m.Faces.WithLabelValues(string(e.Status)).Inc()
		},
		OnFlush: func(ctx context.Context, e *domain.FlushEvent) {
			m.Flushes.WithLabelValues(string(e.Route)).Inc()
		},
	}
}
