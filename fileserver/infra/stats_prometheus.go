package infra

import (
	"context"

	"concurrent-fileserver/fileserver/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusStats expõe as estatísticas como counters.
// Recursos viram label; a cardinalidade é limitada pelos arquivos do root.
type PrometheusStats struct {
	admissions *prometheus.CounterVec
	hits       *prometheus.CounterVec
}

func NewPrometheusStats(reg prometheus.Registerer) (*PrometheusStats, error) {
	s := &PrometheusStats{
		admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fileserver",
			Name:      "admissions_total",
			Help:      "Admission decisions by outcome.",
		}, []string{"outcome"}),
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fileserver",
			Name:      "hits_total",
			Help:      "Counted accesses by resource.",
		}, []string{"resource"}),
	}
	if err := reg.Register(s.admissions); err != nil {
		return nil, err
	}
	if err := reg.Register(s.hits); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PrometheusStats) Record(_ context.Context, ev domain.StatsEvent) error {
	if ev.Kind == domain.EventHit {
		s.hits.WithLabelValues(string(ev.Resource)).Inc()
		return nil
	}
	outcome := "denied"
	if ev.Allowed {
		outcome = "allowed"
	}
	s.admissions.WithLabelValues(outcome).Inc()
	return nil
}
