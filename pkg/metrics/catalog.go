package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resultados de una copia de catálogo.
const (
	CopyResultSuccess = "success"
	CopyResultPartial = "partial"
	CopyResultFailure = "failure"
)

// CatalogMetrics registra las copias de productos entre cuentas.
// Un *CatalogMetrics nil (o sin registerer) es válido y no hace nada.
type CatalogMetrics struct {
	copies          *prometheus.CounterVec
	duration        prometheus.Histogram
	entities        *prometheus.CounterVec
	partialFailures *prometheus.CounterVec
}

// NewCatalogMetrics registra las métricas de catálogo en el registerer indicado.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	copies := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_copy_total",
		Help: "Catalog copy operations by result.",
	}, []string{"result"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_copy_duration_seconds",
		Help:    "Duration of catalog copy operations in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	entities := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_copy_entities_created_total",
		Help: "Entities created by catalog copies, by kind.",
	}, []string{"kind"})
	partial := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_copy_partial_failures_total",
		Help: "Non-fatal step failures during catalog copies.",
	}, []string{"step"})
	reg.MustRegister(copies, duration, entities, partial)
	return &CatalogMetrics{
		copies:          copies,
		duration:        duration,
		entities:        entities,
		partialFailures: partial,
	}
}

// ObserveCopy registra el resultado y la duración de una copia.
func (m *CatalogMetrics) ObserveCopy(result string, d time.Duration) {
	if m == nil || m.copies == nil {
		return
	}
	m.copies.WithLabelValues(normalizeLabel(result)).Inc()
	m.duration.Observe(d.Seconds())
}

// AddCreated suma n entidades creadas del tipo indicado (products, images, price_tiers, categories).
func (m *CatalogMetrics) AddCreated(kind string, n int) {
	if m == nil || m.entities == nil || n <= 0 {
		return
	}
	m.entities.WithLabelValues(normalizeLabel(kind)).Add(float64(n))
}

// IncPartialFailure cuenta un paso fallido que no aborta la copia.
func (m *CatalogMetrics) IncPartialFailure(step string) {
	if m == nil || m.partialFailures == nil {
		return
	}
	m.partialFailures.WithLabelValues(normalizeLabel(step)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
