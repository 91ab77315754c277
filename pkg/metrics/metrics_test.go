package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogMetrics_ExportaContadores(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCatalogMetrics(reg)

	m.ObserveCopy(CopyResultPartial, 120*time.Millisecond)
	m.AddCreated("products", 2)
	m.AddCreated("images", 6)
	m.AddCreated("images", 0)
	m.IncPartialFailure("images")

	mfs, err := reg.Gather()
	require.NoError(t, err)

	v, err := counterValue(mfs, "catalog_copy_total", "result", CopyResultPartial)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = counterValue(mfs, "catalog_copy_entities_created_total", "kind", "images")
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	v, err = counterValue(mfs, "catalog_copy_partial_failures_total", "step", "images")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestMetrics_NilSeguro(t *testing.T) {
	var c *CatalogMetrics
	var h *HTTPMetrics
	assert.NotPanics(t, func() {
		c.ObserveCopy(CopyResultSuccess, time.Second)
		c.AddCreated("products", 1)
		c.IncPartialFailure("tiers")
		h.Observe("GET", "/health", 200, time.Millisecond)
		NewCatalogMetrics(nil).AddCreated("products", 1)
		NewHTTPMetrics(nil).Observe("GET", "/health", 200, time.Millisecond)
	})
}

func TestHTTPMetrics_AgrupaPorClaseDeEstado(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("POST", "/api/admin/copy-products", 200, time.Millisecond)
	m.Observe("POST", "/api/admin/copy-products", 201, time.Millisecond)
	m.Observe("POST", "/api/admin/copy-products", 404, time.Millisecond)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	v, err := counterValue(mfs, "http_requests_total", "status", "2xx")
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	v, err = counterValue(mfs, "http_requests_total", "status", "4xx")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "5xx", statusClass(503))
	assert.Equal(t, "unknown", statusClass(0))
}

func counterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return metric.GetCounter().GetValue(), nil
				}
			}
		}
		return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
	}
	return 0, fmt.Errorf("metric %q not found", name)
}
