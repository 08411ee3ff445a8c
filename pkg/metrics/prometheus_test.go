package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordCacheHit("quote")
	r.RecordCacheHit("quote")
	r.RecordCacheMiss("research")
	r.RecordUpstreamError("chart")
	r.RecordResolution("series_group")
	r.RecordIngested("series_points", 12)
	r.RecordLastPrice("AAPL", 187.5)
	r.RecordLatency("quote", 0.2)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.cacheHits.WithLabelValues("quote")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheMisses.WithLabelValues("research")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.upstreamErrors.WithLabelValues("chart")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.resolutions.WithLabelValues("series_group")))
	assert.Equal(t, 12.0, testutil.ToFloat64(r.ingested.WithLabelValues("series_points")))
	assert.Equal(t, 187.5, testutil.ToFloat64(r.lastPrice.WithLabelValues("AAPL")))

	n, err := testutil.GatherAndCount(reg, "datahub_operation_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecorderSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
