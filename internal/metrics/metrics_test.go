package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, CycleDuration)
	assert.NotNil(t, ListingsEvaluatedTotal)
	assert.NotNil(t, MatchesTotal)
	assert.NotNil(t, DedupStoreSize)
	assert.NotNil(t, SourceRequestsTotal)
	assert.NotNil(t, FetchErrorsTotal)
	assert.NotNil(t, NotificationsTotal)
	assert.NotNil(t, NotifyFailuresTotal)
}

func TestMetricsGatherable(t *testing.T) {
	// Touch one collector of each kind so every family has a sample.
	CycleDuration.Observe(0.1)
	DedupStoreSize.Set(3)
	SourceRequestsTotal.Inc()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), "fleawatch_") {
			byName[mf.GetName()] = mf
		}
	}

	require.Contains(t, byName, "fleawatch_cycle_duration_seconds")
	assert.Equal(t, dto.MetricType_HISTOGRAM, byName["fleawatch_cycle_duration_seconds"].GetType())

	require.Contains(t, byName, "fleawatch_dedup_store_size")
	assert.Equal(t, dto.MetricType_GAUGE, byName["fleawatch_dedup_store_size"].GetType())

	require.Contains(t, byName, "fleawatch_source_requests_total")
	assert.Equal(t, dto.MetricType_COUNTER, byName["fleawatch_source_requests_total"].GetType())

	for _, name := range []string{
		"fleawatch_listings_evaluated_total",
		"fleawatch_matches_total",
		"fleawatch_fetch_errors_total",
		"fleawatch_notifications_total",
		"fleawatch_notify_failures_total",
	} {
		assert.Contains(t, byName, name)
	}
}
