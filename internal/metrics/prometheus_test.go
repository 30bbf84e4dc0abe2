package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector_LazyRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = NewPrometheus(reg, "test")

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Empty(t, families, "nothing should be registered before first use")
}

func TestPrometheusCollector_AllocatorMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordAllocation("proportional", 4, 0.00002)
	p.RecordAllocation("proportional", 2, 0.00001)
	p.RecordAllocation("largest-remainder", 3, 0.00001)
	p.RecordReconciliation("shortfall", 40)
	p.RecordReconciliation("excess", -2)
	p.RecordReconciliation("none", 0)
	p.RecordDegenerateInput("floor_exceeds_cycle")

	require.InDelta(t, 2, testutil.ToFloat64(p.allocations.WithLabelValues("proportional")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.allocations.WithLabelValues("largest-remainder")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.reconciliations.WithLabelValues("shortfall")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.reconciliations.WithLabelValues("excess")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.reconciliations.WithLabelValues("none")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.degenerateInputs.WithLabelValues("floor_exceeds_cycle")), 0)

	// none carries no delta, so only the two applied corrections are observed
	require.Equal(t, 2, testutil.CollectAndCount(p.reconciliationDelta))
}

func TestPrometheusCollector_ServiceMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "")

	p.RecordRequest("success")
	p.RecordRequest("success")
	p.RecordRequest("invalid")
	p.RecordCacheLookup(true)
	p.RecordCacheLookup(false)
	p.RecordCacheLookup(false)

	require.InDelta(t, 2, testutil.ToFloat64(p.requests.WithLabelValues("success")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.requests.WithLabelValues("invalid")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.cacheLookups.WithLabelValues("hit")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(p.cacheLookups.WithLabelValues("miss")), 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		require.Contains(t, mf.GetName(), "greenlight_", "default namespace should be applied")
	}
}
