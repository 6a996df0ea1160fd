package reconcile

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/ripple/pkg/dom"
	"github.com/vango-dev/ripple/pkg/vdom"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	out := make(map[string]*dto.MetricFamily, len(mfs))
	for _, mf := range mfs {
		out[mf.GetName()] = mf
	}
	return out
}

func counterValue(t *testing.T, families map[string]*dto.MetricFamily, name string) float64 {
	t.Helper()
	mf, ok := families[name]
	if !ok {
		t.Fatalf("metric %s not registered", name)
	}
	return mf.GetMetric()[0].GetCounter().GetValue()
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	doc := dom.NewDocument()
	r := New(doc, WithMetrics(reg))

	ul := r.Patch(doc.Body(), nil, keyedList("a", "b", "c"))
	r.Patch(doc.Body(), ul, keyedList("c", "a"))

	families := gather(t, reg)

	tests := []struct {
		name string
		want float64
	}{
		{"ripple_reconcile_nodes_created_total", 7},
		{"ripple_reconcile_nodes_moved_total", 1},
		{"ripple_reconcile_nodes_removed_total", 1},
		{"ripple_reconcile_text_reused_total", 2},
		{"ripple_reconcile_nodes_replaced_total", 0},
	}
	for _, tt := range tests {
		if got := counterValue(t, families, tt.name); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	h := families["ripple_reconcile_patch_duration_seconds"]
	if h == nil {
		t.Fatal("patch duration histogram not registered")
	}
	if got := h.GetMetric()[0].GetHistogram().GetSampleCount(); got != 2 {
		t.Errorf("patch duration samples = %d, want 2", got)
	}
}

func TestMetricsShareRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	doc := dom.NewDocument()

	r1 := New(doc, WithMetrics(reg))
	r2 := New(doc, WithMetrics(reg))

	r1.Patch(doc.Body(), nil, vdom.Div())
	r2.Patch(doc.Body(), nil, vdom.Div())

	families := gather(t, reg)
	if got := counterValue(t, families, "ripple_reconcile_nodes_created_total"); got != 2 {
		t.Errorf("created = %v, want 2", got)
	}
}

func TestStatsWithoutMetrics(t *testing.T) {
	doc := dom.NewDocument()
	r := New(doc)

	r.Patch(doc.Body(), nil, vdom.Div("x"))
	if got := r.Stats(); got.Created != 2 || got.Patches != 1 {
		t.Errorf("Stats() = %+v, want 2 created in 1 patch", got)
	}

	r.ResetStats()
	if got := r.Stats(); got != (Stats{}) {
		t.Errorf("Stats() after reset = %+v, want zero", got)
	}
}
