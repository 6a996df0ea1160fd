package reconcile

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the Prometheus collectors for a Reconciler.
type metrics struct {
	created       prometheus.Counter
	replaced      prometheus.Counter
	moved         prometheus.Counter
	removed       prometheus.Counter
	textReused    prometheus.Counter
	patchDuration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer, namespace string) *metrics {
	counter := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      name,
			Help:      help,
		})
		return register(reg, c).(prometheus.Counter)
	}

	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "reconcile",
		Name:      "patch_duration_seconds",
		Help:      "Duration of top-level patch calls in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
	})

	return &metrics{
		created:       counter("nodes_created_total", "Total number of retained nodes created"),
		replaced:      counter("nodes_replaced_total", "Total number of retained nodes replaced in place"),
		moved:         counter("nodes_moved_total", "Total number of existing retained nodes moved among siblings"),
		removed:       counter("nodes_removed_total", "Total number of retained nodes trimmed from a parent"),
		textReused:    counter("text_reused_total", "Total number of text nodes kept because their content was unchanged"),
		patchDuration: register(reg, h).(prometheus.Histogram),
	}
}

// register registers c, reusing an identical collector that is already
// registered so several reconcilers can share one registry.
func register(reg prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}
