package preview

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the preview server's Prometheus collectors.
type metrics struct {
	clients  prometheus.Gauge
	messages *prometheus.CounterVec
	pushes   prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	clients := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ripple",
		Subsystem: "preview",
		Name:      "clients",
		Help:      "Number of connected preview websockets",
	})
	messages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ripple",
		Subsystem: "preview",
		Name:      "messages_total",
		Help:      "Websocket messages received, by type and result",
	}, []string{"type", "result"})
	pushes := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ripple",
		Subsystem: "preview",
		Name:      "html_pushes_total",
		Help:      "Rendered HTML snapshots broadcast to clients",
	})

	return &metrics{
		clients:  register(reg, clients).(prometheus.Gauge),
		messages: register(reg, messages).(*prometheus.CounterVec),
		pushes:   register(reg, pushes).(prometheus.Counter),
	}
}

func (m *metrics) message(typ MessageType, result string) {
	if m == nil {
		return
	}
	m.messages.WithLabelValues(string(typ), result).Inc()
}

func (m *metrics) clientDelta(d float64) {
	if m == nil {
		return
	}
	m.clients.Add(d)
}

func (m *metrics) push() {
	if m == nil {
		return
	}
	m.pushes.Inc()
}

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
