// Package metrics exports delivery metrics to Prometheus.
//
//	obs := metrics.New(prometheus.DefaultRegisterer)
//	client := transport.NewClient(t, transport.WithObserver(obs))
package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "courier"

// Observer records send attempts. It implements transport.Observer.
type Observer struct {
	sent     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New registers the delivery metrics with reg.
func New(reg prometheus.Registerer) *Observer {
	f := promauto.With(reg)
	return &Observer{
		sent: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_sent_total",
				Help:      "Total number of messages handed to a transport",
			},
			[]string{"transport", "status"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "send_duration_seconds",
				Help:      "Transport send latency distribution",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"transport"},
		),
	}
}

// ObserveSend records one send attempt. The transport identity is reduced
// to its scheme to keep label cardinality low.
func (o *Observer) ObserveSend(transport string, d time.Duration, err error) {
	scheme := schemeOf(transport)
	status := "success"
	if err != nil {
		status = "error"
	}
	o.sent.WithLabelValues(scheme, status).Inc()
	o.duration.WithLabelValues(scheme).Observe(d.Seconds())
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func schemeOf(transport string) string {
	if i := strings.Index(transport, "://"); i > 0 {
		return transport[:i]
	}
	if transport == "" {
		return "unknown"
	}
	return transport
}
