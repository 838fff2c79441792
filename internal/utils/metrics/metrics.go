package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Backend instruments calls made to the content backend.
type Backend struct {
	Registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewBackend() *Backend {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	b := &Backend{
		Registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "turmeric",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Content backend requests by collection, method and status class.",
		}, []string{"collection", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "turmeric",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Content backend request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection", "method"}),
	}
	reg.MustRegister(b.requests, b.latency)
	return b
}

// Observe records one finished backend call. status 0 means a transport error.
func (b *Backend) Observe(collection, method string, status int, took time.Duration) {
	if b == nil {
		return
	}
	b.requests.WithLabelValues(collection, method, statusClass(status)).Inc()
	b.latency.WithLabelValues(collection, method).Observe(took.Seconds())
}

func statusClass(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
