// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus collectors for the HTTP layer and the
asynchronous activity recorder.

Metrics:

  - http_requests_total{route,method,status}
  - http_request_duration_seconds{route,method}
  - http_requests_in_flight
  - activity_records_written_total
  - activity_records_dropped_total
  - activity_records_failed_total
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns every Medora metric and the registry they are exposed from.
type Collector struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inFlight prometheus.Gauge

	activityWritten prometheus.Counter
	activityDropped prometheus.Counter
	activityFailed  prometheus.Counter
}

// NewCollector builds a private registry with the Go and process collectors attached.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Count of HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Requests currently being served.",
		}),
		activityWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "activity_records_written_total",
			Help: "Activity log entries persisted.",
		}),
		activityDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "activity_records_dropped_total",
			Help: "Activity log entries dropped because the queue was full.",
		}),
		activityFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "activity_records_failed_total",
			Help: "Activity log entries that failed to persist.",
		}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.requests, c.latency, c.inFlight,
		c.activityWritten, c.activityDropped, c.activityFailed,
	)

	return c
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// # HTTP

// ObserveRequest records one finished request. route is the chi route pattern.
func (c *Collector) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// RequestStarted and RequestFinished track the in-flight gauge.
func (c *Collector) RequestStarted()  { c.inFlight.Inc() }
func (c *Collector) RequestFinished() { c.inFlight.Dec() }

// # Activity

func (c *Collector) ActivityWritten() { c.activityWritten.Inc() }
func (c *Collector) ActivityDropped() { c.activityDropped.Inc() }
func (c *Collector) ActivityFailed()  { c.activityFailed.Inc() }
