// Package metrics provides Prometheus instrumentation for jellysook.
//
// Standard Go runtime and process metrics are exposed automatically by
// prometheus/client_golang; the counters registered here cover the
// notification pipeline. Handler() exposes everything at GET /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EventsProcessed counts inbound media events by classified kind.
var EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jellysook_events_total",
	Help: "Media events processed, by classified kind.",
}, []string{"kind"})

// DispatchFailures counts notifications the gateway refused.
var DispatchFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "jellysook_dispatch_failures_total",
	Help: "Notifications rejected by the messaging gateway.",
})

// TrailerLookups counts trailer searches by outcome.
var TrailerLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jellysook_trailer_lookups_total",
	Help: "Trailer searches, by result (found, absent, error).",
}, []string{"result"})

// Handler returns the Prometheus scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
