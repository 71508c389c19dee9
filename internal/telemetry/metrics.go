// Package telemetry exposes prometheus counters for the polling loop.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PollPasses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leaguewatch_poll_passes_total",
		Help: "Number of completed polling passes",
	})
	SpectatorQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leaguewatch_spectator_queries_total",
		Help: "Number of spectator endpoint queries",
	})
	SpectatorFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leaguewatch_spectator_failures_total",
		Help: "Number of spectator queries that failed and were skipped",
	})
	Notifications = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leaguewatch_notifications_total",
		Help: "Number of live game announcements sent",
	})
)

// Handler returns the http handler serving the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
