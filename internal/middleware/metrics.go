// Package middleware provides authentication, logging, and observability middleware.
package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "promptstash_redis_errors_total",
		Help: "Total number of Redis command errors",
	},
	[]string{"command"},
)

// VoteConflicts counts vote inserts that lost the uniqueness race and
// fell back to the update form.
var VoteConflicts = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "promptstash_vote_conflicts_total",
		Help: "Total number of vote inserts resolved via conflict fallback",
	},
)

func init() {
	prometheus.MustRegister(RedisErrors, VoteConflicts)
}

var (
	promOnce sync.Once
	promMW   *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The middleware registers collectors on the default registry, so it is
// created once and shared by every server instance in the process.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMW = fiberprometheus.New(serviceName)
	})
	return promMW
}

// MetricsMiddleware returns the request instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
