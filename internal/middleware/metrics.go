package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawmatch_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// AdoptionAttempts counts adoption attempts by outcome
	// (adopted, conflict, forbidden, not_found).
	AdoptionAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawmatch_adoption_attempts_total",
		Help: "Total adoption attempts by outcome",
	}, []string{"outcome"})

	// MatchRequests counts matching-quiz runs by derived personality type.
	MatchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawmatch_match_requests_total",
		Help: "Total matching quiz requests by personality type",
	}, []string{"personality"})

	// PhotoPipelineFailures counts failed pet photo uploads by stage.
	PhotoPipelineFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawmatch_photo_pipeline_failures_total",
		Help: "Total pet photo pipeline failures by stage",
	}, []string{"stage"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-metrics Fiber handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
