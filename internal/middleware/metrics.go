package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "resonate_redis_errors_total",
	Help: "Total number of Redis errors by command",
}, []string{"command"})

// PokesSent counts pokes created, labelled by outcome.
var PokesSent = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "resonate_pokes_total",
	Help: "Total number of poke attempts by outcome",
}, []string{"outcome"})

// MessagesSent counts direct messages created.
var MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
	Name: "resonate_messages_total",
	Help: "Total number of direct messages created",
})

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the HTTP metrics collection middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
