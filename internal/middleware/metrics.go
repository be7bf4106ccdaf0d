package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Application-level counters beyond the per-route HTTP metrics.
var (
	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_errors_total",
		Help: "Number of failed Redis commands",
	}, []string{"command"})

	// ViewsRecorded counts view rows written back from feed reads.
	ViewsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_feed_views_recorded_total",
		Help: "Number of view records written as a feed read side effect",
	})

	// NotificationsCreated counts raw notification rows by action.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_notifications_created_total",
		Help: "Number of notification rows created",
	}, []string{"action"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus handler as a Fiber middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
