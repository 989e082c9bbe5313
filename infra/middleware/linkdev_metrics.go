package middleware

import (
	"time"

	"github.com/MASTER-2222/linkedin/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records request count and latency per matched route.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// The route template keeps label cardinality bounded.
		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Method(), route, statusOf(c, err), time.Since(start))
		return err
	}
}
