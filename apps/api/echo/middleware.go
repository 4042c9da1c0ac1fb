package echoapi

import (
	"time"

	"github.com/labstack/echo/v4"

	metricsvc "github.com/muhammadsami84343/ecampus/services/metrics"
)

// metricsMiddleware observes the latency of every request, labelled by its route pattern.
func metricsMiddleware(m *metricsvc.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			if err := next(ctx); err != nil {
				ctx.Error(err) // commit the response so its status is known
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			m.ObserveRequest(ctx.Request().Method, route, ctx.Response().Status, time.Since(start))
			return nil
		}
	}
}
