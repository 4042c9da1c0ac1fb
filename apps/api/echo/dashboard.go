package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/muhammadsami84343/ecampus/core/dashboard"
)

func registerDashboardAPI(g *echo.Group, svc dashboard.Service) {
	g.GET("/dashboard/stats", func(ctx echo.Context) error {
		stats, err := svc.Stats(ctx.Request().Context())
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, stats)
	})
}
