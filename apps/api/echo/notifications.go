package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	notifysvc "github.com/muhammadsami84343/ecampus/services/notify"
)

const defaultNotificationLimit = 20

func registerNotificationAPI(g *echo.Group, reader notifysvc.Reader) {
	g.GET("/notifications", func(ctx echo.Context) error {
		limit := defaultNotificationLimit
		if err := echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
			return bindingError(err)
		}
		notes, err := reader.Recent(ctx.Request().Context(), limit)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, notes)
	})
}
