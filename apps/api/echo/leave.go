package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/leave"
)

type leaveAPI struct {
	svc leave.Service
	pg  paginator
}

func registerLeaveAPI(g *echo.Group, svc leave.Service, pg paginator) {
	api := &leaveAPI{svc: svc, pg: pg}

	grp := g.Group("/leave")
	grp.POST("", api.submit)
	grp.GET("", api.query)
	grp.GET("/balances/:requester", api.balances)
	grp.GET("/:id", api.get)
	grp.POST("/:id/approve", api.approve)
	grp.POST("/:id/reject", api.reject)
}

func (api *leaveAPI) submit(ctx echo.Context) error {
	var nr leave.NewRequest
	if err := ctx.Bind(&nr); err != nil {
		return err
	}
	req, err := api.svc.Submit(ctx.Request().Context(), nr)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, req)
}

func (api *leaveAPI) query(ctx echo.Context) error {
	var q leave.Query
	if err := bindQuery(ctx, &q); err != nil {
		return err
	}
	dates, err := bindDateRange(ctx)
	if err != nil {
		return err
	}
	q.Dates = dates
	q.Clean()

	page, size, err := api.pg.bind(ctx)
	if err != nil {
		return err
	}
	res, err := api.svc.Query(ctx.Request().Context(), q, page, size)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *leaveAPI) get(ctx echo.Context) error {
	req, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, req)
}

func (api *leaveAPI) approve(ctx echo.Context) error {
	return api.decide(ctx, api.svc.Approve)
}

func (api *leaveAPI) reject(ctx echo.Context) error {
	return api.decide(ctx, api.svc.Reject)
}

func (api *leaveAPI) decide(ctx echo.Context, decide func(ctx context.Context, id string, d leave.Decision) (leave.Request, error)) error {
	var d leave.Decision
	if err := ctx.Bind(&d); err != nil { // an empty body is allowed
		return err
	}
	req, err := decide(ctx.Request().Context(), ctx.Param("id"), d)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, req)
}

type balancesResponse struct {
	RequesterID string                           `json:"requester_id"`
	Balances    map[leave.Category]leave.Balance `json:"balances"`
}

func (api *leaveAPI) balances(ctx echo.Context) error {
	requester := core.CleanString(ctx.Param("requester"))
	bals, err := api.svc.Balances(ctx.Request().Context(), requester)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, balancesResponse{RequesterID: requester, Balances: bals})
}
