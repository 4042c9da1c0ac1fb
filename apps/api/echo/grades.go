package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/attendance"
	"github.com/muhammadsami84343/ecampus/core/report"
)

type reportAPI struct {
	attendSvc attendance.Service
	validate  *validator.Validate
}

func registerReportAPI(g *echo.Group, attendSvc attendance.Service, validate *validator.Validate) {
	api := &reportAPI{attendSvc: attendSvc, validate: validate}
	g.POST("/grades", api.grade)
}

// grade builds a report card from the posted marks and the student's attendance record, if any.
func (api *reportAPI) grade(ctx echo.Context) error {
	var req report.NewCardRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	req.StudentID = core.CleanString(req.StudentID)
	if err := api.validate.Struct(req); err != nil {
		return err
	}

	rec, err := api.attendSvc.Get(ctx.Request().Context(), req.StudentID)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return err
	}

	card, err := report.NewReportCard(req.StudentID, req.Marks, rec)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, card)
}
