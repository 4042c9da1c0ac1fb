package echoapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/attendance"
	"github.com/muhammadsami84343/ecampus/core/report"
)

type attendanceAPI struct {
	svc      attendance.Service
	exporter report.Exporter
	pg       paginator
}

func registerAttendanceAPI(g *echo.Group, svc attendance.Service, exporter report.Exporter, pg paginator) {
	api := &attendanceAPI{svc: svc, exporter: exporter, pg: pg}

	grp := g.Group("/attendance")
	grp.GET("", api.list)
	grp.POST("", api.save)
	grp.GET("/summary", api.summary)
	grp.GET("/export", api.export)
	grp.POST("/daily", api.markDay)
	grp.GET("/:id", api.get)
}

func (api *attendanceAPI) bindQuery(ctx echo.Context) (attendance.Query, error) {
	var q attendance.Query
	if err := bindQuery(ctx, &q); err != nil {
		return q, err
	}
	dates, err := bindDateRange(ctx)
	if err != nil {
		return q, err
	}
	q.Dates = dates
	q.Clean()

	if q.Status != "" && !q.Status.IsValid() {
		return q, core.NewValidationError(nil, core.FieldError{Field: "status", Error: "unknown status " + string(q.Status)})
	}
	if q.Bucket != "" && !q.Bucket.IsValid() {
		return q, core.NewValidationError(nil, core.FieldError{Field: "bucket", Error: "unknown bucket " + string(q.Bucket)})
	}
	return q, nil
}

func (api *attendanceAPI) list(ctx echo.Context) error {
	q, err := api.bindQuery(ctx)
	if err != nil {
		return err
	}
	page, size, err := api.pg.bind(ctx)
	if err != nil {
		return err
	}
	res, err := api.svc.List(ctx.Request().Context(), q, page, size)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *attendanceAPI) summary(ctx echo.Context) error {
	q, err := api.bindQuery(ctx)
	if err != nil {
		return err
	}
	res, err := api.svc.Summary(ctx.Request().Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *attendanceAPI) get(ctx echo.Context) error {
	rec, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *attendanceAPI) save(ctx echo.Context) error {
	var rec attendance.Record
	if err := ctx.Bind(&rec); err != nil {
		return err
	}
	saved, err := api.svc.Save(ctx.Request().Context(), rec)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, saved)
}

func (api *attendanceAPI) markDay(ctx echo.Context) error {
	var mark attendance.DailyMark
	if err := ctx.Bind(&mark); err != nil {
		return err
	}
	records, err := api.svc.MarkDay(ctx.Request().Context(), mark)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, records)
}

// export sends the filtered records as an XLSX workbook.
func (api *attendanceAPI) export(ctx echo.Context) error {
	q, err := api.bindQuery(ctx)
	if err != nil {
		return err
	}
	records, err := api.svc.Find(ctx.Request().Context(), q)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = api.exporter.WriteAttendance(&buf, records); err != nil {
		return errors.Wrap(err, "exporting attendance")
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", today().Format(core.DateLayout))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Blob(http.StatusOK, report.XLSXContentType, buf.Bytes())
}
