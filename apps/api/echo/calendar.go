package echoapi

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/calendar"
)

type calendarAPI struct {
	counter calendar.Counter
}

func registerCalendarAPI(g *echo.Group, counter calendar.Counter) {
	api := &calendarAPI{counter: counter}

	grp := g.Group("/calendar")
	grp.GET("/days", api.days)
	grp.GET("/holidays", api.holidays)
}

type daysResponse struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	ExcludeWeekends bool   `json:"exclude_weekends"`
	Days            int    `json:"days"`
}

func (api *calendarAPI) days(ctx echo.Context) error {
	var (
		start, end      time.Time
		excludeWeekends bool
	)
	err := echo.QueryParamsBinder(ctx).
		MustTime("start", &start, core.DateLayout).
		MustTime("end", &end, core.DateLayout).
		Bool("exclude_weekends", &excludeWeekends).
		BindError()
	if err != nil {
		return bindingError(err)
	}

	n, err := api.counter.CountDays(start, end, excludeWeekends)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, daysResponse{
		Start:           start.Format(core.DateLayout),
		End:             end.Format(core.DateLayout),
		ExcludeWeekends: excludeWeekends,
		Days:            n,
	})
}

type holiday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

func (api *calendarAPI) holidays(ctx echo.Context) error {
	res := make([]holiday, 0, len(api.counter.Holidays))
	for d, name := range api.counter.Holidays {
		res = append(res, holiday{Date: d.Format(core.DateLayout), Name: name})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Date < res[j].Date })
	return ctx.JSON(http.StatusOK, res)
}
