package echoapi

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/query"
)

const (
	pageParam     = "page"
	pageSizeParam = "page_size"
)

type paginator struct {
	defaultSize int
	maxSize     int
}

func newPaginator(conf core.PaginationConfig) paginator {
	pg := paginator{defaultSize: conf.DefaultSize, maxSize: conf.MaxSize}
	if pg.defaultSize <= 0 {
		pg.defaultSize = 10
	}
	if pg.maxSize < pg.defaultSize {
		pg.maxSize = pg.defaultSize
	}
	return pg
}

// bind reads the page and page_size query params. Missing params fall back to page 1 and the default size.
func (pg paginator) bind(ctx echo.Context) (page, size int, err error) {
	page, size = 1, pg.defaultSize
	err = echo.QueryParamsBinder(ctx).
		Int(pageParam, &page).
		Int(pageSizeParam, &size).
		BindError()
	if err != nil {
		return 0, 0, bindingError(err)
	}

	switch {
	case page < 1:
		return 0, 0, core.NewValidationError(nil, core.FieldError{Field: pageParam, Error: "page must be at least 1"})
	case size < 1 || size > pg.maxSize:
		return 0, 0, core.NewValidationError(nil, core.FieldError{
			Field: pageSizeParam,
			Error: fmt.Sprintf("page_size must be between 1 and %d", pg.maxSize),
		})
	}
	return page, size, nil
}

// bindQuery binds the query params to the `query` tags of dest.
func bindQuery(ctx echo.Context, dest interface{}) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, dest); err != nil {
		return bindingError(err)
	}
	return nil
}

// bindDateRange reads the optional from/to query params (YYYY-MM-DD).
func bindDateRange(ctx echo.Context) (query.DateRange, error) {
	var dr query.DateRange
	err := echo.QueryParamsBinder(ctx).
		Time("from", &dr.From, core.DateLayout).
		Time("to", &dr.To, core.DateLayout).
		BindError()
	if err != nil {
		return query.DateRange{}, bindingError(err)
	}
	if !dr.From.IsZero() && !dr.To.IsZero() && dr.To.Before(dr.From) {
		return query.DateRange{}, core.NewValidationError(nil, core.FieldError{Field: "to", Error: "to must not be before from"})
	}
	return dr, nil
}

// bindingError turns echo's binding errors into field validation errors.
func bindingError(err error) error {
	var bErr *echo.BindingError
	if !errors.As(err, &bErr) {
		return err
	}
	msg := "this field is required"
	if len(bErr.Values) > 0 && bErr.Values[0] != "" {
		msg = fmt.Sprintf("invalid value %q", bErr.Values[0])
	}
	return core.NewValidationError(err, core.FieldError{Field: bErr.Field, Error: msg})
}

func today() time.Time {
	return time.Now().UTC()
}
