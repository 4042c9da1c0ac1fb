package leave

import (
	"time"

	"github.com/pkg/errors"

	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/calendar"
)

const halfDay = 0.5

// Duration computes the number of leave days between start and end.
// Half days always last 0.5 day and must start and end on the same date;
// other categories count business days, both ends included.
func Duration(counter calendar.Counter, cat Category, start, end time.Time) (float64, error) {
	start, end = calendar.Date(start), calendar.Date(end)
	if cat == CategoryHalfDay {
		if !end.Equal(start) {
			return 0, core.NewValidationError(nil, core.FieldError{
				Field: "end_date",
				Error: "a half-day leave must start and end on the same date",
			})
		}
		if calendar.IsWeekend(start) || counter.Holidays.Contains(start) {
			return 0, core.NewValidationError(nil, core.FieldError{Field: "start_date", Error: "leave cannot be taken on a non-working day"})
		}
		return halfDay, nil
	}

	days, err := counter.CountDays(start, end, true)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidDateRange) {
			return 0, core.NewValidationError(err, core.FieldError{Field: "end_date", Error: err.Error()})
		}
		return 0, err
	}
	if days == 0 {
		return 0, core.NewValidationError(nil, core.FieldError{Field: "start_date", Error: "leave range contains no working day"})
	}
	return float64(days), nil
}
