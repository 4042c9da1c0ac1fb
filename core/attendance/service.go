package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/calendar"
	"github.com/muhammadsami84343/ecampus/core/query"
)

var ErrNotFound = errors.WithMessage(core.ErrNotFound, "attendance record")

type (
	Repository interface {
		// FindRecords returns every record in a stable (insertion) order.
		FindRecords(ctx context.Context) ([]Record, error)
		GetRecord(ctx context.Context, studentID string) (Record, error)
		// SaveRecord creates or replaces the record of rec.StudentID.
		SaveRecord(ctx context.Context, rec Record) (Record, error)
		// UpdateRecords applies fn to each listed record atomically: either every record is saved or none.
		UpdateRecords(ctx context.Context, studentIDs []string, fn func(rec *Record) error) ([]Record, error)
	}

	Service interface {
		// Find returns every record matching q.
		Find(ctx context.Context, q Query) ([]Record, error)
		List(ctx context.Context, q Query, page, size int) (query.Page[Record], error)
		Summary(ctx context.Context, q Query) (Summary, error)
		Get(ctx context.Context, studentID string) (Record, error)
		Save(ctx context.Context, rec Record) (Record, error)
		MarkDay(ctx context.Context, mark DailyMark) ([]Record, error)
	}

	service struct {
		repo     Repository
		validate *validator.Validate
		notifier core.Notifier
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, validate *validator.Validate, notifier core.Notifier) Service {
	if notifier == nil {
		notifier = core.NopNotifier
	}
	return &service{repo: repo, validate: validate, notifier: notifier}
}

func (svc *service) Find(ctx context.Context, q Query) ([]Record, error) {
	records, err := svc.repo.FindRecords(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "finding records")
	}
	return Filter(records, q), nil
}

func (svc *service) List(ctx context.Context, q Query, page, size int) (query.Page[Record], error) {
	records, err := svc.Find(ctx, q)
	if err != nil {
		return query.Page[Record]{}, err
	}
	return query.Paginate(records, page, size), nil
}

func (svc *service) Summary(ctx context.Context, q Query) (Summary, error) {
	records, err := svc.Find(ctx, q)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(records), nil
}

func (svc *service) Get(ctx context.Context, studentID string) (Record, error) {
	return svc.repo.GetRecord(ctx, core.CleanString(studentID))
}

func (svc *service) Save(ctx context.Context, rec Record) (Record, error) {
	rec.Clean()
	if err := svc.validate.Struct(rec); err != nil {
		return Record{}, err
	}
	if err := rec.CheckCounts(); err != nil {
		return Record{}, err
	}
	if !rec.Date.IsZero() {
		rec.Date = calendar.Date(rec.Date)
	}
	saved, err := svc.repo.SaveRecord(ctx, rec)
	if err != nil {
		return Record{}, errors.Wrap(err, "saving record")
	}
	return saved, nil
}

// MarkDay adds one session to each listed student's record with the given status.
// Days are marked in order: a day on or before a record's last marked day is rejected.
func (svc *service) MarkDay(ctx context.Context, mark DailyMark) ([]Record, error) {
	mark.Clean()
	if err := svc.validate.Struct(mark); err != nil {
		return nil, err
	}
	day, err := calendar.ParseDate(mark.Date)
	if err != nil {
		return nil, core.NewValidationError(err, core.FieldError{Field: "date", Error: err.Error()})
	}
	if calendar.IsWeekend(day) {
		svc.notifier.Notify(core.NewNotification("attendance", core.SeverityWarning,
			fmt.Sprintf("Attendance for %s marked on a weekend (%s)", mark.Class, day.Weekday())))
	}

	statuses := make(map[string]Status, len(mark.Marks))
	ids := make([]string, 0, len(mark.Marks))
	for _, m := range mark.Marks {
		id := m.StudentID
		if _, dup := statuses[id]; dup {
			return nil, core.NewValidationError(nil, core.FieldError{Field: "marks", Error: "student " + id + " is marked twice"})
		}
		statuses[id] = m.Status
		ids = append(ids, id)
	}

	records, err := svc.repo.UpdateRecords(ctx, ids, func(rec *Record) error {
		if !query.FoldEqual(rec.Class, mark.Class) {
			return core.NewValidationError(nil, core.FieldError{
				Field: "marks",
				Error: "student " + rec.StudentID + " is not in class " + mark.Class,
			})
		}
		if !rec.Date.IsZero() {
			last := calendar.Date(rec.Date)
			switch {
			case last.Equal(day):
				return core.NewValidationError(nil, core.FieldError{
					Field: "date",
					Error: "attendance already marked on " + mark.Date + " for student " + rec.StudentID,
				})
			case last.After(day):
				return core.NewValidationError(nil, core.FieldError{
					Field: "date",
					Error: "attendance for student " + rec.StudentID + " is already marked up to " + last.Format(core.DateLayout),
				})
			}
		}
		apply(rec, statuses[rec.StudentID], day)
		return rec.CheckCounts()
	})
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NewValidationError(err, core.FieldError{Field: "marks", Error: "unknown student"})
		}
		return nil, errors.Wrap(err, "marking attendance")
	}

	svc.notifier.Notify(core.NewNotification("attendance", core.SeveritySuccess,
		fmt.Sprintf("Attendance marked for %d student(s) of %s", len(records), mark.Class)))
	return records, nil
}

func apply(rec *Record, status Status, day time.Time) {
	rec.Total++
	switch status {
	case StatusPresent:
		rec.Present++
	case StatusAbsent:
		rec.Absent++
	case StatusLate:
		rec.Late++
	case StatusLeave:
		rec.Leave++
	}
	rec.Status = status
	rec.Date = day
}
