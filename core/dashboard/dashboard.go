// Package dashboard aggregates the figures shown on the admin dashboard.
package dashboard

import (
	"context"

	"github.com/pkg/errors"

	"github.com/muhammadsami84343/ecampus/core/attendance"
	"github.com/muhammadsami84343/ecampus/core/leave"
)

type Counts struct {
	Students int64 `json:"students"`
	Staff    int64 `json:"staff"`
	Classes  int64 `json:"classes"`
}

// Directory knows the school's population.
type Directory interface {
	Counts(ctx context.Context) (Counts, error)
}

type Stats struct {
	Counts
	PendingLeave int `json:"pending_leave"`
	// AttendanceAverage is nil when no attendance was recorded yet.
	AttendanceAverage *float64                  `json:"attendance_average"`
	AttendanceBuckets map[attendance.Bucket]int `json:"attendance_buckets"`
}

type Service interface {
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	dir       Directory
	leaveSvc  leave.Service
	attendSvc attendance.Service
}

func NewService(dir Directory, leaveSvc leave.Service, attendSvc attendance.Service) Service {
	return &service{dir: dir, leaveSvc: leaveSvc, attendSvc: attendSvc}
}

func (svc *service) Stats(ctx context.Context) (Stats, error) {
	var (
		stats Stats
		err   error
	)
	if svc.dir != nil {
		if stats.Counts, err = svc.dir.Counts(ctx); err != nil {
			return Stats{}, errors.Wrap(err, "counting directory")
		}
	}

	pending, err := svc.leaveSvc.Query(ctx, leave.Query{Status: leave.StatusPending}, 1, 1)
	if err != nil {
		return Stats{}, errors.Wrap(err, "counting pending leave")
	}
	stats.PendingLeave = pending.TotalItems

	summary, err := svc.attendSvc.Summary(ctx, attendance.Query{})
	if err != nil {
		return Stats{}, errors.Wrap(err, "summarizing attendance")
	}
	stats.AttendanceAverage = summary.AveragePercentage
	stats.AttendanceBuckets = summary.Buckets
	return stats, nil
}
