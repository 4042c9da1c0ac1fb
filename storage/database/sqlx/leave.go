package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/muhammadsami84343/ecampus/core/leave"
)

const leaveColumns = `id, requester_id, category, start_date, end_date, duration, reason, status,
	attachment, decided_by, remarks, created_at, updated_at, decided_at`

type leaveRow struct {
	ID          string      `db:"id"`
	RequesterID string      `db:"requester_id"`
	Category    string      `db:"category"`
	StartDate   time.Time   `db:"start_date"`
	EndDate     null.Time   `db:"end_date"`
	Duration    float64     `db:"duration"`
	Reason      string      `db:"reason"`
	Status      string      `db:"status"`
	Attachment  null.String `db:"attachment"`
	DecidedBy   null.String `db:"decided_by"`
	Remarks     null.String `db:"remarks"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
	DecidedAt   null.Time   `db:"decided_at"`
}

type leaveRepository struct {
	db *sqlx.DB
}

var _ leave.Repository = (*leaveRepository)(nil) // interface compliance check

func NewLeaveRepository(db *sqlx.DB) leave.Repository {
	return &leaveRepository{db: db}
}

func (leaveRepository) boil(req leave.Request) leaveRow {
	return leaveRow{
		ID:          req.ID,
		RequesterID: req.RequesterID,
		Category:    string(req.Category),
		StartDate:   req.StartDate.UTC(),
		EndDate:     null.NewTime(req.EndDate.UTC(), req.Category != leave.CategoryHalfDay && !req.EndDate.IsZero()),
		Duration:    req.Duration,
		Reason:      req.Reason,
		Status:      string(req.Status),
		Attachment:  null.NewString(req.Attachment, req.Attachment != ""),
		DecidedBy:   null.NewString(req.DecidedBy, req.DecidedBy != ""),
		Remarks:     null.NewString(req.Remarks, req.Remarks != ""),
		CreatedAt:   req.CreatedAt.UTC(),
		UpdatedAt:   req.UpdatedAt.UTC(),
		DecidedAt:   null.TimeFromPtr(req.DecidedAt),
	}
}

func date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (leaveRepository) unboil(row leaveRow) leave.Request {
	req := leave.Request{
		ID:          row.ID,
		RequesterID: row.RequesterID,
		Category:    leave.Category(row.Category),
		StartDate:   date(row.StartDate),
		EndDate:     date(row.StartDate),
		Duration:    row.Duration,
		Reason:      row.Reason,
		Status:      leave.Status(row.Status),
		Attachment:  row.Attachment.String,
		DecidedBy:   row.DecidedBy.String,
		Remarks:     row.Remarks.String,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
	if row.EndDate.Valid {
		req.EndDate = date(row.EndDate.Time)
	}
	if row.DecidedAt.Valid {
		decidedAt := row.DecidedAt.Time.UTC()
		req.DecidedAt = &decidedAt
	}
	return req
}

func (repo leaveRepository) CreateRequest(ctx context.Context, req leave.Request) (leave.Request, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO leave_request (`+leaveColumns+`)
		VALUES (:id, :requester_id, :category, :start_date, :end_date, :duration, :reason, :status,
			:attachment, :decided_by, :remarks, :created_at, :updated_at, :decided_at)`,
		repo.boil(req),
	)
	if err != nil {
		return leave.Request{}, errors.Wrap(err, "inserting leave request")
	}
	return repo.GetRequest(ctx, req.ID)
}

func (repo leaveRepository) GetRequest(ctx context.Context, id string) (leave.Request, error) {
	var row leaveRow
	if err := repo.db.GetContext(ctx, &row, `SELECT `+leaveColumns+` FROM leave_request WHERE id = $1`, id); err != nil {
		return leave.Request{}, trapNoRowsErr(err, leave.ErrNotFound)
	}
	return repo.unboil(row), nil
}

func (repo leaveRepository) QueryRequests(ctx context.Context) ([]leave.Request, error) {
	var rows []leaveRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+leaveColumns+` FROM leave_request ORDER BY seq`); err != nil {
		return nil, errors.Wrap(err, "selecting leave requests")
	}
	requests := make([]leave.Request, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, repo.unboil(row))
	}
	return requests, nil
}

// UpdateRequest locks the request row for the duration of fn.
func (repo leaveRepository) UpdateRequest(ctx context.Context, id string, fn func(req *leave.Request) error) (leave.Request, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return leave.Request{}, errors.Wrap(err, "beginning transaction")
	}
	defer rollback(tx.Tx)

	var row leaveRow
	if err = tx.GetContext(ctx, &row, `SELECT `+leaveColumns+` FROM leave_request WHERE id = $1 FOR UPDATE`, id); err != nil {
		return leave.Request{}, trapNoRowsErr(err, leave.ErrNotFound)
	}
	req := repo.unboil(row)
	if err = fn(&req); err != nil {
		return leave.Request{}, err
	}

	_, err = tx.NamedExecContext(ctx, `
		UPDATE leave_request SET
			status = :status, decided_by = :decided_by, remarks = :remarks,
			updated_at = :updated_at, decided_at = :decided_at
		WHERE id = :id`,
		repo.boil(req),
	)
	if err != nil {
		return leave.Request{}, errors.Wrap(err, "updating leave request")
	}
	if err = tx.Commit(); err != nil {
		return leave.Request{}, errors.Wrap(err, "committing leave request")
	}
	return req, nil
}
