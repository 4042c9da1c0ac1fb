package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/muhammadsami84343/ecampus/core/attendance"
)

const attendanceColumns = `student_id, admission_no, name, class, gender,
	total, present, absent, late, on_leave, status, marked_on`

type attendanceRow struct {
	StudentID   string    `db:"student_id"`
	AdmissionNo string    `db:"admission_no"`
	Name        string    `db:"name"`
	Class       string    `db:"class"`
	Gender      string    `db:"gender"`
	Total       int       `db:"total"`
	Present     int       `db:"present"`
	Absent      int       `db:"absent"`
	Late        int       `db:"late"`
	Leave       int       `db:"on_leave"`
	Status      string    `db:"status"`
	MarkedOn    null.Time `db:"marked_on"`
}

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (attendanceRepository) boil(rec attendance.Record) attendanceRow {
	return attendanceRow{
		StudentID:   rec.StudentID,
		AdmissionNo: rec.AdmissionNo,
		Name:        rec.Name,
		Class:       rec.Class,
		Gender:      rec.Gender,
		Total:       rec.Total,
		Present:     rec.Present,
		Absent:      rec.Absent,
		Late:        rec.Late,
		Leave:       rec.Leave,
		Status:      string(rec.Status),
		MarkedOn:    null.NewTime(rec.Date.UTC(), !rec.Date.IsZero()),
	}
}

func (attendanceRepository) unboil(row attendanceRow) attendance.Record {
	rec := attendance.Record{
		StudentID:   row.StudentID,
		AdmissionNo: row.AdmissionNo,
		Name:        row.Name,
		Class:       row.Class,
		Gender:      row.Gender,
		Total:       row.Total,
		Present:     row.Present,
		Absent:      row.Absent,
		Late:        row.Late,
		Leave:       row.Leave,
		Status:      attendance.Status(row.Status),
	}
	if row.MarkedOn.Valid {
		y, m, d := row.MarkedOn.Time.Date()
		rec.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return rec
}

func (repo attendanceRepository) FindRecords(ctx context.Context) ([]attendance.Record, error) {
	var rows []attendanceRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+attendanceColumns+` FROM attendance_record ORDER BY seq`); err != nil {
		return nil, errors.Wrap(err, "selecting attendance records")
	}
	records := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, repo.unboil(row))
	}
	return records, nil
}

func (repo attendanceRepository) GetRecord(ctx context.Context, studentID string) (attendance.Record, error) {
	var row attendanceRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+attendanceColumns+` FROM attendance_record WHERE student_id = $1`, studentID)
	if err != nil {
		return attendance.Record{}, trapNoRowsErr(err, attendance.ErrNotFound)
	}
	return repo.unboil(row), nil
}

func (repo attendanceRepository) SaveRecord(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO attendance_record (`+attendanceColumns+`)
		VALUES (:student_id, :admission_no, :name, :class, :gender,
			:total, :present, :absent, :late, :on_leave, :status, :marked_on)
		ON CONFLICT (student_id) DO UPDATE SET
			admission_no = EXCLUDED.admission_no, name = EXCLUDED.name, class = EXCLUDED.class,
			gender = EXCLUDED.gender, total = EXCLUDED.total, present = EXCLUDED.present,
			absent = EXCLUDED.absent, late = EXCLUDED.late, on_leave = EXCLUDED.on_leave,
			status = EXCLUDED.status, marked_on = EXCLUDED.marked_on`,
		repo.boil(rec),
	)
	if err != nil {
		return attendance.Record{}, errors.Wrap(err, "upserting attendance record")
	}
	return repo.GetRecord(ctx, rec.StudentID)
}

func (repo attendanceRepository) UpdateRecords(ctx context.Context, studentIDs []string, fn func(rec *attendance.Record) error) ([]attendance.Record, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "beginning transaction")
	}
	defer rollback(tx.Tx)

	var rows []attendanceRow
	err = tx.SelectContext(ctx, &rows,
		`SELECT `+attendanceColumns+` FROM attendance_record WHERE student_id = ANY($1) FOR UPDATE`,
		pq.Array(studentIDs),
	)
	if err != nil {
		return nil, errors.Wrap(err, "locking attendance records")
	}
	byID := make(map[string]attendanceRow, len(rows))
	for _, row := range rows {
		byID[row.StudentID] = row
	}

	updated := make([]attendance.Record, 0, len(studentIDs))
	for _, id := range studentIDs {
		row, ok := byID[id]
		if !ok {
			return nil, attendance.ErrNotFound
		}
		rec := repo.unboil(row)
		if err = fn(&rec); err != nil {
			return nil, err
		}
		_, err = tx.NamedExecContext(ctx, `
			UPDATE attendance_record SET
				total = :total, present = :present, absent = :absent, late = :late,
				on_leave = :on_leave, status = :status, marked_on = :marked_on
			WHERE student_id = :student_id`,
			repo.boil(rec),
		)
		if err != nil {
			return nil, errors.Wrapf(err, "updating attendance record %s", id)
		}
		updated = append(updated, rec)
	}

	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "committing attendance records")
	}
	return updated, nil
}
