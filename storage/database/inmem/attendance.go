package inmemdb

import (
	"context"

	"github.com/muhammadsami84343/ecampus/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

func (repo *attendanceRepository) FindRecords(_ context.Context) ([]attendance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	records := make([]attendance.Record, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		records = append(records, *repo.db.table[id])
	}
	return records, nil
}

func (repo *attendanceRepository) GetRecord(_ context.Context, studentID string) (attendance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rec, ok := repo.db.table[studentID]; ok {
		return *rec, nil
	}
	return attendance.Record{}, attendance.ErrNotFound
}

func (repo *attendanceRepository) SaveRecord(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[rec.StudentID]; !ok {
		repo.db.order = append(repo.db.order, rec.StudentID)
	}
	repo.db.table[rec.StudentID] = &rec
	return rec, nil
}

func (repo *attendanceRepository) UpdateRecords(_ context.Context, studentIDs []string, fn func(rec *attendance.Record) error) ([]attendance.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	// work on copies: nothing is saved unless every record updates
	updated := make([]attendance.Record, 0, len(studentIDs))
	for _, id := range studentIDs {
		orig, ok := repo.db.table[id]
		if !ok {
			return nil, attendance.ErrNotFound
		}
		rec := *orig
		if err := fn(&rec); err != nil {
			return nil, err
		}
		updated = append(updated, rec)
	}
	for i := range updated {
		rec := updated[i]
		repo.db.table[rec.StudentID] = &rec
	}
	return updated, nil
}
