package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/muhammadsami84343/ecampus/core/attendance"
	"github.com/muhammadsami84343/ecampus/storage/database"
)

// DatabaseURLEnv names the variable holding the Postgres test database DSN.
const DatabaseURLEnv = "TEST_DATABASE_URL"

// PrepareDB opens and migrates the test database, skipping the test when none is configured.
// Every table is emptied when the test ends.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv(DatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s not set", DatabaseURLEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("sqlx.Open() failed: %v", err)
	}
	if err = database.Ping(ctx, db.DB); err != nil {
		t.Fatalf("database.Ping() failed: %v", err)
	}
	if err = database.Migrate(ctx, db.DB); err != nil {
		t.Fatalf("database.Migrate() failed: %v", err)
	}

	t.Cleanup(func() {
		_, _ = db.Exec("TRUNCATE attendance_record, leave_request, leave_balance")
		_ = db.Close()
	})
	return db
}

// CreateRecord saves an attendance record of a class.
func CreateRecord(
	t *testing.T,
	repo attendance.Repository,
	studentID, name, class, gender string,
	total, present int,
) attendance.Record {
	t.Helper()
	rec, err := repo.SaveRecord(context.Background(), attendance.Record{
		StudentID:   studentID,
		AdmissionNo: "ADM-" + studentID,
		Name:        name,
		Class:       class,
		Gender:      gender,
		Total:       total,
		Present:     present,
		Absent:      total - present,
		Status:      attendance.StatusPresent,
	})
	if err != nil {
		t.Fatalf("createRecord() failed: %v", err)
	}
	return rec
}
