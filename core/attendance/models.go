package attendance

import (
	"math"
	"time"

	"github.com/muhammadsami84343/ecampus/core"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusLeave   Status = "leave"
)

var AllStatuses = []Status{StatusPresent, StatusAbsent, StatusLate, StatusLeave}

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusLeave:
		return true
	}
	return false
}

// Record is a student's attendance tally for a reporting period.
type Record struct {
	StudentID   string    `json:"student_id" validate:"required"`
	AdmissionNo string    `json:"admission_no"`
	Name        string    `json:"name" validate:"required"`
	Class       string    `json:"class" validate:"required"`
	Gender      string    `json:"gender" validate:"omitempty,oneof=male female"`
	Total       int       `json:"total" validate:"gte=0"`
	Present     int       `json:"present" validate:"gte=0"`
	Absent      int       `json:"absent" validate:"gte=0"`
	Late        int       `json:"late" validate:"gte=0"`
	Leave       int       `json:"leave" validate:"gte=0"`
	Status      Status    `json:"status" validate:"omitempty,attendancestatus"`
	Date        time.Time `json:"date"` // last marked day, UTC
}

// Clean normalises free-text fields.
func (r *Record) Clean() {
	r.StudentID = core.CleanString(r.StudentID)
	r.AdmissionNo = core.CleanString(r.AdmissionNo)
	r.Name = core.CleanString(r.Name)
	r.Class = core.CleanString(r.Class)
	r.Gender = core.CleanString(r.Gender, true /* lower */)
	r.Status = Status(core.CleanString(string(r.Status), true /* lower */))
}

// Marked is the number of sessions accounted for by a status.
func (r Record) Marked() int {
	return r.Present + r.Absent + r.Late + r.Leave
}

// CheckCounts verifies present + absent + late + leave <= total.
// Imported data is not guaranteed to satisfy it, so it is checked rather than assumed.
func (r Record) CheckCounts() error {
	if r.Marked() > r.Total {
		return core.NewValidationError(nil, core.FieldError{
			Field: "total",
			Error: "present, absent, late and leave counts exceed total sessions",
		})
	}
	return nil
}

// Percentage returns present/total*100 rounded to one decimal; ok is false when total is 0.
func (r Record) Percentage() (pct float64, ok bool) {
	if r.Total <= 0 {
		return 0, false
	}
	return Round1(float64(r.Present) / float64(r.Total) * 100), true
}

// Bucket returns the record's performance band; ok is false when total is 0.
func (r Record) Bucket() (Bucket, bool) {
	pct, ok := r.Percentage()
	if !ok {
		return "", false
	}
	return BucketFor(pct), true
}

// Round1 rounds to one decimal place.
func Round1(f float64) float64 {
	return math.Round(f*10) / 10
}

type Bucket string

const (
	BucketExcellent Bucket = "excellent"
	BucketGood      Bucket = "good"
	BucketAverage   Bucket = "average"
	BucketPoor      Bucket = "poor"
)

var AllBuckets = []Bucket{BucketExcellent, BucketGood, BucketAverage, BucketPoor}

// BucketFor classifies a percentage using [95,∞) [85,95) [70,85) [0,70).
func BucketFor(pct float64) Bucket {
	switch {
	case pct >= 95:
		return BucketExcellent
	case pct >= 85:
		return BucketGood
	case pct >= 70:
		return BucketAverage
	default:
		return BucketPoor
	}
}

func (b Bucket) IsValid() bool {
	switch b {
	case BucketExcellent, BucketGood, BucketAverage, BucketPoor:
		return true
	}
	return false
}

// Summary aggregates a set of records.
type Summary struct {
	Total        int `json:"total"`
	PresentCount int `json:"present_count"`
	AbsentCount  int `json:"absent_count"`
	LateCount    int `json:"late_count"`
	LeaveCount   int `json:"leave_count"`
	// AveragePercentage is nil when no record has any session.
	AveragePercentage *float64       `json:"average_percentage"`
	Buckets           map[Bucket]int `json:"buckets"`
	Sessions          Sessions       `json:"sessions"`
}

// Sessions sums the per-record counters.
type Sessions struct {
	Total   int `json:"total"`
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	Leave   int `json:"leave"`
}

// DailyMark records one day of attendance for a class.
type DailyMark struct {
	Date  string        `json:"date" validate:"required,isodate"`
	Class string        `json:"class" validate:"required"`
	Marks []StudentMark `json:"marks" validate:"required,min=1,dive"`
}

type StudentMark struct {
	StudentID string `json:"student_id" validate:"required"`
	Status    Status `json:"status" validate:"required,attendancestatus"`
}

// Clean normalises the class and every mark.
func (m *DailyMark) Clean() {
	m.Date = core.CleanString(m.Date)
	m.Class = core.CleanString(m.Class)
	for i := range m.Marks {
		m.Marks[i].StudentID = core.CleanString(m.Marks[i].StudentID)
		m.Marks[i].Status = Status(core.CleanString(string(m.Marks[i].Status), true /* lower */))
	}
}
