// Package report grades exam marks and renders attendance reports.
package report

import (
	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/attendance"
)

type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// GradeFor maps a percentage to its letter grade: A+ ≥90, A ≥80, B ≥70, C ≥60, D ≥50, F below.
func GradeFor(pct float64) Grade {
	switch {
	case pct >= 90:
		return GradeAPlus
	case pct >= 80:
		return GradeA
	case pct >= 70:
		return GradeB
	case pct >= 60:
		return GradeC
	case pct >= 50:
		return GradeD
	default:
		return GradeF
	}
}

// Mark is a student's score in one subject.
type Mark struct {
	Subject string  `json:"subject" validate:"required"`
	Marks   float64 `json:"marks" validate:"gte=0,ltefield=Total"`
	Total   float64 `json:"total" validate:"gt=0"`
}

// Percentage returns marks/total*100 rounded to one decimal.
func (m Mark) Percentage() (float64, error) {
	pct, err := m.ratio()
	if err != nil {
		return 0, err
	}
	return attendance.Round1(pct), nil
}

func (m Mark) ratio() (float64, error) {
	if m.Total <= 0 {
		return 0, core.NewValidationError(nil, core.FieldError{Field: "total", Error: "total must be greater than 0"})
	}
	if m.Marks < 0 || m.Marks > m.Total {
		return 0, core.NewValidationError(nil, core.FieldError{Field: "marks", Error: "marks must be between 0 and total"})
	}
	return m.Marks / m.Total * 100, nil
}
