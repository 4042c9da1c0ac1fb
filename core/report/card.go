package report

import (
	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/attendance"
)

// SubjectResult is a graded Mark.
type SubjectResult struct {
	Mark
	Percentage float64 `json:"percentage"`
	Grade      Grade   `json:"grade"`
}

// ReportCard sums up a student's term.
type ReportCard struct {
	StudentID string          `json:"student_id"`
	Name      string          `json:"name,omitempty"`
	Class     string          `json:"class,omitempty"`
	Subjects  []SubjectResult `json:"subjects"`
	// Percentage is the overall score over every subject's total.
	Percentage float64 `json:"percentage"`
	Grade      Grade   `json:"grade"`
	// Attendance is nil when the student has no attendance session.
	Attendance *float64 `json:"attendance"`
}

// NewCardRequest contains information needed to grade a student.
type NewCardRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Marks     []Mark `json:"marks" validate:"required,min=1,dive"`
}

// NewReportCard grades every mark and the overall result. rec may be zero when the student has no attendance record.
func NewReportCard(studentID string, marks []Mark, rec attendance.Record) (ReportCard, error) {
	card := ReportCard{
		StudentID: core.CleanString(studentID),
		Name:      rec.Name,
		Class:     rec.Class,
		Subjects:  make([]SubjectResult, 0, len(marks)),
	}
	if len(marks) == 0 {
		return ReportCard{}, core.NewValidationError(nil, core.FieldError{Field: "marks", Error: "at least one mark is required"})
	}

	var scored, total float64
	for _, m := range marks {
		m.Subject = core.CleanString(m.Subject)
		pct, err := m.ratio()
		if err != nil {
			return ReportCard{}, err
		}
		card.Subjects = append(card.Subjects, SubjectResult{Mark: m, Percentage: attendance.Round1(pct), Grade: GradeFor(pct)})
		scored += m.Marks
		total += m.Total
	}
	overall := scored / total * 100
	card.Percentage = attendance.Round1(overall)
	card.Grade = GradeFor(overall)

	if pct, ok := rec.Percentage(); ok {
		card.Attendance = &pct
	}
	return card, nil
}
