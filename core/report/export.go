package report

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/attendance"
)

const (
	SummarySheet = "Summary"
	RecordsSheet = "Records"

	// XLSXContentType is the media type of exported workbooks.
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var recordsHeader = []interface{}{
	"Student ID", "Admission No", "Name", "Class", "Gender",
	"Total", "Present", "Absent", "Late", "Leave", "Percentage", "Bucket", "Status", "Last Marked",
}

// Exporter writes attendance reports as XLSX workbooks.
type Exporter struct {
	Title string
}

// WriteAttendance writes a workbook with a summary sheet and one row per record.
func (e Exporter) WriteAttendance(w io.Writer, records []attendance.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return errors.Wrap(err, "renaming summary sheet")
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}

	if err = e.writeSummary(f, attendance.Summarize(records), headerStyle); err != nil {
		return err
	}
	if _, err = f.NewSheet(RecordsSheet); err != nil {
		return errors.Wrap(err, "creating records sheet")
	}
	if err = writeRecords(f, records, headerStyle); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err = f.Write(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}

func (e Exporter) writeSummary(f *excelize.File, s attendance.Summary, headerStyle int) error {
	title := e.Title
	if title == "" {
		title = "Attendance Report"
	}
	average := "-"
	if s.AveragePercentage != nil {
		average = fmt.Sprintf("%.1f%%", *s.AveragePercentage)
	}

	rows := [][]interface{}{
		{title},
		{},
		{"Metric", "Value"},
		{"Students", s.Total},
		{"Present", s.PresentCount},
		{"Absent", s.AbsentCount},
		{"Late", s.LateCount},
		{"On leave", s.LeaveCount},
		{"Average attendance", average},
	}
	for _, b := range attendance.AllBuckets {
		rows = append(rows, []interface{}{fmt.Sprintf("Bucket: %s", b), s.Buckets[b]})
	}

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &rows[i]); err != nil {
			return errors.Wrapf(err, "writing summary row %d", i+1)
		}
	}
	if err := f.SetCellStyle(SummarySheet, "A3", "B3", headerStyle); err != nil {
		return errors.Wrap(err, "styling summary header")
	}
	return errors.Wrap(f.SetColWidth(SummarySheet, "A", "A", 24), "sizing summary columns")
}

func writeRecords(f *excelize.File, records []attendance.Record, headerStyle int) error {
	if err := f.SetSheetRow(RecordsSheet, "A1", &recordsHeader); err != nil {
		return errors.Wrap(err, "writing records header")
	}
	lastCol, _ := excelize.ColumnNumberToName(len(recordsHeader))
	if err := f.SetCellStyle(RecordsSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return errors.Wrap(err, "styling records header")
	}

	for i, r := range records {
		var pct, bucket, marked interface{} = "-", "-", ""
		if p, ok := r.Percentage(); ok {
			pct, bucket = p, string(attendance.BucketFor(p))
		}
		if !r.Date.IsZero() {
			marked = r.Date.Format(core.DateLayout)
		}
		row := []interface{}{
			r.StudentID, r.AdmissionNo, r.Name, r.Class, r.Gender,
			r.Total, r.Present, r.Absent, r.Late, r.Leave, pct, bucket, string(r.Status), marked,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(RecordsSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "writing record %s", r.StudentID)
		}
	}
	return errors.Wrap(f.SetColWidth(RecordsSheet, "C", "C", 24), "sizing records columns")
}
