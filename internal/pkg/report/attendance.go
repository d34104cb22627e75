// Package report renders staff reports as XLSX workbooks.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/SkShizan/clg-project/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dailySheet      = "Attendance"
)

var dailyHeaders = []string{"Employee ID", "Name", "Username", "Department", "Status", "Check In", "Check Out"}

// DailyAttendanceFilename is the download name for a day's workbook.
func DailyAttendanceFilename(date string) string {
	return fmt.Sprintf("attendance_%s.xlsx", date)
}

// DailyAttendance writes one sheet with a title row, a styled header row and
// one row per record. Times are shown in loc.
func DailyAttendance(rep attendance.DailyReportResponse, loc *time.Location) (*bytes.Buffer, error) {
	if loc == nil {
		loc = time.Local
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", dailySheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	lastCol := string(rune('A' + len(dailyHeaders) - 1))

	f.SetCellValue(dailySheet, "A1", fmt.Sprintf("Daily attendance %s", rep.Date))
	f.MergeCell(dailySheet, "A1", lastCol+"1")
	f.SetCellStyle(dailySheet, "A1", lastCol+"1", titleStyle)
	f.SetRowHeight(dailySheet, 1, 24)

	f.SetCellValue(dailySheet, "A2", fmt.Sprintf("Present: %d  Absent: %d  Leave: %d", rep.Present, rep.Absent, rep.Leave))
	f.MergeCell(dailySheet, "A2", lastCol+"2")

	for i, h := range dailyHeaders {
		f.SetCellValue(dailySheet, fmt.Sprintf("%c4", 'A'+i), h)
	}
	f.SetCellStyle(dailySheet, "A4", lastCol+"4", headerStyle)

	row := 5
	for _, rec := range rep.Records {
		department := ""
		if rec.DepartmentName != nil {
			department = *rec.DepartmentName
		}
		values := []interface{}{
			rec.EmployeeID,
			rec.FullName,
			rec.Username,
			department,
			string(rec.Status),
			clockTime(rec.CheckIn, loc),
			clockTime(rec.CheckOut, loc),
		}
		for i, v := range values {
			f.SetCellValue(dailySheet, fmt.Sprintf("%c%d", 'A'+i, row), v)
		}
		row++
	}

	f.SetColWidth(dailySheet, "A", "A", 14)
	f.SetColWidth(dailySheet, "B", "B", 28)
	f.SetColWidth(dailySheet, "C", "D", 20)
	f.SetColWidth(dailySheet, "E", lastCol, 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func clockTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("15:04")
}
