package attendance

import (
	"time"

	"github.com/SkShizan/clg-project/internal/pkg/validator"
)

type AttendanceResponse struct {
	ID       string     `json:"id"`
	Date     string     `json:"date"`
	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`
	Status   Status     `json:"status"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:       a.ID,
		Date:     a.Date.Format(validator.DateLayout),
		CheckIn:  a.CheckInAt,
		CheckOut: a.CheckOutAt,
		Status:   a.Status,
	}
}

type DashboardResponse struct {
	// ProfileLinked is false for accounts without an employee profile; Today
	// and History are empty then.
	ProfileLinked bool                 `json:"profile_linked"`
	Today         *AttendanceResponse  `json:"today,omitempty"`
	History       []AttendanceResponse `json:"history"`
	AdminURL      string               `json:"admin_url,omitempty"`
}

type DailyAttendanceResponse struct {
	AttendanceResponse
	EmployeeID     string  `json:"employee_id"`
	Username       string  `json:"username"`
	FullName       string  `json:"full_name"`
	DepartmentName *string `json:"department_name"`
}

func NewDailyAttendanceResponse(d DailyAttendance) DailyAttendanceResponse {
	return DailyAttendanceResponse{
		AttendanceResponse: NewAttendanceResponse(d.Attendance),
		EmployeeID:         d.EmployeeCode,
		Username:           d.Username,
		FullName:           fullName(d.FirstName, d.LastName),
		DepartmentName:     d.DepartmentName,
	}
}

type DailyReportResponse struct {
	Date    string                    `json:"date"`
	Present int                       `json:"present"`
	Absent  int                       `json:"absent"`
	Leave   int                       `json:"leave"`
	Records []DailyAttendanceResponse `json:"records"`
}

// ParseReportDate reads a YYYY-MM-DD query value, falling back to today when it
// is empty or malformed.
func ParseReportDate(raw string, today time.Time) time.Time {
	if d, ok := validator.IsValidDate(raw); ok {
		return d
	}
	return today
}

func fullName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
