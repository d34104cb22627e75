package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusLeave   Status = "LEAVE"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave:
		return true
	}
	return false
}

// Attendance is the single record of an employee for one calendar day.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckInAt  *time.Time
	CheckOutAt *time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// New returns the default record for a day nobody has touched yet.
func New(employeeID string, date time.Time) Attendance {
	return Attendance{
		EmployeeID: employeeID,
		Date:       date,
		Status:     StatusAbsent,
	}
}

// CheckIn moves an ABSENT record to PRESENT. It reports false and leaves the
// record untouched in any other state.
func (a *Attendance) CheckIn(now time.Time) bool {
	if a.Status != StatusAbsent {
		return false
	}
	a.CheckInAt = &now
	a.Status = StatusPresent
	return true
}

// CheckOut stamps the check-out time once, and only on a PRESENT record.
func (a *Attendance) CheckOut(now time.Time) bool {
	if a.Status != StatusPresent || a.CheckOutAt != nil {
		return false
	}
	a.CheckOutAt = &now
	return true
}

// MarkLeave overwrites whatever the day held with an approved leave.
func (a *Attendance) MarkLeave() {
	a.Status = StatusLeave
	a.CheckInAt = nil
	a.CheckOutAt = nil
}

// DailyAttendance is an attendance row joined with the owning employee, as
// shown on the staff report.
type DailyAttendance struct {
	Attendance
	EmployeeCode   string
	Username       string
	FirstName      string
	LastName       string
	DepartmentName *string
}
