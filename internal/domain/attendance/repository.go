package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// EnsureRecord returns the record for (employeeID, date), creating an
	// ABSENT one if none exists. Concurrent callers get the same row.
	EnsureRecord(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	// EnsureForAllEmployees creates missing ABSENT records for every employee
	// on date and returns how many were created.
	EnsureForAllEmployees(ctx context.Context, date time.Time) (int64, error)
	Update(ctx context.Context, a Attendance) error
	// ListByEmployee orders newest date first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	ListByDate(ctx context.Context, date time.Time) ([]DailyAttendance, error)
	DeleteByEmployee(ctx context.Context, employeeID string) error
}
