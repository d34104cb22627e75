package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SkShizan/clg-project/internal/domain/attendance"
	"github.com/SkShizan/clg-project/internal/domain/employee"
)

type attendanceRepository struct {
	s *Store
}

func NewAttendanceRepository(s *Store) attendance.AttendanceRepository {
	return &attendanceRepository{s: s}
}

func (r *attendanceRepository) findLocked(employeeID string, date time.Time) (attendance.Attendance, bool) {
	for _, a := range r.s.data.attendances {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			return a, true
		}
	}
	return attendance.Attendance{}, false
}

func (r *attendanceRepository) insertLocked(employeeID string, date time.Time) attendance.Attendance {
	a := attendance.New(employeeID, date)
	now := r.s.tick()
	a.ID = newID()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.s.data.attendances[a.ID] = a
	return a
}

func (r *attendanceRepository) EnsureRecord(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	err := r.s.begin("attendance.EnsureRecord")
	defer r.s.mu.Unlock()
	if err != nil {
		return attendance.Attendance{}, err
	}

	if a, ok := r.findLocked(employeeID, date); ok {
		return a, nil
	}
	if _, ok := r.s.data.employees[employeeID]; !ok {
		return attendance.Attendance{}, employee.ErrEmployeeNotFound
	}
	return r.insertLocked(employeeID, date), nil
}

func (r *attendanceRepository) EnsureForAllEmployees(ctx context.Context, date time.Time) (int64, error) {
	err := r.s.begin("attendance.EnsureForAllEmployees")
	defer r.s.mu.Unlock()
	if err != nil {
		return 0, err
	}

	var created int64
	for empID := range r.s.data.employees {
		if _, ok := r.findLocked(empID, date); !ok {
			r.insertLocked(empID, date)
			created++
		}
	}
	return created, nil
}

func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	err := r.s.begin("attendance.Update")
	defer r.s.mu.Unlock()
	if err != nil {
		return err
	}

	current, ok := r.s.data.attendances[a.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	current.CheckInAt = a.CheckInAt
	current.CheckOutAt = a.CheckOutAt
	current.Status = a.Status
	current.UpdatedAt = r.s.tick()
	r.s.data.attendances[a.ID] = current
	return nil
}

func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	err := r.s.begin("attendance.ListByEmployee")
	defer r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var result []attendance.Attendance
	for _, a := range r.s.data.attendances {
		if a.EmployeeID == employeeID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.DailyAttendance, error) {
	err := r.s.begin("attendance.ListByDate")
	defer r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var result []attendance.DailyAttendance
	for _, a := range r.s.data.attendances {
		if !a.Date.Equal(date) {
			continue
		}
		e, ok := r.s.data.employees[a.EmployeeID]
		if !ok {
			continue
		}
		details := r.s.employeeDetailsLocked(e)
		result = append(result, attendance.DailyAttendance{
			Attendance:     a,
			EmployeeCode:   details.EmployeeCode,
			Username:       details.Username,
			FirstName:      details.FirstName,
			LastName:       details.LastName,
			DepartmentName: details.DepartmentName,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.EmployeeCode < b.EmployeeCode
	})
	return result, nil
}

func (r *attendanceRepository) DeleteByEmployee(ctx context.Context, employeeID string) error {
	err := r.s.begin("attendance.DeleteByEmployee")
	defer r.s.mu.Unlock()
	if err != nil {
		return err
	}

	for id, a := range r.s.data.attendances {
		if a.EmployeeID == employeeID {
			delete(r.s.data.attendances, id)
		}
	}
	return nil
}
