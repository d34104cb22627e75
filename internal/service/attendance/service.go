package attendance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SkShizan/clg-project/internal/domain/attendance"
	"github.com/SkShizan/clg-project/internal/domain/employee"
	"github.com/SkShizan/clg-project/internal/pkg/clock"
	"github.com/SkShizan/clg-project/internal/pkg/database"
	"github.com/SkShizan/clg-project/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	clock          clock.Clock
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		clock:          clk,
	}
}

// Dashboard implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Dashboard(ctx context.Context, emp employee.Employee) (attendance.DashboardResponse, error) {
	var (
		today   attendance.Attendance
		history []attendance.Attendance
	)

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		today, err = s.attendanceRepo.EnsureRecord(txCtx, emp.ID, s.clock.Today())
		if err != nil {
			return fmt.Errorf("failed to ensure today's attendance: %w", err)
		}

		history, err = s.attendanceRepo.ListByEmployee(txCtx, emp.ID)
		if err != nil {
			return fmt.Errorf("failed to list attendance history: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.DashboardResponse{}, err
	}

	todayResp := attendance.NewAttendanceResponse(today)
	resp := attendance.DashboardResponse{
		ProfileLinked: true,
		Today:         &todayResp,
		History:       make([]attendance.AttendanceResponse, 0, len(history)),
	}
	for _, a := range history {
		resp.History = append(resp.History, attendance.NewAttendanceResponse(a))
	}
	return resp, nil
}

// CheckIn implements attendance.AttendanceService. A second check-in, or one
// on a LEAVE day, returns today's record unchanged.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, emp employee.Employee) (attendance.AttendanceResponse, error) {
	return s.transition(ctx, emp, "check-in", func(a *attendance.Attendance) bool {
		return a.CheckIn(s.clock.Now())
	})
}

// CheckOut implements attendance.AttendanceService. It only stamps a PRESENT
// record that has not been checked out yet.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, emp employee.Employee) (attendance.AttendanceResponse, error) {
	return s.transition(ctx, emp, "check-out", func(a *attendance.Attendance) bool {
		return a.CheckOut(s.clock.Now())
	})
}

func (s *AttendanceServiceImpl) transition(ctx context.Context, emp employee.Employee, action string, apply func(a *attendance.Attendance) bool) (attendance.AttendanceResponse, error) {
	var record attendance.Attendance

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		record, err = s.attendanceRepo.EnsureRecord(txCtx, emp.ID, s.clock.Today())
		if err != nil {
			return fmt.Errorf("failed to ensure today's attendance: %w", err)
		}

		if !apply(&record) {
			return nil
		}

		if err := s.attendanceRepo.Update(txCtx, record); err != nil {
			return fmt.Errorf("failed to save %s: %w", action, err)
		}
		slog.Info("Attendance recorded", "action", action, "employee_id", emp.ID, "date", record.Date.Format(validator.DateLayout))
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(record), nil
}

// DailyReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DailyReport(ctx context.Context, rawDate string) (attendance.DailyReportResponse, error) {
	date := attendance.ParseReportDate(rawDate, s.clock.Today())

	var rows []attendance.DailyAttendance
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err := s.attendanceRepo.EnsureForAllEmployees(txCtx, date)
		if err != nil {
			return fmt.Errorf("failed to backfill attendance: %w", err)
		}
		if created > 0 {
			slog.Debug("Backfilled absent attendance", "date", date.Format(validator.DateLayout), "count", created)
		}

		rows, err = s.attendanceRepo.ListByDate(txCtx, date)
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.DailyReportResponse{}, err
	}

	resp := attendance.DailyReportResponse{
		Date:    date.Format(validator.DateLayout),
		Records: make([]attendance.DailyAttendanceResponse, 0, len(rows)),
	}
	for _, row := range rows {
		switch row.Status {
		case attendance.StatusPresent:
			resp.Present++
		case attendance.StatusLeave:
			resp.Leave++
		default:
			resp.Absent++
		}
		resp.Records = append(resp.Records, attendance.NewDailyAttendanceResponse(row))
	}
	return resp, nil
}
