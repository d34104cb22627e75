package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SkShizan/clg-project/internal/domain/attendance"
	"github.com/SkShizan/clg-project/internal/domain/employee"
	"github.com/SkShizan/clg-project/internal/domain/leave"
	"github.com/SkShizan/clg-project/internal/pkg/clock"
	"github.com/SkShizan/clg-project/internal/pkg/database"
	"github.com/SkShizan/clg-project/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	tx             database.Transactor
	leaveRepo      leave.LeaveRequestRepository
	attendanceRepo attendance.AttendanceRepository
	clock          clock.Clock
}

func NewLeaveService(
	tx database.Transactor,
	leaveRepo leave.LeaveRequestRepository,
	attendanceRepo attendance.AttendanceRepository,
	clk clock.Clock,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:             tx,
		leaveRepo:      leaveRepo,
		attendanceRepo: attendanceRepo,
		clock:          clk,
	}
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, emp employee.Employee, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(s.clock.Today()); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created, err := s.leaveRepo.Create(ctx, req.ToEntity(emp.ID))
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("Leave requested", "leave_request_id", created.ID, "employee_id", emp.ID,
		"start_date", created.StartDate.Format(validator.DateLayout), "end_date", created.EndDate.Format(validator.DateLayout))
	return leave.NewLeaveRequestResponse(created), nil
}

// ListOwn implements leave.LeaveService.
func (s *LeaveServiceImpl) ListOwn(ctx context.Context, emp employee.Employee) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.leaveRepo.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}
	return responses, nil
}

// ListPending implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPending(ctx context.Context) ([]leave.PendingLeaveResponse, error) {
	requests, err := s.leaveRepo.ListByStatus(ctx, leave.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}

	responses := make([]leave.PendingLeaveResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewPendingLeaveResponse(r))
	}
	return responses, nil
}

// Decide implements leave.LeaveService. The status change and the attendance
// rewrite commit together or not at all.
func (s *LeaveServiceImpl) Decide(ctx context.Context, requestID string, rawDecision string) (leave.DecisionResponse, error) {
	decision, err := leave.ParseDecision(rawDecision)
	if err != nil {
		return leave.DecisionResponse{}, validator.Single("decision", "decision must be approve or reject")
	}
	if !validator.IsValidUUID(requestID) {
		return leave.DecisionResponse{}, leave.ErrLeaveRequestNotFound
	}

	var (
		request    leave.LeaveRequest
		reconciled int
	)

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		request, err = s.leaveRepo.GetByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}

		if err := request.Decide(decision, s.clock.Now()); err != nil {
			return err
		}

		if err := s.leaveRepo.UpdateStatus(txCtx, request.ID, request.Status, *request.DecidedAt); err != nil {
			return fmt.Errorf("failed to update leave request status: %w", err)
		}

		if decision != leave.DecisionApprove {
			return nil
		}

		for _, day := range request.Days() {
			record, err := s.attendanceRepo.EnsureRecord(txCtx, request.EmployeeID, day)
			if err != nil {
				return fmt.Errorf("failed to ensure attendance for %s: %w", day.Format(validator.DateLayout), err)
			}

			record.MarkLeave()
			if err := s.attendanceRepo.Update(txCtx, record); err != nil {
				return fmt.Errorf("failed to mark leave for %s: %w", day.Format(validator.DateLayout), err)
			}
			reconciled++
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, leave.ErrLeaveRequestNotFound) && !errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed) {
			slog.Error("Leave decision rolled back", "leave_request_id", requestID, "decision", decision, "error", err)
		}
		return leave.DecisionResponse{}, err
	}

	slog.Info("Leave decided", "leave_request_id", request.ID, "employee_id", request.EmployeeID,
		"decision", decision, "days", reconciled)

	return leave.DecisionResponse{
		Request:        leave.NewLeaveRequestResponse(request),
		DaysReconciled: reconciled,
	}, nil
}
