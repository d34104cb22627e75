package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SkShizan/clg-project/internal/domain/employee"
	"github.com/SkShizan/clg-project/internal/domain/leave"
)

type leaveRequestRepository struct {
	s *Store
}

func NewLeaveRequestRepository(s *Store) leave.LeaveRequestRepository {
	return &leaveRequestRepository{s: s}
}

func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	err := r.s.begin("leave.Create")
	defer r.s.mu.Unlock()
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if _, ok := r.s.data.employees[req.EmployeeID]; !ok {
		return leave.LeaveRequest{}, employee.ErrEmployeeNotFound
	}

	req.ID = newID()
	req.Status = leave.StatusPending
	req.CreatedAt = r.s.tick()
	req.DecidedAt = nil
	r.s.data.leaveRequests[req.ID] = req
	return req, nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	err := r.s.begin("leave.GetByID")
	defer r.s.mu.Unlock()
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	lr, ok := r.s.data.leaveRequests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return lr, nil
}

func (r *leaveRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	err := r.s.begin("leave.GetByIDForUpdate")
	defer r.s.mu.Unlock()
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	lr, ok := r.s.data.leaveRequests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return lr, nil
}

func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	err := r.s.begin("leave.ListByEmployee")
	defer r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var result []leave.LeaveRequest
	for _, lr := range r.s.data.leaveRequests {
		if lr.EmployeeID == employeeID {
			result = append(result, lr)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *leaveRequestRepository) ListByStatus(ctx context.Context, status leave.Status) ([]leave.LeaveRequestWithEmployee, error) {
	err := r.s.begin("leave.ListByStatus")
	defer r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var result []leave.LeaveRequestWithEmployee
	for _, lr := range r.s.data.leaveRequests {
		if lr.Status != status {
			continue
		}
		item := leave.LeaveRequestWithEmployee{LeaveRequest: lr}
		if e, ok := r.s.data.employees[lr.EmployeeID]; ok {
			details := r.s.employeeDetailsLocked(e)
			item.EmployeeCode = details.EmployeeCode
			item.Username = details.Username
			item.FirstName = details.FirstName
			item.LastName = details.LastName
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, status leave.Status, decidedAt time.Time) error {
	err := r.s.begin("leave.UpdateStatus")
	defer r.s.mu.Unlock()
	if err != nil {
		return err
	}

	lr, ok := r.s.data.leaveRequests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	lr.Status = status
	lr.DecidedAt = &decidedAt
	r.s.data.leaveRequests[id] = lr
	return nil
}

func (r *leaveRequestRepository) DeleteByEmployee(ctx context.Context, employeeID string) error {
	err := r.s.begin("leave.DeleteByEmployee")
	defer r.s.mu.Unlock()
	if err != nil {
		return err
	}

	for id, lr := range r.s.data.leaveRequests {
		if lr.EmployeeID == employeeID {
			delete(r.s.data.leaveRequests, id)
		}
	}
	return nil
}
