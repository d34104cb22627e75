package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	// ListByEmployee and ListByStatus order by created_at, newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListByStatus(ctx context.Context, status Status) ([]LeaveRequestWithEmployee, error)
	UpdateStatus(ctx context.Context, id string, status Status, decidedAt time.Time) error
	DeleteByEmployee(ctx context.Context, employeeID string) error
}
