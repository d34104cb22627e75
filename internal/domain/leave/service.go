package leave

import (
	"context"

	"github.com/SkShizan/clg-project/internal/domain/employee"
)

type LeaveService interface {
	Submit(ctx context.Context, emp employee.Employee, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ListOwn(ctx context.Context, emp employee.Employee) ([]LeaveRequestResponse, error)
	ListPending(ctx context.Context) ([]PendingLeaveResponse, error)
	// Decide approves or rejects a PENDING request. Approval rewrites the
	// attendance of every day in the range to LEAVE in the same transaction.
	Decide(ctx context.Context, requestID string, decision string) (DecisionResponse, error)
}
