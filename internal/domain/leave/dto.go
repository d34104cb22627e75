package leave

import (
	"fmt"
	"strings"
	"time"

	"github.com/SkShizan/clg-project/internal/pkg/validator"
)

// MaxLeaveDays caps a single request, inclusive of both ends.
const MaxLeaveDays = 365

type CreateLeaveRequestRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// Validate checks the range against today. Both dates are YYYY-MM-DD.
func (r *CreateLeaveRequestRequest) Validate(today time.Time) error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	} else if start.Before(today) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "You cannot request leave for a past date.",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	} else if startOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "End date cannot be before the start date.",
		})
	} else if startOK && dayCount(start, end) > MaxLeaveDays {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: fmt.Sprintf("A leave request cannot span more than %d days.", MaxLeaveDays),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEntity must only be called after Validate succeeded.
func (r *CreateLeaveRequestRequest) ToEntity(employeeID string) LeaveRequest {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)

	var reason *string
	if trimmed := strings.TrimSpace(r.Reason); trimmed != "" {
		reason = &trimmed
	}

	return LeaveRequest{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		Reason:     reason,
		Status:     StatusPending,
	}
}

type LeaveRequestResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	Days       int        `json:"days"`
	Reason     *string    `json:"reason"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	DecidedAt  *time.Time `json:"decided_at"`
}

func NewLeaveRequestResponse(l LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		StartDate:  l.StartDate.Format(validator.DateLayout),
		EndDate:    l.EndDate.Format(validator.DateLayout),
		Days:       l.DayCount(),
		Reason:     l.Reason,
		Status:     l.Status,
		CreatedAt:  l.CreatedAt,
		DecidedAt:  l.DecidedAt,
	}
}

type PendingLeaveResponse struct {
	LeaveRequestResponse
	EmployeeCode string `json:"employee_code"`
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
}

func NewPendingLeaveResponse(l LeaveRequestWithEmployee) PendingLeaveResponse {
	fullName := strings.TrimSpace(l.FirstName + " " + l.LastName)
	return PendingLeaveResponse{
		LeaveRequestResponse: NewLeaveRequestResponse(l.LeaveRequest),
		EmployeeCode:         l.EmployeeCode,
		Username:             l.Username,
		FullName:             fullName,
	}
}

type DecisionResponse struct {
	Request LeaveRequestResponse `json:"request"`
	// DaysReconciled is the number of attendance days set to LEAVE.
	DaysReconciled int `json:"days_reconciled"`
}
