package leave

import (
	"time"

	"github.com/SkShizan/clg-project/internal/pkg/clock"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// ParseDecision accepts the path segment of a decision route.
func ParseDecision(raw string) (Decision, error) {
	switch Decision(raw) {
	case DecisionApprove, DecisionReject:
		return Decision(raw), nil
	}
	return "", ErrInvalidDecision
}

// Status is the terminal state the decision moves a request to.
func (d Decision) Status() Status {
	if d == DecisionApprove {
		return StatusApproved
	}
	return StatusRejected
}

type LeaveRequest struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Reason     *string
	Status     Status
	CreatedAt  time.Time
	DecidedAt  *time.Time
}

// Days lists every calendar day covered by the request, inclusive.
func (l *LeaveRequest) Days() []time.Time {
	return clock.Days(l.StartDate, l.EndDate)
}

// DayCount is len(Days()) without building the list.
func (l *LeaveRequest) DayCount() int {
	return dayCount(l.StartDate, l.EndDate)
}

func dayCount(start, end time.Time) int {
	start, end = clock.DateOf(start), clock.DateOf(end)
	if end.Before(start) {
		return 0
	}
	// Unix seconds, since time.Duration saturates past ~292 years.
	return int((end.Unix()-start.Unix())/86400) + 1
}

// Decide applies a one-shot transition out of PENDING.
func (l *LeaveRequest) Decide(d Decision, at time.Time) error {
	if l.Status != StatusPending {
		return ErrLeaveRequestAlreadyProcessed
	}
	l.Status = d.Status()
	l.DecidedAt = &at
	return nil
}

// LeaveRequestWithEmployee is a request joined with the requesting employee for
// the staff review queue.
type LeaveRequestWithEmployee struct {
	LeaveRequest
	EmployeeCode string
	Username     string
	FirstName    string
	LastName     string
}
