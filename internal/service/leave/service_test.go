package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SkShizan/clg-project/internal/domain/account"
	"github.com/SkShizan/clg-project/internal/domain/attendance"
	"github.com/SkShizan/clg-project/internal/domain/employee"
	"github.com/SkShizan/clg-project/internal/domain/leave"
	"github.com/SkShizan/clg-project/internal/pkg/clock"
	"github.com/SkShizan/clg-project/internal/pkg/validator"
	"github.com/SkShizan/clg-project/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leaveFixture struct {
	store       *memory.Store
	clock       *clock.Fixed
	leaves      leave.LeaveRequestRepository
	attendances attendance.AttendanceRepository
	svc         leave.LeaveService
	emp         employee.Employee
}

func newLeaveFixture(t *testing.T) *leaveFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	acc, err := memory.NewAccountRepository(store).Create(ctx, account.Account{Username: "jdoe", PasswordHash: "x", FirstName: "Jane", LastName: "Doe"})
	require.NoError(t, err)
	emp, err := memory.NewEmployeeRepository(store).Create(ctx, employee.Employee{AccountID: acc.ID, EmployeeCode: "E-001"})
	require.NoError(t, err)

	clk := &clock.Fixed{At: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	leaves := memory.NewLeaveRequestRepository(store)
	attendances := memory.NewAttendanceRepository(store)

	return &leaveFixture{
		store:       store,
		clock:       clk,
		leaves:      leaves,
		attendances: attendances,
		svc:         NewLeaveService(store, leaves, attendances, clk),
		emp:         emp,
	}
}

func date(day int) time.Time {
	return time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC)
}

func (f *leaveFixture) submit(t *testing.T, start, end string) leave.LeaveRequestResponse {
	t.Helper()
	resp, err := f.svc.Submit(context.Background(), f.emp, leave.CreateLeaveRequestRequest{StartDate: start, EndDate: end, Reason: "Family trip"})
	require.NoError(t, err)
	return resp
}

func TestSubmitLeave(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)

	resp := f.submit(t, "2024-06-10", "2024-06-12")
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, 3, resp.Days)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, "Family trip", *resp.Reason)
	assert.Nil(t, resp.DecidedAt)

	today, err := f.svc.Submit(ctx, f.emp, leave.CreateLeaveRequestRequest{StartDate: "2024-06-01", EndDate: "2024-06-01", Reason: "   "})
	require.NoError(t, err)
	assert.Nil(t, today.Reason)
}

func TestSubmitLeaveValidation(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)

	cases := []struct {
		name    string
		req     leave.CreateLeaveRequestRequest
		field   string
		message string
	}{
		{"past start", leave.CreateLeaveRequestRequest{StartDate: "2024-05-31", EndDate: "2024-06-02"}, "start_date", "You cannot request leave for a past date."},
		{"end before start", leave.CreateLeaveRequestRequest{StartDate: "2024-06-05", EndDate: "2024-06-04"}, "end_date", "End date cannot be before the start date."},
		{"missing end", leave.CreateLeaveRequestRequest{StartDate: "2024-06-05"}, "end_date", "end_date is required"},
		{"malformed start", leave.CreateLeaveRequestRequest{StartDate: "06/05/2024", EndDate: "2024-06-05"}, "start_date", "start_date must be in YYYY-MM-DD format"},
		{"range too long", leave.CreateLeaveRequestRequest{StartDate: "2024-06-10", EndDate: "9999-12-31"}, "end_date", "A leave request cannot span more than 365 days."},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.svc.Submit(ctx, f.emp, c.req)
			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, c.message, errs.ToMap()[c.field])
		})
	}

	own, err := f.svc.ListOwn(ctx, f.emp)
	require.NoError(t, err)
	assert.Empty(t, own)
}

func TestListOwnAndPendingNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)

	older := f.submit(t, "2024-06-10", "2024-06-10")
	newer := f.submit(t, "2024-06-20", "2024-06-21")

	own, err := f.svc.ListOwn(ctx, f.emp)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, newer.ID, own[0].ID)
	assert.Equal(t, older.ID, own[1].ID)

	_, err = f.svc.Decide(ctx, older.ID, "reject")
	require.NoError(t, err)

	pending, err := f.svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, newer.ID, pending[0].ID)
	assert.Equal(t, "E-001", pending[0].EmployeeCode)
	assert.Equal(t, "Jane Doe", pending[0].FullName)
}

func TestApproveMarksEveryDayAsLeave(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	req := f.submit(t, "2024-06-10", "2024-06-12")

	present, err := f.attendances.EnsureRecord(ctx, f.emp.ID, date(11))
	require.NoError(t, err)
	present.CheckIn(time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC))
	require.NoError(t, f.attendances.Update(ctx, present))

	resp, err := f.svc.Decide(ctx, req.ID, "approve")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.Request.Status)
	assert.NotNil(t, resp.Request.DecidedAt)
	assert.Equal(t, 3, resp.DaysReconciled)

	history, err := f.attendances.ListByEmployee(ctx, f.emp.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for _, a := range history {
		assert.Equal(t, attendance.StatusLeave, a.Status, a.Date)
		assert.Nil(t, a.CheckInAt)
		assert.Nil(t, a.CheckOutAt)
	}
	for _, d := range []int{10, 11, 12} {
		assert.Equal(t, 1, f.store.AttendanceRows(f.emp.ID, date(d)))
	}
	assert.Equal(t, 0, f.store.AttendanceRows(f.emp.ID, date(13)))
}

func TestRejectHasNoAttendanceSideEffects(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	req := f.submit(t, "2024-06-10", "2024-06-12")

	resp, err := f.svc.Decide(ctx, req.ID, "reject")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.Request.Status)
	assert.Equal(t, 0, resp.DaysReconciled)
	assert.Equal(t, 0, f.store.AttendanceCount())
}

func TestDecisionIsOneShot(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	req := f.submit(t, "2024-06-10", "2024-06-10")

	_, err := f.svc.Decide(ctx, req.ID, "reject")
	require.NoError(t, err)

	_, err = f.svc.Decide(ctx, req.ID, "approve")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	stored, err := f.leaves.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, stored.Status)
	assert.Equal(t, 0, f.store.AttendanceCount())
}

func TestDecideRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	req := f.submit(t, "2024-06-10", "2024-06-10")

	_, err := f.svc.Decide(ctx, req.ID, "maybe")
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has("decision"))

	_, err = f.svc.Decide(ctx, "42", "approve")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	_, err = f.svc.Decide(ctx, "01890a5d-ac96-774b-bcce-b302099a8057", "approve")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestApprovalFailureRollsBackEverything(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	req := f.submit(t, "2024-06-10", "2024-06-12")

	f.store.FailOn("attendance.Update", 1, errors.New("connection reset"))

	_, err := f.svc.Decide(ctx, req.ID, "approve")
	require.Error(t, err)

	assert.Equal(t, 2, f.store.Calls("attendance.Update"))
	assert.Equal(t, 0, f.store.AttendanceCount())

	stored, err := f.leaves.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, stored.Status)
	assert.Nil(t, stored.DecidedAt)
}
