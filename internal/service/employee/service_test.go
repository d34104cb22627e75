package employee

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SkShizan/clg-project/internal/domain/account"
	"github.com/SkShizan/clg-project/internal/domain/attendance"
	"github.com/SkShizan/clg-project/internal/domain/auth"
	"github.com/SkShizan/clg-project/internal/domain/employee"
	"github.com/SkShizan/clg-project/internal/domain/leave"
	"github.com/SkShizan/clg-project/internal/domain/master/department"
	"github.com/SkShizan/clg-project/internal/domain/master/role"
	"github.com/SkShizan/clg-project/internal/pkg/jwt"
	"github.com/SkShizan/clg-project/internal/pkg/validator"
	"github.com/SkShizan/clg-project/internal/repository/memory"
	authService "github.com/SkShizan/clg-project/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type employeeFixture struct {
	store       *memory.Store
	auth        auth.AuthService
	accounts    account.AccountRepository
	attendances attendance.AttendanceRepository
	leaves      leave.LeaveRequestRepository
	svc         employee.EmployeeService
	dept        department.Department
	role        role.Role
}

func newEmployeeFixture(t *testing.T) *employeeFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	departments := memory.NewDepartmentRepository(store)
	roles := memory.NewRoleRepository(store)
	dept, err := departments.Create(ctx, department.Department{Name: "Engineering"})
	require.NoError(t, err)
	rl, err := roles.Create(ctx, role.Role{Name: "Developer"})
	require.NoError(t, err)

	f := &employeeFixture{
		store:       store,
		accounts:    memory.NewAccountRepository(store),
		attendances: memory.NewAttendanceRepository(store),
		leaves:      memory.NewLeaveRequestRepository(store),
		dept:        dept,
		role:        rl,
	}
	employees := memory.NewEmployeeRepository(store)
	f.auth = authService.NewAuthService(
		f.accounts,
		employees,
		memory.NewRefreshTokenRepository(store),
		jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h"),
	)
	f.svc = NewEmployeeService(store, f.auth, f.accounts, employees, departments, roles, f.attendances, f.leaves)
	return f
}

func (f *employeeFixture) createRequest(username, code string) employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		Username:     username,
		Password:     "password123",
		FirstName:    "Jane",
		LastName:     "Doe",
		EmployeeCode: code,
		DepartmentID: f.dept.ID,
		RoleID:       f.role.ID,
		JoinDate:     "2024-01-15",
	}
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture(t)

	resp, err := f.svc.Create(ctx, f.createRequest("jdoe", "E-001"))
	require.NoError(t, err)

	assert.Equal(t, "E-001", resp.EmployeeID)
	assert.Equal(t, "jdoe", resp.Username)
	assert.Equal(t, "Jane Doe", resp.FullName)
	assert.Equal(t, "2024-01-15", resp.JoinDate)
	require.NotNil(t, resp.DepartmentName)
	assert.Equal(t, "Engineering", *resp.DepartmentName)

	acc, err := f.accounts.GetByID(ctx, resp.AccountID)
	require.NoError(t, err)
	assert.False(t, acc.IsStaff)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("password123")))

	emp, err := f.svc.ResolveByAccount(ctx, resp.AccountID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, emp.ID)
}

func TestCreateEmployeeRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture(t)

	_, err := f.svc.Create(ctx, f.createRequest("jdoe", "E-001"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.createRequest("jdoe", "E-001"))
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "A user with this username already exists.", errs.ToMap()["username"])
	assert.Equal(t, "An employee with this employee ID already exists.", errs.ToMap()["employee_id"])
	assert.Equal(t, 1, f.store.AccountCount())
}

func TestCreateEmployeeRequiresExistingMasterData(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture(t)

	req := f.createRequest("jdoe", "E-001")
	req.DepartmentID = "01890a5d-ac96-774b-bcce-b302099a8057"
	_, err := f.svc.Create(ctx, req)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has("department_id"))
	assert.False(t, errs.Has("role_id"))
	assert.Equal(t, 0, f.store.AccountCount())
}

func TestCreateEmployeeRollsBackAccountWhenProfileFails(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture(t)
	f.store.FailOn("employee.Create", 0, errors.New("boom"))

	_, err := f.svc.Create(ctx, f.createRequest("jdoe", "E-001"))
	require.Error(t, err)
	assert.Equal(t, 0, f.store.AccountCount())
}

func TestUpdateEmployee(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture(t)

	created, err := f.svc.Create(ctx, f.createRequest("jdoe", "E-001"))
	require.NoError(t, err)
	before, err := f.accounts.GetByID(ctx, created.AccountID)
	require.NoError(t, err)

	t.Run("keeps own username and code, blank password unchanged", func(t *testing.T) {
		resp, err := f.svc.Update(ctx, employee.UpdateEmployeeRequest{
			ID:           created.ID,
			Username:     "jdoe",
			FirstName:    "Janet",
			LastName:     "Doe",
			EmployeeCode: "E-001",
			DepartmentID: f.dept.ID,
			RoleID:       f.role.ID,
			JoinDate:     "2024-02-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "Janet Doe", resp.FullName)
		assert.Equal(t, "2024-02-01", resp.JoinDate)

		after, err := f.accounts.GetByID(ctx, created.AccountID)
		require.NoError(t, err)
		assert.Equal(t, before.PasswordHash, after.PasswordHash)

		_, err = f.auth.Login(ctx, auth.LoginRequest{Username: "jdoe", Password: "password123"})
		assert.NoError(t, err)
	})

	t.Run("new password is hashed and ends open sessions", func(t *testing.T) {
		session, err := f.auth.Login(ctx, auth.LoginRequest{Username: "jdoe", Password: "password123"})
		require.NoError(t, err)

		_, err = f.svc.Update(ctx, employee.UpdateEmployeeRequest{
			ID:           created.ID,
			Username:     "jdoe",
			Password:     "n3w-password",
			LastName:     "Doe",
			EmployeeCode: "E-001",
			DepartmentID: f.dept.ID,
			RoleID:       f.role.ID,
			JoinDate:     "2024-02-01",
		})
		require.NoError(t, err)

		after, err := f.accounts.GetByID(ctx, created.AccountID)
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(after.PasswordHash), []byte("n3w-password")))

		_, err = f.auth.Login(ctx, auth.LoginRequest{Username: "jdoe", Password: "password123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		_, err = f.auth.Login(ctx, auth.LoginRequest{Username: "jdoe", Password: "n3w-password"})
		assert.NoError(t, err)

		_, err = f.auth.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: session.RefreshToken})
		assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
	})

	t.Run("failed password change rolls back the profile edit", func(t *testing.T) {
		f.store.FailOn("account.UpdatePassword", 0, errors.New("boom"))

		_, err := f.svc.Update(ctx, employee.UpdateEmployeeRequest{
			ID:           created.ID,
			Username:     "jdoe",
			Password:     "another-password",
			FirstName:    "Renamed",
			LastName:     "Doe",
			EmployeeCode: "E-001",
			DepartmentID: f.dept.ID,
			RoleID:       f.role.ID,
			JoinDate:     "2024-02-01",
		})
		require.Error(t, err)

		acc, err := f.accounts.GetByID(ctx, created.AccountID)
		require.NoError(t, err)
		assert.NotEqual(t, "Renamed", acc.FirstName)
	})

	t.Run("another employee's code is rejected", func(t *testing.T) {
		_, err := f.svc.Create(ctx, f.createRequest("asmith", "E-002"))
		require.NoError(t, err)

		_, err = f.svc.Update(ctx, employee.UpdateEmployeeRequest{
			ID:           created.ID,
			Username:     "jdoe",
			LastName:     "Doe",
			EmployeeCode: "E-002",
			DepartmentID: f.dept.ID,
			RoleID:       f.role.ID,
			JoinDate:     "2024-02-01",
		})
		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.True(t, errs.Has("employee_id"))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.svc.Update(ctx, employee.UpdateEmployeeRequest{ID: "nope"})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestDeleteEmployeeRemovesEverything(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture(t)

	created, err := f.svc.Create(ctx, f.createRequest("jdoe", "E-001"))
	require.NoError(t, err)

	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	_, err = f.attendances.EnsureRecord(ctx, created.ID, day)
	require.NoError(t, err)
	_, err = f.leaves.Create(ctx, leave.LeaveRequest{EmployeeID: created.ID, StartDate: day, EndDate: day, Status: leave.StatusPending})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, created.ID))

	assert.Equal(t, 0, f.store.AttendanceCount())
	assert.Equal(t, 0, f.store.AccountCount())
	own, err := f.leaves.ListByEmployee(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, own)

	_, err = f.svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, created.ID), employee.ErrEmployeeNotFound)
}

func TestDeleteEmployeeRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture(t)

	created, err := f.svc.Create(ctx, f.createRequest("jdoe", "E-001"))
	require.NoError(t, err)
	_, err = f.attendances.EnsureRecord(ctx, created.ID, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f.store.FailOn("account.Delete", 0, errors.New("boom"))
	require.Error(t, f.svc.Delete(ctx, created.ID))

	assert.Equal(t, 1, f.store.AttendanceCount())
	_, err = f.svc.Get(ctx, created.ID)
	assert.NoError(t, err)
}

func TestResolveByAccountWithoutProfile(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture(t)

	acc, err := f.accounts.Create(ctx, account.Account{Username: "admin", PasswordHash: "x", IsStaff: true})
	require.NoError(t, err)

	_, err = f.svc.ResolveByAccount(ctx, acc.ID)
	assert.ErrorIs(t, err, employee.ErrProfileNotLinked)
}
