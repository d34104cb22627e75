package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SkShizan/clg-project/internal/domain/account"
	"github.com/SkShizan/clg-project/internal/domain/auth"
	"github.com/SkShizan/clg-project/internal/domain/employee"
	"github.com/SkShizan/clg-project/internal/domain/master/department"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func seedEmployee(t *testing.T, s *Store, username, code string) employee.Employee {
	t.Helper()
	ctx := context.Background()
	acc, err := NewAccountRepository(s).Create(ctx, account.Account{Username: username, LastName: username})
	require.NoError(t, err)
	emp, err := NewEmployeeRepository(s).Create(ctx, employee.Employee{AccountID: acc.ID, EmployeeCode: code})
	require.NoError(t, err)
	return emp
}

func TestTransactionRollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	accounts := NewAccountRepository(s)

	err := s.WithinTransaction(ctx, func(txCtx context.Context) error {
		_, err := accounts.Create(txCtx, account.Account{Username: "jdoe"})
		require.NoError(t, err)
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, s.AccountCount())

	err = s.WithinTransaction(ctx, func(txCtx context.Context) error {
		_, err := accounts.Create(txCtx, account.Account{Username: "jdoe"})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.AccountCount())
}

func TestFailOnAfterCalls(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	accounts := NewAccountRepository(s)
	s.FailOn("account.Create", 1, errBoom)

	_, err := accounts.Create(ctx, account.Account{Username: "first"})
	require.NoError(t, err)
	_, err = accounts.Create(ctx, account.Account{Username: "second"})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 2, s.Calls("account.Create"))
}

func TestUniqueConstraints(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedEmployee(t, s, "jdoe", "E-1")

	_, err := NewAccountRepository(s).Create(ctx, account.Account{Username: "jdoe"})
	assert.ErrorIs(t, err, account.ErrUsernameExists)

	other, err := NewAccountRepository(s).Create(ctx, account.Account{Username: "other"})
	require.NoError(t, err)
	_, err = NewEmployeeRepository(s).Create(ctx, employee.Employee{AccountID: other.ID, EmployeeCode: "E-1"})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestAccountDeleteCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	emp := seedEmployee(t, s, "jdoe", "E-1")
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := NewAttendanceRepository(s).EnsureRecord(ctx, emp.ID, day)
	require.NoError(t, err)

	require.NoError(t, NewAccountRepository(s).Delete(ctx, emp.AccountID))

	_, err = NewEmployeeRepository(s).GetByID(ctx, emp.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Equal(t, 0, s.AttendanceCount())
}

func TestDepartmentDeleteSetsNull(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	dept, err := NewDepartmentRepository(s).Create(ctx, department.Department{Name: "Ops"})
	require.NoError(t, err)

	emp := seedEmployee(t, s, "jdoe", "E-1")
	emp.DepartmentID = &dept.ID
	require.NoError(t, NewEmployeeRepository(s).Update(ctx, emp))

	require.NoError(t, NewDepartmentRepository(s).Delete(ctx, dept.ID))

	got, err := NewEmployeeRepository(s).GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DepartmentID)
	assert.Nil(t, got.DepartmentName)
}

func TestRefreshTokensFollowAccount(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	emp := seedEmployee(t, s, "jdoe", "E-001")
	tokens := NewRefreshTokenRepository(s)

	require.NoError(t, tokens.Create(ctx, emp.AccountID, "token-a", time.Now().Add(time.Hour)))
	require.NoError(t, tokens.Create(ctx, emp.AccountID, "token-old", time.Now().Add(-time.Minute)))
	assert.Equal(t, 1, s.ActiveRefreshTokens(emp.AccountID))

	err := s.WithinTransaction(ctx, func(txCtx context.Context) error {
		require.NoError(t, tokens.RevokeAllForAccount(txCtx, emp.AccountID))
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, s.ActiveRefreshTokens(emp.AccountID))

	require.NoError(t, NewAccountRepository(s).Delete(ctx, emp.AccountID))
	_, _, err = tokens.IsRevoked(ctx, "token-a")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
