package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SkShizan/clg-project/internal/domain/account"
	"github.com/SkShizan/clg-project/internal/domain/attendance"
	"github.com/SkShizan/clg-project/internal/domain/auth"
	"github.com/SkShizan/clg-project/internal/domain/employee"
	"github.com/SkShizan/clg-project/internal/domain/leave"
	"github.com/SkShizan/clg-project/internal/domain/master/department"
	"github.com/SkShizan/clg-project/internal/domain/master/role"
	"github.com/SkShizan/clg-project/internal/pkg/database"
	"github.com/SkShizan/clg-project/internal/pkg/validator"
	authservice "github.com/SkShizan/clg-project/internal/service/auth"
)

type EmployeeServiceImpl struct {
	tx             database.Transactor
	authService    auth.AuthService
	accountRepo    account.AccountRepository
	employeeRepo   employee.EmployeeRepository
	departmentRepo department.DepartmentRepository
	roleRepo       role.RoleRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
}

func NewEmployeeService(
	tx database.Transactor,
	authService auth.AuthService,
	accountRepo account.AccountRepository,
	employeeRepo employee.EmployeeRepository,
	departmentRepo department.DepartmentRepository,
	roleRepo role.RoleRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:             tx,
		authService:    authService,
		accountRepo:    accountRepo,
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		roleRepo:       roleRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var employeeID string
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.checkProfile(txCtx, req.Username, req.EmployeeCode, req.DepartmentID, req.RoleID, nil, nil); err != nil {
			return err
		}

		hash, err := authservice.HashPassword(req.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		acc, err := s.accountRepo.Create(txCtx, account.Account{
			Username:     req.Username,
			PasswordHash: hash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
		})
		if err != nil {
			return mapUniqueError(err)
		}

		departmentID, roleID := req.DepartmentID, req.RoleID
		created, err := s.employeeRepo.Create(txCtx, employee.Employee{
			AccountID:    acc.ID,
			EmployeeCode: req.EmployeeCode,
			DepartmentID: &departmentID,
			RoleID:       &roleID,
			JoinDate:     req.ParsedJoinDate(),
		})
		if err != nil {
			return mapUniqueError(err)
		}

		employeeID = created.ID
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", employeeID, "employee_code", req.EmployeeCode)
	return s.Get(ctx, employeeID)
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(req.ID) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.employeeRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if err := s.checkProfile(txCtx, req.Username, req.EmployeeCode, req.DepartmentID, req.RoleID, &current.AccountID, &current.ID); err != nil {
			return err
		}

		if err := s.accountRepo.UpdateProfile(txCtx, current.AccountID, account.UpdateProfileRequest{
			Username:  req.Username,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		}); err != nil {
			return mapUniqueError(err)
		}

		if req.PasswordChanged() {
			if err := s.authService.SetPassword(txCtx, current.AccountID, req.Password); err != nil {
				return err
			}
		}

		departmentID, roleID := req.DepartmentID, req.RoleID
		updated := current.Employee
		updated.EmployeeCode = req.EmployeeCode
		updated.DepartmentID = &departmentID
		updated.RoleID = &roleID
		updated.JoinDate = req.ParsedJoinDate()

		if err := s.employeeRepo.Update(txCtx, updated); err != nil {
			return mapUniqueError(err)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee updated", "employee_id", req.ID, "password_changed", req.PasswordChanged())
	return s.Get(ctx, req.ID)
}

// Delete implements employee.EmployeeService. The employee's leave requests,
// attendance, profile and account go together.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return employee.ErrEmployeeNotFound
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := s.employeeRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.leaveRepo.DeleteByEmployee(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete leave requests: %w", err)
		}
		if err := s.attendanceRepo.DeleteByEmployee(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete attendance: %w", err)
		}
		if err := s.employeeRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete employee: %w", err)
		}
		if err := s.accountRepo.Delete(txCtx, emp.AccountID); err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Employee deleted", "employee_id", id)
	return nil
}

// ResolveByAccount implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ResolveByAccount(ctx context.Context, accountID string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrProfileNotLinked
		}
		return employee.Employee{}, fmt.Errorf("failed to resolve employee: %w", err)
	}
	return emp, nil
}

// checkProfile collects every uniqueness and reference problem of an employee
// form into one ValidationErrors.
func (s *EmployeeServiceImpl) checkProfile(ctx context.Context, username, code, departmentID, roleID string, excludeAccountID, excludeEmployeeID *string) error {
	var errs validator.ValidationErrors

	taken, err := s.accountRepo.ExistsByUsername(ctx, username, excludeAccountID)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		errs = append(errs, usernameExists())
	}

	taken, err = s.employeeRepo.ExistsByEmployeeCode(ctx, code, excludeEmployeeID)
	if err != nil {
		return fmt.Errorf("failed to check employee ID: %w", err)
	}
	if taken {
		errs = append(errs, employeeCodeExists())
	}

	if _, err := s.departmentRepo.GetByID(ctx, departmentID); err != nil {
		if !errors.Is(err, department.ErrDepartmentNotFound) {
			return fmt.Errorf("failed to get department: %w", err)
		}
		errs = append(errs, validator.ValidationError{Field: "department_id", Message: "Select a valid department."})
	}

	if _, err := s.roleRepo.GetByID(ctx, roleID); err != nil {
		if !errors.Is(err, role.ErrRoleNotFound) {
			return fmt.Errorf("failed to get role: %w", err)
		}
		errs = append(errs, validator.ValidationError{Field: "role_id", Message: "Select a valid role."})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// mapUniqueError turns a unique violation that slipped past checkProfile (a
// concurrent insert) into the same field error.
func mapUniqueError(err error) error {
	switch {
	case errors.Is(err, account.ErrUsernameExists):
		return validator.ValidationErrors{usernameExists()}
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		return validator.ValidationErrors{employeeCodeExists()}
	}
	return err
}

func usernameExists() validator.ValidationError {
	return validator.ValidationError{Field: "username", Message: "A user with this username already exists."}
}

func employeeCodeExists() validator.ValidationError {
	return validator.ValidationError{Field: "employee_id", Message: "An employee with this employee ID already exists."}
}
