package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SkShizan/clg-project/internal/domain/employee"
	"github.com/SkShizan/clg-project/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, account_id, employee_code, department_id, role_id, join_date, created_at, updated_at`

const employeeDetailsQuery = `
	SELECT e.id, e.account_id, e.employee_code, e.department_id, e.role_id, e.join_date,
		e.created_at, e.updated_at,
		a.username, a.first_name, a.last_name, d.name, r.name
	FROM employees e
	JOIN accounts a ON a.id = e.account_id
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN roles r ON r.id = e.role_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID,
		&emp.AccountID,
		&emp.EmployeeCode,
		&emp.DepartmentID,
		&emp.RoleID,
		&emp.JoinDate,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	)
	return emp, err
}

func scanEmployeeWithDetails(row pgx.Row) (employee.EmployeeWithDetails, error) {
	var emp employee.EmployeeWithDetails
	err := row.Scan(
		&emp.ID,
		&emp.AccountID,
		&emp.EmployeeCode,
		&emp.DepartmentID,
		&emp.RoleID,
		&emp.JoinDate,
		&emp.CreatedAt,
		&emp.UpdatedAt,
		&emp.Username,
		&emp.FirstName,
		&emp.LastName,
		&emp.DepartmentName,
		&emp.RoleName,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (id, account_id, employee_code, department_id, role_id, join_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newID(),
		newEmployee.AccountID,
		newEmployee.EmployeeCode,
		newEmployee.DepartmentID,
		newEmployee.RoleID,
		newEmployee.JoinDate,
	))
	if err != nil {
		if uniqueConstraint(err) == "employees_employee_code_key" {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.EmployeeWithDetails, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployeeWithDetails(q.QueryRow(ctx, employeeDetailsQuery+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmployeeWithDetails{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeWithDetails{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetByAccountID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByAccountID(ctx context.Context, accountID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE account_id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by account: %w", err)
	}

	return emp, nil
}

// ExistsByEmployeeCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByEmployeeCode(ctx context.Context, code string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM employees
			WHERE employee_code = $1 AND ($2::uuid IS NULL OR id <> $2::uuid)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, code, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee code: %w", err)
	}

	return exists, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET employee_code = $1, department_id = $2, role_id = $3, join_date = $4, updated_at = NOW()
		WHERE id = $5
	`

	commandTag, err := q.Exec(ctx, query, emp.EmployeeCode, emp.DepartmentID, emp.RoleID, emp.JoinDate, emp.ID)
	if err != nil {
		if uniqueConstraint(err) == "employees_employee_code_key" {
			return employee.ErrEmployeeCodeExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.EmployeeWithDetails, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, employeeDetailsQuery+` ORDER BY a.last_name ASC, a.first_name ASC, e.employee_code ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.EmployeeWithDetails
	for rows.Next() {
		emp, err := scanEmployeeWithDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, nil
}
