package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/SkShizan/clg-project/internal/domain/account"
	"github.com/SkShizan/clg-project/internal/domain/employee"
)

type employeeRepository struct {
	s *Store
}

func NewEmployeeRepository(s *Store) employee.EmployeeRepository {
	return &employeeRepository{s: s}
}

func (s *Store) deleteEmployeeLocked(id string) {
	delete(s.data.employees, id)
	for attID, a := range s.data.attendances {
		if a.EmployeeID == id {
			delete(s.data.attendances, attID)
		}
	}
	for lrID, lr := range s.data.leaveRequests {
		if lr.EmployeeID == id {
			delete(s.data.leaveRequests, lrID)
		}
	}
}

func (s *Store) employeeDetailsLocked(e employee.Employee) employee.EmployeeWithDetails {
	details := employee.EmployeeWithDetails{Employee: e}
	if a, ok := s.data.accounts[e.AccountID]; ok {
		details.Username = a.Username
		details.FirstName = a.FirstName
		details.LastName = a.LastName
	}
	if e.DepartmentID != nil {
		if d, ok := s.data.departments[*e.DepartmentID]; ok {
			name := d.Name
			details.DepartmentName = &name
		}
	}
	if e.RoleID != nil {
		if rl, ok := s.data.roles[*e.RoleID]; ok {
			name := rl.Name
			details.RoleName = &name
		}
	}
	return details
}

func (r *employeeRepository) codeTaken(code, excludeID string) bool {
	for id, e := range r.s.data.employees {
		if e.EmployeeCode == code && id != excludeID {
			return true
		}
	}
	return false
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	err := r.s.begin("employee.Create")
	defer r.s.mu.Unlock()
	if err != nil {
		return employee.Employee{}, err
	}

	if _, ok := r.s.data.accounts[newEmployee.AccountID]; !ok {
		return employee.Employee{}, account.ErrAccountNotFound
	}
	if r.codeTaken(newEmployee.EmployeeCode, "") {
		return employee.Employee{}, employee.ErrEmployeeCodeExists
	}
	for _, e := range r.s.data.employees {
		if e.AccountID == newEmployee.AccountID {
			return employee.Employee{}, errors.New("employees_account_id_key: account already has an employee")
		}
	}

	now := r.s.tick()
	newEmployee.ID = newID()
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now
	r.s.data.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.EmployeeWithDetails, error) {
	err := r.s.begin("employee.GetByID")
	defer r.s.mu.Unlock()
	if err != nil {
		return employee.EmployeeWithDetails{}, err
	}

	e, ok := r.s.data.employees[id]
	if !ok {
		return employee.EmployeeWithDetails{}, employee.ErrEmployeeNotFound
	}
	return r.s.employeeDetailsLocked(e), nil
}

func (r *employeeRepository) GetByAccountID(ctx context.Context, accountID string) (employee.Employee, error) {
	err := r.s.begin("employee.GetByAccountID")
	defer r.s.mu.Unlock()
	if err != nil {
		return employee.Employee{}, err
	}

	for _, e := range r.s.data.employees {
		if e.AccountID == accountID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepository) ExistsByEmployeeCode(ctx context.Context, code string, excludeID *string) (bool, error) {
	err := r.s.begin("employee.ExistsByEmployeeCode")
	defer r.s.mu.Unlock()
	if err != nil {
		return false, err
	}

	exclude := ""
	if excludeID != nil {
		exclude = *excludeID
	}
	return r.codeTaken(code, exclude), nil
}

func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) error {
	err := r.s.begin("employee.Update")
	defer r.s.mu.Unlock()
	if err != nil {
		return err
	}

	current, ok := r.s.data.employees[e.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	if r.codeTaken(e.EmployeeCode, e.ID) {
		return employee.ErrEmployeeCodeExists
	}

	current.EmployeeCode = e.EmployeeCode
	current.DepartmentID = e.DepartmentID
	current.RoleID = e.RoleID
	current.JoinDate = e.JoinDate
	current.UpdatedAt = r.s.tick()
	r.s.data.employees[e.ID] = current
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	err := r.s.begin("employee.Delete")
	defer r.s.mu.Unlock()
	if err != nil {
		return err
	}

	if _, ok := r.s.data.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	r.s.deleteEmployeeLocked(id)
	return nil
}

func (r *employeeRepository) List(ctx context.Context) ([]employee.EmployeeWithDetails, error) {
	err := r.s.begin("employee.List")
	defer r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var result []employee.EmployeeWithDetails
	for _, e := range r.s.data.employees {
		result = append(result, r.s.employeeDetailsLocked(e))
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.EmployeeCode < b.EmployeeCode
	})
	return result, nil
}
