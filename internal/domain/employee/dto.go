package employee

import (
	"time"

	"github.com/SkShizan/clg-project/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmployeeCode string `json:"employee_id"`
	DepartmentID string `json:"department_id"`
	RoleID       string `json:"role_id"`
	JoinDate     string `json:"join_date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := validateProfile(r.Username, r.FirstName, r.LastName, r.EmployeeCode, r.DepartmentID, r.RoleID, r.JoinDate)

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) > 72 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 72 bytes",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedJoinDate must only be called after Validate succeeded.
func (r *CreateEmployeeRequest) ParsedJoinDate() time.Time {
	d, _ := validator.IsValidDate(r.JoinDate)
	return d
}

type UpdateEmployeeRequest struct {
	ID           string `json:"-"` // From URL
	Username     string `json:"username"`
	Password     string `json:"password"` // Blank keeps the current password
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmployeeCode string `json:"employee_id"`
	DepartmentID string `json:"department_id"`
	RoleID       string `json:"role_id"`
	JoinDate     string `json:"join_date"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	errs := validateProfile(r.Username, r.FirstName, r.LastName, r.EmployeeCode, r.DepartmentID, r.RoleID, r.JoinDate)

	if len(r.Password) > 72 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 72 bytes",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedJoinDate must only be called after Validate succeeded.
func (r *UpdateEmployeeRequest) ParsedJoinDate() time.Time {
	d, _ := validator.IsValidDate(r.JoinDate)
	return d
}

// PasswordChanged reports whether the edit carries a new password.
func (r *UpdateEmployeeRequest) PasswordChanged() bool {
	return !validator.IsEmpty(r.Password)
}

func validateProfile(username, firstName, lastName, code, departmentID, roleID, joinDate string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	} else if !validator.IsValidUsername(username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username may contain up to 150 letters, digits and @/./+/-/_ only",
		})
	}

	if validator.ExceedsLength(firstName, 150) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name must not exceed 150 characters",
		})
	}

	if validator.IsEmpty(lastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	} else if validator.ExceedsLength(lastName, 150) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name must not exceed 150 characters",
		})
	}

	if validator.IsEmpty(code) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if validator.ExceedsLength(code, 20) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must not exceed 20 characters",
		})
	}

	if validator.IsEmpty(departmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id is required",
		})
	} else if !validator.IsValidUUID(departmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id must be a valid id",
		})
	}

	if validator.IsEmpty(roleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "role_id",
			Message: "role_id is required",
		})
	} else if !validator.IsValidUUID(roleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "role_id",
			Message: "role_id must be a valid id",
		})
	}

	if validator.IsEmpty(joinDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "join_date",
			Message: "join_date is required",
		})
	} else if _, ok := validator.IsValidDate(joinDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "join_date",
			Message: "join_date must be in YYYY-MM-DD format",
		})
	}

	return errs
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	AccountID      string  `json:"account_id"`
	EmployeeID     string  `json:"employee_id"`
	Username       string  `json:"username"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	FullName       string  `json:"full_name"`
	DepartmentID   *string `json:"department_id"`
	DepartmentName *string `json:"department_name"`
	RoleID         *string `json:"role_id"`
	RoleName       *string `json:"role_name"`
	JoinDate       string  `json:"join_date"`
}

func NewEmployeeResponse(e EmployeeWithDetails) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		AccountID:      e.AccountID,
		EmployeeID:     e.EmployeeCode,
		Username:       e.Username,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		FullName:       e.FullName(),
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
		RoleID:         e.RoleID,
		RoleName:       e.RoleName,
		JoinDate:       e.JoinDate.Format(validator.DateLayout),
	}
}
