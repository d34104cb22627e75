package employee

import "time"

// Employee is the company profile owned one-to-one by an account.
type Employee struct {
	ID           string
	AccountID    string
	EmployeeCode string
	DepartmentID *string
	RoleID       *string
	JoinDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmployeeWithDetails carries the account and master data columns joined in
// for listings.
type EmployeeWithDetails struct {
	Employee
	Username       string
	FirstName      string
	LastName       string
	DepartmentName *string
	RoleName       *string
}

func (e *EmployeeWithDetails) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	default:
		return e.FirstName + " " + e.LastName
	}
}
