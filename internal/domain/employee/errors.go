package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeCodeExists = errors.New("an employee with this employee ID already exists")
	// ErrProfileNotLinked is returned when an authenticated account has no
	// employee profile.
	ErrProfileNotLinked = errors.New("account is not linked to an employee profile")
)
