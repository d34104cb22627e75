package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (EmployeeWithDetails, error)
	GetByAccountID(ctx context.Context, accountID string) (Employee, error)
	// ExistsByEmployeeCode ignores the employee with excludeID when it is set.
	ExistsByEmployeeCode(ctx context.Context, code string, excludeID *string) (bool, error)
	Update(ctx context.Context, e Employee) error
	Delete(ctx context.Context, id string) error
	// List orders by last name, then first name.
	List(ctx context.Context) ([]EmployeeWithDetails, error)
}
