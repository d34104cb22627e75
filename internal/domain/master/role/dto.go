package role

import "github.com/SkShizan/clg-project/internal/pkg/validator"

type CreateRoleRequest struct {
	Name string `json:"name"`
}

func (r *CreateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if validator.ExceedsLength(r.Name, 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
