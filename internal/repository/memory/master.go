package memory

import (
	"context"
	"sort"

	"github.com/SkShizan/clg-project/internal/domain/master/department"
	"github.com/SkShizan/clg-project/internal/domain/master/role"
)

type departmentRepository struct {
	s *Store
}

func NewDepartmentRepository(s *Store) department.DepartmentRepository {
	return &departmentRepository{s: s}
}

func (r *departmentRepository) Create(ctx context.Context, d department.Department) (department.Department, error) {
	err := r.s.begin("department.Create")
	defer r.s.mu.Unlock()
	if err != nil {
		return department.Department{}, err
	}

	for _, existing := range r.s.data.departments {
		if existing.Name == d.Name {
			return department.Department{}, department.ErrDepartmentNameExists
		}
	}
	d.ID = newID()
	d.CreatedAt = r.s.tick()
	r.s.data.departments[d.ID] = d
	return d, nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id string) (department.Department, error) {
	err := r.s.begin("department.GetByID")
	defer r.s.mu.Unlock()
	if err != nil {
		return department.Department{}, err
	}

	d, ok := r.s.data.departments[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return d, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]department.Department, error) {
	err := r.s.begin("department.List")
	defer r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var result []department.Department
	for _, d := range r.s.data.departments {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Delete nulls department_id on employees, like ON DELETE SET NULL.
func (r *departmentRepository) Delete(ctx context.Context, id string) error {
	err := r.s.begin("department.Delete")
	defer r.s.mu.Unlock()
	if err != nil {
		return err
	}

	if _, ok := r.s.data.departments[id]; !ok {
		return department.ErrDepartmentNotFound
	}
	delete(r.s.data.departments, id)

	for empID, e := range r.s.data.employees {
		if e.DepartmentID != nil && *e.DepartmentID == id {
			e.DepartmentID = nil
			r.s.data.employees[empID] = e
		}
	}
	return nil
}

type roleRepository struct {
	s *Store
}

func NewRoleRepository(s *Store) role.RoleRepository {
	return &roleRepository{s: s}
}

func (r *roleRepository) Create(ctx context.Context, rl role.Role) (role.Role, error) {
	err := r.s.begin("role.Create")
	defer r.s.mu.Unlock()
	if err != nil {
		return role.Role{}, err
	}

	for _, existing := range r.s.data.roles {
		if existing.Name == rl.Name {
			return role.Role{}, role.ErrRoleNameExists
		}
	}
	rl.ID = newID()
	rl.CreatedAt = r.s.tick()
	r.s.data.roles[rl.ID] = rl
	return rl, nil
}

func (r *roleRepository) GetByID(ctx context.Context, id string) (role.Role, error) {
	err := r.s.begin("role.GetByID")
	defer r.s.mu.Unlock()
	if err != nil {
		return role.Role{}, err
	}

	rl, ok := r.s.data.roles[id]
	if !ok {
		return role.Role{}, role.ErrRoleNotFound
	}
	return rl, nil
}

func (r *roleRepository) List(ctx context.Context) ([]role.Role, error) {
	err := r.s.begin("role.List")
	defer r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var result []role.Role
	for _, rl := range r.s.data.roles {
		result = append(result, rl)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Delete nulls role_id on employees, like ON DELETE SET NULL.
func (r *roleRepository) Delete(ctx context.Context, id string) error {
	err := r.s.begin("role.Delete")
	defer r.s.mu.Unlock()
	if err != nil {
		return err
	}

	if _, ok := r.s.data.roles[id]; !ok {
		return role.ErrRoleNotFound
	}
	delete(r.s.data.roles, id)

	for empID, e := range r.s.data.employees {
		if e.RoleID != nil && *e.RoleID == id {
			e.RoleID = nil
			r.s.data.employees[empID] = e
		}
	}
	return nil
}
