package master

import (
	"context"
	"errors"
	"fmt"

	"github.com/SkShizan/clg-project/internal/domain/master/department"
	"github.com/SkShizan/clg-project/internal/domain/master/role"
	"github.com/SkShizan/clg-project/internal/pkg/validator"
)

type MasterService interface {
	// Department operations
	CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id string) error

	// Role operations
	CreateRole(ctx context.Context, req role.CreateRoleRequest) (role.RoleResponse, error)
	ListRoles(ctx context.Context) ([]role.RoleResponse, error)
	DeleteRole(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	departmentRepo department.DepartmentRepository
	roleRepo       role.RoleRepository
}

func NewMasterService(
	departmentRepo department.DepartmentRepository,
	roleRepo role.RoleRepository,
) MasterService {
	return &masterServiceImpl{
		departmentRepo: departmentRepo,
		roleRepo:       roleRepo,
	}
}

// ==================== DEPARTMENT OPERATIONS ====================

func (s *masterServiceImpl) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{Name: req.Name})
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNameExists) {
			return department.DepartmentResponse{}, validator.Single("name", "A department with this name already exists.")
		}
		return department.DepartmentResponse{}, fmt.Errorf("failed to create department: %w", err)
	}

	return department.DepartmentResponse{ID: created.ID, Name: created.Name}, nil
}

func (s *masterServiceImpl) ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, department.DepartmentResponse{ID: d.ID, Name: d.Name})
	}
	return responses, nil
}

func (s *masterServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return department.ErrDepartmentNotFound
	}
	return s.departmentRepo.Delete(ctx, id)
}

// ==================== ROLE OPERATIONS ====================

func (s *masterServiceImpl) CreateRole(ctx context.Context, req role.CreateRoleRequest) (role.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return role.RoleResponse{}, err
	}

	created, err := s.roleRepo.Create(ctx, role.Role{Name: req.Name})
	if err != nil {
		if errors.Is(err, role.ErrRoleNameExists) {
			return role.RoleResponse{}, validator.Single("name", "A role with this name already exists.")
		}
		return role.RoleResponse{}, fmt.Errorf("failed to create role: %w", err)
	}

	return role.RoleResponse{ID: created.ID, Name: created.Name}, nil
}

func (s *masterServiceImpl) ListRoles(ctx context.Context) ([]role.RoleResponse, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	responses := make([]role.RoleResponse, 0, len(roles))
	for _, rl := range roles {
		responses = append(responses, role.RoleResponse{ID: rl.ID, Name: rl.Name})
	}
	return responses, nil
}

func (s *masterServiceImpl) DeleteRole(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return role.ErrRoleNotFound
	}
	return s.roleRepo.Delete(ctx, id)
}
