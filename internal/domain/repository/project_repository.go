package repository

import (
	"context"

	"github.com/jhoicas/novaflow-api/internal/domain/entity"
)

// ProjectFilter filtros opcionales para el listado de proyectos.
type ProjectFilter struct {
	DepartmentID string
	Status       entity.ProjectStatus
	Search       string
	Limit        int
	Offset       int
}

// ProjectRepository acceso a projects y emp_projects.
type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	List(ctx context.Context, f ProjectFilter) ([]entity.Project, error)
	Insert(ctx context.Context, p *entity.Project) error
	Update(ctx context.Context, p *entity.Project) error
	Delete(ctx context.Context, id string) error
	AssignEmployee(ctx context.Context, projectID, employeeID string) error
	UnassignEmployee(ctx context.Context, projectID, employeeID string) error
}
