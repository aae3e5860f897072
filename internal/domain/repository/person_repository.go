package repository

import (
	"context"

	"github.com/jhoicas/novaflow-api/internal/domain/entity"
	"github.com/jhoicas/novaflow-api/internal/domain/rbac"
)

// EmployeeFilter filtros opcionales para el listado de empleados.
type EmployeeFilter struct {
	DepartmentID string
	SupervisorID string
	Role         rbac.Role
	IsActive     *bool
	Search       string // nombre o email
	Limit        int
	Offset       int
}

// PersonRepository acceso a person y sus tablas de especialización por rol
// (hod, supervisor, salesman, general_employee) más el vínculo emp_supervisor.
type PersonRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Person, error)
	// GetByEmail devuelve nil sin error cuando el email no existe; el caso de
	// uso de auth decide cómo ocultar esa distinción al cliente.
	GetByEmail(ctx context.Context, email string) (*entity.Person, error)
	List(ctx context.Context, f EmployeeFilter) ([]entity.EmployeeRow, error)
	ListByRole(ctx context.Context, role rbac.Role) ([]entity.Person, error)

	Insert(ctx context.Context, p *entity.Person) error
	Update(ctx context.Context, p *entity.Person) error
	SetActive(ctx context.Context, id string, active bool) error
	// UpdatePassword devuelve el número de filas afectadas (0 = email inexistente).
	UpdatePassword(ctx context.Context, email, passwordHash string) (int64, error)

	InsertCompensation(ctx context.Context, personID string, role rbac.Role, comp entity.Compensation) error
	UpdateCompensation(ctx context.Context, personID string, role rbac.Role, comp entity.Compensation) error
	GetCompensation(ctx context.Context, personID string, role rbac.Role) (*entity.Compensation, error)
	LinkSupervisor(ctx context.Context, employeeID, supervisorID string) error
}
