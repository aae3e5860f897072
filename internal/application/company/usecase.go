// Package company agrupa los catálogos organizativos: departamentos, bodegas,
// clientes y proyectos.
package company

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/novaflow-api/internal/application/audit"
	"github.com/jhoicas/novaflow-api/internal/application/dto"
	"github.com/jhoicas/novaflow-api/internal/domain"
	"github.com/jhoicas/novaflow-api/internal/domain/entity"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
	"github.com/jhoicas/novaflow-api/pkg/logger"
)

// UseCase CRUD de los catálogos organizativos.
type UseCase struct {
	departments repository.DepartmentRepository
	warehouses  repository.WarehouseRepository
	customers   repository.CustomerRepository
	projects    repository.ProjectRepository
	audit       *audit.Recorder
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de catálogos.
func NewUseCase(
	departments repository.DepartmentRepository,
	warehouses repository.WarehouseRepository,
	customers repository.CustomerRepository,
	projects repository.ProjectRepository,
	rec *audit.Recorder,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		departments: departments,
		warehouses:  warehouses,
		customers:   customers,
		projects:    projects,
		audit:       rec,
		log:         log,
	}
}

// ── Departamentos ────────────────────────────────────────────────────────────

// CreateDepartment da de alta un departamento. El nombre es único.
func (uc *UseCase) CreateDepartment(ctx context.Context, userID string, in dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	d := &entity.Department{
		ID:        uuid.New().String(),
		Name:      in.Name,
		HODID:     in.HODID,
		CreatedAt: time.Now(),
	}
	if err := uc.departments.Insert(ctx, d); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionCreate, "departments", d.ID, "departamento "+d.Name)
	resp := toDepartmentResponse(d)
	return &resp, nil
}

// UpdateDepartment edita nombre y jefe de departamento.
func (uc *UseCase) UpdateDepartment(ctx context.Context, userID, id string, in dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	d, err := uc.departments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	d.Name = in.Name
	d.HODID = in.HODID
	if err := uc.departments.Update(ctx, d); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionUpdate, "departments", d.ID, "departamento "+d.Name)
	resp := toDepartmentResponse(d)
	return &resp, nil
}

// DeleteDepartment elimina el departamento. El storage rechaza la eliminación
// si aún tiene empleados o proyectos referenciándolo.
func (uc *UseCase) DeleteDepartment(ctx context.Context, userID, id string) error {
	if err := uc.departments.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionDelete, "departments", id, "departamento eliminado")
	return nil
}

// ListDepartments lista departamentos con su HOD y conteo de empleados.
func (uc *UseCase) ListDepartments(ctx context.Context, f repository.DepartmentFilter) ([]dto.DepartmentResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	items, err := uc.departments.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DepartmentResponse, 0, len(items))
	for i := range items {
		out = append(out, toDepartmentResponse(&items[i]))
	}
	return out, nil
}

// ListLocations catálogo de ubicaciones para selectores.
func (uc *UseCase) ListLocations(ctx context.Context) ([]entity.Location, error) {
	return uc.departments.ListLocations(ctx)
}

// ── Bodegas ──────────────────────────────────────────────────────────────────

// CreateWarehouse da de alta una bodega.
func (uc *UseCase) CreateWarehouse(ctx context.Context, userID string, in dto.WarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Name == "" || in.Capacity < 0 {
		return nil, domain.ErrInvalidInput
	}
	w := &entity.Warehouse{
		ID:           uuid.New().String(),
		Name:         in.Name,
		LocationID:   in.LocationID,
		SupervisorID: in.SupervisorID,
		Capacity:     in.Capacity,
		CreatedAt:    time.Now(),
	}
	if err := uc.warehouses.Insert(ctx, w); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionCreate, "warehouses", w.ID, "bodega "+w.Name)
	resp := toWarehouseResponse(w)
	return &resp, nil
}

// UpdateWarehouse edita los datos de la bodega.
func (uc *UseCase) UpdateWarehouse(ctx context.Context, userID, id string, in dto.WarehouseRequest) (*dto.WarehouseResponse, error) {
	w, err := uc.warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" || in.Capacity < 0 {
		return nil, domain.ErrInvalidInput
	}
	w.Name = in.Name
	w.LocationID = in.LocationID
	w.SupervisorID = in.SupervisorID
	w.Capacity = in.Capacity
	if err := uc.warehouses.Update(ctx, w); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionUpdate, "warehouses", w.ID, "bodega "+w.Name)
	resp := toWarehouseResponse(w)
	return &resp, nil
}

// DeleteWarehouse elimina la bodega si no tiene existencias asociadas.
func (uc *UseCase) DeleteWarehouse(ctx context.Context, userID, id string) error {
	if err := uc.warehouses.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionDelete, "warehouses", id, "bodega eliminada")
	return nil
}

// ListWarehouses lista bodegas; un supervisor solo ve las suyas vía el filtro.
func (uc *UseCase) ListWarehouses(ctx context.Context, f repository.WarehouseFilter) ([]dto.WarehouseResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	items, err := uc.warehouses.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(items))
	for i := range items {
		out = append(out, toWarehouseResponse(&items[i]))
	}
	return out, nil
}

// ── Clientes ─────────────────────────────────────────────────────────────────

// CreateCustomer da de alta un cliente, opcionalmente asignado a un vendedor.
func (uc *UseCase) CreateCustomer(ctx context.Context, userID string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Customer{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Address:    in.Address,
		SalesmanID: in.SalesmanID,
		CreatedAt:  time.Now(),
	}
	if err := uc.customers.Insert(ctx, c); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionCreate, "customers", c.ID, "cliente "+c.Name)
	resp := toCustomerResponse(c)
	return &resp, nil
}

// UpdateCustomer edita los datos del cliente.
func (uc *UseCase) UpdateCustomer(ctx context.Context, userID, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	c.Name = in.Name
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.SalesmanID = in.SalesmanID
	if err := uc.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionUpdate, "customers", c.ID, "cliente "+c.Name)
	resp := toCustomerResponse(c)
	return &resp, nil
}

// DeleteCustomer elimina el cliente si no tiene pedidos.
func (uc *UseCase) DeleteCustomer(ctx context.Context, userID, id string) error {
	if err := uc.customers.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionDelete, "customers", id, "cliente eliminado")
	return nil
}

// ListCustomers lista clientes; un vendedor solo ve los suyos vía el filtro.
func (uc *UseCase) ListCustomers(ctx context.Context, f repository.CustomerFilter) ([]dto.CustomerResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	items, err := uc.customers.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(items))
	for i := range items {
		out = append(out, toCustomerResponse(&items[i]))
	}
	return out, nil
}

// ── Proyectos ────────────────────────────────────────────────────────────────

// CreateProject da de alta un proyecto departamental.
func (uc *UseCase) CreateProject(ctx context.Context, userID string, in dto.ProjectRequest) (*dto.ProjectResponse, error) {
	p, err := projectFromRequest(in)
	if err != nil {
		return nil, err
	}
	p.ID = uuid.New().String()
	p.CreatedAt = time.Now()
	if err := uc.projects.Insert(ctx, p); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionCreate, "projects", p.ID, "proyecto "+p.Name)
	resp := toProjectResponse(p)
	return &resp, nil
}

// UpdateProject edita el proyecto.
func (uc *UseCase) UpdateProject(ctx context.Context, userID, id string, in dto.ProjectRequest) (*dto.ProjectResponse, error) {
	existing, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	p, err := projectFromRequest(in)
	if err != nil {
		return nil, err
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	if err := uc.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionUpdate, "projects", p.ID, "proyecto "+p.Name)
	resp := toProjectResponse(p)
	return &resp, nil
}

// DeleteProject elimina el proyecto si no tiene horas imputadas.
func (uc *UseCase) DeleteProject(ctx context.Context, userID, id string) error {
	if err := uc.projects.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionDelete, "projects", id, "proyecto eliminado")
	return nil
}

// ListProjects lista proyectos con filtros de departamento y estado.
func (uc *UseCase) ListProjects(ctx context.Context, f repository.ProjectFilter) ([]dto.ProjectResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	items, err := uc.projects.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectResponse, 0, len(items))
	for i := range items {
		out = append(out, toProjectResponse(&items[i]))
	}
	return out, nil
}

// AssignToProject asigna un empleado al proyecto.
func (uc *UseCase) AssignToProject(ctx context.Context, userID, projectID, employeeID string) error {
	if projectID == "" || employeeID == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.projects.AssignEmployee(ctx, projectID, employeeID); err != nil {
		return err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionUpdate, "emp_projects", projectID, "empleado "+employeeID+" asignado")
	return nil
}

// UnassignFromProject retira un empleado del proyecto.
func (uc *UseCase) UnassignFromProject(ctx context.Context, userID, projectID, employeeID string) error {
	if projectID == "" || employeeID == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.projects.UnassignEmployee(ctx, projectID, employeeID); err != nil {
		return err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionUpdate, "emp_projects", projectID, "empleado "+employeeID+" retirado")
	return nil
}

// ── Proyecciones ─────────────────────────────────────────────────────────────

func toDepartmentResponse(d *entity.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:            d.ID,
		Name:          d.Name,
		HODID:         d.HODID,
		HODName:       d.HODName,
		EmployeeCount: d.EmployeeCount,
	}
}

func toWarehouseResponse(w *entity.Warehouse) dto.WarehouseResponse {
	return dto.WarehouseResponse{
		ID:             w.ID,
		Name:           w.Name,
		LocationName:   w.LocationName,
		SupervisorName: w.SupervisorName,
		Capacity:       w.Capacity,
		ProductCount:   w.ProductCount,
	}
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		SalesmanName: c.SalesmanName,
		OrderCount:   c.OrderCount,
	}
}

func projectFromRequest(in dto.ProjectRequest) (*entity.Project, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	status := entity.ProjectPlanning
	if in.Status != "" {
		parsed, ok := entity.ParseProjectStatus(in.Status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		status = parsed
	}
	p := &entity.Project{
		Name:         in.Name,
		DepartmentID: in.DepartmentID,
		LocationID:   in.LocationID,
		Status:       status,
	}
	if in.StartDate != "" {
		d, err := time.Parse("2006-01-02", in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		p.StartDate = &d
	}
	if in.EndDate != "" {
		d, err := time.Parse("2006-01-02", in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		p.EndDate = &d
	}
	return p, nil
}

func toProjectResponse(p *entity.Project) dto.ProjectResponse {
	resp := dto.ProjectResponse{
		ID:             p.ID,
		Name:           p.Name,
		DepartmentName: p.DepartmentName,
		LocationName:   p.LocationName,
		Status:         string(p.Status),
	}
	if p.StartDate != nil {
		resp.StartDate = p.StartDate.Format("2006-01-02")
	}
	if p.EndDate != nil {
		resp.EndDate = p.EndDate.Format("2006-01-02")
	}
	return resp
}
