package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/novaflow-api/internal/application/company"
	"github.com/jhoicas/novaflow-api/internal/application/dto"
	"github.com/jhoicas/novaflow-api/internal/domain/entity"
	"github.com/jhoicas/novaflow-api/internal/domain/rbac"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
)

// CompanyHandler maneja departamentos, bodegas, clientes y proyectos.
type CompanyHandler struct {
	uc *company.UseCase
}

// NewCompanyHandler construye el handler de catálogos organizativos.
func NewCompanyHandler(uc *company.UseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func parsePage(c *fiber.Ctx) (dto.PageRequest, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, err
	}
	page.DefaultPage()
	return page, nil
}

// ── Departamentos ────────────────────────────────────────────────────────────

// CreateDepartment alta de departamento.
func (h *CompanyHandler) CreateDepartment(c *fiber.Ctx) error {
	var in dto.DepartmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.CreateDepartment(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateDepartment edición de departamento.
func (h *CompanyHandler) UpdateDepartment(c *fiber.Ctx) error {
	var in dto.DepartmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.UpdateDepartment(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteDepartment eliminación de departamento.
func (h *CompanyHandler) DeleteDepartment(c *fiber.Ctx) error {
	if err := h.uc.DeleteDepartment(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListDepartments listado de departamentos.
func (h *CompanyHandler) ListDepartments(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badRequest(c, "parámetros de paginación inválidos")
	}
	out, err := h.uc.ListDepartments(c.Context(), repository.DepartmentFilter{
		Search: c.Query("search"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListLocations catálogo de ubicaciones para selectores.
func (h *CompanyHandler) ListLocations(c *fiber.Ctx) error {
	locations, err := h.uc.ListLocations(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(locations)
}

// ── Bodegas ──────────────────────────────────────────────────────────────────

// CreateWarehouse alta de bodega.
func (h *CompanyHandler) CreateWarehouse(c *fiber.Ctx) error {
	var in dto.WarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.CreateWarehouse(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateWarehouse edición de bodega.
func (h *CompanyHandler) UpdateWarehouse(c *fiber.Ctx) error {
	var in dto.WarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.UpdateWarehouse(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteWarehouse eliminación de bodega.
func (h *CompanyHandler) DeleteWarehouse(c *fiber.Ctx) error {
	if err := h.uc.DeleteWarehouse(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListWarehouses listado de bodegas; un supervisor solo ve las suyas.
func (h *CompanyHandler) ListWarehouses(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badRequest(c, "parámetros de paginación inválidos")
	}
	f := repository.WarehouseFilter{
		Search: c.Query("search"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if GetRole(c) == string(rbac.RoleSupervisor) {
		f.SupervisorID = GetUserID(c)
	}
	out, err := h.uc.ListWarehouses(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Clientes ─────────────────────────────────────────────────────────────────

// CreateCustomer alta de cliente.
func (h *CompanyHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	// Un vendedor crea clientes para sí mismo.
	if GetRole(c) == string(rbac.RoleSalesman) {
		in.SalesmanID = GetUserID(c)
	}
	out, err := h.uc.CreateCustomer(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCustomer edición de cliente.
func (h *CompanyHandler) UpdateCustomer(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.UpdateCustomer(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteCustomer eliminación de cliente.
func (h *CompanyHandler) DeleteCustomer(c *fiber.Ctx) error {
	if err := h.uc.DeleteCustomer(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCustomers listado de clientes; un vendedor solo ve los suyos.
func (h *CompanyHandler) ListCustomers(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badRequest(c, "parámetros de paginación inválidos")
	}
	f := repository.CustomerFilter{
		Search: c.Query("search"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if GetRole(c) == string(rbac.RoleSalesman) {
		f.SalesmanID = GetUserID(c)
	}
	out, err := h.uc.ListCustomers(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Proyectos ────────────────────────────────────────────────────────────────

// CreateProject alta de proyecto.
func (h *CompanyHandler) CreateProject(c *fiber.Ctx) error {
	var in dto.ProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.CreateProject(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateProject edición de proyecto.
func (h *CompanyHandler) UpdateProject(c *fiber.Ctx) error {
	var in dto.ProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.UpdateProject(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteProject eliminación de proyecto.
func (h *CompanyHandler) DeleteProject(c *fiber.Ctx) error {
	if err := h.uc.DeleteProject(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListProjects listado de proyectos.
func (h *CompanyHandler) ListProjects(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badRequest(c, "parámetros de paginación inválidos")
	}
	f := repository.ProjectFilter{
		DepartmentID: c.Query("department_id"),
		Search:       c.Query("search"),
		Limit:        page.Limit,
		Offset:       page.Offset,
	}
	if status, ok := entity.ParseProjectStatus(c.Query("status")); ok {
		f.Status = status
	}
	out, err := h.uc.ListProjects(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AssignToProject asigna un empleado al proyecto.
func (h *CompanyHandler) AssignToProject(c *fiber.Ctx) error {
	if err := h.uc.AssignToProject(c.Context(), GetUserID(c), c.Params("id"), c.Params("employeeId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnassignFromProject retira un empleado del proyecto.
func (h *CompanyHandler) UnassignFromProject(c *fiber.Ctx) error {
	if err := h.uc.UnassignFromProject(c.Context(), GetUserID(c), c.Params("id"), c.Params("employeeId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
