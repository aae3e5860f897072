package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/novaflow-api/internal/application/dto"
	"github.com/jhoicas/novaflow-api/internal/application/employees"
	"github.com/jhoicas/novaflow-api/internal/domain/rbac"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
)

// EmployeeHandler maneja el CRUD de empleados.
type EmployeeHandler struct {
	uc *employees.UseCase
}

// NewEmployeeHandler construye el handler de empleados.
func NewEmployeeHandler(uc *employees.UseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Create alta de empleado con compensación según rol.
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update edición de empleado (el rol no cambia).
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deactivate baja lógica del empleado.
func (h *EmployeeHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.SetActive(c.Context(), GetUserID(c), c.Params("id"), false); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Activate reactivación del empleado.
func (h *EmployeeHandler) Activate(c *fiber.Ctx) error {
	if err := h.uc.SetActive(c.Context(), GetUserID(c), c.Params("id"), true); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID devuelve un empleado.
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List lista empleados con filtros opcionales.
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "parámetros de paginación inválidos")
	}
	page.DefaultPage()

	f := repository.EmployeeFilter{
		DepartmentID: c.Query("department_id"),
		SupervisorID: c.Query("supervisor_id"),
		Search:       c.Query("search"),
		Limit:        page.Limit,
		Offset:       page.Offset,
	}
	if role, ok := rbac.ParseRole(c.Query("role")); ok {
		f.Role = role
	}
	out, err := h.uc.List(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByRole listado simple para selectores.
func (h *EmployeeHandler) ListByRole(c *fiber.Ctx) error {
	role, ok := rbac.ParseRole(c.Params("role"))
	if !ok {
		return badRequest(c, "rol desconocido")
	}
	out, err := h.uc.ListByRole(c.Context(), role)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
