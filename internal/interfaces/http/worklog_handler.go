package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/novaflow-api/internal/application/dto"
	"github.com/jhoicas/novaflow-api/internal/application/worklogs"
	"github.com/jhoicas/novaflow-api/internal/domain/entity"
	"github.com/jhoicas/novaflow-api/internal/domain/rbac"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
)

// WorkLogHandler maneja el registro y aprobación de horas.
type WorkLogHandler struct {
	uc *worklogs.UseCase
}

// NewWorkLogHandler construye el handler de registros de horas.
func NewWorkLogHandler(uc *worklogs.UseCase) *WorkLogHandler {
	return &WorkLogHandler{uc: uc}
}

// Submit registra horas del empleado autenticado.
func (h *WorkLogHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitWorkLogRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Submit(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Approve aprueba o rechaza un registro según el rol del aprobador.
func (h *WorkLogHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveWorkLogRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	role, ok := rbac.ParseRole(GetRole(c))
	if !ok {
		return badRequest(c, "rol desconocido")
	}
	out, err := h.uc.Approve(c.Context(), GetUserID(c), role, c.Params("id"), in.Approve)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List lista registros; el alcance lo fija el rol de quien consulta, no el
// cliente: un empleado ve lo suyo, un supervisor a sus supervisados, el HOD
// su departamento.
func (h *WorkLogHandler) List(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badRequest(c, "parámetros de paginación inválidos")
	}
	f := repository.WorkLogFilter{
		Search: c.Query("search"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if status, ok := entity.ParseApprovalStatus(c.Query("status")); ok {
		f.Status = status
	}
	switch GetRole(c) {
	case string(rbac.RoleHOD):
		f.HODID = GetUserID(c)
	case string(rbac.RoleSupervisor):
		f.SupervisorID = GetUserID(c)
	default:
		f.EmployeeID = GetUserID(c)
	}
	out, err := h.uc.List(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
