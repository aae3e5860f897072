package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/novaflow-api/internal/application/audit"
	"github.com/jhoicas/novaflow-api/internal/application/dashboard"
	"github.com/jhoicas/novaflow-api/internal/application/dto"
	"github.com/jhoicas/novaflow-api/internal/domain/rbac"
)

// DashboardHandler maneja las métricas agregadas y el listado de auditoría.
type DashboardHandler struct {
	uc  *dashboard.UseCase
	rec *audit.Recorder
}

// NewDashboardHandler construye el handler del dashboard.
func NewDashboardHandler(uc *dashboard.UseCase, rec *audit.Recorder) *DashboardHandler {
	return &DashboardHandler{uc: uc, rec: rec}
}

// Metrics métricas globales de la pantalla principal.
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	out, err := h.uc.Metrics(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TopSalesmen ranking de vendedores por ventas completadas.
func (h *DashboardHandler) TopSalesmen(c *fiber.Ctx) error {
	out, err := h.uc.TopSalesmen(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MySales métricas del vendedor autenticado.
func (h *DashboardHandler) MySales(c *fiber.Ctx) error {
	out, err := h.uc.ForSalesman(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AuditLog últimos registros de auditoría (solo HOD vía la ruta).
func (h *DashboardHandler) AuditLog(c *fiber.Ctx) error {
	if GetRole(c) != string(rbac.RoleHOD) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code: "FORBIDDEN", Message: "solo el HOD consulta la auditoría"})
	}
	entries, err := h.rec.Recent(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.AuditLogResponse{
			ID:         e.ID,
			UserName:   e.UserName,
			ActionType: e.ActionType,
			TableName:  e.TableName,
			RecordID:   e.RecordID,
			Details:    e.Details,
			CreatedAt:  e.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return c.JSON(out)
}
