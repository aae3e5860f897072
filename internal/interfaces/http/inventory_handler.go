package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/novaflow-api/internal/application/dto"
	"github.com/jhoicas/novaflow-api/internal/application/inventory"
	"github.com/jhoicas/novaflow-api/internal/domain/rbac"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
)

// InventoryHandler maneja el catálogo de productos y las existencias.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// CreateProduct alta de producto de catálogo.
func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.CreateProduct(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateProduct edición de producto.
func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.UpdateProduct(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetProduct devuelve un producto.
func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListProducts listado del catálogo.
func (h *InventoryHandler) ListProducts(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badRequest(c, "parámetros de paginación inválidos")
	}
	out, err := h.uc.ListProducts(c.Context(), c.Query("search"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListStock listado de existencias con el indicador de stock bajo.
// Un supervisor solo ve las de sus bodegas.
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return badRequest(c, "parámetros de paginación inválidos")
	}
	f := repository.StockFilter{
		WarehouseID: c.Query("warehouse_id"),
		Search:      c.Query("search"),
		OnlyLow:     c.QueryBool("only_low"),
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	if GetRole(c) == string(rbac.RoleSupervisor) {
		f.SupervisorID = GetUserID(c)
	}
	out, err := h.uc.ListStock(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpsertStock alta o ajuste absoluto de existencia.
func (h *InventoryHandler) UpsertStock(c *fiber.Ctx) error {
	var in dto.StockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := h.uc.UpsertStock(c.Context(), GetUserID(c), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveStock retira un producto del inventario de una bodega.
func (h *InventoryHandler) RemoveStock(c *fiber.Ctx) error {
	if err := h.uc.RemoveStock(c.Context(), GetUserID(c), c.Params("warehouseId"), c.Params("productId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
