package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/novaflow-api/internal/application/audit"
	"github.com/jhoicas/novaflow-api/internal/application/dto"
	"github.com/jhoicas/novaflow-api/internal/domain"
	"github.com/jhoicas/novaflow-api/internal/domain/entity"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
	"github.com/jhoicas/novaflow-api/pkg/logger"
)

// UseCase catálogo de productos y existencias por bodega. Las cantidades solo
// se ajustan aquí en el alta o corrección de inventario; las ventas pasan por
// el ciclo de vida del pedido.
type UseCase struct {
	products repository.ProductRepository
	stocks   repository.StockRepository
	audit    *audit.Recorder
	log      *logger.Logger
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(products repository.ProductRepository, stocks repository.StockRepository, rec *audit.Recorder, log *logger.Logger) *UseCase {
	return &UseCase{products: products, stocks: stocks, audit: rec, log: log}
}

// CreateProduct da de alta un producto de catálogo.
func (uc *UseCase) CreateProduct(ctx context.Context, userID string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	price, err := parsePrice(in.UnitPrice)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Type:        in.Type,
		UnitPrice:   price,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.products.Insert(ctx, p); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionCreate, "products", p.ID, "producto "+p.Name)
	resp := toProductResponse(p)
	return &resp, nil
}

// UpdateProduct edita nombre, tipo, precio vigente y descripción. Las líneas
// de pedido ya emitidas conservan su precio congelado.
func (uc *UseCase) UpdateProduct(ctx context.Context, userID, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	price, err := parsePrice(in.UnitPrice)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	p.Name = in.Name
	p.Type = in.Type
	p.UnitPrice = price
	p.Description = in.Description
	p.UpdatedAt = time.Now()
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionUpdate, "products", p.ID, "producto "+p.Name)
	resp := toProductResponse(p)
	return &resp, nil
}

// GetProduct devuelve un producto por ID.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// ListProducts lista el catálogo con búsqueda por nombre o tipo.
func (uc *UseCase) ListProducts(ctx context.Context, search string, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	items, err := uc.products.List(ctx, search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(items))
	for i := range items {
		out = append(out, toProductResponse(&items[i]))
	}
	return out, nil
}

// ListStock lista existencias con el indicador de stock bajo por fila.
func (uc *UseCase) ListStock(ctx context.Context, f repository.StockFilter) ([]dto.StockResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	items, err := uc.stocks.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(items))
	for _, s := range items {
		out = append(out, dto.StockResponse{
			ProductID:     s.ProductID,
			ProductName:   s.ProductName,
			WarehouseID:   s.WarehouseID,
			WarehouseName: s.WarehouseName,
			Qty:           s.Qty,
			ReorderLevel:  s.ReorderLevel,
			LowStock:      s.LowStock(),
		})
	}
	return out, nil
}

// UpsertStock alta o corrección manual de la existencia de un producto en una
// bodega. Fija la cantidad absoluta, no suma.
func (uc *UseCase) UpsertStock(ctx context.Context, userID string, in dto.StockRequest) error {
	if in.ProductID == "" || in.WarehouseID == "" || in.Qty < 0 || in.ReorderLevel < 0 {
		return domain.ErrInvalidInput
	}
	s := &entity.WarehouseStock{
		WarehouseID:  in.WarehouseID,
		ProductID:    in.ProductID,
		Qty:          in.Qty,
		ReorderLevel: in.ReorderLevel,
		UpdatedAt:    time.Now(),
	}
	if err := uc.stocks.Upsert(ctx, s); err != nil {
		return err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionUpdate, "warehouse_products", in.WarehouseID+"/"+in.ProductID, "ajuste de existencia")
	return nil
}

// RemoveStock retira un producto del inventario de una bodega.
func (uc *UseCase) RemoveStock(ctx context.Context, userID, warehouseID, productID string) error {
	if warehouseID == "" || productID == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.stocks.Remove(ctx, warehouseID, productID); err != nil {
		return err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionDelete, "warehouse_products", warehouseID+"/"+productID, "producto retirado de bodega")
	return nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return price, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		UnitPrice:   p.UnitPrice.StringFixed(2),
		Description: p.Description,
	}
}
