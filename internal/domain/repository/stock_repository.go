package repository

import (
	"context"

	"github.com/jhoicas/novaflow-api/internal/domain/entity"
)

// StockFilter filtros opcionales para el listado de existencias.
type StockFilter struct {
	WarehouseID  string
	SupervisorID string // vía la bodega
	Search       string // nombre o tipo de producto
	OnlyLow      bool
	Limit        int
	Offset       int
}

// StockRepository acceso a warehouse_products. Las cantidades se mutan solo a
// través de Deduct/Restore (el ledger); Upsert existe para el alta y ajuste de
// catálogo por bodega, nunca para contabilizar ventas.
type StockRepository interface {
	Get(ctx context.Context, warehouseID, productID string) (*entity.WarehouseStock, error)
	List(ctx context.Context, f StockFilter) ([]entity.WarehouseStock, error)
	LowStockCount(ctx context.Context) (int64, error)

	// Deduct resta qty como decremento condicional atómico en el storage
	// (UPDATE ... SET qty = qty - n WHERE qty >= n) y devuelve
	// domain.ErrInsufficientStock si ninguna fila quedó afectada.
	// Nunca se lee la cantidad al cliente para restar allí.
	Deduct(ctx context.Context, warehouseID, productID string, qty int64) error
	// Restore suma qty sin tope: la capacidad de bodega es consultiva.
	Restore(ctx context.Context, warehouseID, productID string, qty int64) error

	Upsert(ctx context.Context, s *entity.WarehouseStock) error
	Remove(ctx context.Context, warehouseID, productID string) error
}
