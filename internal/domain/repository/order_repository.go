package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/novaflow-api/internal/domain/entity"
)

// OrderFilter filtros opcionales para el listado de pedidos.
type OrderFilter struct {
	SalesmanID string
	Status     entity.OrderStatus
	Search     string // nombre de cliente o ID de pedido
	Limit      int
	Offset     int
}

// OrderRepository acceso a orders_m y order_items.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila de la cabecera (SELECT FOR UPDATE) para
	// serializar cancelación/eliminación concurrentes del mismo pedido.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, f OrderFilter) ([]entity.Order, error)
	GetLines(ctx context.Context, orderID string) ([]entity.OrderLine, error)
	GetLine(ctx context.Context, lineID string) (*entity.OrderLine, error)

	Insert(ctx context.Context, o *entity.Order) error
	InsertLine(ctx context.Context, l *entity.OrderLine) error
	DeleteLine(ctx context.Context, lineID string) error
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
	UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error
	// Delete elimina líneas y cabecera. La restauración de stock es
	// responsabilidad del ciclo de vida, no del repositorio.
	Delete(ctx context.Context, id string) error
}
