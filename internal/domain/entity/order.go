package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estados del ciclo de vida de un pedido.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// ParseOrderStatus valida un estado recibido como string.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransitionTo tabla de transiciones del ciclo de vida:
// camino hacia adelante PENDING → PROCESSING → COMPLETED (se permite saltar
// PROCESSING), cancelación solo desde PENDING/PROCESSING, y CANCELLED es
// terminal: reactivar un pedido cancelado dejaría stock sin re-deducir.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return false
	}
	switch s {
	case OrderPending:
		return next == OrderProcessing || next == OrderCompleted || next == OrderCancelled
	case OrderProcessing:
		return next == OrderCompleted || next == OrderCancelled
	case OrderCompleted, OrderCancelled:
		return false
	}
	return false
}

// Order cabecera de pedido. TotalAmount es derivado: siempre igual a la suma
// de los subtotales de sus líneas vigentes.
type Order struct {
	ID           string
	CustomerID   string
	SalesmanID   string
	TotalAmount  decimal.Decimal
	Status       OrderStatus
	OrderDate    time.Time
	CustomerName string // denormalizado en listados
	SalesmanName string
	CreatedAt    time.Time
}

// OrderLine línea de pedido: producto en una bodega concreta, con el precio
// unitario congelado al momento de la venta.
type OrderLine struct {
	ID          string
	OrderID     string
	ProductID   string
	WarehouseID string
	Qty         int64
	UnitPrice   decimal.Decimal
	ProductName string // denormalizado
}

// Subtotal qty × precio unitario congelado.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Qty))
}

// OrderTotal suma de subtotales de las líneas.
func OrderTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
