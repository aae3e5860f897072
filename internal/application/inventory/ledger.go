// Package inventory contiene el ledger de existencias y el caso de uso del
// catálogo de productos por bodega.
package inventory

import (
	"context"

	"github.com/jhoicas/novaflow-api/internal/domain"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
	"github.com/jhoicas/novaflow-api/pkg/logger"
)

// Ledger único punto de mutación de cantidades. Deduct/Restore van siempre en
// pareja dentro del ciclo de vida del pedido: toda deducción confirmada tiene
// como máximo una restauración.
//
// El repositorio se recibe por llamada y no en el constructor: dentro de una
// transacción el ciclo de vida pasa su StockRepository ligado a la tx.
type Ledger struct {
	log *logger.Logger
}

// NewLedger construye el ledger.
func NewLedger(log *logger.Logger) *Ledger {
	return &Ledger{log: log}
}

// Deduct resta qty de la existencia (bodega, producto). La resta es un
// decremento condicional atómico en el storage; si no hay existencia
// suficiente devuelve domain.ErrInsufficientStock sin modificar nada.
func (l *Ledger) Deduct(ctx context.Context, stocks repository.StockRepository, warehouseID, productID string, qty int64) error {
	if warehouseID == "" || productID == "" || qty <= 0 {
		return domain.ErrInvalidInput
	}
	if err := stocks.Deduct(ctx, warehouseID, productID, qty); err != nil {
		return err
	}
	l.log.Debug().
		Str("warehouse_id", warehouseID).
		Str("product_id", productID).
		Int64("qty", qty).
		Msg("stock deducido")
	return nil
}

// Restore devuelve qty a la existencia. No hay tope superior: la capacidad de
// bodega es consultiva y nunca bloquea una restauración.
func (l *Ledger) Restore(ctx context.Context, stocks repository.StockRepository, warehouseID, productID string, qty int64) error {
	if warehouseID == "" || productID == "" || qty <= 0 {
		return domain.ErrInvalidInput
	}
	if err := stocks.Restore(ctx, warehouseID, productID, qty); err != nil {
		return err
	}
	l.log.Debug().
		Str("warehouse_id", warehouseID).
		Str("product_id", productID).
		Int64("qty", qty).
		Msg("stock restaurado")
	return nil
}
