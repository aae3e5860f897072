// Package orders implementa el ciclo de vida del pedido: creación todo-o-nada,
// transiciones de estado y el pareo deducción/restauración de stock.
package orders

import (
	"context"

	"github.com/jhoicas/novaflow-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción: los repositorios que recibe
// fn están ligados a la tx y cualquier error revierte todo lo escrito.
// Pedido y stock mutan siempre juntos o no mutan.
type TxRunner interface {
	Run(ctx context.Context, fn func(orders repository.OrderRepository, stocks repository.StockRepository) error) error
}
