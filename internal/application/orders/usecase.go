package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/novaflow-api/internal/application/audit"
	"github.com/jhoicas/novaflow-api/internal/application/dto"
	"github.com/jhoicas/novaflow-api/internal/application/inventory"
	"github.com/jhoicas/novaflow-api/internal/domain"
	"github.com/jhoicas/novaflow-api/internal/domain/entity"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
	"github.com/jhoicas/novaflow-api/pkg/logger"
)

// UseCase ciclo de vida del pedido. Toda mutación que toque pedido y stock a
// la vez corre dentro del TxRunner, con la cabecera bloqueada (FOR UPDATE)
// para serializar cancelación y eliminación concurrentes.
type UseCase struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	tx        TxRunner
	ledger    *inventory.Ledger
	audit     *audit.Recorder
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de pedidos.
func NewUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	tx TxRunner,
	ledger *inventory.Ledger,
	rec *audit.Recorder,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		orders:    orders,
		products:  products,
		customers: customers,
		tx:        tx,
		ledger:    ledger,
		audit:     rec,
		log:       log,
	}
}

// Create registra un pedido PENDING con sus líneas y deduce el stock de cada
// una, todo-o-nada: si cualquier línea no tiene existencia suficiente, la
// transacción revierte y ni el pedido ni ninguna deducción quedan escritos.
func (uc *UseCase) Create(ctx context.Context, salesmanID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if salesmanID == "" || in.CustomerID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.ProductID == "" || l.WarehouseID == "" || l.Qty <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	customer, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	// El precio unitario se congela aquí: cambios posteriores del catálogo no
	// afectan al pedido emitido.
	order := &entity.Order{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		SalesmanID: salesmanID,
		Status:     entity.OrderPending,
		OrderDate:  time.Now(),
		CreatedAt:  time.Now(),
	}
	lines := make([]entity.OrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		p, err := uc.products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		lines = append(lines, entity.OrderLine{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			ProductID:   l.ProductID,
			WarehouseID: l.WarehouseID,
			Qty:         l.Qty,
			UnitPrice:   p.UnitPrice,
			ProductName: p.Name,
		})
	}
	order.TotalAmount = entity.OrderTotal(lines)

	err = uc.tx.Run(ctx, func(txOrders repository.OrderRepository, txStocks repository.StockRepository) error {
		if err := txOrders.Insert(ctx, order); err != nil {
			return err
		}
		for i := range lines {
			if err := uc.ledger.Deduct(ctx, txStocks, lines[i].WarehouseID, lines[i].ProductID, lines[i].Qty); err != nil {
				return err
			}
			if err := txOrders.InsertLine(ctx, &lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("salesman_id", salesmanID).
		Int("lines", len(lines)).
		Msg("pedido creado")
	uc.audit.Record(ctx, salesmanID, entity.AuditActionCreate, "orders_m", order.ID,
		fmt.Sprintf("pedido con %d líneas, total %s", len(lines), order.TotalAmount.StringFixed(2)))

	resp := toOrderResponse(order, lines)
	return &resp, nil
}

// Get devuelve el pedido con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.orders.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order, lines)
	return &resp, nil
}

// List lista pedidos según el filtro; el handler restringe SalesmanID cuando
// quien consulta es un vendedor.
func (uc *UseCase) List(ctx context.Context, f repository.OrderFilter) ([]dto.OrderResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	items, err := uc.orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(items))
	for i := range items {
		out = append(out, toOrderResponse(&items[i], nil))
	}
	return out, nil
}

// AddLine añade una línea a un pedido existente deduciendo su stock en la
// misma transacción. Sobre un pedido cancelado está prohibido: su stock ya
// fue restaurado.
func (uc *UseCase) AddLine(ctx context.Context, userID, orderID string, in dto.OrderLineRequest) (*dto.OrderResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.Qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	line := entity.OrderLine{
		ID:          uuid.New().String(),
		OrderID:     orderID,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Qty:         in.Qty,
		UnitPrice:   p.UnitPrice,
		ProductName: p.Name,
	}
	err = uc.tx.Run(ctx, func(txOrders repository.OrderRepository, txStocks repository.StockRepository) error {
		order, err := txOrders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderCancelled {
			return domain.ErrOrderCancelled
		}
		if err := uc.ledger.Deduct(ctx, txStocks, line.WarehouseID, line.ProductID, line.Qty); err != nil {
			return err
		}
		if err := txOrders.InsertLine(ctx, &line); err != nil {
			return err
		}
		return uc.recomputeTotal(ctx, txOrders, orderID)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, userID, entity.AuditActionUpdate, "order_items", line.ID, "línea añadida al pedido "+orderID)
	return uc.Get(ctx, orderID)
}

// RemoveLine quita una línea y restaura su stock en la misma transacción.
// Sobre un pedido cancelado está prohibido: restaurar de nuevo duplicaría la
// restauración que ya hizo la cancelación.
func (uc *UseCase) RemoveLine(ctx context.Context, userID, orderID, lineID string) (*dto.OrderResponse, error) {
	err := uc.tx.Run(ctx, func(txOrders repository.OrderRepository, txStocks repository.StockRepository) error {
		order, err := txOrders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderCancelled {
			return domain.ErrOrderCancelled
		}
		line, err := txOrders.GetLine(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil || line.OrderID != orderID {
			return domain.ErrNotFound
		}
		if err := txOrders.DeleteLine(ctx, lineID); err != nil {
			return err
		}
		if err := uc.ledger.Restore(ctx, txStocks, line.WarehouseID, line.ProductID, line.Qty); err != nil {
			return err
		}
		return uc.recomputeTotal(ctx, txOrders, orderID)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, userID, entity.AuditActionUpdate, "order_items", lineID, "línea eliminada del pedido "+orderID)
	return uc.Get(ctx, orderID)
}

// SetStatus aplica una transición del ciclo de vida. La entrada a CANCELLED
// restaura el stock de todas las líneas; como CANCELLED es terminal, solo se
// puede entrar una vez y la restauración no puede duplicarse.
func (uc *UseCase) SetStatus(ctx context.Context, userID, orderID string, rawStatus string) (*dto.OrderResponse, error) {
	next, ok := entity.ParseOrderStatus(rawStatus)
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	err := uc.tx.Run(ctx, func(txOrders repository.OrderRepository, txStocks repository.StockRepository) error {
		order, err := txOrders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderCancelled {
			return domain.ErrOrderCancelled
		}
		if !order.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, order.Status, next)
		}
		if next == entity.OrderCancelled {
			lines, err := txOrders.GetLines(ctx, orderID)
			if err != nil {
				return err
			}
			for _, l := range lines {
				if err := uc.ledger.Restore(ctx, txStocks, l.WarehouseID, l.ProductID, l.Qty); err != nil {
					return err
				}
			}
		}
		return txOrders.UpdateStatus(ctx, orderID, next)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", orderID).Str("status", string(next)).Msg("estado de pedido actualizado")
	uc.audit.Record(ctx, userID, entity.AuditActionUpdate, "orders_m", orderID, "estado → "+string(next))
	return uc.Get(ctx, orderID)
}

// Delete elimina el pedido y sus líneas. Si el pedido no estaba cancelado, su
// stock sigue deducido y se restaura aquí; si ya estaba cancelado, la
// cancelación ya lo restauró y eliminar no vuelve a tocar inventario.
func (uc *UseCase) Delete(ctx context.Context, userID, orderID string) error {
	err := uc.tx.Run(ctx, func(txOrders repository.OrderRepository, txStocks repository.StockRepository) error {
		order, err := txOrders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderCancelled {
			lines, err := txOrders.GetLines(ctx, orderID)
			if err != nil {
				return err
			}
			for _, l := range lines {
				if err := uc.ledger.Restore(ctx, txStocks, l.WarehouseID, l.ProductID, l.Qty); err != nil {
					return err
				}
			}
		}
		return txOrders.Delete(ctx, orderID)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("order_id", orderID).Msg("pedido eliminado")
	uc.audit.Record(ctx, userID, entity.AuditActionDelete, "orders_m", orderID, "pedido eliminado")
	return nil
}

// recomputeTotal recalcula el total desde las líneas vigentes dentro de la tx.
func (uc *UseCase) recomputeTotal(ctx context.Context, txOrders repository.OrderRepository, orderID string) error {
	lines, err := txOrders.GetLines(ctx, orderID)
	if err != nil {
		return err
	}
	return txOrders.UpdateTotal(ctx, orderID, entity.OrderTotal(lines))
}

func toOrderResponse(o *entity.Order, lines []entity.OrderLine) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		SalesmanID:   o.SalesmanID,
		SalesmanName: o.SalesmanName,
		TotalAmount:  o.TotalAmount.StringFixed(2),
		Status:       string(o.Status),
		OrderDate:    o.OrderDate.Format(time.RFC3339),
	}
	if len(lines) > 0 {
		total := decimal.Zero
		resp.Lines = make([]dto.OrderLineResponse, 0, len(lines))
		for _, l := range lines {
			resp.Lines = append(resp.Lines, dto.OrderLineResponse{
				ID:          l.ID,
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
				WarehouseID: l.WarehouseID,
				Qty:         l.Qty,
				UnitPrice:   l.UnitPrice.StringFixed(2),
				Subtotal:    l.Subtotal().StringFixed(2),
			})
			total = total.Add(l.Subtotal())
		}
		resp.TotalAmount = total.StringFixed(2)
	}
	return resp
}
