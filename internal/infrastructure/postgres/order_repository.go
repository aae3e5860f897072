package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/novaflow-api/internal/domain"
	"github.com/jhoicas/novaflow-api/internal/domain/entity"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre orders_m y order_items
// (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderSelect = `
	SELECT o.id, o.customer_id, o.salesman_id, o.total_amount, o.status,
	       o.order_date, c.name, p.name, o.created_at
	FROM orders_m o
	JOIN customers c ON c.id = o.customer_id
	JOIN person p ON p.id = o.salesman_id`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.SalesmanID, &o.TotalAmount, &o.Status,
		&o.OrderDate, &o.CustomerName, &o.SalesmanName, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID obtiene la cabecera del pedido.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetForUpdate obtiene la cabecera bloqueando su fila (FOR UPDATE OF o):
// cancelación y eliminación concurrentes del mismo pedido se serializan aquí.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, orderSelect+` WHERE o.id = $1 FOR UPDATE OF o`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return o, nil
}

// List lista pedidos según el filtro.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]entity.Order, error) {
	var w where
	w.eq("o.salesman_id", f.SalesmanID)
	w.eq("o.status", string(f.Status))
	w.search(f.Search, "c.name", "o.id::text")

	query := orderSelect + w.clause() + ` ORDER BY o.order_date DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, *o)
	}
	return list, rows.Err()
}

// GetLines devuelve las líneas del pedido con el nombre del producto.
func (r *OrderRepo) GetLines(ctx context.Context, orderID string) ([]entity.OrderLine, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, i.warehouse_id, i.qty, i.unit_price, p.name
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order lines: %w", err)
	}
	defer rows.Close()

	var list []entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.WarehouseID,
			&l.Qty, &l.UnitPrice, &l.ProductName); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// GetLine devuelve una línea por ID, o nil si no existe.
func (r *OrderRepo) GetLine(ctx context.Context, lineID string) (*entity.OrderLine, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, i.warehouse_id, i.qty, i.unit_price, p.name
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.id = $1`
	var l entity.OrderLine
	err := r.q.QueryRow(ctx, query, lineID).Scan(
		&l.ID, &l.OrderID, &l.ProductID, &l.WarehouseID, &l.Qty, &l.UnitPrice, &l.ProductName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order line: %w", err)
	}
	return &l, nil
}

// Insert persiste la cabecera del pedido.
func (r *OrderRepo) Insert(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders_m (id, customer_id, salesman_id, total_amount, status, order_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CustomerID, o.SalesmanID, o.TotalAmount, string(o.Status), o.OrderDate, o.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// InsertLine persiste una línea con su precio unitario congelado.
func (r *OrderRepo) InsertLine(ctx context.Context, l *entity.OrderLine) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, warehouse_id, qty, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, l.ID, l.OrderID, l.ProductID, l.WarehouseID, l.Qty, l.UnitPrice)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// DeleteLine elimina una línea.
func (r *OrderRepo) DeleteLine(ctx context.Context, lineID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE id = $1`, lineID); err != nil {
		return fmt.Errorf("delete order line: %w", err)
	}
	return nil
}

// UpdateStatus escribe el nuevo estado. La validez de la transición la
// garantiza el ciclo de vida antes de llamar aquí.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	if _, err := r.q.Exec(ctx,
		`UPDATE orders_m SET status = $2 WHERE id = $1`, id, string(status)); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// UpdateTotal escribe el total recalculado desde las líneas vigentes.
func (r *OrderRepo) UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error {
	if _, err := r.q.Exec(ctx,
		`UPDATE orders_m SET total_amount = $2 WHERE id = $1`, id, total); err != nil {
		return fmt.Errorf("update order total: %w", err)
	}
	return nil
}

// Delete elimina líneas y cabecera. La restauración de stock ya la hizo el
// ciclo de vida dentro de la misma transacción.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return fmt.Errorf("delete order lines: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM orders_m WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
