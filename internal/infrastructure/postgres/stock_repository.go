package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/novaflow-api/internal/domain"
	"github.com/jhoicas/novaflow-api/internal/domain/entity"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre warehouse_products
// (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la existencia de un producto en una bodega.
func (r *StockRepo) Get(ctx context.Context, warehouseID, productID string) (*entity.WarehouseStock, error) {
	query := `
		SELECT wp.warehouse_id, wp.product_id, wp.qty, wp.reorder_level,
		       w.name, p.name, wp.updated_at
		FROM warehouse_products wp
		JOIN warehouses w ON w.id = wp.warehouse_id
		JOIN products p ON p.id = wp.product_id
		WHERE wp.warehouse_id = $1 AND wp.product_id = $2`
	var s entity.WarehouseStock
	err := r.q.QueryRow(ctx, query, warehouseID, productID).Scan(
		&s.WarehouseID, &s.ProductID, &s.Qty, &s.ReorderLevel,
		&s.WarehouseName, &s.ProductName, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// List lista existencias con los filtros de bodega, supervisor y búsqueda.
func (r *StockRepo) List(ctx context.Context, f repository.StockFilter) ([]entity.WarehouseStock, error) {
	var w where
	w.eq("wp.warehouse_id", f.WarehouseID)
	w.eq("w.supervisor_id", f.SupervisorID)
	w.search(f.Search, "p.name", "p.type")
	if f.OnlyLow {
		w.raw("wp.qty <= wp.reorder_level")
	}

	query := `
		SELECT wp.warehouse_id, wp.product_id, wp.qty, wp.reorder_level,
		       w.name, p.name, wp.updated_at
		FROM warehouse_products wp
		JOIN warehouses w ON w.id = wp.warehouse_id
		JOIN products p ON p.id = wp.product_id` +
		w.clause() + ` ORDER BY w.name, p.name` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var list []entity.WarehouseStock
	for rows.Next() {
		var s entity.WarehouseStock
		if err := rows.Scan(&s.WarehouseID, &s.ProductID, &s.Qty, &s.ReorderLevel,
			&s.WarehouseName, &s.ProductName, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// LowStockCount cuenta existencias en o bajo su umbral de reposición.
func (r *StockRepo) LowStockCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM warehouse_products WHERE qty <= reorder_level`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("low stock count: %w", err)
	}
	return count, nil
}

// Deduct resta qty con un decremento condicional atómico: la condición
// qty >= n va en el propio UPDATE, así dos deducciones concurrentes nunca
// dejan la existencia en negativo. Cero filas afectadas significa que no
// había suficiente.
func (r *StockRepo) Deduct(ctx context.Context, warehouseID, productID string, qty int64) error {
	query := `
		UPDATE warehouse_products
		SET qty = qty - $3, updated_at = now()
		WHERE warehouse_id = $1 AND product_id = $2 AND qty >= $3`
	tag, err := r.q.Exec(ctx, query, warehouseID, productID, qty)
	if err != nil {
		return fmt.Errorf("deduct stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// Restore suma qty sin condición: restaurar siempre procede.
func (r *StockRepo) Restore(ctx context.Context, warehouseID, productID string, qty int64) error {
	query := `
		UPDATE warehouse_products
		SET qty = qty + $3, updated_at = now()
		WHERE warehouse_id = $1 AND product_id = $2`
	tag, err := r.q.Exec(ctx, query, warehouseID, productID, qty)
	if err != nil {
		return fmt.Errorf("restore stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Upsert alta o ajuste absoluto del inventario de un producto en una bodega.
func (r *StockRepo) Upsert(ctx context.Context, s *entity.WarehouseStock) error {
	query := `
		INSERT INTO warehouse_products (warehouse_id, product_id, qty, reorder_level, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (warehouse_id, product_id)
		DO UPDATE SET qty = EXCLUDED.qty, reorder_level = EXCLUDED.reorder_level, updated_at = now()`
	_, err := r.q.Exec(ctx, query, s.WarehouseID, s.ProductID, s.Qty, s.ReorderLevel)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// Remove retira el producto del inventario de la bodega.
func (r *StockRepo) Remove(ctx context.Context, warehouseID, productID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM warehouse_products WHERE warehouse_id = $1 AND product_id = $2`,
		warehouseID, productID)
	if err != nil {
		return fmt.Errorf("remove stock: %w", err)
	}
	return nil
}
