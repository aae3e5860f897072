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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación de WarehouseRepository (usable con pool o tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseSelect = `
	SELECT w.id, w.name, COALESCE(w.location_id, ''), COALESCE(w.supervisor_id, ''),
	       w.capacity, COALESCE(l.name, ''), COALESCE(p.name, ''),
	       (SELECT COUNT(*) FROM warehouse_products WHERE warehouse_id = w.id),
	       w.created_at
	FROM warehouses w
	LEFT JOIN locations l ON l.id = w.location_id
	LEFT JOIN person p ON p.id = w.supervisor_id`

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := row.Scan(&w.ID, &w.Name, &w.LocationID, &w.SupervisorID, &w.Capacity,
		&w.LocationName, &w.SupervisorName, &w.ProductCount, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// GetByID obtiene una bodega con ubicación y supervisor denormalizados.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	w, err := scanWarehouse(r.q.QueryRow(ctx, warehouseSelect+` WHERE w.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return w, nil
}

// List lista bodegas; con SupervisorID filtra a las del supervisor.
func (r *WarehouseRepo) List(ctx context.Context, f repository.WarehouseFilter) ([]entity.Warehouse, error) {
	var w where
	w.eq("w.supervisor_id", f.SupervisorID)
	w.search(f.Search, "w.name", "l.name", "p.name")

	query := warehouseSelect + w.clause() + ` ORDER BY w.name` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var list []entity.Warehouse
	for rows.Next() {
		wh, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, *wh)
	}
	return list, rows.Err()
}

// Insert persiste una bodega nueva.
func (r *WarehouseRepo) Insert(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, name, location_id, supervisor_id, capacity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.Name, nullIfEmpty(w.LocationID), nullIfEmpty(w.SupervisorID), w.Capacity, w.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// Update actualiza los datos de la bodega.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET name = $2, location_id = $3, supervisor_id = $4, capacity = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.Name, nullIfEmpty(w.LocationID), nullIfEmpty(w.SupervisorID), w.Capacity)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// Delete elimina la bodega. Falla con ErrConflict si tiene existencias.
func (r *WarehouseRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete warehouse: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
