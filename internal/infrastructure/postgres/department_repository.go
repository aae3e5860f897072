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

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

// DepartmentRepo implementación de DepartmentRepository (usable con pool o tx).
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

// GetByID obtiene un departamento con su HOD denormalizado.
func (r *DepartmentRepo) GetByID(ctx context.Context, id string) (*entity.Department, error) {
	query := `
		SELECT d.id, d.name, COALESCE(d.hod_id, ''), COALESCE(p.name, ''),
		       (SELECT COUNT(*) FROM person WHERE department_id = d.id AND is_active),
		       d.created_at
		FROM departments d
		LEFT JOIN person p ON p.id = d.hod_id
		WHERE d.id = $1`
	var d entity.Department
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.HODID, &d.HODName, &d.EmployeeCount, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return &d, nil
}

// List lista departamentos con HOD y conteo de empleados activos.
func (r *DepartmentRepo) List(ctx context.Context, f repository.DepartmentFilter) ([]entity.Department, error) {
	var w where
	w.search(f.Search, "d.name")

	query := `
		SELECT d.id, d.name, COALESCE(d.hod_id, ''), COALESCE(p.name, ''),
		       (SELECT COUNT(*) FROM person WHERE department_id = d.id AND is_active),
		       d.created_at
		FROM departments d
		LEFT JOIN person p ON p.id = d.hod_id` +
		w.clause() + ` ORDER BY d.name` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var list []entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.HODID, &d.HODName,
			&d.EmployeeCount, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Insert persiste un departamento. El nombre es único.
func (r *DepartmentRepo) Insert(ctx context.Context, d *entity.Department) error {
	query := `INSERT INTO departments (id, name, hod_id, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, d.ID, d.Name, nullIfEmpty(d.HODID), d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert department: %w", err)
	}
	return nil
}

// Update actualiza nombre y HOD.
func (r *DepartmentRepo) Update(ctx context.Context, d *entity.Department) error {
	query := `UPDATE departments SET name = $2, hod_id = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, d.ID, d.Name, nullIfEmpty(d.HODID))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update department: %w", err)
	}
	return nil
}

// Delete elimina el departamento. Falla con ErrConflict si aún tiene
// empleados o proyectos.
func (r *DepartmentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListLocations catálogo de ubicaciones.
func (r *DepartmentRepo) ListLocations(ctx context.Context) ([]entity.Location, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM locations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var list []entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
