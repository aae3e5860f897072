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

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación de ProjectRepository sobre projects y
// emp_projects (usable con pool o tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectSelect = `
	SELECT pr.id, pr.name, COALESCE(pr.department_id, ''), COALESCE(pr.location_id, ''),
	       pr.status, pr.start_date, pr.end_date,
	       COALESCE(d.name, ''), COALESCE(l.name, ''), pr.created_at
	FROM projects pr
	LEFT JOIN departments d ON d.id = pr.department_id
	LEFT JOIN locations l ON l.id = pr.location_id`

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(&p.ID, &p.Name, &p.DepartmentID, &p.LocationID, &p.Status,
		&p.StartDate, &p.EndDate, &p.DepartmentName, &p.LocationName, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene un proyecto.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	p, err := scanProject(r.q.QueryRow(ctx, projectSelect+` WHERE pr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// List lista proyectos con filtros de departamento, estado y búsqueda.
func (r *ProjectRepo) List(ctx context.Context, f repository.ProjectFilter) ([]entity.Project, error) {
	var w where
	w.eq("pr.department_id", f.DepartmentID)
	w.eq("pr.status", string(f.Status))
	w.search(f.Search, "pr.name")

	query := projectSelect + w.clause() + ` ORDER BY pr.name` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var list []entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

// Insert persiste un proyecto nuevo.
func (r *ProjectRepo) Insert(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (id, name, department_id, location_id, status, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, nullIfEmpty(p.DepartmentID), nullIfEmpty(p.LocationID),
		string(p.Status), p.StartDate, p.EndDate, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// Update actualiza un proyecto.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE projects SET name = $2, department_id = $3, location_id = $4,
			status = $5, start_date = $6, end_date = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, nullIfEmpty(p.DepartmentID), nullIfEmpty(p.LocationID),
		string(p.Status), p.StartDate, p.EndDate)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// Delete elimina el proyecto. Falla con ErrConflict si tiene horas imputadas.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM emp_projects WHERE project_id = $1`, id); err != nil {
		return fmt.Errorf("delete project assignments: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AssignEmployee asigna un empleado al proyecto (idempotente).
func (r *ProjectRepo) AssignEmployee(ctx context.Context, projectID, employeeID string) error {
	query := `
		INSERT INTO emp_projects (project_id, employee_id)
		VALUES ($1, $2)
		ON CONFLICT (project_id, employee_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, projectID, employeeID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("assign employee: %w", err)
	}
	return nil
}

// UnassignEmployee retira al empleado del proyecto.
func (r *ProjectRepo) UnassignEmployee(ctx context.Context, projectID, employeeID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM emp_projects WHERE project_id = $1 AND employee_id = $2`,
		projectID, employeeID)
	if err != nil {
		return fmt.Errorf("unassign employee: %w", err)
	}
	return nil
}
