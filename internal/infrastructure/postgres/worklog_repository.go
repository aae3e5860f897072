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

var _ repository.WorkLogRepository = (*WorkLogRepo)(nil)

// WorkLogRepo implementación de WorkLogRepository (usable con pool o tx).
type WorkLogRepo struct {
	q Querier
}

// NewWorkLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkLogRepository(q Querier) *WorkLogRepo {
	return &WorkLogRepo{q: q}
}

const worklogSelect = `
	SELECT wl.id, wl.employee_id, wl.project_id, wl.work_date, wl.hours,
	       wl.notes, wl.supervisor_approved, wl.hod_approved, wl.approval_status,
	       e.name, pr.name, wl.created_at
	FROM work_log wl
	JOIN person e ON e.id = wl.employee_id
	JOIN projects pr ON pr.id = wl.project_id`

func scanWorkLog(row pgx.Row) (*entity.WorkLog, error) {
	var wl entity.WorkLog
	err := row.Scan(&wl.ID, &wl.EmployeeID, &wl.ProjectID, &wl.WorkDate, &wl.Hours,
		&wl.Notes, &wl.SupervisorApproved, &wl.HODApproved, &wl.ApprovalStatus,
		&wl.EmployeeName, &wl.ProjectName, &wl.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &wl, nil
}

// GetByID obtiene un registro de horas.
func (r *WorkLogRepo) GetByID(ctx context.Context, id string) (*entity.WorkLog, error) {
	wl, err := scanWorkLog(r.q.QueryRow(ctx, worklogSelect+` WHERE wl.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work log: %w", err)
	}
	return wl, nil
}

// List lista registros dentro del alcance del filtro: empleado, supervisados
// de un supervisor (vía emp_supervisor) o departamento de un HOD.
func (r *WorkLogRepo) List(ctx context.Context, f repository.WorkLogFilter) ([]entity.WorkLog, error) {
	var w where
	w.eq("wl.employee_id", f.EmployeeID)
	w.eq("wl.approval_status", string(f.Status))
	if f.SupervisorID != "" {
		n := w.next(f.SupervisorID)
		w.raw(fmt.Sprintf(
			"wl.employee_id IN (SELECT employee_id FROM emp_supervisor WHERE supervisor_id = $%d)", n))
	}
	if f.HODID != "" {
		n := w.next(f.HODID)
		w.raw(fmt.Sprintf(
			"e.department_id IN (SELECT department_id FROM person WHERE id = $%d)", n))
	}
	w.search(f.Search, "e.name", "pr.name")

	query := worklogSelect + w.clause() + ` ORDER BY wl.work_date DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list work logs: %w", err)
	}
	defer rows.Close()

	var list []entity.WorkLog
	for rows.Next() {
		wl, err := scanWorkLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work log: %w", err)
		}
		list = append(list, *wl)
	}
	return list, rows.Err()
}

// Insert persiste un registro de horas nuevo.
func (r *WorkLogRepo) Insert(ctx context.Context, wl *entity.WorkLog) error {
	query := `
		INSERT INTO work_log (id, employee_id, project_id, work_date, hours, notes,
			supervisor_approved, hod_approved, approval_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		wl.ID, wl.EmployeeID, wl.ProjectID, wl.WorkDate, wl.Hours, wl.Notes,
		wl.SupervisorApproved, wl.HODApproved, string(wl.ApprovalStatus), wl.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert work log: %w", err)
	}
	return nil
}

// UpdateApproval aplica los flags de aprobación y el estado resultante.
func (r *WorkLogRepo) UpdateApproval(ctx context.Context, id string, u repository.ApprovalUpdate) error {
	query := `
		UPDATE work_log SET
			supervisor_approved = COALESCE($2, supervisor_approved),
			hod_approved = COALESCE($3, hod_approved),
			approval_status = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, u.SupervisorApproved, u.HODApproved, string(u.Status))
	if err != nil {
		return fmt.Errorf("update approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
