package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/novaflow-api/internal/domain/entity"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación de AuditRepository (usable con pool o tx).
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Insert persiste un registro de auditoría.
func (r *AuditRepo) Insert(ctx context.Context, a *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action_type, table_name, record_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		a.ID, nullIfEmpty(a.UserID), a.ActionType, a.TableName, nullIfEmpty(a.RecordID),
		a.Details, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListRecent devuelve los últimos registros con el nombre de usuario
// denormalizado.
func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	query := `
		SELECT a.id, COALESCE(a.user_id, ''), a.action_type, a.table_name,
		       COALESCE(a.record_id, ''), a.details, COALESCE(p.name, ''), a.created_at
		FROM audit_logs a
		LEFT JOIN person p ON p.id = a.user_id
		ORDER BY a.created_at DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var list []entity.AuditLog
	for rows.Next() {
		var a entity.AuditLog
		if err := rows.Scan(&a.ID, &a.UserID, &a.ActionType, &a.TableName,
			&a.RecordID, &a.Details, &a.UserName, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
