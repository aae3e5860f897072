package repository

import (
	"context"

	"github.com/jhoicas/novaflow-api/internal/domain/entity"
)

// AuditRepository acceso a audit_logs.
type AuditRepository interface {
	Insert(ctx context.Context, a *entity.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]entity.AuditLog, error)
}
