// Package audit registra acciones de usuario en audit_logs en modo
// best-effort: un fallo del registro jamás bloquea ni hace fallar la
// operación principal; se degrada a log local.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/novaflow-api/internal/domain/entity"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
	"github.com/jhoicas/novaflow-api/pkg/logger"
)

// Recorder escribe registros de auditoría.
type Recorder struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

// NewRecorder construye el recorder.
func NewRecorder(repo repository.AuditRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record inserta el registro. Si la DB falla, solo queda el log de proceso.
func (r *Recorder) Record(ctx context.Context, userID, actionType, tableName, recordID, details string) {
	entry := &entity.AuditLog{
		ID:         uuid.New().String(),
		UserID:     userID,
		ActionType: actionType,
		TableName:  tableName,
		RecordID:   recordID,
		Details:    details,
		CreatedAt:  time.Now(),
	}
	if err := r.repo.Insert(ctx, entry); err != nil {
		r.log.Warn().Err(err).
			Str("user_id", userID).
			Str("action", actionType).
			Str("table", tableName).
			Msg("auditoría no persistida, solo log local")
	}
}

// Recent devuelve los últimos registros de auditoría.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return r.repo.ListRecent(ctx, limit)
}
