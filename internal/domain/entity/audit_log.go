package entity

import "time"

// Acciones de auditoría registradas.
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
	AuditActionLogin  = "LOGIN"
	AuditActionLogout = "LOGOUT"
)

// AuditLog registro de auditoría best-effort: su escritura nunca bloquea ni
// hace fallar la operación principal.
type AuditLog struct {
	ID         string
	UserID     string
	ActionType string
	TableName  string
	RecordID   string
	Details    string
	UserName   string // denormalizado en listados
	CreatedAt  time.Time
}
