package repository

import (
	"context"

	"github.com/jhoicas/novaflow-api/internal/domain/entity"
)

// WorkLogFilter el alcance se decide por rol: un empleado ve lo suyo, un
// supervisor a sus supervisados, un HOD a su departamento. Solo uno de los
// tres IDs de alcance debe venir poblado.
type WorkLogFilter struct {
	EmployeeID   string
	SupervisorID string
	HODID        string
	Status       entity.ApprovalStatus
	Search       string // empleado o proyecto
	Limit        int
	Offset       int
}

// ApprovalUpdate cambios de aprobación sobre un registro de horas.
type ApprovalUpdate struct {
	SupervisorApproved *bool
	HODApproved        *bool
	Status             entity.ApprovalStatus
}

// WorkLogRepository acceso a work_log.
type WorkLogRepository interface {
	GetByID(ctx context.Context, id string) (*entity.WorkLog, error)
	List(ctx context.Context, f WorkLogFilter) ([]entity.WorkLog, error)
	Insert(ctx context.Context, w *entity.WorkLog) error
	UpdateApproval(ctx context.Context, id string, u ApprovalUpdate) error
}
