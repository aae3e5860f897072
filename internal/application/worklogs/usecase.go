// Package worklogs registra horas de trabajo contra proyectos y su flujo de
// aprobación por supervisor o HOD.
package worklogs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/novaflow-api/internal/application/audit"
	"github.com/jhoicas/novaflow-api/internal/application/dto"
	"github.com/jhoicas/novaflow-api/internal/domain"
	"github.com/jhoicas/novaflow-api/internal/domain/entity"
	"github.com/jhoicas/novaflow-api/internal/domain/rbac"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
	"github.com/jhoicas/novaflow-api/pkg/logger"
)

// UseCase registro y aprobación de horas.
type UseCase struct {
	worklogs repository.WorkLogRepository
	projects repository.ProjectRepository
	audit    *audit.Recorder
	log      *logger.Logger
}

// NewUseCase construye el caso de uso de registros de horas.
func NewUseCase(worklogs repository.WorkLogRepository, projects repository.ProjectRepository, rec *audit.Recorder, log *logger.Logger) *UseCase {
	return &UseCase{worklogs: worklogs, projects: projects, audit: rec, log: log}
}

// Submit registra horas del empleado autenticado contra un proyecto. Entra en
// estado PENDING a la espera de aprobación.
func (uc *UseCase) Submit(ctx context.Context, employeeID string, in dto.SubmitWorkLogRequest) (*dto.WorkLogResponse, error) {
	if employeeID == "" || in.ProjectID == "" {
		return nil, domain.ErrInvalidInput
	}
	hours, err := decimal.NewFromString(in.Hours)
	if err != nil || hours.IsNegative() || hours.IsZero() || hours.GreaterThan(decimal.NewFromInt(24)) {
		return nil, domain.ErrInvalidInput
	}
	workDate, err := time.Parse("2006-01-02", in.WorkDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	project, err := uc.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	w := &entity.WorkLog{
		ID:             uuid.New().String(),
		EmployeeID:     employeeID,
		ProjectID:      in.ProjectID,
		WorkDate:       workDate,
		Hours:          hours,
		Notes:          in.Notes,
		ApprovalStatus: entity.ApprovalPending,
		ProjectName:    project.Name,
		CreatedAt:      time.Now(),
	}
	if err := uc.worklogs.Insert(ctx, w); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, employeeID, entity.AuditActionCreate, "work_log", w.ID,
		"horas registradas en "+project.Name)
	resp := toWorkLogResponse(w)
	return &resp, nil
}

// Approve aprueba o rechaza un registro. El flag que se marca depende del rol
// de quien aprueba; el rechazo es definitivo en cualquiera de los dos niveles.
func (uc *UseCase) Approve(ctx context.Context, approverID string, approverRole rbac.Role, worklogID string, approve bool) (*dto.WorkLogResponse, error) {
	if approverRole != rbac.RoleSupervisor && approverRole != rbac.RoleHOD {
		return nil, domain.ErrForbidden
	}
	w, err := uc.worklogs.GetByID(ctx, worklogID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if w.ApprovalStatus != entity.ApprovalPending {
		return nil, domain.ErrConflict
	}

	update := repository.ApprovalUpdate{Status: entity.ApprovalRejected}
	if approve {
		update.Status = entity.ApprovalApproved
	}
	switch approverRole {
	case rbac.RoleSupervisor:
		update.SupervisorApproved = &approve
		w.SupervisorApproved = approve
	case rbac.RoleHOD:
		update.HODApproved = &approve
		w.HODApproved = approve
	}
	if err := uc.worklogs.UpdateApproval(ctx, worklogID, update); err != nil {
		return nil, err
	}
	w.ApprovalStatus = update.Status

	action := "registro de horas rechazado"
	if approve {
		action = "registro de horas aprobado"
	}
	uc.audit.Record(ctx, approverID, entity.AuditActionUpdate, "work_log", worklogID, action)
	resp := toWorkLogResponse(w)
	return &resp, nil
}

// List lista registros dentro del alcance del filtro; el handler fija el
// alcance según el rol (empleado: lo suyo, supervisor: sus supervisados,
// HOD: su departamento).
func (uc *UseCase) List(ctx context.Context, f repository.WorkLogFilter) ([]dto.WorkLogResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	items, err := uc.worklogs.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkLogResponse, 0, len(items))
	for i := range items {
		out = append(out, toWorkLogResponse(&items[i]))
	}
	return out, nil
}

func toWorkLogResponse(w *entity.WorkLog) dto.WorkLogResponse {
	return dto.WorkLogResponse{
		ID:                 w.ID,
		EmployeeName:       w.EmployeeName,
		ProjectName:        w.ProjectName,
		WorkDate:           w.WorkDate.Format("2006-01-02"),
		Hours:              w.Hours.StringFixed(2),
		Notes:              w.Notes,
		SupervisorApproved: w.SupervisorApproved,
		HODApproved:        w.HODApproved,
		ApprovalStatus:     string(w.ApprovalStatus),
	}
}
