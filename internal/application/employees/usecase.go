// Package employees gestiona el alta, edición y baja lógica de empleados,
// incluida su compensación por rol y el vínculo con su supervisor.
package employees

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/novaflow-api/internal/application/audit"
	"github.com/jhoicas/novaflow-api/internal/application/auth"
	"github.com/jhoicas/novaflow-api/internal/application/dto"
	"github.com/jhoicas/novaflow-api/internal/domain"
	"github.com/jhoicas/novaflow-api/internal/domain/entity"
	"github.com/jhoicas/novaflow-api/internal/domain/rbac"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
	"github.com/jhoicas/novaflow-api/pkg/logger"
	"github.com/jhoicas/novaflow-api/pkg/passhash"
)

// DefaultPassword clave provisional de las cuentas recién aprovisionadas; el
// empleado debe cambiarla en su primer acceso.
const DefaultPassword = "password123"

// TxRunner transacción sobre person y sus tablas de especialización: persona,
// compensación y vínculo de supervisor se escriben juntos o no se escriben.
type TxRunner interface {
	RunPeople(ctx context.Context, fn func(people repository.PersonRepository) error) error
}

// UseCase gestión de empleados.
type UseCase struct {
	people repository.PersonRepository
	tx     TxRunner
	audit  *audit.Recorder
	log    *logger.Logger
}

// NewUseCase construye el caso de uso de empleados.
func NewUseCase(people repository.PersonRepository, tx TxRunner, rec *audit.Recorder, log *logger.Logger) *UseCase {
	return &UseCase{people: people, tx: tx, audit: rec, log: log}
}

// Create da de alta un empleado con su compensación. El rol queda fijado en
// la creación y no se puede cambiar después.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateEmployeeRequest) (*dto.PersonResponse, error) {
	role, ok := rbac.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	email := auth.NormalizeEmail(in.Email)
	if in.Name == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	comp, err := parseCompensation(role, in.FixedSalary, in.HourlyRate, in.CommissionRate)
	if err != nil {
		return nil, err
	}

	password := in.Password
	if password == "" {
		password = DefaultPassword
	}

	now := time.Now()
	p := &entity.Person{
		ID:                uuid.New().String(),
		Name:              in.Name,
		Email:             email,
		Phone:             in.Phone,
		NationalInsurance: in.NationalInsurance,
		Address:           in.Address,
		DepartmentID:      in.DepartmentID,
		Role:              role,
		PasswordHash:      passhash.Hash(password),
		IsActive:          true,
		CreatedAt:         now,
	}
	if dob, err := parseDate(in.DateOfBirth); err != nil {
		return nil, err
	} else if dob != nil {
		p.DateOfBirth = dob
	}
	if start, err := parseDate(in.StartDate); err != nil {
		return nil, err
	} else if start != nil {
		p.StartDate = start
	}

	err = uc.tx.RunPeople(ctx, func(people repository.PersonRepository) error {
		if err := people.Insert(ctx, p); err != nil {
			return err
		}
		if err := people.InsertCompensation(ctx, p.ID, role, comp); err != nil {
			return err
		}
		if in.SupervisorID != "" {
			return people.LinkSupervisor(ctx, p.ID, in.SupervisorID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("employee_id", p.ID).Str("role", string(role)).Msg("empleado creado")
	uc.audit.Record(ctx, userID, entity.AuditActionCreate, "person", p.ID, "empleado "+p.Name)
	resp := auth.ToPersonResponse(p)
	return &resp, nil
}

// Update edita los datos y la compensación del empleado. El rol no cambia.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdateEmployeeRequest) (*dto.PersonResponse, error) {
	p, err := uc.people.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Email != "" {
		p.Email = auth.NormalizeEmail(in.Email)
	}
	p.Phone = in.Phone
	p.NationalInsurance = in.NationalInsurance
	p.Address = in.Address
	if in.DepartmentID != "" {
		p.DepartmentID = in.DepartmentID
	}
	p.UpdatedAt = time.Now()

	comp, err := parseCompensation(p.Role, in.FixedSalary, in.HourlyRate, in.CommissionRate)
	if err != nil {
		return nil, err
	}

	err = uc.tx.RunPeople(ctx, func(people repository.PersonRepository) error {
		if err := people.Update(ctx, p); err != nil {
			return err
		}
		if err := people.UpdateCompensation(ctx, p.ID, p.Role, comp); err != nil {
			return err
		}
		if in.IsActive != nil {
			p.IsActive = *in.IsActive
			return people.SetActive(ctx, p.ID, *in.IsActive)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, userID, entity.AuditActionUpdate, "person", p.ID, "empleado "+p.Name)
	resp := auth.ToPersonResponse(p)
	return &resp, nil
}

// SetActive baja o reactivación lógica. La baja conserva el historial
// referencial y solo bloquea el login.
func (uc *UseCase) SetActive(ctx context.Context, userID, id string, active bool) error {
	p, err := uc.people.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := uc.people.SetActive(ctx, id, active); err != nil {
		return err
	}
	action := "empleado desactivado"
	if active {
		action = "empleado reactivado"
	}
	uc.audit.Record(ctx, userID, entity.AuditActionUpdate, "person", id, action)
	return nil
}

// Get devuelve un empleado por ID, con su compensación.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.PersonResponse, error) {
	p, err := uc.people.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := auth.ToPersonResponse(p)
	return &resp, nil
}

// List lista empleados con filtros de departamento, supervisor, rol y búsqueda.
func (uc *UseCase) List(ctx context.Context, f repository.EmployeeFilter) ([]dto.EmployeeResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	rows, err := uc.people.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.EmployeeResponse{
			ID:             r.ID,
			Name:           r.Name,
			Email:          r.Email,
			Phone:          r.Phone,
			Role:           string(r.Role),
			DepartmentName: r.DepartmentName,
			SupervisorName: r.SupervisorName,
			SalaryRate:     r.SalaryRate.StringFixed(2),
			IsActive:       r.IsActive,
		})
	}
	return out, nil
}

// ListByRole listado simple para selectores (p. ej. supervisores o HODs).
func (uc *UseCase) ListByRole(ctx context.Context, role rbac.Role) ([]dto.PersonResponse, error) {
	people, err := uc.people.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PersonResponse, 0, len(people))
	for i := range people {
		out = append(out, auth.ToPersonResponse(&people[i]))
	}
	return out, nil
}

// parseCompensation valida la compensación según el rol: salario fijo para
// HOD y SUPERVISOR, tarifa horaria para el resto, comisión solo SALESMAN.
func parseCompensation(role rbac.Role, fixedSalary, hourlyRate, commissionRate string) (entity.Compensation, error) {
	var comp entity.Compensation
	switch role {
	case rbac.RoleHOD, rbac.RoleSupervisor:
		salary, err := parseAmount(fixedSalary)
		if err != nil {
			return comp, err
		}
		comp.FixedSalary = salary
	case rbac.RoleSalesman:
		rate, err := parseAmount(hourlyRate)
		if err != nil {
			return comp, err
		}
		commission, err := parseAmount(commissionRate)
		if err != nil {
			return comp, err
		}
		comp.HourlyRate = rate
		comp.CommissionRate = commission
	case rbac.RoleGeneralEmployee:
		rate, err := parseAmount(hourlyRate)
		if err != nil {
			return comp, err
		}
		comp.HourlyRate = rate
	}
	return comp, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return amount, nil
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &d, nil
}
