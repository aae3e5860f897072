package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/novaflow-api/internal/domain"
	"github.com/jhoicas/novaflow-api/internal/domain/entity"
	"github.com/jhoicas/novaflow-api/internal/domain/rbac"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
)

var _ repository.PersonRepository = (*PersonRepo)(nil)

// PersonRepo implementación de PersonRepository (usable con pool o tx).
// La compensación vive en la tabla de especialización del rol: hod y
// supervisor llevan salario fijo, salesman y general_employee tarifa horaria.
type PersonRepo struct {
	q Querier
}

// NewPersonRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPersonRepository(q Querier) *PersonRepo {
	return &PersonRepo{q: q}
}

const personColumns = `
	id, name, email, phone, national_insurance, address, date_of_birth,
	start_date, COALESCE(department_id, ''), role, password, is_active, created_at, updated_at`

func scanPerson(row pgx.Row) (*entity.Person, error) {
	var p entity.Person
	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.Phone, &p.NationalInsurance, &p.Address,
		&p.DateOfBirth, &p.StartDate, &p.DepartmentID, &p.Role, &p.PasswordHash,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene una persona por ID.
func (r *PersonRepo) GetByID(ctx context.Context, id string) (*entity.Person, error) {
	p, err := scanPerson(r.q.QueryRow(ctx,
		`SELECT `+personColumns+` FROM person WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get person: %w", err)
	}
	return p, nil
}

// GetByEmail obtiene una persona por email normalizado. Devuelve nil sin
// error si no existe.
func (r *PersonRepo) GetByEmail(ctx context.Context, email string) (*entity.Person, error) {
	p, err := scanPerson(r.q.QueryRow(ctx,
		`SELECT `+personColumns+` FROM person WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get person by email: %w", err)
	}
	return p, nil
}

// List lista empleados con departamento, supervisor y compensación
// denormalizados según los filtros.
func (r *PersonRepo) List(ctx context.Context, f repository.EmployeeFilter) ([]entity.EmployeeRow, error) {
	var w where
	w.eq("p.department_id", f.DepartmentID)
	w.eq("p.role", string(f.Role))
	w.eq("es.supervisor_id", f.SupervisorID)
	w.boolEq("p.is_active", f.IsActive)
	w.search(f.Search, "p.name", "p.email")

	query := `
		SELECT p.id, p.name, p.email, p.phone, p.role,
		       COALESCE(d.name, ''), COALESCE(sup.name, ''),
		       COALESCE(h.fixed_salary, sv.fixed_salary, sm.hourly_rate, ge.hourly_rate, 0),
		       p.is_active
		FROM person p
		LEFT JOIN departments d ON d.id = p.department_id
		LEFT JOIN emp_supervisor es ON es.employee_id = p.id
		LEFT JOIN person sup ON sup.id = es.supervisor_id
		LEFT JOIN hod h ON h.person_id = p.id
		LEFT JOIN supervisor sv ON sv.person_id = p.id
		LEFT JOIN salesman sm ON sm.person_id = p.id
		LEFT JOIN general_employee ge ON ge.person_id = p.id` +
		w.clause() + ` ORDER BY p.name` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var list []entity.EmployeeRow
	for rows.Next() {
		var e entity.EmployeeRow
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Role,
			&e.DepartmentName, &e.SupervisorName, &e.SalaryRate, &e.IsActive); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// ListByRole listado simple de personas activas con el rol dado.
func (r *PersonRepo) ListByRole(ctx context.Context, role rbac.Role) ([]entity.Person, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+personColumns+` FROM person WHERE role = $1 AND is_active ORDER BY name`,
		string(role))
	if err != nil {
		return nil, fmt.Errorf("list by role: %w", err)
	}
	defer rows.Close()

	var list []entity.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

// Insert persiste una persona nueva.
func (r *PersonRepo) Insert(ctx context.Context, p *entity.Person) error {
	query := `
		INSERT INTO person (id, name, email, phone, national_insurance, address,
			date_of_birth, start_date, department_id, role, password, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Email, p.Phone, p.NationalInsurance, p.Address,
		p.DateOfBirth, p.StartDate, nullIfEmpty(p.DepartmentID), string(p.Role),
		p.PasswordHash, p.IsActive, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

// Update actualiza los datos editables. El rol y la credencial no se tocan
// aquí: la credencial pasa por UpdatePassword.
func (r *PersonRepo) Update(ctx context.Context, p *entity.Person) error {
	query := `
		UPDATE person SET name = $2, email = $3, phone = $4, national_insurance = $5,
			address = $6, department_id = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Email, p.Phone, p.NationalInsurance, p.Address,
		nullIfEmpty(p.DepartmentID), p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update person: %w", err)
	}
	return nil
}

// SetActive baja o reactivación lógica.
func (r *PersonRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.q.Exec(ctx,
		`UPDATE person SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}
	return nil
}

// UpdatePassword escribe la credencial ya hasheada. Devuelve filas afectadas
// (0 = email inexistente).
func (r *PersonRepo) UpdatePassword(ctx context.Context, email, passwordHash string) (int64, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE person SET password = $2, updated_at = now() WHERE email = $1`,
		email, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("update password: %w", err)
	}
	return tag.RowsAffected(), nil
}

// compensationTable devuelve la tabla de especialización y sus columnas de
// compensación para el rol.
func compensationTable(role rbac.Role) (table string, cols []string, ok bool) {
	switch role {
	case rbac.RoleHOD:
		return "hod", []string{"fixed_salary"}, true
	case rbac.RoleSupervisor:
		return "supervisor", []string{"fixed_salary"}, true
	case rbac.RoleSalesman:
		return "salesman", []string{"hourly_rate", "commission_rate"}, true
	case rbac.RoleGeneralEmployee:
		return "general_employee", []string{"hourly_rate"}, true
	}
	return "", nil, false
}

func compensationArgs(role rbac.Role, comp entity.Compensation) []any {
	switch role {
	case rbac.RoleHOD, rbac.RoleSupervisor:
		return []any{comp.FixedSalary}
	case rbac.RoleSalesman:
		return []any{comp.HourlyRate, comp.CommissionRate}
	default:
		return []any{comp.HourlyRate}
	}
}

// InsertCompensation crea el registro de especialización del rol.
func (r *PersonRepo) InsertCompensation(ctx context.Context, personID string, role rbac.Role, comp entity.Compensation) error {
	table, cols, ok := compensationTable(role)
	if !ok {
		return domain.ErrInvalidInput
	}
	placeholders := "$2"
	if len(cols) == 2 {
		placeholders = "$2, $3"
	}
	query := fmt.Sprintf(`INSERT INTO %s (person_id, %s) VALUES ($1, %s)`,
		table, joinCols(cols), placeholders)
	args := append([]any{personID}, compensationArgs(role, comp)...)
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert compensation: %w", err)
	}
	return nil
}

// UpdateCompensation actualiza el registro de especialización del rol.
func (r *PersonRepo) UpdateCompensation(ctx context.Context, personID string, role rbac.Role, comp entity.Compensation) error {
	table, cols, ok := compensationTable(role)
	if !ok {
		return domain.ErrInvalidInput
	}
	set := cols[0] + " = $2"
	if len(cols) == 2 {
		set += ", " + cols[1] + " = $3"
	}
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE person_id = $1`, table, set)
	args := append([]any{personID}, compensationArgs(role, comp)...)
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update compensation: %w", err)
	}
	return nil
}

// GetCompensation lee el registro de especialización del rol.
func (r *PersonRepo) GetCompensation(ctx context.Context, personID string, role rbac.Role) (*entity.Compensation, error) {
	table, cols, ok := compensationTable(role)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE person_id = $1`, joinCols(cols), table)

	var comp entity.Compensation
	var err error
	switch role {
	case rbac.RoleHOD, rbac.RoleSupervisor:
		err = r.q.QueryRow(ctx, query, personID).Scan(&comp.FixedSalary)
	case rbac.RoleSalesman:
		err = r.q.QueryRow(ctx, query, personID).Scan(&comp.HourlyRate, &comp.CommissionRate)
	default:
		err = r.q.QueryRow(ctx, query, personID).Scan(&comp.HourlyRate)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compensation: %w", err)
	}
	return &comp, nil
}

// LinkSupervisor vincula un empleado con su supervisor (reemplaza el vínculo
// anterior si existía).
func (r *PersonRepo) LinkSupervisor(ctx context.Context, employeeID, supervisorID string) error {
	query := `
		INSERT INTO emp_supervisor (employee_id, supervisor_id)
		VALUES ($1, $2)
		ON CONFLICT (employee_id) DO UPDATE SET supervisor_id = EXCLUDED.supervisor_id`
	if _, err := r.q.Exec(ctx, query, employeeID, supervisorID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("link supervisor: %w", err)
	}
	return nil
}

func joinCols(cols []string) string {
	if len(cols) == 1 {
		return cols[0]
	}
	return cols[0] + ", " + cols[1]
}

// nullIfEmpty convierte "" en NULL para columnas FK opcionales.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
