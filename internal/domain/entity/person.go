package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/novaflow-api/internal/domain/rbac"
)

// Person representa a un empleado del sistema. El rol es inmutable después de
// la creación; la baja es lógica (IsActive=false) para conservar el historial
// referencial de pedidos, worklogs y auditoría.
type Person struct {
	ID                string
	Name              string
	Email             string // único, normalizado en minúsculas
	Phone             string
	NationalInsurance string
	Address           string
	DateOfBirth       *time.Time
	StartDate         *time.Time
	DepartmentID      string
	Role              rbac.Role
	PasswordHash      string // formato passhash, nunca sale del caso de uso de auth
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Compensation registro de compensación según rol: salario fijo para
// HOD/SUPERVISOR, tarifa horaria (+comisión para SALESMAN) para el resto.
// Exactamente un registro por Person activa.
type Compensation struct {
	FixedSalary    decimal.Decimal // HOD, SUPERVISOR
	HourlyRate     decimal.Decimal // SALESMAN, GENERAL_EMPLOYEE
	CommissionRate decimal.Decimal // solo SALESMAN
}

// EmployeeRow proyección de listado con datos denormalizados.
type EmployeeRow struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	Role           rbac.Role
	DepartmentName string
	SupervisorName string
	SalaryRate     decimal.Decimal // fijo u horario según el rol
	IsActive       bool
}
