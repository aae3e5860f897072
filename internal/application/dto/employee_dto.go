package dto

// CreateEmployeeRequest alta de empleado con su compensación según rol.
type CreateEmployeeRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	NationalInsurance string `json:"national_insurance"`
	Address           string `json:"address"`
	DateOfBirth       string `json:"date_of_birth"` // YYYY-MM-DD
	StartDate         string `json:"start_date"`    // YYYY-MM-DD
	DepartmentID      string `json:"department_id"`
	Role              string `json:"role"`
	Password          string `json:"password"` // opcional: si viene vacío se aprovisiona la clave por defecto
	FixedSalary       string `json:"fixed_salary,omitempty"`    // HOD, SUPERVISOR
	HourlyRate        string `json:"hourly_rate,omitempty"`     // SALESMAN, GENERAL_EMPLOYEE
	CommissionRate    string `json:"commission_rate,omitempty"` // SALESMAN
	SupervisorID      string `json:"supervisor_id,omitempty"`
}

// UpdateEmployeeRequest edición de empleado. El rol no se puede cambiar.
type UpdateEmployeeRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	NationalInsurance string `json:"national_insurance"`
	Address           string `json:"address"`
	DepartmentID      string `json:"department_id"`
	FixedSalary       string `json:"fixed_salary,omitempty"`
	HourlyRate        string `json:"hourly_rate,omitempty"`
	CommissionRate    string `json:"commission_rate,omitempty"`
	IsActive          *bool  `json:"is_active,omitempty"`
}

// EmployeeResponse fila de listado de empleados.
type EmployeeResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Role           string `json:"role"`
	DepartmentName string `json:"department_name,omitempty"`
	SupervisorName string `json:"supervisor_name,omitempty"`
	SalaryRate     string `json:"salary_rate"`
	IsActive       bool   `json:"is_active"`
}
