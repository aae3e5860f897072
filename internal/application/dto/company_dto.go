package dto

// DepartmentRequest alta/edición de departamento.
type DepartmentRequest struct {
	Name  string `json:"name"`
	HODID string `json:"hod_id"`
}

// DepartmentResponse fila de listado de departamentos.
type DepartmentResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	HODID         string `json:"hod_id,omitempty"`
	HODName       string `json:"hod_name,omitempty"`
	EmployeeCount int64  `json:"employee_count"`
}

// WarehouseRequest alta/edición de bodega.
type WarehouseRequest struct {
	Name         string `json:"name"`
	LocationID   string `json:"location_id"`
	SupervisorID string `json:"supervisor_id"`
	Capacity     int64  `json:"capacity"`
}

// WarehouseResponse fila de listado de bodegas.
type WarehouseResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	LocationName   string `json:"location_name,omitempty"`
	SupervisorName string `json:"supervisor_name,omitempty"`
	Capacity       int64  `json:"capacity"`
	ProductCount   int64  `json:"product_count"`
}

// CustomerRequest alta/edición de cliente.
type CustomerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	SalesmanID string `json:"salesman_id"`
}

// CustomerResponse fila de listado de clientes.
type CustomerResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	SalesmanName string `json:"salesman_name,omitempty"`
	OrderCount   int64  `json:"order_count"`
}

// ProjectRequest alta/edición de proyecto.
type ProjectRequest struct {
	Name         string `json:"name"`
	DepartmentID string `json:"department_id"`
	LocationID   string `json:"location_id"`
	Status       string `json:"status"`
	StartDate    string `json:"start_date"` // YYYY-MM-DD
	EndDate      string `json:"end_date"`
}

// ProjectResponse fila de listado de proyectos.
type ProjectResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DepartmentName string `json:"department_name,omitempty"`
	LocationName   string `json:"location_name,omitempty"`
	Status         string `json:"status"`
	StartDate      string `json:"start_date,omitempty"`
	EndDate        string `json:"end_date,omitempty"`
}
