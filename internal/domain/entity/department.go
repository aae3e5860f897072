package entity

import "time"

// Department departamento de la compañía. El nombre es único.
type Department struct {
	ID            string
	Name          string
	HODID         string // jefe de departamento
	HODName       string // denormalizado
	EmployeeCount int64  // denormalizado en listados
	CreatedAt     time.Time
}

// Location ubicación física usada por bodegas y proyectos.
type Location struct {
	ID   string
	Name string
}
