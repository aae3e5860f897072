package entity

import "time"

// Customer cliente, opcionalmente asignado a un vendedor.
type Customer struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Address      string
	SalesmanID   string
	SalesmanName string // denormalizado
	OrderCount   int64  // denormalizado en listados
	CreatedAt    time.Time
}
