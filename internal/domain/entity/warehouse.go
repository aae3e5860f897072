package entity

import "time"

// Warehouse bodega física. La capacidad es consultiva: el ledger no la
// impone al restaurar stock.
type Warehouse struct {
	ID             string
	Name           string
	LocationID     string
	SupervisorID   string
	Capacity       int64
	LocationName   string // denormalizado
	SupervisorName string
	ProductCount   int64 // denormalizado en listados
	CreatedAt      time.Time
}
