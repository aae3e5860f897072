package entity

import "time"

// WarehouseStock existencia de un producto en una bodega (producto × bodega).
// Qty nunca baja de cero; se muta exclusivamente a través del ledger de
// inventario para preservar el pareo deducción/restauración.
type WarehouseStock struct {
	WarehouseID   string
	ProductID     string
	Qty           int64
	ReorderLevel  int64
	WarehouseName string // denormalizado en listados
	ProductName   string
	UpdatedAt     time.Time
}

// LowStock indica si la existencia está en o bajo el umbral de reposición.
func (s WarehouseStock) LowStock() bool {
	return s.Qty <= s.ReorderLevel
}
