package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product entrada del catálogo. El precio unitario aquí es el vigente; los
// pedidos congelan su propia copia por línea.
type Product struct {
	ID          string
	Name        string
	Type        string
	UnitPrice   decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
