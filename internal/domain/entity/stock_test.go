package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarehouseStock_LowStock(t *testing.T) {
	assert.False(t, WarehouseStock{Qty: 10, ReorderLevel: 3}.LowStock())
	assert.True(t, WarehouseStock{Qty: 3, ReorderLevel: 3}.LowStock(), "en el umbral ya cuenta como bajo")
	assert.True(t, WarehouseStock{Qty: 0, ReorderLevel: 3}.LowStock())
}
