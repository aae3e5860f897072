package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		ok   bool
	}{
		{"pending a processing", OrderPending, OrderProcessing, true},
		{"pending salta a completed", OrderPending, OrderCompleted, true},
		{"pending a cancelled", OrderPending, OrderCancelled, true},
		{"processing a completed", OrderProcessing, OrderCompleted, true},
		{"processing a cancelled", OrderProcessing, OrderCancelled, true},
		{"processing no retrocede", OrderProcessing, OrderPending, false},
		{"completed es final", OrderCompleted, OrderProcessing, false},
		{"completed no se cancela", OrderCompleted, OrderCancelled, false},
		{"cancelled es terminal", OrderCancelled, OrderPending, false},
		{"cancelled no se completa", OrderCancelled, OrderCompleted, false},
		{"sin auto-transición", OrderProcessing, OrderProcessing, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestParseOrderStatus_RechazaDesconocidos(t *testing.T) {
	_, ok := ParseOrderStatus("SHIPPED")
	assert.False(t, ok)

	s, ok := ParseOrderStatus("PROCESSING")
	assert.True(t, ok)
	assert.Equal(t, OrderProcessing, s)
}

func TestOrderTotal_SumaDeSubtotales(t *testing.T) {
	lines := []OrderLine{
		{Qty: 3, UnitPrice: decimal.RequireFromString("25.00")},
		{Qty: 2, UnitPrice: decimal.RequireFromString("4.50")},
	}
	assert.Equal(t, "84.00", OrderTotal(lines).StringFixed(2))
	assert.Equal(t, "0.00", OrderTotal(nil).StringFixed(2))
}
