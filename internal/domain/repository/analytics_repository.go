package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// DashboardMetrics métricas agregadas para el dashboard.
type DashboardMetrics struct {
	TotalOrders    int64
	TotalRevenue   decimal.Decimal // solo pedidos COMPLETED
	TotalCustomers int64
	LowStockCount  int64
}

// SalesmanRank fila del ranking de vendedores por ventas completadas.
type SalesmanRank struct {
	PersonID   string
	Name       string
	OrderCount int64
	TotalSales decimal.Decimal
}

// SalesmanMetrics métricas de un vendedor concreto.
type SalesmanMetrics struct {
	TotalOrders   int64
	TotalSales    decimal.Decimal
	CustomerCount int64
}

// AnalyticsRepository consultas agregadas de solo lectura para reportes.
type AnalyticsRepository interface {
	Dashboard(ctx context.Context) (*DashboardMetrics, error)
	TopSalesmen(ctx context.Context, limit int) ([]SalesmanRank, error)
	ForSalesman(ctx context.Context, salesmanID string) (*SalesmanMetrics, error)
}
