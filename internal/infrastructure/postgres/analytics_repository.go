package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/novaflow-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// Dashboard métricas globales. Los ingresos cuentan solo pedidos COMPLETED.
func (r *AnalyticsRepo) Dashboard(ctx context.Context) (*repository.DashboardMetrics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM orders_m),
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders_m WHERE status = 'COMPLETED'),
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM warehouse_products WHERE qty <= reorder_level)`
	var m repository.DashboardMetrics
	err := r.q.QueryRow(ctx, query).Scan(
		&m.TotalOrders, &m.TotalRevenue, &m.TotalCustomers, &m.LowStockCount)
	if err != nil {
		return nil, fmt.Errorf("dashboard metrics: %w", err)
	}
	return &m, nil
}

// TopSalesmen ranking de vendedores por ventas completadas.
func (r *AnalyticsRepo) TopSalesmen(ctx context.Context, limit int) ([]repository.SalesmanRank, error) {
	query := `
		SELECT p.id, p.name, COUNT(o.id), COALESCE(SUM(o.total_amount), 0)
		FROM person p
		LEFT JOIN orders_m o ON o.salesman_id = p.id AND o.status = 'COMPLETED'
		WHERE p.role = 'SALESMAN'
		GROUP BY p.id, p.name
		ORDER BY COALESCE(SUM(o.total_amount), 0) DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top salesmen: %w", err)
	}
	defer rows.Close()

	var list []repository.SalesmanRank
	for rows.Next() {
		var s repository.SalesmanRank
		if err := rows.Scan(&s.PersonID, &s.Name, &s.OrderCount, &s.TotalSales); err != nil {
			return nil, fmt.Errorf("scan salesman rank: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ForSalesman métricas de un vendedor concreto.
func (r *AnalyticsRepo) ForSalesman(ctx context.Context, salesmanID string) (*repository.SalesmanMetrics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM orders_m WHERE salesman_id = $1),
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders_m WHERE salesman_id = $1 AND status = 'COMPLETED'),
			(SELECT COUNT(*) FROM customers WHERE salesman_id = $1)`
	var m repository.SalesmanMetrics
	err := r.q.QueryRow(ctx, query, salesmanID).Scan(
		&m.TotalOrders, &m.TotalSales, &m.CustomerCount)
	if err != nil {
		return nil, fmt.Errorf("salesman metrics: %w", err)
	}
	return &m, nil
}
