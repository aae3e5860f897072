package dto

// DashboardResponse métricas agregadas para la pantalla principal.
type DashboardResponse struct {
	TotalOrders    int64  `json:"total_orders"`
	TotalRevenue   string `json:"total_revenue"`
	TotalCustomers int64  `json:"total_customers"`
	LowStockCount  int64  `json:"low_stock_count"`
}

// SalesmanRankResponse fila del ranking de vendedores.
type SalesmanRankResponse struct {
	PersonID   string `json:"person_id"`
	Name       string `json:"name"`
	OrderCount int64  `json:"order_count"`
	TotalSales string `json:"total_sales"`
}

// SalesmanMetricsResponse métricas del vendedor autenticado.
type SalesmanMetricsResponse struct {
	TotalOrders   int64  `json:"total_orders"`
	TotalSales    string `json:"total_sales"`
	CustomerCount int64  `json:"customer_count"`
}

// AuditLogResponse fila del listado de auditoría.
type AuditLogResponse struct {
	ID         string `json:"id"`
	UserName   string `json:"user_name,omitempty"`
	ActionType string `json:"action_type"`
	TableName  string `json:"table_name"`
	RecordID   string `json:"record_id,omitempty"`
	Details    string `json:"details,omitempty"`
	CreatedAt  string `json:"created_at"`
}
