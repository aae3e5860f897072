package dto

// OrderLineRequest línea de un pedido nuevo o añadida a uno existente.
type OrderLineRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Qty         int64  `json:"qty"`
}

// CreateOrderRequest creación de pedido con sus líneas.
type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id"`
	Lines      []OrderLineRequest `json:"lines"`
}

// SetOrderStatusRequest cambio de estado del pedido.
type SetOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderLineResponse línea con el precio congelado al momento de la venta.
type OrderLineResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	WarehouseID string `json:"warehouse_id"`
	Qty         int64  `json:"qty"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

// OrderResponse pedido con o sin líneas según el endpoint.
type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerID   string              `json:"customer_id"`
	CustomerName string              `json:"customer_name,omitempty"`
	SalesmanID   string              `json:"salesman_id"`
	SalesmanName string              `json:"salesman_name,omitempty"`
	TotalAmount  string              `json:"total_amount"`
	Status       string              `json:"status"`
	OrderDate    string              `json:"order_date"`
	Lines        []OrderLineResponse `json:"lines,omitempty"`
}
