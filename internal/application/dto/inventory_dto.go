package dto

// ProductRequest alta/edición de producto de catálogo.
type ProductRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	UnitPrice   string `json:"unit_price"`
	Description string `json:"description"`
}

// ProductResponse producto de catálogo.
type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	UnitPrice   string `json:"unit_price"`
	Description string `json:"description,omitempty"`
}

// StockRequest alta o ajuste de existencia de un producto en una bodega.
type StockRequest struct {
	ProductID    string `json:"product_id"`
	WarehouseID  string `json:"warehouse_id"`
	Qty          int64  `json:"qty"`
	ReorderLevel int64  `json:"reorder_level"`
}

// StockResponse existencia con indicador de stock bajo.
type StockResponse struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name,omitempty"`
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name,omitempty"`
	Qty           int64  `json:"qty"`
	ReorderLevel  int64  `json:"reorder_level"`
	LowStock      bool   `json:"low_stock"`
}
