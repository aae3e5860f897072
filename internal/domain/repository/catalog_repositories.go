package repository

import (
	"context"

	"github.com/jhoicas/novaflow-api/internal/domain/entity"
)

// DepartmentFilter filtros opcionales para el listado de departamentos.
type DepartmentFilter struct {
	Search string
	Limit  int
	Offset int
}

// DepartmentRepository acceso a departments y locations.
type DepartmentRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Department, error)
	List(ctx context.Context, f DepartmentFilter) ([]entity.Department, error)
	Insert(ctx context.Context, d *entity.Department) error
	Update(ctx context.Context, d *entity.Department) error
	Delete(ctx context.Context, id string) error
	ListLocations(ctx context.Context) ([]entity.Location, error)
}

// WarehouseFilter filtros opcionales para el listado de bodegas.
type WarehouseFilter struct {
	SupervisorID string
	Search       string // nombre, ubicación o supervisor
	Limit        int
	Offset       int
}

// WarehouseRepository acceso a warehouses.
type WarehouseRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	List(ctx context.Context, f WarehouseFilter) ([]entity.Warehouse, error)
	Insert(ctx context.Context, w *entity.Warehouse) error
	Update(ctx context.Context, w *entity.Warehouse) error
	Delete(ctx context.Context, id string) error
}

// ProductRepository acceso al catálogo products.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, search string, limit, offset int) ([]entity.Product, error)
	Insert(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
}

// CustomerFilter filtros opcionales para el listado de clientes.
type CustomerFilter struct {
	SalesmanID string
	Search     string // nombre o email
	Limit      int
	Offset     int
}

// CustomerRepository acceso a customers.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, f CustomerFilter) ([]entity.Customer, error)
	Insert(ctx context.Context, c *entity.Customer) error
	Update(ctx context.Context, c *entity.Customer) error
	Delete(ctx context.Context, id string) error
}
