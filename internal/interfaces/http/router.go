package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/novaflow-api/internal/application/audit"
	"github.com/jhoicas/novaflow-api/internal/application/auth"
	"github.com/jhoicas/novaflow-api/internal/application/company"
	"github.com/jhoicas/novaflow-api/internal/application/dashboard"
	"github.com/jhoicas/novaflow-api/internal/application/employees"
	"github.com/jhoicas/novaflow-api/internal/application/inventory"
	"github.com/jhoicas/novaflow-api/internal/application/orders"
	"github.com/jhoicas/novaflow-api/internal/application/worklogs"
	"github.com/jhoicas/novaflow-api/internal/domain/rbac"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	EmployeeUC  *employees.UseCase
	CompanyUC   *company.UseCase
	InventoryUC *inventory.UseCase
	OrderUC     *orders.UseCase
	WorkLogUC   *worklogs.UseCase
	DashboardUC *dashboard.UseCase
	Audit       *audit.Recorder
	Sessions    *auth.SessionManager
	JWTSecret   string
}

// Router registra las rutas de la API. Cada grupo mutante pasa por
// RequirePermission con el permiso de la tabla de rbac; el alcance por rol
// (vendedor ve lo suyo, supervisor sus bodegas) lo aplica cada handler.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/password", authHandler.UpdatePassword)

	// Rutas protegidas (requieren Bearer Token con sesión viva)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Sessions))
	protected.Post("/auth/logout", authHandler.Logout)

	// Employees
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	emp := protected.Group("/employees")
	emp.Get("/", RequirePermission(rbac.PermViewEmployees), employeeHandler.List)
	emp.Get("/role/:role", RequirePermission(rbac.PermViewEmployees), employeeHandler.ListByRole)
	emp.Get("/:id", RequirePermission(rbac.PermViewEmployees), employeeHandler.GetByID)
	emp.Post("/", RequirePermission(rbac.PermManageEmployees), employeeHandler.Create)
	emp.Put("/:id", RequirePermission(rbac.PermManageEmployees), employeeHandler.Update)
	emp.Post("/:id/deactivate", RequirePermission(rbac.PermManageEmployees), employeeHandler.Deactivate)
	emp.Post("/:id/activate", RequirePermission(rbac.PermManageEmployees), employeeHandler.Activate)

	// Departments
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	departments := protected.Group("/departments")
	departments.Get("/", RequirePermission(rbac.PermViewDepartments), companyHandler.ListDepartments)
	departments.Post("/", RequirePermission(rbac.PermManageDepartments), companyHandler.CreateDepartment)
	departments.Put("/:id", RequirePermission(rbac.PermManageDepartments), companyHandler.UpdateDepartment)
	departments.Delete("/:id", RequirePermission(rbac.PermManageDepartments), companyHandler.DeleteDepartment)
	protected.Get("/locations", companyHandler.ListLocations)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouses.Get("/", RequirePermission(rbac.PermViewWarehouses), companyHandler.ListWarehouses)
	warehouses.Post("/", RequirePermission(rbac.PermManageWarehouses), companyHandler.CreateWarehouse)
	warehouses.Put("/:id", RequirePermission(rbac.PermManageWarehouses), companyHandler.UpdateWarehouse)
	warehouses.Delete("/:id", RequirePermission(rbac.PermManageWarehouses), companyHandler.DeleteWarehouse)

	// Products y stock
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	products := protected.Group("/products")
	products.Get("/", RequirePermission(rbac.PermViewProducts), inventoryHandler.ListProducts)
	products.Get("/:id", RequirePermission(rbac.PermViewProducts), inventoryHandler.GetProduct)
	products.Post("/", RequirePermission(rbac.PermManageProducts), inventoryHandler.CreateProduct)
	products.Put("/:id", RequirePermission(rbac.PermManageProducts), inventoryHandler.UpdateProduct)

	stock := protected.Group("/stock")
	stock.Get("/", RequirePermission(rbac.PermViewProducts), inventoryHandler.ListStock)
	stock.Put("/", RequirePermission(rbac.PermManageProducts), inventoryHandler.UpsertStock)
	stock.Delete("/:warehouseId/:productId", RequirePermission(rbac.PermManageProducts), inventoryHandler.RemoveStock)

	// Customers
	customers := protected.Group("/customers")
	customers.Get("/", RequirePermission(rbac.PermViewCustomers), companyHandler.ListCustomers)
	customers.Post("/", RequirePermission(rbac.PermManageCustomers), companyHandler.CreateCustomer)
	customers.Put("/:id", RequirePermission(rbac.PermManageCustomers), companyHandler.UpdateCustomer)
	customers.Delete("/:id", RequirePermission(rbac.PermManageCustomers), companyHandler.DeleteCustomer)

	// Orders. La eliminación exige delete_orders, que solo tiene el HOD.
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Get("/", RequirePermission(rbac.PermViewOrders), orderHandler.List)
	ordersGroup.Get("/:id", RequirePermission(rbac.PermViewOrders), orderHandler.GetByID)
	ordersGroup.Post("/", RequirePermission(rbac.PermManageOrders), orderHandler.Create)
	ordersGroup.Post("/:id/lines", RequirePermission(rbac.PermManageOrders), orderHandler.AddLine)
	ordersGroup.Delete("/:id/lines/:lineId", RequirePermission(rbac.PermManageOrders), orderHandler.RemoveLine)
	ordersGroup.Put("/:id/status", RequirePermission(rbac.PermManageOrders), orderHandler.SetStatus)
	ordersGroup.Delete("/:id", RequirePermission(rbac.PermDeleteOrders), orderHandler.Delete)

	// Projects
	projects := protected.Group("/projects")
	projects.Get("/", RequirePermission(rbac.PermViewProjects), companyHandler.ListProjects)
	projects.Post("/", RequirePermission(rbac.PermManageProjects), companyHandler.CreateProject)
	projects.Put("/:id", RequirePermission(rbac.PermManageProjects), companyHandler.UpdateProject)
	projects.Delete("/:id", RequirePermission(rbac.PermManageProjects), companyHandler.DeleteProject)
	projects.Post("/:id/members/:employeeId", RequirePermission(rbac.PermManageProjects), companyHandler.AssignToProject)
	projects.Delete("/:id/members/:employeeId", RequirePermission(rbac.PermManageProjects), companyHandler.UnassignFromProject)

	// Worklogs
	worklogHandler := NewWorkLogHandler(deps.WorkLogUC)
	worklogsGroup := protected.Group("/worklogs")
	worklogsGroup.Get("/", RequirePermission(rbac.PermViewWorklogs), worklogHandler.List)
	worklogsGroup.Post("/", RequirePermission(rbac.PermSubmitWorklogs), worklogHandler.Submit)
	worklogsGroup.Put("/:id/approval", RequirePermission(rbac.PermApproveWorklogs), worklogHandler.Approve)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Audit)
	dash := protected.Group("/dashboard")
	dash.Get("/metrics", RequirePermission(rbac.PermViewDashboard), dashboardHandler.Metrics)
	dash.Get("/my-sales", RequirePermission(rbac.PermViewDashboard), dashboardHandler.MySales)

	reports := protected.Group("/reports")
	reports.Get("/top-salesmen", RequirePermission(rbac.PermViewReports), dashboardHandler.TopSalesmen)
	reports.Get("/audit", RequirePermission(rbac.PermViewReports), dashboardHandler.AuditLog)
}
