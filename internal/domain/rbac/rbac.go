// Package rbac define los roles del sistema y la tabla estática de permisos.
// Es la única fuente de verdad sobre qué puede hacer cada rol: todo endpoint
// mutante la consulta vía middleware antes de ejecutar, no solo al pintar UI.
package rbac

// Role tipo cerrado: solo los cuatro valores declarados son válidos.
type Role string

const (
	RoleHOD             Role = "HOD"
	RoleSupervisor      Role = "SUPERVISOR"
	RoleSalesman        Role = "SALESMAN"
	RoleGeneralEmployee Role = "GENERAL_EMPLOYEE"
)

// ParseRole valida un rol recibido como string (DB, JWT, request).
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleHOD, RoleSupervisor, RoleSalesman, RoleGeneralEmployee:
		return Role(s), true
	}
	return "", false
}

// DisplayName nombre legible del rol.
func (r Role) DisplayName() string {
	switch r {
	case RoleHOD:
		return "Head of Department"
	case RoleSupervisor:
		return "Supervisor"
	case RoleSalesman:
		return "Salesman"
	case RoleGeneralEmployee:
		return "General Employee"
	}
	return string(r)
}

// Permission token de permiso.
type Permission string

const (
	PermViewDashboard     Permission = "view_dashboard"
	PermViewEmployees     Permission = "view_employees"
	PermManageEmployees   Permission = "manage_employees"
	PermViewDepartments   Permission = "view_departments"
	PermManageDepartments Permission = "manage_departments"
	PermViewProjects      Permission = "view_projects"
	PermManageProjects    Permission = "manage_projects"
	PermViewWarehouses    Permission = "view_warehouses"
	PermManageWarehouses  Permission = "manage_warehouses"
	PermViewProducts      Permission = "view_products"
	PermManageProducts    Permission = "manage_products"
	PermViewReports       Permission = "view_reports"
	PermViewWorklogs      Permission = "view_worklogs"
	PermApproveWorklogs   Permission = "approve_worklogs"
	PermSubmitWorklogs    Permission = "submit_worklogs"
	PermViewCustomers     Permission = "view_customers"
	PermManageCustomers   Permission = "manage_customers"
	PermViewOrders        Permission = "view_orders"
	PermManageOrders      Permission = "manage_orders"
	PermDeleteOrders      Permission = "delete_orders"
)

// permissions mapea cada rol a su conjunto de permisos. Sin comodines: lo que
// no está aquí, está negado. La eliminación de pedidos es exclusiva del HOD.
var permissions = map[Role]map[Permission]struct{}{
	RoleHOD: toSet(
		PermViewDashboard,
		PermViewEmployees, PermManageEmployees,
		PermViewDepartments, PermManageDepartments,
		PermViewProjects, PermManageProjects,
		PermViewWarehouses, PermManageWarehouses,
		PermViewProducts,
		PermViewReports,
		PermViewWorklogs, PermApproveWorklogs,
		PermSubmitWorklogs,
		PermViewOrders, PermDeleteOrders,
	),
	RoleSupervisor: toSet(
		PermViewDashboard,
		PermViewEmployees,
		PermViewWarehouses,
		PermViewProducts, PermManageProducts,
		PermViewReports,
		PermViewWorklogs, PermApproveWorklogs,
		PermSubmitWorklogs,
	),
	RoleSalesman: toSet(
		PermViewDashboard,
		PermViewCustomers, PermManageCustomers,
		PermViewOrders, PermManageOrders,
		PermViewWorklogs,
		PermSubmitWorklogs,
	),
	RoleGeneralEmployee: toSet(
		PermViewDashboard,
		PermViewWorklogs,
		PermSubmitWorklogs,
	),
}

func toSet(perms ...Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Has verifica pertenencia pura. Rol o permiso desconocido devuelve false,
// nunca panic: un dato corrupto en la DB no debe tumbar la autorización.
func Has(role Role, perm Permission) bool {
	set, ok := permissions[role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}

// PermissionsFor devuelve una copia de los permisos del rol (para respuestas de API).
func PermissionsFor(role Role) []Permission {
	set, ok := permissions[role]
	if !ok {
		return nil
	}
	out := make([]Permission, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	return out
}

// Roles lista los roles válidos.
func Roles() []Role {
	return []Role{RoleHOD, RoleSupervisor, RoleSalesman, RoleGeneralEmployee}
}
