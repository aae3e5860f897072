package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/novaflow-api/internal/domain/rbac"
)

// Todos los roles pueden ver el dashboard.
func TestHas_TodosLosRolesVenDashboard(t *testing.T) {
	for _, role := range rbac.Roles() {
		assert.True(t, rbac.Has(role, rbac.PermViewDashboard),
			"el rol %s debe tener view_dashboard", role)
	}
}

// Sin comodines: pares (rol, permiso) no otorgados devuelven false.
func TestHas_SinComodines(t *testing.T) {
	cases := []struct {
		role rbac.Role
		perm rbac.Permission
	}{
		{rbac.RoleGeneralEmployee, rbac.PermManageEmployees},
		{rbac.RoleGeneralEmployee, rbac.PermViewOrders},
		{rbac.RoleSalesman, rbac.PermManageEmployees},
		{rbac.RoleSalesman, rbac.PermApproveWorklogs},
		{rbac.RoleSalesman, rbac.PermDeleteOrders},
		{rbac.RoleSupervisor, rbac.PermManageOrders},
		{rbac.RoleSupervisor, rbac.PermManageDepartments},
		{rbac.RoleHOD, rbac.PermManageOrders},
		{rbac.RoleHOD, rbac.PermManageCustomers},
	}
	for _, tc := range cases {
		assert.False(t, rbac.Has(tc.role, tc.perm),
			"(%s, %s) no está otorgado y debe ser false", tc.role, tc.perm)
	}
}

// Solo el HOD puede eliminar pedidos.
func TestHas_EliminarPedidosSoloHOD(t *testing.T) {
	assert.True(t, rbac.Has(rbac.RoleHOD, rbac.PermDeleteOrders))
	for _, role := range []rbac.Role{rbac.RoleSupervisor, rbac.RoleSalesman, rbac.RoleGeneralEmployee} {
		assert.False(t, rbac.Has(role, rbac.PermDeleteOrders))
	}
}

// Rol o permiso desconocido: false, nunca panic.
func TestHas_DesconocidosDevuelvenFalse(t *testing.T) {
	assert.False(t, rbac.Has(rbac.Role("INTERN"), rbac.PermViewDashboard))
	assert.False(t, rbac.Has(rbac.RoleHOD, rbac.Permission("launch_rockets")))
	assert.False(t, rbac.Has(rbac.Role(""), rbac.Permission("")))
}

func TestParseRole(t *testing.T) {
	role, ok := rbac.ParseRole("SALESMAN")
	require.True(t, ok)
	assert.Equal(t, rbac.RoleSalesman, role)

	_, ok = rbac.ParseRole("salesman") // sensible a mayúsculas, como en la DB
	assert.False(t, ok)
	_, ok = rbac.ParseRole("ADMIN")
	assert.False(t, ok)
}

func TestPermissionsFor_CopiaNoVacia(t *testing.T) {
	perms := rbac.PermissionsFor(rbac.RoleGeneralEmployee)
	assert.ElementsMatch(t, []rbac.Permission{
		rbac.PermViewDashboard, rbac.PermViewWorklogs, rbac.PermSubmitWorklogs,
	}, perms)

	assert.Nil(t, rbac.PermissionsFor(rbac.Role("INTERN")))
}
