package auth

import "testing"

func TestRolePermissions(t *testing.T) {
	a := NewAuthorizer()

	cases := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleSuperAdmin, PermApplyCorrection, true},
		{RoleAdmin, PermTransferStock, true},
		{RoleManager, PermApplyCorrection, false},
		{RoleManager, PermManageOrders, true},
		{RoleStorekeeper, PermReceiveGoods, true},
		{RoleStorekeeper, PermTransferStock, false},
		{RoleStorekeeper, PermManageOrders, false},
		{Role("waiter"), PermViewReports, false},
	}

	for _, tc := range cases {
		if got := a.Can(tc.role, tc.perm); got != tc.want {
			t.Errorf("Can(%s, %s) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestValidRoles(t *testing.T) {
	a := NewAuthorizer()
	for _, role := range []Role{RoleSuperAdmin, RoleAdmin, RoleManager, RoleStorekeeper} {
		if !a.Valid(role) {
			t.Errorf("Valid(%s) = false, want true", role)
		}
	}
	if a.Valid(Role("guest")) {
		t.Error("Valid(guest) = true, want false")
	}
}
