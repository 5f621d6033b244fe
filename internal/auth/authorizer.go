// Package auth maps dashboard roles onto a closed set of permissions. The
// inventory core never checks roles itself; the HTTP layer consults the
// Authorizer before invoking an operation.
package auth

// Role enumerates the dashboard user roles.
type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleAdmin       Role = "admin"
	RoleManager     Role = "manager"
	RoleStorekeeper Role = "storekeeper"
)

// Permission enumerates the guarded actions.
type Permission string

const (
	PermReceiveGoods     Permission = "receive_goods"
	PermManageOrders     Permission = "manage_orders"
	PermTransferStock    Permission = "transfer_stock"
	PermRecordWastage    Permission = "record_wastage"
	PermRunAudit         Permission = "run_audit"
	PermApplyCorrection  Permission = "apply_correction"
	PermManageThresholds Permission = "manage_thresholds"
	PermViewReports      Permission = "view_reports"
)

var rolePermissions = map[Role]map[Permission]bool{
	RoleSuperAdmin: {
		PermReceiveGoods: true, PermManageOrders: true, PermTransferStock: true,
		PermRecordWastage: true, PermRunAudit: true, PermApplyCorrection: true,
		PermManageThresholds: true, PermViewReports: true,
	},
	RoleAdmin: {
		PermReceiveGoods: true, PermManageOrders: true, PermTransferStock: true,
		PermRecordWastage: true, PermRunAudit: true, PermApplyCorrection: true,
		PermManageThresholds: true, PermViewReports: true,
	},
	RoleManager: {
		PermReceiveGoods: true, PermManageOrders: true, PermTransferStock: true,
		PermRecordWastage: true, PermRunAudit: true,
		PermManageThresholds: true, PermViewReports: true,
	},
	RoleStorekeeper: {
		PermReceiveGoods: true, PermRecordWastage: true, PermRunAudit: true,
		PermViewReports: true,
	},
}

// Authorizer answers permission checks for roles.
type Authorizer struct{}

// NewAuthorizer builds the static role mapping.
func NewAuthorizer() *Authorizer { return &Authorizer{} }

// Can reports whether the role holds the permission. Unknown roles hold none.
func (a *Authorizer) Can(role Role, perm Permission) bool {
	perms, ok := rolePermissions[role]
	return ok && perms[perm]
}

// Valid reports whether the role is one of the known roles.
func (a *Authorizer) Valid(role Role) bool {
	_, ok := rolePermissions[role]
	return ok
}
