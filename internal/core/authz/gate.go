// Package authz is the single source of truth for role-based authorization.
// Every service consults Allowed/Authorize; no call site carries its own role
// check.
package authz

import "github.com/myne7x/store-api/internal/core/domain"

// Operation names a gated capability.
type Operation string

const (
	OpRequestAccess        Operation = "request_access"
	OpReadOwnRequests      Operation = "read_own_requests"
	OpListAllRequests      Operation = "list_all_requests"
	OpDecideRequest        Operation = "decide_request"
	OpCreateProduct        Operation = "create_product"
	OpManageProduct        Operation = "manage_product"
	OpAssignTask           Operation = "assign_task"
	OpReadOwnTasks         Operation = "read_own_tasks"
	OpReadOwnNotifications Operation = "read_own_notifications"
	OpChangeRole           Operation = "change_role"
)

// grants maps each role to the operations it may perform. Higher roles are
// built from the lower role's grant set, so the hierarchy stays in one place.
var grants = func() map[domain.Role]map[Operation]struct{} {
	user := set(
		OpRequestAccess,
		OpReadOwnRequests,
		OpReadOwnTasks,
		OpReadOwnNotifications,
	)
	admin := union(user, set(
		OpListAllRequests,
		OpDecideRequest,
		OpCreateProduct,
		OpManageProduct,
		OpAssignTask,
	))
	superAdmin := union(admin, set(OpChangeRole))

	return map[domain.Role]map[Operation]struct{}{
		domain.RoleUser:       user,
		domain.RoleAdmin:      admin,
		domain.RoleSuperAdmin: superAdmin,
	}
}()

// Allowed reports whether role may perform op. Unknown or empty roles are
// denied everything: an identity with no resolvable profile is treated as
// unauthenticated.
func Allowed(role domain.Role, op Operation) bool {
	ops, ok := grants[role]
	if !ok {
		return false
	}
	_, ok = ops[op]
	return ok
}

// Authorize returns domain.ErrUnauthorized when role may not perform op.
func Authorize(role domain.Role, op Operation) error {
	if !Allowed(role, op) {
		return domain.ErrUnauthorized
	}
	return nil
}

func set(ops ...Operation) map[Operation]struct{} {
	m := make(map[Operation]struct{}, len(ops))
	for _, op := range ops {
		m[op] = struct{}{}
	}
	return m
}

func union(a, b map[Operation]struct{}) map[Operation]struct{} {
	m := make(map[Operation]struct{}, len(a)+len(b))
	for op := range a {
		m[op] = struct{}{}
	}
	for op := range b {
		m[op] = struct{}{}
	}
	return m
}
