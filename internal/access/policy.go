package access

import (
	"evently/internal/auth"
	apperrors "evently/internal/errors"
	"evently/internal/model"
)

// Policy evaluates role-based and ownership-based permission rules.
//
// Role checks are exact-match: a superAdmin does NOT satisfy a check
// requiring admin. AllowHierarchy switches this to the conventional
// superAdmin > admin > user ordering for deployments that want it.
type Policy struct {
	AllowHierarchy bool
}

var roleRank = map[string]int{
	model.RoleUser:       1,
	model.RoleAdmin:      2,
	model.RoleSuperAdmin: 3,
}

// RequireRole fails with ErrForbidden unless role satisfies required.
func (p Policy) RequireRole(role, required string) error {
	if role == required {
		return nil
	}
	if p.AllowHierarchy && roleRank[role] >= roleRank[required] && roleRank[required] > 0 {
		return nil
	}
	return apperrors.ErrForbidden
}

// Elevated reports whether role is admin or superAdmin.
func (p Policy) Elevated(role string) bool {
	return role == model.RoleAdmin || role == model.RoleSuperAdmin
}

// CanModify reports whether the caller may update or delete a resource owned
// by ownerID: the owner may, and so may any elevated role.
func (p Policy) CanModify(caller auth.Identity, ownerID string) bool {
	return caller.SubjectID == ownerID || p.Elevated(caller.Role)
}

// CanView reports whether the caller may read ev: public events are visible
// to everyone, private ones only to their owner and elevated roles.
func (p Policy) CanView(ev *model.Event, caller auth.Identity) bool {
	return ev.IsPublic || ev.OwnerID == caller.SubjectID || p.Elevated(caller.Role)
}
