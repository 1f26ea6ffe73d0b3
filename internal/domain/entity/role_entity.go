package entity

// Role is the authorization role carried by a user and its tokens.
type Role string

const (
	RoleDefault Role = "default"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// Roles lists every known role, in declaration order.
var Roles = []Role{RoleDefault, RoleAdmin, RoleManager}

// ParseRole normalizes s; empty means RoleDefault. ok is false for unknown roles.
func ParseRole(s string) (Role, bool) {
	if s == "" {
		return RoleDefault, true
	}
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return Role(s), false
}

// RoleSet is the set of roles allowed through a gate.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Allow reports whether current is a member of required.
func Allow(current Role, required RoleSet) bool {
	_, ok := required[current]
	return ok
}
