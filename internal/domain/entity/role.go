// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleUser indicates a regular shopper.
	RoleUser Role = "USER"
	// RoleAdmin indicates a back-office operator.
	RoleAdmin Role = "ADMIN"
	// RoleSuperAdmin indicates an operator that can also manage other operators.
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// AdminRoles lists the roles allowed into the back office.
var AdminRoles = Roles{RoleAdmin, RoleSuperAdmin}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the role grants back-office access.
func (r Role) IsAdmin() bool {
	return AdminRoles.Contains(r)
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}
