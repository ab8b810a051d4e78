// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a directory user can have in the system.
type Role string

const (
	// RoleSuperAdmin can administer every branch.
	RoleSuperAdmin Role = "super_admin"
	// RoleBranchAdmin administers a single branch.
	RoleBranchAdmin Role = "branch_admin"
	// RoleMember is a regular gym member account.
	RoleMember Role = "member"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleBranchAdmin, RoleMember:
		return true
	default:
		return false
	}
}
