package auth

import "slices"

// Role is carried in the "role" claim of access tokens. Tokens are issued
// by the identity provider; this service only verifies them.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleScanner  Role = "scanner"
	RoleEmployee Role = "employee"
)

var RoleValues = []string{
	string(RoleAdmin),
	string(RoleScanner),
	string(RoleEmployee),
}

func (r Role) Valid() bool {
	return slices.Contains(RoleValues, string(r))
}

// Principal is the caller identified by a verified access token.
type Principal struct {
	Subject    string
	Role       Role
	EmployeeID string // empty for admin and scanner kiosks
}

// HasRole reports whether the principal holds one of roles.
func (p Principal) HasRole(roles ...Role) bool {
	return slices.Contains(roles, p.Role)
}
