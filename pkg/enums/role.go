package enums

import "fmt"

// Role represents a platform-level account role.
type Role string

const (
	RolePatient               Role = "patient"
	RoleAdmin                 Role = "admin"
	RoleDiagnosticCenterAdmin Role = "diagnostic_center_admin"
	RoleSuperAdmin            Role = "super_admin"
)

var validRoles = []Role{
	RolePatient,
	RoleAdmin,
	RoleDiagnosticCenterAdmin,
	RoleSuperAdmin,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
