// Package auth contains domain-level types for identities, sessions and the access gate.
// It is pure and free of framework/adapter concerns.
package auth

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleStudent       Role = "student"
	RoleFaculty       Role = "faculty"
	RolePlacementCell Role = "placement_cell"
	RoleRecruiter     Role = "recruiter"
)

// KnownRoles returns the fixed role variants in login-form order.
func KnownRoles() []Role {
	return []Role{RoleStudent, RoleFaculty, RolePlacementCell, RoleRecruiter}
}

// ParseRole converts a raw value into a known Role.
// The second return value is false for anything outside the four variants.
func ParseRole(raw string) (Role, bool) {
	switch r := Role(raw); r {
	case RoleStudent, RoleFaculty, RolePlacementCell, RoleRecruiter:
		return r, true
	default:
		return r, false
	}
}

// IsKnown reports whether r is one of the four fixed variants.
func (r Role) IsKnown() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Label returns the human readable role name shown in the header.
func (r Role) Label() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RoleFaculty:
		return "Faculty"
	case RolePlacementCell:
		return "Placement Cell"
	case RoleRecruiter:
		return "Recruiter"
	default:
		return string(r)
	}
}
