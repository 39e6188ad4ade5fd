package nav

import domainauth "github.com/target/cipms/internal/domain/auth"

// Dashboard identifies which dashboard variant to render.
type Dashboard int

const (
	DashboardUnrecognizedRole Dashboard = iota
	DashboardStudent
	DashboardFaculty
	DashboardPlacementCell
	DashboardRecruiter
)

// String returns the template name suffix for d.
func (d Dashboard) String() string {
	switch d {
	case DashboardStudent:
		return "student"
	case DashboardFaculty:
		return "faculty"
	case DashboardPlacementCell:
		return "placement-cell"
	case DashboardRecruiter:
		return "recruiter"
	default:
		return "unrecognized-role"
	}
}

// SelectDashboard maps role to exactly one dashboard variant.
// Anything outside the four known roles maps to DashboardUnrecognizedRole.
func SelectDashboard(role domainauth.Role) Dashboard {
	switch role {
	case domainauth.RoleStudent:
		return DashboardStudent
	case domainauth.RoleFaculty:
		return DashboardFaculty
	case domainauth.RolePlacementCell:
		return DashboardPlacementCell
	case domainauth.RoleRecruiter:
		return DashboardRecruiter
	default:
		return DashboardUnrecognizedRole
	}
}

// SelectDashboardFor dispatches on the identity variant itself.
func SelectDashboardFor(id domainauth.Identity) Dashboard {
	switch id.(type) {
	case *domainauth.Student:
		return DashboardStudent
	case *domainauth.Faculty:
		return DashboardFaculty
	case *domainauth.PlacementOfficer:
		return DashboardPlacementCell
	case *domainauth.Recruiter:
		return DashboardRecruiter
	case *domainauth.Unrecognized, nil:
		return DashboardUnrecognizedRole
	default:
		return DashboardUnrecognizedRole
	}
}
