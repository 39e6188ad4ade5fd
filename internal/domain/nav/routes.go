// Package nav selects the dashboard variant and navigation menu for a role.
// Every function here is total over arbitrary role values.
package nav

import "strings"

// Route paths served by the dashboard.
const (
	RouteLogin               = "/login"
	RouteDashboard           = "/dashboard"
	RouteProfile             = "/profile"
	RouteInternships         = "/internships"
	RouteApplications        = "/applications"
	RouteInterviews          = "/interviews"
	RouteSettings            = "/settings"
	RouteFacultyStudents     = "/faculty/students"
	RouteApprovals           = "/approvals"
	RouteFeedback            = "/feedback"
	RouteAnalytics           = "/analytics"
	RoutePlacementPostJob    = "/placement/post-job"
	RouteManageJobs          = "/manage-jobs"
	RouteStudents            = "/students"
	RouteRecruiters          = "/recruiters"
	RouteRecruiterCandidates = "/recruiter/candidates"
	RouteRecruiterProfile    = "/recruiter/profile"
	RoutePostJobs            = "/post-jobs"
)

// IsProtectedRoute reports whether path requires an authenticated session.
// The login view, health checks and static assets are public.
func IsProtectedRoute(path string) bool {
	switch {
	case path == RouteLogin, path == "/healthz":
		return false
	case strings.HasPrefix(path, "/static/"):
		return false
	default:
		return true
	}
}
