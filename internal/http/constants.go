package httpx

import "github.com/target/cipms/internal/domain/nav"

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageDashboard = "dashboard"
	PageSection   = "section"
	PageError     = "error"
	PageLogin     = "login"
	PageLoading   = "loading"

	PageInternships  = "internships"
	PageApplications = "applications"
	PageInterviews   = "interviews"
	PageProfile      = "profile"
)

// Cookie and header names.
const (
	// ClientCookieName holds the opaque per-browser client identifier.
	ClientCookieName = "cipms_client"

	clientCookieMaxAge = 365 * 24 * 60 * 60
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Generic login failure text. The cause (unknown email or wrong role) is never shown.
const invalidCredentialsMessage = "Invalid credentials. Please try again."

// Dashboard content templates, one per variant.
//
//nolint:gochecknoglobals // static read-only lookup for templates; avoids per-call allocations
var dashboardTemplates = map[nav.Dashboard]string{
	nav.DashboardStudent:          "dashboard-student-content",
	nav.DashboardFaculty:          "dashboard-faculty-content",
	nav.DashboardPlacementCell:    "dashboard-placement-cell-content",
	nav.DashboardRecruiter:        "dashboard-recruiter-content",
	nav.DashboardUnrecognizedRole: "dashboard-unrecognized-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to section-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	switch currentPage {
	case PageDashboard:
		return "dashboard-content"
	case PageError:
		return "error-content"
	case PageInternships:
		return "internships-content"
	case PageApplications:
		return "applications-content"
	case PageInterviews:
		return "interviews-content"
	case PageProfile:
		return "profile-content"
	default:
		return "section-content"
	}
}

// DashboardTemplateFor returns the content template for a dashboard variant.
func DashboardTemplateFor(d nav.Dashboard) string {
	if name, ok := dashboardTemplates[d]; ok {
		return name
	}
	return dashboardTemplates[nav.DashboardUnrecognizedRole]
}
