package nav

import domainauth "github.com/target/cipms/internal/domain/auth"

// Icon identifiers understood by the sidebar renderer.
const (
	IconHome          = "home"
	IconUser          = "user"
	IconBriefcase     = "briefcase"
	IconFileText      = "file-text"
	IconCalendar      = "calendar"
	IconBarChart      = "bar-chart-3"
	IconUsers         = "users"
	IconSettings      = "settings"
	IconCheckSquare   = "check-square"
	IconEye           = "eye"
	IconMessageCircle = "message-circle"
	IconPlus          = "plus"
	IconBuilding      = "building-2"
	IconClock         = "clock"
	IconCheckCircle   = "check-circle"
	IconTrendingUp    = "trending-up"
)

// MenuItem is one sidebar entry.
type MenuItem struct {
	Label  string
	Target string
	Icon   string
}

var menus = map[domainauth.Role][]MenuItem{
	domainauth.RoleStudent: {
		{Label: "Dashboard", Target: RouteDashboard, Icon: IconHome},
		{Label: "Profile", Target: RouteProfile, Icon: IconUser},
		{Label: "Internships", Target: RouteInternships, Icon: IconBriefcase},
		{Label: "Applications", Target: RouteApplications, Icon: IconFileText},
		{Label: "Interviews", Target: RouteInterviews, Icon: IconCalendar},
		{Label: "Settings", Target: RouteSettings, Icon: IconSettings},
	},
	domainauth.RoleFaculty: {
		{Label: "Dashboard", Target: RouteDashboard, Icon: IconHome},
		{Label: "Students", Target: RouteFacultyStudents, Icon: IconUsers},
		{Label: "Approvals", Target: RouteApprovals, Icon: IconCheckSquare},
		{Label: "Feedback", Target: RouteFeedback, Icon: IconMessageCircle},
		{Label: "Analytics", Target: RouteAnalytics, Icon: IconBarChart},
		{Label: "Settings", Target: RouteSettings, Icon: IconSettings},
	},
	domainauth.RolePlacementCell: {
		{Label: "Dashboard", Target: RouteDashboard, Icon: IconHome},
		{Label: "Post Job", Target: RoutePlacementPostJob, Icon: IconPlus},
		{Label: "Manage Jobs", Target: RouteManageJobs, Icon: IconBriefcase},
		{Label: "Students", Target: RouteStudents, Icon: IconUsers},
		{Label: "Recruiters", Target: RouteRecruiters, Icon: IconEye},
		{Label: "Analytics", Target: RouteAnalytics, Icon: IconBarChart},
		{Label: "Interviews", Target: RouteInterviews, Icon: IconCalendar},
		{Label: "Settings", Target: RouteSettings, Icon: IconSettings},
	},
	domainauth.RoleRecruiter: {
		{Label: "Dashboard", Target: RouteDashboard, Icon: IconHome},
		{Label: "Candidates", Target: RouteRecruiterCandidates, Icon: IconUsers},
		{Label: "Company Profile", Target: RouteRecruiterProfile, Icon: IconBuilding},
		{Label: "Post Jobs", Target: RoutePostJobs, Icon: IconBriefcase},
		{Label: "Interviews", Target: RouteInterviews, Icon: IconCalendar},
		{Label: "Feedback", Target: RouteFeedback, Icon: IconMessageCircle},
		{Label: "Settings", Target: RouteSettings, Icon: IconSettings},
	},
}

// SelectMenu returns the sidebar entries for role in display order.
// Unknown roles get an empty menu. The returned slice is a copy and may be modified.
func SelectMenu(role domainauth.Role) []MenuItem {
	items, ok := menus[role]
	if !ok {
		return []MenuItem{}
	}
	out := make([]MenuItem, len(items))
	copy(out, items)
	return out
}

// MenuAllows reports whether target appears in the sidebar for role.
func MenuAllows(role domainauth.Role, target string) bool {
	for _, item := range menus[role] {
		if item.Target == target {
			return true
		}
	}
	return false
}

// Section looks up the menu entry for target across all roles.
func Section(target string) (MenuItem, bool) {
	for _, role := range domainauth.KnownRoles() {
		for _, item := range menus[role] {
			if item.Target == target {
				return item, true
			}
		}
	}
	return MenuItem{}, false
}

// Targets returns every distinct menu target across all roles, in a stable order.
func Targets() []string {
	seen := make(map[string]bool)
	var out []string
	for _, role := range domainauth.KnownRoles() {
		for _, item := range menus[role] {
			if seen[item.Target] {
				continue
			}
			seen[item.Target] = true
			out = append(out, item.Target)
		}
	}
	return out
}
