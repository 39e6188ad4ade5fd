package httpx

import (
	"net/http"

	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/domain/nav"
	"github.com/target/cipms/internal/http/ui/viewmodel"
	"github.com/target/cipms/internal/service"
)

// ShowDashboard renders the role-conditional dashboard. RequireSession must wrap it.
func (h *UIHandlers) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := GetIdentityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, nav.RouteLogin, http.StatusSeeOther)
		return
	}

	summary, err := h.Dashboard.Summary(r.Context(), id)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "dashboard summary failed",
			"role", string(id.Role()), "error", err)
		h.renderServerError(w, r, id, errMsgDashboardUnavailable)
		return
	}

	page := dashboardPage(buildLayout(r, id, PageMeta{Title: "Dashboard", CurrentPage: PageDashboard}), id, summary)
	if err := h.T.RenderFull(w, http.StatusOK, page); err != nil {
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
	}
}

func dashboardPage(layout viewmodel.Layout, id domainauth.Identity, summary service.DashboardSummary) viewmodel.DashboardPage {
	page := viewmodel.DashboardPage{
		Layout:    layout,
		Dashboard: summary.Dashboard,
		Intro:     summary.Intro,
		RawRole:   string(id.Role()),
	}
	if first := id.Base().FirstName; first != "" {
		page.Greeting = "Welcome, " + first
	} else {
		page.Greeting = "Welcome"
	}
	page.Stats = statCards(summary.Stats)
	for _, in := range summary.Openings {
		page.Openings = append(page.Openings, viewmodel.Opening{Internship: in})
	}
	for _, u := range summary.Upcoming {
		page.Upcoming = append(page.Upcoming, viewmodel.Interview{Interview: u.Interview, Internship: u.Internship})
	}
	return page
}

// Section renders the page for a menu target, falling back to a placeholder
// for targets without a dedicated view. Targets outside the viewer's menu are
// not found for that role.
func (h *UIHandlers) Section(w http.ResponseWriter, r *http.Request) {
	id, ok := GetIdentityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, nav.RouteLogin, http.StatusSeeOther)
		return
	}

	item, known := nav.Section(r.URL.Path)
	if !known || !nav.MenuAllows(id.Role(), r.URL.Path) {
		h.NotFound(w, r)
		return
	}

	var page any = viewmodel.SectionPage{
		Layout:  buildLayout(r, id, PageMeta{Title: item.Label, CurrentPage: PageSection}),
		Heading: item.Label,
		Icon:    item.Icon,
	}
	if build, ok := sectionPages[r.URL.Path]; ok && h.Sections != nil {
		built, err := build(h, r, id, item)
		if err != nil {
			h.logger().ErrorContext(r.Context(), "section load failed",
				"path", r.URL.Path, "role", string(id.Role()), "error", err)
			h.renderServerError(w, r, id, errMsgSectionUnavailable)
			return
		}
		page = built
	}
	if err := h.T.RenderFull(w, http.StatusOK, page); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// NotFound sends unknown paths back to the dashboard. API clients get a JSON 404.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "message": "not found"})
		return
	}
	http.Redirect(w, r, nav.RouteDashboard, http.StatusSeeOther)
}
