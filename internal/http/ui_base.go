package httpx

import (
	"context"
	"log/slog"
	"net/http"

	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/domain/nav"
	"github.com/target/cipms/internal/http/ui/viewmodel"
	"github.com/target/cipms/internal/http/uiutil"
	"github.com/target/cipms/internal/service"
)

const errMsgDashboardUnavailable = "The dashboard could not be loaded. Please try again shortly."

// DashboardProvider computes the per-role dashboard content.
type DashboardProvider interface {
	Summary(ctx context.Context, id domainauth.Identity) (service.DashboardSummary, error)
}

var _ DashboardProvider = (*service.DashboardService)(nil)

// UIHandlers serves the HTML pages behind the access gate.
type UIHandlers struct {
	T         *TemplateRenderer
	Dashboard DashboardProvider
	Sections  SectionProvider
	Logger    *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta names the page being rendered.
type PageMeta struct {
	Title       string
	CurrentPage string
}

// buildLayout assembles the shared chrome for an authenticated page.
// The menu comes from the identity's role; the entry matching the request path is marked active.
func buildLayout(r *http.Request, id domainauth.Identity, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.Title,
		CurrentPage: meta.CurrentPage,
		CurrentPath: r.URL.Path,
	}
	if id == nil {
		return layout
	}

	layout.IsAuthenticated = true
	layout.User = userView(id)
	for _, item := range nav.SelectMenu(id.Role()) {
		layout.Menu = append(layout.Menu, viewmodel.MenuLink{
			Label:  item.Label,
			Target: item.Target,
			Icon:   item.Icon,
			Active: item.Target == r.URL.Path,
		})
	}
	return layout
}

func userView(id domainauth.Identity) *viewmodel.User {
	p := id.Base()
	name := domainauth.DisplayName(id)
	if name == "" {
		name = p.Email
	}
	return &viewmodel.User{
		Name:      name,
		Email:     p.Email,
		Role:      string(id.Role()),
		RoleLabel: id.Role().Label(),
		Initials:  uiutil.Initials(p.FirstName, p.LastName, p.Email),
		Avatar:    p.Avatar,
	}
}

// renderServerError shows the error page inside the layout, falling back to plain text.
func (h *UIHandlers) renderServerError(w http.ResponseWriter, r *http.Request, id domainauth.Identity, msg string) {
	page := viewmodel.ErrorPage{
		Layout:  buildLayout(r, id, PageMeta{Title: "Something went wrong", CurrentPage: PageError}),
		Message: msg,
	}
	if h.T == nil {
		http.Error(w, msg, http.StatusInternalServerError)
		return
	}
	if err := h.T.RenderFull(w, http.StatusInternalServerError, page); err != nil {
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
