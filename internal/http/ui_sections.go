package httpx

import (
	"context"
	"net/http"
	"strings"

	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/domain/nav"
	"github.com/target/cipms/internal/http/ui/viewmodel"
	"github.com/target/cipms/internal/service"
)

const errMsgSectionUnavailable = "This page could not be loaded. Please try again shortly."

// maxSearchLen bounds the internship search term taken from the query string.
const maxSearchLen = 100

// SectionProvider lists the records behind the menu sections.
type SectionProvider interface {
	OpenInternships(ctx context.Context, search string) ([]service.Listing, error)
	ManagedInternships(ctx context.Context, id domainauth.Identity) ([]service.Listing, error)
	Applications(ctx context.Context, id domainauth.Identity) (service.ApplicationList, error)
	PendingApprovals(ctx context.Context, id domainauth.Identity) (service.ApplicationList, error)
	Interviews(ctx context.Context, id domainauth.Identity) (service.InterviewList, error)
	Profile(id domainauth.Identity) service.ProfileView
}

var _ SectionProvider = (*service.DashboardService)(nil)

// sectionBuilder produces the page model for one menu target.
type sectionBuilder func(h *UIHandlers, r *http.Request, id domainauth.Identity, item nav.MenuItem) (any, error)

// sectionPages maps menu targets to dedicated views. Targets without an entry
// render the placeholder section.
//
//nolint:gochecknoglobals // static read-only routing table
var sectionPages = map[string]sectionBuilder{
	nav.RouteInternships:         openInternshipsPage,
	nav.RouteManageJobs:          managedInternshipsPage,
	nav.RoutePostJobs:            managedInternshipsPage,
	nav.RouteApplications:        applicationsPage,
	nav.RouteRecruiterCandidates: applicationsPage,
	nav.RouteApprovals:           approvalsPage,
	nav.RouteInterviews:          interviewsPage,
	nav.RouteProfile:             profilePage,
	nav.RouteRecruiterProfile:    profilePage,
}

func sectionLayout(r *http.Request, id domainauth.Identity, item nav.MenuItem, page string) viewmodel.Layout {
	return buildLayout(r, id, PageMeta{Title: item.Label, CurrentPage: page})
}

func openInternshipsPage(h *UIHandlers, r *http.Request, id domainauth.Identity, item nav.MenuItem) (any, error) {
	search := strings.TrimSpace(r.URL.Query().Get("q"))
	if runes := []rune(search); len(runes) > maxSearchLen {
		search = string(runes[:maxSearchLen])
	}
	listings, err := h.Sections.OpenInternships(r.Context(), search)
	if err != nil {
		return nil, err
	}
	return viewmodel.InternshipsPage{
		Layout:     sectionLayout(r, id, item, PageInternships),
		Heading:    "Open Internships",
		Searchable: true,
		Search:     search,
		Listings:   listingRows(listings),
		EmptyText:  "No internships match your search.",
	}, nil
}

func managedInternshipsPage(h *UIHandlers, r *http.Request, id domainauth.Identity, item nav.MenuItem) (any, error) {
	listings, err := h.Sections.ManagedInternships(r.Context(), id)
	if err != nil {
		return nil, err
	}
	heading := "All Postings"
	if _, ok := id.(*domainauth.Recruiter); ok {
		heading = "Your Job Postings"
	}
	return viewmodel.InternshipsPage{
		Layout:    sectionLayout(r, id, item, PageInternships),
		Heading:   heading,
		Listings:  listingRows(listings),
		EmptyText: "No postings yet.",
	}, nil
}

func applicationsPage(h *UIHandlers, r *http.Request, id domainauth.Identity, item nav.MenuItem) (any, error) {
	list, err := h.Sections.Applications(r.Context(), id)
	if err != nil {
		return nil, err
	}
	_, isStudent := id.(*domainauth.Student)
	heading := "My Applications"
	if !isStudent {
		heading = item.Label
	}
	return applicationsView(sectionLayout(r, id, item, PageApplications), heading, list, !isStudent,
		"No applications yet."), nil
}

func approvalsPage(h *UIHandlers, r *http.Request, id domainauth.Identity, item nav.MenuItem) (any, error) {
	list, err := h.Sections.PendingApprovals(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return applicationsView(sectionLayout(r, id, item, PageApplications), "Pending Approvals", list, true,
		"No applications are waiting for approval."), nil
}

func applicationsView(layout viewmodel.Layout, heading string, list service.ApplicationList, showApplicant bool, empty string) viewmodel.ApplicationsPage {
	page := viewmodel.ApplicationsPage{
		Layout:        layout,
		Heading:       heading,
		Stats:         statCards(list.Stats),
		ShowApplicant: showApplicant,
		EmptyText:     empty,
	}
	for _, e := range list.Items {
		page.Rows = append(page.Rows, viewmodel.ApplicationRow{Application: e.Application, Internship: e.Internship})
	}
	return page
}

func interviewsPage(h *UIHandlers, r *http.Request, id domainauth.Identity, item nav.MenuItem) (any, error) {
	list, err := h.Sections.Interviews(r.Context(), id)
	if err != nil {
		return nil, err
	}
	page := viewmodel.InterviewsPage{
		Layout: sectionLayout(r, id, item, PageInterviews),
		Stats:  statCards(list.Stats),
	}
	for _, e := range list.Items {
		page.Rows = append(page.Rows, viewmodel.InterviewRow{
			Interview:   e.Interview,
			Application: e.Application,
			Internship:  e.Internship,
			Upcoming:    e.Upcoming,
		})
	}
	return page, nil
}

func profilePage(h *UIHandlers, r *http.Request, id domainauth.Identity, item nav.MenuItem) (any, error) {
	view := h.Sections.Profile(id)
	page := viewmodel.ProfilePage{
		Layout:  sectionLayout(r, id, item, PageProfile),
		Heading: view.Heading,
		Skills:  view.Skills,
	}
	for _, f := range view.Fields {
		page.Fields = append(page.Fields, viewmodel.ProfileField{Label: f.Label, Value: f.Value, Link: f.Link})
	}
	return page, nil
}

func listingRows(listings []service.Listing) []viewmodel.Listing {
	out := make([]viewmodel.Listing, 0, len(listings))
	for _, l := range listings {
		out = append(out, viewmodel.Listing{
			Internship: l.Internship,
			DaysLeft:   l.DaysLeft,
			Urgency:    string(l.Urgency),
			Open:       l.Open,
		})
	}
	return out
}

func statCards(stats []service.StatCard) []viewmodel.StatCard {
	out := make([]viewmodel.StatCard, 0, len(stats))
	for _, s := range stats {
		out = append(out, viewmodel.StatCard{Label: s.Label, Value: s.Value, Icon: s.Icon})
	}
	return out
}
