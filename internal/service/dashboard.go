package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/target/cipms/internal/core"
	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/domain/model"
	"github.com/target/cipms/internal/domain/nav"
)

var errCatalogNotConfigured = errors.New("catalog is not configured")

// maxListed caps the openings and interviews shown on a dashboard.
const maxListed = 3

// StatCard is one headline figure on a dashboard.
type StatCard struct {
	Label string
	Value int
	Icon  string
}

// UpcomingInterview joins an interview with the posting it belongs to.
type UpcomingInterview struct {
	Interview  *model.Interview
	Internship *model.Internship
}

// DashboardSummary is everything a role dashboard renders besides the layout.
type DashboardSummary struct {
	Dashboard nav.Dashboard
	Intro     string
	Stats     []StatCard
	// Openings lists postings that still accept applications, soonest deadline first.
	Openings []*model.Internship
	// Upcoming lists interviews relevant to the viewer, earliest first.
	Upcoming []UpcomingInterview
}

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Catalog      core.CatalogRepository
	TimeProvider core.TimeProvider
}

// DashboardService computes per-role dashboard figures from the catalog.
type DashboardService struct {
	catalog core.CatalogRepository
	clock   core.TimeProvider
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.TimeProvider == nil {
		opts.TimeProvider = core.RealTimeProvider{}
	}
	return &DashboardService{catalog: opts.Catalog, clock: opts.TimeProvider}
}

type catalogSnapshot struct {
	internships  []*model.Internship
	applications []*model.Application
	interviews   []*model.Interview
	directory    model.Directory

	internshipByID  map[string]*model.Internship
	applicationByID map[string]*model.Application
}

func (s *DashboardService) snapshot(ctx context.Context) (*catalogSnapshot, error) {
	if s.catalog == nil {
		return nil, errCatalogNotConfigured
	}
	internships, err := s.catalog.ListInternships(ctx)
	if err != nil {
		return nil, fmt.Errorf("list internships: %w", err)
	}
	applications, err := s.catalog.ListApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	interviews, err := s.catalog.ListInterviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	directory, err := s.catalog.Directory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load directory: %w", err)
	}

	snap := &catalogSnapshot{
		internships:     internships,
		applications:    applications,
		interviews:      interviews,
		directory:       directory,
		internshipByID:  make(map[string]*model.Internship, len(internships)),
		applicationByID: make(map[string]*model.Application, len(applications)),
	}
	for _, in := range internships {
		snap.internshipByID[in.ID] = in
	}
	for _, a := range applications {
		snap.applicationByID[a.ID] = a
	}
	return snap, nil
}

// Summary builds the dashboard for id. An identity without a known role gets
// the unrecognized-role dashboard with no figures.
func (s *DashboardService) Summary(ctx context.Context, id domainauth.Identity) (DashboardSummary, error) {
	summary := DashboardSummary{Dashboard: nav.SelectDashboardFor(id)}
	if summary.Dashboard == nav.DashboardUnrecognizedRole {
		return summary, nil
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	now := s.clock.Now()
	viewer := id.Base().ID

	switch summary.Dashboard {
	case nav.DashboardStudent:
		summary.Intro = "Welcome back! Here's your internship journey overview."
		summary.Stats = studentStats(snap, viewer, now)
		summary.Openings = openings(snap.internships, now, func(*model.Internship) bool { return true })
		summary.Upcoming = upcoming(snap, now, func(a *model.Application) bool { return a.StudentID == viewer })
	case nav.DashboardFaculty:
		summary.Intro = "Monitor student applications and track internship progress."
		summary.Stats = facultyStats(snap)
	case nav.DashboardPlacementCell:
		summary.Intro = "Manage internships, track placements, and monitor student progress."
		summary.Stats = placementStats(snap)
		summary.Openings = openings(snap.internships, now, func(*model.Internship) bool { return true })
	case nav.DashboardRecruiter:
		summary.Intro = "Manage job postings, review candidates, and schedule interviews."
		summary.Stats = recruiterStats(snap, viewer, now)
		mine := func(in *model.Internship) bool { return in.PostedBy == viewer }
		summary.Openings = openings(snap.internships, now, mine)
		summary.Upcoming = upcoming(snap, now, func(a *model.Application) bool {
			in, ok := snap.internshipByID[a.InternshipID]
			return ok && mine(in)
		})
	}
	return summary, nil
}

func studentStats(snap *catalogSnapshot, studentID string, now time.Time) []StatCard {
	var total, active, offers int
	mine := make(map[string]bool)
	for _, a := range snap.applications {
		if a.StudentID != studentID {
			continue
		}
		mine[a.ID] = true
		total++
		if a.Status.Active() {
			active++
		}
		if a.Status == model.ApplicationStatusSelected {
			offers++
		}
	}
	scheduled := 0
	for _, iv := range snap.interviews {
		if mine[iv.ApplicationID] && iv.Upcoming(now) {
			scheduled++
		}
	}
	return []StatCard{
		{Label: "Total Applications", Value: total, Icon: nav.IconFileText},
		{Label: "Active Applications", Value: active, Icon: nav.IconClock},
		{Label: "Interviews Scheduled", Value: scheduled, Icon: nav.IconCalendar},
		{Label: "Offers Received", Value: offers, Icon: nav.IconCheckCircle},
	}
}

func facultyStats(snap *catalogSnapshot) []StatCard {
	var pending, reviewed int
	for _, a := range snap.applications {
		if a.FacultyApprovalStatus == model.ApprovalStatusPending {
			pending++
		} else {
			reviewed++
		}
	}
	return []StatCard{
		{Label: "Pending Approvals", Value: pending, Icon: nav.IconClock},
		{Label: "Total Students", Value: snap.directory.Students, Icon: nav.IconUsers},
		{Label: "Active Internships", Value: activeInternships(snap.internships), Icon: nav.IconTrendingUp},
		{Label: "Completed Reviews", Value: reviewed, Icon: nav.IconCheckCircle},
	}
}

func placementStats(snap *catalogSnapshot) []StatCard {
	placed := make(map[string]struct{})
	for _, a := range snap.applications {
		if a.Status == model.ApplicationStatusSelected {
			placed[a.StudentID] = struct{}{}
		}
	}
	return []StatCard{
		{Label: "Total Students", Value: snap.directory.Students, Icon: nav.IconUsers},
		{Label: "Active Internships", Value: activeInternships(snap.internships), Icon: nav.IconBriefcase},
		{Label: "Placed Students", Value: len(placed), Icon: nav.IconTrendingUp},
		{Label: "Active Recruiters", Value: snap.directory.Recruiters, Icon: nav.IconBuilding},
	}
}

func recruiterStats(snap *catalogSnapshot, recruiterID string, now time.Time) []StatCard {
	jobs := make(map[string]bool)
	activeJobs := 0
	for _, in := range snap.internships {
		if in.PostedBy != recruiterID {
			continue
		}
		jobs[in.ID] = true
		if in.IsActive {
			activeJobs++
		}
	}

	var total, selected int
	apps := make(map[string]bool)
	for _, a := range snap.applications {
		if !jobs[a.InternshipID] {
			continue
		}
		apps[a.ID] = true
		total++
		if a.Status == model.ApplicationStatusSelected {
			selected++
		}
	}
	scheduled := 0
	for _, iv := range snap.interviews {
		if apps[iv.ApplicationID] && iv.Upcoming(now) {
			scheduled++
		}
	}
	return []StatCard{
		{Label: "Active Job Postings", Value: activeJobs, Icon: nav.IconBriefcase},
		{Label: "Total Applications", Value: total, Icon: nav.IconUsers},
		{Label: "Interviews Scheduled", Value: scheduled, Icon: nav.IconCalendar},
		{Label: "Selected Candidates", Value: selected, Icon: nav.IconCheckCircle},
	}
}

func activeInternships(list []*model.Internship) int {
	n := 0
	for _, in := range list {
		if in.IsActive {
			n++
		}
	}
	return n
}

func openings(list []*model.Internship, now time.Time, keep func(*model.Internship) bool) []*model.Internship {
	var out []*model.Internship
	for _, in := range list {
		if in.OpenAt(now) && keep(in) {
			out = append(out, in)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ApplicationDeadline.Before(out[j].ApplicationDeadline)
	})
	if len(out) > maxListed {
		out = out[:maxListed]
	}
	return out
}

func upcoming(snap *catalogSnapshot, now time.Time, keep func(*model.Application) bool) []UpcomingInterview {
	var out []UpcomingInterview
	for _, iv := range snap.interviews {
		if !iv.Upcoming(now) {
			continue
		}
		app, ok := snap.applicationByID[iv.ApplicationID]
		if !ok || !keep(app) {
			continue
		}
		out = append(out, UpcomingInterview{Interview: iv, Internship: snap.internshipByID[app.InternshipID]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Interview.At.Before(out[j].Interview.At)
	})
	if len(out) > maxListed {
		out = out[:maxListed]
	}
	return out
}
