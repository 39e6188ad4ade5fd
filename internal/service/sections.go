package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/domain/model"
	"github.com/target/cipms/internal/domain/nav"
)

// Deadline thresholds, in whole days remaining, for posting urgency badges.
const (
	urgentWithinDays      = 3
	closingSoonWithinDays = 7
)

// Urgency flags a posting whose deadline is near.
type Urgency string

const (
	UrgencyNone        Urgency = ""
	UrgencyUrgent      Urgency = "urgent"
	UrgencyClosingSoon Urgency = "closing_soon"
)

// Listing is a posting with its deadline countdown.
type Listing struct {
	Internship *model.Internship
	// DaysLeft rounds up; zero or negative means the deadline has passed.
	DaysLeft int
	Urgency  Urgency
	Open     bool
}

// ApplicationEntry joins an application with its posting. Internship is nil
// when the posting is missing from the catalog.
type ApplicationEntry struct {
	Application *model.Application
	Internship  *model.Internship
}

// ApplicationList is the application table for a viewer with status counts.
type ApplicationList struct {
	Stats []StatCard
	Items []ApplicationEntry
}

// InterviewEntry joins an interview with its application and posting.
type InterviewEntry struct {
	Interview   *model.Interview
	Application *model.Application
	Internship  *model.Internship
	Upcoming    bool
}

// InterviewList is the interview schedule for a viewer with outcome counts.
type InterviewList struct {
	Stats []StatCard
	Items []InterviewEntry
}

// ProfileField is one labelled value on a profile page. Link marks URL values.
type ProfileField struct {
	Label string
	Value string
	Link  bool
}

// ProfileView is the read-only profile of the signed-in identity.
type ProfileView struct {
	Heading string
	Fields  []ProfileField
	Skills  []string
}

// OpenInternships lists postings that still accept applications, soonest
// deadline first. A non-empty search keeps postings whose title, company or
// skills contain it, ignoring case.
func (s *DashboardService) OpenInternships(ctx context.Context, search string) ([]Listing, error) {
	internships, err := s.listInternships(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	needle := strings.ToLower(strings.TrimSpace(search))

	var out []Listing
	for _, in := range internships {
		if !in.OpenAt(now) || !matchesInternship(in, needle) {
			continue
		}
		out = append(out, listing(in, now))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Internship.ApplicationDeadline.Before(out[j].Internship.ApplicationDeadline)
	})
	return out, nil
}

// ManagedInternships lists every posting the viewer administers, newest first.
// The placement cell manages all postings and a recruiter manages their own;
// other roles manage none.
func (s *DashboardService) ManagedInternships(ctx context.Context, id domainauth.Identity) ([]Listing, error) {
	var keep func(*model.Internship) bool
	switch id.(type) {
	case *domainauth.PlacementOfficer:
		keep = func(*model.Internship) bool { return true }
	case *domainauth.Recruiter:
		viewer := id.Base().ID
		keep = func(in *model.Internship) bool { return in.PostedBy == viewer }
	default:
		return nil, nil
	}

	internships, err := s.listInternships(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	var out []Listing
	for _, in := range internships {
		if keep(in) {
			out = append(out, listing(in, now))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Internship.PostedDate.After(out[j].Internship.PostedDate)
	})
	return out, nil
}

// Applications lists the applications visible to id, most recent first.
// Students see their own, recruiters see applications to their postings and
// faculty and the placement cell see all of them.
func (s *DashboardService) Applications(ctx context.Context, id domainauth.Identity) (ApplicationList, error) {
	return s.applications(ctx, id, func(*model.Application) bool { return true })
}

// PendingApprovals lists applications awaiting a faculty decision. Only
// faculty review approvals; every other role gets an empty list.
func (s *DashboardService) PendingApprovals(ctx context.Context, id domainauth.Identity) (ApplicationList, error) {
	if _, ok := id.(*domainauth.Faculty); !ok {
		return ApplicationList{}, nil
	}
	return s.applications(ctx, id, func(a *model.Application) bool {
		return a.FacultyApprovalStatus == model.ApprovalStatusPending
	})
}

func (s *DashboardService) applications(ctx context.Context, id domainauth.Identity, keep func(*model.Application) bool) (ApplicationList, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return ApplicationList{}, err
	}
	visible := applicationScope(snap, id)

	var list ApplicationList
	for _, a := range snap.applications {
		if visible(a) && keep(a) {
			list.Items = append(list.Items, ApplicationEntry{Application: a, Internship: snap.internshipByID[a.InternshipID]})
		}
	}
	sort.SliceStable(list.Items, func(i, j int) bool {
		return list.Items[i].Application.AppliedDate.After(list.Items[j].Application.AppliedDate)
	})
	list.Stats = applicationStats(list.Items)
	return list, nil
}

// Interviews lists the interviews visible to id in chronological order, using
// the same per-role scope as Applications.
func (s *DashboardService) Interviews(ctx context.Context, id domainauth.Identity) (InterviewList, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return InterviewList{}, err
	}
	visible := applicationScope(snap, id)
	now := s.clock.Now()

	var list InterviewList
	for _, iv := range snap.interviews {
		app, ok := snap.applicationByID[iv.ApplicationID]
		if !ok || !visible(app) {
			continue
		}
		list.Items = append(list.Items, InterviewEntry{
			Interview:   iv,
			Application: app,
			Internship:  snap.internshipByID[app.InternshipID],
			Upcoming:    iv.Upcoming(now),
		})
	}
	sort.SliceStable(list.Items, func(i, j int) bool {
		return list.Items[i].Interview.At.Before(list.Items[j].Interview.At)
	})

	var upcomingCount, completed, selected int
	for _, e := range list.Items {
		if e.Upcoming {
			upcomingCount++
		}
		if e.Interview.Status == model.InterviewStatusCompleted {
			completed++
		}
		if e.Interview.Result == model.InterviewResultSelected {
			selected++
		}
	}
	list.Stats = []StatCard{
		{Label: "Total Interviews", Value: len(list.Items), Icon: nav.IconCalendar},
		{Label: "Upcoming", Value: upcomingCount, Icon: nav.IconClock},
		{Label: "Completed", Value: completed, Icon: nav.IconCheckSquare},
		{Label: "Selected", Value: selected, Icon: nav.IconCheckCircle},
	}
	return list, nil
}

// Profile lays out the role-specific fields of id. Empty optional values
// render as "Not provided".
func (s *DashboardService) Profile(id domainauth.Identity) ProfileView {
	if id == nil {
		return ProfileView{}
	}
	p := id.Base()
	view := ProfileView{Heading: domainauth.DisplayName(id)}
	if view.Heading == "" {
		view.Heading = p.Email
	}
	view.Fields = append(view.Fields, ProfileField{Label: "Email", Value: p.Email})

	switch v := id.(type) {
	case *domainauth.Student:
		view.Fields = append(view.Fields,
			textField("Student ID", v.StudentID),
			textField("Department", v.Department),
			textField("Year", yearText(v.Year)),
			textField("CGPA", cgpaText(v.CGPA)),
			textField("Phone", v.Phone),
			linkField("Resume", v.ResumeURL),
			linkField("LinkedIn", v.LinkedInURL),
			linkField("GitHub", v.GitHubURL),
		)
		view.Skills = append([]string(nil), v.Skills...)
	case *domainauth.Recruiter:
		view.Fields = append(view.Fields,
			textField("Company", v.CompanyName),
			textField("Position", v.Position),
			linkField("Company Website", v.CompanyWebsite),
		)
	case *domainauth.Faculty:
		view.Fields = append(view.Fields,
			textField("Employee ID", v.EmployeeID),
			textField("Department", v.Department),
			textField("Designation", v.Designation),
		)
	case *domainauth.PlacementOfficer:
		view.Fields = append(view.Fields,
			textField("Employee ID", v.EmployeeID),
			textField("Position", v.Position),
		)
	}
	return view
}

func (s *DashboardService) listInternships(ctx context.Context) ([]*model.Internship, error) {
	if s.catalog == nil {
		return nil, errCatalogNotConfigured
	}
	internships, err := s.catalog.ListInternships(ctx)
	if err != nil {
		return nil, fmt.Errorf("list internships: %w", err)
	}
	return internships, nil
}

// applicationScope returns the visibility rule for id's role. Unrecognized
// roles see nothing.
func applicationScope(snap *catalogSnapshot, id domainauth.Identity) func(*model.Application) bool {
	switch id.(type) {
	case *domainauth.Student:
		viewer := id.Base().ID
		return func(a *model.Application) bool { return a.StudentID == viewer }
	case *domainauth.Recruiter:
		viewer := id.Base().ID
		return func(a *model.Application) bool {
			in, ok := snap.internshipByID[a.InternshipID]
			return ok && in.PostedBy == viewer
		}
	case *domainauth.Faculty, *domainauth.PlacementOfficer:
		return func(*model.Application) bool { return true }
	default:
		return func(*model.Application) bool { return false }
	}
}

func applicationStats(items []ApplicationEntry) []StatCard {
	var pending, interviewing, selected, rejected int
	for _, e := range items {
		switch e.Application.Status {
		case model.ApplicationStatusPending:
			pending++
		case model.ApplicationStatusInterviewScheduled:
			interviewing++
		case model.ApplicationStatusSelected:
			selected++
		case model.ApplicationStatusRejected:
			rejected++
		}
	}
	return []StatCard{
		{Label: "Total", Value: len(items), Icon: nav.IconFileText},
		{Label: "Pending", Value: pending, Icon: nav.IconClock},
		{Label: "Interviews", Value: interviewing, Icon: nav.IconCalendar},
		{Label: "Selected", Value: selected, Icon: nav.IconCheckCircle},
		{Label: "Rejected", Value: rejected, Icon: nav.IconFileText},
	}
}

func listing(in *model.Internship, now time.Time) Listing {
	l := Listing{Internship: in, Open: in.OpenAt(now)}
	l.DaysLeft = int(math.Ceil(in.ApplicationDeadline.Sub(now).Hours() / 24))
	if l.Open {
		switch {
		case l.DaysLeft <= urgentWithinDays:
			l.Urgency = UrgencyUrgent
		case l.DaysLeft <= closingSoonWithinDays:
			l.Urgency = UrgencyClosingSoon
		}
	}
	return l
}

func matchesInternship(in *model.Internship, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(in.Title), needle) || strings.Contains(strings.ToLower(in.Company), needle) {
		return true
	}
	for _, skill := range in.Skills {
		if strings.Contains(strings.ToLower(skill), needle) {
			return true
		}
	}
	return false
}

func textField(label, value string) ProfileField {
	if value == "" {
		value = "Not provided"
	}
	return ProfileField{Label: label, Value: value}
}

func linkField(label, value string) ProfileField {
	if value == "" {
		return textField(label, value)
	}
	return ProfileField{Label: label, Value: value, Link: true}
}

func yearText(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func cgpaText(cgpa *float64) string {
	if cgpa == nil {
		return ""
	}
	return strconv.FormatFloat(*cgpa, 'f', 2, 64)
}
