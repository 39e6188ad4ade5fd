package viewmodel

import (
	"github.com/target/cipms/internal/domain/model"
	"github.com/target/cipms/internal/domain/nav"
)

// RoleOption is one entry of the login form's role selector.
type RoleOption struct {
	Value    string
	Label    string
	Selected bool
}

// LoginPage is the login form. Password is never echoed back.
type LoginPage struct {
	Layout
	Email       string
	Roles       []RoleOption
	Error       string
	DemoHint    bool
	DemoLogins  []DemoLogin
	SubmitLabel string
}

// DemoLogin lists a seeded account on the login page in dev mode.
type DemoLogin struct {
	RoleLabel string
	Email     string
}

// StatCard is one headline figure.
type StatCard struct {
	Label string
	Value int
	Icon  string
}

// Opening is an internship still accepting applications.
type Opening struct {
	Internship *model.Internship
}

// Interview joins an interview with its posting.
type Interview struct {
	Interview  *model.Interview
	Internship *model.Internship
}

// DashboardPage is the role-conditional dashboard.
type DashboardPage struct {
	Layout
	Dashboard nav.Dashboard
	Greeting  string
	Intro     string
	Stats     []StatCard
	Openings  []Opening
	Upcoming  []Interview
	RawRole   string
}

// Listing is a posting row with its deadline countdown.
type Listing struct {
	Internship *model.Internship
	DaysLeft   int
	Urgency    string
	Open       bool
}

// InternshipsPage lists postings. Searchable pages show the search form.
type InternshipsPage struct {
	Layout
	Heading    string
	Searchable bool
	Search     string
	Listings   []Listing
	EmptyText  string
}

// ApplicationRow joins an application with its posting.
type ApplicationRow struct {
	Application *model.Application
	Internship  *model.Internship
}

// ApplicationsPage is an application table. ShowApplicant adds the applicant column.
type ApplicationsPage struct {
	Layout
	Heading       string
	Stats         []StatCard
	Rows          []ApplicationRow
	ShowApplicant bool
	EmptyText     string
}

// InterviewRow is one scheduled or past interview.
type InterviewRow struct {
	Interview   *model.Interview
	Application *model.Application
	Internship  *model.Internship
	Upcoming    bool
}

// InterviewsPage is the interview schedule.
type InterviewsPage struct {
	Layout
	Stats []StatCard
	Rows  []InterviewRow
}

// ProfileField is one labelled profile value.
type ProfileField struct {
	Label string
	Value string
	Link  bool
}

// ProfilePage shows the signed-in identity's own details.
type ProfilePage struct {
	Layout
	Heading string
	Fields  []ProfileField
	Skills  []string
}

// SectionPage is the placeholder shown for menu targets without a dedicated view.
type SectionPage struct {
	Layout
	Heading string
	Icon    string
}

// LoadingPage is rendered while the session is still restoring.
type LoadingPage struct {
	Layout
}

// ErrorPage renders a user-facing failure inside the layout.
type ErrorPage struct {
	Layout
	Message string
}
