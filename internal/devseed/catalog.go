package devseed

import (
	"context"
	"time"

	"github.com/target/cipms/internal/core"
	"github.com/target/cipms/internal/domain/model"
)

var _ core.CatalogRepository = (*Catalog)(nil)

const day = 24 * time.Hour

// Catalog is a static, read-only CatalogRepository with demo placement data.
// Dates are laid out relative to the anchor passed to NewCatalog.
type Catalog struct {
	internships  []*model.Internship
	applications []*model.Application
	interviews   []*model.Interview
	directory    model.Directory
}

// NewCatalog builds the demo catalog around anchor.
func NewCatalog(anchor time.Time) *Catalog {
	at := func(days int) time.Time { return anchor.Add(time.Duration(days) * day) }
	stipend := func(v int) *int { return &v }

	internships := []*model.Internship{
		{
			ID: "i-1", Title: "Software Development Intern", Company: "TechCorp Solutions",
			Skills: []string{"Java", "Spring", "SQL"}, Stipend: stipend(20000), Duration: "6 months",
			Location: "Hyderabad", Type: model.InternshipTypeInternship,
			ApplicationDeadline: at(10), PostedDate: at(-20), PostedBy: "4", IsActive: true, Seats: 5, AppliedCount: 12,
		},
		{
			ID: "i-2", Title: "Data Science Intern", Company: "DataTech Industries",
			Skills: []string{"Python", "Pandas", "ML"}, Stipend: stipend(18000), Duration: "3 months",
			Location: "Pune", Type: model.InternshipTypeInternship,
			ApplicationDeadline: at(14), PostedDate: at(-10), PostedBy: "3", IsActive: true, Seats: 3, AppliedCount: 8,
		},
		{
			ID: "i-3", Title: "Frontend Developer Intern", Company: "WebFlow Inc",
			Skills: []string{"React", "TypeScript", "CSS"}, Stipend: stipend(12000), Duration: "4 months",
			Location: "Remote", Type: model.InternshipTypeInternship,
			ApplicationDeadline: at(-2), PostedDate: at(-30), PostedBy: "3", IsActive: true, Seats: 2, AppliedCount: 15,
		},
		{
			ID: "i-4", Title: "Machine Learning Intern", Company: "AI Solutions",
			Skills: []string{"Python", "PyTorch"}, Stipend: stipend(25000), Duration: "6 months",
			Location: "Bangalore", Type: model.InternshipTypeInternship,
			ApplicationDeadline: at(20), PostedDate: at(-5), PostedBy: "3", IsActive: true, Seats: 2, AppliedCount: 6,
		},
		{
			ID: "i-5", Title: "Full Stack Developer Intern", Company: "StartupXYZ",
			Skills: []string{"React", "Node.js", "MongoDB"}, Stipend: stipend(15000), Duration: "6 months",
			Location: "Bangalore", Type: model.InternshipTypeInternship,
			ApplicationDeadline: at(5), PostedDate: at(-25), PostedBy: "3", IsActive: true, Seats: 4, AppliedCount: 20,
		},
		{
			ID: "i-6", Title: "Graduate Engineer Trainee", Company: "TechCorp Solutions",
			Skills: []string{"Go", "Kubernetes"}, Duration: "Full time",
			Location: "Hyderabad", Type: model.InternshipTypePlacement,
			ApplicationDeadline: at(30), PostedDate: at(-3), PostedBy: "4", IsActive: true, Seats: 10, AppliedCount: 4,
		},
		{
			ID: "i-7", Title: "QA Automation Intern", Company: "TechCorp Solutions",
			Skills: []string{"Selenium"}, Stipend: stipend(10000), Duration: "3 months",
			Location: "Hyderabad", Type: model.InternshipTypeInternship,
			ApplicationDeadline: at(-40), PostedDate: at(-90), PostedBy: "4", IsActive: false, Seats: 2, AppliedCount: 9,
		},
	}

	approved := model.ApprovalStatusApproved
	pending := model.ApprovalStatusPending
	app := func(id, student, internship string, status model.ApplicationStatus, approval model.ApprovalStatus, applied int) *model.Application {
		return &model.Application{
			ID: id, StudentID: student, InternshipID: internship, Status: status,
			AppliedDate: at(applied), FacultyApprovalStatus: approval,
		}
	}

	applications := []*model.Application{
		// Demo student "1".
		app("a-1", "1", "i-1", model.ApplicationStatusInterviewScheduled, approved, -15),
		app("a-2", "1", "i-2", model.ApplicationStatusPending, pending, -3),
		app("a-3", "1", "i-3", model.ApplicationStatusRejected, approved, -20),
		app("a-4", "1", "i-4", model.ApplicationStatusInterviewScheduled, approved, -4),
		app("a-5", "1", "i-5", model.ApplicationStatusSelected, approved, -24),
		app("a-6", "1", "i-7", model.ApplicationStatusRejected, approved, -80),
		app("a-7", "1", "i-7", model.ApplicationStatusCompleted, approved, -85),
		app("a-8", "1", "i-3", model.ApplicationStatusRejected, model.ApprovalStatusRejected, -28),
		// Other students.
		app("a-9", "s-2", "i-1", model.ApplicationStatusPending, pending, -6),
		app("a-10", "s-3", "i-1", model.ApplicationStatusInterviewScheduled, approved, -12),
		app("a-11", "s-4", "i-1", model.ApplicationStatusSelected, approved, -18),
		app("a-12", "s-5", "i-6", model.ApplicationStatusPending, pending, -1),
		app("a-13", "s-6", "i-6", model.ApplicationStatusApproved, approved, -2),
		app("a-14", "s-7", "i-7", model.ApplicationStatusSelected, approved, -70),
		app("a-15", "s-8", "i-2", model.ApplicationStatusPending, pending, -2),
		app("a-16", "s-9", "i-5", model.ApplicationStatusSelected, approved, -22),
	}

	interviews := []*model.Interview{
		{
			ID: "iv-1", ApplicationID: "a-1", At: at(2).Add(10 * time.Hour), Mode: model.InterviewModeOnline,
			MeetingLink: "https://meet.google.com/abc-def-ghi", Status: model.InterviewStatusScheduled,
			Result: model.InterviewResultPending,
		},
		{
			ID: "iv-2", ApplicationID: "a-4", At: at(4).Add(14 * time.Hour), Mode: model.InterviewModeOffline,
			Location: "Block A, Room 301", Status: model.InterviewStatusScheduled,
			Result: model.InterviewResultPending,
		},
		{
			ID: "iv-3", ApplicationID: "a-10", At: at(1).Add(11 * time.Hour), Mode: model.InterviewModeOnline,
			MeetingLink: "https://meet.google.com/xyz-uvw-rst", Status: model.InterviewStatusScheduled,
			Result: model.InterviewResultPending,
		},
		{
			ID: "iv-4", ApplicationID: "a-11", At: at(-10), Mode: model.InterviewModeOffline,
			Location: "TechCorp Campus", Status: model.InterviewStatusCompleted,
			Feedback: "Strong fundamentals.", Result: model.InterviewResultSelected,
		},
		{
			ID: "iv-5", ApplicationID: "a-5", At: at(-16), Mode: model.InterviewModeOnline,
			Status: model.InterviewStatusCompleted, Result: model.InterviewResultSelected,
		},
	}

	return &Catalog{
		internships:  internships,
		applications: applications,
		interviews:   interviews,
		directory:    model.Directory{Students: 150, Recruiters: 18},
	}
}

func (c *Catalog) ListInternships(context.Context) ([]*model.Internship, error) {
	return c.internships, nil
}

func (c *Catalog) ListApplications(context.Context) ([]*model.Application, error) {
	return c.applications, nil
}

func (c *Catalog) ListInterviews(context.Context) ([]*model.Interview, error) {
	return c.interviews, nil
}

func (c *Catalog) Directory(context.Context) (model.Directory, error) {
	return c.directory, nil
}
