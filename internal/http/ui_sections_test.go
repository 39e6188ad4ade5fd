package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/cipms/internal/adapters/devauth"
	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/service"
)

// failingSections fails every catalog-backed listing.
type failingSections struct {
	err error
}

func (f failingSections) OpenInternships(context.Context, string) ([]service.Listing, error) {
	return nil, f.err
}

func (f failingSections) ManagedInternships(context.Context, domainauth.Identity) ([]service.Listing, error) {
	return nil, f.err
}

func (f failingSections) Applications(context.Context, domainauth.Identity) (service.ApplicationList, error) {
	return service.ApplicationList{}, f.err
}

func (f failingSections) PendingApprovals(context.Context, domainauth.Identity) (service.ApplicationList, error) {
	return service.ApplicationList{}, f.err
}

func (f failingSections) Interviews(context.Context, domainauth.Identity) (service.InterviewList, error) {
	return service.InterviewList{}, f.err
}

func (f failingSections) Profile(domainauth.Identity) service.ProfileView {
	return service.ProfileView{Heading: "unused"}
}

func TestRouter_StudentSectionPages(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	require.Equal(t, http.StatusSeeOther, env.loginBrowser(t, devauth.DemoStudentEmail, "student").Code)

	tests := []struct {
		name string
		path string
		want []string
		not  []string
	}{
		{
			name: "open internships",
			path: "/internships",
			want: []string{"<h2>Open Internships</h2>", "5 postings found", `data-internship="i-5"`, "Closing Soon", `name="q"`},
			not:  []string{`data-internship="i-3"`, `data-internship="i-7"`},
		},
		{
			name: "internship search",
			path: "/internships?q=python",
			want: []string{"2 postings found", "Data Science Intern", "Machine Learning Intern", `value="python"`},
			not:  []string{"Software Development Intern"},
		},
		{
			name: "own applications",
			path: "/applications",
			want: []string{`data-application="a-2"`, `data-application="a-7"`, "Interview scheduled"},
			not:  []string{`data-application="a-9"`, "<th>Applicant</th>"},
		},
		{
			name: "own interviews",
			path: "/interviews",
			want: []string{`data-interview="iv-1"`, `data-interview="iv-5"`, "Join meeting", "Block A, Room 301"},
			not:  []string{`data-interview="iv-3"`},
		},
		{
			name: "student profile",
			path: "/profile",
			want: []string{"<h2>John Doe</h2>", "CS2021001", "Computer Science", "8.50", "JavaScript"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, testRequest{Path: tt.path, Accept: acceptHTML})
			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			for _, want := range tt.want {
				assert.Contains(t, body, want)
			}
			for _, not := range tt.not {
				assert.NotContains(t, body, not)
			}
			assert.NotContains(t, body, "not available yet")
		})
	}
}

func TestRouter_RecruiterSectionPages(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	require.Equal(t, http.StatusSeeOther, env.loginBrowser(t, devauth.DemoRecruiterEmail, "recruiter").Code)

	rec := env.do(t, testRequest{Path: "/recruiter/profile", Accept: acceptHTML})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ContainsAll(rec.Body.String(), []string{"TechCorp Solutions", "HR Manager", `href="https://techcorp.com"`}))

	rec = env.do(t, testRequest{Path: "/recruiter/candidates", Accept: acceptHTML})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<th>Applicant</th>")
	assert.Contains(t, body, `data-application="a-12"`)
	assert.NotContains(t, body, `data-application="a-2"`)

	rec = env.do(t, testRequest{Path: "/post-jobs", Accept: acceptHTML})
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "Your Job Postings")
	assert.Equal(t, 3, strings.Count(body, "data-internship="))
	assert.Contains(t, body, "Closed")

	rec = env.do(t, testRequest{Path: "/profile", Accept: acceptHTML})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRouter_FacultyApprovals(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	require.Equal(t, http.StatusSeeOther, env.loginBrowser(t, devauth.DemoFacultyEmail, "faculty").Code)

	rec := env.do(t, testRequest{Path: "/approvals", Accept: acceptHTML})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h2>Pending Approvals</h2>")
	assert.Equal(t, 4, strings.Count(body, "data-application="))
}

func TestRouter_PlacementManageJobs(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	require.Equal(t, http.StatusSeeOther, env.loginBrowser(t, devauth.DemoPlacementEmail, "placement_cell").Code)

	rec := env.do(t, testRequest{Path: "/manage-jobs", Accept: acceptHTML})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, strings.Count(rec.Body.String(), "data-internship="))

	rec = env.do(t, testRequest{Path: "/interviews", Accept: acceptHTML})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, strings.Count(rec.Body.String(), "data-interview="))
}

func TestUIHandlers_SectionError(t *testing.T) {
	h := &UIHandlers{
		T:        RequireTemplateRenderer(t),
		Sections: failingSections{err: errors.New("catalog offline")},
		Logger:   discardLogger(),
	}
	student := &domainauth.Student{Profile: domainauth.Profile{ID: "1", Email: "s@example.com"}}

	rec := httptest.NewRecorder()
	h.Section(rec, dashboardRequest(student, "/interviews"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), errMsgSectionUnavailable)
	assert.NotContains(t, rec.Body.String(), "catalog offline")
}

func TestUIHandlers_SectionWithoutProviderShowsPlaceholder(t *testing.T) {
	h := &UIHandlers{T: RequireTemplateRenderer(t), Logger: discardLogger()}
	student := &domainauth.Student{Profile: domainauth.Profile{ID: "1", Email: "s@example.com"}}

	rec := httptest.NewRecorder()
	h.Section(rec, dashboardRequest(student, "/internships"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h2>Internships</h2>")
}

func TestContentTemplateFor_SectionPages(t *testing.T) {
	assert.Equal(t, "internships-content", ContentTemplateFor(PageInternships))
	assert.Equal(t, "applications-content", ContentTemplateFor(PageApplications))
	assert.Equal(t, "interviews-content", ContentTemplateFor(PageInterviews))
	assert.Equal(t, "profile-content", ContentTemplateFor(PageProfile))
}
