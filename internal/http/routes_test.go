package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/cipms/internal/adapters/devauth"
	"github.com/target/cipms/internal/service"
)

const (
	acceptHTML = "text/html,application/xhtml+xml"
	acceptJSON = "application/json"
)

type testRequest struct {
	Method string
	Path   string
	Body   string
	CType  string
	Accept string
	Client string
}

func (e *testEnv) do(t *testing.T, tr testRequest) *httptest.ResponseRecorder {
	t.Helper()
	if tr.Method == "" {
		tr.Method = http.MethodGet
	}
	var body *strings.Reader
	if tr.Body != "" {
		body = strings.NewReader(tr.Body)
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(tr.Method, tr.Path, body)
	if tr.CType != "" {
		req.Header.Set("Content-Type", tr.CType)
	}
	if tr.Accept != "" {
		req.Header.Set("Accept", tr.Accept)
	}
	client := tr.Client
	if client == "" {
		client = testClientID
	}
	req.AddCookie(&http.Cookie{Name: ClientCookieName, Value: client})

	rec := httptest.NewRecorder()
	e.Handler.ServeHTTP(rec, req)
	return rec
}

func loginForm(email, password, role string) string {
	v := url.Values{}
	v.Set("email", email)
	v.Set("password", password)
	v.Set("role", role)
	return v.Encode()
}

func (e *testEnv) loginBrowser(t *testing.T, email, role string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, testRequest{
		Method: http.MethodPost,
		Path:   "/login",
		Body:   loginForm(email, "any-password", role),
		CType:  "application/x-www-form-urlencoded",
		Accept: acceptHTML,
	})
}

func TestRouter_BrowserSessionLifecycle(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})

	rec := env.do(t, testRequest{Path: "/dashboard", Accept: acceptHTML})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = env.loginBrowser(t, devauth.DemoStudentEmail, "student")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.True(t, env.Store.Has(service.DefaultClientKeyPrefix+testClientID))

	rec = env.do(t, testRequest{Path: "/dashboard", Accept: acceptHTML})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, ContainsAll(body, []string{
		"Welcome, John",
		"John Doe",
		`data-role="student"`,
		`data-dashboard="student"`,
		"Total Applications",
		"Offers Received",
		"Full Stack Developer Intern",
		`href="/applications"`,
	}), body)
	assert.NotContains(t, body, `href="/approvals"`)

	rec = env.do(t, testRequest{Method: http.MethodPost, Path: "/logout", Accept: acceptHTML})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.False(t, env.Store.Has(service.DefaultClientKeyPrefix+testClientID))

	rec = env.do(t, testRequest{Path: "/dashboard", Accept: acceptHTML})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRouter_DashboardPerRole(t *testing.T) {
	tests := []struct {
		email  string
		role   string
		expect []string
	}{
		{devauth.DemoFacultyEmail, "faculty", []string{`data-dashboard="faculty"`, "Pending Approvals", "150", `href="/approvals"`}},
		{devauth.DemoPlacementEmail, "placement_cell", []string{`data-dashboard="placement-cell"`, "Placed Students", "Active Recruiters", `href="/placement/post-job"`}},
		{devauth.DemoRecruiterEmail, "recruiter", []string{`data-dashboard="recruiter"`, "Active Job Postings", "Graduate Engineer Trainee", "Company Profile"}},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			env := newTestEnv(t, testEnvOptions{})
			require.Equal(t, http.StatusSeeOther, env.loginBrowser(t, tt.email, tt.role).Code)

			rec := env.do(t, testRequest{Path: "/dashboard", Accept: acceptHTML})
			require.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, ContainsAll(rec.Body.String(), tt.expect), rec.Body.String())
		})
	}
}

func TestRouter_UnrecognizedRoleDashboard(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	env.Store.Put(service.DefaultClientKeyPrefix+testClientID,
		[]byte(`{"id":"9","email":"alum@example.com","firstName":"Ada","role":"alumni"}`))

	rec := env.do(t, testRequest{Path: "/dashboard", Accept: acceptHTML})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-dashboard="unrecognized"`)
	assert.Contains(t, body, "(alumni)")
	assert.NotContains(t, body, `class="menu-link`)
}

func TestRouter_RestoresAfterEviction(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	require.Equal(t, http.StatusSeeOther, env.loginBrowser(t, devauth.DemoFacultyEmail, "faculty").Code)

	env.Registry.Forget(testClientID)

	rec := env.do(t, testRequest{Path: "/dashboard", Accept: acceptHTML})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dr. Jane Smith")
}

func TestRouter_SectionPages(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	require.Equal(t, http.StatusSeeOther, env.loginBrowser(t, devauth.DemoStudentEmail, "student").Code)

	rec := env.do(t, testRequest{Path: "/applications", Accept: acceptHTML})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h2>My Applications</h2>")
	assert.Contains(t, rec.Body.String(), `class="menu-link active"`)

	rec = env.do(t, testRequest{Path: "/settings", Accept: acceptHTML})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h2>Settings</h2>")

	rec = env.do(t, testRequest{Path: "/approvals", Accept: acceptHTML})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestRouter_RootAndUnknownPaths(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})

	rec := env.do(t, testRequest{Path: "/", Accept: acceptHTML})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	rec = env.do(t, testRequest{Path: "/no/such/page", Accept: acceptHTML})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	rec = env.do(t, testRequest{Path: "/no/such/page", Accept: acceptJSON})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestRouter_PublicRoutes(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})

	rec := env.do(t, testRequest{Path: "/healthz"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = env.do(t, testRequest{Path: "/static/css/app.css"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".stat-card")

	rec = env.do(t, testRequest{Path: "/login", Accept: acceptHTML})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="password"`)
}

func TestRouter_APIGate(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	waitClientReady(t, env, testClientID)

	rec := env.do(t, testRequest{Path: "/dashboard", Accept: acceptJSON})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication_required")
}

func TestRouter_LoginRateLimited(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{Limiter: NewRateLimiter(1, 1)})

	first := env.loginBrowser(t, devauth.DemoStudentEmail, "faculty")
	assert.Equal(t, http.StatusUnauthorized, first.Code)

	second := env.loginBrowser(t, devauth.DemoStudentEmail, "student")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
}

func TestNewRouter_RequiresServices(t *testing.T) {
	_, err := NewRouter(RouterServices{})
	assert.Error(t, err)
}

func waitClientReady(t *testing.T, env *testEnv, clientID string) {
	t.Helper()
	sess := env.Registry.Get(context.Background(), clientID)
	select {
	case <-sess.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not finish restoring")
	}
}
