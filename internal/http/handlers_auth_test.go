package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/cipms/internal/adapters/devauth"
	domainauth "github.com/target/cipms/internal/domain/auth"
)

func TestLogin_FailureKeepsEmailAndRole(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})

	rec := env.do(t, testRequest{
		Method: http.MethodPost,
		Path:   "/login",
		Body:   loginForm(devauth.DemoStudentEmail, "s3cret-pw", "faculty"),
		CType:  "application/x-www-form-urlencoded",
		Accept: acceptHTML,
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Invalid credentials. Please try again.")
	assert.Contains(t, body, `value="student@example.com"`)
	assert.Contains(t, body, `<option value="faculty" selected>`)
	assert.NotContains(t, body, "s3cret-pw")
	assert.False(t, env.Store.Has("cipms_user:"+testClientID))
}

func TestLogin_UnknownEmailSameMessage(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})

	rec := env.loginBrowser(t, "nobody@example.com", "student")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials. Please try again.")
}

func TestLogin_PasswordRequired(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})

	rec := env.do(t, testRequest{
		Method: http.MethodPost,
		Path:   "/login",
		Body:   loginForm(devauth.DemoStudentEmail, "", "student"),
		CType:  "application/x-www-form-urlencoded",
		Accept: acceptHTML,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgPasswordRequired)
}

func TestLogin_JSON(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})

	rec := env.do(t, testRequest{
		Method: http.MethodPost,
		Path:   "/login",
		Body:   `{"email":"recruiter@example.com","password":"pw","role":"recruiter"}`,
		CType:  "application/json",
		Accept: acceptJSON,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var got statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Authenticated)
	assert.Equal(t, "permit", got.Decision)
	assert.Equal(t, "recruiter", got.Dashboard)
	require.NotNil(t, got.User)
	assert.Equal(t, "Mike Wilson", got.User.Name)
	assert.Equal(t, "Recruiter", got.User.RoleLabel)
	require.Len(t, got.Menu, 7)
	assert.Equal(t, "/dashboard", got.Menu[0].Target)
}

func TestLogin_JSONFailure(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})

	rec := env.do(t, testRequest{
		Method: http.MethodPost,
		Path:   "/login",
		Body:   `{"email":"recruiter@example.com","password":"pw","role":"student"}`,
		CType:  "application/json",
		Accept: acceptJSON,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_credentials","message":"Invalid credentials. Please try again."}`, rec.Body.String())
}

func TestLogin_MalformedJSON(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})

	rec := env.do(t, testRequest{
		Method: http.MethodPost,
		Path:   "/login",
		Body:   `{"email":`,
		CType:  "application/json",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")
}

func TestShowLogin_DoesNotRedirectWhenAuthenticated(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	require.Equal(t, http.StatusSeeOther, env.loginBrowser(t, devauth.DemoStudentEmail, "student").Code)

	rec := env.do(t, testRequest{Path: "/login", Accept: acceptHTML})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/login"`)
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	waitClientReady(t, env, testClientID)

	rec := env.do(t, testRequest{Path: "/auth/status"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":false,"transitioning":false,"decision":"redirect_to_login"}`, rec.Body.String())

	require.Equal(t, http.StatusSeeOther, env.loginBrowser(t, devauth.DemoPlacementEmail, "placement_cell").Code)

	rec = env.do(t, testRequest{Path: "/auth/status"})
	var got statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Authenticated)
	assert.Equal(t, "placement-cell", got.Dashboard)
	assert.Len(t, got.Menu, 8)
}

func TestLogout_JSONIsIdempotent(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})

	for i := 0; i < 2; i++ {
		rec := env.do(t, testRequest{Method: http.MethodPost, Path: "/logout", Accept: acceptJSON})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"signed_out"}`, rec.Body.String())
	}
}

func TestLoginFailureStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, loginFailureStatus(domainauth.ErrTransitionInProgress))
	assert.Equal(t, http.StatusConflict, loginFailureStatus(fmt.Errorf("login: %w", domainauth.ErrLoginSuperseded)))
	assert.Equal(t, http.StatusUnauthorized, loginFailureStatus(domainauth.ErrCredentialMismatch))

	code, msg := loginFailureMessage(http.StatusConflict)
	assert.Equal(t, "transition_in_progress", code)
	assert.Equal(t, msgTransitionRunning, msg)

	code, _ = loginFailureMessage(http.StatusInternalServerError)
	assert.Equal(t, "login_unavailable", code)
}
