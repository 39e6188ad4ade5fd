package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/domain/nav"
	"github.com/target/cipms/internal/http/ui/viewmodel"
	"github.com/target/cipms/internal/service"
)

const (
	msgPasswordRequired  = "Please enter your password."
	msgTransitionRunning = "A sign-in is already in progress. Please wait a moment."
	msgLoginUnavailable  = "Sign-in is temporarily unavailable. Please try again later."
	maxLoginBodyBytes    = 16 << 10
)

// AuthHandlers provides HTTP handlers for the login, logout and status endpoints.
// ClientSession must run before them so the client's session is on the context.
type AuthHandlers struct {
	T *TemplateRenderer
	// Wait bounds how long a login waits for the initial restore to finish.
	Wait time.Duration
	// DemoLogins are listed under the form; empty hides the hint.
	DemoLogins []viewmodel.DemoLogin
	Logger     *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ShowLogin renders the login form.
// GET /login. An authenticated session still sees the form.
func (h *AuthHandlers) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, http.StatusOK, loginRequest{Role: string(domainauth.RoleStudent)}, "")
}

// Login authenticates the submitted credentials.
// POST /login with a form body (browser) or JSON body (API).
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		h.writeLoginFailure(w, r, loginRequest{}, http.StatusInternalServerError, errors.New("session unavailable"))
		return
	}

	req, ok := readLoginRequest(w, r)
	if !ok {
		return
	}

	awaitSettled(r.Context(), sess, h.Wait)
	id, err := sess.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domainauth.Role(strings.TrimSpace(req.Role)),
	})
	if err != nil {
		h.writeLoginFailure(w, r, req, loginFailureStatus(err), err)
		return
	}

	h.logger().InfoContext(r.Context(), "login succeeded", "role", string(id.Role()))
	if IsBrowserRequest(r) {
		http.Redirect(w, r, nav.RouteDashboard, http.StatusSeeOther)
		return
	}
	WriteJSON(w, http.StatusOK, statusPayload(domainauth.State{Identity: id}))
}

// readLoginRequest parses a JSON or form body. On failure the error response is already written.
func readLoginRequest(w http.ResponseWriter, r *http.Request) (loginRequest, bool) {
	var req loginRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxLoginBodyBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return req, DecodeJSON(w, r, &req)
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return req, false
	}
	req.Email = r.PostFormValue("email")
	req.Password = r.PostFormValue("password")
	req.Role = r.PostFormValue("role")
	return req, true
}

func loginFailureStatus(err error) int {
	switch {
	case errors.Is(err, domainauth.ErrCredentialMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, domainauth.ErrPasswordRequired):
		return http.StatusBadRequest
	case errors.Is(err, domainauth.ErrTransitionInProgress), errors.Is(err, domainauth.ErrLoginSuperseded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func loginFailureMessage(status int) (code, msg string) {
	switch status {
	case http.StatusUnauthorized:
		return "invalid_credentials", invalidCredentialsMessage
	case http.StatusBadRequest:
		return "password_required", msgPasswordRequired
	case http.StatusConflict:
		return "transition_in_progress", msgTransitionRunning
	default:
		return "login_unavailable", msgLoginUnavailable
	}
}

// writeLoginFailure re-renders the form with email and role kept and the password cleared.
func (h *AuthHandlers) writeLoginFailure(w http.ResponseWriter, r *http.Request, req loginRequest, status int, err error) {
	if status == http.StatusInternalServerError {
		h.logger().ErrorContext(r.Context(), "login failed", "error", err)
	}
	code, msg := loginFailureMessage(status)
	if !IsBrowserRequest(r) {
		WriteJSON(w, status, map[string]string{"error": code, "message": msg})
		return
	}
	req.Password = ""
	h.renderLogin(w, status, req, msg)
}

func (h *AuthHandlers) renderLogin(w http.ResponseWriter, status int, req loginRequest, errMsg string) {
	page := viewmodel.LoginPage{
		Layout:      viewmodel.Layout{Title: "Sign in", CurrentPage: PageLogin},
		Email:       strings.TrimSpace(req.Email),
		Error:       errMsg,
		DemoHint:    len(h.DemoLogins) > 0,
		DemoLogins:  h.DemoLogins,
		SubmitLabel: "Sign In",
	}
	for _, role := range domainauth.KnownRoles() {
		page.Roles = append(page.Roles, viewmodel.RoleOption{
			Value:    string(role),
			Label:    role.Label(),
			Selected: string(role) == req.Role,
		})
	}

	if h.T == nil {
		WriteJSON(w, status, map[string]string{"error": errMsg})
		return
	}
	if err := h.T.RenderPage(w, RenderParams{Status: status, Template: "login-page", Data: page}); err != nil {
		http.Error(w, "failed to render login page", http.StatusInternalServerError)
	}
}

// Logout clears the client's session.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := GetSessionFromContext(r.Context()); ok {
		if err := sess.Logout(r.Context()); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}

	if IsBrowserRequest(r) {
		http.Redirect(w, r, nav.RouteLogin, http.StatusSeeOther)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// Status returns the current authentication state.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		WriteJSON(w, http.StatusOK, statusPayload(domainauth.State{}))
		return
	}
	WriteJSON(w, http.StatusOK, statusPayload(sess.State()))
}

type statusUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	RoleLabel string `json:"role_label"`
}

type statusMenuItem struct {
	Label  string `json:"label"`
	Target string `json:"target"`
	Icon   string `json:"icon"`
}

type statusResponse struct {
	Authenticated bool             `json:"authenticated"`
	Transitioning bool             `json:"transitioning"`
	Decision      string           `json:"decision"`
	User          *statusUser      `json:"user,omitempty"`
	Dashboard     string           `json:"dashboard,omitempty"`
	Menu          []statusMenuItem `json:"menu,omitempty"`
}

func statusPayload(st domainauth.State) statusResponse {
	resp := statusResponse{
		Authenticated: st.Authenticated(),
		Transitioning: st.Transitioning,
		Decision:      domainauth.Authorize(st).String(),
	}
	if st.Identity == nil {
		return resp
	}

	p := st.Identity.Base()
	role := st.Identity.Role()
	resp.User = &statusUser{
		ID:        p.ID,
		Email:     p.Email,
		Name:      domainauth.DisplayName(st.Identity),
		Role:      string(role),
		RoleLabel: role.Label(),
	}
	resp.Dashboard = nav.SelectDashboard(role).String()
	for _, item := range nav.SelectMenu(role) {
		resp.Menu = append(resp.Menu, statusMenuItem{Label: item.Label, Target: item.Target, Icon: item.Icon})
	}
	return resp
}
