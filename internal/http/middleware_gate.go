package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/domain/nav"
	"github.com/target/cipms/internal/http/ui/viewmodel"
	"github.com/target/cipms/internal/service"
)

// SessionProvider hands out the session store for a browser client.
type SessionProvider interface {
	Get(ctx context.Context, clientID string) *service.SessionService
}

// GateOptions configures RequireSession.
type GateOptions struct {
	Sessions SessionProvider
	// Wait bounds how long a request blocks for a transitioning session to settle.
	Wait     time.Duration
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

// ClientSession attaches the client's session store to the request context
// without gating. ClientID must run first.
func ClientSession(sessions SessionProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess := sessionForRequest(r, sessions); sess != nil {
				r = r.WithContext(SetSessionInContext(r.Context(), sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession is the access gate for protected views.
// Pending renders a loading page (browser) or 202 JSON (API);
// RedirectToLogin sends browsers to /login and API clients a 401.
func RequireSession(opts GateOptions) func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessionForRequest(r, opts.Sessions)
			if sess == nil {
				logger.ErrorContext(r.Context(), "no session store for request", "path", r.URL.Path)
				WriteError(w, ErrorParams{
					Code:    http.StatusInternalServerError,
					ErrCode: "session_unavailable",
					Err:     errors.New("session unavailable"),
				})
				return
			}

			st := awaitSettled(r.Context(), sess, opts.Wait)
			switch domainauth.Authorize(st) {
			case domainauth.DecisionPermit:
				ctx := SetSessionInContext(r.Context(), sess)
				ctx = SetIdentityInContext(ctx, st.Identity)
				next.ServeHTTP(w, r.WithContext(ctx))
			case domainauth.DecisionRedirectToLogin:
				if IsBrowserRequest(r) {
					http.Redirect(w, r, nav.RouteLogin, http.StatusSeeOther)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
			default:
				writePending(w, r, opts.Renderer)
			}
		})
	}
}

func sessionForRequest(r *http.Request, sessions SessionProvider) *service.SessionService {
	if sess, ok := GetSessionFromContext(r.Context()); ok {
		return sess
	}
	if sessions == nil {
		return nil
	}
	clientID, ok := GetClientIDFromContext(r.Context())
	if !ok {
		return nil
	}
	return sessions.Get(r.Context(), clientID)
}

// awaitSettled waits up to wait for the initial restore to finish, then snapshots the state.
func awaitSettled(ctx context.Context, sess *service.SessionService, wait time.Duration) domainauth.State {
	st := sess.State()
	if !st.Transitioning || wait <= 0 {
		return st
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-sess.Ready():
	case <-timer.C:
	case <-ctx.Done():
	}
	return sess.State()
}

func writePending(w http.ResponseWriter, r *http.Request, renderer *TemplateRenderer) {
	w.Header().Set("Cache-Control", "no-store")
	if !IsBrowserRequest(r) || renderer == nil {
		w.Header().Set("Retry-After", "1")
		WriteJSON(w, http.StatusAccepted, map[string]string{"status": "loading"})
		return
	}

	w.Header().Set("Refresh", "1")
	page := viewmodel.LoadingPage{
		Layout: viewmodel.Layout{Title: "Loading", CurrentPage: PageLoading},
	}
	if err := renderer.RenderPage(w, RenderParams{Status: http.StatusOK, Template: "loading-page", Data: page}); err != nil {
		http.Error(w, "Loading...", http.StatusServiceUnavailable)
	}
}
