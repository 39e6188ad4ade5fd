package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	cipms "github.com/target/cipms"
	"github.com/target/cipms/internal/domain/nav"
	"github.com/target/cipms/internal/http/ui/viewmodel"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Sessions  SessionProvider
	Dashboard DashboardProvider
	// Sections backs the menu section pages; nil uses Dashboard when it also
	// implements SectionProvider.
	Sections SectionProvider
	// GateWait bounds how long protected pages wait for a restoring session.
	GateWait     time.Duration
	CookieDomain string
	CookieSecure bool
	// LoginLimiter throttles POST /login per client IP (optional).
	LoginLimiter *RateLimiter
	DemoLogins   []viewmodel.DemoLogin
	// TemplateFS overrides the template source (tests); nil picks disk or embedded by IsDev.
	TemplateFS fs.FS
	IsDev      bool
	Now        func() time.Time
	Logger     *slog.Logger
}

// NewRouter creates and configures the HTTP router with browser middleware.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Sessions == nil {
		return nil, errors.New("router requires a session provider")
	}
	if services.Dashboard == nil {
		return nil, errors.New("router requires a dashboard provider")
	}

	tr, err := newRenderer(services)
	if err != nil {
		return nil, fmt.Errorf("create template renderer: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", healthHandler(services.Sessions))
	mux.Handle("HEAD /healthz", healthHandler(services.Sessions))
	mux.Handle("GET /static/", staticHandler(services.IsDev))

	authHandlers := &AuthHandlers{
		T:          tr,
		Wait:       services.GateWait,
		DemoLogins: services.DemoLogins,
		Logger:     services.Logger,
	}
	registerAuthRoutes(mux, authHandlers, services)

	sections := services.Sections
	if sections == nil {
		sections, _ = services.Dashboard.(SectionProvider)
	}
	uiHandlers := &UIHandlers{T: tr, Dashboard: services.Dashboard, Sections: sections, Logger: services.Logger}
	registerUIRoutes(mux, uiHandlers, GateOptions{
		Sessions: services.Sessions,
		Wait:     services.GateWait,
		Renderer: tr,
		Logger:   services.Logger,
	})

	handler := &notFoundHandler{mux: mux, uiHandlers: uiHandlers}
	clientID := ClientID(ClientIDOptions{CookieDomain: services.CookieDomain, Secure: services.CookieSecure})
	return BrowserDetection()(clientID(handler)), nil
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, services RouterServices) {
	withSession := ClientSession(services.Sessions)
	login := withSession(http.HandlerFunc(h.Login))
	if services.LoginLimiter != nil {
		login = services.LoginLimiter.Middleware()(login)
	}

	mux.Handle("GET "+nav.RouteLogin, http.HandlerFunc(h.ShowLogin))
	mux.Handle("POST "+nav.RouteLogin, login)
	mux.Handle("POST /logout", withSession(http.HandlerFunc(h.Logout)))
	mux.Handle("GET /auth/status", withSession(http.HandlerFunc(h.Status)))
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, gate GateOptions) {
	protect := RequireSession(gate)

	mux.Handle("GET "+nav.RouteDashboard, protect(http.HandlerFunc(h.ShowDashboard)))
	for _, target := range nav.Targets() {
		if target == nav.RouteDashboard {
			continue
		}
		mux.Handle("GET "+target, protect(http.HandlerFunc(h.Section)))
	}
	mux.Handle("GET /{$}", http.RedirectHandler(nav.RouteDashboard, http.StatusSeeOther))
}

// newRenderer picks the template source: explicit FS, disk in dev mode, embedded otherwise.
func newRenderer(services RouterServices) (*TemplateRenderer, error) {
	templateFS := services.TemplateFS
	var criticalCSSFS fs.FS
	switch {
	case templateFS != nil:
	case services.IsDev:
		templateFS = os.DirFS(TemplatePathFromRoot)
		criticalCSSFS = os.DirFS("frontend/static")
	default:
		templateFS, criticalCSSFS = embeddedFS(services.Logger)
	}

	return NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS:    templateFS,
		CriticalCSSFS: criticalCSSFS,
		DevMode:       services.IsDev,
		Logger:        services.Logger,
		Now:           services.Now,
	})
}

func embeddedFS(logger *slog.Logger) (fs.FS, fs.FS) {
	if logger == nil {
		logger = slog.Default()
	}
	templateFS, err := fs.Sub(cipms.TemplateFS, "frontend/templates")
	if err != nil {
		logger.Warn("failed to create sub-filesystem for templates; falling back to disk", "error", err)
		templateFS = os.DirFS(TemplatePathFromRoot)
	}
	staticFS, err := fs.Sub(cipms.StaticFS, "frontend/static")
	if err != nil {
		logger.Warn("failed to create sub-filesystem for static assets", "error", err)
		return templateFS, nil
	}
	return templateFS, staticFS
}

// staticHandler serves /static/* from disk in dev mode and from the embedded FS otherwise.
func staticHandler(isDev bool) http.Handler {
	if isDev {
		return staticWithCacheHeaders(isDev, http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))))
	}

	staticSub, err := fs.Sub(cipms.StaticFS, "frontend/static")
	if err != nil {
		return staticWithCacheHeaders(isDev, http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))))
	}
	return staticWithCacheHeaders(isDev, http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
}

// staticWithCacheHeaders adds cache headers: short-lived in production, none in dev.
func staticWithCacheHeaders(isDev bool, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter(w)
	h.mux.ServeHTTP(cw, r)

	if cw.status == http.StatusNotFound {
		// For missing static assets, preserve the default file server response
		if strings.HasPrefix(r.URL.Path, "/static/") || h.uiHandlers == nil {
			cw.flushTo(w)
			return
		}
		h.uiHandlers.NotFound(w, r)
		return
	}

	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	rw     http.ResponseWriter
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{rw: w, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		return
	}
}
