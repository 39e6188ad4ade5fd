package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	assetfuncs "github.com/target/cipms/internal/http/templates/assets"
	corefuncs "github.com/target/cipms/internal/http/templates/core"
)

const fallbackCriticalCSS = ":root{--color-background:#f6f7f9;--color-surface:#fff;--color-text-primary:#2e3138;}"

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	t             *template.Template
	criticalCSSFS fs.FS        // For hot reloading in dev mode
	criticalCSS   string       // Cached for production mode
	devMode       bool         // Whether to reload CSS on each request
	logger        *slog.Logger // For logging template errors
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS    fs.FS            // Filesystem containing templates (required)
	CriticalCSSFS fs.FS            // Filesystem containing css/critical.css (optional)
	DevMode       bool             // Enable hot reloading of critical CSS
	Logger        *slog.Logger     // Logger for template errors (optional)
	Now           func() time.Time // Clock for relative dates (optional)
}

// RenderParams describes a single page render.
type RenderParams struct {
	Status   int
	Template string
	Data     any
}

// NewTemplateRenderer constructs a renderer by parsing templates from the provided config.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer := &TemplateRenderer{
		criticalCSSFS: cfg.CriticalCSSFS,
		devMode:       cfg.DevMode,
		logger:        logger,
	}
	if cfg.CriticalCSSFS != nil && !cfg.DevMode {
		renderer.criticalCSS = renderer.readCriticalCSS()
	}

	var t *template.Template
	funcs := createTemplateFuncs(&t, renderer, cfg.Now)
	var err error
	t, err = template.New("root").Funcs(funcs).ParseFS(cfg.TemplateFS,
		"*.tmpl",
		"pages/*.tmpl",
	)
	if err != nil {
		logger.Error("template parsing failed",
			slog.Any("error", err),
			slog.String("phase", "initialization"),
		)
		return nil, err
	}
	renderer.t = t
	return renderer, nil
}

func (r *TemplateRenderer) readCriticalCSS() string {
	cssBytes, err := fs.ReadFile(r.criticalCSSFS, "css/critical.css")
	if err != nil {
		r.logger.Warn("failed to load critical CSS", slog.Any("error", err))
		return fallbackCriticalCSS
	}
	return string(cssBytes)
}

// getCriticalCSS returns the critical CSS, reloading from disk in dev mode.
func (r *TemplateRenderer) getCriticalCSS() string {
	if r.devMode && r.criticalCSSFS != nil {
		return r.readCriticalCSS()
	}
	return r.criticalCSS
}

// RenderFull renders the full page (layout + page content).
func (r *TemplateRenderer) RenderFull(w http.ResponseWriter, status int, data any) error {
	return r.RenderPage(w, RenderParams{Status: status, Template: "layout", Data: data})
}

// RenderPage executes the named template into a buffer and writes it with the given status.
// Nothing is written to w when execution fails.
func (r *TemplateRenderer) RenderPage(w http.ResponseWriter, p RenderParams) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, p.Template, p.Data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("template", p.Template),
			slog.Any("error", err),
		)
		return err
	}

	status := p.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error("failed to write rendered template",
			slog.String("template", p.Template),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

func createTemplateFuncs(t **template.Template, renderer *TemplateRenderer, now func() time.Time) template.FuncMap {
	funcs := template.FuncMap{}

	mergeTemplateFuncs(funcs,
		corefuncs.Funcs(corefuncs.Deps{
			Template:             t,
			ContentTemplateFor:   ContentTemplateFor,
			DashboardTemplateFor: DashboardTemplateFor,
			Now:                  now,
		}),
		assetfuncs.Funcs(assetfuncs.Options{
			CriticalCSS: renderer.getCriticalCSS,
		}),
	)

	return funcs
}

func mergeTemplateFuncs(dst template.FuncMap, sources ...template.FuncMap) {
	for _, src := range sources {
		for key, val := range src {
			dst[key] = val
		}
	}
}
