// Package assets provides template helpers for static asset URLs and inline critical CSS.
package assets

import (
	"html/template"
	"strings"
)

// DefaultPrefix is the URL prefix static files are served under.
const DefaultPrefix = "/static/"

// Options configures asset-related template helpers.
type Options struct {
	Prefix      string
	CriticalCSS func() string
}

// Funcs returns template helpers for asset resolution and critical CSS embedding.
func Funcs(opts Options) template.FuncMap {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	funcs := template.FuncMap{
		"asset": func(logicalName string) string {
			return prefix + strings.TrimPrefix(logicalName, "/")
		},
	}

	funcs["criticalCSS"] = func() template.CSS {
		if opts.CriticalCSS == nil {
			return ""
		}
		// #nosec G203 - Critical CSS is loaded from our own embedded static files
		return template.CSS(opts.CriticalCSS())
	}

	return funcs
}
