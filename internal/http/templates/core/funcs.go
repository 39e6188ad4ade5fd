// Package core provides the template helpers shared by every page.
package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/target/cipms/internal/domain/nav"
	"github.com/target/cipms/internal/http/uiutil"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template             **template.Template
	ContentTemplateFor   func(string) string
	DashboardTemplateFor func(nav.Dashboard) string
	Now                  func() time.Time
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	funcs := template.FuncMap{
		"sectionTmpl":   deps.ContentTemplateFor,
		"dashboardTmpl": deps.DashboardTemplateFor,
		"friendlyTime":  createFriendlyTimeFunc(),
		"friendlyDate":  createFriendlyDateFunc(),
		"relativeTime":  func(t time.Time) string { return uiutil.FriendlyRelativeTime(t, now()) },
		"add":           func(a, b int) int { return a + b },
		"contains":      strings.Contains,
		"join":          strings.Join,
		"formatNumber":  formatNumberTemplate,
		"stipend":       formatStipend,
		"statusClass":   statusClass,
		"humanize":      humanize,
		"truncateText":  TruncateText,
		"dict":          dict,
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	execute := func(name string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, name, data); err != nil {
			return "", err
		}
		// #nosec G203 - rendered by our own html/template set; values were escaped during ExecuteTemplate.
		return template.HTML(buf.String()), nil
	}

	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		return execute(deps.ContentTemplateFor(page), data)
	}
	funcs["renderDashboard"] = func(d nav.Dashboard, data any) (template.HTML, error) {
		if deps.DashboardTemplateFor == nil {
			return "", errors.New("dashboard templates not configured")
		}
		return execute(deps.DashboardTemplateFor(d), data)
	}

	funcs["toJSON"] = func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func toTime(ts any) time.Time {
	switch v := ts.(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	}
	return time.Time{}
}

func createFriendlyTimeFunc() func(any) string {
	return func(ts any) string {
		return uiutil.FormatFriendlyDateTime(toTime(ts))
	}
}

func createFriendlyDateFunc() func(any) string {
	return func(ts any) string {
		return uiutil.FormatFriendlyDate(toTime(ts))
	}
}

// formatNumberTemplate formats signed integers with comma separators for thousands.
func formatNumberTemplate(v any) string {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case int32:
		n = int64(x)
	default:
		return fmt.Sprint(v)
	}

	neg := n < 0
	var s string
	if neg {
		s = strconv.FormatUint(uint64(-n), 10)
	} else {
		s = strconv.FormatUint(uint64(n), 10)
	}
	if len(s) > 3 {
		s = withCommas(s)
	}
	if neg {
		return "-" + s
	}
	return s
}

func withCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s) + (len(s)-1)/3)

	prefix := len(s) % 3
	if prefix == 0 {
		prefix = 3
	}
	b.WriteString(s[:prefix])
	for i := prefix; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// formatStipend renders a monthly stipend in rupees, or "Unpaid" when absent.
func formatStipend(amount *int) string {
	if amount == nil || *amount <= 0 {
		return "Unpaid"
	}
	return "₹" + formatNumberTemplate(*amount) + "/month"
}

func statusClass(status any) string {
	switch strings.ToLower(fmt.Sprint(status)) {
	case "selected", "approved", "completed":
		return "badge-success"
	case "rejected", "cancelled":
		return "badge-danger"
	case "interview_scheduled", "scheduled":
		return "badge-info"
	case "pending":
		return "badge-warning"
	default:
		return "badge-light"
	}
}

// humanize turns snake_case enum values into display text.
func humanize(v any) string {
	s := strings.ReplaceAll(fmt.Sprint(v), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// dict builds a map from alternating key/value arguments so templates can pass several values to a partial.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict requires an even number of arguments")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}

// TruncateText truncates a string to a maximum number of runes (not bytes).
// The maxLen parameter can be any numeric type for template flexibility.
func TruncateText(s string, maxLen any) string {
	var n int
	switch v := maxLen.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		n = int(v)
	default:
		return s
	}
	if n <= 0 {
		return s
	}
	return uiutil.TruncateWithEllipsis(s, n)
}
