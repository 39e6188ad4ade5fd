package core

import (
	"html/template"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/cipms/internal/domain/nav"
)

func TestFormatNumberTemplate(t *testing.T) {
	assert.Equal(t, "0", formatNumberTemplate(0))
	assert.Equal(t, "999", formatNumberTemplate(999))
	assert.Equal(t, "1,000", formatNumberTemplate(1000))
	assert.Equal(t, "-12,345", formatNumberTemplate(int64(-12345)))
	assert.Equal(t, "1,234,567", formatNumberTemplate(int32(1234567)))
	assert.Equal(t, "abc", formatNumberTemplate("abc"))
}

func TestFormatStipend(t *testing.T) {
	amount := 15000
	zero := 0
	assert.Equal(t, "₹15,000/month", formatStipend(&amount))
	assert.Equal(t, "Unpaid", formatStipend(&zero))
	assert.Equal(t, "Unpaid", formatStipend(nil))
}

func TestStatusClassAndHumanize(t *testing.T) {
	assert.Equal(t, "badge-success", statusClass("selected"))
	assert.Equal(t, "badge-info", statusClass("interview_scheduled"))
	assert.Equal(t, "badge-light", statusClass("mystery"))
	assert.Equal(t, "Interview scheduled", humanize("interview_scheduled"))
	assert.Empty(t, humanize(""))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "hello", TruncateText("hello", 10))
	assert.Equal(t, "hel…", TruncateText("hello", 4))
	assert.Equal(t, "hello", TruncateText("hello", "x"))
}

func TestRenderFuncs(t *testing.T) {
	var tmpl *template.Template
	funcs := Funcs(Deps{
		Template:             &tmpl,
		ContentTemplateFor:   func(string) string { return "section-content" },
		DashboardTemplateFor: func(d nav.Dashboard) string { return "dash-" + d.String() },
		Now:                  func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) },
	})

	var err error
	tmpl, err = template.New("root").Funcs(funcs).Parse(
		`{{define "section-content"}}<p>{{.}}</p>{{end}}` +
			`{{define "dash-student"}}<b>{{.}}</b>{{end}}`)
	require.NoError(t, err)

	renderSection := funcs["renderSection"].(func(string, any) (template.HTML, error))
	out, err := renderSection("anything", "<x>")
	require.NoError(t, err)
	assert.Equal(t, template.HTML("<p>&lt;x&gt;</p>"), out)

	renderDashboard := funcs["renderDashboard"].(func(nav.Dashboard, any) (template.HTML, error))
	out, err = renderDashboard(nav.DashboardStudent, "hi")
	require.NoError(t, err)
	assert.Equal(t, template.HTML("<b>hi</b>"), out)

	relative := funcs["relativeTime"].(func(time.Time) string)
	assert.Equal(t, "in 2 days", relative(time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)))
}

func TestRenderSection_NotInitialized(t *testing.T) {
	funcs := Funcs(Deps{ContentTemplateFor: func(string) string { return "x" }})
	renderSection := funcs["renderSection"].(func(string, any) (template.HTML, error))
	_, err := renderSection("x", nil)
	assert.Error(t, err)
}

func TestDict(t *testing.T) {
	m, err := dict("Title", "Openings", "Items", []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "Openings", m["Title"])
	assert.Equal(t, []int{1, 2}, m["Items"])

	_, err = dict("odd")
	assert.Error(t, err)
	_, err = dict(1, "x")
	assert.Error(t, err)
}
