package assets

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssetFunc(t *testing.T) {
	asset := Funcs(Options{})["asset"].(func(string) string)
	assert.Equal(t, "/static/css/app.css", asset("css/app.css"))
	assert.Equal(t, "/static/css/app.css", asset("/css/app.css"))

	custom := Funcs(Options{Prefix: "/assets"})["asset"].(func(string) string)
	assert.Equal(t, "/assets/app.js", custom("app.js"))
}

func TestCriticalCSSFunc(t *testing.T) {
	empty := Funcs(Options{})["criticalCSS"].(func() template.CSS)
	assert.Empty(t, empty())

	css := Funcs(Options{CriticalCSS: func() string { return "body{margin:0}" }})["criticalCSS"].(func() template.CSS)
	assert.Equal(t, template.CSS("body{margin:0}"), css())
}
