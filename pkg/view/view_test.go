package view_test

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/kroobeet/engine/pkg/view"
)

var views = fstest.MapFS{
	"layout.html": {Data: []byte(`<title>{{block "title" .}}App{{end}}</title>{{template "content" .}}`)},
	"home.html":   {Data: []byte(`{{define "content"}}<p>Hello, {{.name}}</p>{{end}}`)},
	"dashboard.html": {Data: []byte(
		`{{define "title"}}{{.title}}{{end}}{{define "content"}}<a href="{{.link}}">{{upper .name}}</a>{{end}}`,
	)},
	"errors/403.html": {Data: []byte(`{{define "content"}}forbidden{{end}}`)},
	"broken.html":     {Data: []byte(`{{define "content"}}{{.name.missing.deep}}{{end}}`)},
	"invalid.html":    {Data: []byte(`{{define "content"}}{{if}}{{end}}`)},
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r := view.New(views, view.WithFuncs(map[string]any{
		"upper": func(s string) string { return s + "!" },
	}))

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "home", map[string]any{"name": "<b>bob</b>"}))
	require.Equal(t, `<title>App</title><p>Hello, &lt;b&gt;bob&lt;/b&gt;</p>`, buf.String())

	buf.Reset()
	require.NoError(t, r.Render(&buf, "dashboard", map[string]any{
		"title": "Dashboard",
		"name":  "alice",
		"link":  "/user/1",
	}))
	require.Equal(t, `<title>Dashboard</title><a href="/user/1">alice!</a>`, buf.String())

	buf.Reset()
	require.NoError(t, r.Render(&buf, "errors/403", nil))
	require.Contains(t, buf.String(), "forbidden")
}

func TestRenderer_NoLayout(t *testing.T) {
	t.Parallel()

	r := view.New(views, view.WithLayout(""), view.WithReload(true))

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "home", map[string]any{"name": "x"}))
	require.Equal(t, `<p>Hello, x</p>`, buf.String())
}

func TestRenderer_Errors(t *testing.T) {
	t.Parallel()

	r := view.New(views)
	var buf bytes.Buffer

	require.ErrorIs(t, r.Render(&buf, "missing", nil), view.ErrViewNotFound)
	require.ErrorIs(t, r.Render(&buf, "../etc/passwd", nil), view.ErrViewNotFound)
	require.ErrorIs(t, r.Render(&buf, "invalid", nil), view.ErrRenderFailed)
	require.ErrorIs(t, r.Render(&buf, "broken", map[string]any{"name": "s"}), view.ErrRenderFailed)
}
