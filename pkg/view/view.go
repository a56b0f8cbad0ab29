// Package view renders html/template views from an fs.FS.
//
// Each view file defines a "content" block and may define "title". The
// layout file wraps it:
//
//	<title>{{block "title" .}}App{{end}}</title>
//	<main>{{template "content" .}}</main>
//
// Parsed views are cached until the Renderer is discarded, unless
// WithReload is set.
package view

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sync"
)

var (
	ErrViewNotFound = errors.New("view: view not found")
	ErrRenderFailed = errors.New("view: render failed")
)

// Renderer executes named views.
type Renderer struct {
	fsys   fs.FS
	funcs  template.FuncMap
	cache  map[string]*template.Template
	layout string
	ext    string
	reload bool
	mu     sync.RWMutex
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLayout sets the layout file name. An empty name renders views bare.
func WithLayout(name string) Option {
	return func(r *Renderer) {
		r.layout = name
	}
}

// WithExtension sets the view file extension. Defaults to ".html".
func WithExtension(ext string) Option {
	return func(r *Renderer) {
		r.ext = ext
	}
}

// WithFuncs adds template functions.
func WithFuncs(funcs template.FuncMap) Option {
	return func(r *Renderer) {
		for k, v := range funcs {
			r.funcs[k] = v
		}
	}
}

// WithReload re-parses views on every call.
func WithReload(reload bool) Option {
	return func(r *Renderer) {
		r.reload = reload
	}
}

// New creates a renderer reading from fsys.
func New(fsys fs.FS, opts ...Option) *Renderer {
	r := &Renderer{
		fsys:   fsys,
		funcs:  template.FuncMap{},
		cache:  make(map[string]*template.Template),
		layout: "layout.html",
		ext:    ".html",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render executes view with data and writes the result to w.
func (r *Renderer) Render(w io.Writer, view string, data map[string]any) error {
	tmpl, err := r.template(view)
	if err != nil {
		return err
	}

	entry := "content"
	if r.layout != "" {
		entry = r.layout
	}
	if err := tmpl.ExecuteTemplate(w, entry, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRenderFailed, view, err)
	}
	return nil
}

func (r *Renderer) template(view string) (*template.Template, error) {
	if r.reload {
		return r.parse(view)
	}

	r.mu.RLock()
	tmpl, ok := r.cache[view]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.cache[view]; ok {
		return tmpl, nil
	}

	tmpl, err := r.parse(view)
	if err != nil {
		return nil, err
	}
	r.cache[view] = tmpl
	return tmpl, nil
}

func (r *Renderer) parse(view string) (*template.Template, error) {
	name := path.Clean(view) + r.ext
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %s", ErrViewNotFound, view)
	}

	content, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrViewNotFound, view, err)
	}

	tmpl := template.New(view).Funcs(r.funcs)

	if r.layout != "" {
		layout, err := fs.ReadFile(r.fsys, r.layout)
		if err != nil {
			return nil, fmt.Errorf("%w: layout %s: %w", ErrViewNotFound, r.layout, err)
		}
		if _, err := tmpl.New(r.layout).Parse(string(layout)); err != nil {
			return nil, fmt.Errorf("%w: layout %s: %w", ErrRenderFailed, r.layout, err)
		}
	}

	if _, err := tmpl.New(name).Parse(string(content)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, view, err)
	}
	return tmpl, nil
}
