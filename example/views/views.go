// Package views embeds the demo application's templates and assets.
package views

import (
	"embed"
	"io/fs"

	"github.com/kroobeet/engine/pkg/view"
)

//go:embed templates
var templates embed.FS

// Assets holds static files under resources/.
//
//go:embed resources
var Assets embed.FS

// New returns a renderer over the embedded templates.
func New(opts ...view.Option) *view.Renderer {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return view.New(sub, opts...)
}
