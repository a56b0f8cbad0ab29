// Package handlers holds the demo application's controllers. Each
// controller is built per request by the engine, starts the request's
// session in its constructor and renders views from package views.
package handlers

import (
	"net/http"

	"github.com/kroobeet/engine"
)

// Home serves the landing page.
type Home struct {
	session *engine.Session
}

func NewHome(s *engine.Session, c engine.Context) *Home {
	s.Start(c)
	return &Home{session: s}
}

// Index shows login/register links to guests and dashboard/logout links
// to logged-in users.
func (h *Home) Index(c engine.Context) error {
	return c.Render(http.StatusOK, "home", map[string]any{
		"title":    "Home",
		"session":  h.session.IsLoggedIn(),
		"username": h.session.Username(),
	})
}
