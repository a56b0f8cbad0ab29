package handlers

import (
	"net/http"

	"github.com/kroobeet/engine"
)

type Dashboard struct {
	session *engine.Session
}

func NewDashboard(s *engine.Session, c engine.Context) *Dashboard {
	s.Start(c)
	return &Dashboard{session: s}
}

func (h *Dashboard) Index(c engine.Context) error {
	if !h.session.IsLoggedIn() {
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.Render(http.StatusOK, "dashboard", map[string]any{
		"title":    "Dashboard",
		"username": h.session.Username(),
	})
}
