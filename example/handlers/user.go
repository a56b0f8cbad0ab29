package handlers

import (
	"errors"
	"net/http"

	"github.com/kroobeet/engine"
	"github.com/kroobeet/engine/pkg/user"
)

type User struct {
	session *engine.Session
	users   *user.Repository
}

func NewUser(s *engine.Session, users *user.Repository, c engine.Context) *User {
	s.Start(c)
	return &User{session: s, users: users}
}

// Show renders the profile of the user with the given id.
func (h *User) Show(c engine.Context, id int) error {
	u, err := h.users.FindByID(c, int64(id))
	if errors.Is(err, user.ErrNotFound) {
		return engine.NewHTTPError(http.StatusNotFound, "404 Not Found", engine.WithError(err))
	}
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "user", map[string]any{
		"title":    u.Username,
		"user":     u,
		"username": h.session.Username(),
	})
}
