package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kroobeet/engine"
	"github.com/kroobeet/engine/pkg/sanitizer"
	"github.com/kroobeet/engine/pkg/user"
)

const maxUsernameLen = 64

// Auth handles login, registration and logout.
type Auth struct {
	session *engine.Session
	users   *user.Repository
}

func NewAuth(s *engine.Session, users *user.Repository, c engine.Context) *Auth {
	s.Start(c)
	return &Auth{session: s, users: users}
}

// Login renders the form on GET and checks credentials on POST.
// Logged-in users are sent to the dashboard.
func (h *Auth) Login(c engine.Context) error {
	if h.session.IsLoggedIn() {
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	if c.Request().Method != http.MethodPost {
		data := map[string]any{"title": "Login"}
		if c.Query("registered") != "" {
			data["notice"] = "Registration complete. You can log in now."
		}
		return c.Render(http.StatusOK, "login", data)
	}

	username := sanitizer.Field(c.Form("username"), maxUsernameLen)
	u, err := h.users.Authenticate(c, username, c.Form("password"))
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		c.LogInfo("login rejected", slog.String("username", username))
		return c.Render(http.StatusOK, "login", map[string]any{
			"title":    "Login",
			"error":    "Invalid credentials",
			"username": username,
		})
	case err != nil:
		return err
	}

	// A stale id leaves the session unstarted; the second Start creates one.
	h.session.Start(c)
	h.session.Login(u.Username)
	h.session.Update(c)
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Register renders the form on GET and creates the account on POST.
func (h *Auth) Register(c engine.Context) error {
	if h.session.IsLoggedIn() {
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, "register", map[string]any{"title": "Register"})
	}

	username := sanitizer.Field(c.Form("username"), maxUsernameLen)
	password := c.Form("password")
	confirm := c.Form("confirm_password")

	fail := func(msg string) error {
		return c.Render(http.StatusOK, "register", map[string]any{
			"title":    "Register",
			"error":    msg,
			"username": username,
		})
	}

	if username == "" || password == "" || confirm == "" {
		return fail("All fields are required")
	}
	if password != confirm {
		return fail("Passwords do not match")
	}

	_, err := h.users.Create(c, username, password)
	switch {
	case errors.Is(err, user.ErrUsernameTaken):
		return fail("Username already exists")
	case errors.Is(err, user.ErrEmptyField):
		return fail("All fields are required")
	case err != nil:
		c.LogError("user creation failed", slog.String("username", username), slog.Any("error", err))
		return fail("Error during registration")
	}

	return c.Redirect(http.StatusFound, "/login?registered=1")
}

// Logout destroys the session and returns to the login page.
func (h *Auth) Logout(c engine.Context) error {
	h.session.Destroy(c)
	return c.Redirect(http.StatusFound, "/login")
}
