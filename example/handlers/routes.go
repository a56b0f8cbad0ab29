package handlers

import (
	"github.com/kroobeet/engine"
	"github.com/kroobeet/engine/pkg/user"
)

// Web declares the application routes.
type Web struct {
	Users *user.Repository
}

func (w Web) Routes(r *engine.Router) {
	engine.Provide(r, func() *user.Repository { return w.Users })

	home := engine.Controller2("home", NewHome)
	dashboard := engine.Controller2("dashboard", NewDashboard)
	auth := engine.Controller3("auth", NewAuth)
	users := engine.Controller3("user", NewUser)

	r.AddRoute("/", engine.Action0(home, "index", (*Home).Index))
	r.AddRoute("/dashboard", engine.Action0(dashboard, "index", (*Dashboard).Index), true)
	r.AddRoute("/login", engine.Action0(auth, "login", (*Auth).Login))
	r.AddRoute("/register", engine.Action0(auth, "register", (*Auth).Register))
	r.AddRoute("/logout", engine.Action0(auth, "logout", (*Auth).Logout), true)
	r.AddRoute("/user/{id}", engine.Action1(users, "show", (*User).Show), true)
}
