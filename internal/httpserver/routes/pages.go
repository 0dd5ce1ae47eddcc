package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/homedeck/internal/auth"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/mw"
	"github.com/MrSnakeDoc/homedeck/internal/web"
)

func init() { Register(registerPages) }

func registerPages(r chi.Router, d deps.Deps) {
	r.Group(func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Get(auth.LoginPath, handlers.LoginPage(d))

		r.Group(func(r chi.Router) {
			r.Use(d.Gate.RequireSession(auth.ModeRedirect))
			r.Get("/", handlers.Page(d, web.PageIndex, "Dashboard"))
			r.Get("/music", handlers.Page(d, web.PageMusic, "Music"))
		})
	})
}
