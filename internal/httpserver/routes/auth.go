package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/homedeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	r.Group(func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Post("/register", handlers.Register(d))
		r.Post("/login", handlers.Login(d))
		r.Get("/logout", handlers.Logout(d))
	})
}
