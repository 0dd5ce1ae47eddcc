package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/homedeck/internal/auth"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/mw"
)

func init() { Register(registerMusic) }

// Streams are long-lived, so this route gets no request timeout.
func registerMusic(r chi.Router, d deps.Deps) {
	r.With(
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		d.Gate.RequireSession(auth.ModeDenyJSON),
	).Get("/music/*", handlers.StreamTrack(d))
}
