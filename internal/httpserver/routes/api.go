package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/homedeck/internal/auth"
	"github.com/MrSnakeDoc/homedeck/internal/domain"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		if d.RequestTimeout > 0 {
			r.Use(middleware.Timeout(d.RequestTimeout))
		}

		// any logged-in user
		r.Group(func(r chi.Router) {
			r.Use(d.Gate.RequireSession(auth.ModeDenyJSON))
			r.Get("/get_data", handlers.GetData(d))
			r.Get("/get_music_playlists", handlers.GetMusicPlaylists(d))
			r.Get("/get_user_info", handlers.GetUserInfo(d))
		})

		// admin only
		r.Group(func(r chi.Router) {
			r.Use(d.Gate.RequireSession(auth.ModeDenyJSON))
			r.Use(d.Gate.RequireRole(domain.RoleAdmin))
			r.Post("/save_data", handlers.SaveData(d))
			r.Post("/open_app", handlers.OpenApp(d))
			r.Post("/reload_accounts", handlers.ReloadAccounts(d))
		})
	})
}
