package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/homedeck/internal/auth"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homedeck/internal/logger"
	"github.com/MrSnakeDoc/homedeck/internal/web"
)

// Page renders an authenticated HTML page.
func Page(d deps.Deps, name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := web.PageData{Title: title}
		if s, ok := auth.CurrentSession(r.Context()); ok {
			data.Username = s.Username
			data.Role = string(s.Role)
		}
		render(d, w, name, data)
	}
}

// LoginPage shows the login form, or sends logged-in users home.
func LoginPage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Gate.Check(r).Allowed {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		render(d, w, web.PageLogin, web.PageData{Title: "Sign in"})
	}
}

func render(d deps.Deps, w http.ResponseWriter, name string, data web.PageData) {
	if err := d.Pages.Render(w, http.StatusOK, name, data); err != nil {
		d.Logger.Error("failed to render page",
			logger.String("page", name),
			logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
