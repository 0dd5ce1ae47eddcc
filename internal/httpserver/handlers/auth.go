package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/homedeck/internal/auth"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/respond"
	"github.com/MrSnakeDoc/homedeck/internal/logger"
)

// Register creates a "user" account from {username, password}.
func Register(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body credentials
		if err := decodeJSON(w, r, &body); err != nil {
			respond.Error(w, err)
			return
		}

		if err := d.Gate.Register(body.Username, body.Password); err != nil {
			respond.Error(w, err)
			return
		}
		respond.Success(w, http.StatusOK, "registration successful")
	}
}

// Login checks {username, password} and sets the session cookie.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body credentials
		if err := decodeJSON(w, r, &body); err != nil {
			respond.Error(w, err)
			return
		}

		s, err := d.Gate.Login(r.Context(), w, body.Username, body.Password)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, respond.StatusResponse{
			Status: respond.StatusSuccess,
			Role:   string(s.Role),
		})
	}
}

// Logout drops the session (if any) and sends the browser to the login page.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Gate.Logout(w, r); err != nil {
			d.Logger.Warn("failed to delete session on logout", logger.Error(err))
		}
		http.Redirect(w, r, auth.LoginPath, http.StatusFound)
	}
}
