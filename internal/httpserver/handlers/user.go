package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/homedeck/internal/auth"
	"github.com/MrSnakeDoc/homedeck/internal/domain"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/respond"
)

type userInfoResponse struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// GetUserInfo returns who the current session belongs to.
func GetUserInfo(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := auth.CurrentSession(r.Context())
		if !ok {
			respond.Error(w, domain.ErrUnauthenticated)
			return
		}
		respond.JSON(w, http.StatusOK, userInfoResponse{
			Username: s.Username,
			Role:     s.Role,
		})
	}
}
