package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/homedeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/respond"
	"github.com/MrSnakeDoc/homedeck/internal/logger"
)

type openAppRequest struct {
	Path string `json:"path"`
}

// OpenApp asks the host to open {path} with its default application.
func OpenApp(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body openAppRequest
		if err := decodeJSON(w, r, &body); err != nil {
			respond.Error(w, err)
			return
		}

		path := strings.TrimSpace(body.Path)
		if path == "" {
			respond.Fail(w, http.StatusBadRequest, "path is empty")
			return
		}

		if err := d.Launcher.Open(r.Context(), path); err != nil {
			d.Logger.Warn("failed to open path",
				logger.String("path", path),
				logger.Error(err))
			respond.Error(w, err)
			return
		}
		respond.Success(w, http.StatusOK, "")
	}
}
