package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/homedeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/respond"
	"github.com/MrSnakeDoc/homedeck/internal/logger"
)

const readyzPingTimeout = 2 * time.Second

type readyzResponse struct {
	Ready    bool   `json:"ready"`
	Document string `json:"document"`
	Sessions string `json:"sessions"`
}

// Readyz reports whether the document file is readable and the session
// backend answers.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := readyzResponse{Ready: true, Document: "ok", Sessions: "ok"}

		if err := d.Documents.Readable(); err != nil {
			d.Logger.Warn("readyz: document not readable", logger.Error(err))
			res.Ready = false
			res.Document = err.Error()
		}

		ctx, cancel := context.WithTimeout(r.Context(), readyzPingTimeout)
		defer cancel()
		if err := d.Sessions.Ping(ctx); err != nil {
			d.Logger.Warn("readyz: session backend unavailable", logger.Error(err))
			res.Ready = false
			res.Sessions = err.Error()
		}

		status := http.StatusOK
		if !res.Ready {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(w, status, res)
	}
}
