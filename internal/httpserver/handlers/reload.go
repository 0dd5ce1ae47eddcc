package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/homedeck/internal/auth"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/respond"
	"github.com/MrSnakeDoc/homedeck/internal/logger"
)

// ReloadAccounts triggers a manual reload of the accounts file.
func ReloadAccounts(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.AccountsReloadTrigger == nil {
			respond.Fail(w, http.StatusNotFound, "no accounts file configured")
			return
		}

		var by string
		if s, ok := auth.CurrentSession(r.Context()); ok {
			by = s.Username
		}

		select {
		case d.AccountsReloadTrigger <- struct{}{}:
			d.Logger.Info("manual accounts reload triggered via endpoint",
				logger.String("by", by))
			respond.Success(w, http.StatusAccepted, "reload triggered")
		default:
			d.Logger.Warn("accounts reload already in progress",
				logger.String("by", by))
			respond.Fail(w, http.StatusTooManyRequests, "reload already in progress, please wait")
		}
	}
}
