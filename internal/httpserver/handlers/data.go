package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/respond"
	"github.com/MrSnakeDoc/homedeck/internal/logger"
)

// GetData returns the document without its users.
func GetData(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := d.Documents.Load()
		respond.JSON(w, http.StatusOK, doc.Sections)
	}
}

// SaveData replaces the four data sections. Users in the request body are
// ignored; the stored users are kept as they are.
func SaveData(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body domain.Sections
		if err := decodeJSON(w, r, &body); err != nil {
			respond.Error(w, err)
			return
		}
		if err := body.Validate(); err != nil {
			respond.Error(w, err)
			return
		}

		err := d.Documents.Update(func(doc *domain.Document) error {
			doc.Sections = body
			return nil
		})
		if err != nil {
			d.Logger.Error("failed to save data", logger.Error(err))
			respond.Error(w, err)
			return
		}

		respond.Success(w, http.StatusOK, "")
	}
}
