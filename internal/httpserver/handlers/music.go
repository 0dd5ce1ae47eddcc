package handlers

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/homedeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/respond"
	"github.com/MrSnakeDoc/homedeck/internal/logger"
	"github.com/MrSnakeDoc/homedeck/internal/media"
)

// GetMusicPlaylists scans the media root and lists its playlists.
func GetMusicPlaylists(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playlists, err := d.Media.Playlists()
		if err != nil {
			d.Logger.Error("failed to scan media root",
				logger.String("root", d.Media.Root()),
				logger.Error(err))
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, playlists)
	}
}

// StreamTrack serves /music/<playlist>/<file> with range support.
func StreamTrack(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rel := chi.URLParam(r, "*")
		if r.URL.RawPath != "" {
			if unescaped, err := url.PathUnescape(rel); err == nil {
				rel = unescaped
			}
		}

		path, err := d.Media.Resolve(rel)
		if err != nil {
			d.Logger.Debug("track not found", logger.String("track", rel))
			respond.Error(w, err)
			return
		}

		f, err := os.Open(path)
		if err != nil {
			respond.Fail(w, http.StatusNotFound, "track not found")
			return
		}
		defer func() { _ = f.Close() }()

		info, err := f.Stat()
		if err != nil {
			respond.Fail(w, http.StatusNotFound, "track not found")
			return
		}

		if ct := media.ContentType(path); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		http.ServeContent(w, r, filepath.Base(path), info.ModTime(), f)
	}
}
