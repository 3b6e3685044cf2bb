package webserver

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/Sachithra-228/evidencedeck/internal/media"
	"github.com/Sachithra-228/evidencedeck/internal/webapi"
	"github.com/Sachithra-228/evidencedeck/web"
	"github.com/klauspost/compress/gzhttp"
)

// registerRoutes sets up API, media and SPA routes on the given mux.
func registerRoutes(mux *http.ServeMux, cfg Config) error {
	webapi.RegisterRoutes(mux, cfg.Store)

	// Media is only served locally when the base URL is a path. An absolute
	// URL points at a CDN or bucket the browser fetches from directly.
	if cfg.Media != nil && strings.HasPrefix(cfg.BaseURL, "/") {
		prefix := strings.TrimRight(cfg.BaseURL, "/")
		mux.Handle("GET "+prefix+"/{key...}", assetHandler(cfg.Media, cfg))
	}

	// SPA static files with HTML5 history API fallback
	handler, err := spaHandler()
	if err != nil {
		return fmt.Errorf("failed to initialize SPA handler: %w", err)
	}
	mux.Handle("/", handler)
	return nil
}

// wrapHandler applies CORS and response compression to the mux.
func wrapHandler(mux http.Handler, cfg Config) (http.Handler, error) {
	gz, err := gzhttp.NewWrapper(gzhttp.MinSize(1024))
	if err != nil {
		return nil, fmt.Errorf("creating gzip wrapper: %w", err)
	}
	return gz(webapi.CORSMiddleware(mux, cfg.AllowedOrigins...)), nil
}

// mediaTypes covers capture formats missing from some system MIME tables.
var mediaTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".webp": "image/webp",
	".webm": "video/webm",
	".mp4":  "video/mp4",
}

// assetHandler serves media objects by key. Range requests are honored so
// videos can seek.
func assetHandler(store media.Store, cfg Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("key")
		data, err := store.Get(r.Context(), key)
		if err != nil {
			switch {
			case errors.Is(err, media.ErrNotFound):
				cfg.Logger.Debug("media miss", "key", key)
				http.Error(w, "media not found", http.StatusNotFound)
			case errors.Is(err, media.ErrInvalidKey):
				http.Error(w, "invalid media key", http.StatusBadRequest)
			default:
				cfg.Logger.Error("media read failed", "key", key, "error", err)
				http.Error(w, "media unavailable", http.StatusBadGateway)
			}
			return
		}
		// Recaptures overwrite files in place, so browsers must revalidate.
		w.Header().Set("Cache-Control", "no-cache")
		if ct, ok := mediaTypes[strings.ToLower(path.Ext(key))]; ok {
			w.Header().Set("Content-Type", ct)
		}
		http.ServeContent(w, r, key, time.Time{}, bytes.NewReader(data))
	})
}

// spaHandler returns an http.Handler that serves the embedded SPA assets.
// Non-existent paths are served index.html to support client-side routing
// (HTML5 history API fallback).
func spaHandler() (http.Handler, error) {
	distFS, err := fs.Sub(web.Assets, "dist")
	if err != nil {
		return nil, fmt.Errorf("failed to create sub filesystem for web/dist: %w", err)
	}

	fileServer := http.FileServer(http.FS(distFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Unknown API paths must not fall through to index.html.
		if strings.HasPrefix(path, "/api/") {
			http.NotFound(w, r)
			return
		}

		// Try to serve the file directly.
		if path != "/" {
			cleanPath := strings.TrimPrefix(path, "/")
			if f, err := distFS.Open(cleanPath); err == nil {
				f.Close() //nolint:errcheck
				fileServer.ServeHTTP(w, r)
				return
			}
		}

		// Fallback: serve index.html for SPA routing.
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	}), nil
}
