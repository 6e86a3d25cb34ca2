package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"access-review/internal/ui/assets"
)

func MountRoutes(r chi.Router, h *Handler) {
	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/ui/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Get("/", h.Home)
	r.Post("/upload", h.Upload)
	r.Get("/baseline", h.BaselinePage)
	r.Get("/anomalies", h.AnomaliesPage)
	r.Get("/gaps", h.GapsPage)
}
