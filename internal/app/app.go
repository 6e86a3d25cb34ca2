// Package app wires configuration, services, and handlers into a runnable
// application for main() to mount.
package app

import (
	"log/slog"

	"access-review/internal/api"
	"access-review/internal/config"
	"access-review/internal/ingest"
	"access-review/internal/service"
	"access-review/internal/ui"
)

// Deps holds the external dependencies that main() must provide.
type Deps struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// Services groups the service pointers shared by the API and UI handlers.
type Services struct {
	Store  *service.DatasetStore
	Review *service.ReviewService
	Reader *ingest.Reader
}

// App holds the fully-wired application.
type App struct {
	Services Services
	API      *api.Handler
	UI       *ui.Handler
}

// New wires the store, review service, and handlers from the provided deps.
func New(deps Deps) *App {
	store := service.NewDatasetStore()
	review := service.NewReviewService(store, deps.Logger.With("component", "review"))
	reader := ingest.NewReader(ingest.DefaultSchema())

	defaults := deps.Cfg.Params()

	return &App{
		Services: Services{
			Store:  store,
			Review: review,
			Reader: reader,
		},
		API: api.NewHandler(store, review, reader, defaults, deps.Cfg.MaxUploadBytes,
			deps.Logger.With("component", "api")),
		UI: ui.NewHandler(store, review, reader, defaults, deps.Cfg.MaxUploadBytes,
			deps.Logger.With("component", "ui")),
	}
}
