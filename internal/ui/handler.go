// Package ui serves the server-rendered review dashboard.
package ui

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	gomponents "maragu.dev/gomponents"

	"access-review/internal/domain"
	"access-review/internal/ingest"
	"access-review/internal/service"
)

type Handler struct {
	Store          *service.DatasetStore
	Review         *service.ReviewService
	Reader         *ingest.Reader
	Defaults       domain.ReviewParams
	MaxUploadBytes int64
	Logger         *slog.Logger
}

func NewHandler(
	store *service.DatasetStore,
	review *service.ReviewService,
	reader *ingest.Reader,
	defaults domain.ReviewParams,
	maxUploadBytes int64,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		Store:          store,
		Review:         review,
		Reader:         reader,
		Defaults:       defaults,
		MaxUploadBytes: maxUploadBytes,
		Logger:         logger,
	}
}

// paramsFromRequest merges query-string overrides over the configured
// defaults. Bad values surface as validation errors on the error page.
func (h *Handler) paramsFromRequest(r *http.Request) (domain.ReviewParams, error) {
	params := h.Defaults
	q := r.URL.Query()

	if raw := q.Get("baseline_threshold"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return params, domain.ErrValidation("baseline threshold must be a number, got %q", raw)
		}
		params.BaselineThreshold = f
	}
	if raw := q.Get("anomaly_threshold"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return params, domain.ErrValidation("anomaly threshold must be a number, got %q", raw)
		}
		params.AnomalyThreshold = f
	}
	if raw := q.Get("grouping"); raw != "" {
		mode, err := domain.ParseGroupingMode(raw)
		if err != nil {
			return params, err
		}
		params.Grouping = mode
	}
	return params, params.Validate()
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

func (h *Handler) renderServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	title := "Unexpected Error"

	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		title = "Not Found"
	case errors.As(err, &validation):
		status = http.StatusBadRequest
		title = "Invalid Request"
	}
	if status == http.StatusInternalServerError {
		h.Logger.Error("ui request failed", "error", err)
	}
	renderHTML(w, status, errorPage(title, err.Error()))
}
