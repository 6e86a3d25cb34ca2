// Package api implements the JSON HTTP API under /v1.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"access-review/internal/domain"
	"access-review/internal/ingest"
	"access-review/internal/report"
	"access-review/internal/service"
)

// Handler serves the JSON API.
type Handler struct {
	Store          *service.DatasetStore
	Review         *service.ReviewService
	Reader         *ingest.Reader
	Defaults       domain.ReviewParams
	MaxUploadBytes int64
	Logger         *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(store *service.DatasetStore, review *service.ReviewService, reader *ingest.Reader, defaults domain.ReviewParams, maxUploadBytes int64, logger *slog.Logger) *Handler {
	return &Handler{
		Store:          store,
		Review:         review,
		Reader:         reader,
		Defaults:       defaults,
		MaxUploadBytes: maxUploadBytes,
		Logger:         logger,
	}
}

// MountRoutes registers the /v1 API routes.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/dataset", h.UploadDataset)
	r.Get("/dataset", h.DatasetSummary)
	r.Get("/analysis/baseline", h.Baseline)
	r.Get("/analysis/anomalies", h.Anomalies)
	r.Get("/analysis/gaps", h.Gaps)
	r.Get("/reports/baseline.csv", h.BaselineCSV)
	r.Get("/reports/anomalies.csv", h.AnomaliesCSV)
	r.Get("/reports/gaps.csv", h.GapsCSV)
	r.Get("/reports/review.pdf", h.ReviewPDF)
	r.Get("/reports/review.txt", h.ReviewText)
}

type uploadResponse struct {
	Dataset service.Dataset       `json:"dataset"`
	Metrics domain.DatasetMetrics `json:"metrics"`
	Preview []domain.AccessRecord `json:"preview"`
}

// UploadDataset accepts a multipart CSV upload and replaces the current
// dataset. The whole file is validated before anything is stored.
func (h *Handler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart upload: %v", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, `multipart field "file" is required`)
		return
	}
	defer file.Close() //nolint:errcheck

	records, err := h.Reader.Read(file)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	ds := h.Store.Put(header.Filename, records)
	h.Logger.Info("dataset uploaded",
		"dataset_id", ds.ID, "source", ds.Source, "records", len(records))

	writeJSON(w, http.StatusCreated, uploadResponse{
		Dataset: ds,
		Metrics: service.Metrics(records),
		Preview: ingest.Preview(records),
	})
}

// DatasetSummary reports the current dataset and its metrics.
func (h *Handler) DatasetSummary(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.Store.Current()
	if !ok {
		writeError(w, http.StatusNotFound, "no dataset uploaded")
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{
		Dataset: ds,
		Metrics: service.Metrics(ds.Records),
		Preview: ingest.Preview(ds.Records),
	})
}

// Baseline returns per-group baseline entries.
func (h *Handler) Baseline(w http.ResponseWriter, r *http.Request) {
	result, ok := h.run(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"params":                 result.Params,
		"excluded_from_baseline": result.ExcludedFromBaseline,
		"baseline":               emptyIfNilBaseline(result.Baseline),
	})
}

// Anomalies returns every flagged rare grant.
func (h *Handler) Anomalies(w http.ResponseWriter, r *http.Request) {
	result, ok := h.run(w, r)
	if !ok {
		return
	}
	anomalies := result.Anomalies
	if anomalies == nil {
		anomalies = []domain.AnomalyRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"params":    result.Params,
		"anomalies": anomalies,
	})
}

// Gaps returns missing baseline grants per group.
func (h *Handler) Gaps(w http.ResponseWriter, r *http.Request) {
	result, ok := h.run(w, r)
	if !ok {
		return
	}
	gaps := result.Gaps
	if gaps == nil {
		gaps = []domain.GapRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"params": result.Params,
		"gaps":   gaps,
	})
}

// BaselineCSV streams the baseline table as a CSV download.
func (h *Handler) BaselineCSV(w http.ResponseWriter, r *http.Request) {
	result, ok := h.run(w, r)
	if !ok {
		return
	}
	csvDownload(w, "baseline_access.csv")
	_ = report.BaselineCSV(w, result.Baseline)
}

// AnomaliesCSV streams the anomaly table as a CSV download.
func (h *Handler) AnomaliesCSV(w http.ResponseWriter, r *http.Request) {
	result, ok := h.run(w, r)
	if !ok {
		return
	}
	csvDownload(w, "anomalous_access.csv")
	_ = report.AnomaliesCSV(w, result.Anomalies)
}

// GapsCSV streams the gap table as a CSV download.
func (h *Handler) GapsCSV(w http.ResponseWriter, r *http.Request) {
	result, ok := h.run(w, r)
	if !ok {
		return
	}
	csvDownload(w, "gap_report.csv")
	_ = report.GapsCSV(w, result.Gaps)
}

// ReviewPDF streams the consolidated PDF report.
func (h *Handler) ReviewPDF(w http.ResponseWriter, r *http.Request) {
	result, ok := h.run(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="entitlement_review.pdf"`)
	if err := report.PDF(w, result, sectionsFromQuery(r)); err != nil {
		h.Logger.Error("pdf rendering failed", "error", err)
	}
}

// ReviewText streams the consolidated plain-text report.
func (h *Handler) ReviewText(w http.ResponseWriter, r *http.Request) {
	result, ok := h.run(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="entitlement_review.txt"`)
	_ = report.Text(w, result, sectionsFromQuery(r))
}

// run executes a review with the request's parameters, writing the error
// response itself when anything fails.
func (h *Handler) run(w http.ResponseWriter, r *http.Request) (*service.ReviewResult, bool) {
	params, err := h.paramsFromQuery(r)
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	result, err := h.Review.Run(r.Context(), params)
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	return result, true
}

func (h *Handler) paramsFromQuery(r *http.Request) (domain.ReviewParams, error) {
	params := h.Defaults
	q := r.URL.Query()

	if raw := q.Get("baseline_threshold"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return params, domain.ErrValidation("baseline_threshold must be a number, got %q", raw)
		}
		params.BaselineThreshold = f
	}
	if raw := q.Get("anomaly_threshold"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return params, domain.ErrValidation("anomaly_threshold must be a number, got %q", raw)
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

func sectionsFromQuery(r *http.Request) report.Sections {
	switch r.URL.Query().Get("section") {
	case "baseline":
		return report.Sections{Baseline: true}
	case "anomalies":
		return report.Sections{Anomalies: true}
	case "gaps":
		return report.Sections{Gaps: true}
	default:
		return report.AllSections()
	}
}

func emptyIfNilBaseline(entries []domain.BaselineEntry) []domain.BaselineEntry {
	if entries == nil {
		return []domain.BaselineEntry{}
	}
	return entries
}

func csvDownload(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"code": status, "message": message})
}

func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, httpStatusFromDomainError(err), err.Error())
}
