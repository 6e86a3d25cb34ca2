package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"access-review/internal/analysis"
	"access-review/internal/domain"
)

// ReviewResult is the output of one full analysis run.
type ReviewResult struct {
	DatasetID   string                 `json:"dataset_id,omitempty"`
	Source      string                 `json:"source,omitempty"`
	GeneratedAt time.Time              `json:"generated_at"`
	Params      domain.ReviewParams    `json:"params"`
	Metrics     domain.DatasetMetrics  `json:"metrics"`
	// ExcludedFromBaseline counts records left out of the baseline input by
	// the titleless-exclusion policy. Zero under unit-only grouping.
	ExcludedFromBaseline int                    `json:"excluded_from_baseline"`
	Baseline             []domain.BaselineEntry `json:"baseline"`
	BaselineMap          domain.BaselineMap     `json:"-"`
	Anomalies            []domain.AnomalyRecord `json:"anomalies"`
	Gaps                 []domain.GapRecord     `json:"gaps"`
}

// Review runs the three engines over one record collection. Policy, matching
// the established review procedure: under unit+title grouping the baseline is
// computed only from records carrying a title (a titleless identity has no
// meaningful unit+title peer group), while anomalies and gaps always run
// against the full dataset. Gaps therefore silently skip any group present in
// the full data but absent from the filtered baseline.
func Review(ctx context.Context, records []domain.AccessRecord, params domain.ReviewParams) (*ReviewResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	baselineInput := records
	excluded := 0
	if params.Grouping == domain.GroupByUnitAndTitle {
		baselineInput = make([]domain.AccessRecord, 0, len(records))
		for _, rec := range records {
			if rec.HasTitle() {
				baselineInput = append(baselineInput, rec)
			} else {
				excluded++
			}
		}
	}

	result := &ReviewResult{
		GeneratedAt:          time.Now().UTC(),
		Params:               params,
		Metrics:              Metrics(records),
		ExcludedFromBaseline: excluded,
	}

	// The engines are pure and independent except that gaps consume the
	// baseline map, so baseline+gaps run on one goroutine and anomalies on
	// another.
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		baseline, err := analysis.ComputeBaseline(baselineInput, params.BaselineThreshold, params.Grouping)
		if err != nil {
			return err
		}
		entries, err := analysis.BaselineEntries(baselineInput, params.BaselineThreshold, params.Grouping)
		if err != nil {
			return err
		}
		gaps, err := analysis.ComputeGaps(records, baseline, params.Grouping)
		if err != nil {
			return err
		}
		result.BaselineMap = baseline
		result.Baseline = entries
		result.Gaps = gaps
		return nil
	})
	g.Go(func() error {
		anomalies, err := analysis.ComputeAnomalies(records, params.AnomalyThreshold, params.Grouping)
		if err != nil {
			return err
		}
		result.Anomalies = anomalies
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// ReviewService runs reviews against the stored current dataset.
type ReviewService struct {
	store  *DatasetStore
	logger *slog.Logger
}

// NewReviewService creates a ReviewService.
func NewReviewService(store *DatasetStore, logger *slog.Logger) *ReviewService {
	return &ReviewService{store: store, logger: logger}
}

// Run executes a full review of the current dataset.
func (s *ReviewService) Run(ctx context.Context, params domain.ReviewParams) (*ReviewResult, error) {
	ds, ok := s.store.Current()
	if !ok {
		return nil, domain.ErrNotFound("no dataset uploaded")
	}

	start := time.Now()
	result, err := Review(ctx, ds.Records, params)
	if err != nil {
		return nil, err
	}
	result.DatasetID = ds.ID
	result.Source = ds.Source

	s.logger.Info("review run complete",
		"dataset_id", ds.ID,
		"grouping", string(params.Grouping),
		"baseline_entries", len(result.Baseline),
		"anomalies", len(result.Anomalies),
		"gaps", len(result.Gaps),
		"duration", time.Since(start),
	)
	return result, nil
}
