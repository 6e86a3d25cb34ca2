package cli

import (
	"context"
	"fmt"
	"os"

	"access-review/internal/domain"
	"access-review/internal/ingest"
	"access-review/internal/service"
)

// rootOptions holds the resolved persistent flag values shared by every
// subcommand.
type rootOptions struct {
	input             string
	output            string
	profile           string
	baselineThreshold float64
	anomalyThreshold  float64
	grouping          string
}

func (o *rootOptions) params() (domain.ReviewParams, error) {
	mode, err := domain.ParseGroupingMode(o.grouping)
	if err != nil {
		return domain.ReviewParams{}, err
	}
	params := domain.ReviewParams{
		BaselineThreshold: o.baselineThreshold,
		AnomalyThreshold:  o.anomalyThreshold,
		Grouping:          mode,
	}
	return params, params.Validate()
}

func (o *rootOptions) loadRecords() ([]domain.AccessRecord, error) {
	if o.input == "" {
		return nil, fmt.Errorf("no input file: use --input or set it in a profile")
	}
	f, err := os.Open(o.input) //nolint:gosec // path is user-supplied by design
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", o.input, err)
	}
	defer f.Close() //nolint:errcheck

	records, err := ingest.NewReader(ingest.DefaultSchema()).Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.input, err)
	}
	return records, nil
}

func (o *rootOptions) runReview(ctx context.Context) (*service.ReviewResult, error) {
	records, err := o.loadRecords()
	if err != nil {
		return nil, err
	}
	params, err := o.params()
	if err != nil {
		return nil, err
	}
	result, err := service.Review(ctx, records, params)
	if err != nil {
		return nil, err
	}
	result.Source = o.input
	return result, nil
}
