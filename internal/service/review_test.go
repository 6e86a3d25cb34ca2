package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"access-review/internal/domain"
)

func rec(user, unit, title, role, ent string) domain.AccessRecord {
	return domain.AccessRecord{
		UserID: user, Username: "name-" + user,
		Role: role, Entitlement: ent,
		Title: title, Unit: unit,
	}
}

func params(grouping domain.GroupingMode) domain.ReviewParams {
	return domain.ReviewParams{BaselineThreshold: 95, AnomalyThreshold: 15, Grouping: grouping}
}

func TestMetrics(t *testing.T) {
	records := []domain.AccessRecord{
		{UserID: "u1", Username: "A", TID: "t1", Category: "C1", Role: "R1", Entitlement: "E1", AccessGroup: "G1", Title: "SRE", Unit: "Eng"},
		{UserID: "u1", Username: "A", TID: "t1", Category: "C1", Role: "R2", Entitlement: "E2", AccessGroup: "G1", Title: "SRE", Unit: "Eng"},
		{UserID: "u2", Username: "B", TID: "t2", Category: "C2", Role: "R1", Entitlement: "E1", AccessGroup: "G2", Title: "", Unit: "Fin"},
	}

	m := Metrics(records)

	assert.Equal(t, 3, m.TotalRecords)
	assert.Equal(t, 2, m.UniqueUsers)
	assert.Equal(t, 2, m.UniqueUnits)
	assert.Equal(t, 1, m.UniqueTitles)
	assert.Equal(t, 2, m.UniqueRoles)
	assert.Equal(t, 2, m.UniqueEntitlements)
	assert.Equal(t, 2, m.UniqueCategories)
	assert.Equal(t, 2, m.UniqueAccessGroups)
	assert.Equal(t, 1, m.UsersWithoutTitle)
}

func TestReview_TitlelessExcludedFromBaselineOnly(t *testing.T) {
	// Two titled identities in Eng hold R/E; one titleless identity holds a
	// lone grant. Under unit+title the titleless record is excluded from the
	// baseline input but still visible to the anomaly engine.
	records := []domain.AccessRecord{
		rec("u1", "Eng", "SRE", "R", "E"),
		rec("u2", "Eng", "SRE", "R", "E"),
		rec("u3", "Eng", "", "Odd", "Grant"),
	}

	result, err := Review(context.Background(), records, params(domain.GroupByUnitAndTitle))
	require.NoError(t, err)

	assert.Equal(t, 1, result.ExcludedFromBaseline)

	sre := domain.PeerGroupKey{Unit: "Eng", Title: "SRE", ByTitle: true}
	require.Contains(t, result.BaselineMap, sre)
	assert.NotContains(t, result.BaselineMap, domain.PeerGroupKey{Unit: "Eng", Title: "", ByTitle: true})

	// The titleless identity's solo grant is 100% prevalent in its own
	// single-identity group, so it is not rare at threshold 15.
	for _, a := range result.Anomalies {
		assert.NotEqual(t, "u3", a.UserID, "solo grant at full prevalence is not anomalous")
	}

	// At threshold 100 the cutoff is inclusive, so even the 100%-prevalent
	// grant is flagged: the titleless record still reaches the anomaly engine.
	result, err = Review(context.Background(), records, domain.ReviewParams{
		BaselineThreshold: 95, AnomalyThreshold: 100, Grouping: domain.GroupByUnitAndTitle,
	})
	require.NoError(t, err)

	found := false
	for _, a := range result.Anomalies {
		if a.UserID == "u3" {
			found = true
		}
	}
	assert.True(t, found, "titleless identity still analyzed for anomalies")
}

func TestReview_UnitGroupingExcludesNothing(t *testing.T) {
	records := []domain.AccessRecord{
		rec("u1", "Eng", "", "R", "E"),
		rec("u2", "Eng", "SRE", "R", "E"),
	}

	result, err := Review(context.Background(), records, params(domain.GroupByUnit))
	require.NoError(t, err)

	assert.Zero(t, result.ExcludedFromBaseline)
	require.Len(t, result.Baseline, 1)
	assert.InDelta(t, 1.0, result.Baseline[0].Prevalence, 1e-9)
}

func TestReview_InvalidParams(t *testing.T) {
	records := []domain.AccessRecord{rec("u1", "Eng", "", "R", "E")}

	_, err := Review(context.Background(), records, domain.ReviewParams{
		BaselineThreshold: 0, AnomalyThreshold: 15, Grouping: domain.GroupByUnit,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = Review(context.Background(), records, domain.ReviewParams{
		BaselineThreshold: 95, AnomalyThreshold: 15, Grouping: "bogus",
	})
	require.ErrorAs(t, err, &verr)
}

func TestReviewService_Run(t *testing.T) {
	store := NewDatasetStore()
	svc := NewReviewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.Run(context.Background(), params(domain.GroupByUnit))
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf, "no dataset uploaded yet")

	ds := store.Put("export.csv", []domain.AccessRecord{
		rec("u1", "Eng", "", "R", "E"),
		rec("u2", "Eng", "", "R", "E"),
	})

	result, err := svc.Run(context.Background(), params(domain.GroupByUnit))
	require.NoError(t, err)
	assert.Equal(t, ds.ID, result.DatasetID)
	assert.Equal(t, "export.csv", result.Source)
	assert.Len(t, result.Baseline, 1)
}

func TestDatasetStore_PutReplaces(t *testing.T) {
	store := NewDatasetStore()

	_, ok := store.Current()
	assert.False(t, ok)

	first := store.Put("a.csv", nil)
	second := store.Put("b.csv", nil)
	require.NotEqual(t, first.ID, second.ID)

	current, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "b.csv", current.Source)
}
