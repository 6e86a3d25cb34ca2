package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"access-review/internal/domain"
)

// tenWithOneRare builds unit X with ten identities all holding R/E, one of
// which additionally holds the 10%-prevalence grant R/F.
func tenWithOneRare() []domain.AccessRecord {
	var records []domain.AccessRecord
	ids := []string{"u0", "u1", "u2", "u3", "u4", "u5", "u6", "u7", "u8", "u9"}
	for _, id := range ids {
		records = append(records, rec(id, "X", "", "R", "E"))
	}
	records = append(records, rec("u0", "X", "", "R", "F"))
	return records
}

func TestComputeAnomalies_ScenarioB(t *testing.T) {
	records := tenWithOneRare()

	// 10% prevalence is above a 2% rarity cut: not anomalous.
	anomalies, err := ComputeAnomalies(records, 2, domain.GroupByUnit)
	require.NoError(t, err)
	assert.Empty(t, anomalies)

	// At 15% the 10%-prevalence grant is rare and exactly one record is emitted.
	anomalies, err = ComputeAnomalies(records, 15, domain.GroupByUnit)
	require.NoError(t, err)
	require.Len(t, anomalies, 1)
	assert.Equal(t, "u0", anomalies[0].UserID)
	assert.Equal(t, "R", anomalies[0].Role)
	assert.Equal(t, "F", anomalies[0].Entitlement)
	assert.Equal(t, domain.PeerGroupKey{Unit: "X"}, anomalies[0].Group)
}

func TestComputeAnomalies_EveryRecordIsInRareSet(t *testing.T) {
	records := []domain.AccessRecord{
		rec("u1", "X", "", "R", "E"),
		rec("u2", "X", "", "R", "E"),
		rec("u3", "X", "", "R", "E"),
		rec("u1", "X", "", "Odd", "One"),
		rec("u4", "Y", "", "Solo", "Grant"),
	}

	anomalies, err := ComputeAnomalies(records, 40, domain.GroupByUnit)
	require.NoError(t, err)
	require.NotEmpty(t, anomalies)

	groups := Groups(records, domain.GroupByUnit)
	for _, a := range anomalies {
		rare := Classify(Prevalence(groups[a.Group]), 40, ClassifyRare)
		assert.True(t, rare.Contains(domain.EntitlementKey{Role: a.Role, Entitlement: a.Entitlement}))
	}
}

func TestComputeAnomalies_DeduplicatesIdentityRows(t *testing.T) {
	records := []domain.AccessRecord{
		rec("u1", "X", "", "R", "E"),
		rec("u1", "X", "", "R", "E"), // duplicate row must not double-emit
		rec("u2", "X", "", "Common", "Grant"),
		rec("u1", "X", "", "Common", "Grant"),
	}

	anomalies, err := ComputeAnomalies(records, 60, domain.GroupByUnit)
	require.NoError(t, err)

	seen := map[domain.AnomalyRecord]int{}
	for _, a := range anomalies {
		seen[a]++
	}
	for a, n := range seen {
		assert.Equal(t, 1, n, "duplicate emission for %+v", a)
	}
}

func TestComputeAnomalies_FirstSeenUsernameWins(t *testing.T) {
	records := []domain.AccessRecord{
		{UserID: "u1", Username: "First Name", Role: "R", Entitlement: "E", Unit: "X"},
		{UserID: "u1", Username: "Second Name", Role: "R2", Entitlement: "E2", Unit: "X"},
		{UserID: "u2", Username: "Peer", Role: "Common", Entitlement: "Grant", Unit: "X"},
		{UserID: "u1", Username: "Third Name", Role: "Common", Entitlement: "Grant", Unit: "X"},
	}

	anomalies, err := ComputeAnomalies(records, 60, domain.GroupByUnit)
	require.NoError(t, err)
	require.NotEmpty(t, anomalies)

	for _, a := range anomalies {
		if a.UserID == "u1" {
			assert.Equal(t, "First Name", a.Username)
		}
	}
}

func TestComputeAnomalies_DeterministicOrder(t *testing.T) {
	records := []domain.AccessRecord{
		rec("u2", "Y", "", "R", "E"),
		rec("u1", "Y", "", "R2", "E2"),
		rec("u3", "X", "", "R3", "E3"),
	}

	first, err := ComputeAnomalies(records, 100, domain.GroupByUnit)
	require.NoError(t, err)
	second, err := ComputeAnomalies(records, 100, domain.GroupByUnit)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.NotEmpty(t, first)
	assert.Equal(t, "X", first[0].Group.Unit, "groups are emitted in sorted order")
}

func TestComputeAnomalies_InvalidThreshold(t *testing.T) {
	_, err := ComputeAnomalies(tenWithOneRare(), 0, domain.GroupByUnit)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestComputeAnomalies_RejectsMalformedRecord(t *testing.T) {
	records := []domain.AccessRecord{
		rec("u1", "X", "", "R", "E"),
		{UserID: "", Role: "R", Entitlement: "E", Unit: "X"},
	}

	_, err := ComputeAnomalies(records, 5, domain.GroupByUnit)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}
