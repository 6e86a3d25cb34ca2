package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"access-review/internal/domain"
)

func TestPrevalence_CountsDistinctIdentities(t *testing.T) {
	group := []domain.AccessRecord{
		rec("u1", "X", "", "R1", "E1"),
		rec("u1", "X", "", "R1", "E1"), // duplicate row, same identity
		rec("u2", "X", "", "R1", "E1"),
		rec("u2", "X", "", "R2", "E2"),
	}

	table := Prevalence(group)

	assert.Equal(t, 2, table.Total)
	assert.Equal(t, 2, table.Counts[domain.EntitlementKey{Role: "R1", Entitlement: "E1"}])
	assert.Equal(t, 1, table.Counts[domain.EntitlementKey{Role: "R2", Entitlement: "E2"}])
}

func TestPrevalence_Fraction(t *testing.T) {
	group := []domain.AccessRecord{
		rec("u1", "X", "", "R1", "E1"),
		rec("u2", "X", "", "R1", "E1"),
		rec("u3", "X", "", "R2", "E2"),
	}

	table := Prevalence(group)

	assert.InDelta(t, 2.0/3.0, table.Fraction(domain.EntitlementKey{Role: "R1", Entitlement: "E1"}), 1e-9)
	assert.InDelta(t, 1.0/3.0, table.Fraction(domain.EntitlementKey{Role: "R2", Entitlement: "E2"}), 1e-9)
	assert.Zero(t, table.Fraction(domain.EntitlementKey{Role: "nope", Entitlement: "nope"}))
}

func TestPrevalence_BoundsHold(t *testing.T) {
	group := []domain.AccessRecord{
		rec("u1", "X", "", "R1", "E1"),
		rec("u2", "X", "", "R1", "E1"),
		rec("u3", "X", "a", "R2", "E2"),
		rec("u3", "X", "a", "R3", "E3"),
	}

	table := Prevalence(group)

	for key, count := range table.Counts {
		assert.LessOrEqual(t, count, table.Total)
		f := table.Fraction(key)
		assert.GreaterOrEqual(t, f, 0.0)
		assert.LessOrEqual(t, f, 1.0)
	}
}

func TestPrevalence_EmptyGroupDividesToZero(t *testing.T) {
	table := Prevalence(nil)

	require.Zero(t, table.Total)
	assert.NotPanics(t, func() {
		assert.Zero(t, table.Fraction(domain.EntitlementKey{Role: "R", Entitlement: "E"}))
	})
}
