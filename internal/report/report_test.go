package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"access-review/internal/domain"
	"access-review/internal/service"
)

func sampleResult() *service.ReviewResult {
	eng := domain.PeerGroupKey{Unit: "Engineering"}
	return &service.ReviewResult{
		Source:      "export.csv",
		GeneratedAt: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		Params: domain.ReviewParams{
			BaselineThreshold: 95,
			AnomalyThreshold:  2,
			Grouping:          domain.GroupByUnit,
		},
		Metrics: domain.DatasetMetrics{TotalRecords: 3, UniqueUsers: 2, UniqueUnits: 1},
		Baseline: []domain.BaselineEntry{
			{Group: eng, Role: "Admin", Entitlement: "ManageUsers", Prevalence: 1.0},
		},
		Anomalies: []domain.AnomalyRecord{
			{Group: eng, UserID: "u9", Username: "Mallory", Role: "Root", Entitlement: "Everything"},
		},
		Gaps: []domain.GapRecord{
			{Group: eng, Role: "Viewer", Entitlement: "ReadDash"},
		},
	}
}

func TestBaselineCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, BaselineCSV(&buf, sampleResult().Baseline))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Peer Group", "Role", "Entitlement", "Prevalence (%)"}, rows[0])
	assert.Equal(t, []string{"Engineering", "Admin", "ManageUsers", "100.0"}, rows[1])
}

func TestAnomaliesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, AnomaliesCSV(&buf, sampleResult().Anomalies))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Engineering", "u9", "Mallory", "Root", "Everything"}, rows[1])
}

func TestGapsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GapsCSV(&buf, sampleResult().Gaps))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Engineering", "Viewer", "ReadDash"}, rows[1])
}

func TestText_FullReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleResult(), AllSections()))

	out := buf.String()
	assert.Contains(t, out, "ENTITLEMENT REVIEW REPORT")
	assert.Contains(t, out, "Generated: 2026-08-31 12:00:00")
	assert.Contains(t, out, "BASELINE ACCESS (1 entries)")
	assert.Contains(t, out, "ANOMALOUS ACCESS (1 entries)")
	assert.Contains(t, out, "GAP REPORT (1 entries)")
	assert.Contains(t, out, "Mallory")
}

func TestText_SectionSelection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleResult(), Sections{Anomalies: true}))

	out := buf.String()
	assert.Contains(t, out, "ANOMALOUS ACCESS")
	assert.False(t, strings.Contains(out, "BASELINE ACCESS"))
	assert.False(t, strings.Contains(out, "GAP REPORT"))
}

func TestPDF_ProducesDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, sampleResult(), AllSections()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestPDF_EmptySectionsStillRender(t *testing.T) {
	result := sampleResult()
	result.Baseline = nil
	result.Anomalies = nil
	result.Gaps = nil

	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, result, AllSections()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
