package ui

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"access-review/internal/domain"
	"access-review/internal/ingest"
	"access-review/internal/service"
)

const sampleCSV = "UserID,Username,TID,Acc Priv Category,Role,Entitlement,Acc Priv Group,Title,Department\n" +
	"u1,Alice,t1,cat,admin,read,g1,Engineer,Eng\n" +
	"u2,Bob,t2,cat,admin,read,g1,Engineer,Eng\n" +
	"u3,Carol,t3,cat,admin,write,g1,Engineer,Eng\n"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := service.NewDatasetStore()
	handler := NewHandler(
		store,
		service.NewReviewService(store, logger),
		ingest.NewReader(ingest.DefaultSchema()),
		domain.ReviewParams{BaselineThreshold: 60, AnomalyThreshold: 40, Grouping: domain.GroupByUnit},
		1<<20,
		logger,
	)
	r := chi.NewRouter()
	r.Route("/ui", func(r chi.Router) {
		MountRoutes(r, handler)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func upload(t *testing.T, srv *httptest.Server) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "access.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Post(srv.URL+"/ui/upload", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func getPage(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestHomeWithoutDataset(t *testing.T) {
	srv := newTestServer(t)

	status, body := getPage(t, srv, "/ui")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Upload access export")
	assert.Contains(t, body, "No dataset uploaded yet")
}

func TestHomeShowsMetricsAfterUpload(t *testing.T) {
	srv := newTestServer(t)
	upload(t, srv)

	status, body := getPage(t, srv, "/ui")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Dataset metrics")
	assert.Contains(t, body, "access.csv")
	assert.Contains(t, body, "Alice")
}

func TestBaselinePage(t *testing.T) {
	srv := newTestServer(t)
	upload(t, srv)

	status, body := getPage(t, srv, "/ui/baseline")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Baseline Access")
	assert.Contains(t, body, "read")
	assert.Contains(t, body, "66.7%")
}

func TestAnomaliesPage(t *testing.T) {
	srv := newTestServer(t)
	upload(t, srv)

	status, body := getPage(t, srv, "/ui/anomalies")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Carol")
	assert.Contains(t, body, "write")
}

func TestReportPageWithoutDataset(t *testing.T) {
	srv := newTestServer(t)

	status, body := getPage(t, srv, "/ui/gaps")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "Not Found")
}

func TestInvalidThresholdRendersErrorPage(t *testing.T) {
	srv := newTestServer(t)
	upload(t, srv)

	status, body := getPage(t, srv, "/ui/baseline?baseline_threshold=0")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "Invalid Request")
}
