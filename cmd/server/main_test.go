package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-recommendation-engine/internal/config"
	"scheme-recommendation-engine/internal/services/dataset"
	"scheme-recommendation-engine/internal/services/recommender"
	"scheme-recommendation-engine/internal/services/store"
	"scheme-recommendation-engine/internal/utils"
)

const serverCSV = `schemeName,description,eligibility,level,state
Farmer Aid,Subsidy for farmers,Small and marginal farmers,Central,
Kerala Housing,Housing support,Resident families,State,Kerala
Hill Grant,Support for hill districts,Residents,State,Narnia
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	require.NoError(t, utils.InitLogger("error", "dev"))

	dir := t.TempDir()
	dataPath := filepath.Join(dir, "gov.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(serverCSV), 0o644))

	cfg := &config.Config{
		DataFile:      dataPath,
		UsersFile:     filepath.Join(dir, "users.csv"),
		AdminPassword: "test-admin-pw",
		Port:          "0",
	}

	data := dataset.NewStore(dataset.NewFileSource(dataPath), nil)
	_, err := data.Reload(context.Background())
	require.NoError(t, err)

	return &Server{
		data:    data,
		rec:     recommender.NewService(data),
		signups: store.NewCSVStore(cfg.UsersFile),
		config:  cfg,
	}
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, float64(3), data["dataset_rows"])
	assert.Equal(t, "csv", data["signup_store"])
	assert.Equal(t, true, data["signup_store_ok"])
}

func TestReferenceEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.referenceHandler(rec, httptest.NewRequest(http.MethodGet, "/api/reference", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, data["occupations"], "Farmer")
	assert.Contains(t, data["education_levels"], "Graduation")
	assert.Contains(t, data["categories"], "OBC")
	assert.Contains(t, data["states"], "Kerala")
	assert.Contains(t, data["states"], "Narnia", "dataset-only states appear in the reference payload")
}

func TestAdminDatasetUpload(t *testing.T) {
	s := newTestServer(t)

	body := strings.NewReader("schemeName,state\nReplacement Scheme,Goa\n")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/dataset", body)
	req.Header.Set("X-Admin-Password", "test-admin-pw")

	rec := httptest.NewRecorder()
	s.adminDatasetHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, s.data.Len(), "uploaded dataset replaces the served one")
	assert.Equal(t, "Replacement Scheme", s.data.Snapshot()[0].DisplayName)
}

func TestAdminDatasetUpload_WrongPassword(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/dataset", strings.NewReader("schemeName\nX\n"))
	req.Header.Set("X-Admin-Password", "wrong")

	rec := httptest.NewRecorder()
	s.adminDatasetHandler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "admin password mismatch", decodeResponse(t, rec).Error)
	assert.Equal(t, 3, s.data.Len(), "dataset is untouched")
}

func TestAdminDatasetUpload_EmptyBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/dataset", strings.NewReader("  \n"))
	req.Header.Set("X-Admin-Password", "test-admin-pw")

	rec := httptest.NewRecorder()
	s.adminDatasetHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminSignups_WrongPassword(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/signups", nil)
	req.Header.Set("X-Admin-Password", "wrong")

	rec := httptest.NewRecorder()
	s.adminSignupsHandler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "admin password mismatch", decodeResponse(t, rec).Error)
}

func TestRecommendEndpoint_InvalidLimit(t *testing.T) {
	s := newTestServer(t)

	body := strings.NewReader(`{"profile":{},"limit":999}`)
	rec := httptest.NewRecorder()
	s.recommendHandler(rec, httptest.NewRequest(http.MethodPost, "/api/recommend", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
