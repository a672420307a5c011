package server

import (
	"bytes"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/MoosaTae/license-plate-ocr/internal/config"
	"github.com/MoosaTae/license-plate-ocr/internal/ocr"
	"github.com/MoosaTae/license-plate-ocr/internal/plate"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopEngine struct{}

func (noopEngine) Detect(img image.Image, params ocr.Params) ([]ocr.Detection, error) {
	return nil, nil
}

func newTestServer(t *testing.T, registryCSV string) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()

	registryPath := filepath.Join(dir, "plates.csv")
	if registryCSV != "" {
		require.NoError(t, os.WriteFile(registryPath, []byte(registryCSV), 0644))
	}
	provincePath := filepath.Join(dir, "provinces.txt")
	require.NoError(t, os.WriteFile(provincePath, []byte("กรุงเทพมหานคร\nเชียงใหม่\n"), 0644))

	cfg := config.Default()
	cfg.Data.Registry = registryPath
	cfg.Data.ProvinceList = provincePath

	registry, err := plate.LoadRegistry(registryPath)
	require.NoError(t, err)
	provinces, err := plate.LoadProvinceList(provincePath)
	require.NoError(t, err)

	srv := New(cfg, registry, provinces, noopEngine{})
	return srv, srv.Router()
}

const serverRegistryCSV = `plate_number,province,vehicle_type,status
กก 555,กรุงเทพมหานคร,private,active
ซค 5,เชียงใหม่,private,active
`

func TestNewPicksRegistryPolicy(t *testing.T) {
	srv, _ := newTestServer(t, serverRegistryCSV)

	_, ok := srv.Policy().(*plate.RegistryPolicy)
	assert.True(t, ok, "non-empty registry should select the registry policy")
}

func TestNewFallsBackToHeuristicPolicy(t *testing.T) {
	srv, _ := newTestServer(t, "")

	_, ok := srv.Policy().(*plate.HeuristicPolicy)
	assert.True(t, ok, "empty registry should select the heuristic policy")
}

func TestValidateEndpoint(t *testing.T) {
	_, router := newTestServer(t, serverRegistryCSV)

	body, _ := json.Marshal(ValidateRequest{Text: "กก 555", Confidence: 0.95})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var res plate.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, plate.StatusPass, res.Status)
	assert.Equal(t, "Exact match in database", res.Reason)
	assert.Equal(t, plate.MatchExact, res.MatchType)
}

func TestValidateEndpointRejectsMissingText(t *testing.T) {
	_, router := newTestServer(t, serverRegistryCSV)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", bytes.NewBufferString(`{"confidence":0.9}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddPlateEndpoint(t *testing.T) {
	srv, router := newTestServer(t, serverRegistryCSV)

	body, _ := json.Marshal(AddPlateRequest{PlateNumber: "ขข 1234", Province: "นนทบุรี"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plates", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 3, srv.registry.Len())

	var rec plate.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "private", rec.VehicleType)
	assert.Equal(t, "active", rec.Status)
}

func TestSearchPlatesEndpoint(t *testing.T) {
	_, router := newTestServer(t, serverRegistryCSV)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/plates?province=เชียงใหม่", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var records []plate.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "ซค 5", records[0].PlateNumber)
}

func TestStatisticsEndpoint(t *testing.T) {
	_, router := newTestServer(t, serverRegistryCSV)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statistics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var stats plate.Statistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByProvince["เชียงใหม่"])
}

func TestIndexPage(t *testing.T) {
	_, router := newTestServer(t, serverRegistryCSV)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "License Plate OCR System")
	assert.Contains(t, w.Body.String(), "2 records loaded")
}

func TestAnalyzeRejectsMissingFile(t *testing.T) {
	_, router := newTestServer(t, serverRegistryCSV)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
