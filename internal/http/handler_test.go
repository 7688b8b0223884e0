package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.ngs.io/seas-api/internal/domain"
	"go.ngs.io/seas-api/internal/usecase"
)

const testDataset = "Name;Depth;Salinity\nCaspian;1025;12.8\nMediterranean;1500;38.4\nBaltic;55;7\n"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return SetupRouter(usecase.NewSeaAnalysisUseCase(nil))
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if strings.HasPrefix(body, "{") {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestEmptyDataset(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/seas/deepest", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/seas/least-salty", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/seas/average-depth", "")
	require.Equal(t, http.StatusOK, rec.Code)
	avg := decode[map[string]float64](t, rec)
	assert.Equal(t, 0.0, avg["average_depth_m"])
}

func TestReplaceDatasetAndQuery(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPut, "/v1/seas/dataset", testDataset)
	require.Equal(t, http.StatusOK, rec.Code)
	loaded := decode[usecase.LoadResponse](t, rec)
	assert.Equal(t, 3, loaded.Loaded)

	rec = do(t, router, http.MethodGet, "/v1/seas/deepest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	deepest := decode[usecase.SeaResult](t, rec)
	assert.Equal(t, 1, deepest.Index)
	assert.Equal(t, "Mediterranean", deepest.Sea.Name)

	rec = do(t, router, http.MethodGet, "/v1/seas/least-salty", "")
	require.Equal(t, http.StatusOK, rec.Code)
	least := decode[usecase.SeaResult](t, rec)
	assert.Equal(t, "Baltic", least.Sea.Name)

	rec = do(t, router, http.MethodGet, "/v1/seas/by-salinity?target=38&tolerance=0.5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	matches := decode[usecase.SalinityMatchResponse](t, rec)
	require.Len(t, matches.Matches, 1)
	assert.Equal(t, "Mediterranean", matches.Matches[0].Sea.Name)

	rec = do(t, router, http.MethodPost, "/v1/seas/sort", "")
	require.Equal(t, http.StatusOK, rec.Code)
	sorted := decode[struct {
		Seas []domain.Sea `json:"seas"`
	}](t, rec)
	require.Len(t, sorted.Seas, 3)
	assert.Equal(t, []float64{1500, 1025, 55}, []float64{sorted.Seas[0].DepthM, sorted.Seas[1].DepthM, sorted.Seas[2].DepthM})

	rec = do(t, router, http.MethodGet, "/v1/seas/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[usecase.SummaryResponse](t, rec)
	assert.Equal(t, 3, summary.Count)
	require.NotNil(t, summary.Deepest)
	assert.Equal(t, 0, summary.Deepest.Index)
}

func TestReplaceDatasetTooLarge(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPut, "/v1/seas/dataset", testDataset)
	require.Equal(t, http.StatusOK, rec.Code)

	body := testDataset + strings.Repeat("x", MaxDatasetBytes)
	rec = do(t, router, http.MethodPut, "/v1/seas/dataset", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/seas", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Count int `json:"count"`
	}](t, rec)
	assert.Equal(t, 3, list.Count)
}

func TestReplaceDatasetSkipsNonFiniteValues(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPut, "/v1/seas/dataset", "A;nan;5\nB;inf;5\nC;10;5\n")
	require.Equal(t, http.StatusOK, rec.Code)
	loaded := decode[usecase.LoadResponse](t, rec)
	assert.Equal(t, 1, loaded.Loaded)

	rec = do(t, router, http.MethodGet, "/v1/seas/summary", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBySalinityValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/seas/by-salinity", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/seas/by-salinity?target=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/seas/by-salinity?target=7&tolerance=x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSea(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/v1/seas", `{"name":"Black","depth_m":2212,"salinity_ppt":18}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[usecase.SeaResult](t, rec)
	assert.Equal(t, 0, created.Index)

	rec = do(t, router, http.MethodPost, "/v1/seas", `{"name":"Abyss","depth_m":20000,"salinity_ppt":18}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/v1/seas", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for i := 1; i < domain.MaxSeas; i++ {
		rec = do(t, router, http.MethodPost, "/v1/seas", `{"name":"Sea","depth_m":10,"salinity_ppt":10}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec = do(t, router, http.MethodPost, "/v1/seas", `{"name":"Overflow","depth_m":10,"salinity_ppt":10}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/seas", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Count int `json:"count"`
	}](t, rec)
	assert.Equal(t, domain.MaxSeas, list.Count)
}
