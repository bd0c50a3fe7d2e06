package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"titanicdash/app"
	"titanicdash/domain/core"
	"titanicdash/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI() (*API, *testkit.StaticProvider) {
	provider := testkit.NewStaticProvider(testkit.ScenarioDataset())
	return New(app.NewDashboardService(provider, nil)), provider
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decodeSummary(t *testing.T, w *httptest.ResponseRecorder) SummaryResponse {
	t.Helper()
	var resp SummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSummaryDefaults(t *testing.T) {
	a, _ := newTestAPI()

	w := get(t, a, "/api/v1/summary")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decodeSummary(t, w)
	assert.NotEmpty(t, resp.RenderID)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, 3, resp.Total)
	require.NotNil(t, resp.MeanAge)
	assert.InDelta(t, 22.333, *resp.MeanAge, 0.001)
	assert.Equal(t, "22.33", resp.MeanAgeDisplay)
	assert.Len(t, resp.Survival, 3)
	assert.Len(t, resp.Histogram.Counts, app.DefaultBins)
	assert.Len(t, resp.Histogram.Edges, app.DefaultBins+1)
	assert.True(t, resp.Criteria.Class.IsAll())
}

func TestSummaryMalesOnly(t *testing.T) {
	a, _ := newTestAPI()

	w := get(t, a, "/api/v1/summary?sex=male&bins=5")
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, []interface{}{
		map[string]interface{}{"sex": "male", "survived": 0.0, "count": 1.0},
		map[string]interface{}{"sex": "male", "survived": 1.0, "count": 1.0},
	}, raw["survival"])

	resp := decodeSummary(t, w)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, []int{1, 0, 0, 0, 1}, resp.Histogram.Counts)
}

func TestSummaryEmptySelection(t *testing.T) {
	a, _ := newTestAPI()

	w := get(t, a, "/api/v1/summary?submitted=1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mean_age":null`)
	assert.Contains(t, w.Body.String(), `"survival":[]`)
	assert.Contains(t, w.Body.String(), `"histogram":{"edges":[],"counts":[]}`)

	resp := decodeSummary(t, w)
	assert.Zero(t, resp.Count)
	assert.Equal(t, "NaN", resp.MeanAgeDisplay)
	assert.Empty(t, resp.Criteria.Sexes)
}

func TestSummaryBadRequest(t *testing.T) {
	a, _ := newTestAPI()

	w := get(t, a, "/api/v1/summary?sex=unknown")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INVALID_INPUT"`)
}

func TestDataUnavailable(t *testing.T) {
	a, provider := newTestAPI()
	provider.Err = core.NewDataUnavailableError("openml:titanic@1", errors.New("timeout"))

	for _, target := range []string{"/api/v1/summary", "/api/v1/dataset"} {
		w := get(t, a, target)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, target)
		assert.Contains(t, w.Body.String(), `"code":"DATA_UNAVAILABLE"`)
	}
}

func TestDatasetInfo(t *testing.T) {
	a, _ := newTestAPI()

	w := get(t, a, "/api/v1/dataset")
	require.Equal(t, http.StatusOK, w.Code)

	var resp DatasetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, app.SliderBounds{Min: 5, Max: 40}, resp.Bounds)
	assert.Equal(t, "scenario", resp.Meta.Name)
	assert.Equal(t, 1, resp.Meta.DroppedRows)
}

func TestHealth(t *testing.T) {
	a, provider := newTestAPI()
	w := get(t, a, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, provider.Calls())
}

func TestUnknownRoute(t *testing.T) {
	a, _ := newTestAPI()

	w := get(t, a, "/api/v1/passengers")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"NOT_FOUND"`)
}
