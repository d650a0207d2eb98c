package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"PCQuote/internal/config"
	"PCQuote/internal/model"
	"PCQuote/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedReader struct{ catalog *model.Catalog }

func (r fixedReader) ReadCatalog(context.Context) (*model.Catalog, error) {
	if r.catalog == nil {
		return nil, model.ErrCatalogNotLoaded
	}
	return r.catalog, nil
}

func fl(v float64) *float64 { return &v }

func newTestRouter(t *testing.T, c *model.Catalog) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	svc := service.NewCatalogService(fixedReader{catalog: c}, nil, config.EvaluatorConfig{ExtraHeadroomW: 50, PSUStepW: 50}, logger)
	if c != nil {
		require.NoError(t, svc.Load(context.Background()))
	}
	return NewRouter(svc, logger, false)
}

func testCatalog() *model.Catalog {
	return &model.Catalog{
		CPUs: []*model.CPUComponent{{
			ComponentBase: model.ComponentBase{ID: "cpu_amd_ryzen_5_7600", Name: "AMD Ryzen 5 7600"},
			CPUSpec:       model.CPUSpec{Socket: "AM5", TDPW: fl(65)},
		}},
		Motherboards: []*model.MotherboardComponent{{
			ComponentBase:   model.ComponentBase{ID: "motherboard_b550", Name: "ASUS B550"},
			MotherboardSpec: model.MotherboardSpec{Socket: "AM4"},
		}},
		Compat: &model.CompatibilityMeta{Notes: "test"},
	}
}

func do(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(newTestRouter(t, nil), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCatalogEndpoints_NotLoaded(t *testing.T) {
	r := newTestRouter(t, nil)
	assert.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodGet, "/api/catalog/meta", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodGet, "/api/catalog/cpus", nil).Code)
	// 未配置流水线
	assert.Equal(t, http.StatusInternalServerError, do(r, http.MethodPost, "/sync/build", nil).Code)
}

func TestCatalogEndpoints(t *testing.T) {
	r := newTestRouter(t, testCatalog())

	w := do(r, http.MethodGet, "/api/catalog/meta", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"notes":"test"`)

	w = do(r, http.MethodGet, "/api/catalog/cpus?page=1&page_size=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Total int             `json:"total"`
		Items []model.CPUItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "DDR5", list.Items[0].MemoryType)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/catalog/widgets", nil).Code)
}

func TestEvaluateEndpoint(t *testing.T) {
	r := newTestRouter(t, testCatalog())

	body, _ := json.Marshal(model.SelectionRequest{CPUID: "cpu_amd_ryzen_5_7600", MotherboardID: "motherboard_b550"})
	w := do(r, http.MethodPost, "/api/evaluate", body)
	require.Equal(t, http.StatusOK, w.Code)

	var res model.EvaluationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Statuses, 1)
	assert.Equal(t, "CPU ↔ Motherboard", res.Statuses[0].Label)
	assert.False(t, res.Statuses[0].OK)
	require.Len(t, res.Issues, 1)

	body, _ = json.Marshal(model.SelectionRequest{GPUID: "missing"})
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/api/evaluate", body).Code)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/evaluate", []byte("{")).Code)
}

type stubRuns struct {
	run *model.CatalogBuildRun
	err error
}

func (s stubRuns) LatestRun(context.Context) (*model.CatalogBuildRun, error) { return s.run, s.err }

func TestLatestRunEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	cfg := config.EvaluatorConfig{ExtraHeadroomW: 50, PSUStepW: 50}

	// 未启用 postgres
	svc := service.NewCatalogService(fixedReader{}, nil, cfg, logger)
	assert.Equal(t, http.StatusNotFound, do(NewRouter(svc, logger, false), http.MethodGet, "/sync/runs/latest", nil).Code)

	svc = service.NewCatalogService(fixedReader{}, nil, cfg, logger).WithRunHistory(stubRuns{err: model.ErrNoBuildRun})
	assert.Equal(t, http.StatusNotFound, do(NewRouter(svc, logger, false), http.MethodGet, "/sync/runs/latest", nil).Code)

	svc = service.NewCatalogService(fixedReader{}, nil, cfg, logger).WithRunHistory(stubRuns{run: &model.CatalogBuildRun{RunUUID: "run-1", Conflicts: 3}})
	w := do(NewRouter(svc, logger, false), http.MethodGet, "/sync/runs/latest", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var run model.CatalogBuildRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	assert.Equal(t, "run-1", run.RunUUID)
	assert.Equal(t, 3, run.Conflicts)
}

func TestListHugePage(t *testing.T) {
	r := newTestRouter(t, testCatalog())
	w := do(r, http.MethodGet, "/api/catalog/cpus?page=9223372036854775807&page_size=50", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}
