package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waste-analytics/internal/config"
	httpServer "github.com/waste-analytics/internal/delivery/http"
	"github.com/waste-analytics/internal/delivery/http/handler"
	"github.com/waste-analytics/internal/domain"
	"github.com/waste-analytics/internal/store"
	"github.com/waste-analytics/internal/usecase"
)

type stubRepo struct {
	records []domain.Record
	err     error
}

func (r *stubRepo) Fetch(ctx context.Context) ([]domain.Record, error) {
	return r.records, r.err
}

func (r *stubRepo) Name() string { return "stub" }

func records() []domain.Record {
	return []domain.Record{
		{City: "Delhi", WasteType: "Plastic", WasteGenerated: 100, RecyclingRate: 40, MES: 5, DisposalMethod: "Landfill",
			CostOfWasteManagement: 1000, AwarenessCampaignsCount: 10, PopulationDensity: 5000, LandfillCapacity: 200000, Year: 2020},
		{City: "Delhi", WasteType: "Organic", WasteGenerated: 200, RecyclingRate: 60, MES: 7, DisposalMethod: "Composting",
			CostOfWasteManagement: 2000, AwarenessCampaignsCount: 20, PopulationDensity: 9999, LandfillCapacity: 1, Year: 2021},
		{City: "Mumbai", WasteType: "Plastic", WasteGenerated: 300, RecyclingRate: 50, MES: 6, DisposalMethod: "Recycling",
			CostOfWasteManagement: 3000, AwarenessCampaignsCount: 30, PopulationDensity: 8000, LandfillCapacity: 300000, Year: 2020},
		{City: "Atlantis", WasteType: "Plastic", WasteGenerated: 50, RecyclingRate: 90, MES: 9, DisposalMethod: "Landfill",
			CostOfWasteManagement: 100, AwarenessCampaignsCount: 5, PopulationDensity: 10, LandfillCapacity: 10, Year: 2020},
	}
}

func newTestServer(t *testing.T, repo *stubRepo, load bool) *httpServer.Server {
	t.Helper()
	logger := zap.NewNop()
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		View:   config.ViewConfig{TopCities: 10, TablePageSize: 25, MaxTablePageSize: 500},
	}

	datasetUC := usecase.NewDatasetUseCase(store.New(), repo, logger)
	if load {
		require.NoError(t, datasetUC.Load(context.Background()))
	}
	dashboardUC := usecase.NewDashboardUseCase(datasetUC, cfg.View, logger)
	exportUC := usecase.NewExportUseCase(datasetUC, logger)

	return httpServer.NewServer(cfg, logger,
		handler.NewDatasetHandler(datasetUC, logger),
		handler.NewDashboardHandler(dashboardUC, logger),
		handler.NewExportHandler(exportUC, logger),
	)
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func doRequest(t *testing.T, s *httpServer.Server, method, target string, body io.Reader) (*http.Response, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t, &stubRepo{records: records()}, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["dataset_loaded"])
}

func TestServer_DatasetEndpoints(t *testing.T) {
	s := newTestServer(t, &stubRepo{records: records()}, true)

	resp, env := doRequest(t, s, http.MethodGet, "/api/v1/dataset", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var info domain.DatasetInfo
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, "stub", info.Source)
	assert.Equal(t, 4, info.Records)

	resp, env = doRequest(t, s, http.MethodGet, "/api/v1/dataset/summary", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var summary domain.DatasetSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 3, summary.TotalCities)
	assert.InDelta(t, 650, summary.TotalWaste, 1e-9)

	resp, env = doRequest(t, s, http.MethodGet, "/api/v1/dataset/options", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var opts domain.FilterOptions
	require.NoError(t, json.Unmarshal(env.Data, &opts))
	assert.Equal(t, []string{"Atlantis", "Delhi", "Mumbai"}, opts.Cities)
}

func TestServer_Views(t *testing.T) {
	s := newTestServer(t, &stubRepo{records: records()}, true)

	t.Run("overview", func(t *testing.T) {
		resp, env := doRequest(t, s, http.MethodGet, "/api/v1/views/overview?top=2", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			TopRecycling struct {
				Labels []string `json:"labels"`
			} `json:"top_recycling"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &out))
		assert.Equal(t, []string{"Atlantis", "Delhi"}, out.TopRecycling.Labels)
	})

	t.Run("cost with comma separated and repeated lists", func(t *testing.T) {
		for _, target := range []string{
			"/api/v1/views/cost?cities=Delhi,Mumbai&waste_types=Plastic",
			"/api/v1/views/cost?cities=Delhi&cities=Mumbai&waste_types=Plastic",
		} {
			resp, env := doRequest(t, s, http.MethodGet, target, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var out struct {
				CostByCity struct {
					Labels []string `json:"labels"`
				} `json:"cost_by_city"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &out))
			assert.Equal(t, []string{"Mumbai", "Delhi"}, out.CostByCity.Labels, target)
		}
	})

	t.Run("efficiency", func(t *testing.T) {
		resp, env := doRequest(t, s, http.MethodGet, "/api/v1/views/efficiency", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Matrix struct {
				Rows   []string    `json:"rows"`
				Cols   []string    `json:"cols"`
				Values [][]float64 `json:"values"`
			} `json:"matrix"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &out))
		assert.Equal(t, []string{"Plastic", "Organic"}, out.Matrix.Rows)
		assert.Equal(t, []string{"Landfill", "Composting", "Recycling"}, out.Matrix.Cols)
		assert.Equal(t, []float64{0, 7, 0}, out.Matrix.Values[1])
	})

	t.Run("landfill show_all", func(t *testing.T) {
		resp, env := doRequest(t, s, http.MethodGet, "/api/v1/views/landfill?cities=Delhi&show_all=true", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			ByDensity struct {
				Labels []string `json:"labels"`
			} `json:"by_density"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &out))
		assert.Equal(t, []string{"Mumbai", "Delhi", "Atlantis"}, out.ByDensity.Labels)
	})

	t.Run("geographic skips unknown city", func(t *testing.T) {
		resp, env := doRequest(t, s, http.MethodGet, "/api/v1/views/geographic?waste_type=All", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Zoom    int `json:"zoom"`
			Markers []struct {
				City string `json:"city"`
			} `json:"markers"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &out))
		assert.Equal(t, domain.MapZoom, out.Zoom)
		require.Len(t, out.Markers, 2)
		assert.Equal(t, "Delhi", out.Markers[0].City)
	})

	t.Run("awareness invalid bin width", func(t *testing.T) {
		resp, env := doRequest(t, s, http.MethodGet, "/api/v1/views/awareness?rate_bin_width=abc", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_REQUEST", env.Error.Code)

		resp, env = doRequest(t, s, http.MethodGet, "/api/v1/views/awareness?campaign_bin_width=-2", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_BIN_WIDTH", env.Error.Code)
	})

	t.Run("awareness non-finite bin width", func(t *testing.T) {
		for _, q := range []string{"rate_bin_width=NaN", "rate_bin_width=Inf", "campaign_bin_width=-Inf", "campaign_bin_width=1e400"} {
			resp, env := doRequest(t, s, http.MethodGet, "/api/v1/views/awareness?"+q, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
			require.NotNil(t, env.Error, q)
			assert.Equal(t, "INVALID_REQUEST", env.Error.Code, q)
		}
	})

	t.Run("awareness tiny bin width", func(t *testing.T) {
		for _, q := range []string{"rate_bin_width=1e-300", "rate_bin_width=0.0000001"} {
			resp, env := doRequest(t, s, http.MethodGet, "/api/v1/views/awareness?"+q, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
			require.NotNil(t, env.Error, q)
			assert.Equal(t, "INVALID_BIN_WIDTH", env.Error.Code, q)
			assert.Equal(t, float64(1000), env.Error.Details["max_bins"], q)
		}

		resp, env := doRequest(t, s, http.MethodGet, "/api/v1/views/awareness?rate_bin_width=0.5", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out struct {
			RecyclingHistogram []struct {
				Count int `json:"count"`
			} `json:"recycling_histogram"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &out))
		// средние 50, 50 и 90: от 50 до 90 с шагом 0.5
		assert.Len(t, out.RecyclingHistogram, 81)
	})
}

func TestServer_Records(t *testing.T) {
	s := newTestServer(t, &stubRepo{records: records()}, true)

	resp, env := doRequest(t, s, http.MethodGet, "/api/v1/records?q=DELHI&limit=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(4), env.Meta["total"])
	assert.Equal(t, float64(2), env.Meta["filtered"])

	var page struct {
		Rows       []domain.Record `json:"rows"`
		TotalPages int             `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "Delhi", page.Rows[0].City)
	assert.Equal(t, 2, page.TotalPages)

	resp, env = doRequest(t, s, http.MethodGet, "/api/v1/dataset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var info struct {
		Source   string `json:"source"`
		Records  int    `json:"records"`
		Filtered int    `json:"filtered"`
		LoadedAt string `json:"loaded_at"`
		Filter   *struct {
			SearchText string `json:"search_text"`
		} `json:"filter"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, "stub", info.Source)
	assert.Equal(t, 4, info.Records)
	assert.Equal(t, 2, info.Filtered)
	assert.NotEmpty(t, info.LoadedAt)
	require.NotNil(t, info.Filter)
	assert.Equal(t, "DELHI", info.Filter.SearchText)

	resp, env = doRequest(t, s, http.MethodGet, "/api/v1/records?limit=5000", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
	assert.Equal(t, "max=1000", env.Error.Details["limit"])
}

func TestServer_Export(t *testing.T) {
	s := newTestServer(t, &stubRepo{records: records()}, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/records/export?cities=Mumbai", nil)
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment; filename=\"waste-records-")
	assert.Equal(t, "1", resp.Header.Get("X-Total-Rows"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// xlsx - zip-архив
	assert.True(t, strings.HasPrefix(string(body), "PK"))
}

func TestServer_DatasetUnavailable(t *testing.T) {
	repo := &stubRepo{err: errors.New("connection refused")}
	s := newTestServer(t, repo, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, target := range []string{
		"/api/v1/dataset/summary",
		"/api/v1/views/overview",
		"/api/v1/views/geographic",
		"/api/v1/records",
		"/api/v1/records/export",
	} {
		resp, env := doRequest(t, s, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, target)
		require.NotNil(t, env.Error, target)
		assert.Equal(t, "DATASET_UNAVAILABLE", env.Error.Code, target)
	}

	resp, env := doRequest(t, s, http.MethodPost, "/api/v1/dataset/reload", strings.NewReader(`{"reason":"retry"}`))
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DATASET_LOAD_FAILED", env.Error.Code)
	assert.Equal(t, "stub", env.Error.Details["source"])
}

func TestServer_ReloadRecovers(t *testing.T) {
	repo := &stubRepo{err: errors.New("not yet")}
	s := newTestServer(t, repo, false)

	repo.err = nil
	repo.records = records()

	resp, env := doRequest(t, s, http.MethodPost, "/api/v1/dataset/reload", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Source  string `json:"source"`
		Records int    `json:"records"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "stub", out.Source)
	assert.Equal(t, 4, out.Records)

	resp, _ = doRequest(t, s, http.MethodGet, "/api/v1/views/overview", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_NotFound(t *testing.T) {
	s := newTestServer(t, &stubRepo{records: records()}, true)

	resp, env := doRequest(t, s, http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
