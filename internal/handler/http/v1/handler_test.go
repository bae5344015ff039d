package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mcadavid/maternal_mortality_dashboard/internal/config"
	"github.com/mcadavid/maternal_mortality_dashboard/internal/models"
	"github.com/mcadavid/maternal_mortality_dashboard/internal/service/mocks"
)

// newTestHandler creates a Handler instance over a mocked service.
func newTestHandler(t *testing.T) (*Handler, *mocks.MockDashboardService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockDashboardService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{HTTPPort: "8050"}

	handler := NewHandler(mockService, logger, cfg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockService, router
}

// makeRequest performs an HTTP request against the test router.
func makeRequest(router *gin.Engine, method, url string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func emptyView(year int, region string) *models.DashboardView {
	return &models.DashboardView{
		Map:           models.EmptyFigure(""),
		TimeSeries:    models.EmptyFigure(""),
		Distribution:  models.EmptyFigure(""),
		RegionBoxplot: models.EmptyFigure(""),
		Scatter:       models.EmptyFigure(""),
		Summary:       models.Summary{Year: year, Region: region},
	}
}

func TestGetDashboard_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	view := emptyView(2020, "Oriente")
	view.Summary.TotalCases = 7
	view.Summary.AffectedCount = 3
	view.Summary.MunicipalityCount = 5

	mockService.EXPECT().
		Refresh(gomock.Any(), 2020, "Oriente").
		Return(view).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/dashboard?year=2020&region=Oriente", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.Summary.TotalCases)
	assert.Contains(t, resp.Summary.Lines, "Total casos (filtro): 7")
	assert.Contains(t, resp.Summary.Lines, "Municipios afectados: 3/5")
	assert.Contains(t, resp.Summary.Lines, "Año: 2020 | Región: Oriente")
	assert.Empty(t, resp.Message)
}

func TestGetDashboard_DefaultsRegionToAll(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		Refresh(gomock.Any(), 2021, models.RegionAll).
		Return(emptyView(2021, models.RegionAll)).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/dashboard?year=2021", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Summary.Lines, "Año: 2021 | Región: Todas")
}

func TestGetDashboard_MissingYear(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().Refresh(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/dashboard?region=Oriente", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDashboard_UnparseableYear(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().Refresh(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/dashboard?year=veinte", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid query parameters")
}

func TestGetDashboard_DegradedViewStillOK(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	view := emptyView(2020, models.RegionAll)
	view.Message = "Error interno: something broke"

	mockService.EXPECT().
		Refresh(gomock.Any(), 2020, models.RegionAll).
		Return(view).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/dashboard?year=2020", nil)

	// the refresh contract never surfaces internal failures as HTTP errors
	assert.Equal(t, http.StatusOK, w.Code)

	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Error interno: something broke", resp.Message)
	require.NotNil(t, resp.Map)
	assert.Empty(t, resp.Map.Data)
}

func TestGetFilters(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		Filters().
		Return(&models.FilterOptions{
			Years:         []int{2019, 2020, 2021},
			Regions:       []string{"Oriente"},
			DefaultYear:   2021,
			DefaultRegion: models.RegionAll,
		}).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/dashboard/filters", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp FiltersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []int{2019, 2020, 2021}, resp.Years)
	assert.Equal(t, 2021, resp.DefaultYear)
	assert.Equal(t, models.RegionAll, resp.DefaultRegion)
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestRequestIDMiddleware(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware(logger))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := makeRequest(router, "GET", "/ping", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// a caller-provided ID is preserved
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
