package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"climate-explorer/internal/api/models"
	"climate-explorer/internal/data"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	var rows []data.MonthlyRecord
	for year := 2000; year <= 2003; year++ {
		for m := 1; m <= 12; m++ {
			rows = append(rows,
				data.MonthlyRecord{StationID: "101", Year: year, Month: m, Temperature: float64(m)},
				data.MonthlyRecord{StationID: "202", Year: year, Month: m, Temperature: float64(year - 1990)},
			)
		}
	}
	ds, err := data.NewDataset(rows)
	require.NoError(t, err)
	repo, err := data.NewRepository(ds, 16)
	require.NoError(t, err)

	return NewRouter(data.NewStore(repo), Options{
		AllowedOrigins: []string{"http://localhost:5173"},
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorDetail {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthAndStations(t *testing.T) {
	r := testRouter(t)

	w := do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","stations":2}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/stations", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"id":"101","name":"Station 101","first_year":2000,"last_year":2003},
		{"id":"202","name":"Station 202","first_year":2000,"last_year":2003}
	]`, w.Body.String())
}

func TestTemperatureData(t *testing.T) {
	r := testRouter(t)

	w := do(t, r, http.MethodPost, "/api/temperature-data",
		`{"station_ids":["202","101","202"],"mode":"annual","include_std_band":true,"year_range":{"from":2001,"to":2002}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Mode   string `json:"mode"`
		Series []struct {
			StationID string `json:"station_id"`
			Points    []struct {
				Year  int      `json:"year"`
				Mean  float64  `json:"mean"`
				Std   *float64 `json:"std"`
				Upper *float64 `json:"upper"`
			} `json:"points"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "annual", resp.Mode)
	require.Len(t, resp.Series, 2)
	assert.Equal(t, "101", resp.Series[0].StationID)
	require.Len(t, resp.Series[1].Points, 2)
	p := resp.Series[1].Points[0]
	assert.Equal(t, 2001, p.Year)
	assert.Equal(t, 11.0, p.Mean)
	require.NotNil(t, p.Std)
	assert.Equal(t, 0.0, *p.Std)
}

func TestTemperatureDataErrors(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed", `{"station_ids":`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"empty stations", `{"station_ids":[],"mode":"annual","year_range":{"from":2000,"to":2001}}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad mode", `{"station_ids":["101"],"mode":"weekly","year_range":{"from":2000,"to":2001}}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"reversed range", `{"station_ids":["101"],"mode":"annual","year_range":{"from":2002,"to":2001}}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"monthly bands", `{"station_ids":["101"],"mode":"monthly","include_std_band":true,"year_range":{"from":2000,"to":2001}}`, http.StatusBadRequest, "INVALID_PAYLOAD"},
		{"unknown station", `{"station_ids":["999"],"mode":"annual","year_range":{"from":2000,"to":2001}}`, http.StatusBadRequest, "INVALID_STATION"},
		{"out of bounds", `{"station_ids":["101"],"mode":"monthly","year_range":{"from":1990,"to":2001}}`, http.StatusUnprocessableEntity, "INVALID_YEAR_RANGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/temperature-data", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}
}

func TestAnalytics(t *testing.T) {
	r := testRouter(t)

	w := do(t, r, http.MethodPost, "/api/analytics",
		`{"station_ids":["101","202"],"year_range":{"from":2000,"to":2001}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SelectedPeriod   struct{ From, To int } `json:"selected_period"`
		StationsAnalyzed int                    `json:"stations_analyzed"`
		OverallMin       float64                `json:"overall_min_temperature"`
		OverallMax       float64                `json:"overall_max_temperature"`
		PerStation       []struct {
			StationID string  `json:"station_id"`
			Mean      float64 `json:"mean"`
		} `json:"per_station"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2000, resp.SelectedPeriod.From)
	assert.Equal(t, 2001, resp.SelectedPeriod.To)
	assert.Equal(t, 2, resp.StationsAnalyzed)
	assert.Equal(t, 1.0, resp.OverallMin)
	assert.Equal(t, 12.0, resp.OverallMax)
	require.Len(t, resp.PerStation, 2)
	assert.InDelta(t, 10.5, resp.PerStation[1].Mean, 1e-9)

	w = do(t, r, http.MethodPost, "/api/analytics",
		`{"station_ids":["999"],"year_range":{"from":2000,"to":2001}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_STATION", decodeError(t, w).Code)
}

func TestChart(t *testing.T) {
	r := testRouter(t)

	w := do(t, r, http.MethodPost, "/api/chart",
		`{"station_ids":["101"],"view_mode":"annual_std","year_range":{"from":2000,"to":2003},"focus_year":"2001","zoom_percent":50}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ChartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.VisibleRange)
	assert.Equal(t, 2000, resp.VisibleRange.From)
	assert.Equal(t, 2002, resp.VisibleRange.To)
	assert.Nil(t, resp.FocusError)
	assert.False(t, resp.Empty)
	require.Len(t, resp.Series, 1)
	assert.Len(t, resp.Series[0].Points, 3)
	require.Len(t, resp.Bands, 1)
	assert.Len(t, resp.Bands[0].BandPoints, 3)
	require.NotNil(t, resp.Scales)
	assert.Equal(t, 640.0, resp.Dimensions.Width)
	require.NotEmpty(t, resp.Scales.XTicks)
	assert.Equal(t, 2000.0, resp.Scales.XTicks[0].Value)
	assert.Equal(t, 56.0, resp.Scales.XTicks[0].Position)
}

func TestChartFocusOutOfBounds(t *testing.T) {
	r := testRouter(t)

	w := do(t, r, http.MethodPost, "/api/chart",
		`{"station_ids":["101"],"view_mode":"monthly","year_range":{"from":2000,"to":2003},"focus_year":"1950","zoom_percent":25}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ChartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.FocusError)
	assert.Equal(t, "out_of_bounds", resp.FocusError.Kind)
	assert.Equal(t, "Focus year must stay within 2000 – 2003", resp.FocusError.Message)
	// the window still follows the clamped focus
	assert.Equal(t, 2000, resp.VisibleRange.From)
	assert.Equal(t, 2001, resp.VisibleRange.To)
	assert.Empty(t, resp.Bands)
}

func TestChartInvalidZoom(t *testing.T) {
	r := testRouter(t)

	w := do(t, r, http.MethodPost, "/api/chart",
		`{"station_ids":["101"],"view_mode":"annual","year_range":{"from":2000,"to":2003},"zoom_percent":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeError(t, w).Code)
}

func TestChartHoverPoint(t *testing.T) {
	r := testRouter(t)

	w := do(t, r, http.MethodPost, "/api/chart",
		`{"station_ids":["202"],"view_mode":"annual","year_range":{"from":2000,"to":2003},"hover_year":2001.4}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ChartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.HoverPoint)
	assert.Equal(t, 2001, resp.HoverPoint.Year)
	assert.Equal(t, 11.0, resp.HoverPoint.YValue)

	w = do(t, r, http.MethodPost, "/api/chart",
		`{"station_ids":["202"],"view_mode":"annual","year_range":{"from":2000,"to":2003}}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp = models.ChartResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.HoverPoint)
}

func TestChartPNGMinimumSize(t *testing.T) {
	r := testRouter(t)

	w := do(t, r, http.MethodPost, "/api/chart.png",
		`{"station_ids":["101"],"view_mode":"annual","year_range":{"from":2000,"to":2003},"dimensions":{"width":320,"height":160}}`)
	require.Equal(t, http.StatusOK, w.Code)

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 320, img.Bounds().Dy())
}

func TestChartPNG(t *testing.T) {
	r := testRouter(t)

	w := do(t, r, http.MethodPost, "/api/chart.png",
		`{"station_ids":["101","202"],"view_mode":"annual","year_range":{"from":2000,"to":2003},"dimensions":{"width":800,"height":400,"margin":{"top":10,"right":10,"bottom":30,"left":40}}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestCORSPreflight(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/chart", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotFound(t *testing.T) {
	w := do(t, testRouter(t), http.MethodGet, "/api/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, w).Code)
}
