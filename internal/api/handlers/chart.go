package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"climate-explorer/internal/api/models"
	"climate-explorer/internal/chart"
	"climate-explorer/internal/data"
	"climate-explorer/internal/model"
	"climate-explorer/internal/render"
)

// ChartHandler runs a repository query through the chart pipeline.
type ChartHandler struct {
	store    *data.Store
	renderer *render.Renderer
	logger   *slog.Logger
}

func NewChartHandler(store *data.Store, renderer *render.Renderer, logger *slog.Logger) *ChartHandler {
	if renderer == nil {
		renderer = render.NewRenderer(nil)
	}
	return &ChartHandler{
		store:    store,
		renderer: renderer,
		logger:   logger.With("component", "chart"),
	}
}

// build binds the request and prepares the view. It writes the error
// response itself and returns ok=false on failure.
func (h *ChartHandler) build(c *gin.Context) (models.ChartRequest, chart.View, bool) {
	var req models.ChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return req, chart.View{}, false
	}
	mode, err := model.ParseViewMode(req.ViewMode)
	if err != nil {
		respondBindError(c, err)
		return req, chart.View{}, false
	}

	repo := h.store.Current()
	base := req.YearRange.Model()
	resp, err := repo.Temperature(data.Query{
		StationIDs:     req.StationIDs,
		Mode:           mode.DataMode(),
		IncludeStdBand: mode.WantsBands(),
		YearRange:      base,
	})
	if err != nil {
		respondQueryError(c, err)
		return req, chart.View{}, false
	}

	view := chart.Build(chart.Input{
		Response:    resp,
		Stations:    repo.Stations(),
		ViewMode:    mode,
		Base:        &base,
		FocusInput:  req.FocusYear,
		ZoomPercent: req.ZoomPercent,
		Dimensions:  req.ChartDimensions(),
	})
	if view.FocusError != nil {
		h.logger.Debug("focus year rejected", "input", req.FocusYear, "kind", view.FocusError.Kind.String())
	}
	return req, view, true
}

// GetChart handles POST /api/chart
func (h *ChartHandler) GetChart(c *gin.Context) {
	req, view, ok := h.build(c)
	if !ok {
		return
	}
	resp := models.NewChartResponse(model.ViewMode(req.ViewMode), view, req.ChartDimensions())
	if req.HoverYear != nil {
		if p, ok := chart.NearestPoint(view.Series, *req.HoverYear); ok {
			resp.HoverPoint = &p
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetChartPNG handles POST /api/chart.png
func (h *ChartHandler) GetChartPNG(c *gin.Context) {
	req, view, ok := h.build(c)
	if !ok {
		return
	}
	img, err := h.renderer.PNG(view, req.ChartDimensions())
	if err != nil {
		h.logger.Error("render chart", "error", err)
		respondError(c, http.StatusInternalServerError, CodeInternal, "Failed to render chart")
		return
	}
	c.Data(http.StatusOK, "image/png", img)
}
