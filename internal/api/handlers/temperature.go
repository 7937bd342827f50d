package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"climate-explorer/internal/api/models"
	"climate-explorer/internal/data"
	"climate-explorer/internal/model"
)

// TemperatureHandler serves raw station series.
type TemperatureHandler struct {
	store *data.Store
}

func NewTemperatureHandler(store *data.Store) *TemperatureHandler {
	return &TemperatureHandler{store: store}
}

// GetTemperatureData handles POST /api/temperature-data
func (h *TemperatureHandler) GetTemperatureData(c *gin.Context) {
	var req models.TemperatureDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	mode := model.DataMode(req.Mode)
	if mode == model.DataModeMonthly && req.IncludeStdBand {
		respondError(c, http.StatusBadRequest, CodeInvalidPayload,
			"Standard deviation bands are only available for annual mode.")
		return
	}

	resp, err := h.store.Current().Temperature(data.Query{
		StationIDs:     req.StationIDs,
		Mode:           mode,
		IncludeStdBand: req.IncludeStdBand,
		YearRange:      req.YearRange.Model(),
	})
	if err != nil {
		respondQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
