package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"climate-explorer/internal/api/models"
	"climate-explorer/internal/data"
)

// StationHandler serves station metadata.
type StationHandler struct {
	store *data.Store
}

func NewStationHandler(store *data.Store) *StationHandler {
	return &StationHandler{store: store}
}

// ListStations handles GET /api/stations
func (h *StationHandler) ListStations(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Current().Stations())
}

// Health handles GET /health
func (h *StationHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:   "ok",
		Stations: len(h.store.Current().StationIDs()),
	})
}
