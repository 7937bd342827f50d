package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"climate-explorer/internal/analysis"
	"climate-explorer/internal/api/models"
	"climate-explorer/internal/data"
)

// AnalyticsHandler serves summary statistics.
type AnalyticsHandler struct {
	store *data.Store
}

func NewAnalyticsHandler(store *data.Store) *AnalyticsHandler {
	return &AnalyticsHandler{store: store}
}

// GetAnalytics handles POST /api/analytics
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	var req models.AnalyticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	summary, err := analysis.Summarize(h.store.Current(), req.StationIDs, req.YearRange.From, req.YearRange.To)
	if err != nil {
		respondQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
