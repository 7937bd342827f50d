package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"climate-explorer/internal/api/models"
	"climate-explorer/internal/data"
)

const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidPayload   = "INVALID_PAYLOAD"
	CodeInvalidStation   = "INVALID_STATION"
	CodeInvalidYearRange = "INVALID_YEAR_RANGE"
	CodeNoData           = "NO_DATA"
	CodeInternal         = "INTERNAL_ERROR"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.NewError(code, message))
}

// respondBindError reports a malformed or invalid request body.
func respondBindError(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
}

// respondQueryError maps repository errors onto the API error envelope.
func respondQueryError(c *gin.Context, err error) {
	message := err.Error()
	var qe *data.QueryError
	if errors.As(err, &qe) {
		message = qe.Message
	}
	switch {
	case errors.Is(err, data.ErrInvalidStation):
		respondError(c, http.StatusBadRequest, CodeInvalidStation, message)
	case errors.Is(err, data.ErrInvalidYearRange):
		respondError(c, http.StatusUnprocessableEntity, CodeInvalidYearRange, message)
	case errors.Is(err, data.ErrNoData):
		respondError(c, http.StatusNotFound, CodeNoData, "No data for the selected stations and year range.")
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
	}
}
