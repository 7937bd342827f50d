package models

import (
	"climate-explorer/internal/chart"
	"climate-explorer/internal/model"
)

// Tick is an axis tick value and its pixel position.
type Tick struct {
	Value    float64 `json:"value"`
	Position float64 `json:"position"`
}

// ScalesResponse describes both axes of a chart.
type ScalesResponse struct {
	X      chart.LinearScale `json:"x_scale"`
	Y      chart.LinearScale `json:"y_scale"`
	XTicks []Tick            `json:"x_ticks"`
	YTicks []Tick            `json:"y_ticks"`
}

// FocusStatus reports why the typed focus year was not accepted.
type FocusStatus struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ChartResponse is the prepared chart for the requested viewport.
type ChartResponse struct {
	ViewMode     model.ViewMode         `json:"view_mode"`
	VisibleRange *model.YearRange       `json:"visible_range"`
	FocusYear    *float64               `json:"focus_year"`
	FocusError   *FocusStatus           `json:"focus_error,omitempty"`
	Empty        bool                   `json:"empty"`
	Series       []chart.PreparedSeries `json:"series"`
	YDomain      [2]float64             `json:"y_domain"`
	Dimensions   chart.Dimensions       `json:"dimensions"`
	Scales       *ScalesResponse        `json:"scales"`
	Bands        []chart.Band           `json:"bands,omitempty"`
	HoverPoint   *chart.ChartPoint      `json:"hover_point,omitempty"`
}

// NewChartResponse converts a built view into its wire shape.
func NewChartResponse(mode model.ViewMode, view chart.View, dims chart.Dimensions) ChartResponse {
	resp := ChartResponse{
		ViewMode:     mode,
		VisibleRange: view.Visible,
		FocusYear:    view.FocusYear,
		Empty:        view.Empty(),
		Series:       view.Series,
		YDomain:      view.YDomain,
		Dimensions:   dims,
		Bands:        view.Bands,
	}
	if view.FocusError != nil {
		resp.FocusError = &FocusStatus{Kind: view.FocusError.Kind.String(), Message: view.FocusError.Message}
	}
	if s := view.Scales; s != nil {
		resp.Scales = &ScalesResponse{
			X:      s.X,
			Y:      s.Y,
			XTicks: ticks(s.X, s.XTicks),
			YTicks: ticks(s.Y, s.YTicks),
		}
	}
	return resp
}

func ticks(scale chart.LinearScale, values []float64) []Tick {
	out := make([]Tick, 0, len(values))
	for _, v := range values {
		out = append(out, Tick{Value: v, Position: scale.Scale(v)})
	}
	return out
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Stations int    `json:"stations,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewError builds an error envelope.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
