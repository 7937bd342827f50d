package models

import (
	"climate-explorer/internal/chart"
	"climate-explorer/internal/model"
)

// YearRange is an inclusive request range; To must not precede From.
type YearRange struct {
	From int `json:"from" binding:"required"`
	To   int `json:"to" binding:"required,gtefield=From"`
}

func (r YearRange) Model() model.YearRange {
	return model.YearRange{From: r.From, To: r.To}
}

// TemperatureDataRequest is the body of POST /api/temperature-data
type TemperatureDataRequest struct {
	StationIDs     []string  `json:"station_ids" binding:"required,min=1,dive,required"`
	Mode           string    `json:"mode" binding:"required,oneof=monthly annual"`
	IncludeStdBand bool      `json:"include_std_band"`
	YearRange      YearRange `json:"year_range" binding:"required"`
}

// AnalyticsRequest is the body of POST /api/analytics
type AnalyticsRequest struct {
	StationIDs []string  `json:"station_ids" binding:"required,min=1,dive,required"`
	YearRange  YearRange `json:"year_range" binding:"required"`
}

// ChartRequest is the body of POST /api/chart and /api/chart.png
type ChartRequest struct {
	StationIDs []string  `json:"station_ids" binding:"required,min=1,dive,required"`
	ViewMode   string    `json:"view_mode" binding:"required,oneof=monthly annual annual_std"`
	YearRange  YearRange `json:"year_range" binding:"required"`
	// FocusYear is the raw text typed by the user; empty keeps the midpoint.
	FocusYear string `json:"focus_year"`
	// ZoomPercent of 0 means the full range.
	ZoomPercent int         `json:"zoom_percent" binding:"omitempty,min=25,max=100"`
	Dimensions  *Dimensions `json:"dimensions,omitempty"`
	// HoverYear asks for the point nearest to this x value, for tooltips.
	HoverYear *float64 `json:"hover_year,omitempty"`
}

type Margin struct {
	Top    float64 `json:"top" binding:"min=0"`
	Right  float64 `json:"right" binding:"min=0"`
	Bottom float64 `json:"bottom" binding:"min=0"`
	Left   float64 `json:"left" binding:"min=0"`
}

// Dimensions bounds the rendered size so PNG output stays reasonable.
type Dimensions struct {
	Width  float64 `json:"width" binding:"required,gt=0,max=4096"`
	Height float64 `json:"height" binding:"required,gt=0,max=4096"`
	Margin Margin  `json:"margin"`
}

// ChartDimensions returns the requested size, grown to at least the
// default size, or the default one.
func (r ChartRequest) ChartDimensions() chart.Dimensions {
	def := chart.DefaultDimensions()
	if r.Dimensions == nil {
		return def
	}
	m := r.Dimensions.Margin
	return chart.Dimensions{
		Width:  r.Dimensions.Width,
		Height: r.Dimensions.Height,
		Margin: chart.Margin{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left},
	}.AtLeast(def.Width, def.Height)
}
