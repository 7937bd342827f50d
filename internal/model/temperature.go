package model

import (
	"encoding/json"
	"fmt"
)

// DataMode is the shape of series requested from the dataset.
type DataMode string

const (
	DataModeMonthly DataMode = "monthly"
	DataModeAnnual  DataMode = "annual"
)

// ViewMode is how the chart displays the data. ViewAnnualStd requests annual
// data and additionally draws deviation bands.
type ViewMode string

const (
	ViewMonthly   ViewMode = "monthly"
	ViewAnnual    ViewMode = "annual"
	ViewAnnualStd ViewMode = "annual_std"
)

func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewMonthly, ViewAnnual, ViewAnnualStd:
		return ViewMode(s), nil
	default:
		return "", fmt.Errorf("invalid view mode %q (allowed: monthly, annual, annual_std)", s)
	}
}

// DataMode returns the data shape backing the view.
func (v ViewMode) DataMode() DataMode {
	if v == ViewMonthly {
		return DataModeMonthly
	}
	return DataModeAnnual
}

// WantsBands reports whether deviation bands should be drawn.
func (v ViewMode) WantsBands() bool {
	return v == ViewAnnualStd
}

type MonthlyPoint struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Temperature float64 `json:"temperature"`
}

type MonthlySeries struct {
	StationID string         `json:"station_id"`
	Points    []MonthlyPoint `json:"points"`
}

// AnnualPoint carries optional deviation statistics; nil means absent.
type AnnualPoint struct {
	Year  int      `json:"year"`
	Mean  float64  `json:"mean"`
	Std   *float64 `json:"std"`
	Upper *float64 `json:"upper"`
	Lower *float64 `json:"lower"`
}

type AnnualSeries struct {
	StationID string        `json:"station_id"`
	Points    []AnnualPoint `json:"points"`
}

// TemperatureResponse is either a MonthlyResponse or an AnnualResponse.
type TemperatureResponse interface {
	Mode() DataMode
	isTemperatureResponse()
}

type MonthlyResponse struct {
	Series []MonthlySeries
}

type AnnualResponse struct {
	Series []AnnualSeries
}

func (MonthlyResponse) Mode() DataMode { return DataModeMonthly }
func (AnnualResponse) Mode() DataMode  { return DataModeAnnual }

func (MonthlyResponse) isTemperatureResponse() {}
func (AnnualResponse) isTemperatureResponse()  {}

type wireResponse struct {
	Mode   DataMode        `json:"mode"`
	Series json.RawMessage `json:"series"`
}

func (r MonthlyResponse) MarshalJSON() ([]byte, error) {
	series := r.Series
	if series == nil {
		series = []MonthlySeries{}
	}
	return json.Marshal(struct {
		Mode   DataMode        `json:"mode"`
		Series []MonthlySeries `json:"series"`
	}{DataModeMonthly, series})
}

func (r AnnualResponse) MarshalJSON() ([]byte, error) {
	series := r.Series
	if series == nil {
		series = []AnnualSeries{}
	}
	return json.Marshal(struct {
		Mode   DataMode       `json:"mode"`
		Series []AnnualSeries `json:"series"`
	}{DataModeAnnual, series})
}

// DecodeTemperatureResponse decodes the tagged wire shape {"mode", "series"}.
func DecodeTemperatureResponse(raw []byte) (TemperatureResponse, error) {
	var w wireResponse
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	switch w.Mode {
	case DataModeMonthly:
		var r MonthlyResponse
		if len(w.Series) > 0 {
			if err := json.Unmarshal(w.Series, &r.Series); err != nil {
				return nil, fmt.Errorf("decode monthly series: %w", err)
			}
		}
		return r, nil
	case DataModeAnnual:
		var r AnnualResponse
		if len(w.Series) > 0 {
			if err := json.Unmarshal(w.Series, &r.Series); err != nil {
				return nil, fmt.Errorf("decode annual series: %w", err)
			}
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown response mode %q", w.Mode)
	}
}

// Float returns a pointer to v, for building optional statistics.
func Float(v float64) *float64 {
	return &v
}
