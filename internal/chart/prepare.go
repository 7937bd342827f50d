package chart

import "climate-explorer/internal/model"

// monthStep spreads the twelve months of a year across one x unit.
const monthStep = 1.0 / 12

// ChartPoint is one plot-ready point. Optional fields are nil when the
// source mode does not carry them.
type ChartPoint struct {
	StationID   string   `json:"station_id"`
	StationName string   `json:"station_name"`
	XValue      float64  `json:"x"`
	YValue      float64  `json:"y"`
	Year        int      `json:"year"`
	Month       *int     `json:"month,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Mean        *float64 `json:"mean,omitempty"`
	Std         *float64 `json:"std,omitempty"`
	Upper       *float64 `json:"upper,omitempty"`
	Lower       *float64 `json:"lower,omitempty"`
}

// HasBand reports whether both deviation bounds are present.
func (p ChartPoint) HasBand() bool {
	return p.Lower != nil && p.Upper != nil
}

type PreparedSeries struct {
	StationID string       `json:"station_id"`
	Points    []ChartPoint `json:"points"`
}

// PrepareSeries maps a response into chart points restricted to visible
// (inclusive on both ends). Every input series yields an entry, possibly
// with no points, and input order is kept.
func PrepareSeries(resp model.TemperatureResponse, stations []model.Station, visible model.YearRange) []PreparedSeries {
	names := make(map[string]string, len(stations))
	for _, s := range stations {
		names[s.ID] = s.Name
	}
	nameOf := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return id
	}

	switch r := resp.(type) {
	case *model.MonthlyResponse:
		if r == nil {
			return []PreparedSeries{}
		}
		return PrepareSeries(*r, stations, visible)
	case *model.AnnualResponse:
		if r == nil {
			return []PreparedSeries{}
		}
		return PrepareSeries(*r, stations, visible)
	case model.MonthlyResponse:
		out := make([]PreparedSeries, 0, len(r.Series))
		for _, series := range r.Series {
			name := nameOf(series.StationID)
			points := make([]ChartPoint, 0, len(series.Points))
			for _, p := range series.Points {
				x := float64(p.Year) + float64(p.Month-1)*monthStep
				if !visible.Contains(x) {
					continue
				}
				month, temp := p.Month, p.Temperature
				points = append(points, ChartPoint{
					StationID:   series.StationID,
					StationName: name,
					XValue:      x,
					YValue:      p.Temperature,
					Year:        p.Year,
					Month:       &month,
					Temperature: &temp,
				})
			}
			out = append(out, PreparedSeries{StationID: series.StationID, Points: points})
		}
		return out
	case model.AnnualResponse:
		out := make([]PreparedSeries, 0, len(r.Series))
		for _, series := range r.Series {
			name := nameOf(series.StationID)
			points := make([]ChartPoint, 0, len(series.Points))
			for _, p := range series.Points {
				x := float64(p.Year)
				if !visible.Contains(x) {
					continue
				}
				mean := p.Mean
				points = append(points, ChartPoint{
					StationID:   series.StationID,
					StationName: name,
					XValue:      x,
					YValue:      p.Mean,
					Year:        p.Year,
					Mean:        &mean,
					Std:         copyFloat(p.Std),
					Upper:       copyFloat(p.Upper),
					Lower:       copyFloat(p.Lower),
				})
			}
			out = append(out, PreparedSeries{StationID: series.StationID, Points: points})
		}
		return out
	default:
		return []PreparedSeries{}
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
