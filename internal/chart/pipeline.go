package chart

import (
	"math"

	"climate-explorer/internal/model"
)

// Input is everything one chart render depends on. Response and Base may be
// nil while data is still loading.
type Input struct {
	Response    model.TemperatureResponse
	Stations    []model.Station
	ViewMode    model.ViewMode
	Base        *model.YearRange
	FocusInput  string
	ZoomPercent int
	Dimensions  Dimensions
}

// View is the fully prepared chart. Visible and Scales are nil when there is
// no base range yet.
type View struct {
	Visible    *model.YearRange `json:"visible_range"`
	FocusYear  *float64         `json:"focus_year"`
	FocusError *FocusError      `json:"-"`
	Series     []PreparedSeries `json:"series"`
	YDomain    [2]float64       `json:"y_domain"`
	Scales     *Scales          `json:"scales"`
	Bands      []Band           `json:"bands,omitempty"`
}

// Empty reports whether no point is visible.
func (v View) Empty() bool {
	for _, s := range v.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

// Build runs the whole pipeline: zoom window, series preparation, value
// domain, bands and scales. It never fails.
func Build(in Input) View {
	zoom := NewZoomState(in.Base)
	// Untouched inputs keep the midpoint focus and full zoom.
	if in.FocusInput != "" {
		zoom = zoom.SetFocus(in.FocusInput)
	}
	if in.ZoomPercent != 0 {
		zoom = zoom.SetZoom(in.ZoomPercent)
	}

	view := View{
		Series:     []PreparedSeries{},
		YDomain:    fallbackDomain,
		FocusError: zoom.FocusError(),
	}

	visible, ok := zoom.VisibleRange()
	if !ok {
		return view
	}
	view.Visible = &visible
	if center, ok := zoom.Center(); ok {
		view.FocusYear = &center
	}

	if in.Response != nil {
		view.Series = PrepareSeries(in.Response, in.Stations, visible)
	}
	view.YDomain = ComputeYDomain(view.Series, in.ViewMode)
	if in.ViewMode.WantsBands() {
		view.Bands = BuildStdBands(view.Series)
	}
	scales := CalculateScales(visible, view.YDomain, in.Dimensions)
	view.Scales = &scales
	return view
}

// NearestPoint finds the visible point whose x is closest to xValue, used for
// hover tooltips. Ties go to the earliest point.
func NearestPoint(series []PreparedSeries, xValue float64) (ChartPoint, bool) {
	var best ChartPoint
	bestDistance := math.Inf(1)
	found := false
	for _, s := range series {
		for _, p := range s.Points {
			if d := math.Abs(p.XValue - xValue); d < bestDistance {
				best, bestDistance, found = p, d, true
			}
		}
	}
	return best, found
}
