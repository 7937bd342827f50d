package chart

import (
	"math"

	"climate-explorer/internal/model"
)

// fallbackDomain is used when there is nothing to measure.
var fallbackDomain = [2]float64{0, 1}

// ComputeYDomain returns [min, max] of the plotted values across all series.
// In annual_std mode the band bounds are included, falling back to the
// plotted value for points without them. No padding is applied.
func ComputeYDomain(series []PreparedSeries, mode model.ViewMode) [2]float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	seen := false
	for _, s := range series {
		for _, p := range s.Points {
			seen = true
			low, high := p.YValue, p.YValue
			if mode == model.ViewAnnualStd {
				if p.Lower != nil {
					low = *p.Lower
				}
				if p.Upper != nil {
					high = *p.Upper
				}
			}
			lo = math.Min(lo, low)
			hi = math.Max(hi, high)
		}
	}
	if !seen {
		return fallbackDomain
	}
	return [2]float64{lo, hi}
}
