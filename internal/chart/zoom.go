package chart

import "climate-explorer/internal/model"

const (
	MinZoomPercent = 25
	MaxZoomPercent = 100

	// minVisibleSpan keeps the window at least one year wide.
	minVisibleSpan = 1
)

// DeriveVisibleRange narrows base to a window of zoomPercent of its span,
// centered on focusYear. The focus is clamped into base and rounded to the
// nearest whole year; the result is always contained in base.
func DeriveVisibleRange(base model.YearRange, focusYear float64, zoomPercent int) model.YearRange {
	totalSpan := base.Span()
	requestedSpan := roundHalfUp(float64(totalSpan) * float64(zoomPercent) / 100)
	if requestedSpan < minVisibleSpan {
		requestedSpan = minVisibleSpan
	}

	safeFocus := roundHalfUp(model.Clamp(focusYear, float64(base.From), float64(base.To)))
	start := safeFocus - requestedSpan/2
	end := start + requestedSpan

	// Low edge first, then high edge.
	if start < base.From {
		start = base.From
		end = start + requestedSpan
	}
	if end > base.To {
		end = base.To
		start = end - requestedSpan
	}

	return model.YearRange{
		From: model.ClampInt(start, base.From, base.To),
		To:   model.ClampInt(end, base.From, base.To),
	}
}

// roundHalfUp rounds halves towards +Inf.
func roundHalfUp(v float64) int {
	return int(roundHalf(v))
}
