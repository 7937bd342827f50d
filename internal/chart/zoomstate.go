package chart

import (
	"strconv"
	"strings"

	"climate-explorer/internal/model"
)

// ZoomState tracks the focus/zoom inputs for one applied base range. It is a
// value type; setters return the updated state.
type ZoomState struct {
	Base        *model.YearRange
	FocusInput  string
	ZoomPercent int

	focusValue *float64
}

// NewZoomState starts centered on the base midpoint at full zoom.
func NewZoomState(base *model.YearRange) ZoomState {
	return ZoomState{Base: base}.Reset()
}

// Reset recenters on the midpoint and zooms fully out.
func (z ZoomState) Reset() ZoomState {
	z.ZoomPercent = MaxZoomPercent
	z.focusValue = nil
	z.FocusInput = ""
	if z.Base == nil {
		return z
	}
	mid := float64(model.Midpoint(*z.Base))
	z.FocusInput = formatYear(mid)
	z.focusValue = &mid
	return z
}

// SetFocus records typed input. Numeric input is clamped into the base range
// for centering the window; anything else clears the focus so the window
// falls back to the midpoint.
func (z ZoomState) SetFocus(input string) ZoomState {
	z.FocusInput = input
	if z.Base == nil {
		return z
	}
	v, ok := parseFocusValue(input)
	if !ok {
		z.focusValue = nil
		return z
	}
	clamped := model.Clamp(v, float64(z.Base.From), float64(z.Base.To))
	z.focusValue = &clamped
	return z
}

// SetZoom records the zoom percentage, limited to the supported range.
func (z ZoomState) SetZoom(percent int) ZoomState {
	z.ZoomPercent = model.ClampInt(percent, MinZoomPercent, MaxZoomPercent)
	return z
}

// FocusError is the validation message for the typed focus. Blank input is
// not reported here; ValidateFocusYear still rejects it when asked.
func (z ZoomState) FocusError() *FocusError {
	if z.Base == nil || strings.TrimSpace(z.FocusInput) == "" {
		return nil
	}
	if _, err := ValidateFocusYear(z.FocusInput, z.Base); err != nil {
		return err.(*FocusError)
	}
	return nil
}

// Center is the year the window is centered on.
func (z ZoomState) Center() (float64, bool) {
	if z.Base == nil {
		return 0, false
	}
	if z.focusValue != nil {
		return *z.focusValue, true
	}
	return float64(model.Midpoint(*z.Base)), true
}

// VisibleRange derives the window; ok is false without a base range.
func (z ZoomState) VisibleRange() (model.YearRange, bool) {
	center, ok := z.Center()
	if !ok {
		return model.YearRange{}, false
	}
	return DeriveVisibleRange(*z.Base, center, z.ZoomPercent), true
}

// parseFocusValue treats blank input as zero, like numeric coercion of
// an empty text field.
func parseFocusValue(input string) (float64, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, true
	}
	return parseFinite(trimmed)
}

func formatYear(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
