package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"climate-explorer/internal/model"
)

// FocusErrorKind classifies why a focus year was rejected.
type FocusErrorKind int

const (
	FocusNoBaseRange FocusErrorKind = iota + 1
	FocusEmpty
	FocusNotNumeric
	FocusOutOfBounds
)

func (k FocusErrorKind) String() string {
	switch k {
	case FocusNoBaseRange:
		return "no_base_range"
	case FocusEmpty:
		return "empty_input"
	case FocusNotNumeric:
		return "not_numeric"
	case FocusOutOfBounds:
		return "out_of_bounds"
	default:
		return "unknown"
	}
}

// FocusError is returned by ValidateFocusYear. Message is user-facing.
type FocusError struct {
	Kind    FocusErrorKind
	Message string
}

func (e *FocusError) Error() string {
	return e.Message
}

// ValidateFocusYear parses a typed focus year and checks it against base.
// It never clamps: out-of-range input is reported, not corrected.
func ValidateFocusYear(raw string, base *model.YearRange) (float64, error) {
	if base == nil {
		return 0, &FocusError{Kind: FocusNoBaseRange, Message: "Select a station to focus the zoom."}
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, &FocusError{Kind: FocusEmpty, Message: "Enter a year to focus the zoom"}
	}
	value, ok := parseFinite(trimmed)
	if !ok {
		return 0, &FocusError{Kind: FocusNotNumeric, Message: "Focus year must be numeric"}
	}
	if value < float64(base.From) || value > float64(base.To) {
		return 0, &FocusError{
			Kind:    FocusOutOfBounds,
			Message: fmt.Sprintf("Focus year must stay within %d – %d", base.From, base.To),
		}
	}
	return value, nil
}

func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
