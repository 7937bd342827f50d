package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// YearInputs holds the raw, user-typed endpoints of a year range.
type YearInputs struct {
	From string
	To   string
}

// YearRangeErrors holds per-field messages; empty means the field is valid.
type YearRangeErrors struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

func (e YearRangeErrors) Empty() bool {
	return e.From == "" && e.To == ""
}

// ValidateYearInputs parses both endpoints and checks them against bounds
// (when non-nil). A range is returned only when there are no errors.
func ValidateYearInputs(values YearInputs, bounds *YearRange) (YearRangeErrors, *YearRange) {
	var errs YearRangeErrors
	from, fromOK := parseYear(values.From)
	to, toOK := parseYear(values.To)

	if !fromOK {
		errs.From = "Enter a valid start year"
	}
	if !toOK {
		errs.To = "Enter a valid end year"
	}
	if fromOK && bounds != nil && from < float64(bounds.From) {
		errs.From = fmt.Sprintf("Must be ≥ %d", bounds.From)
	}
	if toOK && bounds != nil && to > float64(bounds.To) {
		errs.To = fmt.Sprintf("Must be ≤ %d", bounds.To)
	}
	if !errs.Empty() {
		return errs, nil
	}
	if from > to {
		errs.To = "End year must be after start year"
		return errs, nil
	}
	return errs, &YearRange{From: int(from), To: int(to)}
}

func parseYear(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
