package model

import (
	"fmt"
	"math"
)

// YearRange is an inclusive span of years. From <= To is expected but not
// enforced by the type; ranges are replaced, never mutated.
type YearRange struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

func (r YearRange) String() string {
	return fmt.Sprintf("%d – %d", r.From, r.To)
}

// Span is the number of years between the endpoints (To - From).
func (r YearRange) Span() int {
	return r.To - r.From
}

// Midpoint returns round((From+To)/2), rounding halves up.
func Midpoint(r YearRange) int {
	return int(math.Floor(float64(r.From+r.To)/2 + 0.5))
}

// Contains reports whether v lies inside [From, To].
func (r YearRange) Contains(v float64) bool {
	return v >= float64(r.From) && v <= float64(r.To)
}

// Clamp limits value to [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	return math.Min(math.Max(value, lo), hi)
}

// ClampInt is Clamp for integers.
func ClampInt(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
