package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"climate-explorer/internal/model"
)

func TestDeriveVisibleRange(t *testing.T) {
	base := model.YearRange{From: 1900, To: 2000}

	tests := []struct {
		name  string
		base  model.YearRange
		focus float64
		zoom  int
		want  model.YearRange
	}{
		{"centered", base, 1950, 50, model.YearRange{From: 1925, To: 1975}},
		{"focus at low edge", base, 1900, 50, model.YearRange{From: 1900, To: 1950}},
		{"focus at high edge", base, 2000, 50, model.YearRange{From: 1950, To: 2000}},
		{"focus below range is clamped", base, 1700, 25, model.YearRange{From: 1900, To: 1925}},
		{"focus above range is clamped", base, 2300, 25, model.YearRange{From: 1975, To: 2000}},
		{"fractional focus rounds", base, 1950.4, 50, model.YearRange{From: 1925, To: 1975}},
		{"two year range keeps one year span", model.YearRange{From: 1900, To: 1901}, 1901, 25, model.YearRange{From: 1900, To: 1901}},
		{"half span rounds up", model.YearRange{From: 1900, To: 1950}, 1925, 29, model.YearRange{From: 1918, To: 1933}},
		{"single year range", model.YearRange{From: 1900, To: 1900}, 1900, 25, model.YearRange{From: 1900, To: 1900}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveVisibleRange(tt.base, tt.focus, tt.zoom))
		})
	}
}

func TestDeriveVisibleRangeFullZoomIsBase(t *testing.T) {
	base := model.YearRange{From: 1859, To: 2021}
	for _, focus := range []float64{1000, 1859, 1900, 1940.5, 2021, 3000} {
		assert.Equal(t, base, DeriveVisibleRange(base, focus, 100), "focus %v", focus)
	}
}

func TestDeriveVisibleRangeStaysInsideBase(t *testing.T) {
	bases := []model.YearRange{
		{From: 1900, To: 1901},
		{From: 1900, To: 1903},
		{From: 1859, To: 1860},
		{From: 1880, To: 2020},
		{From: 2000, To: 2007},
	}
	for _, base := range bases {
		for zoom := MinZoomPercent; zoom <= MaxZoomPercent; zoom++ {
			for focus := float64(base.From - 5); focus <= float64(base.To+5); focus += 0.5 {
				got := DeriveVisibleRange(base, focus, zoom)
				if got.From < base.From || got.To > base.To {
					t.Fatalf("base %v focus %v zoom %d: window %v escapes base", base, focus, zoom, got)
				}
				if got.To-got.From < 1 {
					t.Fatalf("base %v focus %v zoom %d: window %v narrower than a year", base, focus, zoom, got)
				}
			}
		}
	}
}
