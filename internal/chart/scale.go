package chart

import (
	"math"

	"climate-explorer/internal/model"
)

const (
	maxXTicks    = 10
	targetYTicks = 6

	// yPaddingRatio is the share of the value domain added above and below.
	yPaddingRatio = 0.1
	// flatPadding applies when the value domain has zero height.
	flatPadding = 1.0
)

type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Dimensions is the pixel size of the chart and its inner margins.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// DefaultDimensions is the smallest size the chart is drawn at.
func DefaultDimensions() Dimensions {
	return Dimensions{
		Width:  640,
		Height: 320,
		Margin: Margin{Top: 24, Right: 32, Bottom: 40, Left: 56},
	}
}

// AtLeast grows width and height to the given minimum, keeping margins.
func (d Dimensions) AtLeast(minWidth, minHeight float64) Dimensions {
	d.Width = math.Max(d.Width, minWidth)
	d.Height = math.Max(d.Height, minHeight)
	return d
}

// LinearScale maps Domain linearly onto Range.
type LinearScale struct {
	Domain [2]float64 `json:"domain"`
	Range  [2]float64 `json:"range"`
}

// Scale maps a domain value to its pixel position. A zero-width domain maps
// everything to the middle of the range.
func (s LinearScale) Scale(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]
	t := 0.5
	if span := d1 - d0; span != 0 {
		t = (v - d0) / span
	}
	return r0 + t*(r1-r0)
}

// Invert maps a pixel position back into the domain.
func (s LinearScale) Invert(px float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]
	t := 0.5
	if span := r1 - r0; span != 0 {
		t = (px - r0) / span
	}
	return d0 + t*(d1-d0)
}

// Ticks returns round values within the domain, aiming for about count of them.
func (s LinearScale) Ticks(count int) []float64 {
	return Ticks(s.Domain[0], s.Domain[1], count)
}

// Scales holds everything a renderer needs to place points and axes.
type Scales struct {
	X      LinearScale `json:"x_scale"`
	Y      LinearScale `json:"y_scale"`
	XTicks []float64   `json:"x_ticks"`
	YTicks []float64   `json:"y_ticks"`
}

// CalculateScales builds the pixel mappings for a visible window and value
// domain. The y axis is inverted so larger values sit higher.
func CalculateScales(visible model.YearRange, yDomain [2]float64, dims Dimensions) Scales {
	x := LinearScale{
		Domain: [2]float64{float64(visible.From), float64(visible.To)},
		Range:  [2]float64{dims.Margin.Left, dims.Width - dims.Margin.Right},
	}

	padding := (yDomain[1] - yDomain[0]) * yPaddingRatio
	if padding == 0 || math.IsNaN(padding) {
		padding = flatPadding
	}
	y := LinearScale{
		Domain: [2]float64{yDomain[0] - padding, yDomain[1] + padding},
		Range:  [2]float64{dims.Height - dims.Margin.Bottom, dims.Margin.Top},
	}

	xCount := visible.To - visible.From
	if xCount > maxXTicks {
		xCount = maxXTicks
	}
	return Scales{
		X:      x,
		Y:      y,
		XTicks: x.Ticks(xCount),
		YTicks: y.Ticks(targetYTicks),
	}
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Ticks returns "nice" values (multiples of 1, 2 or 5 times a power of ten)
// between start and stop inclusive. Non-positive counts yield no ticks.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return []float64{}
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	lo, hi := start, stop
	if reverse {
		lo, hi = stop, start
	}
	i1, i2, inc := tickSpec(lo, hi, float64(count))
	if !(i2 >= i1) {
		return []float64{}
	}
	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := 0; i < n; i++ {
		k := i1 + float64(i)
		if reverse {
			k = i2 - float64(i)
		}
		if inc < 0 {
			ticks[i] = k / -inc
		} else {
			ticks[i] = k * inc
		}
	}
	return ticks
}

// tickSpec returns the first and last tick indices and the increment. A
// negative increment means "divide by -inc", which keeps decimal ticks exact.
func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	errRatio := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case errRatio >= e10:
		factor = 10
	case errRatio >= e5:
		factor = 5
	case errRatio >= e2:
		factor = 2
	}
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = roundHalf(start * inc)
		i2 = roundHalf(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = roundHalf(start / inc)
		i2 = roundHalf(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

func roundHalf(v float64) float64 {
	return math.Floor(v + 0.5)
}
