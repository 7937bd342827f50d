package render

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/fogleman/gg"

	"climate-explorer/internal/chart"
)

// Config holds colors and stroke sizes used when rasterizing a chart.
type Config struct {
	LineWidth   float64
	PointRadius float64
	Background  color.RGBA
	GridColor   color.RGBA
	AxisColor   color.RGBA
	TextColor   color.RGBA
	BandAlpha   uint8
	Palette     []color.RGBA
}

// DefaultConfig returns the default chart styling.
func DefaultConfig() *Config {
	return &Config{
		LineWidth:   2.0,
		PointRadius: 2.0,
		Background:  color.RGBA{255, 255, 255, 255},
		GridColor:   color.RGBA{226, 232, 240, 255}, // Slate 200
		AxisColor:   color.RGBA{100, 116, 139, 255}, // Slate 500
		TextColor:   color.RGBA{51, 65, 85, 255},    // Slate 700
		BandAlpha:   56,
		Palette: []color.RGBA{
			{37, 99, 235, 255},  // Blue
			{220, 38, 38, 255},  // Red
			{22, 163, 74, 255},  // Green
			{217, 119, 6, 255},  // Amber
			{124, 58, 237, 255}, // Violet
			{8, 145, 178, 255},  // Cyan
		},
	}
}

// Renderer draws prepared chart views as PNG images.
type Renderer struct {
	config *Config
}

func NewRenderer(config *Config) *Renderer {
	if config == nil {
		config = DefaultConfig()
	}
	if len(config.Palette) == 0 {
		c := *config
		c.Palette = DefaultConfig().Palette
		config = &c
	}
	return &Renderer{config: config}
}

// seriesColor gives each station a stable color by its series position.
func (r *Renderer) seriesColor(i int) color.RGBA {
	return r.config.Palette[i%len(r.config.Palette)]
}

// PNG renders view at dims and returns the encoded image.
func (r *Renderer) PNG(view chart.View, dims chart.Dimensions) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Write(&buf, view, dims); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders view at dims into w as PNG. A view without scales renders
// an empty frame with a notice.
func (r *Renderer) Write(w io.Writer, view chart.View, dims chart.Dimensions) error {
	if dims.Width < 1 || dims.Height < 1 {
		return fmt.Errorf("invalid chart size %vx%v", dims.Width, dims.Height)
	}
	dc := gg.NewContext(int(dims.Width), int(dims.Height))
	dc.SetColor(r.config.Background)
	dc.Clear()

	switch {
	case view.Scales == nil:
		r.drawNotice(dc, dims, "Select a station to view data")
	case view.Empty():
		r.drawAxes(dc, *view.Scales)
		r.drawNotice(dc, dims, "No data in the visible range")
	default:
		r.drawAxes(dc, *view.Scales)
		r.drawBands(dc, view, *view.Scales)
		r.drawSeries(dc, view.Series, *view.Scales)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (r *Renderer) drawAxes(dc *gg.Context, s chart.Scales) {
	left, right := s.X.Range[0], s.X.Range[1]
	bottom, top := s.Y.Range[0], s.Y.Range[1]

	dc.SetLineWidth(1)
	dc.SetColor(r.config.GridColor)
	for _, v := range s.YTicks {
		y := s.Y.Scale(v)
		dc.DrawLine(left, y, right, y)
		dc.Stroke()
	}

	dc.SetColor(r.config.AxisColor)
	dc.DrawLine(left, bottom, right, bottom)
	dc.Stroke()
	dc.DrawLine(left, top, left, bottom)
	dc.Stroke()

	dc.SetColor(r.config.TextColor)
	for _, v := range s.XTicks {
		x := s.X.Scale(v)
		dc.DrawLine(x, bottom, x, bottom+4)
		dc.Stroke()
		dc.DrawStringAnchored(strconv.Itoa(int(v)), x, bottom+14, 0.5, 0.5)
	}
	for _, v := range s.YTicks {
		dc.DrawStringAnchored(formatTick(v), left-6, s.Y.Scale(v), 1, 0.5)
	}
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// drawBands fills the area between lower and upper for each station. Runs
// of consecutive band points are filled separately, so a point without
// bounds leaves a gap.
func (r *Renderer) drawBands(dc *gg.Context, view chart.View, s chart.Scales) {
	for i, band := range view.Bands {
		idx := seriesIndex(view.Series, band.StationID, i)
		c := r.seriesColor(idx)
		c.A = r.config.BandAlpha
		dc.SetColor(c)

		var source []chart.ChartPoint
		if idx < len(view.Series) && view.Series[idx].StationID == band.StationID {
			source = view.Series[idx].Points
		}
		for _, run := range bandRuns(band, source) {
			r.fillBandRun(dc, run, s)
		}
	}
}

func (r *Renderer) fillBandRun(dc *gg.Context, pts []chart.ChartPoint, s chart.Scales) {
	if len(pts) == 1 {
		x := s.X.Scale(pts[0].XValue)
		dc.DrawLine(x, s.Y.Scale(*pts[0].Upper), x, s.Y.Scale(*pts[0].Lower))
		dc.SetLineWidth(r.config.LineWidth)
		dc.Stroke()
		return
	}
	for _, p := range pts {
		dc.LineTo(s.X.Scale(p.XValue), s.Y.Scale(*p.Upper))
	}
	for j := len(pts) - 1; j >= 0; j-- {
		dc.LineTo(s.X.Scale(pts[j].XValue), s.Y.Scale(*pts[j].Lower))
	}
	dc.ClosePath()
	dc.Fill()
}

// bandRuns splits a band into runs of points that are adjacent in the
// source series. Without a source series the band is one run.
func bandRuns(band chart.Band, source []chart.ChartPoint) [][]chart.ChartPoint {
	if len(band.BandPoints) == 0 {
		return nil
	}
	if len(source) == 0 {
		return [][]chart.ChartPoint{band.BandPoints}
	}
	var runs [][]chart.ChartPoint
	var cur []chart.ChartPoint
	for _, p := range source {
		if p.HasBand() {
			cur = append(cur, p)
			continue
		}
		if len(cur) > 0 {
			runs = append(runs, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

func seriesIndex(series []chart.PreparedSeries, stationID string, fallback int) int {
	for i, s := range series {
		if s.StationID == stationID {
			return i
		}
	}
	return fallback
}

func (r *Renderer) drawSeries(dc *gg.Context, series []chart.PreparedSeries, s chart.Scales) {
	dc.SetLineWidth(r.config.LineWidth)
	for i, ser := range series {
		dc.SetColor(r.seriesColor(i))
		if len(ser.Points) == 1 {
			p := ser.Points[0]
			dc.DrawCircle(s.X.Scale(p.XValue), s.Y.Scale(p.YValue), r.config.PointRadius)
			dc.Fill()
			continue
		}
		for _, p := range ser.Points {
			dc.LineTo(s.X.Scale(p.XValue), s.Y.Scale(p.YValue))
		}
		dc.Stroke()
	}
}

func (r *Renderer) drawNotice(dc *gg.Context, dims chart.Dimensions, msg string) {
	dc.SetColor(r.config.TextColor)
	dc.DrawStringAnchored(msg, dims.Width/2, dims.Height/2, 0.5, 0.5)
}
