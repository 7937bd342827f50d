package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"climate-explorer/internal/chart"
	"climate-explorer/internal/model"
)

func annualView(t *testing.T) (chart.View, chart.Dimensions) {
	t.Helper()
	base := model.YearRange{From: 1900, To: 1903}
	resp := model.AnnualResponse{Series: []model.AnnualSeries{{
		StationID: "101",
		Points: []model.AnnualPoint{
			{Year: 1900, Mean: 5, Std: model.Float(1), Upper: model.Float(6), Lower: model.Float(4)},
			{Year: 1901, Mean: 6, Std: model.Float(1), Upper: model.Float(7), Lower: model.Float(5)},
			{Year: 1902, Mean: 4, Std: model.Float(1), Upper: model.Float(5), Lower: model.Float(3)},
		},
	}}}
	dims := chart.DefaultDimensions()
	view := chart.Build(chart.Input{
		Response:   resp,
		Stations:   []model.Station{{ID: "101", Name: "Station 101", FirstYear: 1900, LastYear: 1903}},
		ViewMode:   model.ViewAnnualStd,
		Base:       &base,
		Dimensions: dims,
	})
	require.NotNil(t, view.Scales)
	require.Len(t, view.Bands, 1)
	return view, dims
}

func TestPNGDimensions(t *testing.T) {
	view, dims := annualView(t)

	out, err := NewRenderer(nil).PNG(view, dims)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 320, img.Bounds().Dy())
}

func TestPNGDrawsSeries(t *testing.T) {
	view, dims := annualView(t)
	cfg := DefaultConfig()

	out, err := NewRenderer(cfg).PNG(view, dims)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	// The interior vertex of the line is painted over the white background.
	p := view.Series[0].Points[1]
	x := int(view.Scales.X.Scale(p.XValue))
	y := int(view.Scales.Y.Scale(p.YValue))
	r, g, b, _ := img.At(x, y).RGBA()
	assert.Less(t, r>>8, uint32(200))
	assert.Less(t, g>>8, uint32(220))
	assert.Greater(t, b>>8, r>>8, "blue dominates the first series color")
}

func TestPNGWithoutScales(t *testing.T) {
	view := chart.Build(chart.Input{Dimensions: chart.DefaultDimensions()})
	require.Nil(t, view.Scales)

	out, err := NewRenderer(nil).PNG(view, chart.DefaultDimensions())
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
}

func TestPNGInvalidSize(t *testing.T) {
	view, _ := annualView(t)
	_, err := NewRenderer(nil).PNG(view, chart.Dimensions{})
	assert.Error(t, err)
}

func TestBandRunsSplitAtMissingBounds(t *testing.T) {
	withBand := func(year int) chart.ChartPoint {
		return chart.ChartPoint{StationID: "101", XValue: float64(year), Year: year, Upper: model.Float(2), Lower: model.Float(1)}
	}
	source := []chart.ChartPoint{
		withBand(1900),
		withBand(1901),
		{StationID: "101", XValue: 1902, Year: 1902},
		withBand(1903),
	}
	band := chart.BuildStdBands([]chart.PreparedSeries{{StationID: "101", Points: source}})[0]
	require.Len(t, band.BandPoints, 3)

	runs := bandRuns(band, source)
	require.Len(t, runs, 2)
	assert.Len(t, runs[0], 2)
	assert.Equal(t, 1903, runs[1][0].Year)

	assert.Len(t, bandRuns(band, nil), 1)
	assert.Empty(t, bandRuns(chart.Band{StationID: "101"}, source))
}

func TestEmptyPaletteFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Palette = nil
	view, dims := annualView(t)

	r := NewRenderer(cfg)
	assert.Equal(t, DefaultConfig().Palette, r.config.Palette)
	assert.Nil(t, cfg.Palette, "caller config is left untouched")

	_, err := r.PNG(view, dims)
	assert.NoError(t, err)
}
