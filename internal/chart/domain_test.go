package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"climate-explorer/internal/model"
)

func TestComputeYDomain(t *testing.T) {
	series := PrepareSeries(annualFixture(), testStations, testVisible)

	d := ComputeYDomain(series, model.ViewAnnualStd)
	assert.InDelta(t, 0.9, d[0], 1e-9)
	assert.InDelta(t, 1.5, d[1], 1e-9)

	d = ComputeYDomain(series, model.ViewAnnual)
	assert.InDelta(t, 1.1, d[0], 1e-9)
	assert.InDelta(t, 1.4, d[1], 1e-9)
}

func TestComputeYDomainMissingBoundsUsePlottedValue(t *testing.T) {
	resp := model.AnnualResponse{Series: []model.AnnualSeries{
		{StationID: "alpha", Points: []model.AnnualPoint{
			{Year: 1900, Mean: 2, Upper: model.Float(2.5)},
			{Year: 1901, Mean: 1, Lower: model.Float(0.5)},
		}},
	}}
	d := ComputeYDomain(PrepareSeries(resp, testStations, testVisible), model.ViewAnnualStd)
	assert.Equal(t, [2]float64{0.5, 2.5}, d)
}

func TestComputeYDomainEmpty(t *testing.T) {
	assert.Equal(t, [2]float64{0, 1}, ComputeYDomain(nil, model.ViewMonthly))
	assert.Equal(t, [2]float64{0, 1}, ComputeYDomain([]PreparedSeries{{StationID: "a"}}, model.ViewAnnualStd))
}
