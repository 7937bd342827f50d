package analysis

import (
	"fmt"
	"math"

	"climate-explorer/internal/data"
	"climate-explorer/internal/model"
)

// StationSummary is the temperature summary of one station over the period.
type StationSummary struct {
	StationID string  `json:"station_id"`
	Mean      float64 `json:"mean"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

// Summary aggregates the monthly readings of the selected stations.
// SelectedPeriod is the observed span of the data, which may be narrower
// than the requested range.
type Summary struct {
	SelectedPeriod   model.YearRange  `json:"selected_period"`
	StationsAnalyzed int              `json:"stations_analyzed"`
	OverallMean      float64          `json:"overall_mean_temperature"`
	OverallMin       float64          `json:"overall_min_temperature"`
	OverallMax       float64          `json:"overall_max_temperature"`
	PerStation       []StationSummary `json:"per_station"`
}

type accumulator struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func newAccumulator() accumulator {
	return accumulator{min: math.Inf(1), max: math.Inf(-1)}
}

func (a *accumulator) add(v float64) {
	a.count++
	a.sum += v
	if v < a.min {
		a.min = v
	}
	if v > a.max {
		a.max = v
	}
}

func (a accumulator) mean() float64 {
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

// Summarize computes overall and per-station statistics for stationIDs
// within [from, to]. Repository errors are returned unchanged.
func Summarize(repo *data.Repository, stationIDs []string, from, to int) (Summary, error) {
	if from > to {
		return Summary{}, &data.QueryError{
			Kind:    data.ErrInvalidYearRange,
			Message: "year_range.from must be before year_range.to",
		}
	}
	rows, err := repo.FilterMonthly(stationIDs, from, to)
	if err != nil {
		return Summary{}, err
	}
	if len(rows) == 0 {
		return Summary{}, &data.QueryError{Kind: data.ErrNoData, Message: "No rows for selected stations/year range"}
	}
	return summarizeRows(rows), nil
}

// summarizeRows expects rows grouped by station in id order, as the
// repository returns them.
func summarizeRows(rows []data.MonthlyRecord) Summary {
	overall := newAccumulator()
	period := model.YearRange{From: rows[0].Year, To: rows[0].Year}
	var perStation []StationSummary
	cur := newAccumulator()
	curID := rows[0].StationID

	flush := func() {
		perStation = append(perStation, StationSummary{
			StationID: curID,
			Mean:      cur.mean(),
			Min:       cur.min,
			Max:       cur.max,
		})
	}

	for _, r := range rows {
		if r.StationID != curID {
			flush()
			cur = newAccumulator()
			curID = r.StationID
		}
		cur.add(r.Temperature)
		overall.add(r.Temperature)
		period.From = min(period.From, r.Year)
		period.To = max(period.To, r.Year)
	}
	flush()

	return Summary{
		SelectedPeriod:   period,
		StationsAnalyzed: len(perStation),
		OverallMean:      overall.mean(),
		OverallMin:       overall.min,
		OverallMax:       overall.max,
		PerStation:       perStation,
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("%s: %d stations, mean %.2f (min %.2f, max %.2f)",
		s.SelectedPeriod, s.StationsAnalyzed, s.OverallMean, s.OverallMin, s.OverallMax)
}
