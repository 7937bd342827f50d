package data

import (
	"fmt"
	"math"
	"sort"

	"climate-explorer/internal/model"
)

// MonthlyRecord is one station/month temperature reading.
type MonthlyRecord struct {
	StationID   string
	Year        int
	Month       int
	Temperature float64
}

// AnnualRecord aggregates the monthly readings of one station/year.
// Std is the population standard deviation; Upper/Lower are Mean ± Std.
type AnnualRecord struct {
	StationID string
	Year      int
	Mean      float64
	Std       float64
	Upper     float64
	Lower     float64
}

// Dataset is the normalized temperature data plus derived views.
type Dataset struct {
	Monthly  []MonthlyRecord
	Annual   []AnnualRecord
	Stations map[string]model.Station
}

// NewDataset sorts the monthly rows by (station, year, month) and derives
// annual statistics and station metadata from them.
func NewDataset(monthly []MonthlyRecord) (*Dataset, error) {
	if len(monthly) == 0 {
		return nil, fmt.Errorf("temperature data did not yield any valid monthly rows")
	}
	rows := make([]MonthlyRecord, len(monthly))
	copy(rows, monthly)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.StationID != b.StationID {
			return a.StationID < b.StationID
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})
	return &Dataset{
		Monthly:  rows,
		Annual:   buildAnnual(rows),
		Stations: buildStations(rows),
	}, nil
}

// buildAnnual expects rows sorted by station and year.
func buildAnnual(rows []MonthlyRecord) []AnnualRecord {
	var out []AnnualRecord
	for start := 0; start < len(rows); {
		end := start
		for end < len(rows) && rows[end].StationID == rows[start].StationID && rows[end].Year == rows[start].Year {
			end++
		}
		group := rows[start:end]

		sum := 0.0
		for _, r := range group {
			sum += r.Temperature
		}
		mean := sum / float64(len(group))
		sq := 0.0
		for _, r := range group {
			d := r.Temperature - mean
			sq += d * d
		}
		std := math.Sqrt(sq / float64(len(group)))

		out = append(out, AnnualRecord{
			StationID: group[0].StationID,
			Year:      group[0].Year,
			Mean:      mean,
			Std:       std,
			Upper:     mean + std,
			Lower:     mean - std,
		})
		start = end
	}
	return out
}

func buildStations(rows []MonthlyRecord) map[string]model.Station {
	out := map[string]model.Station{}
	for _, r := range rows {
		s, ok := out[r.StationID]
		if !ok {
			out[r.StationID] = model.Station{
				ID:        r.StationID,
				Name:      "Station " + r.StationID,
				FirstYear: r.Year,
				LastYear:  r.Year,
			}
			continue
		}
		if r.Year < s.FirstYear {
			s.FirstYear = r.Year
		}
		if r.Year > s.LastYear {
			s.LastYear = r.Year
		}
		out[r.StationID] = s
	}
	return out
}
