package data

import (
	"encoding/csv"
	"io"
	"strconv"

	"climate-explorer/internal/chart"
)

// WritePointsCSV writes prepared chart points, one row per point, in series
// order. Absent optional values are written as empty cells.
func WritePointsCSV(out io.Writer, series []chart.PreparedSeries) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"station_id",
		"station_name",
		"x",
		"y",
		"year",
		"month",
		"temperature",
		"mean",
		"std",
		"upper",
		"lower",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range series {
		for _, p := range s.Points {
			row := []string{
				p.StationID,
				p.StationName,
				fmtFloat(p.XValue),
				fmtFloat(p.YValue),
				strconv.Itoa(p.Year),
				fmtInt(p.Month),
				fmtOptFloat(p.Temperature),
				fmtOptFloat(p.Mean),
				fmtOptFloat(p.Std),
				fmtOptFloat(p.Upper),
				fmtOptFloat(p.Lower),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func fmtOptFloat(x *float64) string {
	if x == nil {
		return ""
	}
	return fmtFloat(*x)
}

func fmtInt(x *int) string {
	if x == nil {
		return ""
	}
	return strconv.Itoa(*x)
}
