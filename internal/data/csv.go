package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Months are the monthly column headers of the source CSV, in order.
var Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

const (
	stationColumn = "Station Number"
	yearColumn    = "Year"
)

// LoadCSV reads a semicolon separated file with one row per station/year and
// one column per month.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("temperature data CSV not found at %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return NewDataset(rows)
}

// ReadCSV melts the wide CSV into monthly records. Rows without a station or
// year and cells without a numeric temperature are skipped.
func ReadCSV(r io.Reader) ([]MonthlyRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	var missing []string
	for _, col := range append([]string{stationColumn, yearColumn}, Months...) {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("temperature CSV is missing columns: %s", strings.Join(missing, ", "))
	}

	var out []MonthlyRecord
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		station := cell(rec, idx[stationColumn])
		year, ok := parseYearCell(cell(rec, idx[yearColumn]))
		if station == "" || !ok {
			continue
		}
		for m, name := range Months {
			v, err := strconv.ParseFloat(cell(rec, idx[name]), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			out = append(out, MonthlyRecord{StationID: station, Year: year, Month: m + 1, Temperature: v})
		}
	}
	return out, nil
}

func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseYearCell(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
