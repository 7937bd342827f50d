package data

import (
	"errors"
	"fmt"
	"sort"

	"climate-explorer/internal/model"
)

var (
	ErrInvalidStation   = errors.New("invalid station")
	ErrInvalidYearRange = errors.New("invalid year range")
	ErrNoData           = errors.New("no data")
)

// QueryError carries a user-facing message for one of the sentinel errors.
type QueryError struct {
	Kind    error
	Message string
}

func (e *QueryError) Error() string {
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.Kind
}

// Repository answers station and temperature queries over an immutable
// Dataset. It is safe for concurrent use.
type Repository struct {
	ds     *Dataset
	ids    []string
	bounds model.YearRange

	monthlyCache *sliceCache[MonthlyRecord]
	annualCache  *sliceCache[AnnualRecord]
}

func NewRepository(ds *Dataset, cacheSize int) (*Repository, error) {
	if ds == nil || len(ds.Monthly) == 0 {
		return nil, errors.New("dataset is empty")
	}
	mc, err := newSliceCache[MonthlyRecord](cacheSize)
	if err != nil {
		return nil, err
	}
	ac, err := newSliceCache[AnnualRecord](cacheSize)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(ds.Stations))
	for id := range ds.Stations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	bounds := model.YearRange{From: ds.Monthly[0].Year, To: ds.Monthly[0].Year}
	for _, r := range ds.Monthly {
		bounds.From = min(bounds.From, r.Year)
		bounds.To = max(bounds.To, r.Year)
	}

	return &Repository{
		ds:           ds,
		ids:          ids,
		bounds:       bounds,
		monthlyCache: mc,
		annualCache:  ac,
	}, nil
}

// StationIDs returns all station ids, sorted.
func (r *Repository) StationIDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Stations returns station metadata ordered by id.
func (r *Repository) Stations() []model.Station {
	out := make([]model.Station, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.ds.Stations[id])
	}
	return out
}

// GlobalYearBounds is the first and last year present in the dataset.
func (r *Repository) GlobalYearBounds() model.YearRange {
	return r.bounds
}

// EnsureYearRange rejects ranges reaching outside the dataset.
func (r *Repository) EnsureYearRange(from, to int) error {
	if from < r.bounds.From || to > r.bounds.To {
		return &QueryError{
			Kind:    ErrInvalidYearRange,
			Message: fmt.Sprintf("Year range must be between %d and %d inclusive.", r.bounds.From, r.bounds.To),
		}
	}
	return nil
}

func (r *Repository) ensureStations(ids []string) error {
	if len(ids) == 0 {
		return &QueryError{Kind: ErrInvalidStation, Message: "station_ids must not be empty"}
	}
	for _, id := range ids {
		if _, ok := r.ds.Stations[id]; !ok {
			return &QueryError{Kind: ErrInvalidStation, Message: "Unknown station ids requested."}
		}
	}
	return nil
}

// FilterMonthly returns the monthly rows of the given stations within
// [from, to]. The result is shared with the cache and must not be modified.
func (r *Repository) FilterMonthly(stationIDs []string, from, to int) ([]MonthlyRecord, error) {
	ids := normalizeIDs(stationIDs)
	if err := r.ensureStations(ids); err != nil {
		return nil, err
	}
	if err := r.EnsureYearRange(from, to); err != nil {
		return nil, err
	}
	key := GenerateCacheKey(ids, from, to)
	return r.monthlyCache.getOrBuild(key, func() []MonthlyRecord {
		return filterRows(r.ds.Monthly, ids, from, to, func(m MonthlyRecord) (string, int) { return m.StationID, m.Year })
	}), nil
}

// FilterAnnual is FilterMonthly for the annual aggregates.
func (r *Repository) FilterAnnual(stationIDs []string, from, to int) ([]AnnualRecord, error) {
	ids := normalizeIDs(stationIDs)
	if err := r.ensureStations(ids); err != nil {
		return nil, err
	}
	if err := r.EnsureYearRange(from, to); err != nil {
		return nil, err
	}
	key := GenerateCacheKey(ids, from, to)
	return r.annualCache.getOrBuild(key, func() []AnnualRecord {
		return filterRows(r.ds.Annual, ids, from, to, func(a AnnualRecord) (string, int) { return a.StationID, a.Year })
	}), nil
}

func filterRows[T any](rows []T, ids []string, from, to int, keyOf func(T) (string, int)) []T {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []T
	for _, row := range rows {
		id, year := keyOf(row)
		if _, ok := want[id]; !ok || year < from || year > to {
			continue
		}
		out = append(out, row)
	}
	return out
}

// Query is the shape requested by a chart or the temperature endpoint.
type Query struct {
	StationIDs     []string
	Mode           model.DataMode
	IncludeStdBand bool
	YearRange      model.YearRange
}

// Temperature runs q and groups the rows per station, in station id order.
// Annual points carry deviation statistics only when IncludeStdBand is set.
func (r *Repository) Temperature(q Query) (model.TemperatureResponse, error) {
	switch q.Mode {
	case model.DataModeMonthly:
		rows, err := r.FilterMonthly(q.StationIDs, q.YearRange.From, q.YearRange.To)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, noData()
		}
		var resp model.MonthlyResponse
		for _, row := range rows {
			n := len(resp.Series)
			if n == 0 || resp.Series[n-1].StationID != row.StationID {
				resp.Series = append(resp.Series, model.MonthlySeries{StationID: row.StationID})
				n++
			}
			resp.Series[n-1].Points = append(resp.Series[n-1].Points, model.MonthlyPoint{
				Year:        row.Year,
				Month:       row.Month,
				Temperature: row.Temperature,
			})
		}
		return resp, nil
	case model.DataModeAnnual:
		rows, err := r.FilterAnnual(q.StationIDs, q.YearRange.From, q.YearRange.To)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, noData()
		}
		var resp model.AnnualResponse
		for _, row := range rows {
			n := len(resp.Series)
			if n == 0 || resp.Series[n-1].StationID != row.StationID {
				resp.Series = append(resp.Series, model.AnnualSeries{StationID: row.StationID})
				n++
			}
			p := model.AnnualPoint{Year: row.Year, Mean: row.Mean}
			if q.IncludeStdBand {
				p.Std = model.Float(row.Std)
				p.Upper = model.Float(row.Upper)
				p.Lower = model.Float(row.Lower)
			}
			resp.Series[n-1].Points = append(resp.Series[n-1].Points, p)
		}
		return resp, nil
	default:
		return nil, fmt.Errorf("unsupported mode %q", q.Mode)
	}
}

func noData() error {
	return &QueryError{Kind: ErrNoData, Message: "No data for the selected stations and year range."}
}
