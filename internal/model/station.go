package model

// Station is one measuring station as exposed by the dataset.
type Station struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FirstYear int    `json:"first_year"`
	LastYear  int    `json:"last_year"`
}

// BoundsOf returns the global year bounds across stations: the smallest
// FirstYear and the largest LastYear. ok is false when stations is empty.
func BoundsOf(stations []Station) (bounds YearRange, ok bool) {
	for i, s := range stations {
		if i == 0 {
			bounds = YearRange{From: s.FirstYear, To: s.LastYear}
			continue
		}
		if s.FirstYear < bounds.From {
			bounds.From = s.FirstYear
		}
		if s.LastYear > bounds.To {
			bounds.To = s.LastYear
		}
	}
	return bounds, len(stations) > 0
}
