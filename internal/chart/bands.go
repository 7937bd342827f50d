package chart

// Band is the set of points of one station that can be drawn as a
// deviation area.
type Band struct {
	StationID  string       `json:"station_id"`
	BandPoints []ChartPoint `json:"band_points"`
}

// BuildStdBands keeps, per series, only points carrying both bounds.
// Points missing a bound leave a gap in the band.
func BuildStdBands(series []PreparedSeries) []Band {
	out := make([]Band, 0, len(series))
	for _, s := range series {
		pts := make([]ChartPoint, 0, len(s.Points))
		for _, p := range s.Points {
			if p.HasBand() {
				pts = append(pts, p)
			}
		}
		out = append(out, Band{StationID: s.StationID, BandPoints: pts})
	}
	return out
}
