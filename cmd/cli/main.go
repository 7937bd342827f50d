package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"climate-explorer/internal/analysis"
	"climate-explorer/internal/chart"
	"climate-explorer/internal/data"
	"climate-explorer/internal/model"
	"climate-explorer/internal/render"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "chart":
		cmdChart(os.Args[2:])
	case "summary":
		cmdSummary(os.Args[2:])
	case "export":
		cmdExport(os.Args[2:])
	case "render":
		cmdRender(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli chart   --data data/temperature_data.csv --stations 101,202 --mode annual_std --focus 1950 --zoom 50")
	fmt.Println("  cli summary --data data/temperature_data.csv --stations 101,202 --from 1900 --to 2000")
	fmt.Println("  cli export  --data data/climate.db --stations 101 --mode monthly --out results/points.csv")
	fmt.Println("  cli render  --data data/temperature_data.csv --stations 101 --out results/chart.png")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - --data accepts the semicolon CSV or a SQLite database built by import-sqlite")
	fmt.Println("  - --from/--to default to the years covered by the selected stations")
}

// viewFlags are shared by every subcommand that builds a chart.
type viewFlags struct {
	dataPath *string
	stations *string
	from     *int
	to       *int
	mode     *string
	focus    *string
	zoom     *int
	width    *float64
	height   *float64
}

func registerViewFlags(fs *flag.FlagSet) viewFlags {
	return viewFlags{
		dataPath: fs.String("data", "data/temperature_data.csv", "Path to temperature CSV or SQLite database"),
		stations: fs.String("stations", "", "Comma-separated station ids (default: all)"),
		from:     fs.Int("from", 0, "First year (0 = station bounds)"),
		to:       fs.Int("to", 0, "Last year (0 = station bounds)"),
		mode:     fs.String("mode", "annual", "View mode: monthly, annual or annual_std"),
		focus:    fs.String("focus", "", "Focus year (default: midpoint)"),
		zoom:     fs.Int("zoom", 100, "Zoom percent, 25-100"),
		width:    fs.Float64("width", 640, "Chart width in pixels"),
		height:   fs.Float64("height", 320, "Chart height in pixels"),
	}
}

func (f viewFlags) dimensions() chart.Dimensions {
	dims := chart.DefaultDimensions()
	dims.Width = *f.width
	dims.Height = *f.height
	return dims
}

func mustRepository(path string) *data.Repository {
	repo, err := data.LoadRepository(path, data.DefaultCacheSize)
	if err != nil {
		panic(err)
	}
	return repo
}

// selection resolves the station list and the base year range, defaulting
// to the bounds of the selected stations.
func selection(repo *data.Repository, stations string, from, to int) ([]string, model.YearRange) {
	ids := splitList(stations)
	if len(ids) == 0 {
		ids = repo.StationIDs()
	}

	var selected []model.Station
	for _, s := range repo.Stations() {
		for _, id := range ids {
			if s.ID == id {
				selected = append(selected, s)
			}
		}
	}
	base, ok := model.BoundsOf(selected)
	if !ok {
		base = repo.GlobalYearBounds()
	}
	if from != 0 || to != 0 {
		inputs := model.YearInputs{From: fmt.Sprint(from), To: fmt.Sprint(to)}
		if from == 0 {
			inputs.From = fmt.Sprint(base.From)
		}
		if to == 0 {
			inputs.To = fmt.Sprint(base.To)
		}
		errs, r := model.ValidateYearInputs(inputs, &base)
		if !errs.Empty() {
			fmt.Fprintf(os.Stderr, "invalid year range: from=%q to=%q\n", errs.From, errs.To)
			os.Exit(2)
		}
		base = *r
	}
	return ids, base
}

func buildView(f viewFlags) (chart.View, model.ViewMode) {
	mode, err := model.ParseViewMode(*f.mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	repo := mustRepository(*f.dataPath)
	ids, base := selection(repo, *f.stations, *f.from, *f.to)

	resp, err := repo.Temperature(data.Query{
		StationIDs:     ids,
		Mode:           mode.DataMode(),
		IncludeStdBand: mode.WantsBands(),
		YearRange:      base,
	})
	if err != nil {
		panic(err)
	}

	view := chart.Build(chart.Input{
		Response:    resp,
		Stations:    repo.Stations(),
		ViewMode:    mode,
		Base:        &base,
		FocusInput:  *f.focus,
		ZoomPercent: *f.zoom,
		Dimensions:  f.dimensions(),
	})
	if view.FocusError != nil {
		fmt.Fprintf(os.Stderr, "warning: %s\n", view.FocusError.Message)
	}
	return view, mode
}

func cmdChart(args []string) {
	fs := flag.NewFlagSet("chart", flag.ExitOnError)
	vf := registerViewFlags(fs)
	asJSON := fs.Bool("json", false, "Print the full prepared view as JSON")
	hover := fs.Float64("hover", 0, "Optional: print the point nearest to this year (0=off)")
	_ = fs.Parse(args)

	view, mode := buildView(vf)
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			panic(err)
		}
		return
	}

	fmt.Printf("mode=%s visible=%s y=[%.2f, %.2f]\n", mode, view.Visible, view.YDomain[0], view.YDomain[1])
	if view.Scales != nil {
		fmt.Printf("x ticks: %v\n", view.Scales.XTicks)
		fmt.Printf("y ticks: %v\n", view.Scales.YTicks)
	}
	fmt.Printf("%-12s %-8s %-10s %-10s\n", "station", "points", "first", "last")
	for _, s := range view.Series {
		first, last := "-", "-"
		if n := len(s.Points); n > 0 {
			first = fmt.Sprintf("%.3f", s.Points[0].XValue)
			last = fmt.Sprintf("%.3f", s.Points[n-1].XValue)
		}
		fmt.Printf("%-12s %-8d %-10s %-10s\n", s.StationID, len(s.Points), first, last)
	}

	if *hover != 0 {
		p, ok := chart.NearestPoint(view.Series, *hover)
		if !ok {
			fmt.Println("hover: no visible points")
			return
		}
		fmt.Printf("hover: station=%s x=%.3f y=%.2f\n", p.StationName, p.XValue, p.YValue)
	}
}

func cmdSummary(args []string) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	dataPath := fs.String("data", "data/temperature_data.csv", "Path to temperature CSV or SQLite database")
	stations := fs.String("stations", "", "Comma-separated station ids (default: all)")
	from := fs.Int("from", 0, "First year (0 = station bounds)")
	to := fs.Int("to", 0, "Last year (0 = station bounds)")
	_ = fs.Parse(args)

	repo := mustRepository(*dataPath)
	ids, base := selection(repo, *stations, *from, *to)

	s, err := analysis.Summarize(repo, ids, base.From, base.To)
	if err != nil {
		panic(err)
	}
	fmt.Println(s)
	fmt.Printf("%-12s %-8s %-8s %-8s\n", "station", "mean", "min", "max")
	for _, st := range s.PerStation {
		fmt.Printf("%-12s %-8.2f %-8.2f %-8.2f\n", st.StationID, st.Mean, st.Min, st.Max)
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	vf := registerViewFlags(fs)
	outPath := fs.String("out", "results/points.csv", "Output CSV path")
	_ = fs.Parse(args)

	view, _ := buildView(vf)
	f := createOutput(*outPath)
	defer f.Close()
	if err := data.WritePointsCSV(f, view.Series); err != nil {
		panic(err)
	}

	rows := 0
	for _, s := range view.Series {
		rows += len(s.Points)
	}
	fmt.Printf("Wrote %d rows to %s\n", rows, *outPath)
}

func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	vf := registerViewFlags(fs)
	outPath := fs.String("out", "results/chart.png", "Output PNG path")
	_ = fs.Parse(args)

	view, _ := buildView(vf)
	f := createOutput(*outPath)
	defer f.Close()
	if err := render.NewRenderer(nil).Write(f, view, vf.dimensions()); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %s\n", *outPath)
}

func createOutput(path string) *os.File {
	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		panic(err)
	}
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	return f
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
