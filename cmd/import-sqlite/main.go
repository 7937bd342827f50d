package main

import (
	"flag"
	"fmt"
	"log"

	"climate-explorer/internal/data"
)

func main() {
	var (
		csvPath = flag.String("csv", "./data/temperature_data.csv", "Semicolon separated temperature CSV")
		dbPath  = flag.String("db", "./data/climate.db", "SQLite database to write")
	)
	flag.Parse()

	fmt.Printf("Reading %s\n", *csvPath)
	ds, err := data.LoadCSV(*csvPath)
	if err != nil {
		log.Fatalf("Failed to load CSV: %v", err)
	}

	db, err := data.OpenSQLite(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := data.SaveSQLite(db, ds); err != nil {
		log.Fatalf("Failed to import: %v", err)
	}

	fmt.Printf("Imported %d monthly rows for %d stations into %s\n", len(ds.Monthly), len(ds.Stations), *dbPath)
}
