package data

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS monthly_temperatures (
  station_id  TEXT    NOT NULL,
  year        INTEGER NOT NULL,
  month       INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
  temperature REAL    NOT NULL,
  PRIMARY KEY (station_id, year, month)
);
CREATE INDEX IF NOT EXISTS idx_monthly_year ON monthly_temperatures(year);
`

// OpenSQLite opens (creating if needed) a dataset database and applies the schema.
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// SaveSQLite replaces the stored monthly rows with ds in one transaction.
func SaveSQLite(db *sql.DB, ds *Dataset) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM monthly_temperatures`); err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO monthly_temperatures (station_id, year, month, temperature) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range ds.Monthly {
		if _, err = stmt.Exec(r.StationID, r.Year, r.Month, r.Temperature); err != nil {
			return fmt.Errorf("insert %s/%d/%d: %w", r.StationID, r.Year, r.Month, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadSQLite reads all monthly rows back into a Dataset.
func LoadSQLite(db *sql.DB) (*Dataset, error) {
	rows, err := db.Query(`SELECT station_id, year, month, temperature FROM monthly_temperatures ORDER BY station_id, year, month`)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close monthly rows", "error", err)
		}
	}()

	var out []MonthlyRecord
	for rows.Next() {
		var r MonthlyRecord
		if err := rows.Scan(&r.StationID, &r.Year, &r.Month, &r.Temperature); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewDataset(out)
}
