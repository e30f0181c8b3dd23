package data

import (
	"context"
	"database/sql"
	"strconv"

	_ "modernc.org/sqlite"
)

// querySQLite answers a lookup against the table form of a dataset: a
// predictions table with Timestamp and Prediction columns. Prediction is read
// as text so malformed values can be skipped the same way as in the file
// backends.
func querySQLite(ctx context.Context, path, timestamp string) (float64, bool, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, false, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT Prediction FROM predictions WHERE Timestamp = ?
	`, timestamp)
	if err != nil {
		return 0, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return 0, false, err
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return value, true, nil
	}
	return 0, false, rows.Err()
}
