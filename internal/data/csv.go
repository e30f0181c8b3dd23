package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// scanCSV streams a headered CSV dataset looking for the first row whose
// Timestamp column equals timestamp. Rows whose Prediction value does not
// parse as a float are skipped rather than failing the lookup.
func scanCSV(path, timestamp string) (float64, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, false, fmt.Errorf("read header: %w", err)
	}
	tsCol, predCol, err := datasetColumns(header)
	if err != nil {
		return 0, false, err
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		if tsCol >= len(row) || predCol >= len(row) {
			continue
		}
		if row[tsCol] != timestamp {
			continue
		}
		value, err := strconv.ParseFloat(row[predCol], 64)
		if err != nil {
			continue
		}
		return value, true, nil
	}
}

// datasetColumns locates the required Timestamp and Prediction columns in a
// header row.
func datasetColumns(header []string) (tsCol, predCol int, err error) {
	tsCol, predCol = -1, -1
	for i, name := range header {
		switch name {
		case "Timestamp":
			tsCol = i
		case "Prediction":
			predCol = i
		}
	}
	if tsCol < 0 || predCol < 0 {
		return 0, 0, fmt.Errorf("dataset missing Timestamp/Prediction columns: %v", header)
	}
	return tsCol, predCol, nil
}
