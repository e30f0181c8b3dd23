package data

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// scanXLSX walks the first sheet of an xlsx dataset with the same header
// contract as the CSV form.
func scanXLSX(path, timestamp string) (float64, bool, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, false, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, false, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return 0, false, fmt.Errorf("get rows: %w", err)
	}
	if len(rows) == 0 {
		return 0, false, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	tsCol, predCol, err := datasetColumns(rows[0])
	if err != nil {
		return 0, false, err
	}

	for _, row := range rows[1:] {
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
	return 0, false, nil
}
