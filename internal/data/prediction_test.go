package data

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/routepal/routepal/internal/biz/repo"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeCSVDataset(t *testing.T, dir, algorithm, content string) {
	t.Helper()
	path := filepath.Join(dir, "pred_"+algorithm+".csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLookup_CSV(t *testing.T) {
	dir := t.TempDir()
	writeCSVDataset(t, dir, "lstm",
		"Timestamp,Prediction\n"+
			"2024-03-05 14:25:00,188.2\n"+
			"2024-03-05 14:30:00,210.5\n"+
			"2024-03-05 14:35:00,150.0\n")

	store := NewPredictionRepo(dir, testLogger())

	rec, err := store.Lookup(context.Background(), "lstm", "2024-03-05 14:30:00")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if rec.Value != 210.5 {
		t.Errorf("Expected value 210.5, got %v", rec.Value)
	}
	if !rec.Congested() {
		t.Error("Expected 210.5 to classify as congested")
	}

	rec, err = store.Lookup(context.Background(), "lstm", "2024-03-05 14:35:00")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if rec.Congested() {
		t.Error("Expected 150.0 to classify as clear")
	}
}

func TestLookup_NotFound(t *testing.T) {
	dir := t.TempDir()
	writeCSVDataset(t, dir, "gru", "Timestamp,Prediction\n2024-03-05 14:30:00,100\n")

	store := NewPredictionRepo(dir, testLogger())

	_, err := store.Lookup(context.Background(), "gru", "2024-03-05 15:00:00")
	if !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLookup_SkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	writeCSVDataset(t, dir, "lstm",
		"Timestamp,Prediction\n"+
			"2024-03-05 14:30:00,not-a-number\n"+
			"2024-03-05 14:30:00,120.5\n")

	store := NewPredictionRepo(dir, testLogger())

	rec, err := store.Lookup(context.Background(), "lstm", "2024-03-05 14:30:00")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if rec.Value != 120.5 {
		t.Errorf("Expected the malformed row skipped, got value %v", rec.Value)
	}
}

func TestLookup_UnknownAlgorithm(t *testing.T) {
	store := NewPredictionRepo(t.TempDir(), testLogger())
	if _, err := store.Lookup(context.Background(), "transformer", "2024-03-05 14:30:00"); err == nil {
		t.Error("Expected an error for an algorithm outside the closed set")
	}
}

func TestLookup_MissingDataset(t *testing.T) {
	store := NewPredictionRepo(t.TempDir(), testLogger())
	_, err := store.Lookup(context.Background(), "saes", "2024-03-05 14:30:00")
	if err == nil || errors.Is(err, repo.ErrNotFound) {
		t.Errorf("Expected a read error distinct from ErrNotFound, got %v", err)
	}
}

func TestLookup_MissingColumns(t *testing.T) {
	dir := t.TempDir()
	writeCSVDataset(t, dir, "lstm", "Time,Value\n2024-03-05 14:30:00,100\n")

	store := NewPredictionRepo(dir, testLogger())
	if _, err := store.Lookup(context.Background(), "lstm", "2024-03-05 14:30:00"); err == nil {
		t.Error("Expected an error for a dataset without the required columns")
	}
}

func TestLookup_XLSX(t *testing.T) {
	dir := t.TempDir()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Timestamp", "Prediction"},
		{"2024-03-05 14:30:00", "210.5"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(filepath.Join(dir, "pred_gru.xlsx")); err != nil {
		t.Fatal(err)
	}

	store := NewPredictionRepo(dir, testLogger())
	rec, err := store.Lookup(context.Background(), "gru", "2024-03-05 14:30:00")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if rec.Value != 210.5 {
		t.Errorf("Expected value 210.5, got %v", rec.Value)
	}
}

func TestLookup_SQLite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pred_saes.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE predictions (Timestamp TEXT, Prediction TEXT)`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO predictions VALUES ('2024-03-05 14:30:00', '150.0')`); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	store := NewPredictionRepo(dir, testLogger())
	rec, err := store.Lookup(context.Background(), "saes", "2024-03-05 14:30:00")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if rec.Value != 150.0 {
		t.Errorf("Expected value 150.0, got %v", rec.Value)
	}
	if rec.Congested() {
		t.Error("Expected 150.0 to classify as clear")
	}

	_, err = store.Lookup(context.Background(), "saes", "2024-03-05 15:00:00")
	if !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLookup_CSVPreferredOverOtherFormats(t *testing.T) {
	dir := t.TempDir()
	writeCSVDataset(t, dir, "lstm", "Timestamp,Prediction\n2024-03-05 14:30:00,1\n")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"Timestamp", "Prediction"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatal(err)
	}
	row := []interface{}{"2024-03-05 14:30:00", "2"}
	if err := f.SetSheetRow(sheet, "A2", &row); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(filepath.Join(dir, "pred_lstm.xlsx")); err != nil {
		t.Fatal(err)
	}

	store := NewPredictionRepo(dir, testLogger())
	rec, err := store.Lookup(context.Background(), "lstm", "2024-03-05 14:30:00")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if rec.Value != 1 {
		t.Errorf("Expected the CSV dataset to win, got value %v", rec.Value)
	}
}
