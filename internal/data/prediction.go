package data

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/routepal/routepal/internal/biz/domain"
	"github.com/routepal/routepal/internal/biz/repo"
)

// datasetExtensions are tried in order when resolving an algorithm to a
// backing file. CSV is the native format; xlsx and sqlite cover datasets
// exported from spreadsheets or loaded into a table.
var datasetExtensions = []string{".csv", ".xlsx", ".db"}

// predictionRepo answers lookups against per-algorithm dataset files under a
// single data directory. Every lookup opens the dataset fresh; there is no
// caching layer.
type predictionRepo struct {
	dataDir string
	logger  *slog.Logger
}

// NewPredictionRepo creates a prediction repository rooted at dataDir.
func NewPredictionRepo(dataDir string, logger *slog.Logger) repo.PredictionRepo {
	return &predictionRepo{
		dataDir: dataDir,
		logger:  logger.With("component", "predictions"),
	}
}

// Lookup scans the dataset for algorithm and returns the first row whose
// Timestamp column equals timestamp exactly. O(n) per lookup is accepted for
// the dataset sizes involved.
func (r *predictionRepo) Lookup(ctx context.Context, algorithm, timestamp string) (domain.PredictionRecord, error) {
	if !domain.IsAlgorithm(algorithm) {
		return domain.PredictionRecord{}, fmt.Errorf("unknown algorithm %q", algorithm)
	}

	path, err := r.resolvePath(algorithm)
	if err != nil {
		return domain.PredictionRecord{}, err
	}

	var value float64
	var found bool
	switch filepath.Ext(path) {
	case ".csv":
		value, found, err = scanCSV(path, timestamp)
	case ".xlsx":
		value, found, err = scanXLSX(path, timestamp)
	case ".db":
		value, found, err = querySQLite(ctx, path, timestamp)
	}
	if err != nil {
		return domain.PredictionRecord{}, fmt.Errorf("scan %s: %w", path, err)
	}
	if !found {
		return domain.PredictionRecord{}, repo.ErrNotFound
	}

	r.logger.Debug("dataset row matched", "path", path, "timestamp", timestamp, "value", value)
	return domain.PredictionRecord{Timestamp: timestamp, Value: value}, nil
}

// resolvePath finds the backing file for an algorithm, trying each supported
// extension in order.
func (r *predictionRepo) resolvePath(algorithm string) (string, error) {
	for _, ext := range datasetExtensions {
		path := filepath.Join(r.dataDir, "pred_"+algorithm+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no dataset for algorithm %q in %s", algorithm, r.dataDir)
}
