package repo

import (
	"context"
	"errors"

	"github.com/routepal/routepal/internal/biz/domain"
)

// ErrNotFound is returned when a dataset holds no row for the requested
// timestamp. Distinguished from read failures, which surface as other errors.
var ErrNotFound = errors.New("no prediction for timestamp")

// PredictionRepo answers point lookups against a time-indexed dataset.
type PredictionRepo interface {
	// Lookup scans the dataset selected by algorithm for the first row whose
	// timestamp equals the canonical timestamp. Rows whose prediction value
	// does not parse are skipped. Returns ErrNotFound after a full-scan miss.
	Lookup(ctx context.Context, algorithm, timestamp string) (domain.PredictionRecord, error)
}
