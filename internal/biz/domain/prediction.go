package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Algorithms is the closed set of prediction dataset names.
var Algorithms = []string{"lstm", "gru", "saes"}

// IsAlgorithm reports whether name selects a known dataset.
func IsAlgorithm(name string) bool {
	for _, a := range Algorithms {
		if a == name {
			return true
		}
	}
	return false
}

// FindAlgorithm returns the algorithm token contained in text, requiring
// exactly one of the closed set to be present. ok is false when the text
// mentions none of them or more than one.
func FindAlgorithm(text string) (string, bool) {
	found := ""
	for _, a := range Algorithms {
		if strings.Contains(text, a) {
			if found != "" {
				return "", false
			}
			found = a
		}
	}
	return found, found != ""
}

// CongestionThreshold separates congested from clear traffic. Values strictly
// greater are classified congested.
const CongestionThreshold = 190

// PredictionRecord is one row of a prediction dataset.
type PredictionRecord struct {
	Timestamp string // canonical YYYY-MM-DD HH:MM:SS, the exact-match key
	Value     float64
}

// Congested reports whether the predicted volume is above the threshold.
func (r PredictionRecord) Congested() bool {
	return r.Value > CongestionThreshold
}

// Condition is the advisory phrase for the traffic state.
func (r PredictionRecord) Condition() string {
	if r.Congested() {
		return "较为拥挤"
	}
	return "较为通畅"
}

// Advice is the fixed advisory sentence for the traffic state.
func (r PredictionRecord) Advice() string {
	if r.Congested() {
		return "建议避开高峰期出行，或寻找替代路线。"
	}
	return "你可以慢慢开车，路况良好。"
}

// Sentence is the deterministic prediction statement for a matched record.
func (r PredictionRecord) Sentence() string {
	volume := strconv.FormatFloat(r.Value, 'f', -1, 64)
	return fmt.Sprintf("预计在%s流量为%s，%s。%s", r.Timestamp, volume, r.Condition(), r.Advice())
}
