package domain

import "testing"

func TestPredictionRecord_Classification(t *testing.T) {
	congested := PredictionRecord{Timestamp: "2024-03-05 14:30:00", Value: 210.5}
	if !congested.Congested() {
		t.Error("Expected 210.5 to classify as congested")
	}
	if congested.Condition() != "较为拥挤" {
		t.Errorf("Condition() = %q", congested.Condition())
	}

	clear := PredictionRecord{Timestamp: "2024-03-05 14:30:00", Value: 150.0}
	if clear.Congested() {
		t.Error("Expected 150.0 to classify as clear")
	}
	if clear.Condition() != "较为通畅" {
		t.Errorf("Condition() = %q", clear.Condition())
	}

	// The threshold itself is not congested.
	border := PredictionRecord{Value: 190}
	if border.Congested() {
		t.Error("Expected exactly 190 to classify as clear")
	}
}

func TestPredictionRecord_Sentence(t *testing.T) {
	rec := PredictionRecord{Timestamp: "2024-03-05 14:30:00", Value: 210.5}
	want := "预计在2024-03-05 14:30:00流量为210.5，较为拥挤。建议避开高峰期出行，或寻找替代路线。"
	if got := rec.Sentence(); got != want {
		t.Errorf("Sentence() = %q, want %q", got, want)
	}
}

func TestFindAlgorithm(t *testing.T) {
	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"交通预测 lstm 3月5日", "lstm", true},
		{"预测 gru", "gru", true},
		{"saes 模型", "saes", true},
		{"交通预测 3月5日", "", false},
		{"lstm 和 gru 哪个好", "", false},
	}
	for _, tt := range tests {
		got, ok := FindAlgorithm(tt.text)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("FindAlgorithm(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.wantOK)
		}
	}
}
