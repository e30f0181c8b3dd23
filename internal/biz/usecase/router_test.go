package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/routepal/routepal/internal/biz/domain"
	"github.com/routepal/routepal/internal/biz/repo"
)

// Mock implementations

type mockChatRepo struct {
	lastQuestion string
	answer       string
	err          error
}

func (m *mockChatRepo) Ask(ctx context.Context, text string) (string, error) {
	m.lastQuestion = text
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

type mockPredictionRepo struct {
	records map[string]domain.PredictionRecord // timestamp -> record
	err     error
}

func (m *mockPredictionRepo) Lookup(ctx context.Context, algorithm, timestamp string) (domain.PredictionRecord, error) {
	if m.err != nil {
		return domain.PredictionRecord{}, m.err
	}
	if rec, ok := m.records[timestamp]; ok {
		return rec, nil
	}
	return domain.PredictionRecord{}, repo.ErrNotFound
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(chat *mockChatRepo, pred *mockPredictionRepo) *RouterUsecase {
	return NewRouterUsecase(chat, pred, domain.DateTimeResolver{}, testLogger())
}

func TestRoute_IdentityProbe(t *testing.T) {
	chat := &mockChatRepo{answer: "should not be used"}
	uc := newTestRouter(chat, &mockPredictionRepo{})

	for _, text := range []string{"你是谁", "hey who are you?"} {
		reply := uc.Route(context.Background(), text, true)
		if !strings.Contains(reply, "道路流量预测助手") {
			t.Errorf("Route(%q) = %q, expected the identity reply", text, reply)
		}
	}
	if chat.lastQuestion != "" {
		t.Error("Identity branch must not call the backend")
	}
}

func TestRoute_IdentityPrecedesPrediction(t *testing.T) {
	chat := &mockChatRepo{answer: "advice"}
	pred := &mockPredictionRepo{records: map[string]domain.PredictionRecord{
		"2024-03-05 14:30:00": {Timestamp: "2024-03-05 14:30:00", Value: 210.5},
	}}
	uc := newTestRouter(chat, pred)

	reply := uc.Route(context.Background(), "你是谁 交通预测 lstm 3月5日下午2点30分", true)
	if !strings.Contains(reply, "道路流量预测助手") {
		t.Errorf("Expected the identity branch to win, got %q", reply)
	}
	if strings.Contains(reply, "预计在") {
		t.Error("Prediction branch must not run when the identity probe matches")
	}
}

func TestRoute_PredictionHit(t *testing.T) {
	chat := &mockChatRepo{answer: "少出门"}
	pred := &mockPredictionRepo{records: map[string]domain.PredictionRecord{
		"2024-03-05 14:30:00": {Timestamp: "2024-03-05 14:30:00", Value: 210.5},
	}}
	uc := newTestRouter(chat, pred)

	reply := uc.Route(context.Background(), "交通预测 lstm 3月5日下午2点30分", true)
	if !strings.Contains(reply, "预计在2024-03-05 14:30:00流量为210.5，较为拥挤。") {
		t.Errorf("Expected the deterministic prediction sentence, got %q", reply)
	}
	if !strings.Contains(reply, "少出门") {
		t.Errorf("Expected the backend advisory appended, got %q", reply)
	}
	if chat.lastQuestion != "我的车道较为拥挤，你建议我做些什么？" {
		t.Errorf("Unexpected backend follow-up question %q", chat.lastQuestion)
	}
}

func TestRoute_PredictionMiss(t *testing.T) {
	chat := &mockChatRepo{answer: "should not be used"}
	uc := newTestRouter(chat, &mockPredictionRepo{})

	reply := uc.Route(context.Background(), "交通预测 gru 3月5日下午2点30分", true)
	if reply != "没有找到对应时间的流量预测。" {
		t.Errorf("Route() = %q, expected the no-prediction reply", reply)
	}
	if chat.lastQuestion != "" {
		t.Error("A dataset miss must not call the backend")
	}
}

func TestRoute_PredictionDatasetError(t *testing.T) {
	pred := &mockPredictionRepo{err: errors.New("disk on fire")}
	uc := newTestRouter(&mockChatRepo{}, pred)

	reply := uc.Route(context.Background(), "交通预测 saes 3月5日下午2点30分", true)
	if reply != "处理您的请求时出现错误，请稍后再试。" {
		t.Errorf("Route() = %q, expected the dataset error reply", reply)
	}
}

func TestRoute_PredictionUnresolvableDateFallsThrough(t *testing.T) {
	chat := &mockChatRepo{answer: "generic answer"}
	uc := newTestRouter(chat, &mockPredictionRepo{})

	reply := uc.Route(context.Background(), "交通预测 lstm 明天", true)
	if reply != "generic answer" {
		t.Errorf("Expected fall-through to the conversational branch, got %q", reply)
	}
	if chat.lastQuestion != "交通预测 lstm 明天" {
		t.Errorf("Expected the normalized text forwarded verbatim, got %q", chat.lastQuestion)
	}
}

func TestRoute_KeywordTask(t *testing.T) {
	chat := &mockChatRepo{answer: "should not be used"}
	uc := newTestRouter(chat, &mockPredictionRepo{})

	reply := uc.Route(context.Background(), "麦扣在吗", true)
	if reply != "🤖：call我做咩啊大佬" {
		t.Errorf("Route() = %q, expected the keyword task reply", reply)
	}
	if chat.lastQuestion != "" {
		t.Error("Keyword branch must not call the backend")
	}
}

func TestRoute_FallbackGroupSeparator(t *testing.T) {
	chat := &mockChatRepo{answer: "an answer"}
	uc := newTestRouter(chat, &mockPredictionRepo{})

	private := uc.Route(context.Background(), "今天天气怎么样", true)
	if private != "an answer" {
		t.Errorf("Private fallback = %q", private)
	}

	group := uc.Route(context.Background(), "今天天气怎么样", false)
	if group != "----------\nan answer" {
		t.Errorf("Group fallback = %q, expected separator prefix", group)
	}
}

func TestRoute_BackendFailure(t *testing.T) {
	chat := &mockChatRepo{err: errors.New("status 500")}
	uc := newTestRouter(chat, &mockPredictionRepo{})

	reply := uc.Route(context.Background(), "hello", true)
	if reply != "🤖️：ChatGPT摆烂了，请稍后再试～" {
		t.Errorf("Route() = %q, expected the fixed backend error reply", reply)
	}
}
