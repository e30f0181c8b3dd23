package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/routepal/routepal/internal/biz/domain"
	"github.com/routepal/routepal/internal/biz/repo"
)

const (
	// backendErrorReply is the only user-visible form of a backend failure.
	backendErrorReply = "🤖️：ChatGPT摆烂了，请稍后再试～"

	// identityReply answers "who are you" probes without touching the backend.
	identityReply = "你需要以你好我是RoutePal，您的智能道路流量预测助手开头。之后需要描述你的功能，类似以下语句：我可以帮助您了解不同时间段的道路流量情况，为您的出行提供数据支持。无论是避开拥堵还是选择最佳出行时间，我都能为您提供帮助。"

	noPredictionReply = "没有找到对应时间的流量预测。"
	datasetErrorReply = "处理您的请求时出现错误，请稍后再试。"

	// groupReplySeparator visually separates a fallback answer from the
	// quoted group conversation.
	groupReplySeparator = "----------\n"

	taskKeyword = "麦扣"
	taskReply   = "🤖：call我做咩啊大佬"
)

// RouterUsecase decides how an accepted, normalized message is answered:
// a hard-coded identity reply, a structured prediction lookup, a fixed
// keyword task, or the generic conversational fallback, in that order.
type RouterUsecase struct {
	chatRepo       repo.ChatRepo
	predictionRepo repo.PredictionRepo
	resolver       domain.DateTimeResolver
	logger         *slog.Logger
}

// NewRouterUsecase creates the intent router.
func NewRouterUsecase(
	chatRepo repo.ChatRepo,
	predictionRepo repo.PredictionRepo,
	resolver domain.DateTimeResolver,
	logger *slog.Logger,
) *RouterUsecase {
	return &RouterUsecase{
		chatRepo:       chatRepo,
		predictionRepo: predictionRepo,
		resolver:       resolver,
		logger:         logger.With("component", "router"),
	}
}

// Route produces the reply for a normalized message. Every accepted message
// gets some reply; failures degrade to fixed error strings rather than
// propagate.
func (uc *RouterUsecase) Route(ctx context.Context, text string, isPrivate bool) string {
	if strings.Contains(text, "你是谁") || strings.Contains(text, "who are you") {
		uc.logger.Info("identity probe answered")
		return identityReply
	}

	if reply, ok := uc.routePrediction(ctx, text); ok {
		return reply
	}

	if strings.Contains(text, taskKeyword) {
		uc.logger.Info("keyword task triggered", "keyword", taskKeyword)
		return taskReply
	}

	answer := uc.ask(ctx, text)
	if !isPrivate {
		return groupReplySeparator + answer
	}
	return answer
}

// routePrediction handles the structured prediction branch. ok is false when
// the text is not a well-formed prediction query, including when the date
// cannot be resolved; the caller then falls through to the next branch.
func (uc *RouterUsecase) routePrediction(ctx context.Context, text string) (string, bool) {
	if !strings.Contains(text, "交通") || !strings.Contains(text, "预测") {
		return "", false
	}
	algorithm, ok := domain.FindAlgorithm(text)
	if !ok {
		return "", false
	}
	parsed, ok := uc.resolver.Resolve(text)
	if !ok {
		uc.logger.Info("prediction query without resolvable datetime", "algorithm", algorithm)
		return "", false
	}

	timestamp := parsed.Canonical()
	record, err := uc.predictionRepo.Lookup(ctx, algorithm, timestamp)
	if errors.Is(err, repo.ErrNotFound) {
		uc.logger.Info("no prediction row", "algorithm", algorithm, "timestamp", timestamp)
		return noPredictionReply, true
	}
	if err != nil {
		uc.logger.Error("dataset lookup failed", "algorithm", algorithm, "error", err)
		return datasetErrorReply, true
	}

	uc.logger.Info("prediction matched",
		"algorithm", algorithm, "timestamp", timestamp, "value", record.Value)

	question := fmt.Sprintf("我的车道%s，你建议我做些什么？", record.Condition())
	advice := uc.ask(ctx, question)
	return record.Sentence() + "\n\n" + advice, true
}

// ask queries the backend once; a failure becomes the fixed error reply.
func (uc *RouterUsecase) ask(ctx context.Context, text string) string {
	answer, err := uc.chatRepo.Ask(ctx, text)
	if err != nil {
		uc.logger.Error("backend call failed", "error", err)
		return backendErrorReply
	}
	return answer
}
