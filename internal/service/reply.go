package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/routepal/routepal/internal/biz/domain"
	"github.com/routepal/routepal/internal/biz/repo"
	"github.com/routepal/routepal/internal/biz/usecase"
)

// ReplyService runs the full per-message pipeline: noise filtering,
// trigger matching, routing, and segmented delivery.
type ReplyService struct {
	filterUC    *usecase.FilterUsecase
	routerUC    *usecase.RouterUsecase
	trigger     domain.TriggerContext
	messageRepo repo.MessageRepo
	logger      *slog.Logger
}

// NewReplyService creates a reply service.
func NewReplyService(
	filterUC *usecase.FilterUsecase,
	routerUC *usecase.RouterUsecase,
	trigger domain.TriggerContext,
	messageRepo repo.MessageRepo,
	logger *slog.Logger,
) *ReplyService {
	return &ReplyService{
		filterUC:    filterUC,
		routerUC:    routerUC,
		trigger:     trigger,
		messageRepo: messageRepo,
		logger:      logger.With("component", "reply"),
	}
}

// MessageRequest carries one inbound message through the pipeline.
type MessageRequest struct {
	ChatID   string
	MsgID    string
	Envelope domain.Envelope
}

// HandleMessage filters, routes and answers one message. Messages that
// are noise or not addressed to the bot are dropped silently.
func (s *ReplyService) HandleMessage(ctx context.Context, req *MessageRequest) error {
	env := req.Envelope

	if s.filterUC.IsNonsense(env) {
		s.logger.Debug("dropping noise message",
			"msg_id", req.MsgID, "category", env.Category.String())
		return nil
	}

	if !s.trigger.IsTriggered(env.RawText, env.IsPrivate) {
		return nil
	}

	text := s.trigger.Clean(env.RawText, env.IsPrivate)
	s.logger.Info("handling triggered message",
		"chat_id", req.ChatID, "private", env.IsPrivate, "text", text)

	reply := s.routerUC.Route(ctx, text, env.IsPrivate)

	for _, chunk := range domain.SegmentReply(reply, domain.MaxChunkSize) {
		if err := s.messageRepo.SendText(ctx, req.ChatID, chunk); err != nil {
			return fmt.Errorf("send reply: %w", err)
		}
	}
	return nil
}
