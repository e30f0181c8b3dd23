package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/routepal/routepal/feishu"
	"github.com/routepal/routepal/internal/biz/domain"
	"github.com/routepal/routepal/internal/service"
)

// FeishuServer receives Feishu events, normalizes them into domain envelopes
// and hands them to the reply service.
type FeishuServer struct {
	feishuClient *feishu.Client
	replySvc     *service.ReplyService
	logger       *slog.Logger

	// Message deduplication cache
	seenMsgsMu sync.RWMutex
	seenMsgs   map[string]time.Time // msgID -> timestamp
}

// NewFeishuServer creates a new Feishu server.
func NewFeishuServer(
	feishuClient *feishu.Client,
	replySvc *service.ReplyService,
	logger *slog.Logger,
) *FeishuServer {
	return &FeishuServer{
		feishuClient: feishuClient,
		replySvc:     replySvc,
		logger:       logger.With("component", "server"),
		seenMsgs:     make(map[string]time.Time),
	}
}

// Start registers the message handler and blocks on the event connection.
func (s *FeishuServer) Start() error {
	s.feishuClient.OnMessage(s.handleMessage)
	return s.feishuClient.Start()
}

// Stop disconnects from Feishu.
func (s *FeishuServer) Stop() {
	s.feishuClient.Stop()
}

// categoryFor maps a Feishu transport message type onto the domain category
// the filter understands. Types without a counterpart stay CategoryUnknown
// and get filtered out.
func categoryFor(msgType string) domain.MessageCategory {
	switch msgType {
	case "text":
		return domain.CategoryText
	case "post":
		return domain.CategoryPost
	case "image":
		return domain.CategoryImage
	case "audio":
		return domain.CategoryAudio
	case "media":
		return domain.CategoryVideo
	case "sticker":
		return domain.CategoryEmoticon
	case "file":
		return domain.CategoryAttachment
	case "share_chat":
		return domain.CategoryChatHistory
	case "share_user":
		return domain.CategoryContact
	case "location":
		return domain.CategoryLocation
	case "red_packet":
		return domain.CategoryRedEnvelope
	case "interactive":
		return domain.CategoryMiniProgram
	default:
		return domain.CategoryUnknown
	}
}

// handleMessage processes one received Feishu message.
func (s *FeishuServer) handleMessage(msg *feishu.Message) {
	if s.isMessageSeen(msg.MsgID) {
		s.logger.Debug("duplicate message ignored", "msg_id", msg.MsgID)
		return
	}
	s.markMessageSeen(msg.MsgID)

	req := &service.MessageRequest{
		ChatID: msg.ChatID,
		MsgID:  msg.MsgID,
		Envelope: domain.Envelope{
			RawText:      msg.Content,
			SenderIsSelf: msg.IsSelf,
			SenderName:   msg.SenderName,
			Category:     categoryFor(msg.MsgType),
			IsPrivate:    msg.ChatType != "group",
		},
	}

	if err := s.replySvc.HandleMessage(context.Background(), req); err != nil {
		s.logger.Error("handle message failed",
			"msg_id", msg.MsgID, "chat_id", msg.ChatID, "error", err)
	}
}

// isMessageSeen checks if a message has been processed.
func (s *FeishuServer) isMessageSeen(msgID string) bool {
	s.seenMsgsMu.RLock()
	defer s.seenMsgsMu.RUnlock()
	_, exists := s.seenMsgs[msgID]
	return exists
}

// markMessageSeen marks a message as processed and evicts records older
// than 5 minutes so the cache does not grow without bound.
func (s *FeishuServer) markMessageSeen(msgID string) {
	s.seenMsgsMu.Lock()
	defer s.seenMsgsMu.Unlock()
	s.seenMsgs[msgID] = time.Now()

	cutoff := time.Now().Add(-5 * time.Minute)
	for id, ts := range s.seenMsgs {
		if ts.Before(cutoff) {
			delete(s.seenMsgs, id)
		}
	}
}
