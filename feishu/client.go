package feishu

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	lark "github.com/larksuite/oapi-sdk-go/v3"
	larkcore "github.com/larksuite/oapi-sdk-go/v3/core"
	"github.com/larksuite/oapi-sdk-go/v3/event/dispatcher"
	larkim "github.com/larksuite/oapi-sdk-go/v3/service/im/v1"
	larkws "github.com/larksuite/oapi-sdk-go/v3/ws"
)

// Message is one received Feishu message, flattened for the pipeline.
type Message struct {
	ChatID     string
	MsgID      string
	MsgType    string // raw transport type: text, image, audio, sticker, ...
	ChatType   string // p2p (private), group
	Content    string // text content, empty for non-text messages
	SenderID   string
	SenderName string // resolved from chat members, best effort
	IsSelf     bool   // sent by the bot itself
	CreateTime int64  // milliseconds Unix timestamp
}

// MessageHandler is the callback for received messages.
type MessageHandler func(msg *Message)

// Client is the Feishu transport client: websocket event intake plus the IM
// send API.
type Client struct {
	appID     string
	appSecret string
	larkCli   *lark.Client
	wsCli     *larkws.Client
	onMessage MessageHandler
	logger    *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	botOpenID string // bot's own open_id, fetched at startup
}

// NewClient creates a Feishu client.
func NewClient(appID, appSecret string, logger *slog.Logger) *Client {
	return &Client{
		appID:     appID,
		appSecret: appSecret,
		logger:    logger.With("component", "feishu"),
	}
}

// OnMessage sets the message handler.
func (c *Client) OnMessage(handler MessageHandler) {
	c.onMessage = handler
}

// Start connects to Feishu via websocket and blocks until Stop or failure.
func (c *Client) Start() error {
	c.ctx, c.cancel = context.WithCancel(context.Background())

	c.larkCli = lark.NewClient(c.appID, c.appSecret)

	if err := c.fetchBotOpenID(); err != nil {
		c.logger.Warn("failed to fetch bot open_id", "error", err)
	}

	// The handler must return quickly so the SDK can ack; Feishu redelivers
	// unacked events.
	eventHandler := dispatcher.NewEventDispatcher("", "").
		OnP2MessageReceiveV1(func(ctx context.Context, event *larkim.P2MessageReceiveV1) error {
			go c.handleMessage(event)
			return nil
		})

	c.wsCli = larkws.NewClient(c.appID, c.appSecret,
		larkws.WithEventHandler(eventHandler),
		larkws.WithLogLevel(larkcore.LogLevelInfo),
	)

	c.logger.Info("starting websocket connection")
	return c.wsCli.Start(c.ctx)
}

// Stop disconnects from Feishu.
func (c *Client) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

// fetchBotOpenID fetches the bot's own open_id, used to recognize self-sent
// messages.
func (c *Client) fetchBotOpenID() error {
	tokenReq := fmt.Sprintf(`{"app_id":%q,"app_secret":%q}`, c.appID, c.appSecret)
	tokenResp, err := http.Post(
		"https://open.feishu.cn/open-apis/auth/v3/tenant_access_token/internal",
		"application/json",
		strings.NewReader(tokenReq),
	)
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}
	defer tokenResp.Body.Close()

	var tokenResult struct {
		Code              int    `json:"code"`
		TenantAccessToken string `json:"tenant_access_token"`
	}
	if err := json.NewDecoder(tokenResp.Body).Decode(&tokenResult); err != nil {
		return fmt.Errorf("decode token: %w", err)
	}

	req, _ := http.NewRequest("GET", "https://open.feishu.cn/open-apis/bot/v3/info", nil)
	req.Header.Set("Authorization", "Bearer "+tokenResult.TenantAccessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("get bot info: %w", err)
	}
	defer resp.Body.Close()

	var botResult struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
		Bot  struct {
			OpenID  string `json:"open_id"`
			AppName string `json:"app_name"`
		} `json:"bot"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&botResult); err != nil {
		return fmt.Errorf("decode bot info: %w", err)
	}
	if botResult.Code != 0 {
		return fmt.Errorf("API error: %s", botResult.Msg)
	}

	c.botOpenID = botResult.Bot.OpenID
	c.logger.Info("bot identity resolved", "open_id", c.botOpenID, "name", botResult.Bot.AppName)
	return nil
}

// handleMessage flattens an incoming event. Non-text messages pass through
// with empty content so the pipeline can classify and reject them itself.
func (c *Client) handleMessage(event *larkim.P2MessageReceiveV1) {
	rawMsg := event.Event.Message
	if rawMsg == nil {
		return
	}

	msg := &Message{
		ChatID:  *rawMsg.ChatId,
		MsgID:   *rawMsg.MessageId,
		MsgType: *rawMsg.MessageType,
	}
	if rawMsg.ChatType != nil {
		msg.ChatType = *rawMsg.ChatType
	}
	if rawMsg.CreateTime != nil {
		fmt.Sscanf(*rawMsg.CreateTime, "%d", &msg.CreateTime)
	}

	if event.Event.Sender != nil {
		if event.Event.Sender.SenderId != nil && event.Event.Sender.SenderId.OpenId != nil {
			msg.SenderID = *event.Event.Sender.SenderId.OpenId
		}
		if event.Event.Sender.SenderType != nil && *event.Event.Sender.SenderType == "app" {
			msg.IsSelf = true
		}
	}
	if msg.SenderID != "" && msg.SenderID == c.botOpenID {
		msg.IsSelf = true
	}
	msg.SenderName = c.resolveSenderName(msg.ChatID, msg.SenderID)

	if msg.MsgType == "text" && rawMsg.Content != nil {
		var parsed struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal([]byte(*rawMsg.Content), &parsed); err != nil {
			c.logger.Warn("failed to parse text content", "msg_id", msg.MsgID, "error", err)
			return
		}
		msg.Content = parsed.Text
	}

	c.logger.Info("message received",
		"type", msg.MsgType, "chat_type", msg.ChatType, "chat_id", msg.ChatID,
		"text", truncate(msg.Content, 50))

	if c.onMessage != nil {
		c.onMessage(msg)
	}
}

// resolveSenderName looks the sender up in the chat member list. Best effort;
// private chats and unknown members yield an empty name.
func (c *Client) resolveSenderName(chatID, senderID string) string {
	if senderID == "" {
		return ""
	}
	members, err := c.GetChatMembers(chatID)
	if err != nil {
		c.logger.Debug("member lookup failed", "chat_id", chatID, "error", err)
		return ""
	}
	for _, m := range members {
		if m.MemberID == senderID {
			return m.Name
		}
	}
	return ""
}

// ChatMember is one member of a chat.
type ChatMember struct {
	MemberID string
	Name     string
}

// GetChatMembers retrieves all members of a chat, following pagination.
func (c *Client) GetChatMembers(chatID string) ([]ChatMember, error) {
	var members []ChatMember
	var pageToken string

	for {
		reqBuilder := larkim.NewGetChatMembersReqBuilder().
			MemberIdType("open_id").
			ChatId(chatID).
			PageSize(100)
		if pageToken != "" {
			reqBuilder = reqBuilder.PageToken(pageToken)
		}

		resp, err := c.larkCli.Im.ChatMembers.Get(context.Background(), reqBuilder.Build())
		if err != nil {
			return nil, fmt.Errorf("get chat members failed: %w", err)
		}
		if !resp.Success() {
			return nil, fmt.Errorf("get chat members error: %s", resp.Msg)
		}

		for _, item := range resp.Data.Items {
			member := ChatMember{}
			if item.MemberId != nil {
				member.MemberID = *item.MemberId
			}
			if item.Name != nil {
				member.Name = *item.Name
			}
			members = append(members, member)
		}

		if resp.Data.PageToken == nil || *resp.Data.PageToken == "" {
			break
		}
		pageToken = *resp.Data.PageToken
	}
	return members, nil
}

// SendText sends a text message to a chat.
func (c *Client) SendText(ctx context.Context, chatID, text string) error {
	content := map[string]string{"text": text}
	contentJSON, _ := json.Marshal(content)

	req := larkim.NewCreateMessageReqBuilder().
		ReceiveIdType(larkim.ReceiveIdTypeChatId).
		Body(larkim.NewCreateMessageReqBodyBuilder().
			ReceiveId(chatID).
			MsgType(larkim.MsgTypeText).
			Content(string(contentJSON)).
			Build()).
		Build()

	resp, err := c.larkCli.Im.Message.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("send message failed: %w", err)
	}
	if !resp.Success() {
		return fmt.Errorf("send message error: %s", resp.Msg)
	}

	c.logger.Debug("message sent", "chat_id", chatID)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
