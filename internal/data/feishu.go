package data

import (
	"context"

	"github.com/routepal/routepal/feishu"
	"github.com/routepal/routepal/internal/biz/repo"
)

// feishuRepo implements the message repository over the Feishu client.
type feishuRepo struct {
	client *feishu.Client
}

// NewFeishuRepo creates a Feishu message repository.
func NewFeishuRepo(client *feishu.Client) repo.MessageRepo {
	return &feishuRepo{client: client}
}

// SendText sends a text message.
func (r *feishuRepo) SendText(ctx context.Context, chatID, text string) error {
	return r.client.SendText(ctx, chatID, text)
}
