package data

import (
	"context"

	"github.com/routepal/routepal/chatgpt"
	"github.com/routepal/routepal/internal/biz/repo"
)

// chatgptRepo implements the generative backend repository.
type chatgptRepo struct {
	client *chatgpt.Client
}

// NewChatGPTRepo creates a ChatGPT repository.
func NewChatGPTRepo(client *chatgpt.Client) repo.ChatRepo {
	return &chatgptRepo{client: client}
}

// Ask forwards one question to the backend.
func (r *chatgptRepo) Ask(ctx context.Context, text string) (string, error) {
	return r.client.Ask(ctx, text)
}
