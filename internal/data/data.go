package data

import (
	"log/slog"

	"github.com/routepal/routepal/chatgpt"
	"github.com/routepal/routepal/feishu"
	"github.com/routepal/routepal/internal/biz/repo"
)

// Repositories contains all repositories.
type Repositories struct {
	Message    repo.MessageRepo
	Chat       repo.ChatRepo
	Prediction repo.PredictionRepo
}

// NewRepositories creates all repositories.
func NewRepositories(
	feishuClient *feishu.Client,
	chatgptClient *chatgpt.Client,
	dataDir string,
	logger *slog.Logger,
) *Repositories {
	return &Repositories{
		Message:    NewFeishuRepo(feishuClient),
		Chat:       NewChatGPTRepo(chatgptClient),
		Prediction: NewPredictionRepo(dataDir, logger),
	}
}
