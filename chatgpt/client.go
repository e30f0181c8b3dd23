package chatgpt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultModel = openai.GPT3Dot5Turbo

	// temperature is part of the fixed request parameter set.
	temperature = 0.8
)

// systemPrompt is the fixed persona instruction, with the current date
// stamped in at client construction.
const systemPromptFormat = "You are ChatGPT, a large language model trained by OpenAI. Answer as concisely as possible.\nKnowledge cutoff: 2021-09-01\nCurrent date: %s"

// Client wraps the OpenAI chat completion API behind a single-question
// interface. No conversation memory is kept across calls.
type Client struct {
	client       *openai.Client
	model        string
	systemPrompt string
	logger       *slog.Logger
}

// NewClient creates an OpenAI client. orgID may be empty; an empty model
// selects the default.
func NewClient(apiKey, orgID, model string, logger *slog.Logger) *Client {
	if model == "" {
		model = defaultModel
	}

	config := openai.DefaultConfig(apiKey)
	config.OrgID = orgID

	return &Client{
		client:       openai.NewClientWithConfig(config),
		model:        model,
		systemPrompt: fmt.Sprintf(systemPromptFormat, time.Now().Format("2006-01-02")),
		logger:       logger.With("component", "chatgpt"),
	}
}

// Ask sends one user message under the persona system prompt and returns the
// first candidate's text, trimmed. Failures are returned to the caller; there
// is no retry and no client-side timeout.
func (c *Client) Ask(ctx context.Context, text string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: temperature,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			c.logger.Error("chat completion rejected",
				"status", apiErr.HTTPStatusCode, "message", apiErr.Message)
		}
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.logger.Debug("chat completion answered", "chars", len(answer))
	return answer, nil
}
