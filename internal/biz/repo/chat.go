package repo

import "context"

// ChatRepo is the generative-text backend interface.
type ChatRepo interface {
	// Ask sends one user message under the fixed persona system prompt and
	// returns the first candidate's text, trimmed. No retries.
	Ask(ctx context.Context, text string) (string, error)
}
