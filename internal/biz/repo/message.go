package repo

import "context"

// MessageRepo sends replies back through the chat transport.
type MessageRepo interface {
	// SendText sends one text message to a chat. Long replies are segmented
	// by the caller; one call per chunk, in order.
	SendText(ctx context.Context, chatID, text string) error
}
