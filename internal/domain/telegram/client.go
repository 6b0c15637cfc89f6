package telegram

import "context"

// Client sends plain text alerts to a Telegram chat.
type Client interface {
	SendMessage(ctx context.Context, recipientChatID int64, text string) error
}
