// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gopkg.in/telebot.v3"
)

// botSender is the part of *telebot.Bot the adapter uses.
type botSender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot botSender
}

// NewTelebotAdapter creates a send-only bot. No poller is started.
func NewTelebotAdapter(token string) (*TelebotAdapter, error) {
	b, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Client: &http.Client{Timeout: 30 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create Telegram bot: %w", err)
	}
	return &TelebotAdapter{bot: b}, nil
}

// SendMessage sends a text message to the specified chat.
func (tba *TelebotAdapter) SendMessage(ctx context.Context, recipientChatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	recipient := &telebot.User{ID: recipientChatID} // the owner's direct chat
	_, err := tba.bot.Send(recipient, text, &telebot.SendOptions{ParseMode: telebot.ModeDefault})
	return err
}
