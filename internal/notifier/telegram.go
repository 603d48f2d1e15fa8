package notifier

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram - доставка уведомлений владельцу заказа в чат.
// Получатель - идентификатор чата, сохраненный при создании заказа.
type Telegram struct {
	api *tgbotapi.BotAPI
}

func NewTelegram(api *tgbotapi.BotAPI) *Telegram {
	return &Telegram{api: api}
}

func (n *Telegram) Notify(ctx context.Context, recipient string, message string) error {
	chatID, err := strconv.ParseInt(recipient, 10, 64)
	if err != nil {
		return fmt.Errorf("bad recipient %q: %w", recipient, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := n.api.Send(tgbotapi.NewMessage(chatID, message)); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
