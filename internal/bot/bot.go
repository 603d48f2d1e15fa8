package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/denmor86/cloudpay-bot/internal/logger"
	"github.com/denmor86/cloudpay-bot/internal/services"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultCurrency = "USD"

// Bot - чат-интерфейс для создания платежей. Командой /get_payment юзер
// получает платежную ссылку, дальше заказом занимается движок сверки.
type Bot struct {
	api       *tgbotapi.BotAPI
	engine    services.PaymentEngine
	waitGroup sync.WaitGroup
}

func New(api *tgbotapi.BotAPI, engine services.PaymentEngine) *Bot {
	return &Bot{api: api, engine: engine}
}

// Run - цикл long-polling обновлений Telegram, завершается по контексту
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.waitGroup.Wait()
			logger.Info("Bot stopped")
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.reply(message.Chat.ID, "Hi!\nThe bot is working.")
	case "get_payment":
		b.handleGetPayment(ctx, message)
	case "check_payment":
		b.handleCheckPayment(ctx, message)
	default:
		b.reply(message.Chat.ID,
			"This bot demonstrates the possibilities of interacting with the Cloud Payments API."+
				" To receive a test payment, click /get_payment")
	}
}

// handleGetPayment - создает заказ и запускает polling-проверку платежа.
// Формат команды: /get_payment <сумма> [валюта]
func (b *Bot) handleGetPayment(ctx context.Context, message *tgbotapi.Message) {
	amount, currency, err := parsePaymentArgs(message.CommandArguments())
	if err != nil {
		b.reply(message.Chat.ID, fmt.Sprintf("Somethings went wrong: %s", err))
		return
	}

	owner := strconv.FormatInt(message.Chat.ID, 10)
	order, err := b.engine.CreateAndTrack(ctx, amount, currency, owner)
	if err != nil {
		logger.Error("Failed to create order:", zap.Error(err))
		b.reply(message.Chat.ID, "Somethings went wrong: payment was not created")
		return
	}

	b.reply(message.Chat.ID, fmt.Sprintf("Your order link: %s", order.PaymentURL))

	// проверка статуса живет в своей горутине, бот продолжает принимать команды
	b.waitGroup.Add(1)
	go func() {
		defer b.waitGroup.Done()
		if _, err := b.engine.Track(ctx, order); err != nil {
			logger.Warn("order tracking interrupted", "number", order.Number, zap.Error(err))
		}
	}()
}

// handleCheckPayment - разовая проверка статуса платежа по номеру заказа.
// Формат команды: /check_payment <номер>
func (b *Bot) handleCheckPayment(ctx context.Context, message *tgbotapi.Message) {
	number := strings.TrimSpace(message.CommandArguments())
	if number == "" {
		b.reply(message.Chat.ID, "Somethings went wrong: usage: /check_payment <number>")
		return
	}

	order, err := b.engine.CheckOnce(ctx, number)
	if err != nil {
		logger.Warn("Failed to check order:", zap.Error(err))
		b.reply(message.Chat.ID, fmt.Sprintf("Somethings went wrong: payment %s was not checked", number))
		return
	}

	b.reply(message.Chat.ID, fmt.Sprintf("The payment %s status: %s.", order.Number, order.StatusCode))
}

func parsePaymentArgs(args string) (decimal.Decimal, string, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return decimal.Decimal{}, "", fmt.Errorf("usage: /get_payment <amount> [currency]")
	}
	amount, err := decimal.NewFromString(fields[0])
	if err != nil {
		return decimal.Decimal{}, "", fmt.Errorf("bad amount %q", fields[0])
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, "", fmt.Errorf("amount must be positive")
	}
	currency := defaultCurrency
	if len(fields) > 1 {
		currency = strings.ToUpper(fields[1])
		if len(currency) != 3 {
			return decimal.Decimal{}, "", fmt.Errorf("bad currency %q", fields[1])
		}
	}
	return amount, currency, nil
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logger.Error("Failed to send reply:", zap.Error(err))
	}
}
