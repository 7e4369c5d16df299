package services

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/iPalashAcharya/futures-trading-bot/domain"
)

type telegramBotCredentials interface {
	GetTelegramBotAPIToken() string
	GetTelegramChatID() string
}

type telegramBotLogger interface {
	Printf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// TelegramBot pushes acknowledged orders to a configured chat. It is
// optional: without a token NewTelegramBot returns nil and the session
// skips notification. Notification failures never affect the workflow
// outcome.
type TelegramBot struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger telegramBotLogger
}

func NewTelegramBot(telegramBotCredentials telegramBotCredentials, telegramBotLogger telegramBotLogger) *TelegramBot {
	token := telegramBotCredentials.GetTelegramBotAPIToken()
	if token == "" {
		return nil
	}

	chatID, err := strconv.ParseInt(telegramBotCredentials.GetTelegramChatID(), 10, 64)
	if err != nil {
		telegramBotLogger.Errorf("invalid TELEGRAM_CHAT_ID, notifications disabled: %v", err)
		return nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		telegramBotLogger.Errorf("telegram bot unavailable, notifications disabled: %v", err)
		return nil
	}

	telegramBotLogger.Printf("telegram order notifications enabled for chat %d", chatID)
	return &TelegramBot{bot: bot, chatID: chatID, logger: telegramBotLogger}
}

func (telegramBot *TelegramBot) NotifyOrder(result *domain.OrderResult) {
	text := fmt.Sprintf("%s %s %s (%s)\nOrder ID: %d\nStatus: %s",
		result.Side, result.OrigQty, result.Symbol, result.Type, result.OrderID, result.Status)

	msg := tgbotapi.NewMessage(telegramBot.chatID, text)
	if _, err := telegramBot.bot.Send(msg); err != nil {
		telegramBot.logger.Errorf("telegram notification failed: %v", err)
	}
}
