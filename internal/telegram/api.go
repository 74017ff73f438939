package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Sender abstracts the outbound Telegram API for tests.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}
