package telegram

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"salon-bot/internal/session"
)

type fakeSender struct {
	sent    []tgbotapi.Chattable
	failOn  func(c tgbotapi.Chattable) bool
	failErr error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.failOn != nil && f.failOn(c) {
		return tgbotapi.Message{}, f.failErr
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func TestSendMessageUsesMarkdown(t *testing.T) {
	fake := &fakeSender{}
	b := &Bot{s: fake}

	b.sendMessage(1, "✅ *готово*")

	if len(fake.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(fake.sent))
	}
	msg, ok := fake.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected MessageConfig, got %T", fake.sent[0])
	}
	if msg.ParseMode != tgbotapi.ModeMarkdown {
		t.Errorf("expected Markdown parse mode, got %q", msg.ParseMode)
	}
}

func TestSendMessageRetriesPlainOnMarkdownError(t *testing.T) {
	fake := &fakeSender{
		failErr: errors.New("can't parse entities"),
		failOn: func(c tgbotapi.Chattable) bool {
			msg, ok := c.(tgbotapi.MessageConfig)
			return ok && msg.ParseMode == tgbotapi.ModeMarkdown
		},
	}
	b := &Bot{s: fake}

	b.sendMessage(1, "ответ с *несбалансированной разметкой")

	if len(fake.sent) != 1 {
		t.Fatalf("expected the plain retry to land, got %d messages", len(fake.sent))
	}
	msg := fake.sent[0].(tgbotapi.MessageConfig)
	if msg.ParseMode != "" {
		t.Errorf("retry must drop the parse mode, got %q", msg.ParseMode)
	}
	if msg.Text != "ответ с *несбалансированной разметкой" {
		t.Errorf("retry must keep the text, got %q", msg.Text)
	}
}

func TestStartCommandShowsMenu(t *testing.T) {
	fake := &fakeSender{}
	b := &Bot{s: fake}

	b.handleCommand(&tgbotapi.Message{
		Text: "/start",
		Chat: &tgbotapi.Chat{ID: 1},
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: 6},
		},
	})

	if len(fake.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(fake.sent))
	}
	msg := fake.sent[0].(tgbotapi.MessageConfig)
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("expected inline keyboard, got %T", msg.ReplyMarkup)
	}
	if len(kb.InlineKeyboard) != 5 {
		t.Errorf("expected 5 menu rows, got %d", len(kb.InlineKeyboard))
	}
}

func TestResetCommandClearsHistory(t *testing.T) {
	fake := &fakeSender{}
	store := session.New(6)
	store.AppendUser("5", "хочу маникюр")
	b := &Bot{s: fake, store: store}

	b.handleCommand(&tgbotapi.Message{
		Text: "/reset",
		Chat: &tgbotapi.Chat{ID: 1},
		From: &tgbotapi.User{ID: 5},
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: 6},
		},
	})

	if len(store.History("5")) != 0 {
		t.Error("expected history to be cleared")
	}
	if len(fake.sent) != 1 {
		t.Fatalf("expected a confirmation message, got %d", len(fake.sent))
	}
}

func TestMainMenuCallbacks(t *testing.T) {
	seen := map[string]bool{}
	for _, row := range mainMenuKeyboard().InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil {
				seen[*btn.CallbackData] = true
			}
		}
	}
	for _, want := range []string{cbBookAppointment, cbServices, cbMasters, cbMyRecords, cbChat} {
		if !seen[want] {
			t.Errorf("menu is missing callback %q", want)
		}
	}
}
