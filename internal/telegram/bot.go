// Package telegram is the Telegram delivery channel: a thin adapter that
// maps updates to the booking engine and renders replies with the inline
// menu. No booking logic lives here.
package telegram

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"salon-bot/internal/booking"
	"salon-bot/internal/session"
)

const (
	cbBookAppointment = "book_appointment"
	cbServices        = "services"
	cbMasters         = "masters"
	cbMyRecords       = "my_records"
	cbChat            = "chat"
	cbBackToMenu      = "back_to_menu"
	cbDeletePrefix    = "delete_record_"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	s       Sender
	engine  *booking.Engine
	catalog *booking.Catalog
	store   *session.Store
}

func New(botToken string, engine *booking.Engine, catalog *booking.Catalog, store *session.Store) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:     api,
		s:       api,
		engine:  engine,
		catalog: catalog,
		store:   store,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message != nil {
			b.handleIncomingMessage(ctx, update.Message)
			continue
		}
		if update.CallbackQuery != nil {
			b.handleCallback(ctx, update.CallbackQuery)
			continue
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	log.Printf("incoming message from %d (@%s): %q", msg.From.ID, msg.From.UserName, msg.Text)

	userID := strconv.FormatInt(msg.From.ID, 10)
	reply := b.engine.Handle(ctx, userID, msg.From.FirstName, msg.Text)
	b.sendMessage(msg.Chat.ID, reply)
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendWithKeyboard(msg.Chat.ID, welcomeText, mainMenuKeyboard())
	case "menu":
		b.sendWithKeyboard(msg.Chat.ID, menuText, mainMenuKeyboard())
	case "reset":
		b.store.Reset(strconv.FormatInt(msg.From.ID, 10))
		b.sendMessage(msg.Chat.ID, "🧹 История диалога очищена.")
	default:
		b.sendMessage(msg.Chat.ID, "Неизвестная команда. Используйте /menu.")
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	userID := strconv.FormatInt(cb.From.ID, 10)

	switch {
	case cb.Data == cbServices:
		b.showServices(ctx, chatID, cb.Message.MessageID)
	case cb.Data == cbMasters:
		b.showMasters(ctx, chatID, cb.Message.MessageID)
	case cb.Data == cbMyRecords:
		b.showRecords(chatID, cb.Message.MessageID, userID)
	case cb.Data == cbBookAppointment:
		b.startBooking(ctx, chatID, cb.Message.MessageID, userID)
	case cb.Data == cbChat:
		b.edit(chatID, cb.Message.MessageID, "Теперь вы можете писать сообщения для общения с AI помощником 💬", nil)
	case cb.Data == cbBackToMenu:
		kb := mainMenuKeyboard()
		b.edit(chatID, cb.Message.MessageID, menuText, &kb)
	case strings.HasPrefix(cb.Data, cbDeletePrefix):
		b.deleteRecord(ctx, chatID, cb.Message.MessageID, userID, cb.Data)
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("failed to ack callback: %v", err)
	}
}

func (b *Bot) showServices(ctx context.Context, chatID int64, messageID int) {
	services, err := b.catalog.Services(ctx)
	if err != nil || len(services) == 0 {
		b.edit(chatID, messageID, "❌ Не удалось загрузить услуги. Попробуйте позже.", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString("✨ *Наши услуги* ✨\n\n")
	for i, s := range services {
		if i == 8 {
			break
		}
		emoji := "✨"
		switch {
		case strings.Contains(strings.ToLower(s.Title), "маникюр"):
			emoji = "💅"
		case strings.Contains(strings.ToLower(s.Title), "педикюр"):
			emoji = "🦶"
		case strings.Contains(strings.ToLower(s.Title), "массаж"):
			emoji = "💆"
		}
		fmt.Fprintf(&sb, "%s *%s*\n", emoji, s.Title)
		if s.PriceMin > 0 {
			fmt.Fprintf(&sb, "   💰 от %d ₽\n", s.PriceMin)
		}
		if s.Length > 0 {
			fmt.Fprintf(&sb, "   ⏱ %d мин\n", s.Length/60)
		}
		sb.WriteString("\n")
	}

	kb := bookOrBackKeyboard()
	b.edit(chatID, messageID, sb.String(), &kb)
}

func (b *Bot) showMasters(ctx context.Context, chatID int64, messageID int) {
	staff, err := b.catalog.Staff(ctx)
	if err != nil || len(staff) == 0 {
		b.edit(chatID, messageID, "❌ Не удалось загрузить мастеров. Попробуйте позже.", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString("👥 *Наши мастера* 👥\n\n")
	for _, m := range staff {
		emoji := "✨"
		switch {
		case strings.Contains(strings.ToLower(m.Specialization), "массаж"):
			emoji = "💆‍♀️"
		case strings.Contains(strings.ToLower(m.Specialization), "мастер"):
			emoji = "💅"
		}
		fmt.Fprintf(&sb, "%s *%s*\n", emoji, m.Name)
		if m.Specialization != "" {
			fmt.Fprintf(&sb, "   🎯 %s\n", m.Specialization)
		}
		sb.WriteString("\n")
	}

	kb := bookOrBackKeyboard()
	b.edit(chatID, messageID, sb.String(), &kb)
}

func (b *Bot) showRecords(chatID int64, messageID int, userID string) {
	records := b.store.Records(userID)
	if len(records) == 0 {
		kb := bookOrBackKeyboard()
		b.edit(chatID, messageID,
			"📅 *Мои записи*\n\n"+
				"У вас пока нет записей.\n\n"+
				"💡 *Создайте первую запись:*\n"+
				"• Используйте кнопку \"📝 Записаться\"\n"+
				"• Или напишите в чат \"хочу записаться\"", &kb)
		return
	}

	var sb strings.Builder
	sb.WriteString("📅 *Мои записи* 📅\n\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, r := range records {
		if i == 5 {
			break
		}
		fmt.Fprintf(&sb, "📋 *Запись %d:*\n%s\n", i+1, booking.FormatRecord(r))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🗑 Удалить запись %d", i+1),
				fmt.Sprintf("%s%d", cbDeletePrefix, r.ID),
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Главное меню", cbBackToMenu),
	))

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.edit(chatID, messageID, sb.String(), &kb)
}

func (b *Bot) startBooking(ctx context.Context, chatID int64, messageID int, userID string) {
	if _, ok := b.store.Phone(userID); !ok {
		kb := backKeyboard()
		b.edit(chatID, messageID,
			"📱 *Для записи нужен ваш номер телефона*\n\n"+
				"Пожалуйста, отправьте номер в формате:\n"+
				"`+7XXXXXXXXXX`\n\n"+
				"Например: `+79991234567`", &kb)
		return
	}

	var sb strings.Builder
	sb.WriteString("📝 *Создание записи* 📝\n\n")
	sb.WriteString("✨ *Доступные услуги:*\n")
	if services, err := b.catalog.Services(ctx); err == nil {
		for i, s := range services {
			if i == 5 {
				break
			}
			if s.PriceMin > 0 {
				fmt.Fprintf(&sb, "• %s (от %d ₽)\n", s.Title, s.PriceMin)
			} else {
				fmt.Fprintf(&sb, "• %s\n", s.Title)
			}
		}
	}
	sb.WriteString("\n👥 *Доступные мастера:*\n")
	if staff, err := b.catalog.Staff(ctx); err == nil {
		for i, m := range staff {
			if i == 5 {
				break
			}
			if m.Specialization != "" {
				fmt.Fprintf(&sb, "• %s (%s)\n", m.Name, m.Specialization)
			} else {
				fmt.Fprintf(&sb, "• %s\n", m.Name)
			}
		}
	}
	sb.WriteString("\n💬 *Напишите сообщение с вашими пожеланиями:*\n")
	sb.WriteString("Например: `Хочу записаться на маникюр к Арине на завтра в 14:00`")

	kb := backKeyboard()
	b.edit(chatID, messageID, sb.String(), &kb)
}

func (b *Bot) deleteRecord(ctx context.Context, chatID int64, messageID int, userID, data string) {
	recordID, err := strconv.ParseInt(strings.TrimPrefix(data, cbDeletePrefix), 10, 64)
	if err != nil {
		log.Printf("bad delete callback %q: %v", data, err)
		return
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 К записям", cbMyRecords),
	))
	if err := b.engine.Executor().Delete(ctx, userID, recordID); err != nil {
		log.Printf("failed to delete record %d: %v", recordID, err)
		b.edit(chatID, messageID, "❌ Ошибка при удалении записи. Попробуйте позже.", &kb)
		return
	}
	b.edit(chatID, messageID, fmt.Sprintf("✅ Запись #%d успешно удалена!", recordID), &kb)
}

const welcomeText = "✨ *Добро пожаловать в салон красоты!* ✨\n\n" +
	"🎯 *Что я умею:*\n" +
	"• 📝 Записать вас к мастеру\n" +
	"• 📋 Показать доступные услуги\n" +
	"• 👥 Познакомить с мастерами\n" +
	"• 📅 Управлять вашими записями\n" +
	"• 💬 Ответить на вопросы\n\n" +
	"Выберите действие:"

const menuText = "🏠 *Главное меню*\n\n" +
	"📝 *Записаться* - создать новую запись\n" +
	"📋 *Услуги* - посмотреть доступные услуги\n" +
	"👥 *Мастера* - посмотреть мастеров и их расписание\n" +
	"📅 *Мои записи* - просмотр и управление записями\n" +
	"💬 *Чат с AI* - общение с AI помощником"

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📝 Записаться", cbBookAppointment)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📋 Услуги", cbServices)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("👥 Мастера", cbMasters)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📅 Мои записи", cbMyRecords)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("💬 Чат с AI", cbChat)),
	)
}

func bookOrBackKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📝 Записаться", cbBookAppointment)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🔙 Главное меню", cbBackToMenu)),
	)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🔙 Главное меню", cbBackToMenu)),
	)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.s.Send(msg); err != nil {
		// LLM output can contain unbalanced markup; retry plain.
		msg.ParseMode = ""
		if _, err := b.s.Send(msg); err != nil {
			log.Printf("failed to send message: %v", err)
		}
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = kb
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) edit(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	var c tgbotapi.Chattable
	if kb != nil {
		m := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *kb)
		m.ParseMode = tgbotapi.ModeMarkdown
		c = m
	} else {
		m := tgbotapi.NewEditMessageText(chatID, messageID, text)
		m.ParseMode = tgbotapi.ModeMarkdown
		c = m
	}
	if _, err := b.s.Send(c); err != nil {
		log.Printf("failed to edit message: %v", err)
	}
}
