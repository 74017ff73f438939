package booking

import (
	"fmt"
	"strings"

	"salon-bot/internal/session"
)

const (
	phoneRequestReply = "📱 *Для создания записи нужен ваш номер телефона*\n\n" +
		"Пожалуйста, отправьте номер в формате:\n`+7XXXXXXXXXX`"

	clarifyReply = "Не удалось распознать данные для записи. Попробуйте еще раз."

	llmErrorReply = "Извините, произошла ошибка при обработке запроса."
)

func phoneSavedReply(phone string) string {
	return fmt.Sprintf("✅ *Номер телефона %s сохранен!*\n\n"+
		"Теперь вы можете создавать записи.\n"+
		"Напишите `хочу записаться` для начала.", phone)
}

func bookingCreatedReply(in Intent) string {
	return fmt.Sprintf("🎉 *Запись успешно создана в системе!* 🎉\n\n"+
		"📅 *Услуга:* %s\n"+
		"👤 *Мастер:* %s\n"+
		"⏰ *Время:* %s\n\n"+
		"Спасибо за запись! Ждем вас в салоне! ✨", in.Service, in.Master, in.When)
}

// conflictReply always carries the same four alternatives. They are
// static suggestions, not computed availability.
func conflictReply(in Intent) string {
	return fmt.Sprintf("❌ *Время %s недоступно*\n\n"+
		"💡 *Предлагаем альтернативные варианты:*\n"+
		"• %s у %s\n"+
		"• Завтра в 14:00\n"+
		"• Завтра в 15:00\n"+
		"• Завтра в 17:00\n\n"+
		"Напишите желаемое время, например: `завтра 14:00`", in.When, in.Service, in.Master)
}

func bookingErrorReply(err error) string {
	return fmt.Sprintf("❌ *Ошибка при создании записи:* %v", err)
}

var attendanceStatus = map[int]string{
	2:  "✅ Подтверждена",
	1:  "✅ Выполнена",
	0:  "⏳ Ожидание",
	-1: "❌ Не пришел",
}

// FormatRecord renders a local booking mirror for the user.
func FormatRecord(r session.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 *%s*\n", r.Date)
	fmt.Fprintf(&b, "⏰ %s\n", r.DateTime)
	fmt.Fprintf(&b, "👤 Мастер: *%s*\n", r.Staff.Name)
	fmt.Fprintf(&b, "🏢 %s\n", r.Company.Title)

	if len(r.Services) > 0 {
		b.WriteString("🛍 *Услуги:*\n")
		for _, s := range r.Services {
			if s.Cost > 0 {
				fmt.Fprintf(&b, "  • %s - %d ₽\n", s.Title, s.Cost)
			} else {
				fmt.Fprintf(&b, "  • %s\n", s.Title)
			}
		}
	}
	if r.Comment != "" {
		fmt.Fprintf(&b, "💬 Комментарий: %s\n", r.Comment)
	}
	status, ok := attendanceStatus[r.VisitAttendance]
	if !ok {
		status = "Неизвестно"
	}
	fmt.Fprintf(&b, "📊 Статус: %s\n", status)
	return b.String()
}
