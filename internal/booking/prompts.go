package booking

import "strings"

// Prompt templates are substituted with a plain replacer; the LLM gets a
// single user-role message per call.

const bookingPrompt = `Ты помощник по записи к мастерам. Анализируй ВСЮ историю разговора и определи:
1. Какая услуга нужна
2. Есть ли предпочтения по мастеру
3. Желаемая дата и время

История разговора:
{{history}}

Доступные данные (ТОЧНЫЕ ДАННЫЕ ИЗ API):
{{api_data}}

Сообщение пользователя: {{message}}

КРИТИЧЕСКИ ВАЖНО:
- Используй ТОЛЬКО услуги и мастеров из "Доступные данные" выше
- НЕ ВЫДУМЫВАЙ услуги - используй только те что есть в списке
- НЕ ИСПОЛЬЗУЙ форматирование ** - только обычный текст
- НЕ ПРИДУМЫВАЙ цены - используй только те что указаны в API
- Если в истории есть информация об услуге, мастере и времени - СОЗДАЙ ЗАПИСЬ
- Если пользователь повторно пишет "хочу записаться" - проверь историю на наличие всех данных
- Если есть все данные (услуга, мастер, дата и время) - ответь в формате:
ЗАПИСЬ: [услуга] | [мастер] | [дата время]

Например: ЗАПИСЬ: маникюр | Арина | 2025-10-26 12:00

Если данных недостаточно, уточни недостающую информацию.`

const chatPrompt = `Ты дружелюбный помощник на русском.
История чата:
{{history}}

Сообщение:
{{message}}
Ответь кратко по делу.`

func renderBookingPrompt(history, apiData, message string) string {
	return strings.NewReplacer(
		"{{history}}", history,
		"{{api_data}}", apiData,
		"{{message}}", message,
	).Replace(bookingPrompt)
}

func renderChatPrompt(history, message string) string {
	return strings.NewReplacer(
		"{{history}}", history,
		"{{message}}", message,
	).Replace(chatPrompt)
}
