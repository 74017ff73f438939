// Package nlp contains the booking-intent extraction core: the lexical
// gate, the service/master/date-time extractors and the fuzzy-match
// fallback they share.
package nlp

import "strings"

// bookingKeywords deliberately includes very generic tokens (":", the
// prepositions) so the gate errs on the side of booking: a false positive
// only costs an extra pass through the extractors, a false negative would
// drop a real booking request into plain chat.
var bookingKeywords = []string{
	"запись", "записаться", "записать", "забронировать",
	"услуга", "мастер", "время", "дата",
	"когда можно", "свободное время", "расписание",
	"записаться на", "хочу записаться", "нужна запись",
	"маникюр", "педикюр", "массаж",
	"арина", "екатерина", "полина", "катя", "катюша",
	"октября", "ноября", "декабря", "января", "февраля", "марта",
	"апреля", "мая", "июня", "июля", "августа", "сентября",
	":", "часов", "в ", "на ",
}

// IsBooking reports whether the message looks booking-related: at least
// one vocabulary keyword occurs as a substring of the lowercased text.
func IsBooking(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range bookingKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
