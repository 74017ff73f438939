package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBooking(t *testing.T) {
	booking := []string{
		"Хочу записаться на маникюр",
		"запись к мастеру",
		"можно к Кате?",
		"26 октября в 12:00",
		"завтра в 14:00",
		"сколько стоит педикюр",
		"МАНИКЮР", // case-insensitive
	}
	for _, text := range booking {
		assert.True(t, IsBooking(text), "expected booking: %q", text)
	}

	chat := []string{
		"привет",
		"спасибо",
		"как у тебя дела?",
	}
	for _, text := range chat {
		assert.False(t, IsBooking(text), "expected chat: %q", text)
	}
}

func TestIsBookingGenericTokens(t *testing.T) {
	// The gate is deliberately loose: a colon or a bare preposition with a
	// trailing space is enough to route the message through the extractors.
	assert.True(t, IsBooking("смотри: вот так"))
	assert.True(t, IsBooking("пойду в магазин"))
}
