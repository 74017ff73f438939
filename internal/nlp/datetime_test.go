package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var referenceNow = time.Date(2025, 10, 25, 10, 0, 0, 0, time.UTC)

func TestFindDateTime(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"26 октября в 12:00", "2025-10-26 12:00"},
		{"в 12:00, 26 октября", "2025-10-26 12:00"}, // order independent
		{"завтра в 14:00", "2025-10-26 14:00"},
		{"послезавтра в 9:30", "2025-10-27 09:30"},
		{"сегодня в 18 часов", "2025-10-25 18:00"},
		{"запишите на 25.12 в 10:00", "2025-12-25 10:00"},
		{"3 января в 11:00", "2025-01-03 11:00"},
	}
	for _, tt := range tests {
		got, ok := FindDateTime(tt.text, referenceNow)
		assert.True(t, ok, "text %q", tt.text)
		assert.Equal(t, tt.want, got, "text %q", tt.text)
	}
}

func TestFindDateTimeNeedsBothParts(t *testing.T) {
	_, ok := FindDateTime("в 14:00", referenceNow)
	assert.False(t, ok, "time without date")

	_, ok = FindDateTime("завтра", referenceNow)
	assert.False(t, ok, "date without time")

	_, ok = FindDateTime("привет", referenceNow)
	assert.False(t, ok)
}

func TestFindDateTimeImpossibleDate(t *testing.T) {
	_, ok := FindDateTime("31.02 в 10:00", referenceNow)
	assert.False(t, ok, "February 31 must be rejected")

	_, ok = FindDateTime("32 октября в 10:00", referenceNow)
	assert.False(t, ok)
}

func TestFindDateTimePastDateAccepted(t *testing.T) {
	// Dates already in the past are still extracted; rejecting them is the
	// platform's call, not the extractor's.
	got, ok := FindDateTime("1 октября в 10:00", referenceNow)
	assert.True(t, ok)
	assert.Equal(t, "2025-10-01 10:00", got)
}

func TestFindTimeVariants(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"завтра в 12:00", "12:00"},
		{"завтра 9:30", "09:30"},
		{"завтра в 15 часов", "15:00"},
	}
	for _, tt := range tests {
		got, ok := findTime(tt.text)
		assert.True(t, ok, "text %q", tt.text)
		assert.Equal(t, tt.want, got, "text %q", tt.text)
	}
}
