package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Time patterns in precedence order; the first match wins.
var timePatterns = []struct {
	re         *regexp.Regexp
	hasMinutes bool
}{
	{regexp.MustCompile(`(\d{1,2}):(\d{2})`), true},     // 12:00, 9:30
	{regexp.MustCompile(`(\d{1,2})\s*часов`), false},    // 12 часов
	{regexp.MustCompile(`в\s*(\d{1,2}):(\d{2})`), true}, // в 12:00
	{regexp.MustCompile(`на\s*(\d{1,2}):(\d{2})`), true},
}

// Month-name date patterns keep the original precedence: октября first.
var monthPatterns = []struct {
	re    *regexp.Regexp
	month int
}{
	{dayOfMonthPattern("октября"), 10},
	{dayOfMonthPattern("ноября"), 11},
	{dayOfMonthPattern("декабря"), 12},
	{dayOfMonthPattern("января"), 1},
	{dayOfMonthPattern("февраля"), 2},
	{dayOfMonthPattern("марта"), 3},
	{dayOfMonthPattern("апреля"), 4},
	{dayOfMonthPattern("мая"), 5},
	{dayOfMonthPattern("июня"), 6},
	{dayOfMonthPattern("июля"), 7},
	{dayOfMonthPattern("августа"), 8},
	{dayOfMonthPattern("сентября"), 9},
}

var (
	reTomorrow      = wordPattern("завтра")
	reAfterTomorrow = wordPattern("послезавтра")
	reToday         = wordPattern("сегодня")
	reDayMonth      = regexp.MustCompile(`(\d{1,2})[./](\d{1,2})`)
	reDayMonthYear  = regexp.MustCompile(`(\d{1,2})[./](\d{1,2})[./](\d{4})`)
)

func dayOfMonthPattern(month string) *regexp.Regexp {
	return regexp.MustCompile(`(\d{1,2})\s*` + month)
}

func wordPattern(word string) *regexp.Regexp {
	return regexp.MustCompile(`(^|[^а-яё])` + word + `($|[^а-яё])`)
}

// FindDateTime extracts a "YYYY-MM-DD HH:MM" stamp from the message. A
// result is produced only when both a time and a date are found; either
// may appear anywhere in the text and in any order. Month-name and DD.MM
// dates assume the current year of reference now; relative day words are
// computed from it. Calendar-impossible dates (day 31 in a 30-day month)
// are rejected, which routes the dialogue to clarification instead of
// sending garbage downstream.
func FindDateTime(text string, now time.Time) (string, bool) {
	lower := strings.ToLower(text)

	timePart, ok := findTime(lower)
	if !ok {
		return "", false
	}
	datePart, ok := findDate(lower, now)
	if !ok {
		return "", false
	}
	return datePart + " " + timePart, true
}

func findTime(lower string) (string, bool) {
	for _, p := range timePatterns {
		m := p.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if p.hasMinutes {
			minute, _ = strconv.Atoi(m[2])
		}
		return fmt.Sprintf("%02d:%02d", hour, minute), true
	}
	return "", false
}

func findDate(lower string, now time.Time) (string, bool) {
	for _, p := range monthPatterns {
		if m := p.re.FindStringSubmatch(lower); m != nil {
			day, _ := strconv.Atoi(m[1])
			return formatDate(now.Year(), p.month, day)
		}
	}

	if reTomorrow.MatchString(lower) {
		return now.AddDate(0, 0, 1).Format("2006-01-02"), true
	}
	if reAfterTomorrow.MatchString(lower) {
		return now.AddDate(0, 0, 2).Format("2006-01-02"), true
	}
	if reToday.MatchString(lower) {
		return now.Format("2006-01-02"), true
	}

	if m := reDayMonth.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return formatDate(now.Year(), month, day)
	}
	if m := reDayMonthYear.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return formatDate(year, month, day)
	}
	return "", false
}

// formatDate rejects dates the calendar does not have: time.Date
// normalizes overflow (Feb 30 -> Mar 2), so a changed day or month after
// round-trip means the input was impossible.
func formatDate(year, month, day int) (string, bool) {
	if day < 1 || month < 1 || month > 12 {
		return "", false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || int(d.Month()) != month {
		return "", false
	}
	return d.Format("2006-01-02"), true
}
