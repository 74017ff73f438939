// Package booking is the transport-agnostic booking engine: it combines
// the nlp extractors into an intent, replays recent history to fill
// missing fields, decides between direct execution, the LLM fallback and
// clarification, and executes complete intents against the platform.
package booking

import (
	"strings"
	"time"

	"salon-bot/internal/nlp"
	"salon-bot/internal/session"
)

// Intent is the structured outcome of one message: every field is either
// the extracted value or empty. It lives only while the message is being
// handled; history replay re-derives the same values on later turns.
type Intent struct {
	Service string
	Master  string
	When    string // "YYYY-MM-DD HH:MM"
}

func (i Intent) Complete() bool {
	return i.Service != "" && i.Master != "" && i.When != ""
}

// ExtractIntent runs the three extractors against a single message.
func ExtractIntent(text string, now time.Time, fz *nlp.Fuzzy) Intent {
	var in Intent
	if svc, ok := nlp.FindService(text, fz); ok {
		in.Service = svc
	}
	if m, ok := nlp.FindMaster(text, fz); ok {
		in.Master = m
	}
	if dt, ok := nlp.FindDateTime(text, now); ok {
		in.When = dt
	}
	return in
}

// OverlayHistory fills the intent's missing fields with the most recent
// value re-derivable from the user's side of the replayed history, newest
// first. A service named three turns ago stays known until contradicted
// by a newer mention.
func OverlayHistory(in Intent, history []session.Turn, window int, now time.Time, fz *nlp.Fuzzy) Intent {
	if in.Complete() {
		return in
	}
	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}
	for i := len(history) - 1; i >= 0 && !in.Complete(); i-- {
		t := history[i]
		if t.Role != session.RoleUser {
			continue
		}
		if in.Service == "" {
			if svc, ok := nlp.FindService(t.Text, fz); ok {
				in.Service = svc
			}
		}
		if in.Master == "" {
			if m, ok := nlp.FindMaster(t.Text, fz); ok {
				in.Master = m
			}
		}
		if in.When == "" {
			if dt, ok := nlp.FindDateTime(t.Text, now); ok {
				in.When = dt
			}
		}
	}
	return in
}

// directiveMarker is the line the LLM emits when it decided the dialogue
// contains everything needed for a booking.
const directiveMarker = "ЗАПИСЬ:"

// ParseDirective extracts a structured intent from an LLM reply. The
// marker line is a strict mini-protocol: exactly three non-empty
// pipe-separated fields after the marker. Anything else fails closed so
// the user gets asked to clarify instead of a half-guessed booking.
func ParseDirective(reply string) (Intent, bool) {
	for _, line := range strings.Split(reply, "\n") {
		idx := strings.Index(line, directiveMarker)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(directiveMarker):]
		parts := strings.Split(rest, "|")
		if len(parts) != 3 {
			return Intent{}, false
		}
		in := Intent{
			Service: strings.TrimSpace(parts[0]),
			Master:  strings.TrimSpace(parts[1]),
			When:    strings.TrimSpace(parts[2]),
		}
		if !in.Complete() {
			return Intent{}, false
		}
		return in, true
	}
	return Intent{}, false
}

// HasDirective reports whether the reply contains the marker at all,
// regardless of whether it parses.
func HasDirective(reply string) bool {
	return strings.Contains(reply, directiveMarker)
}
