// Package session holds all per-user in-process state: the bounded
// conversation history, the stored phone number and the local mirrors of
// platform bookings. One Store instance is injected into the engine;
// restart loses everything, the booking platform stays the source of
// truth.
package session

import (
	"strings"
	"sync"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Turn struct {
	Role string
	Text string
}

// ServiceLine, Staff, Company and Record mirror what the platform returned
// when the booking was created. Records are append-only except for
// deletion by id; there is no read-back reconciliation.
type ServiceLine struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Cost  int    `json:"cost"`
}

type Staff struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

type Company struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Record struct {
	ID              int64         `json:"id"`
	Date            string        `json:"date"`
	DateTime        string        `json:"datetime"`
	Services        []ServiceLine `json:"services"`
	Staff           Staff         `json:"staff"`
	Company         Company       `json:"company"`
	Comment         string        `json:"comment"`
	VisitAttendance int           `json:"visit_attendance"`
	Length          int           `json:"length"`
	Online          bool          `json:"online"`
}

// Store keys everything by an opaque transport user identifier. Handlers
// for one user are serialized by the transports, but the two bots share
// nothing, so a plain mutex is all the coordination needed.
type Store struct {
	mu       sync.RWMutex
	maxTurns int
	turns    map[string][]Turn
	phones   map[string]string
	records  map[string][]Record
}

// New creates a store keeping at most maxPairs user/assistant pairs of
// history per user, oldest evicted first.
func New(maxPairs int) *Store {
	return &Store{
		maxTurns: maxPairs * 2,
		turns:    make(map[string][]Turn),
		phones:   make(map[string]string),
		records:  make(map[string][]Record),
	}
}

func (s *Store) AppendUser(userID, text string)      { s.append(userID, Turn{RoleUser, text}) }
func (s *Store) AppendAssistant(userID, text string) { s.append(userID, Turn{RoleAssistant, text}) }

func (s *Store) append(userID string, t Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := append(s.turns[userID], t)
	if len(ts) > s.maxTurns {
		ts = ts[len(ts)-s.maxTurns:]
	}
	s.turns[userID] = ts
}

// History returns a copy of the user's turns, oldest first.
func (s *Store) History(userID string) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ts := s.turns[userID]
	out := make([]Turn, len(ts))
	copy(out, ts)
	return out
}

// HistoryText renders up to limit most recent turns as "role: text" lines
// for prompt substitution.
func (s *Store) HistoryText(userID string, limit int) string {
	ts := s.History(userID)
	if limit > 0 && len(ts) > limit {
		ts = ts[len(ts)-limit:]
	}
	var b strings.Builder
	for _, t := range ts {
		b.WriteString(t.Role)
		b.WriteString(": ")
		b.WriteString(t.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func (s *Store) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turns, userID)
}

func (s *Store) SetPhone(userID, phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phones[userID] = phone
}

func (s *Store) Phone(userID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.phones[userID]
	return p, ok
}

func (s *Store) AddRecord(userID string, r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[userID] = append(s.records[userID], r)
}

func (s *Store) Records(userID string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rs := s.records[userID]
	out := make([]Record, len(rs))
	copy(out, rs)
	return out
}

// RemoveRecord drops the local mirror with the given id; unknown ids are
// a no-op.
func (s *Store) RemoveRecord(userID string, recordID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs := s.records[userID]
	kept := rs[:0]
	for _, r := range rs {
		if r.ID != recordID {
			kept = append(kept, r)
		}
	}
	s.records[userID] = kept
}
