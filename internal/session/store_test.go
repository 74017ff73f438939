package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryEvictsOldestFirst(t *testing.T) {
	s := New(2) // two user/assistant pairs

	s.AppendUser("u1", "первое")
	s.AppendAssistant("u1", "ответ 1")
	s.AppendUser("u1", "второе")
	s.AppendAssistant("u1", "ответ 2")
	s.AppendUser("u1", "третье")
	s.AppendAssistant("u1", "ответ 3")

	h := s.History("u1")
	assert.Len(t, h, 4)
	assert.Equal(t, Turn{RoleUser, "второе"}, h[0])
	assert.Equal(t, Turn{RoleAssistant, "ответ 3"}, h[3])
}

func TestHistoryIsolatedPerUser(t *testing.T) {
	s := New(6)

	s.AppendUser("u1", "от первого")
	s.AppendUser("u2", "от второго")

	assert.Len(t, s.History("u1"), 1)
	assert.Len(t, s.History("u2"), 1)
	assert.Empty(t, s.History("u3"))
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := New(6)
	s.AppendUser("u1", "оригинал")

	h := s.History("u1")
	h[0].Text = "подмена"

	assert.Equal(t, "оригинал", s.History("u1")[0].Text)
}

func TestHistoryText(t *testing.T) {
	s := New(6)
	s.AppendUser("u1", "привет")
	s.AppendAssistant("u1", "здравствуйте")

	assert.Equal(t, "user: привет\nassistant: здравствуйте\n", s.HistoryText("u1", 0))

	// limit keeps the most recent turns
	assert.Equal(t, "assistant: здравствуйте\n", s.HistoryText("u1", 1))
}

func TestReset(t *testing.T) {
	s := New(6)
	s.AppendUser("u1", "привет")
	s.SetPhone("u1", "+79991234567")

	s.Reset("u1")

	assert.Empty(t, s.History("u1"))
	// Reset clears only the dialogue; the phone survives.
	phone, ok := s.Phone("u1")
	assert.True(t, ok)
	assert.Equal(t, "+79991234567", phone)
}

func TestPhone(t *testing.T) {
	s := New(6)

	_, ok := s.Phone("u1")
	assert.False(t, ok)

	s.SetPhone("u1", "+79991234567")
	phone, ok := s.Phone("u1")
	assert.True(t, ok)
	assert.Equal(t, "+79991234567", phone)
}

func TestRecords(t *testing.T) {
	s := New(6)

	s.AddRecord("u1", Record{ID: 10, DateTime: "2025-10-26 12:00"})
	s.AddRecord("u1", Record{ID: 20, DateTime: "2025-10-27 14:00"})

	rs := s.Records("u1")
	assert.Len(t, rs, 2)

	s.RemoveRecord("u1", 10)
	rs = s.Records("u1")
	assert.Len(t, rs, 1)
	assert.Equal(t, int64(20), rs[0].ID)

	// Unknown id is a no-op.
	s.RemoveRecord("u1", 999)
	assert.Len(t, s.Records("u1"), 1)
}
