package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salon-bot/internal/booking"
	"salon-bot/internal/llm"
	"salon-bot/internal/nlp"
	"salon-bot/internal/session"
	"salon-bot/internal/yclients"
)

type fakeLLM struct {
	reply string
	calls int
}

func (f *fakeLLM) Generate(_ context.Context, _ []llm.Message) (llm.Response, error) {
	f.calls++
	return llm.Response{Content: f.reply, Model: "fake"}, nil
}

type sentMessage struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

func newTestWebhook(t *testing.T, fake *fakeLLM, hookToken string) (http.Handler, *session.Store, *[]sentMessage) {
	t.Helper()

	var sent []sentMessage
	green := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var m sentMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		sent = append(sent, m)
		w.Write([]byte(`{"idMessage":"1"}`))
	}))
	t.Cleanup(green.Close)

	// The chat path never touches the booking platform, so a dead endpoint
	// is fine here.
	api := yclients.New("http://127.0.0.1:1", "p", "u")
	store := session.New(6)
	engine := booking.NewEngine(store, fake, booking.NewCatalog(api), nlp.NewFuzzy())

	hook := NewWebhook(engine, store, NewClient(green.URL, "1101", "token"), hookToken)
	r := chi.NewRouter()
	hook.Routes(r)
	return r, store, &sent
}

func notification(chatID, text string) []byte {
	raw, _ := json.Marshal(map[string]any{
		"typeWebhook": "incomingMessageReceived",
		"senderData":  map[string]string{"chatId": chatID, "senderName": "Иван"},
		"messageData": map[string]any{
			"typeMessage":     "textMessage",
			"textMessageData": map[string]string{"textMessage": text},
		},
	})
	return raw
}

func TestWebhookRepliesThroughGreenAPI(t *testing.T) {
	fake := &fakeLLM{reply: "Здравствуйте!"}
	h, _, sent := newTestWebhook(t, fake, "")

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(notification("79991234567@c.us", "привет")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, fake.calls)
	require.Len(t, *sent, 1)
	assert.Equal(t, "79991234567@c.us", (*sent)[0].ChatID)
	assert.Equal(t, "Здравствуйте!", (*sent)[0].Message)
}

func TestWebhookDerivesPhoneFromChatID(t *testing.T) {
	fake := &fakeLLM{reply: "ok"}
	h, store, _ := newTestWebhook(t, fake, "")

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(notification("79991234567@c.us", "привет")))
	h.ServeHTTP(httptest.NewRecorder(), req)

	phone, ok := store.Phone("wa:79991234567@c.us")
	require.True(t, ok)
	assert.Equal(t, "+79991234567", phone)
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	fake := &fakeLLM{reply: "ok"}
	h, _, sent := newTestWebhook(t, fake, "")

	raw, _ := json.Marshal(map[string]any{"typeWebhook": "stateInstanceChanged"})
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, fake.calls)
	assert.Empty(t, *sent)
}

func TestWebhookRejectsBadToken(t *testing.T) {
	fake := &fakeLLM{reply: "ok"}
	h, _, sent := newTestWebhook(t, fake, "secret")

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(notification("79991234567@c.us", "привет")))
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, fake.calls)
	assert.Empty(t, *sent)
}

func TestWebhookAcceptsCorrectToken(t *testing.T) {
	fake := &fakeLLM{reply: "ok"}
	h, _, sent := newTestWebhook(t, fake, "secret")

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(notification("79991234567@c.us", "привет")))
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, *sent, 1)
}

func TestNotificationExtendedText(t *testing.T) {
	var n Notification
	raw, _ := json.Marshal(map[string]any{
		"typeWebhook": "incomingMessageReceived",
		"messageData": map[string]any{
			"typeMessage":             "extendedTextMessage",
			"extendedTextMessageData": map[string]string{"text": "ссылка и текст"},
		},
	})
	require.NoError(t, json.Unmarshal(raw, &n))
	assert.Equal(t, "ссылка и текст", n.text())
}
