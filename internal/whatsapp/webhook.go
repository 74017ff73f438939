package whatsapp

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"salon-bot/internal/booking"
	"salon-bot/internal/session"
)

// Notification is the subset of the Green API webhook payload we consume.
type Notification struct {
	TypeWebhook string `json:"typeWebhook"`
	SenderData  struct {
		ChatID     string `json:"chatId"`
		SenderName string `json:"senderName"`
	} `json:"senderData"`
	MessageData struct {
		TypeMessage     string `json:"typeMessage"`
		TextMessageData struct {
			TextMessage string `json:"textMessage"`
		} `json:"textMessageData"`
		ExtendedTextMessageData struct {
			Text string `json:"text"`
		} `json:"extendedTextMessageData"`
	} `json:"messageData"`
}

func (n *Notification) text() string {
	if n.MessageData.TextMessageData.TextMessage != "" {
		return n.MessageData.TextMessageData.TextMessage
	}
	return n.MessageData.ExtendedTextMessageData.Text
}

// Webhook receives Green API notifications and feeds them to the engine.
type Webhook struct {
	engine    *booking.Engine
	store     *session.Store
	client    *Client
	hookToken string
}

func NewWebhook(engine *booking.Engine, store *session.Store, client *Client, hookToken string) *Webhook {
	return &Webhook{
		engine:    engine,
		store:     store,
		client:    client,
		hookToken: hookToken,
	}
}

func (w *Webhook) Routes(r chi.Router) {
	r.Post("/webhook", w.handleNotification)
}

func (w *Webhook) handleNotification(rw http.ResponseWriter, req *http.Request) {
	if w.hookToken != "" {
		auth := strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer ")
		if auth != w.hookToken {
			http.Error(rw, "unauthorized", http.StatusUnauthorized)
			return
		}
	}

	var n Notification
	if err := json.NewDecoder(req.Body).Decode(&n); err != nil {
		http.Error(rw, "bad request", http.StatusBadRequest)
		return
	}

	// Green API retries on non-200, so always ack after decoding.
	rw.WriteHeader(http.StatusOK)

	if n.TypeWebhook != "incomingMessageReceived" {
		return
	}
	text := n.text()
	if text == "" || n.SenderData.ChatID == "" {
		return
	}

	log.Printf("incoming whatsapp message from %s: %q", n.SenderData.ChatID, text)

	chatID := n.SenderData.ChatID
	userID := "wa:" + chatID

	// The chat id carries the sender's phone: 79991234567@c.us.
	if _, ok := w.store.Phone(userID); !ok {
		if digits, found := strings.CutSuffix(chatID, "@c.us"); found && digits != "" {
			w.store.SetPhone(userID, "+"+digits)
		}
	}

	ctx := context.Background()
	reply := w.engine.Handle(ctx, userID, n.SenderData.SenderName, text)

	if err := w.client.SendMessage(ctx, chatID, reply); err != nil {
		log.Printf("failed to send whatsapp reply to %s: %v", chatID, err)
	}
}
