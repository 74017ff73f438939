// Package whatsapp is the WhatsApp delivery channel built on Green API:
// an outbound sendMessage client and an inbound webhook handler.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client sends messages through a Green API instance.
type Client struct {
	baseURL    string
	instanceID string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, instanceID, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		instanceID: instanceID,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	url := fmt.Sprintf("%s/waInstance%s/sendMessage/%s", c.baseURL, c.instanceID, c.token)

	body, err := json.Marshal(map[string]string{
		"chatId":  chatID,
		"message": text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("green api returned HTTP %d", resp.StatusCode)
	}
	return nil
}
