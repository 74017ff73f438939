package llm

import (
	"testing"

	"salon-bot/internal/config"
)

func TestCreateClientOpenAI(t *testing.T) {
	f := NewFactory(&config.Config{
		GroqAPIKey:  "key",
		GroqBaseURL: "https://api.groq.com/openai/v1",
		GroqModel:   "openai/gpt-oss-120b",
	})

	c, err := f.CreateClient("openai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.(*OpenAIClient); !ok {
		t.Errorf("expected *OpenAIClient, got %T", c)
	}
}

func TestCreateClientCaseInsensitive(t *testing.T) {
	f := NewFactory(&config.Config{GroqAPIKey: "key"})
	if _, err := f.CreateClient("OpenAI"); err != nil {
		t.Errorf("provider name should be case-insensitive: %v", err)
	}
}

func TestCreateClientUnknownProvider(t *testing.T) {
	f := NewFactory(&config.Config{})
	if _, err := f.CreateClient("llama-at-home"); err == nil {
		t.Error("expected an error for an unknown provider")
	}
}
