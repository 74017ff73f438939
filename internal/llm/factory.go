package llm

import (
	"fmt"
	"strings"

	"salon-bot/internal/config"
)

// Factory creates LLM clients with consistent logic
type Factory struct {
	GroqAPIKey       string
	GroqBaseURL      string
	GroqModel        string
	YandexOAuthToken string
	YandexFolderID   string
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		GroqAPIKey:       cfg.GroqAPIKey,
		GroqBaseURL:      cfg.GroqBaseURL,
		GroqModel:        cfg.GroqModel,
		YandexOAuthToken: cfg.YandexOAuthToken,
		YandexFolderID:   cfg.YandexFolderID,
	}
}

func (f *Factory) CreateClient(provider string) (Client, error) {
	switch strings.ToLower(provider) {
	case string(config.ProviderOpenAI):
		return NewOpenAI(f.GroqAPIKey, f.GroqBaseURL, f.GroqModel), nil
	case string(config.ProviderYandex):
		return NewYandex(f.YandexOAuthToken, f.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
