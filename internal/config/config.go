package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	// Telegram transport
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`

	// WhatsApp transport (Green API)
	GreenAPIID        string `env:"GREEN_API_ID"`
	GreenAPIToken     string `env:"GREEN_API_TOKEN"`
	GreenAPIBaseURL   string `env:"GREEN_API_BASE_URL" envDefault:"https://api.green-api.com"`
	WhatsAppListen    string `env:"WHATSAPP_LISTEN_ADDR" envDefault:":8080"`
	WhatsAppHookToken string `env:"WHATSAPP_WEBHOOK_TOKEN"`

	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	GroqAPIKey       string      `env:"GROQ_API_KEY"`
	GroqBaseURL      string      `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	GroqModel        string      `env:"GROQ_MODEL" envDefault:"openai/gpt-oss-120b"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// Booking platform
	YClientsPartnerToken string `env:"YCLIENTS_PARTNER_TOKEN,required"`
	YClientsUserToken    string `env:"YCLIENTS_USER_TOKEN,required"`
	YClientsBaseURL      string `env:"YCLIENTS_BASE_URL" envDefault:"https://api.yclients.com/api/v1"`

	// Conversation memory: pairs kept for the LLM prompt, and the larger
	// window replayed by the intent aggregator.
	MemoryTurns  int `env:"MEMORY_TURNS" envDefault:"6"`
	ReplayWindow int `env:"REPLAY_WINDOW" envDefault:"50"`

	// Catalog cache refresh schedule (cron spec)
	CatalogRefreshSpec string `env:"CATALOG_REFRESH_SPEC" envDefault:"@every 10m"`

	// Storage
	LogFilePath string `env:"LOG_FILE_PATH" envDefault:"logs/interactions.jsonl"`

	// Observability
	MetricsListen string `env:"METRICS_LISTEN_ADDR" envDefault:":9091"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
