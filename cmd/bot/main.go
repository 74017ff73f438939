package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"salon-bot/internal/booking"
	"salon-bot/internal/config"
	"salon-bot/internal/llm"
	"salon-bot/internal/nlp"
	"salon-bot/internal/observability"
	"salon-bot/internal/session"
	"salon-bot/internal/storage"
	"salon-bot/internal/telegram"
	"salon-bot/internal/yclients"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := config.New()
	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	ctx := context.Background()

	api := yclients.New(cfg.YClientsBaseURL, cfg.YClientsPartnerToken, cfg.YClientsUserToken)
	catalog := booking.NewCatalog(api)
	if err := catalog.Refresh(ctx); err != nil {
		log.Printf("initial catalog refresh failed: %v", err)
	}
	if err := catalog.StartRefresher(cfg.CatalogRefreshSpec); err != nil {
		log.Fatalf("failed to start catalog refresher: %v", err)
	}
	defer catalog.Stop()

	llmClient, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider))
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	store := session.New(cfg.MemoryTurns)
	engine := booking.NewEngine(store, llmClient, catalog, nlp.NewFuzzy())
	engine.SetReplayWindow(cfg.ReplayWindow)

	recorder, err := storage.NewFileRecorder(cfg.LogFilePath)
	if err != nil {
		log.Fatalf("failed to create interaction recorder: %v", err)
	}
	engine.SetRecorder(recorder)

	metrics := observability.NewMetrics("salonbot")
	engine.SetMetrics(metrics)

	go func() {
		r := chi.NewRouter()
		r.Handle("/metrics", observability.Handler())
		log.Printf("metrics listening on %s", cfg.MetricsListen)
		if err := http.ListenAndServe(cfg.MetricsListen, r); err != nil {
			log.Printf("metrics server stopped: %v", err)
		}
	}()

	bot, err := telegram.New(cfg.TelegramBotToken, engine, catalog, store)
	if err != nil {
		log.Fatalf("failed to create telegram bot: %v", err)
	}

	log.Println("Telegram bot started")
	bot.Start(ctx)
}
