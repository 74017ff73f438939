package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"salon-bot/internal/booking"
	"salon-bot/internal/config"
	"salon-bot/internal/llm"
	"salon-bot/internal/nlp"
	"salon-bot/internal/observability"
	"salon-bot/internal/session"
	"salon-bot/internal/storage"
	"salon-bot/internal/whatsapp"
	"salon-bot/internal/yclients"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := config.New()
	if cfg.GreenAPIID == "" || cfg.GreenAPIToken == "" {
		log.Fatal("GREEN_API_ID and GREEN_API_TOKEN are required")
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

	client := whatsapp.NewClient(cfg.GreenAPIBaseURL, cfg.GreenAPIID, cfg.GreenAPIToken)
	hook := whatsapp.NewWebhook(engine, store, client, cfg.WhatsAppHookToken)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	hook.Routes(r)
	r.Handle("/metrics", observability.Handler())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	log.Printf("WhatsApp webhook listening on %s", cfg.WhatsAppListen)
	if err := http.ListenAndServe(cfg.WhatsAppListen, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
