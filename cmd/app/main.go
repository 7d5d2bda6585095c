// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-midjourney-bot/internal/application"
	"telegram-midjourney-bot/internal/config"
	mj "telegram-midjourney-bot/internal/infra/adapters/midjourney"
	tele "telegram-midjourney-bot/internal/infra/adapters/telegram"
	"telegram-midjourney-bot/internal/infra/logging"
	"telegram-midjourney-bot/internal/infra/memory"
	"telegram-midjourney-bot/internal/infra/metrics"
	"telegram-midjourney-bot/internal/infra/sched"
	"telegram-midjourney-bot/internal/infra/storage"
	"telegram-midjourney-bot/internal/infra/web"
	"telegram-midjourney-bot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, debug level)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Runtime.Dev {
		log.Printf("[DEV MODE] Enabled")
	}
	if cfg.Webhook.BaseURL == "" || cfg.WebhookURL() == "https://your-public-url.ngrok.io/webhook" {
		log.Printf("WARNING: webhook.base_url not set; the generation service cannot reach the placeholder address")
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Telegram client (shared by the polling adapter and the Messenger) ----
	botAPI, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}
	botAPI.Debug = cfg.Runtime.Dev
	sender := tele.NewSender(botAPI)

	// ---- In-memory state ----
	registry := memory.NewTaskRegistry()
	history := memory.NewTaskHistory()

	// ---- Generation service + artifact storage ----
	gen, err := mj.NewClient(cfg.Midjourney.APIKey, cfg.Midjourney.BaseURL, cfg.WebhookURL(), logger)
	if err != nil {
		log.Fatalf("midjourney client: %v", err)
	}
	images, err := storage.NewImageStore(cfg.Storage.TempDir)
	if err != nil {
		log.Fatalf("image store: %v", err)
	}

	// ---- Use cases ----
	submitUC := usecase.NewSubmitUseCase(registry, gen, sender, logger)
	dispatchUC := usecase.NewDispatchUseCase(registry, history, sender, images, logger)

	// ---- Facade ----
	facade := application.NewBotFacade(submitUC, registry, history)

	// ---- Telegram polling ----
	botAdapter, err := tele.NewRealTelegramBotAdapter(botAPI, &cfg.Bot, facade, cfg.Bot.Workers)
	if err != nil {
		log.Fatalf("telegram adapter: %v", err)
	}
	go func() {
		if err := botAdapter.StartPolling(ctx); err != nil {
			log.Printf("telegram polling stopped: %v", err)
		}
	}()

	// ---- Webhook server ----
	srv := web.NewServer(dispatchUC, logger)
	server := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Webhook.Port), Handler: srv.Router()}
	go func() {
		logger.Info().Str("addr", server.Addr).Str("callback", cfg.WebhookURL()).Msg("webhook server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http server error: %v", err)
		}
	}()

	// ---- Stale-task sweeper ----
	sweeper := sched.NewSweepWorker(cfg.Scheduler.SweepInterval, cfg.Scheduler.TaskTTL, registry, sender, logger)
	go func() { _ = sweeper.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	log.Println("shutdown requested")
	cancel()

	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	_ = server.Shutdown(shCtx)
}
