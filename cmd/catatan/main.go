package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"catatan/internal/bot"
	"catatan/internal/config"
	"catatan/internal/currency"
	"catatan/internal/ledger"
	"catatan/internal/mirror"
	"catatan/internal/services"
	"catatan/internal/sheets/google"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := ledger.Open(cfg.DataFile)
	if err != nil {
		logger.Error("Failed to open local ledger", "error", err, "path", cfg.DataFile)
		os.Exit(1)
	}

	// The mirror is best effort. A failed connection downgrades to
	// local-only mode instead of stopping the process.
	m := mirror.Absent()
	if cfg.MirrorConfigured() {
		client, err := google.NewClient(ctx, google.Credentials{
			Email:      cfg.GoogleServiceAccountEmail,
			PrivateKey: cfg.GooglePrivateKey,
		}, cfg.GoogleSheetID)
		if err != nil {
			logger.Warn("Google Sheets client unavailable, running local-only", "error", err)
		} else if connected, err := mirror.Connect(ctx, client, cfg.SheetURL()); err != nil {
			logger.Warn("Google Sheets structure setup failed, running local-only", "error", err)
		} else {
			m = connected
			logger.Info("Google Sheets mirror connected", "sheet_url", cfg.SheetURL())
		}
	} else {
		logger.Info("Google Sheets not configured, running local-only")
	}

	money, err := currency.NewFormatter(cfg.Currency, cfg.Locale)
	if err != nil {
		logger.Error("Invalid currency settings", "error", err)
		os.Exit(1)
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Error("Failed to connect to Telegram", "error", err)
		os.Exit(1)
	}
	logger.Info("Bot authorized", "username", api.Self.UserName)

	handler := bot.NewHandler(
		services.NewExpenseService(store, m),
		services.NewSummaryService(store, m),
		money,
		bot.NewTelegramSender(api),
		cfg.SheetURL(),
	)

	// Graceful shutdown handling
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		api.StopReceivingUpdates()
		cancel()
	}()

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = 30

	logger.Info("Listening for messages")
	for update := range api.GetUpdatesChan(updateCfg) {
		msg := update.Message
		if msg == nil || msg.From == nil || msg.Text == "" {
			continue
		}

		name := msg.From.UserName
		if name == "" {
			name = msg.From.FirstName
		}

		in := bot.Inbound{
			ChatID:      msg.Chat.ID,
			UserID:      strconv.FormatInt(msg.From.ID, 10),
			DisplayName: name,
			Text:        msg.Text,
		}
		if err := handler.Handle(ctx, in); err != nil {
			logger.Error("Failed to handle message", "chat_id", in.ChatID, "error", err)
		}
	}

	logger.Info("Bot stopped gracefully")
}
