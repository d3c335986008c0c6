// Command sheets-init creates the Expenses and Daily Summary sheets in
// the configured spreadsheet and exits. Useful for verifying service
// account access before starting the bot.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"catatan/internal/config"
	"catatan/internal/mirror"
	"catatan/internal/sheets/google"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if !cfg.MirrorConfigured() {
		logger.Error("GOOGLE_SHEET_ID, GOOGLE_SERVICE_ACCOUNT_EMAIL and GOOGLE_PRIVATE_KEY must be set")
		os.Exit(1)
	}

	ctx := context.Background()

	client, err := google.NewClient(ctx, google.Credentials{
		Email:      cfg.GoogleServiceAccountEmail,
		PrivateKey: cfg.GooglePrivateKey,
	}, cfg.GoogleSheetID)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}

	if _, err := mirror.Connect(ctx, client, cfg.SheetURL()); err != nil {
		logger.Error("Failed to set up spreadsheet structure", "error", err)
		os.Exit(1)
	}

	logger.Info("Spreadsheet structure ready", "sheet_url", cfg.SheetURL())
}
