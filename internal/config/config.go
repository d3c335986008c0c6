package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	// Telegram
	BotToken string

	// Google Sheets mirror
	GoogleSheetID             string
	GoogleServiceAccountEmail string
	GooglePrivateKey          string

	// Local ledger
	DataFile string

	// Reply formatting
	Currency string
	Locale   string
}

func Load() *Config {
	return &Config{
		BotToken: getEnv("BOT_TOKEN", ""),

		GoogleSheetID:             getEnv("GOOGLE_SHEET_ID", ""),
		GoogleServiceAccountEmail: getEnv("GOOGLE_SERVICE_ACCOUNT_EMAIL", ""),
		GooglePrivateKey:          getEnv("GOOGLE_PRIVATE_KEY", ""),

		DataFile: getEnv("DATA_FILE", "./data/expenses.json"),

		Currency: getEnv("CURRENCY", "IDR"),
		Locale:   getEnv("LOCALE", "id"),
	}
}

// MirrorConfigured reports whether every Google Sheets setting is
// present. The mirror settings are optional, but only as a whole.
func (c *Config) MirrorConfigured() bool {
	return c.GoogleSheetID != "" && c.GoogleServiceAccountEmail != "" && c.GooglePrivateKey != ""
}

// SheetURL returns the browser link for the configured spreadsheet,
// empty when no sheet is configured.
func (c *Config) SheetURL() string {
	if c.GoogleSheetID == "" {
		return ""
	}
	return "https://docs.google.com/spreadsheets/d/" + c.GoogleSheetID
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.BotToken) == "" {
		errors = append(errors, "BOT_TOKEN is required")
	}

	if c.DataFile == "" {
		errors = append(errors, "data file path cannot be empty")
	} else {
		dir := filepath.Dir(c.DataFile)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create data directory '%s': %v", dir, err))
				}
			}
		}
	}

	anyMirror := c.GoogleSheetID != "" || c.GoogleServiceAccountEmail != "" || c.GooglePrivateKey != ""
	if anyMirror && !c.MirrorConfigured() {
		errors = append(errors, "GOOGLE_SHEET_ID, GOOGLE_SERVICE_ACCOUNT_EMAIL and GOOGLE_PRIVATE_KEY must be set together")
	}

	if len(c.Currency) != 3 {
		errors = append(errors, fmt.Sprintf("invalid currency code '%s': must be a 3-letter ISO 4217 code", c.Currency))
	}
	if strings.TrimSpace(c.Locale) == "" {
		errors = append(errors, "locale cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
