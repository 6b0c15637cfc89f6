package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

// State store backends
const (
	StateStoreSheet    = "sheet"
	StateStorePostgres = "postgres"
)

const (
	defaultSMTPHost        = "in-v3.mailjet.com"
	defaultSMTPPort        = 587
	defaultMailFromAddress = "evolutionzgymnotifications@gmail.com"
	defaultMailFromName    = "Evolutionz Gym"
	defaultCycleDays       = 28
	defaultWindowDays      = 3
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	OwnerEmail      string
	MailjetKey      string
	MailjetSecret   string
	SMTPHost        string
	SMTPPort        int
	MailFromAddress string
	MailFromName    string

	GoogleSheetsKey string // path to the service account JSON key
	SpreadsheetID   string
	CurrentSheet    string // empty means the first worksheet
	PreviousSheet   string // empty means the second worksheet

	StateStore  string
	DatabaseURL string

	TelegramToken   string
	OwnerTelegramID int64

	BillingCycleDays     int
	ReminderWindowDays   int
	Location             *time.Location
	RequireOwnerDelivery bool

	CronSpec    string // empty means run once and exit
	LogLevel    string
	Environment string
	LogFile     string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	if cfg.OwnerEmail, err = required("OWNER_EMAIL"); err != nil {
		return nil, err
	}
	if cfg.MailjetKey, err = required("MAILJET_KEY"); err != nil {
		return nil, err
	}
	if cfg.MailjetSecret, err = required("MAILJET_SECRET"); err != nil {
		return nil, err
	}
	if cfg.GoogleSheetsKey, err = required("GOOGLE_SHEETS_KEY"); err != nil {
		return nil, err
	}
	if cfg.SpreadsheetID, err = required("SPREADSHEET_ID"); err != nil {
		return nil, err
	}

	cfg.SMTPHost = withDefault("SMTP_HOST", defaultSMTPHost)
	if cfg.SMTPPort, err = intWithDefault("SMTP_PORT", defaultSMTPPort); err != nil {
		return nil, err
	}
	cfg.MailFromAddress = withDefault("MAIL_FROM_ADDRESS", defaultMailFromAddress)
	cfg.MailFromName = withDefault("MAIL_FROM_NAME", defaultMailFromName)

	cfg.CurrentSheet = os.Getenv("CURRENT_SHEET")
	cfg.PreviousSheet = os.Getenv("PREVIOUS_SHEET")

	cfg.StateStore = strings.ToLower(withDefault("STATE_STORE", StateStoreSheet))
	switch cfg.StateStore {
	case StateStoreSheet:
	case StateStorePostgres:
		if cfg.DatabaseURL, err = required("DATABASE_URL"); err != nil {
			return nil, fmt.Errorf("STATE_STORE=postgres: %w", err)
		}
	default:
		return nil, fmt.Errorf("invalid STATE_STORE %q, expected %q or %q", cfg.StateStore, StateStoreSheet, StateStorePostgres)
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if ownerIDStr := os.Getenv("OWNER_TELEGRAM_ID"); ownerIDStr != "" {
		cfg.OwnerTelegramID, err = strconv.ParseInt(ownerIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid OWNER_TELEGRAM_ID: %w", err)
		}
	}
	if (cfg.TelegramToken == "") != (cfg.OwnerTelegramID == 0) {
		return nil, fmt.Errorf("TELEGRAM_TOKEN and OWNER_TELEGRAM_ID must be set together")
	}

	if cfg.BillingCycleDays, err = intWithDefault("BILLING_CYCLE_DAYS", defaultCycleDays); err != nil {
		return nil, err
	}
	if cfg.BillingCycleDays <= 0 {
		return nil, fmt.Errorf("BILLING_CYCLE_DAYS must be positive, got %d", cfg.BillingCycleDays)
	}
	if cfg.ReminderWindowDays, err = intWithDefault("REMINDER_WINDOW_DAYS", defaultWindowDays); err != nil {
		return nil, err
	}
	if cfg.ReminderWindowDays < 0 {
		return nil, fmt.Errorf("REMINDER_WINDOW_DAYS must not be negative, got %d", cfg.ReminderWindowDays)
	}

	cfg.Location = time.Local
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		cfg.Location, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
		}
	}

	if v := os.Getenv("REQUIRE_OWNER_DELIVERY"); v != "" {
		cfg.RequireOwnerDelivery, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUIRE_OWNER_DELIVERY: %w", err)
		}
	}

	cfg.CronSpec = os.Getenv("CRON_SPEC")

	cfg.LogLevel = strings.ToLower(withDefault("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(withDefault("ENVIRONMENT", "development"))
	cfg.LogFile = os.Getenv("LOG_FILE")

	return cfg, nil
}

func required(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return v, nil
}

func withDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intWithDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
