package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/app"
	domainMail "github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/mail"
	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/schedule"
	domainTelegram "github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/telegram"
	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/infra/config"
	idb "github.com/jordan-barrett-jm/gym-payment-notifications/internal/infra/database"
	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/infra/logger"
	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/infra/mail"
	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/infra/scheduler"
	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/infra/sheets"
	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/infra/telegram"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	logCloser := logger.Init(cfg)
	defer logCloser.Close()
	log := logger.Get()
	mainLogger := log.WithField("component", "main")
	mainLogger.WithFields(logrus.Fields{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
		"state_store": cfg.StateStore,
	}).Info("Configuration loaded.")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Schedule Source
	sheetClient, err := sheets.NewClient(ctx, cfg.GoogleSheetsKey, cfg.SpreadsheetID, cfg.CurrentSheet, cfg.PreviousSheet, log.WithField("component", "sheets"))
	if err != nil {
		mainLogger.Fatalf("Could not open schedule source: %v", err)
	}

	// Initialize State Store
	var store schedule.StateStore = sheetClient
	if cfg.StateStore == config.StateStorePostgres {
		db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			mainLogger.Fatalf("Could not connect to database: %v", err)
		}
		defer db.Close()
		if err := idb.EnsureSchema(ctx, db); err != nil {
			mainLogger.Fatalf("Could not prepare database schema: %v", err)
		}
		store = idb.NewPostgresStateRepository(db)
		mainLogger.Info("Postgres state store initialized.")
	}

	// Initialize Transports
	sender := mail.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.MailjetKey, cfg.MailjetSecret)

	var telegramClient domainTelegram.Client
	if cfg.TelegramToken != "" {
		adapter, err := telegram.NewTelebotAdapter(cfg.TelegramToken)
		if err != nil {
			mainLogger.WithError(err).Warn("Telegram owner alerts disabled")
		} else {
			telegramClient = adapter
			mainLogger.Info("Telegram owner alerts enabled.")
		}
	}

	runService := app.NewRunService(
		sheetClient,
		store,
		sender,
		telegramClient,
		app.NotifierSettings{
			From:                 domainMail.Address{Email: cfg.MailFromAddress, Name: cfg.MailFromName},
			OwnerEmail:           cfg.OwnerEmail,
			OwnerTelegramID:      cfg.OwnerTelegramID,
			RequireOwnerDelivery: cfg.RequireOwnerDelivery,
		},
		schedule.BillingCycle{CycleDays: cfg.BillingCycleDays, ReminderWindowDays: cfg.ReminderWindowDays},
		cfg.Location,
		log.WithField("component", "run"),
	)

	if cfg.CronSpec == "" {
		if _, err := runService.Run(ctx); err != nil {
			mainLogger.Fatalf("Payment notification run failed: %v", err)
		}
		return
	}

	notifScheduler := scheduler.NewNotificationScheduler(runService, log.WithField("component", "scheduler"), cfg.CronSpec, cfg.Location)
	if err := notifScheduler.Start(); err != nil {
		mainLogger.Fatalf("Could not add payment notification cron job: %v", err)
	}

	<-ctx.Done() // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	notifScheduler.Stop()
	mainLogger.Info("Application shut down gracefully.")
}
