// internal/infra/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance
var Log = logrus.New()

// Init configures the global logger from the application configuration.
// The returned closer releases the log file, if one was opened.
func Init(cfg *config.AppConfig) io.Closer {
	return configure(Log, cfg)
}

func configure(l *logrus.Logger, cfg *config.AppConfig) io.Closer {
	var closer io.Closer = nopCloser{}
	l.SetOutput(os.Stdout) // Default output
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			l.Warnf("Could not open log file '%s', logging to stdout. Error: %v", cfg.LogFile, err)
		} else {
			l.SetOutput(f)
			closer = f
		}
	}

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		l.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
		l.SetLevel(logrus.InfoLevel)
	} else {
		l.SetLevel(level)
	}

	if env := strings.ToLower(cfg.Environment); env == "production" || env == "staging" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   cfg.LogFile != "",
		})
	}

	l.Debugf("Log level set to: %s", l.GetLevel().String())
	l.Debugf("Log format set for environment: %s", cfg.Environment)
	return closer
}

// Get returns the configured global logger.
func Get() *logrus.Logger {
	return Log
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
