package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config holds logger settings.
type Config struct {
	// Level is one of trace, debug, info, warn, error. Defaults to info.
	Level string
	// Format is text or json. Defaults to text.
	Format string
	// Output defaults to stderr.
	Output io.Writer
	// SentryDSN enables the sentry hook for warning and worse when set.
	SentryDSN string
}

// Logger wraps the structured logger used across the SDK.
type Logger struct {
	*logrus.Logger
}

// New initializes a logger and returns it with a cleanup function that
// flushes any pending hook deliveries.
func New(cfg *Config) (*Logger, func(), error) {
	if cfg == nil {
		cfg = &Config{}
	}
	l := logrus.New()

	level, err := logrus.ParseLevel(defaultString(cfg.Level, "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.Output != nil {
		l.SetOutput(cfg.Output)
	} else {
		l.SetOutput(os.Stderr)
	}

	cleanup := func() {}
	if cfg.SentryDSN != "" {
		hook, flush, err := NewSentryHook(cfg.SentryDSN)
		if err != nil {
			return nil, nil, err
		}
		l.AddHook(hook)
		cleanup = flush
	}

	return &Logger{Logger: l}, cleanup, nil
}

// Discard returns a logger that drops everything, for tests.
func Discard() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{Logger: l}
}

// WithComponent tags entries with the SDK component emitting them.
func (l *Logger) WithComponent(name string) *logrus.Entry {
	return l.WithField("component", name)
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
