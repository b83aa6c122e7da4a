package logging

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

const sentryFlushTimeout = 2 * time.Second

// SentryHook forwards warning and worse entries to sentry.
type SentryHook struct {
	hub *sentry.Hub
}

// NewSentryHook initializes a sentry client for the DSN and returns the
// hook plus a flush function to call on shutdown.
func NewSentryHook(dsn string) (*SentryHook, func(), error) {
	client, err := sentry.NewClient(sentry.ClientOptions{Dsn: dsn})
	if err != nil {
		return nil, nil, err
	}
	hub := sentry.NewHub(client, sentry.NewScope())
	flush := func() { hub.Flush(sentryFlushTimeout) }
	return &SentryHook{hub: hub}, flush, nil
}

// Levels returns the entry levels the hook fires on.
func (h *SentryHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel, logrus.FatalLevel,
		logrus.ErrorLevel, logrus.WarnLevel,
	}
}

// Fire sends one log entry as a sentry event.
func (h *SentryHook) Fire(entry *logrus.Entry) error {
	event := sentry.NewEvent()
	event.Message = entry.Message
	event.Level = sentryLevel(entry.Level)
	event.Timestamp = entry.Time
	for k, v := range entry.Data {
		event.Extra[k] = v
	}
	h.hub.CaptureEvent(event)
	return nil
}

func sentryLevel(level logrus.Level) sentry.Level {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return sentry.LevelFatal
	case logrus.ErrorLevel:
		return sentry.LevelError
	case logrus.WarnLevel:
		return sentry.LevelWarning
	default:
		return sentry.LevelInfo
	}
}
