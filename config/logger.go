package config

import (
	"github.com/spf13/viper"
)

// Logger logger config struct
type Logger struct {
	Level     string
	Format    string
	SentryDSN string
}

func getLoggerConfig(v *viper.Viper) *Logger {
	return &Logger{
		Level:     getStringOrDefault(v, "logger.level", "info"),
		Format:    getStringOrDefault(v, "logger.format", "text"),
		SentryDSN: v.GetString("logger.sentry_dsn"),
	}
}
