package config

import (
	"time"

	"github.com/spf13/viper"
)

// orSet reads a key through the given accessor, falling back when the key
// is not present in the configuration.
func orSet[T any](v *viper.Viper, key string, get func(string) T, fallback T) T {
	if v.IsSet(key) {
		return get(key)
	}
	return fallback
}

func getDurationOrDefault(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	return orSet(v, key, v.GetDuration, defaultValue)
}

func getUint32OrDefault(v *viper.Viper, key string, defaultValue uint32) uint32 {
	return orSet(v, key, func(k string) uint32 { return uint32(v.GetInt(k)) }, defaultValue)
}

func getIntOrDefault(v *viper.Viper, key string, defaultValue int) int {
	return orSet(v, key, v.GetInt, defaultValue)
}

func getStringOrDefault(v *viper.Viper, key string, defaultValue string) string {
	return orSet(v, key, v.GetString, defaultValue)
}

func getBoolOrDefault(v *viper.Viper, key string, defaultValue bool) bool {
	return orSet(v, key, v.GetBool, defaultValue)
}
