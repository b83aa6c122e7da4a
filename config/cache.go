package config

import (
	"time"

	"github.com/spf13/viper"
)

// Cache holds settings for the optional response cache. With no redis
// address the client caches in process memory.
type Cache struct {
	Enabled   bool
	RedisAddr string
	RedisDB   int
	Password  string
	TTL       time.Duration
}

func getCacheConfig(v *viper.Viper) *Cache {
	return &Cache{
		Enabled:   v.GetBool("cache.enabled"),
		RedisAddr: v.GetString("cache.redis_addr"),
		RedisDB:   v.GetInt("cache.redis_db"),
		Password:  v.GetString("cache.password"),
		TTL:       getDurationOrDefault(v, "cache.ttl", 5*time.Minute),
	}
}
